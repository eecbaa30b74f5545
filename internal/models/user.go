package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RolePrincipal  UserRole = "PRINCIPAL"
	RoleRegistrar  UserRole = "REGISTRAR"
	RoleTeacher    UserRole = "TEACHER"
	RoleStudent    UserRole = "STUDENT"
	RoleLibrarian  UserRole = "LIBRARIAN"
	RoleParent     UserRole = "PARENT"
)

// AllRoles lists every role accepted by the system.
var AllRoles = []UserRole{
	RoleSuperAdmin, RoleAdmin, RolePrincipal, RoleRegistrar,
	RoleTeacher, RoleStudent, RoleLibrarian, RoleParent,
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	for _, role := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}

// User represents an application user stored in the users table. Staff and
// students of a branch share the table; BranchID is empty only for SUPERADMIN.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"fullName"`
	Role         UserRole   `db:"role" json:"role"`
	BranchID     *string    `db:"branch_id" json:"branchId,omitempty"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
