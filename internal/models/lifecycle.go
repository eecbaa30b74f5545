package models

// Lifecycle separates editable drafts from committed records. Committed
// records change only through an approved change request.
type Lifecycle string

const (
	LifecycleDraft     Lifecycle = "DRAFT"
	LifecycleCommitted Lifecycle = "COMMITTED"
)
