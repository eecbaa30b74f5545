package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/workflow"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
	"github.com/noah-isme/verticx-api/pkg/events"
)

type auditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type txRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type eventPublisher interface {
	Publish(event events.Event)
}

func publish(bus eventPublisher, event events.Event) {
	if bus != nil {
		bus.Publish(event)
	}
}

// registerDomainValidations installs the custom tags used by request DTOs.
func registerDomainValidations(v *validator.Validate) {
	v.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(strings.ToUpper(fl.Field().String())).Valid()
	})
}

func newValidator(v *validator.Validate) *validator.Validate {
	if v == nil {
		v = validator.New()
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	registerDomainValidations(v)
	return v
}

// validationError reports which fields failed and on which rule.
func validationError(err error, message string) error {
	wrapped := appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return wrapped
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if ns := fe.Namespace(); strings.Contains(ns, ".") {
			name = ns[strings.Index(ns, ".")+1:]
		}
		fields[name] = fe.Tag()
	}
	return appErrors.WithFields(wrapped, fields)
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// notFoundOr maps sql.ErrNoRows to a NOT_FOUND error and anything else to INTERNAL.
func notFoundOr(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, what+" not found")
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return internalError(err, "failed to load "+what)
}

// workflowError maps workflow sentinels to API errors.
func workflowError(err error) error {
	switch {
	case errors.Is(err, workflow.ErrInvalidTransition):
		return appErrors.Wrap(err, appErrors.ErrInvalidTransition.Code, appErrors.ErrInvalidTransition.Status, appErrors.ErrInvalidTransition.Message)
	case errors.Is(err, workflow.ErrInvalidDecision),
		errors.Is(err, workflow.ErrReasonRequired),
		errors.Is(err, workflow.ErrProposalRequired),
		errors.Is(err, workflow.ErrNoChange),
		errors.Is(err, workflow.ErrUnexpectedProposal),
		errors.Is(err, workflow.ErrUnknownRequestType):
		return validationError(err, err.Error())
	}
	return validationError(err, "invalid change request")
}

// resolveBranch picks the branch a write lands in. Branch-bound actors always
// write to their own branch; SUPERADMIN must name one.
func resolveBranch(actor models.Actor, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if actor.IsSuperAdmin() {
		if requested == "" {
			return "", appErrors.Clone(appErrors.ErrValidation, "branchId is required")
		}
		return requested, nil
	}
	if actor.BranchID == "" {
		return "", appErrors.Clone(appErrors.ErrForbidden, "account is not attached to a branch")
	}
	if requested != "" && requested != actor.BranchID {
		return "", appErrors.Clone(appErrors.ErrForbidden, "branch is outside your scope")
	}
	return actor.BranchID, nil
}

func ensureBranch(actor models.Actor, branchID string) error {
	if !actor.CanAccessBranch(branchID) {
		return appErrors.Clone(appErrors.ErrForbidden, "branch is outside your scope")
	}
	return nil
}

func stampAudit(actor models.Actor, log *models.AuditLog) {
	if log.UserID == nil && actor.ID != "" {
		id := actor.ID
		log.UserID = &id
	}
	log.IPAddress = actor.IP
	if log.IPAddress == "" {
		log.IPAddress = "system"
	}
	log.UserAgent = actor.Agent
}

// writeAudit records a best-effort entry outside any transaction.
func writeAudit(ctx context.Context, audit auditWriter, logger *zap.Logger, actor models.Actor, log *models.AuditLog) {
	if audit == nil || log == nil {
		return
	}
	stampAudit(actor, log)
	if err := audit.CreateAuditLog(ctx, log); err != nil {
		logger.Warn("failed to persist audit log", zap.String("action", log.Action), zap.Error(err))
	}
}

// auditInTx records an entry through the transaction carried by ctx. Its
// error fails the transaction, so the write and its trail commit together.
func auditInTx(ctx context.Context, audit auditWriter, actor models.Actor, log *models.AuditLog) error {
	if audit == nil || log == nil {
		return nil
	}
	stampAudit(actor, log)
	if err := audit.CreateAuditLog(ctx, log); err != nil {
		return fmt.Errorf("audit %s: %w", log.Action, err)
	}
	return nil
}

func optionalString(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
