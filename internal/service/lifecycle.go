package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/verticx-api/internal/dto"
	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/workflow"
	appErrors "github.com/noah-isme/verticx-api/pkg/errors"
)

type changeRequestSubmitter interface {
	Submit(ctx context.Context, actor models.Actor, req dto.SubmitChangeRequest) (*models.ChangeRequest, error)
}

// guardDraft allows direct edits only on drafts of the actor's branch.
func guardDraft(actor models.Actor, branchID string, lifecycle models.Lifecycle) error {
	if err := ensureBranch(actor, branchID); err != nil {
		return err
	}
	if lifecycle != models.LifecycleDraft {
		return appErrors.ErrLocked
	}
	return nil
}

// draftWriteError maps a guarded write that matched no row. The row was
// checked to exist, so a miss means it was committed concurrently.
func draftWriteError(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.ErrLocked
	}
	return internalError(err, "failed to "+op)
}

func alreadyCommitted(what string) error {
	return appErrors.Clone(appErrors.ErrConflict, what+" is already committed")
}

func requestUpdate(ctx context.Context, submitter changeRequestSubmitter, actor models.Actor, entity models.EntityType, id, key string, req dto.EntityUpdateRequest) (*models.ChangeRequest, error) {
	return submitter.Submit(ctx, actor, dto.SubmitChangeRequest{
		EntityType:     string(entity),
		RequestType:    string(workflow.RequestUpdate),
		TargetEntityID: id,
		NewData:        req.NewData,
		Reason:         req.Reason,
		IdempotencyKey: key,
	})
}

func requestDeletion(ctx context.Context, submitter changeRequestSubmitter, actor models.Actor, entity models.EntityType, id, key string, req dto.EntityDeletionRequest) (*models.ChangeRequest, error) {
	return submitter.Submit(ctx, actor, dto.SubmitChangeRequest{
		EntityType:     string(entity),
		RequestType:    string(workflow.RequestDelete),
		TargetEntityID: id,
		Reason:         req.Reason,
		IdempotencyKey: key,
	})
}
