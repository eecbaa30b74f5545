package repository

import (
	"errors"

	"github.com/noah-isme/verticx-api/internal/models"
	"github.com/noah-isme/verticx-api/internal/workflow"
)

// ErrAlreadyExists is returned when an insert hits a uniqueness guard.
var ErrAlreadyExists = errors.New("record already exists")

func statusStrings(statuses []workflow.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func entityStrings(types []models.EntityType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
