package workflow

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Submission is a change request as it arrives, before it is stored.
// Original is the server-side snapshot of the target; Proposed is the
// partial object of fields to replace.
type Submission struct {
	RequestType RequestType
	Reason      string
	Original    []byte
	Proposed    []byte
}

// ValidateSubmission rejects submissions that must never reach storage.
func ValidateSubmission(s Submission) error {
	if strings.TrimSpace(s.Reason) == "" {
		return ErrReasonRequired
	}

	switch s.RequestType {
	case RequestUpdate:
		if isEmptyJSON(s.Proposed) {
			return ErrProposalRequired
		}
		noop, err := IsNoOp(s.Original, s.Proposed)
		if err != nil {
			return err
		}
		if noop {
			return ErrNoChange
		}
	case RequestDelete:
		if !isEmptyJSON(s.Proposed) {
			return ErrUnexpectedProposal
		}
	default:
		return ErrUnknownRequestType
	}
	return nil
}

// IsNoOp reports whether every field of proposed already holds the same
// value in original. Comparison is on decoded JSON, so 1 and 1.0 are equal
// and key order is irrelevant.
func IsNoOp(original, proposed []byte) (bool, error) {
	var orig map[string]interface{}
	if len(original) > 0 {
		if err := json.Unmarshal(original, &orig); err != nil {
			return false, fmt.Errorf("decode original snapshot: %w", err)
		}
	}
	var next map[string]interface{}
	if err := json.Unmarshal(proposed, &next); err != nil {
		return false, fmt.Errorf("decode proposed data: %w", err)
	}

	for key, value := range next {
		current, ok := orig[key]
		if !ok || !reflect.DeepEqual(current, value) {
			return false, nil
		}
	}
	return true, nil
}

func isEmptyJSON(raw []byte) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null" || trimmed == "{}"
}
