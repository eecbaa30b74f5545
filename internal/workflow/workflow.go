// Package workflow holds the review state machine shared by change requests
// and leave applications, plus the gate every change-request submission
// passes before it is stored.
package workflow

import (
	"errors"
	"fmt"
)

// Status is the review state of a request.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Decision is a reviewer's verdict.
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// RequestType distinguishes edits from removals.
type RequestType string

const (
	RequestUpdate RequestType = "UPDATE"
	RequestDelete RequestType = "DELETE"
)

var (
	ErrInvalidTransition  = errors.New("request is no longer pending")
	ErrInvalidDecision    = errors.New("decision must be APPROVED or REJECTED")
	ErrReasonRequired     = errors.New("a reason is required")
	ErrProposalRequired   = errors.New("an update request must carry the proposed data")
	ErrNoChange           = errors.New("the proposed data does not change anything")
	ErrUnexpectedProposal = errors.New("a delete request must not carry proposed data")
	ErrUnknownRequestType = errors.New("request type must be UPDATE or DELETE")
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s accepts no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Transition applies decision to current. Only PENDING moves.
func Transition(current Status, decision Decision) (Status, error) {
	if decision != DecisionApproved && decision != DecisionRejected {
		return current, fmt.Errorf("%w: got %q", ErrInvalidDecision, decision)
	}
	if current != StatusPending {
		return current, fmt.Errorf("%w: status is %s", ErrInvalidTransition, current)
	}
	return Status(decision), nil
}
