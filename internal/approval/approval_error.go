package approval

import (
	"fmt"

	approvalerrors "go-hrms/internal/approval/errors"
)

// UnauthorizedApproverError is returned when the actor is not the stored
// next approver. Expected is nil when nobody is pending.
type UnauthorizedApproverError struct {
	RequestType RequestType
	ActorNo     int64
	Expected    *int64
}

func (e *UnauthorizedApproverError) Error() string {
	if e.Expected == nil {
		return fmt.Sprintf("%s: employee %d is not a pending approver", e.RequestType, e.ActorNo)
	}
	return fmt.Sprintf("%s: employee %d is not the pending approver (%d)", e.RequestType, e.ActorNo, *e.Expected)
}

func (e *UnauthorizedApproverError) Unwrap() error {
	return approvalerrors.ErrUnauthorizedApprover
}

type InvalidTransitionError struct {
	Action string
	From   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a request in status %s", e.Action, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return approvalerrors.ErrInvalidTransition
}

// ConcurrentModificationError means the compare-and-swap write found a
// different state than the one read. Callers retry the whole operation.
type ConcurrentModificationError struct {
	Entity string
	ID     string
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently", e.Entity, e.ID)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return approvalerrors.ErrConcurrentModification
}
