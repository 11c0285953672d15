package approval

import (
	"context"

	"go-hrms/internal/events"
)

// Notifier receives approval transitions after the deciding transaction has
// committed. Its errors are logged by the engine and go no further.
//
//go:generate mockgen -source=approval_notifier.go -destination=mock/approval_notifier_mock.go -package=mock
type Notifier interface {
	Notify(ctx context.Context, event events.ApprovalTransitionEvent) error
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, events.ApprovalTransitionEvent) error { return nil }
