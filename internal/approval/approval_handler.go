package approval

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	approvalerrors "go-hrms/internal/approval/errors"
)

// Handler binds one request type to its persistence and its final-approval
// side effect. OnApproved runs in the same transaction as the final Save.
type Handler interface {
	Type() RequestType
	Load(ctx context.Context, id uuid.UUID) (Request, error)
	Create(ctx context.Context, req Request) error
	Save(ctx context.Context, req Request, prev State) error
	OnApproved(ctx context.Context, req Request, actorNo int64) error
	Pending(ctx context.Context, approverNo int64) ([]Request, error)
}

// Persister is the typed storage a Handler is built from. Load must lock the
// row for the rest of the transaction; Save must only write when the stored
// state still equals prev.
type Persister[P Request] interface {
	Load(ctx context.Context, id uuid.UUID) (P, error)
	Create(ctx context.Context, req P) error
	Save(ctx context.Context, req P, prev State) error
	Pending(ctx context.Context, approverNo int64) ([]P, error)
}

type typedHandler[P Request] struct {
	requestType RequestType
	store       Persister[P]
	onApproved  func(ctx context.Context, req P, actorNo int64) error
}

// NewHandler adapts a typed Persister to a Handler. onApproved may be nil.
func NewHandler[P Request](
	requestType RequestType,
	store Persister[P],
	onApproved func(ctx context.Context, req P, actorNo int64) error,
) Handler {
	return &typedHandler[P]{requestType: requestType, store: store, onApproved: onApproved}
}

func (h *typedHandler[P]) Type() RequestType { return h.requestType }

func (h *typedHandler[P]) Load(ctx context.Context, id uuid.UUID) (Request, error) {
	req, err := h.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (h *typedHandler[P]) Create(ctx context.Context, req Request) error {
	typed, err := h.cast(req)
	if err != nil {
		return err
	}
	return h.store.Create(ctx, typed)
}

func (h *typedHandler[P]) Save(ctx context.Context, req Request, prev State) error {
	typed, err := h.cast(req)
	if err != nil {
		return err
	}
	return h.store.Save(ctx, typed, prev)
}

func (h *typedHandler[P]) OnApproved(ctx context.Context, req Request, actorNo int64) error {
	if h.onApproved == nil {
		return nil
	}
	typed, err := h.cast(req)
	if err != nil {
		return err
	}
	return h.onApproved(ctx, typed, actorNo)
}

func (h *typedHandler[P]) Pending(ctx context.Context, approverNo int64) ([]Request, error) {
	rows, err := h.store.Pending(ctx, approverNo)
	if err != nil {
		return nil, err
	}
	out := make([]Request, 0, len(rows))
	for _, r := range rows {
		out = append(out, r)
	}
	return out, nil
}

func (h *typedHandler[P]) cast(req Request) (P, error) {
	typed, ok := req.(P)
	if !ok {
		var zero P
		return zero, fmt.Errorf("%w: %s handler got %T", approvalerrors.ErrUnknownRequestType, h.requestType, req)
	}
	return typed, nil
}
