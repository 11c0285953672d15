package txmanager

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

type contextKey string

const (
	txKey    contextKey = "gorm_tx"
	hooksKey contextKey = "after_commit"
)

// Manager runs a unit of work in one database transaction. Repositories pick
// the transaction up from the context through GetDB.
//
//go:generate mockgen -source=txmanager.go -destination=mock/txmanager_mock.go -package=mock
type Manager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type manager struct {
	db *gorm.DB
}

func New(db *gorm.DB) Manager {
	return &manager{db: db}
}

// RunInTx joins an outer transaction when ctx already carries one.
func (m *manager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}

	h := &hooks{}
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey, tx)
		return fn(context.WithValue(txCtx, hooksKey, h))
	})
	if err != nil {
		return err
	}
	h.run()
	return nil
}

// GetDB returns the transaction carried by ctx, or rootDB.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}

// AfterCommit schedules fn to run once the outermost transaction in ctx has
// committed. Outside a transaction fn runs immediately. fn is dropped on
// rollback.
func AfterCommit(ctx context.Context, fn func()) {
	if h, ok := ctx.Value(hooksKey).(*hooks); ok {
		h.add(fn)
		return
	}
	fn()
}

type hooks struct {
	mu  sync.Mutex
	fns []func()
}

func (h *hooks) add(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fn)
}

func (h *hooks) run() {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Passthrough runs fn without a database. It still honours AfterCommit so
// in-memory tests see the same ordering.
type Passthrough struct{}

func (Passthrough) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(hooksKey).(*hooks); ok {
		return fn(ctx)
	}

	h := &hooks{}
	if err := fn(context.WithValue(ctx, hooksKey, h)); err != nil {
		return err
	}
	h.run()
	return nil
}
