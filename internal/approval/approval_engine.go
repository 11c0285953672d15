package approval

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	approvalerrors "go-hrms/internal/approval/errors"
	"go-hrms/internal/approvalchain"
	"go-hrms/internal/approver"
	"go-hrms/internal/events"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/txmanager"
	"go-hrms/internal/sysconfig"
)

type ChainSource interface {
	Levels(ctx context.Context, requestType string) ([]approvalchain.Level, error)
}

type ApproverResolver interface {
	Resolve(ctx context.Context, fn approver.Function, subject approver.Subject, roles sysconfig.Snapshot) (int64, error)
}

type RoleSource interface {
	Snapshot(ctx context.Context) (sysconfig.Snapshot, error)
}

// Submitter is the part of the engine domain services depend on.
type Submitter interface {
	Submit(ctx context.Context, requestType RequestType, req Request) error
}

//go:generate mockgen -source=approval_engine.go -destination=mock/approval_engine_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, requestType RequestType, req Request) error
	Approve(ctx context.Context, requestType RequestType, id uuid.UUID, actorNo int64) (State, error)
	Reject(ctx context.Context, requestType RequestType, id uuid.UUID, actorNo int64, reason string) (State, error)
	Pending(ctx context.Context, requestType RequestType, approverNo int64) ([]Request, error)
}

type Engine struct {
	tx       txmanager.Manager
	chains   ChainSource
	resolver ApproverResolver
	roles    RoleSource
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.RWMutex
	handlers map[RequestType]Handler
}

func NewEngine(
	tx txmanager.Manager,
	chains ChainSource,
	resolver ApproverResolver,
	roles RoleSource,
	notifier Notifier,
	logger ...*zap.Logger,
) *Engine {
	l := zap.L().Named("approval.engine")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.engine")
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Engine{
		tx:       tx,
		chains:   chains,
		resolver: resolver,
		roles:    roles,
		notifier: notifier,
		logger:   l,
		now:      time.Now,
		handlers: map[RequestType]Handler{},
	}
}

// Register installs the handler for h.Type(), replacing any earlier one.
func (e *Engine) Register(handlers ...Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, h := range handlers {
		e.handlers[h.Type()] = h
	}
}

func (e *Engine) handler(t RequestType) (Handler, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	h, ok := e.handlers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", approvalerrors.ErrUnknownRequestType, t)
	}
	return h, nil
}

// Submit resolves the level 1 approver, stores req as PENDING(1) and
// announces it. It joins the caller's transaction if there is one.
func (e *Engine) Submit(ctx context.Context, requestType RequestType, req Request) error {
	h, err := e.handler(requestType)
	if err != nil {
		return err
	}
	levels, roles, err := e.prepare(ctx, requestType)
	if err != nil {
		return err
	}

	return e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		first, err := approvalchain.Select(levels, 1, req.ApprovalScope())
		if err != nil {
			return err
		}
		no, err := e.resolver.Resolve(txCtx, first.Function, subjectOf(req), roles)
		if err != nil {
			return err
		}

		level := 1
		st := req.ApprovalState()
		*st = State{Status: StatusPending, NextApproval: &no, NextAppLevel: &level}

		if err := h.Create(txCtx, req); err != nil {
			return err
		}

		e.emit(txCtx, requestType, req, events.TransitionSubmitted, 1, req.RequesterNo(), "")
		return nil
	})
}

// Approve advances req by one level or, at the last level, approves it and
// runs the request type's side effect.
func (e *Engine) Approve(ctx context.Context, requestType RequestType, id uuid.UUID, actorNo int64) (State, error) {
	h, err := e.handler(requestType)
	if err != nil {
		return State{}, err
	}
	levels, roles, err := e.prepare(ctx, requestType)
	if err != nil {
		return State{}, err
	}

	var out State
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := h.Load(txCtx, id)
		if err != nil {
			return err
		}
		st := req.ApprovalState()
		prev := *st
		if err := checkActor(requestType, "approve", prev, actorNo); err != nil {
			return err
		}

		level := prev.Level()
		final, err := approvalchain.IsFinal(levels, level, req.ApprovalScope())
		if err != nil {
			return err
		}

		transition := events.TransitionAdvanced
		if final {
			now := e.now()
			st.Status = StatusApproved
			st.NextApproval = nil
			st.NextAppLevel = nil
			st.ApprovedBy = &actorNo
			st.ApprovedAt = &now
			transition = events.TransitionApproved
		} else {
			next, err := approvalchain.Select(levels, level+1, req.ApprovalScope())
			if err != nil {
				return err
			}
			no, err := e.resolver.Resolve(txCtx, next.Function, subjectOf(req), roles)
			if err != nil {
				return err
			}
			nextLevel := level + 1
			st.NextApproval = &no
			st.NextAppLevel = &nextLevel
		}
		st.Version = prev.Version + 1

		if err := h.Save(txCtx, req, prev); err != nil {
			return err
		}
		if final {
			if err := h.OnApproved(txCtx, req, actorNo); err != nil {
				return fmt.Errorf("apply %s approval: %w", requestType, err)
			}
		}

		e.emit(txCtx, requestType, req, transition, level, actorNo, "")
		out = *st
		return nil
	})
	if err != nil {
		return State{}, err
	}

	e.logger.Info("approval recorded",
		zap.String("request_type", string(requestType)),
		zap.String("request_id", id.String()),
		zap.Int64("actor_no", actorNo),
		zap.String("status", string(out.Status)),
	)
	return out, nil
}

// Reject closes req. No side effect is applied.
func (e *Engine) Reject(ctx context.Context, requestType RequestType, id uuid.UUID, actorNo int64, reason string) (State, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return State{}, approvalerrors.ErrRejectionReasonRequired
	}
	h, err := e.handler(requestType)
	if err != nil {
		return State{}, err
	}

	var out State
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		req, err := h.Load(txCtx, id)
		if err != nil {
			return err
		}
		st := req.ApprovalState()
		prev := *st
		if err := checkActor(requestType, "reject", prev, actorNo); err != nil {
			return err
		}

		now := e.now()
		st.Status = StatusRejected
		st.NextApproval = nil
		st.NextAppLevel = nil
		st.RejectedBy = &actorNo
		st.RejectedAt = &now
		st.RejectionReason = &reason
		st.Version = prev.Version + 1

		if err := h.Save(txCtx, req, prev); err != nil {
			return err
		}

		e.emit(txCtx, requestType, req, events.TransitionRejected, prev.Level(), actorNo, reason)
		out = *st
		return nil
	})
	if err != nil {
		return State{}, err
	}

	e.logger.Info("request rejected",
		zap.String("request_type", string(requestType)),
		zap.String("request_id", id.String()),
		zap.Int64("actor_no", actorNo),
	)
	return out, nil
}

func (e *Engine) Pending(ctx context.Context, requestType RequestType, approverNo int64) ([]Request, error) {
	h, err := e.handler(requestType)
	if err != nil {
		return nil, err
	}
	return h.Pending(ctx, approverNo)
}

// prepare loads the chain and a role snapshot once per operation.
func (e *Engine) prepare(ctx context.Context, requestType RequestType) ([]approvalchain.Level, sysconfig.Snapshot, error) {
	levels, err := e.chains.Levels(ctx, string(requestType))
	if err != nil {
		return nil, sysconfig.Snapshot{}, err
	}
	roles, err := e.roles.Snapshot(ctx)
	if err != nil {
		return nil, sysconfig.Snapshot{}, err
	}
	return levels, roles, nil
}

func (e *Engine) emit(txCtx context.Context, requestType RequestType, req Request, transition events.Transition, level int, actorNo int64, reason string) {
	st := req.ApprovalState()
	event := events.ApprovalTransitionEvent{
		EventType:     events.ApprovalTransitionEventType,
		RequestType:   string(requestType),
		RequestID:     req.RequestID().String(),
		Transition:    transition,
		Level:         level,
		ActorNo:       actorNo,
		RequesterNo:   req.RequesterNo(),
		NextApproval:  st.NextApproval,
		Reason:        reason,
		CorrelationID: contextutil.GetRequestID(txCtx),
		OccurredAt:    e.now().UTC(),
	}

	log := contextutil.GetLogger(txCtx, e.logger)
	notifyCtx := context.WithoutCancel(txCtx)
	txmanager.AfterCommit(txCtx, func() {
		if err := e.notifier.Notify(notifyCtx, event); err != nil {
			log.Warn("approval notification failed",
				zap.String("request_type", event.RequestType),
				zap.String("request_id", event.RequestID),
				zap.String("transition", string(event.Transition)),
				zap.Error(err),
			)
		}
	})
}

func checkActor(requestType RequestType, action string, st State, actorNo int64) error {
	if !st.IsPending() {
		return &InvalidTransitionError{Action: action, From: st.Status}
	}
	if st.NextApproval == nil || *st.NextApproval != actorNo {
		return &UnauthorizedApproverError{RequestType: requestType, ActorNo: actorNo, Expected: st.NextApproval}
	}
	return nil
}

func subjectOf(req Request) approver.Subject {
	scope := req.ApprovalScope()
	return approver.Subject{
		EmployeeNo:     req.RequesterNo(),
		DepartmentCode: scope.DepartmentCode,
		ProjectCode:    scope.ProjectCode,
	}
}
