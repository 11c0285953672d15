package events

import "time"

const (
	ApprovalTransitionTopic     = "hr.approval.transition.v1"
	ApprovalTransitionEventType = "approval_transition"
)

type Transition string

const (
	TransitionSubmitted Transition = "SUBMITTED"
	TransitionAdvanced  Transition = "ADVANCED"
	TransitionApproved  Transition = "APPROVED"
	TransitionRejected  Transition = "REJECTED"
)

// ApprovalTransitionEvent is emitted for every approval state change.
// NextApproval is set while the request is still pending.
type ApprovalTransitionEvent struct {
	EventType     string     `json:"event_type"`
	RequestType   string     `json:"request_type"`
	RequestID     string     `json:"request_id"`
	Transition    Transition `json:"transition"`
	Level         int        `json:"level"`
	ActorNo       int64      `json:"actor_no"`
	RequesterNo   int64      `json:"requester_no"`
	NextApproval  *int64     `json:"next_approval,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	CorrelationID string     `json:"correlation_id,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}
