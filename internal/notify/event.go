package notify

import "github.com/google/uuid"

// Event types emitted by the managers on state transitions.
const (
	FriendRequested = "friend.requested"
	FriendAccepted  = "friend.accepted"
	MemberJoined    = "member.joined"
	CapacityReached = "capacity.reached"
)

// Event is what a manager hands to the dispatcher when a transition succeeds.
type Event struct {
	ID              string      `json:"id"`
	Type            string      `json:"type"`
	TargetProfileID uint        `json:"target_profile_id"`
	Payload         interface{} `json:"payload"`
}

// NewEvent assigns a fresh id so downstream delivery can deduplicate.
func NewEvent(eventType string, targetProfileID uint, payload interface{}) Event {
	return Event{
		ID:              uuid.NewString(),
		Type:            eventType,
		TargetProfileID: targetProfileID,
		Payload:         payload,
	}
}

// Dispatcher receives events fire-and-forget. Delivery semantics (persistence,
// retries, ordering) belong to the implementation, not to the managers.
type Dispatcher interface {
	Dispatch(Event)
}

// Discard is a Dispatcher that drops every event.
var Discard Dispatcher = discard{}

type discard struct{}

func (discard) Dispatch(Event) {}
