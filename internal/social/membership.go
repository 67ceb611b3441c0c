package social

import (
	"fmt"

	"stayloop/backend/internal/notify"
)

// EntityKind names which capacity-bounded collection a manager instance serves.
type EntityKind string

const (
	KindGroup    EntityKind = "group"
	KindActivity EntityKind = "activity"
)

// MembershipEventPayload is carried by join and capacity events.
type MembershipEventPayload struct {
	EntityKind EntityKind `json:"entity_kind"`
	EntityID   uint       `json:"entity_id"`
	ProfileID  uint       `json:"profile_id,omitempty"`
}

// MembershipManager applies one capacity-bounded join/leave algorithm to a
// membership row type M. It is instantiated once for groups and once for
// activities. The store's conditional write decides every capacity race; the
// manager never bases a decision on an earlier read.
type MembershipManager[M any] struct {
	kind       EntityKind
	store      MembershipStore[M]
	dispatcher notify.Dispatcher
}

func NewMembershipManager[M any](kind EntityKind, store MembershipStore[M], dispatcher notify.Dispatcher) *MembershipManager[M] {
	return &MembershipManager[M]{kind: kind, store: store, dispatcher: dispatcher}
}

// Join adds profileID to the entity. A join observed against a free slot can
// still lose to a concurrent winner, in which case the store's write-time
// predicate reports it as ErrCapacityExceeded. Strict rejection, no waitlist.
func (m *MembershipManager[M]) Join(entityID, profileID uint) error {
	info, err := m.store.Info(entityID)
	if err != nil {
		return err
	}

	outcome, err := m.store.Join(entityID, profileID)
	if err != nil {
		return err
	}
	switch outcome {
	case JoinDuplicate:
		return fmt.Errorf("%w: you are already a member of this %s", ErrConflict, m.kind)
	case JoinFull:
		return fmt.Errorf("%w: this %s is full", ErrCapacityExceeded, m.kind)
	}

	m.dispatcher.Dispatch(notify.NewEvent(notify.MemberJoined, info.OwnerID, MembershipEventPayload{
		EntityKind: m.kind,
		EntityID:   entityID,
		ProfileID:  profileID,
	}))

	// Re-read after the write: the counter at join time, not the stale one
	// from before it, decides whether the entity just filled up.
	if after, err := m.store.Info(entityID); err == nil && after.Current >= after.Capacity {
		m.dispatcher.Dispatch(notify.NewEvent(notify.CapacityReached, info.OwnerID, MembershipEventPayload{
			EntityKind: m.kind,
			EntityID:   entityID,
		}))
	}
	return nil
}

// Leave removes profileID from the entity, deleting the row and decrementing
// the counter in one atomic step. Leaving an entity the profile is not a
// member of is a no-op, not an error.
func (m *MembershipManager[M]) Leave(entityID, profileID uint) error {
	if _, err := m.store.Info(entityID); err != nil {
		return err
	}
	_, err := m.store.Leave(entityID, profileID)
	return err
}

// ListMembers returns membership rows ordered by join time, oldest first.
func (m *MembershipManager[M]) ListMembers(entityID uint) ([]M, error) {
	if _, err := m.store.Info(entityID); err != nil {
		return nil, err
	}
	return m.store.Members(entityID)
}

// MemberCount recomputes the member count from rows, for display only.
func (m *MembershipManager[M]) MemberCount(entityID uint) (int64, error) {
	return m.store.Count(entityID)
}
