package social

import (
	"fmt"

	"stayloop/backend/internal/models"
	"stayloop/backend/internal/notify"
)

// FriendshipStatus is the viewer-relative reading of a relationship edge.
type FriendshipStatus string

const (
	StatusNone            FriendshipStatus = "none"
	StatusPendingOutgoing FriendshipStatus = "pending_outgoing"
	StatusPendingIncoming FriendshipStatus = "pending_incoming"
	StatusAccepted        FriendshipStatus = "accepted"
	StatusBlocked         FriendshipStatus = "blocked"
)

// FriendshipManager owns the lifecycle of the friendship edge between two
// profiles. Each operation re-reads current state from the store, evaluates
// the transition, and performs exactly one conditional write; the store is the
// sole arbiter between concurrent callers, the manager holds no locks.
type FriendshipManager struct {
	store      RelationshipStore
	dispatcher notify.Dispatcher
}

func NewFriendshipManager(store RelationshipStore, dispatcher notify.Dispatcher) *FriendshipManager {
	return &FriendshipManager{store: store, dispatcher: dispatcher}
}

// FriendEventPayload is carried by friend request and acceptance events.
type FriendEventPayload struct {
	RequesterID uint `json:"requester_id"`
	AddresseeID uint `json:"addressee_id"`
}

// Status derives how the pair {viewer, other} looks from the viewer's side.
func (m *FriendshipManager) Status(viewerID, otherID uint) (FriendshipStatus, error) {
	if viewerID == otherID {
		return StatusNone, nil
	}
	rel, err := m.store.FindByPair(viewerID, otherID)
	if err != nil {
		return StatusNone, err
	}
	if rel == nil {
		return StatusNone, nil
	}
	switch rel.Status {
	case models.RelationshipAccepted:
		return StatusAccepted, nil
	case models.RelationshipBlocked:
		return StatusBlocked, nil
	}
	if rel.RequesterID == viewerID {
		return StatusPendingOutgoing, nil
	}
	return StatusPendingIncoming, nil
}

// SendRequest creates a pending edge from requester to addressee. The insert
// is keyed on the unordered pair, so two profiles requesting each other at the
// same instant yield exactly one row and one ErrConflict.
func (m *FriendshipManager) SendRequest(requesterID, addresseeID uint) error {
	if requesterID == addresseeID {
		return fmt.Errorf("%w: you cannot send a friend request to yourself", ErrInvalidArgument)
	}

	rel := models.NewPendingRelationship(requesterID, addresseeID)
	created, err := m.store.CreateIfAbsent(&rel)
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("%w: a request or friendship already exists between these profiles", ErrConflict)
	}

	m.dispatcher.Dispatch(notify.NewEvent(notify.FriendRequested, addresseeID, FriendEventPayload{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
	}))
	return nil
}

// Accept lets the stored addressee turn a pending request into a friendship.
func (m *FriendshipManager) Accept(addresseeID, requesterID uint) error {
	rel, err := m.store.FindByPair(addresseeID, requesterID)
	if err != nil {
		return err
	}
	if rel == nil || rel.Status != models.RelationshipPending {
		return fmt.Errorf("%w: no pending friend request from this profile", ErrNotFound)
	}
	if rel.AddresseeID != addresseeID {
		return fmt.Errorf("%w: only the addressee can accept a friend request", ErrPermissionDenied)
	}

	accepted, err := m.store.AcceptPending(rel.RequesterID, rel.AddresseeID)
	if err != nil {
		return err
	}
	if !accepted {
		// The row moved between the read and the conditional write.
		return fmt.Errorf("%w: no pending friend request from this profile", ErrNotFound)
	}

	m.dispatcher.Dispatch(notify.NewEvent(notify.FriendAccepted, rel.RequesterID, FriendEventPayload{
		RequesterID: rel.RequesterID,
		AddresseeID: rel.AddresseeID,
	}))
	return nil
}

// Reject lets the stored addressee delete a pending request. The pair ends up
// with no row, so either side may send a fresh request afterwards.
func (m *FriendshipManager) Reject(addresseeID, requesterID uint) error {
	rel, err := m.store.FindByPair(addresseeID, requesterID)
	if err != nil {
		return err
	}
	if rel == nil || rel.Status != models.RelationshipPending {
		return fmt.Errorf("%w: no pending friend request from this profile", ErrNotFound)
	}
	if rel.AddresseeID != addresseeID {
		return fmt.Errorf("%w: only the addressee can reject a friend request", ErrPermissionDenied)
	}

	deleted, err := m.store.DeletePending(rel.RequesterID, rel.AddresseeID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: no pending friend request from this profile", ErrNotFound)
	}
	return nil
}

// Cancel lets the stored requester withdraw their own pending request.
// Cancelling a request that is already gone is a no-op, not an error.
func (m *FriendshipManager) Cancel(requesterID, addresseeID uint) error {
	rel, err := m.store.FindByPair(requesterID, addresseeID)
	if err != nil {
		return err
	}
	if rel == nil {
		return nil
	}
	if rel.Status != models.RelationshipPending {
		return fmt.Errorf("%w: the request is no longer pending", ErrConflict)
	}
	if rel.RequesterID != requesterID {
		return fmt.Errorf("%w: only the requester can cancel a friend request", ErrPermissionDenied)
	}

	// A concurrent accept or reject winning the race leaves nothing to
	// delete; that still counts as a successful cancel.
	_, err = m.store.DeletePending(requesterID, addresseeID)
	return err
}
