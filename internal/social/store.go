package social

import "stayloop/backend/internal/models"

// RelationshipStore is the durable home of friendship edges. Every write is a
// conditional write keyed on the unordered profile pair, so concurrent callers
// cannot produce two rows for the same pair or revive a row that moved on.
type RelationshipStore interface {
	// FindByPair returns the edge for the unordered pair {a, b}, or nil when
	// no row exists.
	FindByPair(a, b uint) (*models.Relationship, error)

	// CreateIfAbsent inserts rel unless a row for its pair already exists, in
	// either direction and any status. Reports false when the pair was taken.
	CreateIfAbsent(rel *models.Relationship) (bool, error)

	// AcceptPending flips the pair's row to accepted, provided it is still a
	// pending request from requesterID to addresseeID at write time.
	AcceptPending(requesterID, addresseeID uint) (bool, error)

	// DeletePending removes the pair's row, provided it is still a pending
	// request from requesterID to addresseeID at write time.
	DeletePending(requesterID, addresseeID uint) (bool, error)
}

// JoinOutcome is the result of the conditional membership insert.
type JoinOutcome int

const (
	Joined JoinOutcome = iota

	// JoinDuplicate means a row for (entity, profile) already existed.
	JoinDuplicate

	// JoinFull means the entity's counter was at capacity at write time.
	JoinFull
)

// EntityInfo describes one capacity-bounded entity (a group or an activity).
type EntityInfo struct {
	OwnerID  uint
	Capacity int
	Current  int
}

// MembershipStore persists capacity-bounded membership rows for one entity
// kind, parameterized by the row type M. Join and Leave mutate the membership
// row and the entity counter in a single atomic step; the capacity predicate
// is evaluated at write time, never from an earlier read.
type MembershipStore[M any] interface {
	// Info returns the entity's owner, configured maximum, and counter.
	Info(entityID uint) (EntityInfo, error)

	// Join inserts the membership row and bumps the counter atomically.
	Join(entityID, profileID uint) (JoinOutcome, error)

	// Leave deletes the row and decrements the counter atomically. Reports
	// false when the profile was not a member.
	Leave(entityID, profileID uint) (bool, error)

	// Members lists membership rows ordered by join time, oldest first.
	Members(entityID uint) ([]M, error)

	// Count recomputes membership from rows. Reporting only; capacity
	// decisions always go through Join's conditional write.
	Count(entityID uint) (int64, error)
}
