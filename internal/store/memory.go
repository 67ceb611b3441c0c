package store

import (
	"sync"
	"time"

	"stayloop/backend/internal/models"
	"stayloop/backend/internal/social"
)

// Memory implementations of the social store interfaces. They serve the
// manager tests and database-free local runs; one mutex per store makes every
// conditional write atomic, which is the whole contract the managers rely on.

// MemoryRelationshipStore keeps friendship edges in a pair-keyed map.
type MemoryRelationshipStore struct {
	mu   sync.Mutex
	rows map[[2]uint]models.Relationship
}

func NewMemoryRelationshipStore() *MemoryRelationshipStore {
	return &MemoryRelationshipStore{rows: make(map[[2]uint]models.Relationship)}
}

func pairOf(a, b uint) [2]uint {
	low, high := models.PairKey(a, b)
	return [2]uint{low, high}
}

func (s *MemoryRelationshipStore) FindByPair(a, b uint) (*models.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[pairOf(a, b)]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryRelationshipStore) CreateIfAbsent(rel *models.Relationship) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := [2]uint{rel.ProfileLowID, rel.ProfileHighID}
	if _, ok := s.rows[key]; ok {
		return false, nil
	}

	now := time.Now().UTC()
	rel.CreatedAt = now
	rel.UpdatedAt = now
	s.rows[key] = *rel
	return true, nil
}

func (s *MemoryRelationshipStore) AcceptPending(requesterID, addresseeID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairOf(requesterID, addresseeID)
	row, ok := s.rows[key]
	if !ok || row.Status != models.RelationshipPending || row.RequesterID != requesterID || row.AddresseeID != addresseeID {
		return false, nil
	}

	row.Status = models.RelationshipAccepted
	row.UpdatedAt = time.Now().UTC()
	s.rows[key] = row
	return true, nil
}

func (s *MemoryRelationshipStore) DeletePending(requesterID, addresseeID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairOf(requesterID, addresseeID)
	row, ok := s.rows[key]
	if !ok || row.Status != models.RelationshipPending || row.RequesterID != requesterID || row.AddresseeID != addresseeID {
		return false, nil
	}

	delete(s.rows, key)
	return true, nil
}

type memEntity struct {
	ownerID  uint
	capacity int
	current  int
}

type memMember[M any] struct {
	profileID uint
	row       M
}

// MemoryMembershipStore keeps one entity kind's membership in maps guarded by
// a single mutex.
type MemoryMembershipStore[M any] struct {
	mu       sync.Mutex
	entities map[uint]*memEntity
	members  map[uint][]memMember[M]
	newRow   func(entityID, profileID uint, joinedAt time.Time) M
}

func NewMemoryGroupStore() *MemoryMembershipStore[models.GroupMembership] {
	return &MemoryMembershipStore[models.GroupMembership]{
		entities: make(map[uint]*memEntity),
		members:  make(map[uint][]memMember[models.GroupMembership]),
		newRow: func(entityID, profileID uint, joinedAt time.Time) models.GroupMembership {
			return models.GroupMembership{
				GroupID:   entityID,
				ProfileID: profileID,
				Role:      models.RoleMember,
				JoinedAt:  joinedAt,
			}
		},
	}
}

func NewMemoryActivityStore() *MemoryMembershipStore[models.ActivityParticipation] {
	return &MemoryMembershipStore[models.ActivityParticipation]{
		entities: make(map[uint]*memEntity),
		members:  make(map[uint][]memMember[models.ActivityParticipation]),
		newRow: func(entityID, profileID uint, joinedAt time.Time) models.ActivityParticipation {
			return models.ActivityParticipation{
				ActivityID: entityID,
				ProfileID:  profileID,
				Status:     models.ParticipationConfirmed,
				JoinedAt:   joinedAt,
			}
		},
	}
}

// AddEntity registers a capacity-bounded entity with an empty member list.
func (s *MemoryMembershipStore[M]) AddEntity(entityID, ownerID uint, capacity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities[entityID] = &memEntity{ownerID: ownerID, capacity: capacity}
}

func (s *MemoryMembershipStore[M]) Info(entityID uint) (social.EntityInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.entities[entityID]
	if !ok {
		return social.EntityInfo{}, social.ErrNotFound
	}
	return social.EntityInfo{OwnerID: entity.ownerID, Capacity: entity.capacity, Current: entity.current}, nil
}

func (s *MemoryMembershipStore[M]) Join(entityID, profileID uint) (social.JoinOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.entities[entityID]
	if !ok {
		return social.JoinFull, nil
	}

	for _, member := range s.members[entityID] {
		if member.profileID == profileID {
			return social.JoinDuplicate, nil
		}
	}
	if entity.current >= entity.capacity {
		return social.JoinFull, nil
	}

	row := s.newRow(entityID, profileID, time.Now().UTC())
	s.members[entityID] = append(s.members[entityID], memMember[M]{profileID: profileID, row: row})
	entity.current++
	return social.Joined, nil
}

func (s *MemoryMembershipStore[M]) Leave(entityID, profileID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.entities[entityID]
	if !ok {
		return false, nil
	}

	members := s.members[entityID]
	for i, member := range members {
		if member.profileID == profileID {
			s.members[entityID] = append(members[:i:i], members[i+1:]...)
			entity.current--
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryMembershipStore[M]) Members(entityID uint) ([]M, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.members[entityID]
	rows := make([]M, len(members))
	for i, member := range members {
		rows[i] = member.row
	}
	return rows, nil
}

func (s *MemoryMembershipStore[M]) Count(entityID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.members[entityID])), nil
}

// Guard against interface drift at compile time.
var (
	_ social.RelationshipStore                               = (*MemoryRelationshipStore)(nil)
	_ social.RelationshipStore                               = (*GormRelationshipStore)(nil)
	_ social.MembershipStore[models.GroupMembership]         = (*MemoryMembershipStore[models.GroupMembership])(nil)
	_ social.MembershipStore[models.GroupMembership]         = (*GormMembershipStore[models.GroupMembership])(nil)
	_ social.MembershipStore[models.ActivityParticipation]   = (*GormMembershipStore[models.ActivityParticipation])(nil)
)
