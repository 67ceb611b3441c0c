package store

import (
	"fmt"
	"testing"

	"stayloop/backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory database. The shared cache
// keeps the schema visible to every connection gorm opens for transactions.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Relationship{},
		&models.Listing{},
		&models.Amenity{},
		&models.Group{},
		&models.GroupMembership{},
		&models.Activity{},
		&models.ActivityParticipation{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestCreateIfAbsentPairUniqueness(t *testing.T) {
	s := NewRelationshipStore(openTestDB(t))

	first := models.NewPendingRelationship(1, 2)
	created, err := s.CreateIfAbsent(&first)
	if err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}
	if !created {
		t.Fatal("first insert reported not created")
	}

	// The reverse direction targets the same (low, high) key.
	second := models.NewPendingRelationship(2, 1)
	created, err = s.CreateIfAbsent(&second)
	if err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}
	if created {
		t.Fatal("reverse insert slipped past the pair key")
	}

	rel, err := s.FindByPair(2, 1)
	if err != nil {
		t.Fatalf("FindByPair failed: %v", err)
	}
	if rel == nil {
		t.Fatal("pair row not found")
	}
	if rel.RequesterID != 1 || rel.AddresseeID != 2 {
		t.Errorf("row direction is %d->%d, want 1->2", rel.RequesterID, rel.AddresseeID)
	}
}

func TestFindByPairAbsent(t *testing.T) {
	s := NewRelationshipStore(openTestDB(t))

	rel, err := s.FindByPair(1, 2)
	if err != nil {
		t.Fatalf("FindByPair failed: %v", err)
	}
	if rel != nil {
		t.Fatalf("expected nil for an absent pair, got %+v", rel)
	}
}

func TestAcceptPendingPredicate(t *testing.T) {
	s := NewRelationshipStore(openTestDB(t))

	rel := models.NewPendingRelationship(1, 2)
	if _, err := s.CreateIfAbsent(&rel); err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}

	// Wrong direction must not match the row.
	ok, err := s.AcceptPending(2, 1)
	if err != nil {
		t.Fatalf("AcceptPending failed: %v", err)
	}
	if ok {
		t.Fatal("accept matched with requester and addressee swapped")
	}

	ok, err = s.AcceptPending(1, 2)
	if err != nil {
		t.Fatalf("AcceptPending failed: %v", err)
	}
	if !ok {
		t.Fatal("accept did not match the pending row")
	}

	// The row is no longer pending, so a second accept finds nothing.
	ok, err = s.AcceptPending(1, 2)
	if err != nil {
		t.Fatalf("AcceptPending failed: %v", err)
	}
	if ok {
		t.Fatal("accept matched an already accepted row")
	}

	stored, err := s.FindByPair(1, 2)
	if err != nil {
		t.Fatalf("FindByPair failed: %v", err)
	}
	if stored == nil || stored.Status != models.RelationshipAccepted {
		t.Fatalf("stored row is %+v, want status accepted", stored)
	}
}

func TestDeletePendingPredicate(t *testing.T) {
	s := NewRelationshipStore(openTestDB(t))

	rel := models.NewPendingRelationship(1, 2)
	if _, err := s.CreateIfAbsent(&rel); err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}
	if _, err := s.AcceptPending(1, 2); err != nil {
		t.Fatalf("AcceptPending failed: %v", err)
	}

	// Accepted rows are out of reach for the pending delete.
	ok, err := s.DeletePending(1, 2)
	if err != nil {
		t.Fatalf("DeletePending failed: %v", err)
	}
	if ok {
		t.Fatal("delete matched an accepted row")
	}

	stored, err := s.FindByPair(1, 2)
	if err != nil {
		t.Fatalf("FindByPair failed: %v", err)
	}
	if stored == nil {
		t.Fatal("accepted row disappeared")
	}
}

func TestDeletePendingFreesPair(t *testing.T) {
	s := NewRelationshipStore(openTestDB(t))

	rel := models.NewPendingRelationship(1, 2)
	if _, err := s.CreateIfAbsent(&rel); err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}

	ok, err := s.DeletePending(1, 2)
	if err != nil {
		t.Fatalf("DeletePending failed: %v", err)
	}
	if !ok {
		t.Fatal("delete did not match the pending row")
	}

	fresh := models.NewPendingRelationship(2, 1)
	created, err := s.CreateIfAbsent(&fresh)
	if err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}
	if !created {
		t.Fatal("pair was not reusable after the pending row was deleted")
	}
}
