package store

import (
	"errors"
	"testing"
	"time"

	"stayloop/backend/internal/models"
	"stayloop/backend/internal/social"

	"gorm.io/gorm"
)

func seedGroup(t *testing.T, db *gorm.DB, ownerID uint, max int) uint {
	t.Helper()

	group := models.Group{
		Name:       "climbing crew",
		OwnerID:    ownerID,
		MaxMembers: max,
	}
	if err := db.Create(&group).Error; err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}
	return group.ID
}

func seedActivity(t *testing.T, db *gorm.DB, hostID uint, max int) uint {
	t.Helper()

	activity := models.Activity{
		Title:           "morning run",
		HostID:          hostID,
		StartsAt:        time.Now().Add(24 * time.Hour),
		MaxParticipants: max,
	}
	if err := db.Create(&activity).Error; err != nil {
		t.Fatalf("failed to seed activity: %v", err)
	}
	return activity.ID
}

func TestGroupInfo(t *testing.T) {
	db := openTestDB(t)
	s := NewGroupStore(db)
	groupID := seedGroup(t, db, 7, 5)

	info, err := s.Info(groupID)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.OwnerID != 7 || info.Capacity != 5 || info.Current != 0 {
		t.Errorf("info is %+v, want owner 7, capacity 5, current 0", info)
	}

	if _, err := s.Info(groupID + 100); !errors.Is(err, social.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown group, got %v", err)
	}
}

func TestInfoIgnoresDeletedGroup(t *testing.T) {
	db := openTestDB(t)
	s := NewGroupStore(db)
	groupID := seedGroup(t, db, 7, 5)

	if err := db.Delete(&models.Group{}, groupID).Error; err != nil {
		t.Fatalf("failed to soft delete group: %v", err)
	}
	if _, err := s.Info(groupID); !errors.Is(err, social.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for soft-deleted group, got %v", err)
	}
}

func TestJoinBumpsCounterWithRow(t *testing.T) {
	db := openTestDB(t)
	s := NewGroupStore(db)
	groupID := seedGroup(t, db, 7, 3)

	outcome, err := s.Join(groupID, 2)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if outcome != social.Joined {
		t.Fatalf("outcome is %v, want Joined", outcome)
	}

	info, err := s.Info(groupID)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.Current != 1 {
		t.Errorf("counter is %d, want 1", info.Current)
	}

	count, err := s.Count(groupID)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("row count is %d, want 1", count)
	}
}

func TestJoinDuplicateLeavesCounterAlone(t *testing.T) {
	db := openTestDB(t)
	s := NewGroupStore(db)
	groupID := seedGroup(t, db, 7, 3)

	if _, err := s.Join(groupID, 2); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	outcome, err := s.Join(groupID, 2)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if outcome != social.JoinDuplicate {
		t.Fatalf("outcome is %v, want JoinDuplicate", outcome)
	}

	info, _ := s.Info(groupID)
	if info.Current != 1 {
		t.Errorf("counter is %d after duplicate join, want 1", info.Current)
	}
}

func TestJoinFullRollsBackRow(t *testing.T) {
	db := openTestDB(t)
	s := NewGroupStore(db)
	groupID := seedGroup(t, db, 7, 1)

	if _, err := s.Join(groupID, 2); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	outcome, err := s.Join(groupID, 3)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if outcome != social.JoinFull {
		t.Fatalf("outcome is %v, want JoinFull", outcome)
	}

	// The rejected join must not leave a membership row behind.
	count, err := s.Count(groupID)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("row count is %d after rejected join, want 1", count)
	}
	info, _ := s.Info(groupID)
	if info.Current != 1 {
		t.Errorf("counter is %d after rejected join, want 1", info.Current)
	}
}

func TestDuplicateReportedBeforeFull(t *testing.T) {
	db := openTestDB(t)
	s := NewGroupStore(db)
	groupID := seedGroup(t, db, 7, 1)

	if _, err := s.Join(groupID, 2); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	// The member re-joins a full group; the row conflict answers first.
	outcome, err := s.Join(groupID, 2)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if outcome != social.JoinDuplicate {
		t.Fatalf("outcome is %v, want JoinDuplicate", outcome)
	}
}

func TestLeaveRoundTrip(t *testing.T) {
	db := openTestDB(t)
	s := NewGroupStore(db)
	groupID := seedGroup(t, db, 7, 1)

	if _, err := s.Join(groupID, 2); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	left, err := s.Leave(groupID, 2)
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if !left {
		t.Fatal("Leave reported no row removed")
	}

	info, _ := s.Info(groupID)
	if info.Current != 0 {
		t.Errorf("counter is %d after leave, want 0", info.Current)
	}

	// The freed seat is usable again.
	outcome, err := s.Join(groupID, 3)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if outcome != social.Joined {
		t.Fatalf("outcome is %v, want Joined", outcome)
	}
}

func TestLeaveNonMember(t *testing.T) {
	db := openTestDB(t)
	s := NewGroupStore(db)
	groupID := seedGroup(t, db, 7, 2)

	left, err := s.Leave(groupID, 9)
	if err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if left {
		t.Fatal("Leave of a non-member reported a removal")
	}

	info, _ := s.Info(groupID)
	if info.Current != 0 {
		t.Errorf("counter is %d, want 0", info.Current)
	}
}

func TestMembersOrderAndProfiles(t *testing.T) {
	db := openTestDB(t)
	s := NewGroupStore(db)
	groupID := seedGroup(t, db, 7, 10)

	nicknames := map[uint]string{4: "ada", 2: "lin", 8: "mo"}
	for id, nickname := range nicknames {
		profile := models.Profile{Nickname: nickname, Email: nickname + "@example.com", PasswordHash: "x"}
		profile.ID = id
		if err := db.Create(&profile).Error; err != nil {
			t.Fatalf("failed to seed profile: %v", err)
		}
	}

	for _, profileID := range []uint{4, 2, 8} {
		if _, err := s.Join(groupID, profileID); err != nil {
			t.Fatalf("Join failed: %v", err)
		}
		time.Sleep(5 * time.Millisecond) // distinct join timestamps
	}

	members, err := s.Members(groupID)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	want := []uint{4, 2, 8}
	if len(members) != len(want) {
		t.Fatalf("got %d members, want %d", len(members), len(want))
	}
	for i, row := range members {
		if row.ProfileID != want[i] {
			t.Errorf("member %d is profile %d, want %d", i, row.ProfileID, want[i])
		}
		if row.Profile.Nickname != nicknames[want[i]] {
			t.Errorf("member %d nickname is %q, want %q", i, row.Profile.Nickname, nicknames[want[i]])
		}
	}
}

func TestActivityStoreUsesItsOwnTables(t *testing.T) {
	db := openTestDB(t)
	s := NewActivityStore(db)
	activityID := seedActivity(t, db, 3, 2)

	info, err := s.Info(activityID)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.OwnerID != 3 || info.Capacity != 2 {
		t.Errorf("info is %+v, want host 3 and capacity 2", info)
	}

	if _, err := s.Join(activityID, 5); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if _, err := s.Join(activityID, 6); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	outcome, err := s.Join(activityID, 7)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	if outcome != social.JoinFull {
		t.Fatalf("outcome is %v, want JoinFull", outcome)
	}

	members, err := s.Members(activityID)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("got %d participants, want 2", len(members))
	}
	for _, row := range members {
		if row.Status != models.ParticipationConfirmed {
			t.Errorf("participant %d has status %q, want %q", row.ProfileID, row.Status, models.ParticipationConfirmed)
		}
	}
}
