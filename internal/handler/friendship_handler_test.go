package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"stayloop/backend/internal/database"
	"stayloop/backend/internal/models"
	"stayloop/backend/internal/notify"
	"stayloop/backend/internal/social"
	"stayloop/backend/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// identityFromHeader stands in for the JWT middleware: the test client names
// the calling profile in a header.
func identityFromHeader(c *gin.Context) {
	id, err := strconv.ParseUint(c.GetHeader("X-Test-Profile"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing test identity"})
		return
	}
	c.Set("profileID", uint(id))
	c.Next()
}

func buildTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	for _, nickname := range []string{"ada", "lin", "mo"} {
		profile := models.Profile{Nickname: nickname, Email: nickname + "@example.com", PasswordHash: "x"}
		if err := db.Create(&profile).Error; err != nil {
			t.Fatalf("failed to seed profile: %v", err)
		}
	}

	service := notify.NewService(db, notify.NewHub())
	Setup(
		social.NewFriendshipManager(store.NewRelationshipStore(db), service),
		social.NewMembershipManager[models.GroupMembership](social.KindGroup, store.NewGroupStore(db), service),
		social.NewMembershipManager[models.ActivityParticipation](social.KindActivity, store.NewActivityStore(db), service),
		service,
	)

	router := gin.New()
	authed := router.Group("/api/v1", identityFromHeader)
	authed.GET("/profiles/:id/friendship", GetFriendshipStatus)
	authed.POST("/profiles/:id/request", SendFriendRequest)
	authed.POST("/profiles/:id/accept", AcceptFriendRequest)
	authed.POST("/profiles/:id/decline", DeclineFriendRequest)
	authed.POST("/profiles/:id/cancel", CancelFriendRequest)
	authed.POST("/groups/:id/join", JoinGroup)
	authed.POST("/groups/:id/leave", LeaveGroup)
	authed.GET("/groups/:id/members", GetGroupMembers)
	return router
}

func doRequest(router *gin.Engine, method, path string, asProfile uint) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-Test-Profile", strconv.FormatUint(uint64(asProfile), 10))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestFriendRequestLifecycleOverHTTP(t *testing.T) {
	router := buildTestRouter(t)

	resp := doRequest(router, http.MethodPost, "/api/v1/profiles/2/request", 1)
	if resp.Code != http.StatusCreated {
		t.Fatalf("send returned %d: %s", resp.Code, resp.Body.String())
	}

	// Duplicate send conflicts.
	resp = doRequest(router, http.MethodPost, "/api/v1/profiles/2/request", 1)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate send returned %d, want 409", resp.Code)
	}

	// The requester cannot accept their own request.
	resp = doRequest(router, http.MethodPost, "/api/v1/profiles/2/accept", 1)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("self-accept returned %d, want 403", resp.Code)
	}

	resp = doRequest(router, http.MethodPost, "/api/v1/profiles/1/accept", 2)
	if resp.Code != http.StatusOK {
		t.Fatalf("accept returned %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(router, http.MethodGet, "/api/v1/profiles/2/friendship", 1)
	if resp.Code != http.StatusOK {
		t.Fatalf("status returned %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode status body: %v", err)
	}
	if body.Status != string(social.StatusAccepted) {
		t.Errorf("status is %q, want %q", body.Status, social.StatusAccepted)
	}
}

func TestFriendRequestValidationOverHTTP(t *testing.T) {
	router := buildTestRouter(t)

	resp := doRequest(router, http.MethodPost, "/api/v1/profiles/1/request", 1)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("self-request returned %d, want 400", resp.Code)
	}

	resp = doRequest(router, http.MethodPost, "/api/v1/profiles/999/request", 1)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("request to unknown profile returned %d, want 404", resp.Code)
	}

	resp = doRequest(router, http.MethodPost, "/api/v1/profiles/2/accept", 3)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("accept without a request returned %d, want 404", resp.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/2/request", nil)
	anon := httptest.NewRecorder()
	router.ServeHTTP(anon, req)
	if anon.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous request returned %d, want 401", anon.Code)
	}
}

func TestGroupCapacityOverHTTP(t *testing.T) {
	router := buildTestRouter(t)

	group := models.Group{Name: "tiny", OwnerID: 1, MaxMembers: 2, CurrentMembers: 1}
	if err := database.DB.Create(&group).Error; err != nil {
		t.Fatalf("failed to seed group: %v", err)
	}
	owner := models.GroupMembership{GroupID: group.ID, ProfileID: 1, Role: models.RoleAdmin}
	if err := database.DB.Create(&owner).Error; err != nil {
		t.Fatalf("failed to seed owner membership: %v", err)
	}
	base := fmt.Sprintf("/api/v1/groups/%d", group.ID)

	resp := doRequest(router, http.MethodPost, base+"/join", 2)
	if resp.Code != http.StatusOK {
		t.Fatalf("join returned %d: %s", resp.Code, resp.Body.String())
	}

	// Seat 2 of 2 is taken, the third profile is turned away.
	resp = doRequest(router, http.MethodPost, base+"/join", 3)
	if resp.Code != http.StatusConflict {
		t.Fatalf("join past capacity returned %d, want 409", resp.Code)
	}

	resp = doRequest(router, http.MethodPost, base+"/join", 2)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate join returned %d, want 409", resp.Code)
	}

	resp = doRequest(router, http.MethodPost, base+"/leave", 2)
	if resp.Code != http.StatusOK {
		t.Fatalf("leave returned %d: %s", resp.Code, resp.Body.String())
	}
	resp = doRequest(router, http.MethodPost, base+"/join", 3)
	if resp.Code != http.StatusOK {
		t.Fatalf("join after a seat freed returned %d: %s", resp.Code, resp.Body.String())
	}

	resp = doRequest(router, http.MethodPost, "/api/v1/groups/999/join", 2)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("join on unknown group returned %d, want 404", resp.Code)
	}
}
