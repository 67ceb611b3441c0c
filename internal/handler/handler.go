package handler

import (
	"errors"
	"net/http"

	"stayloop/backend/internal/models"
	"stayloop/backend/internal/notify"
	"stayloop/backend/internal/social"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

var (
	friendships *social.FriendshipManager
	groups      *social.MembershipManager[models.GroupMembership]
	activities  *social.MembershipManager[models.ActivityParticipation]
	notifier    *notify.Service
)

// Setup wires the managers and the notification service into the package.
// Handlers never mutate relationship or membership rows directly; every write
// goes through a manager.
func Setup(
	f *social.FriendshipManager,
	g *social.MembershipManager[models.GroupMembership],
	a *social.MembershipManager[models.ActivityParticipation],
	n *notify.Service,
) {
	friendships = f
	groups = g
	activities = a
	notifier = n
}

// respondSocialError maps the shared error vocabulary onto HTTP statuses. The
// message keeps the business condition visible to the user ("this group is
// full", "you already sent a request") instead of a generic failure.
func respondSocialError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Storage unavailable, please retry"

	switch {
	case errors.Is(err, social.ErrInvalidArgument):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, social.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, social.ErrPermissionDenied):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, social.ErrCapacityExceeded), errors.Is(err, social.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, gin.H{"error": message})
}
