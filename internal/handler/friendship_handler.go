package handler

import (
	"net/http"
	"strconv"

	"stayloop/backend/internal/database"
	"stayloop/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// targetProfileID parses the :id path parameter and confirms the profile
// exists; every friendship operation references another profile.
func targetProfileID(c *gin.Context) (uint, bool) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target profile ID"})
		return 0, false
	}

	var target models.Profile
	if err := database.DB.First(&target, uint(targetID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target profile not found"})
		return 0, false
	}
	return uint(targetID), true
}

// SendFriendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to another profile.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target Profile ID"
// @Success      201  {object}  map[string]string "{"message": "Request sent successfully"}"
// @Failure      400  {object}  ErrorResponse "Request to yourself"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target profile not found"
// @Failure      409  {object}  ErrorResponse "A request or friendship already exists"
// @Failure      500  {object}  ErrorResponse
// @Router       /profiles/{id}/request [post]
func SendFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("profileID")
	targetID, ok := targetProfileID(c)
	if !ok {
		return
	}

	if err := friendships.SendRequest(viewerID.(uint), targetID); err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Request sent successfully"})
}

// AcceptFriendRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending friend request from another profile.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting Profile ID"
// @Success      200  {object}  map[string]string "{"message": "Request accepted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Caller is not the addressee"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /profiles/{id}/accept [post]
func AcceptFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("profileID")
	targetID, ok := targetProfileID(c)
	if !ok {
		return
	}

	if err := friendships.Accept(viewerID.(uint), targetID); err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// DeclineFriendRequest godoc
// @Summary      Decline friend request
// @Description  Declines a pending friend request from another profile. The pair is cleared, so either side may send a fresh request later.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting Profile ID"
// @Success      200  {object}  map[string]string "{"message": "Request declined"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Caller is not the addressee"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /profiles/{id}/decline [post]
func DeclineFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("profileID")
	targetID, ok := targetProfileID(c)
	if !ok {
		return
	}

	if err := friendships.Reject(viewerID.(uint), targetID); err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request declined"})
}

// CancelFriendRequest godoc
// @Summary      Cancel a sent friend request
// @Description  Withdraws a pending request the caller sent. Cancelling an already-absent request is a no-op.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target Profile ID"
// @Success      200  {object}  map[string]string "{"message": "Request cancelled"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Caller is not the requester"
// @Failure      409  {object}  ErrorResponse "Request already accepted"
// @Failure      500  {object}  ErrorResponse
// @Router       /profiles/{id}/cancel [post]
func CancelFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("profileID")
	targetID, ok := targetProfileID(c)
	if !ok {
		return
	}

	if err := friendships.Cancel(viewerID.(uint), targetID); err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}

// GetFriendshipStatus godoc
// @Summary      Get friendship status
// @Description  Returns the viewer-relative friendship status for another profile.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target Profile ID"
// @Success      200  {object}  map[string]string "{"status": "pending_outgoing"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/{id}/friendship [get]
func GetFriendshipStatus(c *gin.Context) {
	viewerID, _ := c.Get("profileID")
	targetID, ok := targetProfileID(c)
	if !ok {
		return
	}

	status, err := friendships.Status(viewerID.(uint), targetID)
	if err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GetRelations godoc
// @Summary      Get the caller's relations
// @Description  Lists profiles related to the caller, filtered by status (pending, accepted) and direction (incoming, outgoing).
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status (pending, accepted)"
// @Param        direction query     string  false  "Filter by direction (incoming, outgoing); only meaningful for pending"
// @Success      200       {array}   PublicProfileResponse
// @Failure      401       {object}  ErrorResponse
// @Router       /profiles/me/relations [get]
func GetRelations(c *gin.Context) {
	viewerID, _ := c.Get("profileID")
	statusFilter := c.Query("status")
	directionFilter := c.Query("direction")

	query := database.DB.Preload("Requester").Preload("Addressee")

	switch directionFilter {
	case "incoming":
		query = query.Where("addressee_id = ?", viewerID)
	case "outgoing":
		query = query.Where("requester_id = ?", viewerID)
	default:
		query = query.Where("requester_id = ? OR addressee_id = ?", viewerID, viewerID)
	}

	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var relations []models.Relationship
	if err := query.Find(&relations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch relations"})
		return
	}

	responses := make([]PublicProfileResponse, 0, len(relations))
	for _, rel := range relations {
		other := rel.Requester
		if rel.RequesterID == viewerID.(uint) {
			other = rel.Addressee
		}
		if other.ID == 0 {
			continue
		}

		response, err := buildPublicProfileResponse(other, viewerID.(uint))
		if err != nil {
			respondSocialError(c, err)
			return
		}
		responses = append(responses, response)
	}

	c.JSON(http.StatusOK, responses)
}
