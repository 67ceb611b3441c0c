package handler

import (
	"net/http"
	"strconv"
	"time"

	"stayloop/backend/internal/database"
	"stayloop/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

type ActivityInput struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	StartsAt        time.Time `json:"starts_at" binding:"required"`
	MaxParticipants int       `json:"max_participants" binding:"required,min=2,max=100"`
	ListingID       *uint     `json:"listing_id"`
}

type ActivityResponse struct {
	ID                  uint      `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	HostID              uint      `json:"host_id"`
	ListingID           *uint     `json:"listing_id,omitempty"`
	StartsAt            time.Time `json:"starts_at"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
}

type ParticipantResponse struct {
	ProfileID uint      `json:"profile_id"`
	Nickname  string    `json:"nickname"`
	Status    string    `json:"status"`
	JoinedAt  time.Time `json:"joined_at"`
}

func newActivityResponse(activity models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:                  activity.ID,
		Title:               activity.Title,
		Description:         activity.Description,
		HostID:              activity.HostID,
		ListingID:           activity.ListingID,
		StartsAt:            activity.StartsAt,
		MaxParticipants:     activity.MaxParticipants,
		CurrentParticipants: activity.CurrentParticipants,
	}
}

// endregion

// CreateActivity godoc
// @Summary      Create a new activity
// @Description  Creates an activity; the host takes the first confirmed spot.
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ActivityInput true "Activity Info"
// @Success      201  {object}  ActivityResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /activities [post]
func CreateActivity(c *gin.Context) {
	profileID, _ := c.Get("profileID")

	var input ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity := models.Activity{
		Title:           input.Title,
		Description:     input.Description,
		HostID:          profileID.(uint),
		ListingID:       input.ListingID,
		StartsAt:        input.StartsAt,
		MaxParticipants: input.MaxParticipants,
		// The host takes the first confirmed spot; counter and row are
		// written in the same transaction.
		CurrentParticipants: 1,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		return tx.Create(&models.ActivityParticipation{
			ActivityID: activity.ID,
			ProfileID:  profileID.(uint),
			Status:     models.ParticipationConfirmed,
			JoinedAt:   time.Now().UTC(),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}

	c.JSON(http.StatusCreated, newActivityResponse(activity))
}

// SearchActivities godoc
// @Summary      Search for activities
// @Description  Gets a paginated list of upcoming activities.
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        page    query int false "Page number" default(1)
// @Param        limit   query int false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[ActivityResponse]
// @Router       /activities [get]
func SearchActivities(c *gin.Context) {
	page, limit := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))

	query := database.DB.Model(&models.Activity{}).Order("starts_at ASC")
	result, err := Paginate[models.Activity](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activities"})
		return
	}

	responses := make([]ActivityResponse, 0, len(result.Data))
	for _, activity := range result.Data {
		responses = append(responses, newActivityResponse(activity))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, result.Meta.TotalItems, page, limit))
}

// GetActivityByID godoc
// @Summary      Get an activity by ID
// @Description  Gets full details for a single activity.
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Activity ID"
// @Success      200 {object} ActivityResponse
// @Failure      404 {object} ErrorResponse "Activity not found"
// @Router       /activities/{id} [get]
func GetActivityByID(c *gin.Context) {
	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	var activity models.Activity
	if err := database.DB.First(&activity, uint(activityID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
		return
	}

	c.JSON(http.StatusOK, newActivityResponse(activity))
}

// JoinActivity godoc
// @Summary      Join an activity
// @Description  Takes a confirmed spot if one is free and the caller has not already joined.
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Activity ID"
// @Success      200 {object} map[string]string "{"message": "Joined activity successfully"}"
// @Failure      404 {object} ErrorResponse "Activity not found"
// @Failure      409 {object} ErrorResponse "Activity is full or caller already joined"
// @Router       /activities/{id}/join [post]
func JoinActivity(c *gin.Context) {
	profileID, _ := c.Get("profileID")
	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	if err := activities.Join(uint(activityID), profileID.(uint)); err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined activity successfully"})
}

// LeaveActivity godoc
// @Summary      Leave an activity
// @Description  Gives up the caller's spot. Leaving an activity the caller never joined is a no-op.
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Activity ID"
// @Success      200 {object} map[string]string "{"message": "Left activity successfully"}"
// @Failure      404 {object} ErrorResponse "Activity not found"
// @Router       /activities/{id}/leave [post]
func LeaveActivity(c *gin.Context) {
	profileID, _ := c.Get("profileID")
	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	if err := activities.Leave(uint(activityID), profileID.(uint)); err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left activity successfully"})
}

// GetActivityParticipants godoc
// @Summary      Get activity participants
// @Description  Lists participants ordered by join time, oldest first.
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Activity ID"
// @Success      200 {array} ParticipantResponse
// @Failure      404 {object} ErrorResponse "Activity not found"
// @Router       /activities/{id}/participants [get]
func GetActivityParticipants(c *gin.Context) {
	activityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity ID"})
		return
	}

	participants, err := activities.ListMembers(uint(activityID))
	if err != nil {
		respondSocialError(c, err)
		return
	}

	responses := make([]ParticipantResponse, 0, len(participants))
	for _, participant := range participants {
		responses = append(responses, ParticipantResponse{
			ProfileID: participant.ProfileID,
			Nickname:  participant.Profile.Nickname,
			Status:    string(participant.Status),
			JoinedAt:  participant.JoinedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}
