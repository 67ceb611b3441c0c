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

type GroupInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MaxMembers  int    `json:"max_members" binding:"required,min=2,max=500"`
	ListingID   *uint  `json:"listing_id"`
}

type GroupResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	OwnerID        uint   `json:"owner_id"`
	ListingID      *uint  `json:"listing_id,omitempty"`
	MaxMembers     int    `json:"max_members"`
	CurrentMembers int    `json:"current_members"`
}

type MemberResponse struct {
	ProfileID uint      `json:"profile_id"`
	Nickname  string    `json:"nickname"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

func newGroupResponse(group models.Group) GroupResponse {
	return GroupResponse{
		ID:             group.ID,
		Name:           group.Name,
		Description:    group.Description,
		OwnerID:        group.OwnerID,
		ListingID:      group.ListingID,
		MaxMembers:     group.MaxMembers,
		CurrentMembers: group.CurrentMembers,
	}
}

// endregion

// CreateGroup godoc
// @Summary      Create a new group
// @Description  Creates a group; the creator becomes its first member with the admin role.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GroupInput true "Group Info"
// @Success      201  {object}  GroupResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /groups [post]
func CreateGroup(c *gin.Context) {
	profileID, _ := c.Get("profileID")

	var input GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := models.Group{
		Name:        input.Name,
		Description: input.Description,
		OwnerID:     profileID.(uint),
		ListingID:   input.ListingID,
		MaxMembers:  input.MaxMembers,
		// The creator occupies the first slot; counter and row are written
		// in the same transaction.
		CurrentMembers: 1,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		return tx.Create(&models.GroupMembership{
			GroupID:   group.ID,
			ProfileID: profileID.(uint),
			Role:      models.RoleAdmin,
			JoinedAt:  time.Now().UTC(),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, newGroupResponse(group))
}

// SearchGroups godoc
// @Summary      Search for groups
// @Description  Gets a paginated list of groups.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        page    query int false "Page number" default(1)
// @Param        limit   query int false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[GroupResponse]
// @Router       /groups [get]
func SearchGroups(c *gin.Context) {
	page, limit := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))

	result, err := Paginate[models.Group](database.DB.Model(&models.Group{}), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve groups"})
		return
	}

	responses := make([]GroupResponse, 0, len(result.Data))
	for _, group := range result.Data {
		responses = append(responses, newGroupResponse(group))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, result.Meta.TotalItems, page, limit))
}

// GetGroupByID godoc
// @Summary      Get a group by ID
// @Description  Gets full details for a single group.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Group ID"
// @Success      200 {object} GroupResponse
// @Failure      404 {object} ErrorResponse "Group not found"
// @Router       /groups/{id} [get]
func GetGroupByID(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.Group
	if err := database.DB.First(&group, uint(groupID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	c.JSON(http.StatusOK, newGroupResponse(group))
}

// JoinGroup godoc
// @Summary      Join a group
// @Description  Joins a group if there is a free slot and the caller is not already a member.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Group ID"
// @Success      200 {object} map[string]string "{"message": "Joined group successfully"}"
// @Failure      404 {object} ErrorResponse "Group not found"
// @Failure      409 {object} ErrorResponse "Group is full or caller already a member"
// @Router       /groups/{id}/join [post]
func JoinGroup(c *gin.Context) {
	profileID, _ := c.Get("profileID")
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	if err := groups.Join(uint(groupID), profileID.(uint)); err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined group successfully"})
}

// LeaveGroup godoc
// @Summary      Leave a group
// @Description  Leaves the group. Leaving a group the caller is not in is a no-op.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Group ID"
// @Success      200 {object} map[string]string "{"message": "Left group successfully"}"
// @Failure      404 {object} ErrorResponse "Group not found"
// @Router       /groups/{id}/leave [post]
func LeaveGroup(c *gin.Context) {
	profileID, _ := c.Get("profileID")
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	if err := groups.Leave(uint(groupID), profileID.(uint)); err != nil {
		respondSocialError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left group successfully"})
}

// GetGroupMembers godoc
// @Summary      Get group members
// @Description  Lists group members ordered by join time, oldest first.
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Group ID"
// @Success      200 {array} MemberResponse
// @Failure      404 {object} ErrorResponse "Group not found"
// @Router       /groups/{id}/members [get]
func GetGroupMembers(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	members, err := groups.ListMembers(uint(groupID))
	if err != nil {
		respondSocialError(c, err)
		return
	}

	responses := make([]MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, MemberResponse{
			ProfileID: member.ProfileID,
			Nickname:  member.Profile.Nickname,
			Role:      string(member.Role),
			JoinedAt:  member.JoinedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}
