package handler

import (
	"net/http"
	"strconv"

	"stayloop/backend/internal/database"
	"stayloop/backend/internal/models"
	"stayloop/backend/internal/social"
	"stayloop/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// RegisterInput defines the structure for profile registration.
type RegisterInput struct {
	Nickname string `json:"nickname" binding:"required" example:"testuser"`
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

// LoginInput defines the structure for profile login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"testuser"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// PublicProfileResponse defines the structure for a profile's public page.
// Friendship is always derived from the store at request time, never cached.
type PublicProfileResponse struct {
	ID           uint                    `json:"id" example:"1"`
	Nickname     string                  `json:"nickname" example:"testuser"`
	FriendsCount int64                   `json:"friends_count"`
	Friendship   social.FriendshipStatus `json:"friendship"`
}

// PrivateProfileResponse defines the structure for the authenticated profile.
type PrivateProfileResponse struct {
	ID           uint   `json:"id" example:"1"`
	Nickname     string `json:"nickname" example:"testuser"`
	Email        string `json:"email" example:"test@example.com"`
	FriendsCount int64  `json:"friends_count"`
}

// endregion

// region --- Auth Handlers ---

// RegisterProfile godoc
// @Summary      Register a new profile
// @Description  Creates a new profile and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterProfile(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Profile
	if err := database.DB.Where("nickname = ? OR email = ?", input.Nickname, input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Nickname or email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	profile := models.Profile{
		Nickname:     input.Nickname,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := database.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}

	token, err := jwt.GenerateToken(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// LoginProfile godoc
// @Summary      Log in
// @Description  Authenticates a profile with nickname/email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "Profile not found"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func LoginProfile(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.Profile
	if err := database.DB.Where("nickname = ? OR email = ?", input.Login, input.Login).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// endregion

// region --- Profile Handlers ---

// SearchProfiles godoc
// @Summary      Search for profiles
// @Description  Searches for profiles by nickname with pagination.
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query for nickname"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicProfileResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /profiles [get]
func SearchProfiles(c *gin.Context) {
	viewerID, _ := c.Get("profileID")
	searchQuery := c.Query("q")
	page, limit := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))

	query := database.DB.Model(&models.Profile{}).Where("id <> ?", viewerID)
	if searchQuery != "" {
		query = query.Where("nickname LIKE ?", "%"+searchQuery+"%")
	}

	result, err := Paginate[models.Profile](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profiles"})
		return
	}

	responses := make([]PublicProfileResponse, 0, len(result.Data))
	for _, profile := range result.Data {
		response, err := buildPublicProfileResponse(profile, viewerID.(uint))
		if err != nil {
			respondSocialError(c, err)
			return
		}
		responses = append(responses, response)
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, result.Meta.TotalItems, page, limit))
}

// GetProfileByID godoc
// @Summary      Get profile by ID
// @Description  Retrieves the public page for a profile, including the viewer-relative friendship status.
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  PublicProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/{id} [get]
func GetProfileByID(c *gin.Context) {
	viewerID, _ := c.Get("profileID")
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile ID"})
		return
	}

	// If target is the same as viewer, redirect to /me
	if viewerID.(uint) == uint(targetID) {
		GetMe(c)
		return
	}

	var target models.Profile
	if err := database.DB.First(&target, uint(targetID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	response, err := buildPublicProfileResponse(target, viewerID.(uint))
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetMe godoc
// @Summary      Get current profile's info
// @Description  Retrieves the private page for the currently authenticated profile.
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/me [get]
func GetMe(c *gin.Context) {
	viewerID, _ := c.Get("profileID")

	var profile models.Profile
	if err := database.DB.First(&profile, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, PrivateProfileResponse{
		ID:           profile.ID,
		Nickname:     profile.Nickname,
		Email:        profile.Email,
		FriendsCount: friendsCount(profile.ID),
	})
}

// endregion

// region --- Helpers ---

func friendsCount(profileID uint) int64 {
	var count int64
	database.DB.Model(&models.Relationship{}).
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?", profileID, profileID, models.RelationshipAccepted).
		Count(&count)
	return count
}

func buildPublicProfileResponse(target models.Profile, viewerID uint) (PublicProfileResponse, error) {
	status, err := friendships.Status(viewerID, target.ID)
	if err != nil {
		return PublicProfileResponse{}, err
	}

	return PublicProfileResponse{
		ID:           target.ID,
		Nickname:     target.Nickname,
		FriendsCount: friendsCount(target.ID),
		Friendship:   status,
	}, nil
}

// endregion
