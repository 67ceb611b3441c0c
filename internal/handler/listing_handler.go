package handler

import (
	"net/http"
	"strconv"
	"time"

	"stayloop/backend/internal/database"
	"stayloop/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type ListingInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	City        string `json:"city"`
	AmenityIDs  []uint `json:"amenity_ids"`
}

type ListingResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	City        string            `json:"city"`
	HostID      uint              `json:"host_id"`
	Amenities   []AmenityResponse `json:"amenities"`
}

type AmenityInput struct {
	Name string `json:"name" binding:"required"`
}

type AmenityResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
}

func newAmenityResponse(amenity models.Amenity) AmenityResponse {
	return AmenityResponse{
		ID:        amenity.ID,
		CreatedAt: amenity.CreatedAt,
		UpdatedAt: amenity.UpdatedAt,
		Name:      amenity.Name,
	}
}

func newListingResponse(listing models.Listing) ListingResponse {
	var amenityResponses []AmenityResponse
	for _, amenity := range listing.Amenities {
		if amenity != nil {
			amenityResponses = append(amenityResponses, newAmenityResponse(*amenity))
		}
	}

	return ListingResponse{
		ID:          listing.ID,
		Title:       listing.Title,
		Description: listing.Description,
		City:        listing.City,
		HostID:      listing.HostID,
		Amenities:   amenityResponses,
	}
}

// endregion

// region --- Listing Handlers ---

// CreateListing godoc
// @Summary      Create a new listing
// @Description  Creates a room/property listing hosted by the caller.
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ListingInput true "Listing Info"
// @Success      201  {object}  ListingResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /listings [post]
func CreateListing(c *gin.Context) {
	profileID, _ := c.Get("profileID")

	var input ListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing := models.Listing{
		Title:       input.Title,
		Description: input.Description,
		City:        input.City,
		HostID:      profileID.(uint),
	}

	if len(input.AmenityIDs) > 0 {
		var amenities []*models.Amenity
		if err := database.DB.Find(&amenities, input.AmenityIDs).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amenity IDs"})
			return
		}
		listing.Amenities = amenities
	}

	if err := database.DB.Create(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	c.JSON(http.StatusCreated, newListingResponse(listing))
}

// SearchListings godoc
// @Summary      Search for listings
// @Description  Gets a paginated list of listings, optionally filtered by city.
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        city  query string false "Filter by city"
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[ListingResponse]
// @Router       /listings [get]
func SearchListings(c *gin.Context) {
	page, limit := pageParams(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "10"))

	query := database.DB.Model(&models.Listing{}).Preload("Amenities")
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	result, err := Paginate[models.Listing](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve listings"})
		return
	}

	responses := make([]ListingResponse, 0, len(result.Data))
	for _, listing := range result.Data {
		responses = append(responses, newListingResponse(listing))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, result.Meta.TotalItems, page, limit))
}

// GetListingByID godoc
// @Summary      Get a listing by ID
// @Description  Gets full details for a single listing.
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200 {object} ListingResponse
// @Failure      404 {object} ErrorResponse "Listing not found"
// @Router       /listings/{id} [get]
func GetListingByID(c *gin.Context) {
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	var listing models.Listing
	if err := database.DB.Preload("Amenities").First(&listing, uint(listingID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, newListingResponse(listing))
}

// DeleteListing godoc
// @Summary      Delete a listing (Admin only)
// @Description  Removes a listing from the catalog.
// @Tags         admin-listings
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Listing ID"
// @Success      200 {object} map[string]string "{"message": "Listing deleted"}"
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      404 {object} ErrorResponse "Listing not found"
// @Router       /admin/listings/{id} [delete]
func DeleteListing(c *gin.Context) {
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	result := database.DB.Delete(&models.Listing{}, uint(listingID))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}

// endregion

// region --- Amenity Handlers (admin) ---

// CreateAmenity godoc
// @Summary      Create a new amenity
// @Description  Creates an amenity listings can reference.
// @Tags         admin-amenities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AmenityInput true "Amenity Info"
// @Success      201  {object}  AmenityResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Amenity already exists"
// @Router       /admin/amenities [post]
func CreateAmenity(c *gin.Context) {
	var input AmenityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amenity := models.Amenity{Name: input.Name}
	if err := database.DB.Create(&amenity).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Amenity already exists or another error occurred"})
		return
	}

	c.JSON(http.StatusCreated, newAmenityResponse(amenity))
}

// GetAmenities godoc
// @Summary      Get all amenities
// @Description  Retrieves a list of all available amenities.
// @Tags         admin-amenities
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   AmenityResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/amenities [get]
func GetAmenities(c *gin.Context) {
	var amenities []models.Amenity
	database.DB.Find(&amenities)

	var response []AmenityResponse
	for _, amenity := range amenities {
		response = append(response, newAmenityResponse(amenity))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateAmenity godoc
// @Summary      Update an amenity
// @Description  Updates the name of an existing amenity.
// @Tags         admin-amenities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int      true  "Amenity ID"
// @Param        input body AmenityInput true "New Amenity Info"
// @Success      200  {object}  AmenityResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Amenity not found"
// @Router       /admin/amenities/{id} [put]
func UpdateAmenity(c *gin.Context) {
	amenityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var amenity models.Amenity
	if err := database.DB.First(&amenity, uint(amenityID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Amenity not found"})
		return
	}

	var input AmenityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amenity.Name = input.Name
	if err := database.DB.Save(&amenity).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Amenity name already in use"})
		return
	}

	c.JSON(http.StatusOK, newAmenityResponse(amenity))
}

// DeleteAmenity godoc
// @Summary      Delete an amenity
// @Description  Removes an amenity.
// @Tags         admin-amenities
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Amenity ID"
// @Success      200 {object} map[string]string "{"message": "Amenity deleted"}"
// @Failure      403 {object} ErrorResponse "Admin access required"
// @Failure      404 {object} ErrorResponse "Amenity not found"
// @Router       /admin/amenities/{id} [delete]
func DeleteAmenity(c *gin.Context) {
	amenityID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	result := database.DB.Delete(&models.Amenity{}, uint(amenityID))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete amenity"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Amenity not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Amenity deleted"})
}

// endregion
