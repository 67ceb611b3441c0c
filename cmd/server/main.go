package main

import (
	"fmt"
	"log"
	"net/http"

	"stayloop/backend/internal/auth"
	"stayloop/backend/internal/config"
	"stayloop/backend/internal/database"
	"stayloop/backend/internal/handler"
	"stayloop/backend/internal/models"
	"stayloop/backend/internal/notify"
	"stayloop/backend/internal/social"
	"stayloop/backend/internal/store"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "stayloop/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Stayloop API
// @version         1.0
// @description     This is the API for the Stayloop service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Wire the relationship/membership engine: stores own the conditional
	// writes, managers own the state machines, the dispatcher fans out events.
	dispatcher := notify.NewService(database.DB, notify.NewHub())
	handler.Setup(
		social.NewFriendshipManager(store.NewRelationshipStore(database.DB), dispatcher),
		social.NewMembershipManager[models.GroupMembership](social.KindGroup, store.NewGroupStore(database.DB), dispatcher),
		social.NewMembershipManager[models.ActivityParticipation](social.KindActivity, store.NewActivityStore(database.DB), dispatcher),
		dispatcher,
	)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterProfile)
			authRoutes.POST("/login", handler.LoginProfile)
		}

		// Profile routes (protected)
		profileRoutes := apiV1.Group("/profiles")
		profileRoutes.Use(auth.AuthMiddleware())
		{
			profileRoutes.GET("", handler.SearchProfiles) // Must be before /:id
			profileRoutes.GET("/me", handler.GetMe)
			profileRoutes.GET("/me/relations", handler.GetRelations)
			profileRoutes.GET("/:id", handler.GetProfileByID)
			profileRoutes.GET("/:id/friendship", handler.GetFriendshipStatus)

			// Friendship routes
			profileRoutes.POST("/:id/request", handler.SendFriendRequest)
			profileRoutes.POST("/:id/accept", handler.AcceptFriendRequest)
			profileRoutes.POST("/:id/decline", handler.DeclineFriendRequest)
			profileRoutes.POST("/:id/cancel", handler.CancelFriendRequest)
		}

		// Listing routes (browsing is public, creating requires auth)
		listingRoutes := apiV1.Group("/listings")
		{
			listingRoutes.GET("", auth.OptionalAuthMiddleware(), handler.SearchListings)
			listingRoutes.GET("/:id", auth.OptionalAuthMiddleware(), handler.GetListingByID)
			listingRoutes.POST("", auth.AuthMiddleware(), handler.CreateListing)
		}

		// Group routes (protected)
		groupRoutes := apiV1.Group("/groups")
		groupRoutes.Use(auth.AuthMiddleware())
		{
			groupRoutes.POST("", handler.CreateGroup)
			groupRoutes.GET("", handler.SearchGroups)
			groupRoutes.GET("/:id", handler.GetGroupByID)
			groupRoutes.POST("/:id/join", handler.JoinGroup)
			groupRoutes.POST("/:id/leave", handler.LeaveGroup)
			groupRoutes.GET("/:id/members", handler.GetGroupMembers)
		}

		// Activity routes (protected)
		activityRoutes := apiV1.Group("/activities")
		activityRoutes.Use(auth.AuthMiddleware())
		{
			activityRoutes.POST("", handler.CreateActivity)
			activityRoutes.GET("", handler.SearchActivities)
			activityRoutes.GET("/:id", handler.GetActivityByID)
			activityRoutes.POST("/:id/join", handler.JoinActivity)
			activityRoutes.POST("/:id/leave", handler.LeaveActivity)
			activityRoutes.GET("/:id/participants", handler.GetActivityParticipants)
		}

		// Notification routes (protected)
		notificationRoutes := apiV1.Group("/notifications")
		notificationRoutes.Use(auth.AuthMiddleware())
		{
			notificationRoutes.GET("", handler.GetNotifications)
			notificationRoutes.POST("/:id/read", handler.MarkNotificationRead)
			notificationRoutes.GET("/stream", handler.StreamNotifications)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			// Amenities CRUD
			amenities := adminRoutes.Group("/amenities")
			{
				amenities.POST("", handler.CreateAmenity)
				amenities.GET("", handler.GetAmenities)
				amenities.PUT("/:id", handler.UpdateAmenity)
				amenities.DELETE("/:id", handler.DeleteAmenity)
			}

			// Listings moderation
			adminRoutes.DELETE("/listings/:id", handler.DeleteListing)
		}
	}

	fmt.Printf("Server is running on %s\n", config.AppConfig.ListenAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ListenAddr))
}
