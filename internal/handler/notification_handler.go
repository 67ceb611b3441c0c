package handler

import (
	"io"
	"net/http"
	"strconv"

	"stayloop/backend/internal/database"
	"stayloop/backend/internal/models"
	"stayloop/backend/internal/notify"

	"github.com/gin-gonic/gin"
)

type NotificationResponse struct {
	ID      uint   `json:"id"`
	Type    string `json:"type"`
	Payload string `json:"payload"`
	IsRead  bool   `json:"is_read"`
}

// GetNotifications godoc
// @Summary      Get the caller's notifications
// @Description  Lists stored notifications for the authenticated profile, newest first.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unread query bool false "Only unread notifications"
// @Success      200  {array}  NotificationResponse
// @Failure      401  {object} ErrorResponse
// @Router       /notifications [get]
func GetNotifications(c *gin.Context) {
	profileID, _ := c.Get("profileID")

	query := database.DB.Where("profile_id = ?", profileID).Order("created_at DESC")
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NotificationResponse{
			ID:      notification.ID,
			Type:    notification.Type,
			Payload: notification.Payload,
			IsRead:  notification.IsRead,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// MarkNotificationRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200 {object} map[string]string "{"message": "Notification marked as read"}"
// @Failure      404 {object} ErrorResponse "Notification not found"
// @Router       /notifications/{id}/read [post]
func MarkNotificationRead(c *gin.Context) {
	profileID, _ := c.Get("profileID")
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND profile_id = ?", uint(notificationID), profileID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// StreamNotifications godoc
// @Summary      Stream notifications
// @Description  Server-sent event stream of live notifications for the authenticated profile.
// @Tags         notifications
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200 {string} string "event stream"
// @Router       /notifications/stream [get]
func StreamNotifications(c *gin.Context) {
	profileID, _ := c.Get("profileID")

	client := make(notify.Client, 8)
	hub := notifier.Hub()
	hub.Subscribe(profileID.(uint), client)
	defer hub.Unsubscribe(profileID.(uint), client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("notification", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
