package notify

import (
	"encoding/json"
	"log"

	"stayloop/backend/internal/models"

	"gorm.io/gorm"
)

// Service is the production Dispatcher: it persists a Notification row for the
// target profile and fans the event out to their live connections. Failures
// are logged and swallowed; a lost notification never fails the state
// transition that produced it.
type Service struct {
	db  *gorm.DB
	hub *Hub
}

func NewService(db *gorm.DB, hub *Hub) *Service {
	return &Service{db: db, hub: hub}
}

// Hub exposes the live-connection hub for the SSE handler.
func (s *Service) Hub() *Hub {
	return s.hub
}

func (s *Service) Dispatch(event Event) {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		log.Printf("notify: failed to marshal payload for event %s: %v", event.ID, err)
		payload = []byte("{}")
	}

	notification := models.Notification{
		ProfileID: event.TargetProfileID,
		EventID:   event.ID,
		Type:      event.Type,
		Payload:   string(payload),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		log.Printf("notify: failed to store notification for profile %d: %v", event.TargetProfileID, err)
	}

	s.hub.Broadcast(event)
}
