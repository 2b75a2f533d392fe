package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/pos-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Email     string      `json:"email"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Role domain.UserRole `json:"role"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Role        domain.UserRole `json:"role"`
	LastLoginAt time.Time       `json:"last_login_at"`
}

// NewEvent stamps an event with a fresh ID.
func NewEvent(eventType EventType, user *domain.User, at time.Time, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: at,
		Payload:   payload,
	}
}
