package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a single in-app notification. Notifications live only
// in process memory; they are lost when the client exits.
type Notification struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
