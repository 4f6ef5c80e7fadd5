package entity

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an audit log entry recording an administrative action.
type Activity struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
