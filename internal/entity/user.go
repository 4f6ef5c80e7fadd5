package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an administrator account. Role is either "admin" or "superadmin";
// plain admins only see records they uploaded themselves.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
