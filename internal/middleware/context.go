package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/amfdata/contact-exchange/internal/service"
)

// Context keys used to store authentication metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserName  = "user_name"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

// ActorFromContext rebuilds the acting admin's identity from the request
// context populated by the JWT middleware.
func ActorFromContext(c echo.Context) service.Actor {
	actor := service.Actor{}
	if sub, ok := c.Get(ContextKeyUserID).(string); ok {
		if id, err := uuid.Parse(sub); err == nil {
			actor.ID = id
		}
	}
	if name, ok := c.Get(ContextKeyUserName).(string); ok {
		actor.Name = name
	}
	return actor
}

// RoleFromContext returns the authenticated role, or the empty string.
func RoleFromContext(c echo.Context) string {
	if role, ok := c.Get(ContextKeyUserRole).(string); ok {
		return role
	}
	return ""
}
