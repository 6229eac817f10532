package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/folio/controller"
	"github.com/use-agent/folio/session"
)

const (
	sessionIDKey  = "session_id"
	controllerKey = "controller"
)

// Session attaches the caller's submission controller to the request,
// creating a session (and cookie) on first contact.
func Session(store *session.Store, cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		existing, _ := c.Cookie(cookieName)
		id, ctrl := store.Acquire(existing)
		if id != existing {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(sessionIDKey, id)
		c.Set(controllerKey, ctrl)
		c.Next()
	}
}

// Controller returns the controller attached by Session.
func Controller(c *gin.Context) *controller.Controller {
	return c.MustGet(controllerKey).(*controller.Controller)
}

// SessionID returns the session id attached by Session, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
