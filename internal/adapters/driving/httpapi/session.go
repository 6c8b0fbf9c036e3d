package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// sessionIDKey is the context key the middleware stores the id under.
const sessionIDKey = "sessionID"

// withSession ensures every request carries a session id, issuing a
// fresh opaque cookie when none is present.
func (s *Server) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var sessionID string

		cookie, err := c.Cookie(sessionCookieName)
		if err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = uuid.New().String()
			c.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(sessionValidity),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(sessionIDKey, sessionID)
		return next(c)
	}
}

// sessionID returns the request's session id set by withSession.
func sessionID(c echo.Context) string {
	id, _ := c.Get(sessionIDKey).(string)
	return id
}
