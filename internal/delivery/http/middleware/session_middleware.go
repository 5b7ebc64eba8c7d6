package middleware

import (
	"net/http"
	"time"

	"storefront/config"
	"storefront/internal/domain/constants"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the anonymous cart session ID.
const SessionCookieName = "cart_session"

// SessionMiddleware issues and propagates the cart session cookie.
// Every storefront request gets a session ID; the cart store keys on it.
type SessionMiddleware struct {
	ttl time.Duration
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(cfg *config.Config) *SessionMiddleware {
	return &SessionMiddleware{ttl: cfg.Cart.SessionTTL}
}

// EnsureSession reads the session cookie, minting a fresh uuid v4 when the
// cookie is absent or malformed, and refreshes the cookie lifetime.
func (m *SessionMiddleware) EnsureSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID := ""
		if cookie, err := c.Cookie(SessionCookieName); err == nil {
			if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
				sessionID = cookie.Value
			}
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		c.SetCookie(&http.Cookie{
			Name:     SessionCookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(m.ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(constants.ContextKeySessionID, sessionID)

		return next(c)
	}
}
