package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/config"
	"storefront-backend/internal/infrastructure/session"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

const ContextKeySession = "session"

var ErrSessionNotFound = errors.New("session not found in context")

// SessionMiddleware attaches the visitor's session to the context.
// A missing or malformed cookie starts a new session. The session is saved
// after the handler if it is still marked modified.
func SessionMiddleware(store session.Store, cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var sess *session.Session
		if id := getSessionID(c, cfg.CookieName); id != "" {
			loaded, err := session.Load(ctx, store, id, cfg.TTL)
			if err != nil {
				logger.Error("load session", err)
				response.InternalServerError(c, "session unavailable")
				c.Abort()
				return
			}
			sess = loaded
		} else {
			sess = session.New(store, cfg.TTL)
		}

		// headers are flushed by the handler, so the cookie goes out first
		setSessionCookie(c, sess.ID(), cfg)
		c.Set(ContextKeySession, sess)

		c.Next()

		if sess.Modified() {
			if err := sess.Save(ctx); err != nil {
				logger.Error("save session", err)
			}
		}
	}
}

// getSessionID reads the session cookie, ignoring values that are not UUIDs
func getSessionID(c *gin.Context, name string) string {
	id, err := c.Cookie(name)
	if err != nil || id == "" {
		return ""
	}
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

func setSessionCookie(c *gin.Context, id string, cfg config.SessionConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		cfg.CookieName,
		id,
		int(cfg.TTL.Seconds()),
		"/",
		cfg.CookieDomain,
		cfg.CookieSecure,
		true,
	)
}

// GetSession retrieves the session set by SessionMiddleware
func GetSession(c *gin.Context) (*session.Session, error) {
	value, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, ErrSessionNotFound
	}

	sess, ok := value.(*session.Session)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}
