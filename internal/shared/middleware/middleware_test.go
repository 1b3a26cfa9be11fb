package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/config"
	"storefront-backend/internal/infrastructure/session"
	"storefront-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName:    "session_id",
		TTL:           time.Hour,
		CartSessionID: "cart",
	}
}

func newSessionRouter(t *testing.T) (*gin.Engine, *session.RedisStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := session.NewRedisStore(client)

	r := gin.New()
	r.Use(SessionMiddleware(store, testSessionConfig()))
	r.POST("/visit", func(c *gin.Context) {
		sess, err := GetSession(c)
		require.NoError(t, err)

		var visits int
		_, _ = sess.Get("visits", &visits)
		require.NoError(t, sess.Set("visits", visits+1))
		c.JSON(http.StatusOK, gin.H{"visits": visits + 1})
	})
	r.GET("/peek", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, store
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "session_id" {
			return ck
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSessionMiddleware_NewSessionIsPersisted(t *testing.T) {
	r, store := newSessionRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/visit", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	ck := sessionCookie(t, rec)
	assert.True(t, ck.HttpOnly)
	_, err := uuid.Parse(ck.Value)
	require.NoError(t, err)

	values, err := store.Load(context.Background(), ck.Value)
	require.NoError(t, err)
	assert.JSONEq(t, "1", string(values["visits"]))
}

func TestSessionMiddleware_ReusesCookie(t *testing.T) {
	r, _ := newSessionRouter(t)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/visit", nil))
	ck := sessionCookie(t, first)

	req := httptest.NewRequest(http.MethodPost, "/visit", nil)
	req.AddCookie(ck)
	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)

	assert.JSONEq(t, `{"visits":2}`, second.Body.String())
	assert.Equal(t, ck.Value, sessionCookie(t, second).Value)
}

func TestSessionMiddleware_InvalidCookieStartsFresh(t *testing.T) {
	r, _ := newSessionRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/visit", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "../../etc/passwd"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.NotEqual(t, "../../etc/passwd", sessionCookie(t, rec).Value)
	assert.JSONEq(t, `{"visits":1}`, rec.Body.String())
}

func TestSessionMiddleware_UnmodifiedSessionNotSaved(t *testing.T) {
	r, store := newSessionRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/peek", nil))

	values, err := store.Load(context.Background(), sessionCookie(t, rec).Value)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func newAuthRouter(tokens *jwt.Manager) *gin.Engine {
	r := gin.New()
	whoami := func(c *gin.Context) {
		userID, ok := GetAuthenticatedUserID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "user_id": userID.String(), "admin": IsAdmin(c)})
	}
	r.GET("/required", AuthMiddleware(tokens), whoami)
	r.GET("/optional", OptionalAuthMiddleware(tokens), whoami)
	r.GET("/admin", AuthMiddleware(tokens), AdminMiddleware(), whoami)
	return r
}

func TestAuthMiddlewares(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	r := newAuthRouter(tokens)

	userID := uuid.New()
	customerToken, err := tokens.GenerateAccessToken(userID.String(), "alice", "customer")
	require.NoError(t, err)
	adminToken, err := tokens.GenerateAccessToken(uuid.NewString(), "root", "admin")
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
		wantAuth   bool
	}{
		{"required without token", "/required", "", http.StatusUnauthorized, false},
		{"required with garbage", "/required", "garbage", http.StatusUnauthorized, false},
		{"required with token", "/required", customerToken, http.StatusOK, true},
		{"optional anonymous", "/optional", "", http.StatusOK, false},
		{"optional bad token", "/optional", "garbage", http.StatusOK, false},
		{"optional with token", "/optional", customerToken, http.StatusOK, true},
		{"admin as customer", "/admin", customerToken, http.StatusForbidden, false},
		{"admin as admin", "/admin", adminToken, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"authenticated":`+boolString(tt.wantAuth))
			}
		})
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, rec.Header().Get(RequestIDHeader), rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())
}
