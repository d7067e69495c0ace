package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/auth"
	"storefront/models"
	"storefront/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withSession(sess *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess != nil {
			c.Set(sessionKey, sess)
		}
		c.Next()
	}
}

func pingHandler(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func TestCheckLoginMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/anon", CheckLoginMiddleware(), pingHandler)
	router.GET("/user", withSession(&auth.Session{UserID: "u1", Role: models.RoleUser}), CheckLoginMiddleware(), pingHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anon", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckAdminPermissionMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/anon", CheckAdminPermissionMiddleware(), pingHandler)
	router.GET("/user", withSession(&auth.Session{UserID: "u1", Role: models.RoleUser}), CheckAdminPermissionMiddleware(), pingHandler)
	router.GET("/admin", withSession(&auth.Session{UserID: "a1", Role: models.RoleAdmin}), CheckAdminPermissionMiddleware(), pingHandler)

	// Anonymous: a navigation problem, answered with a redirect.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/anon", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/sign-in", w.Header().Get("Location"))

	// Wrong role: an authorization problem, answered inline.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareResolvesBearerToken(t *testing.T) {
	mem := store.NewMem()
	sessions := auth.NewManager(mem, "test-secret", time.Hour)

	user := &models.User{Name: "Alice", Email: "alice@example.com", Password: "digest", Role: models.RoleUser}
	require.NoError(t, mem.CreateUser(context.Background(), user))
	sess, err := sessions.Issue(context.Background(), user)
	require.NoError(t, err)

	router := gin.New()
	router.Use(AuthMiddleware(sessions))
	router.GET("/whoami", func(c *gin.Context) {
		current := SessionFrom(c)
		if current == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, current.UserID)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, w.Body.String())

	// A garbage token leaves the request anonymous instead of failing it.
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}
