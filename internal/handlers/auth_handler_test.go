package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/database"
	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthHandler(t *testing.T) (*AuthHandler, repositories.UserRepository) {
	t.Helper()
	db, err := database.OpenAndMigrate(context.Background(), database.DriverSQLite, filepath.Join(t.TempDir(), "handlers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := repositories.NewUserRepository(db)
	auth := services.NewAuthService("secret", time.Minute)
	return NewAuthHandler(services.NewUserService(users, auth), auth), users
}

// serveMe runs Me with whatever the auth middleware would have stored.
func serveMe(h *AuthHandler, userID any) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/me", func(c *gin.Context) {
		if userID != nil {
			c.Set(middleware.CtxUserID, userID)
		}
		c.Next()
	}, h.Me)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	return w
}

func TestMe(t *testing.T) {
	h, users := newAuthHandler(t)
	u := &models.User{Email: gofakeit.Email(), PasswordHash: "hash"}
	require.NoError(t, users.Create(u))

	w := serveMe(h, u.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, u.Email, body["email"])
	assert.NotContains(t, body, "password_hash")
}

func TestMe_Unauthorized(t *testing.T) {
	h, _ := newAuthHandler(t)

	tests := []struct {
		name   string
		userID any
	}{
		{"no user in context", nil},
		{"not an int", "7"},
		{"unknown user", 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serveMe(h, tt.userID).Code)
		})
	}
}
