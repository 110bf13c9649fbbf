package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woodnest/woodnest-backend/pkg/util"
)

const testJWTSecret = "test-secret-key-for-middleware-testing"

func signTestToken(t *testing.T, userID uint, role string, expiry time.Duration) string {
	now := time.Now()
	claims := util.Claims{
		UserID: userID,
		Email:  "test@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func setupAuthTestRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authMiddleware := NewAuthMiddleware(testJWTSecret)

	handlers := []gin.HandlerFunc{authMiddleware.Authenticate()}
	if len(roles) > 0 {
		handlers = append(handlers, authMiddleware.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})

	router.GET("/protected", handlers...)
	return router
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	router := setupAuthTestRouter()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "Valid token",
			authHeader: "Bearer " + signTestToken(t, 1, RoleCustomer, 15*time.Minute),
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Not a bearer token",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Malformed token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Expired token",
			authHeader: "Bearer " + signTestToken(t, 1, RoleCustomer, -time.Minute),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(router, tt.authHeader)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuthenticate_SetsContext(t *testing.T) {
	router := setupAuthTestRouter()

	w := request(router, "Bearer "+signTestToken(t, 42, RoleAdmin, 15*time.Minute))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestRequireRole(t *testing.T) {
	router := setupAuthTestRouter(RoleAdmin)

	w := request(router, "Bearer "+signTestToken(t, 1, RoleAdmin, 15*time.Minute))
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(router, "Bearer "+signTestToken(t, 2, RoleCustomer, 15*time.Minute))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
