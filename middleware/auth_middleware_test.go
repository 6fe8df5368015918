package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard-app/taskboard/services"
	"taskboard-app/taskboard/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthMock(userID uuid.UUID) *testutils.MockAuthService {
	auth := new(testutils.MockAuthService)
	auth.On("ValidateToken", "good").Return(&services.JWTClaims{UserID: userID, Email: "a@example.com", Username: "alice"}, nil)
	auth.On("ValidateToken", mock.Anything).Return(nil, services.ErrInvalidToken)
	return auth
}

func principalHandler(c *gin.Context) {
	id, ok := UserID(c)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, id.String())
}

func serve(router *gin.Engine, target string, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	router := gin.New()
	router.GET("/private", AuthMiddleware(newAuthMock(userID)), principalHandler)

	tests := []struct {
		name   string
		target string
		header string
		code   int
	}{
		{"valid bearer", "/private", "Bearer good", http.StatusOK},
		{"lowercase scheme", "/private", "bearer good", http.StatusOK},
		{"missing header", "/private", "", http.StatusUnauthorized},
		{"wrong scheme", "/private", "Basic good", http.StatusUnauthorized},
		{"invalid token", "/private", "Bearer bad", http.StatusUnauthorized},
		{"query token is not enough", "/private?token=good", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.target, tt.header)
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			}
		})
	}
}

func TestPrincipalMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	router := gin.New()
	router.Use(PrincipalMiddleware(newAuthMock(userID)))
	router.GET("/open", principalHandler)

	w := serve(router, "/open", "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	w = serve(router, "/open", "Bearer bad")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	w = serve(router, "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestWebSocketAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	router := gin.New()
	router.GET("/ws", WebSocketAuthMiddleware(newAuthMock(userID)), principalHandler)

	w := serve(router, "/ws?token=good", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	w = serve(router, "/ws", "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, "/ws?token=bad", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, "/ws", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
