package token

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	signed, err := GenerateToken(userID, "ada@example.com", "ada", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestValidateToken_Rejects(t *testing.T) {
	userID := uuid.New()

	expired, err := GenerateToken(userID, "ada@example.com", "ada", secret, -time.Minute)
	require.NoError(t, err)

	valid, err := GenerateToken(userID, "ada@example.com", "ada", secret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{"expired", expired, secret},
		{"wrong secret", valid, []byte("other")},
		{"garbage", "not-a-token", secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		url     string
		header  string
		want    string
		wantErr error
	}{
		{"query parameter", "/ws?token=abc", "", "abc", nil},
		{"bearer header", "/", "Bearer xyz", "xyz", nil},
		{"lowercase scheme", "/", "bearer xyz", "xyz", nil},
		{"missing", "/", "", "", ErrAuthHeaderMissing},
		{"bad format", "/", "Token xyz", "", ErrInvalidAuthFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			got, err := ExtractToken(c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
