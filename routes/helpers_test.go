package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard-app/taskboard/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPageParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
		wantOK    bool
	}{
		{name: "defaults", query: "", wantSkip: 0, wantLimit: 100, wantOK: true},
		{name: "explicit", query: "?skip=20&limit=10", wantSkip: 20, wantLimit: 10, wantOK: true},
		{name: "negative skip", query: "?skip=-5&limit=10", wantSkip: 0, wantLimit: 10, wantOK: true},
		{name: "oversized limit", query: "?limit=1000", wantSkip: 0, wantLimit: 100, wantOK: true},
		{name: "zero limit", query: "?limit=0", wantSkip: 0, wantLimit: 100, wantOK: true},
		{name: "non numeric skip", query: "?skip=abc", wantOK: false},
		{name: "non numeric limit", query: "?limit=ten", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c := testutils.GetTestGinContext(w, httptest.NewRequest(http.MethodGet, "/tasks"+tt.query, nil))

			skip, limit, ok := pageParams(c)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				return
			}
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestPrincipal(t *testing.T) {
	c := testutils.GetTestGinContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, principal(c))

	c.Set("userID", uuid.Nil)
	assert.Nil(t, principal(c))

	id := uuid.New()
	c.Set("userID", id)
	if assert.NotNil(t, principal(c)) {
		assert.Equal(t, id, *principal(c))
	}
}
