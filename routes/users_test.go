package routes

import (
	"net/http"
	"testing"

	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/services"
	"taskboard-app/taskboard/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	input := models.UserCreate{Email: "ada@example.com", Username: "ada"}
	taken := models.UserCreate{Email: "taken@example.com", Username: "other"}

	svc := new(testutils.MockUserService)
	svc.On("Create", testDB, input).
		Return(models.User{ID: uuid.New(), Email: "ada@example.com", Username: "ada", IsActive: true, PasswordHash: "secret-hash"}, nil)
	svc.On("Create", testDB, taken).Return(models.User{}, services.ErrEmailTaken)

	router := newTestRouter(func(group *gin.RouterGroup) {
		RegisterUserRoutes(group, testDB, svc)
	})

	w := perform(router, http.MethodPost, "/users", input)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-hash")
	assert.NotContains(t, w.Body.String(), "password")

	w = perform(router, http.MethodPost, "/users", taken)
	assert.Equal(t, http.StatusConflict, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "email already registered", body["error"])

	w = perform(router, http.MethodPost, "/users", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestUserLookups(t *testing.T) {
	svc := new(testutils.MockUserService)
	svc.On("GetByEmail", testDB, "ada@example.com").Return(models.User{Email: "ada@example.com"}, nil)
	svc.On("GetByUsername", testDB, "ghost").Return(models.User{}, services.ErrUserNotFound)
	svc.On("ListActive", testDB, 0, 100).Return([]models.User{{Username: "ada"}}, nil)
	svc.On("Deactivate", testDB, "u1").Return(models.User{IsActive: false}, nil)
	svc.On("Delete", testDB, "u2").Return(models.User{}, services.ErrUserNotFound)

	router := newTestRouter(func(group *gin.RouterGroup) {
		RegisterUserRoutes(group, testDB, svc)
	})

	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/users/email/ada@example.com", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodGet, "/users/username/ghost", nil).Code)
	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/users/list/active", nil).Code)
	assert.Equal(t, http.StatusOK, perform(router, http.MethodPost, "/users/u1/deactivate", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodDelete, "/users/u2", nil).Code)
	svc.AssertExpectations(t)
}
