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
	"github.com/stretchr/testify/mock"
)

func TestCreateAssignment_Routes(t *testing.T) {
	caller := uuid.New()
	taskID := uuid.New()
	userID := uuid.New()

	svc := new(testutils.MockAssignmentService)
	svc.On("CreateAssignment", testDB, taskID, userID, &caller, (*float64)(nil)).
		Return(models.TaskAssignment{ID: uuid.New(), TaskID: taskID, UserID: userID, AssignedBy: &caller}, nil).Once()
	svc.On("CreateAssignment", testDB, taskID, userID, &caller, (*float64)(nil)).
		Return(models.TaskAssignment{}, services.ErrAlreadyAssigned).Once()

	router := newTestRouter(func(group *gin.RouterGroup) {
		group.Use(withPrincipal(caller))
		RegisterAssignmentRoutes(group, testDB, svc)
	})
	body := map[string]interface{}{"task_id": taskID, "user_id": userID}

	w := perform(router, http.MethodPost, "/assignments", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = perform(router, http.MethodPost, "/assignments", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already assigned")

	svc.AssertExpectations(t)
}

func TestCreateAssignment_InvalidHours(t *testing.T) {
	svc := new(testutils.MockAssignmentService)
	router := newTestRouter(func(group *gin.RouterGroup) {
		RegisterAssignmentRoutes(group, testDB, svc)
	})

	w := perform(router, http.MethodPost, "/assignments", map[string]interface{}{
		"task_id":         uuid.New(),
		"user_id":         uuid.New(),
		"hours_allocated": -2,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateAssignment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveAssignment_Route(t *testing.T) {
	svc := new(testutils.MockAssignmentService)
	svc.On("RemoveAssignment", testDB, "t1", "u1").Return(models.TaskAssignment{}, nil)
	svc.On("RemoveAssignment", testDB, "t1", "u2").Return(models.TaskAssignment{}, services.ErrAssignmentNotFound)

	router := newTestRouter(func(group *gin.RouterGroup) {
		RegisterAssignmentRoutes(group, testDB, svc)
	})

	assert.Equal(t, http.StatusNoContent, perform(router, http.MethodDelete, "/assignments/task/t1/user/u1", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(router, http.MethodDelete, "/assignments/task/t1/user/u2", nil).Code)
}
