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

func TestCreateProject_DefaultsOwnerToPrincipal(t *testing.T) {
	caller := uuid.New()
	svc := new(testutils.MockProjectService)
	svc.On("Create", testDB, models.ProjectCreate{Name: "Mine", OwnerID: caller}).
		Return(models.Project{ID: uuid.New(), Name: "Mine", OwnerID: caller, IsActive: true}, nil)

	router := newTestRouter(func(group *gin.RouterGroup) {
		group.Use(withPrincipal(caller))
		RegisterProjectRoutes(group, testDB, svc)
	})

	w := perform(router, http.MethodPost, "/projects", map[string]string{"name": "Mine"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var project models.Project
	decode(t, w, &project)
	assert.Equal(t, caller, project.OwnerID)
	svc.AssertExpectations(t)
}

func TestProjectSoftDeleteAndRestore(t *testing.T) {
	svc := new(testutils.MockProjectService)
	svc.On("SoftDelete", testDB, "p1").Return(models.Project{IsActive: false}, nil)
	svc.On("Restore", testDB, "p2").Return(models.Project{}, services.ErrProjectNotFound)

	router := newTestRouter(func(group *gin.RouterGroup) {
		RegisterProjectRoutes(group, testDB, svc)
	})

	w := perform(router, http.MethodPost, "/projects/p1/deactivate", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodPost, "/projects/p2/restore", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}
