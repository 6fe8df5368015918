package services

import (
	"errors"
	"testing"
	"time"

	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/testutils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateUser_RollsBackOnStoreError(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := NewUserService(nil).Create(db, models.UserCreate{Email: "alice@example.com", Username: "alice"})

	assert.ErrorIs(t, err, ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProject_RollsBackOnCascadeError(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	projectID := uuid.New()
	ownerID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "owner_id", "is_active", "created_at", "updated_at"}).
			AddRow(projectID.String(), "Doomed", "", ownerID.String(), true, now, now))
	mock.ExpectQuery(`SELECT "id" FROM "tasks" WHERE project_id IN \(\$1\)`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := NewProjectService().Delete(db, projectID.String())

	assert.ErrorIs(t, err, ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetachTag_NoLinkCommitsWithoutEvent(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	tagID := uuid.New()
	taskID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "tasks" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`DELETE FROM "task_tags" WHERE task_id = \$1 AND tag_id = \$2`).
		WillReturnResult(testutils.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewTagService().DetachTag(db, tagID.String(), taskID.String())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTask_StoreErrorIsPersistence(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT \* FROM "tasks" WHERE id = \$1`).
		WillReturnError(errors.New("timeout"))

	_, err := NewTaskService().Get(db, uuid.NewString())

	assert.ErrorIs(t, err, ErrPersistence)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
