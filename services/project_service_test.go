package services

import (
	"testing"

	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject_UnknownOwner(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))

	_, err := f.projects.Create(f.db, models.ProjectCreate{Name: "Nobody's", OwnerID: uuid.New()})

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, count(t, f.db, &models.Project{}))
}

func TestDeleteProject_CascadesToTasks(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	owner := f.user(t, "owner")
	doomed := f.project(t, owner, "Doomed")
	kept := f.project(t, owner, "Kept")

	first := f.task(t, doomed, "first")
	f.task(t, doomed, "second")
	survivor := f.task(t, kept, "survivor")

	tag, err := f.tags.Create(f.db, models.TagCreate{Name: "shared"})
	require.NoError(t, err)
	require.NoError(t, f.tags.AttachTag(f.db, tag.ID.String(), first.ID.String()))
	require.NoError(t, f.tags.AttachTag(f.db, tag.ID.String(), survivor.ID.String()))
	_, err = f.comments.Create(f.db, models.CommentCreate{TaskID: first.ID, CreatedBy: owner.ID, Content: "gone soon"})
	require.NoError(t, err)

	_, err = f.projects.Delete(f.db, doomed.ID.String())
	require.NoError(t, err)

	_, err = f.projects.Get(f.db, doomed.ID.String())
	assert.ErrorIs(t, err, ErrProjectNotFound)

	remaining, err := f.tasks.List(f.db, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{survivor.ID}, taskIDs(remaining))
	assert.Equal(t, int64(1), count(t, f.db, &models.TaskTag{}))
	assert.Zero(t, count(t, f.db, &models.TaskComment{}))
	assert.Equal(t, int64(1), count(t, f.db, &models.Tag{}))
}

func TestSoftDeleteAndRestoreProject(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	owner := f.user(t, "owner")
	project := f.project(t, owner, "Paused")
	task := f.task(t, project, "keeps living")

	hidden, err := f.projects.SoftDelete(f.db, project.ID.String())
	require.NoError(t, err)
	assert.False(t, hidden.IsActive)

	active, err := f.projects.ListActive(f.db, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, active)

	owned, err := f.projects.ListByOwner(f.db, owner.ID.String(), 0, 100)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.False(t, owned[0].IsActive)

	stillThere, err := f.tasks.Get(f.db, task.ID.String())
	require.NoError(t, err)
	assert.Equal(t, task.ID, stillThere.ID)

	restored, err := f.projects.Restore(f.db, project.ID.String())
	require.NoError(t, err)
	assert.True(t, restored.IsActive)

	names, err := testutils.EventNames(f.db)
	require.NoError(t, err)
	assert.Contains(t, names, "project.soft_deleted")
	assert.Contains(t, names, "project.restored")
}

func TestProjectDetail(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	owner := f.user(t, "owner")
	project := f.project(t, owner, "Counted")
	f.task(t, project, "open")
	f.task(t, project, "done", withStatus(models.TaskStatusCompleted))

	detail, err := f.projects.GetDetail(f.db, project.ID.String())
	require.NoError(t, err)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, owner.ID, detail.Owner.ID)
	assert.Equal(t, int64(2), detail.TaskCount)
	assert.Equal(t, int64(1), detail.CompletedCount)
}

func TestListProjects_Pagination(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	owner := f.user(t, "owner")
	var created []uuid.UUID
	for _, name := range []string{"a", "b", "c", "d"} {
		created = append(created, f.project(t, owner, name).ID)
	}

	page, err := f.projects.List(f.db, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, created[1], page[0].ID)
	assert.Equal(t, created[2], page[1].ID)

	all, err := f.projects.List(f.db, -5, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
