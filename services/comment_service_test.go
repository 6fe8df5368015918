package services

import (
	"testing"
	"time"

	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListComments_NewestFirst(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	author := f.user(t, "author")
	project := f.project(t, author, "Website")
	task := f.task(t, project, "Discussed")

	var ids []uuid.UUID
	for i, content := range []string{"first", "second", "third"} {
		stamp := fixedNow.Add(time.Duration(i) * time.Minute)
		f.comments.clock = func() time.Time { return stamp }
		comment, err := f.comments.Create(f.db, models.CommentCreate{TaskID: task.ID, CreatedBy: author.ID, Content: content})
		require.NoError(t, err)
		ids = append(ids, comment.ID)
	}

	byTask, err := f.comments.ListByTask(f.db, task.ID.String(), 0, 10)
	require.NoError(t, err)
	require.Len(t, byTask, 3)
	assert.Equal(t, ids[2], byTask[0].ID)
	assert.Equal(t, ids[1], byTask[1].ID)
	assert.Equal(t, ids[0], byTask[2].ID)

	byUser, err := f.comments.ListByUser(f.db, author.ID.String(), 0, 2)
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, ids[2], byUser[0].ID)
}

func TestCreateComment_Validation(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	author := f.user(t, "author")
	project := f.project(t, author, "Website")
	task := f.task(t, project, "Discussed")

	_, err := f.comments.Create(f.db, models.CommentCreate{TaskID: task.ID, CreatedBy: author.ID, Content: ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.comments.Create(f.db, models.CommentCreate{TaskID: uuid.New(), CreatedBy: author.ID, Content: "hi"})
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = f.comments.ListByTask(f.db, uuid.NewString(), 0, 10)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCommentDetailAndUpdate(t *testing.T) {
	f := newFixture(testutils.SetupTestDB(t))
	author := f.user(t, "author")
	project := f.project(t, author, "Website")
	task := f.task(t, project, "Discussed")
	comment, err := f.comments.Create(f.db, models.CommentCreate{TaskID: task.ID, CreatedBy: author.ID, Content: "draft"})
	require.NoError(t, err)

	content := "edited"
	updated, err := f.comments.Update(f.db, comment.ID.String(), models.CommentUpdate{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	detail, err := f.comments.GetDetail(f.db, comment.ID.String())
	require.NoError(t, err)
	require.NotNil(t, detail.Author)
	assert.Equal(t, author.ID, detail.Author.ID)
	require.NotNil(t, detail.Task)
	assert.Equal(t, task.ID, detail.Task.ID)
}
