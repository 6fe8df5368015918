package services

import (
	"testing"
	"time"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fixture struct {
	db          *database.Database
	users       *UserService
	projects    *ProjectService
	tasks       *TaskService
	tags        *TagService
	assignments *AssignmentService
	comments    *CommentService
	analytics   *AnalyticsService
	trash       *TrashService
}

func newFixture(db *database.Database) *fixture {
	f := &fixture{
		db:          db,
		users:       NewUserService(nil),
		projects:    NewProjectService(),
		tasks:       NewTaskService(),
		tags:        NewTagService(),
		assignments: NewAssignmentService(),
		comments:    NewCommentService(),
		analytics:   NewAnalyticsService(),
		trash:       NewTrashService(),
	}
	f.users.clock = fixedClock
	f.projects.clock = fixedClock
	f.tasks.clock = fixedClock
	f.tags.clock = fixedClock
	f.assignments.clock = fixedClock
	f.comments.clock = fixedClock
	f.analytics.clock = fixedClock
	f.trash.clock = fixedClock
	return f
}

func (f *fixture) user(t *testing.T, username string) models.User {
	t.Helper()
	user, err := f.users.Create(f.db, models.UserCreate{
		Email:    username + "@example.com",
		Username: username,
		FullName: username,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) project(t *testing.T, owner models.User, name string) models.Project {
	t.Helper()
	project, err := f.projects.Create(f.db, models.ProjectCreate{Name: name, OwnerID: owner.ID})
	require.NoError(t, err)
	return project
}

func (f *fixture) task(t *testing.T, project models.Project, title string, opts ...func(*models.TaskCreate)) models.Task {
	t.Helper()
	input := models.TaskCreate{Title: title, ProjectID: project.ID}
	for _, opt := range opts {
		opt(&input)
	}
	task, err := f.tasks.Create(f.db, input)
	require.NoError(t, err)
	return task
}

func withStatus(status models.TaskStatus) func(*models.TaskCreate) {
	return func(in *models.TaskCreate) { in.Status = &status }
}

func withPriority(priority models.TaskPriority) func(*models.TaskCreate) {
	return func(in *models.TaskCreate) { in.Priority = &priority }
}

func withAssignee(id uuid.UUID) func(*models.TaskCreate) {
	return func(in *models.TaskCreate) { in.AssignedTo = &id }
}

func dueIn(d time.Duration) func(*models.TaskCreate) {
	return func(in *models.TaskCreate) {
		due := fixedNow.Add(d)
		in.DueDate = &due
	}
}

func count(t *testing.T, db *database.Database, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.DB.Model(model).Count(&n).Error)
	return n
}

func taskIDs(tasks []models.Task) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}
