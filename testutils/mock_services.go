package testutils

import (
	"time"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"
	"taskboard-app/taskboard/utils/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCRUD mocks the generic CRUD methods shared by every entity service
type MockCRUD[T any, C any, U any] struct {
	mock.Mock
}

func (m *MockCRUD[T, C, U]) Create(db *database.Database, input C) (T, error) {
	args := m.Called(db, input)
	return args.Get(0).(T), args.Error(1)
}

func (m *MockCRUD[T, C, U]) Get(db *database.Database, id string) (T, error) {
	args := m.Called(db, id)
	return args.Get(0).(T), args.Error(1)
}

func (m *MockCRUD[T, C, U]) List(db *database.Database, skip, limit int) ([]T, error) {
	args := m.Called(db, skip, limit)
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockCRUD[T, C, U]) Update(db *database.Database, id string, input U) (T, error) {
	args := m.Called(db, id, input)
	return args.Get(0).(T), args.Error(1)
}

func (m *MockCRUD[T, C, U]) Delete(db *database.Database, id string) (T, error) {
	args := m.Called(db, id)
	return args.Get(0).(T), args.Error(1)
}

func (m *MockCRUD[T, C, U]) Count(db *database.Database) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserService struct {
	MockCRUD[models.User, models.UserCreate, models.UserUpdate]
}

func (m *MockUserService) GetByEmail(db *database.Database, email string) (models.User, error) {
	args := m.Called(db, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(db *database.Database, username string) (models.User, error) {
	args := m.Called(db, username)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) ListActive(db *database.Database, skip, limit int) ([]models.User, error) {
	args := m.Called(db, skip, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) Deactivate(db *database.Database, id string) (models.User, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.User), args.Error(1)
}

type MockProjectService struct {
	MockCRUD[models.Project, models.ProjectCreate, models.ProjectUpdate]
}

func (m *MockProjectService) GetDetail(db *database.Database, id string) (models.ProjectDetail, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.ProjectDetail), args.Error(1)
}

func (m *MockProjectService) ListByOwner(db *database.Database, ownerID string, skip, limit int) ([]models.Project, error) {
	args := m.Called(db, ownerID, skip, limit)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) ListActive(db *database.Database, skip, limit int) ([]models.Project, error) {
	args := m.Called(db, skip, limit)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) SoftDelete(db *database.Database, id string) (models.Project, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.Project), args.Error(1)
}

func (m *MockProjectService) Restore(db *database.Database, id string) (models.Project, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.Project), args.Error(1)
}

type MockTaskService struct {
	MockCRUD[models.Task, models.TaskCreate, models.TaskUpdate]
}

func (m *MockTaskService) MarkCompleted(db *database.Database, id string) (models.Task, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) FilterTasks(db *database.Database, filter models.TaskFilter, skip, limit int) ([]models.Task, error) {
	args := m.Called(db, filter, skip, limit)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) GetOverdueTasks(db *database.Database) ([]models.Task, error) {
	args := m.Called(db)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) GetUpcomingTasks(db *database.Database, days int) ([]models.Task, error) {
	args := m.Called(db, days)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) ListByProject(db *database.Database, projectID string, skip, limit int) ([]models.Task, error) {
	args := m.Called(db, projectID, skip, limit)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) ListByAssignee(db *database.Database, userID string, skip, limit int) ([]models.Task, error) {
	args := m.Called(db, userID, skip, limit)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) ListByStatus(db *database.Database, status models.TaskStatus, skip, limit int) ([]models.Task, error) {
	args := m.Called(db, status, skip, limit)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) ListByPriority(db *database.Database, priority models.TaskPriority, skip, limit int) ([]models.Task, error) {
	args := m.Called(db, priority, skip, limit)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) GetDetail(db *database.Database, id string) (models.TaskDetail, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.TaskDetail), args.Error(1)
}

type MockTagService struct {
	MockCRUD[models.Tag, models.TagCreate, models.TagUpdate]
}

func (m *MockTagService) GetByName(db *database.Database, name string) (models.Tag, error) {
	args := m.Called(db, name)
	return args.Get(0).(models.Tag), args.Error(1)
}

func (m *MockTagService) GetWithTasks(db *database.Database, id string) (models.TagWithTasks, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.TagWithTasks), args.Error(1)
}

func (m *MockTagService) ListTaskTags(db *database.Database, taskID string) ([]models.Tag, error) {
	args := m.Called(db, taskID)
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagService) AttachTag(db *database.Database, tagID, taskID string) error {
	args := m.Called(db, tagID, taskID)
	return args.Error(0)
}

func (m *MockTagService) DetachTag(db *database.Database, tagID, taskID string) error {
	args := m.Called(db, tagID, taskID)
	return args.Error(0)
}

type MockAssignmentService struct {
	MockCRUD[models.TaskAssignment, models.AssignmentCreate, models.AssignmentUpdate]
}

func (m *MockAssignmentService) CreateAssignment(db *database.Database, taskID, userID uuid.UUID, assignedBy *uuid.UUID, hoursAllocated *float64) (models.TaskAssignment, error) {
	args := m.Called(db, taskID, userID, assignedBy, hoursAllocated)
	return args.Get(0).(models.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentService) RemoveAssignment(db *database.Database, taskID, userID string) (models.TaskAssignment, error) {
	args := m.Called(db, taskID, userID)
	return args.Get(0).(models.TaskAssignment), args.Error(1)
}

func (m *MockAssignmentService) ListTaskAssignments(db *database.Database, taskID string) ([]models.AssignmentDetail, error) {
	args := m.Called(db, taskID)
	return args.Get(0).([]models.AssignmentDetail), args.Error(1)
}

func (m *MockAssignmentService) ListUserAssignments(db *database.Database, userID string) ([]models.AssignmentDetail, error) {
	args := m.Called(db, userID)
	return args.Get(0).([]models.AssignmentDetail), args.Error(1)
}

type MockCommentService struct {
	MockCRUD[models.TaskComment, models.CommentCreate, models.CommentUpdate]
}

func (m *MockCommentService) ListByTask(db *database.Database, taskID string, skip, limit int) ([]models.TaskComment, error) {
	args := m.Called(db, taskID, skip, limit)
	return args.Get(0).([]models.TaskComment), args.Error(1)
}

func (m *MockCommentService) ListByUser(db *database.Database, userID string, skip, limit int) ([]models.TaskComment, error) {
	args := m.Called(db, userID, skip, limit)
	return args.Get(0).([]models.TaskComment), args.Error(1)
}

func (m *MockCommentService) GetDetail(db *database.Database, id string) (models.CommentDetail, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.CommentDetail), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) ProjectAnalytics(db *database.Database, projectID string) (models.ProjectAnalytics, error) {
	args := m.Called(db, projectID)
	return args.Get(0).(models.ProjectAnalytics), args.Error(1)
}

func (m *MockAnalyticsService) UserWorkload(db *database.Database, userID string) (models.UserWorkload, error) {
	args := m.Called(db, userID)
	return args.Get(0).(models.UserWorkload), args.Error(1)
}

func (m *MockAnalyticsService) Dashboard(db *database.Database) (models.TaskDashboard, error) {
	args := m.Called(db)
	return args.Get(0).(models.TaskDashboard), args.Error(1)
}

func (m *MockAnalyticsService) CompletionTrend(db *database.Database, days int) (models.CompletionTrend, error) {
	args := m.Called(db, days)
	return args.Get(0).(models.CompletionTrend), args.Error(1)
}

func (m *MockAnalyticsService) OverdueTasks(db *database.Database) ([]models.TaskWithRelations, error) {
	args := m.Called(db)
	return args.Get(0).([]models.TaskWithRelations), args.Error(1)
}

func (m *MockAnalyticsService) TasksCreatedBetween(db *database.Database, start, end time.Time) ([]models.Task, error) {
	args := m.Called(db, start, end)
	return args.Get(0).([]models.Task), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(db *database.Database, email, password string) (string, models.User, error) {
	args := m.Called(db, email, password)
	return args.String(0), args.Get(1).(models.User), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*token.JWTClaims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*token.JWTClaims)
	return claims, args.Error(1)
}

func (m *MockAuthService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ComparePasswords(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}
