package services

import (
	"time"

	"taskboard-app/taskboard/database"
	"taskboard-app/taskboard/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PasswordHasher turns a plain password into a storable hash
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type UserServiceInterface interface {
	CRUDServiceInterface[models.User, models.UserCreate, models.UserUpdate]
	GetByEmail(db *database.Database, email string) (models.User, error)
	GetByUsername(db *database.Database, username string) (models.User, error)
	ListActive(db *database.Database, skip, limit int) ([]models.User, error)
	Deactivate(db *database.Database, id string) (models.User, error)
}

type UserService struct {
	*CRUDService[models.User, models.UserCreate, models.UserUpdate]
	hasher PasswordHasher
}

func NewUserService(hasher PasswordHasher) *UserService {
	if hasher == nil {
		hasher = &AuthService{}
	}
	s := &UserService{hasher: hasher}
	s.CRUDService = newCRUDService(crudHooks[models.User, models.UserCreate, models.UserUpdate]{
		entity:   "user",
		notFound: ErrUserNotFound,
		build:    s.build,
		apply:    s.apply,
		cascade: func(tx *gorm.DB, user models.User) error {
			return detachUser(tx, user.ID)
		},
		actor: func(user models.User) string { return user.ID.String() },
	})
	return s
}

func (s *UserService) build(tx *gorm.DB, input models.UserCreate, now time.Time) (models.User, error) {
	if err := ensureUnique(tx, &models.User{}, "email", input.Email, nil, ErrEmailTaken); err != nil {
		return models.User{}, err
	}
	if err := ensureUnique(tx, &models.User{}, "username", input.Username, nil, ErrUsernameTaken); err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:     input.Email,
		Username:  input.Username,
		FullName:  input.FullName,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.Password != nil {
		hash, err := s.hasher.HashPassword(*input.Password)
		if err != nil {
			return models.User{}, validationError(err)
		}
		user.PasswordHash = hash
	}

	return user, nil
}

func (s *UserService) apply(tx *gorm.DB, current models.User, input models.UserUpdate, now time.Time) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if input.Email != nil && *input.Email != current.Email {
		if err := ensureUnique(tx, &models.User{}, "email", *input.Email, &current.ID, ErrEmailTaken); err != nil {
			return nil, err
		}
		updates["email"] = *input.Email
	}
	if input.Username != nil && *input.Username != current.Username {
		if err := ensureUnique(tx, &models.User{}, "username", *input.Username, &current.ID, ErrUsernameTaken); err != nil {
			return nil, err
		}
		updates["username"] = *input.Username
	}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.Password != nil {
		hash, err := s.hasher.HashPassword(*input.Password)
		if err != nil {
			return nil, validationError(err)
		}
		updates["password_hash"] = hash
	}

	return updates, nil
}

func (s *UserService) GetByEmail(db *database.Database, email string) (models.User, error) {
	var user models.User
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, lookupError(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) GetByUsername(db *database.Database, username string) (models.User, error) {
	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, lookupError(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) ListActive(db *database.Database, skip, limit int) ([]models.User, error) {
	users := []models.User{}
	if err := db.DB.Where("is_active = ?", true).Scopes(paginate(skip, limit)).Order("id").Find(&users).Error; err != nil {
		return nil, persistenceError(err)
	}
	return users, nil
}

// Deactivate marks the user inactive without deleting anything
func (s *UserService) Deactivate(db *database.Database, id string) (models.User, error) {
	inactive := false
	return s.Update(db, id, models.UserUpdate{IsActive: &inactive})
}

// ensureUnique returns conflict when another row already holds value in column
func ensureUnique(tx *gorm.DB, model interface{}, column string, value interface{}, exclude *uuid.UUID, conflict error) error {
	query := tx.Model(model).Where(column+" = ?", value)
	if exclude != nil {
		query = query.Where("id <> ?", *exclude)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return persistenceError(err)
	}
	if count > 0 {
		return conflict
	}
	return nil
}

var UserServiceInstance UserServiceInterface
