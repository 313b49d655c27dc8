// File: /repositories/user_repository.go
package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"friendloop-api/models"
	"friendloop-api/services"
)

// UserRepository is the GORM-backed user document store. Relationship sets
// are JSON columns on the user row, so Save is one per-record write.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return services.ConflictError("user with this email or username already exists")
		}
		return services.UnavailableError("failed to create user", err)
	}
	return nil
}

// FindByID loads a user record. Returns a not-found error for absent ids.
func (r *UserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.NotFoundError("user not found")
		}
		return nil, services.UnavailableError("failed to load user", err)
	}
	return &user, nil
}

// FindByEmail loads a user by email.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.NotFoundError("user not found")
		}
		return nil, services.UnavailableError("failed to load user", err)
	}
	return &user, nil
}

// FindByUsername loads a user by username.
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.NotFoundError("user not found")
		}
		return nil, services.UnavailableError("failed to load user", err)
	}
	return &user, nil
}

// FindByIDs loads the users whose ids are in the given set. Missing ids are
// silently skipped.
func (r *UserRepository) FindByIDs(ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, services.UnavailableError("failed to load users", err)
	}
	return users, nil
}

// FindAll returns every user record.
func (r *UserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, services.UnavailableError("failed to load users", err)
	}
	return users, nil
}

// Search matches username or email case-insensitively by substring,
// excluding the given user, capped at 20 results.
func (r *UserRepository) Search(query, excludeUserID string) ([]models.User, error) {
	pattern := fmt.Sprintf("%%%s%%", strings.ToLower(query))

	var users []models.User
	err := r.db.
		Where("id <> ?", excludeUserID).
		Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Limit(20).
		Find(&users).Error
	if err != nil {
		return nil, services.UnavailableError("failed to search users", err)
	}
	return users, nil
}

// Save writes the whole user record back in a single per-record write.
func (r *UserRepository) Save(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return services.UnavailableError("failed to save user", err)
	}
	return nil
}
