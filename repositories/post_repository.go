// File: /repositories/post_repository.go
package repositories

import (
	"gorm.io/gorm"

	"friendloop-api/models"
	"friendloop-api/services"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create persists a new post record.
func (r *PostRepository) Create(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return services.UnavailableError("failed to create post", err)
	}
	return nil
}

// FindByAuthors returns posts by any of the given authors, newest first.
func (r *PostRepository) FindByAuthors(authorIDs []string) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}

	var posts []models.Post
	err := r.db.
		Preload("Author").
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, services.UnavailableError("failed to load posts", err)
	}
	return posts, nil
}

// FindAll returns every post, newest first.
func (r *PostRepository) FindAll() ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Preload("Author").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, services.UnavailableError("failed to load posts", err)
	}
	return posts, nil
}
