// File: /services/post_service.go
package services

import (
	"friendloop-api/models"

	"github.com/google/uuid"
)

// PostStore is the persistence boundary for post records.
type PostStore interface {
	Create(post *models.Post) error
	FindByAuthors(authorIDs []string) ([]models.Post, error)
	FindAll() ([]models.Post, error)
}

type PostService struct {
	posts PostStore
	users UserStore
}

func NewPostService(posts PostStore, users UserStore) *PostService {
	return &PostService{posts: posts, users: users}
}

// Create persists a new post for the given author. The author reference must
// resolve to an existing user.
func (s *PostService) Create(authorID, title, description string) (*models.Post, error) {
	author, err := s.users.FindByID(authorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:          uuid.New().String(),
		AuthorID:    author.ID,
		Title:       title,
		Description: description,
	}

	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Timeline returns the posts authored by the user's friends or the user
// themselves, newest first. It is a derived view recomputed on each call;
// followed-but-not-friended authors do not contribute.
func (s *PostService) Timeline(userID string) ([]models.Post, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(user.Friends)+1)
	authorIDs = append(authorIDs, user.Friends...)
	authorIDs = append(authorIDs, user.ID)

	return s.posts.FindByAuthors(authorIDs)
}

// All returns every post, newest first.
func (s *PostService) All() ([]models.Post, error) {
	return s.posts.FindAll()
}
