package repositories

import "blogsite/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	GetPublishedByID(id int) (*models.Post, error)
	GetPublishedByDateSlug(year, month, day int, slug string) (*models.Post, error)
	ListPublished(limit, offset int) ([]*models.Post, error)
	CountPublished() (int, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	ListActiveByPost(postID int) ([]*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id int) error
}
