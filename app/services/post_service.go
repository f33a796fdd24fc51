package services

import (
	"blogsite/app/models"
	"blogsite/app/pagination"
	"blogsite/app/repositories"

	"github.com/pkg/errors"
)

// PostsPerPage is the size of a post list page.
const PostsPerPage = 3

var errNotPublished = errors.New("post is not published")

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// PostPage is one page of published posts with its pagination metadata.
type PostPage struct {
	Posts []*models.Post `json:"posts"`
	Page  pagination.Page `json:"page"`
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// ListPublished returns the requested page of published posts. A missing
// or non-integer page gives the first page and an out of range page gives
// the last one, so page input never fails.
func (s *PostService) ListPublished(pageRaw string) (*PostPage, error) {
	count, err := s.postRepo.CountPublished()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count posts")
	}

	page := pagination.New(count, PostsPerPage).GetPage(pageRaw)
	posts, err := s.postRepo.ListPublished(page.PerPage, page.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}
	return &PostPage{Posts: posts, Page: page}, nil
}

// GetPublishedPost finds the published post with slug on the given date.
func (s *PostService) GetPublishedPost(year, month, day int, slug string) (*models.Post, error) {
	if !models.ValidSlug(slug) {
		return nil, repositories.ErrNotFound
	}
	return s.postRepo.GetPublishedByDateSlug(year, month, day, slug)
}

// GetPublishedByID finds a published post by ID.
func (s *PostService) GetPublishedByID(id int) (*models.Post, error) {
	return s.postRepo.GetPublishedByID(id)
}

// ActiveComments lists the comments shown under a post, oldest first.
func (s *PostService) ActiveComments(postID int) ([]*models.Comment, error) {
	comments, err := s.commentRepo.ListActiveByPost(postID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get comments for post %d", postID)
	}
	return comments, nil
}

// CreatePost creates a new blog post with validation
func (s *PostService) CreatePost(post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return errors.Wrap(err, "invalid post")
	}
	return s.postRepo.Create(post)
}

// UpdatePost updates an existing post with validation
func (s *PostService) UpdatePost(post *models.Post) error {
	existing, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return err
	}

	// Preserve creation time
	post.CreatedAt = existing.CreatedAt
	if err := post.Validate(); err != nil {
		return errors.Wrap(err, "invalid post")
	}
	return s.postRepo.Update(post)
}

// DeletePost deletes a post and all its comments
func (s *PostService) DeletePost(id int) error {
	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return errors.Wrap(err, "failed to get comments")
	}

	for _, comment := range comments {
		if err := s.commentRepo.Delete(comment.ID); err != nil {
			return errors.Wrapf(err, "failed to delete comment %d", comment.ID)
		}
	}

	return s.postRepo.Delete(id)
}
