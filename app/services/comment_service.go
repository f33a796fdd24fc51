package services

import (
	"html"
	"strings"

	"blogsite/app/forms"
	"blogsite/app/models"
	"blogsite/app/repositories"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	policy      *bluemonday.Policy
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		policy:      bluemonday.StrictPolicy(),
	}
}

// AddComment stores an active comment on post. The association always
// comes from post; input has no say in it. A body that sanitises to
// nothing is reported as a field error.
func (s *CommentService) AddComment(post *models.Post, input forms.CommentInput) (*models.Comment, error) {
	if post == nil || !post.IsPublished() {
		return nil, repositories.ErrNotFound
	}

	name := s.sanitize(input.Name)
	body := s.sanitize(input.Body)
	errs := forms.FieldErrors{}
	if name == "" {
		errs["name"] = "This field is required."
	}
	if body == "" {
		errs["body"] = "This field is required."
	}
	if len(errs) > 0 {
		return nil, errs
	}

	comment := models.NewComment(name, input.Email, body)
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid comment")
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, errors.Wrap(err, "failed to save comment")
	}
	return comment, nil
}

// sanitize strips markup and returns plain text.
func (s *CommentService) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}
