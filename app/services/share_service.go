package services

import (
	"context"
	"fmt"
	"strings"

	"blogsite/app/forms"
	"blogsite/app/mail"
	"blogsite/app/models"

	"github.com/pkg/errors"
)

// ShareService emails a link to a post on behalf of a reader.
type ShareService struct {
	mailer mail.Mailer
}

func NewShareService(mailer mail.Mailer) *ShareService {
	return &ShareService{mailer: mailer}
}

// Share sends one recommendation email to input.To. Transport failures
// are returned and match mail.ErrTransport.
func (s *ShareService) Share(ctx context.Context, post *models.Post, input forms.ShareInput, origin string) error {
	if !post.IsPublished() {
		return errors.Wrapf(errNotPublished, "post %d", post.ID)
	}
	return s.mailer.Send(ctx, ShareMessage(post, input, origin))
}

// ShareMessage builds the recommendation email for post.
func ShareMessage(post *models.Post, input forms.ShareInput, origin string) mail.Message {
	postURL := PostURL(origin, post)
	return mail.Message{
		To:      []string{input.To},
		Subject: fmt.Sprintf("%s (%s) recommends you read %s", input.Name, input.Email, post.Title),
		Body:    fmt.Sprintf("Read %s at %s\n\n%s's comments: %s", post.Title, postURL, input.Name, input.Comments),
	}
}

// PostURL is the absolute URL of the post detail page under origin.
func PostURL(origin string, post *models.Post) string {
	return strings.TrimRight(origin, "/") + post.AbsolutePath()
}
