package services

import (
	"fmt"
	"testing"
	"time"

	"blogsite/app/models"
	"blogsite/app/repositories/mock"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	posts    *mock.PostRepository
	comments *mock.CommentRepository
	service  *PostService
}

func newFixture() *fixture {
	posts := mock.NewPostRepository()
	comments := mock.NewCommentRepository()
	comments.Posts = posts
	return &fixture{
		posts:    posts,
		comments: comments,
		service:  NewPostService(posts, comments),
	}
}

func (f *fixture) addPost(t *testing.T, slug string, status models.Status, publish time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:   "Post " + slug,
		Slug:    slug,
		Author:  "admin",
		Body:    fmt.Sprintf("Body of %s", slug),
		Publish: publish,
		Status:  status,
	}
	require.NoError(t, f.posts.Create(post))
	return post
}
