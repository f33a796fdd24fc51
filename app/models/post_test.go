package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	publish := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:        1,
				Title:     "Valid Title",
				Slug:      "valid-title",
				Body:      "Body text",
				Publish:   publish,
				CreatedAt: publish,
				Status:    StatusPublished,
			},
			wantErr: false,
		},
		{
			name: "missing title",
			post: &Post{
				Slug:      "no-title",
				Body:      "Body text",
				Publish:   publish,
				CreatedAt: publish,
				Status:    StatusDraft,
			},
			wantErr: true,
		},
		{
			name: "slug with spaces",
			post: &Post{
				Title:     "Spaces",
				Slug:      "has spaces",
				Body:      "Body text",
				Publish:   publish,
				CreatedAt: publish,
				Status:    StatusDraft,
			},
			wantErr: true,
		},
		{
			name: "unknown status",
			post: &Post{
				Title:     "Status",
				Slug:      "status",
				Body:      "Body text",
				Publish:   publish,
				CreatedAt: publish,
				Status:    Status("XX"),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			post: &Post{
				Title:   "Valid Title",
				Slug:    "valid-title",
				Body:    "Body text",
				Publish: publish,
				Status:  StatusDraft,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{Title: "Test Post", Slug: "test-post", Body: "Test Content"}

	assert.True(t, post.CreatedAt.IsZero())
	post.BeforeCreate()
	assert.False(t, post.CreatedAt.IsZero())
	assert.False(t, post.Publish.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
	assert.Equal(t, StatusDraft, post.Status)
}

func TestPostPaths(t *testing.T) {
	post := &Post{
		ID:      42,
		Slug:    "who-was-django-reinhardt",
		Publish: time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC),
	}

	assert.Equal(t, "/blog/2024/1/5/who-was-django-reinhardt/", post.AbsolutePath())
	assert.Equal(t, "/blog/42/share/", post.SharePath())
	assert.Equal(t, "/blog/42/comment/", post.CommentPath())
}

func TestPostPublishedOn(t *testing.T) {
	offset := time.FixedZone("UTC+3", 3*60*60)
	post := &Post{Publish: time.Date(2024, 1, 6, 1, 0, 0, 0, offset)}

	// 2024-01-06 01:00 at +03:00 is still the 5th in UTC
	assert.True(t, post.PublishedOn(2024, 1, 5))
	assert.False(t, post.PublishedOn(2024, 1, 6))
}

func TestPostIsPublished(t *testing.T) {
	assert.True(t, (&Post{Status: StatusPublished}).IsPublished())
	assert.False(t, (&Post{Status: StatusDraft}).IsPublished())
}
