package services

import (
	"fmt"
	"testing"
	"time"

	"blogsite/app/models"
	"blogsite/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPublished(t *testing.T) {
	f := newFixture()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 1; i <= 7; i++ {
		f.addPost(t, fmt.Sprintf("post-%d", i), models.StatusPublished, base.AddDate(0, 0, i))
	}
	f.addPost(t, "draft", models.StatusDraft, base.AddDate(0, 1, 0))

	slugs := func(page *PostPage) []string {
		var out []string
		for _, p := range page.Posts {
			out = append(out, p.Slug)
		}
		return out
	}

	tests := []struct {
		name   string
		raw    string
		number int
		want   []string
	}{
		{"missing page", "", 1, []string{"post-7", "post-6", "post-5"}},
		{"second page", "2", 2, []string{"post-4", "post-3", "post-2"}},
		{"last page", "3", 3, []string{"post-1"}},
		{"not an integer", "abc", 1, []string{"post-7", "post-6", "post-5"}},
		{"past the end", "99", 3, []string{"post-1"}},
		{"zero", "0", 3, []string{"post-1"}},
		{"negative", "-2", 3, []string{"post-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.service.ListPublished(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.number, page.Page.Number)
			assert.Equal(t, 3, page.Page.NumPages)
			assert.Equal(t, 7, page.Page.Count)
			assert.Equal(t, tt.want, slugs(page))
		})
	}
}

func TestListPublishedEmpty(t *testing.T) {
	f := newFixture()
	f.addPost(t, "draft", models.StatusDraft, time.Now())

	page, err := f.service.ListPublished("")
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.Equal(t, 1, page.Page.Number)
	assert.False(t, page.Page.HasNext())
}

func TestGetPublishedPost(t *testing.T) {
	f := newFixture()
	day := time.Date(2024, 5, 17, 23, 0, 0, 0, time.UTC)
	post := f.addPost(t, "hello", models.StatusPublished, day)
	f.addPost(t, "hidden", models.StatusDraft, day)

	got, err := f.service.GetPublishedPost(2024, 5, 17, "hello")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	misses := []struct {
		name             string
		year, month, day int
		slug             string
	}{
		{"wrong day", 2024, 5, 18, "hello"},
		{"wrong slug", 2024, 5, 17, "goodbye"},
		{"draft", 2024, 5, 17, "hidden"},
		{"invalid slug", 2024, 5, 17, "../etc"},
	}
	for _, tt := range misses {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.GetPublishedPost(tt.year, tt.month, tt.day, tt.slug)
			assert.ErrorIs(t, err, repositories.ErrNotFound)
		})
	}
}

func TestGetPublishedByID(t *testing.T) {
	f := newFixture()
	published := f.addPost(t, "live", models.StatusPublished, time.Now())
	draft := f.addPost(t, "draft", models.StatusDraft, time.Now())

	got, err := f.service.GetPublishedByID(published.ID)
	require.NoError(t, err)
	assert.Equal(t, "live", got.Slug)

	_, err = f.service.GetPublishedByID(draft.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = f.service.GetPublishedByID(12345)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestActiveComments(t *testing.T) {
	f := newFixture()
	post := f.addPost(t, "talk", models.StatusPublished, time.Now())

	for i, active := range []bool{true, false, true} {
		c := models.NewComment("Reader", "reader@example.com", fmt.Sprintf("comment %d", i))
		c.PostID = post.ID
		c.Active = active
		c.CreatedAt = time.Date(2024, 1, 1, 0, i, 0, 0, time.UTC)
		require.NoError(t, f.comments.Create(c))
	}

	comments, err := f.service.ActiveComments(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "comment 0", comments[0].Body)
	assert.Equal(t, "comment 2", comments[1].Body)
}

func TestCreatePost(t *testing.T) {
	f := newFixture()

	t.Run("valid post", func(t *testing.T) {
		post := &models.Post{Title: "Hello", Slug: "hello", Author: "admin", Body: "Hi"}
		require.NoError(t, f.service.CreatePost(post))
		assert.Greater(t, post.ID, 0)
		assert.Equal(t, models.StatusDraft, post.Status)
		assert.False(t, post.Publish.IsZero())
	})

	t.Run("invalid post", func(t *testing.T) {
		err := f.service.CreatePost(&models.Post{Title: "", Slug: "bad slug!"})
		assert.Error(t, err)
		n, _ := f.posts.CountPublished()
		assert.Equal(t, 0, n)
	})
}

func TestUpdatePost(t *testing.T) {
	f := newFixture()
	post := f.addPost(t, "draft", models.StatusDraft, time.Now())
	created := post.CreatedAt

	updated := *post
	updated.Status = models.StatusPublished
	updated.CreatedAt = time.Time{}
	require.NoError(t, f.service.UpdatePost(&updated))
	assert.Equal(t, created, updated.CreatedAt)

	got, err := f.service.GetPublishedByID(post.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished())

	err = f.service.UpdatePost(&models.Post{ID: 999, Title: "x", Slug: "x", Author: "a", Body: "b"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	f := newFixture()
	post := f.addPost(t, "gone", models.StatusPublished, time.Now())
	c := models.NewComment("Reader", "reader@example.com", "bye")
	c.PostID = post.ID
	require.NoError(t, f.comments.Create(c))

	require.NoError(t, f.service.DeletePost(post.ID))
	_, err := f.posts.GetByID(post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = f.comments.GetByID(c.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
