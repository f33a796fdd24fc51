package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"blogsite/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreate(t *testing.T) {
	app := setupTestApp(t, "")
	post := app.addPost(t, "discuss", models.StatusPublished, time.Now())
	other := app.addPost(t, "other", models.StatusPublished, time.Now())
	draft := app.addPost(t, "draft", models.StatusDraft, time.Now())

	activeCount := func(p *models.Post) int {
		comments, err := app.comments.ListActiveByPost(p.ID)
		require.NoError(t, err)
		return len(comments)
	}

	t.Run("valid form adds one comment to the url post", func(t *testing.T) {
		before := activeCount(post)
		otherBefore := activeCount(other)

		w := app.postForm(commentPath(post.ID), url.Values{
			"name":    {"Reader"},
			"email":   {"reader@example.com"},
			"body":    {"Nice one"},
			"post":    {fmt.Sprint(other.ID)},
			"post_id": {fmt.Sprint(other.ID)},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Your comment has been added.")
		assert.Equal(t, before+1, activeCount(post))
		assert.Equal(t, otherBefore, activeCount(other))
	})

	t.Run("valid json", func(t *testing.T) {
		before := activeCount(post)
		w := app.postJSON(fmt.Sprintf("/api/posts/%d/comments", post.ID),
			fmt.Sprintf(`{"name":"Reader","email":"reader@example.com","body":"JSON works","post_id":%d}`, other.ID))
		require.Equal(t, http.StatusCreated, w.Code)

		var body struct {
			Comment *models.Comment `json:"comment"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.NotNil(t, body.Comment)
		assert.Equal(t, post.ID, body.Comment.PostID)
		assert.True(t, body.Comment.Active)
		assert.Equal(t, before+1, activeCount(post))
	})

	t.Run("invalid form creates nothing", func(t *testing.T) {
		all, _ := app.comments.ListByPost(post.ID)
		w := app.postForm(commentPath(post.ID), url.Values{
			"name":  {"Reader"},
			"email": {"nope"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Enter a valid email address.")
		assert.Contains(t, body, "This field is required.")
		assert.Contains(t, body, `value="nope"`)
		assert.NotContains(t, body, "has been added")

		after, _ := app.comments.ListByPost(post.ID)
		assert.Len(t, after, len(all))
	})

	t.Run("invalid json echoes errors", func(t *testing.T) {
		w := app.postJSON(fmt.Sprintf("/api/posts/%d/comments", post.ID), `{"name":"Reader"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Comment *models.Comment `json:"comment"`
			Form    struct {
				Values map[string]string `json:"values"`
				Errors map[string]string `json:"errors"`
			} `json:"form"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Nil(t, body.Comment)
		assert.Equal(t, "Reader", body.Form.Values["name"])
		assert.Contains(t, body.Form.Errors, "email")
		assert.Contains(t, body.Form.Errors, "body")
	})

	t.Run("markup only body is invalid", func(t *testing.T) {
		before := activeCount(post)
		w := app.postForm(commentPath(post.ID), url.Values{
			"name":  {"Reader"},
			"email": {"reader@example.com"},
			"body":  {"<script>alert(1)</script>"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "has been added")
		assert.Equal(t, before, activeCount(post))
	})

	t.Run("draft and missing posts are not found", func(t *testing.T) {
		values := url.Values{"name": {"R"}, "email": {"r@example.com"}, "body": {"x"}}
		assert.Equal(t, http.StatusNotFound, app.postForm(commentPath(draft.ID), values).Code)
		assert.Equal(t, http.StatusNotFound, app.postForm(commentPath(777), values).Code)
		assert.Equal(t, 0, activeCount(draft))
	})

	t.Run("wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, commentPath(post.ID), nil)
		NewCommentController(nil, nil, nil, nil).Create(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "POST", w.Header().Get("Allow"))
	})
}
