package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	mailmock "blogsite/app/mail/mock"
	"blogsite/app/models"
	"blogsite/app/repositories/mock"
	"blogsite/app/services"
	"blogsite/app/views"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testApp struct {
	posts    *mock.PostRepository
	comments *mock.CommentRepository
	mailer   *mailmock.Mailer
	logs     *observer.ObservedLogs
	router   *mux.Router
}

func setupTestApp(t *testing.T, siteURL string) *testApp {
	t.Helper()
	posts := mock.NewPostRepository()
	comments := mock.NewCommentRepository()
	comments.Posts = posts
	mailer := mailmock.NewMailer()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	renderer, err := views.New()
	require.NoError(t, err)

	postService := services.NewPostService(posts, comments)
	pc := NewPostController(postService, services.NewShareService(mailer), renderer, logger, siteURL)
	cc := NewCommentController(postService, services.NewCommentService(comments), renderer, logger)

	router := mux.NewRouter()
	router.HandleFunc("/blog/", pc.List).Methods("GET")
	router.HandleFunc("/blog/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}/{slug}/", pc.Detail).Methods("GET")
	router.HandleFunc("/blog/{id:[0-9]+}/share/", pc.Share).Methods("GET", "POST")
	router.HandleFunc("/blog/{id:[0-9]+}/comment/", cc.Create).Methods("POST")
	router.HandleFunc("/api/posts", pc.List).Methods("GET")
	router.HandleFunc("/api/posts/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}/{slug}", pc.Detail).Methods("GET")
	router.HandleFunc("/api/posts/{id:[0-9]+}/share", pc.Share).Methods("GET", "POST")
	router.HandleFunc("/api/posts/{id:[0-9]+}/comments", cc.Create).Methods("POST")

	return &testApp{posts: posts, comments: comments, mailer: mailer, logs: logs, router: router}
}

func (a *testApp) addPost(t *testing.T, slug string, status models.Status, publish time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:   "Post " + slug,
		Slug:    slug,
		Author:  "admin",
		Body:    "Body of " + slug,
		Publish: publish,
		Status:  status,
	}
	require.NoError(t, a.posts.Create(post))
	return post
}

func (a *testApp) addComment(t *testing.T, post *models.Post, body string, active bool) *models.Comment {
	t.Helper()
	c := models.NewComment("Reader", "reader@example.com", body)
	c.PostID = post.ID
	c.Active = active
	require.NoError(t, a.comments.Create(c))
	return c
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func sharePath(id int) string   { return fmt.Sprintf("/blog/%d/share/", id) }
func commentPath(id int) string { return fmt.Sprintf("/blog/%d/comment/", id) }
