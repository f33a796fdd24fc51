package routes

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogsite/app/config"
	mailmock "blogsite/app/mail/mock"
	"blogsite/app/models"
	"blogsite/app/repositories"
	"blogsite/app/views"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	store  *repositories.Store
	mailer *mailmock.Mailer
	router *mux.Router
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	store, err := repositories.Open(config.StorageConfig{InMemory: true}, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if store.Healthy() {
			store.Close()
		}
	})

	renderer, err := views.New()
	require.NoError(t, err)
	mailer := mailmock.NewMailer()

	router := SetupRoutes(Dependencies{
		Posts:    store.Posts(),
		Comments: store.Comments(),
		Mailer:   mailer,
		Views:    renderer,
		Health:   store,
		Logger:   zap.NewNop(),
		Server:   config.ServerConfig{CORSOrigins: "https://app.example.com"},
	})
	return &testServer{store: store, mailer: mailer, router: router}
}

func (s *testServer) addPost(t *testing.T, slug string, status models.Status, publish time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:   "Post " + slug,
		Slug:    slug,
		Author:  "admin",
		Body:    "Body of " + slug,
		Publish: publish,
		Status:  status,
	}
	require.NoError(t, s.store.Posts().Create(post))
	return post
}

func (s *testServer) do(method, path string, body url.Values, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
