package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"blogsite/app/config"
	"blogsite/app/controllers"
	"blogsite/app/mail"
	"blogsite/app/middleware"
	"blogsite/app/repositories"
	"blogsite/app/services"
	"blogsite/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HealthChecker reports whether the record store can serve requests.
type HealthChecker interface {
	Healthy() bool
}

// Dependencies are the collaborators the router wires into controllers.
type Dependencies struct {
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository
	Mailer   mail.Mailer
	Views    *views.Renderer
	Health   HealthChecker
	Logger   *zap.Logger
	Server   config.ServerConfig
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Dependencies) *mux.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	postService := services.NewPostService(deps.Posts, deps.Comments)
	commentService := services.NewCommentService(deps.Comments)
	shareService := services.NewShareService(deps.Mailer)

	postController := controllers.NewPostController(postService, shareService, deps.Views, logger, deps.Server.SiteURL)
	commentController := controllers.NewCommentController(postService, commentService, deps.Views, logger)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))

	// Router level handlers bypass router.Use
	router.NotFoundHandler = chain(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		postController.NotFound(w, r, "The page you requested does not exist.")
	}))

	// Methods are checked by allow rather than mux matchers: routes on a
	// subrouter share its prefix matcher, which hides a method mismatch on
	// any route but the last and turns the 405 into a 404.
	redirect := http.RedirectHandler("/blog/", http.StatusMovedPermanently)
	router.HandleFunc("/", allow(redirect.ServeHTTP, http.MethodGet))
	router.HandleFunc("/blog", allow(redirect.ServeHTTP, http.MethodGet))
	router.HandleFunc("/healthz", allow(healthz(deps.Health), http.MethodGet))

	// Web routes
	blog := router.PathPrefix("/blog").Subrouter()
	blog.HandleFunc("/", allow(postController.List, http.MethodGet))
	blog.HandleFunc("/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}/{slug}/", allow(postController.Detail, http.MethodGet))
	blog.HandleFunc("/{id:[0-9]+}/share/", allow(postController.Share, http.MethodGet, http.MethodPost))
	blog.HandleFunc("/{id:[0-9]+}/comment/", allow(commentController.Create, http.MethodPost))

	// API routes with JSON content type. CORS answers preflights before
	// allow runs.
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.CORS(deps.Server.AllowedOrigins()))
	api.Use(middleware.ContentTypeJSON)

	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", allow(postController.List, http.MethodGet))
	posts.HandleFunc("/{year:[0-9]+}/{month:[0-9]+}/{day:[0-9]+}/{slug}", allow(postController.Detail, http.MethodGet))
	posts.HandleFunc("/{id:[0-9]+}/share", allow(postController.Share, http.MethodGet, http.MethodPost))
	posts.HandleFunc("/{id:[0-9]+}/comments", allow(commentController.Create, http.MethodPost))

	return router
}

func chain(logger *zap.Logger, h http.Handler) http.Handler {
	return middleware.RequestID(middleware.Logger(logger)(middleware.Recoverer(logger)(h)))
}

// allow answers 405 with an Allow header unless the request method is one
// of methods.
func allow(h http.HandlerFunc, methods ...string) http.HandlerFunc {
	allowed := strings.Join(methods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		for _, m := range methods {
			if r.Method == m {
				h(w, r)
				return
			}
		}
		w.Header().Set("Allow", allowed)
		methodNotAllowed(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAPI(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{"error": "Method not allowed"})
		return
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func healthz(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, storage := http.StatusOK, "up"
		if health == nil || !health.Healthy() {
			status, storage = http.StatusServiceUnavailable, "down"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  http.StatusText(status),
			"storage": storage,
		})
	}
}
