package controllers

import (
	"net/http"
	"strings"

	"blogsite/app/forms"
	"blogsite/app/mail"
	"blogsite/app/models"
	"blogsite/app/pagination"
	"blogsite/app/repositories"
	"blogsite/app/services"
	"blogsite/app/views"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// shareFailedMessage is shown when the mail transport rejects a share.
const shareFailedMessage = "Your e-mail could not be sent. Please try again later."

// PostController handles HTTP requests for blog posts
type PostController struct {
	responder
	postService  *services.PostService
	shareService *services.ShareService
	siteURL      string
}

// ListContext is the view context of the post list.
type ListContext struct {
	Posts []*models.Post  `json:"posts"`
	Page  pagination.Page `json:"page"`
}

// DetailContext is the view context of a post page.
type DetailContext struct {
	Post     *models.Post      `json:"post"`
	Comments []*models.Comment `json:"comments"`
	Form     *forms.Form       `json:"form"`
}

// ShareContext is the view context of the share page.
type ShareContext struct {
	Post   *models.Post `json:"post"`
	Form   *forms.Form  `json:"form"`
	Sent   bool         `json:"sent"`
	SentTo string       `json:"sent_to,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// NewPostController creates a new PostController. siteURL, when set, is the
// origin used for absolute post links instead of the request host.
func NewPostController(postService *services.PostService, shareService *services.ShareService, renderer *views.Renderer, logger *zap.Logger, siteURL string) *PostController {
	return &PostController{
		responder:    newResponder(renderer, logger),
		postService:  postService,
		shareService: shareService,
		siteURL:      siteURL,
	}
}

// List handles listing published posts, three per page
func (pc *PostController) List(w http.ResponseWriter, r *http.Request) {
	page, err := pc.postService.ListPublished(r.URL.Query().Get("page"))
	if err != nil {
		pc.sendError(w, r, err)
		return
	}
	pc.render(w, r, http.StatusOK, views.PostList, ListContext{Posts: page.Posts, Page: page.Page})
}

// Detail handles displaying a single published post with its active comments
func (pc *PostController) Detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, errY := pathInt(r, "year")
	month, errM := pathInt(r, "month")
	day, errD := pathInt(r, "day")
	if errY != nil || errM != nil || errD != nil {
		pc.NotFound(w, r, "No post matches the given query.")
		return
	}

	post, err := pc.postService.GetPublishedPost(year, month, day, vars["slug"])
	if errors.Is(err, repositories.ErrNotFound) {
		pc.NotFound(w, r, "No post matches the given query.")
		return
	}
	if err != nil {
		pc.sendError(w, r, err)
		return
	}

	comments, err := pc.postService.ActiveComments(post.ID)
	if err != nil {
		pc.sendError(w, r, err)
		return
	}
	pc.render(w, r, http.StatusOK, views.PostDetail, DetailContext{
		Post:     post,
		Comments: comments,
		Form:     forms.NewForm(),
	})
}

// Share handles the "email this post" form
func (pc *PostController) Share(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		pc.methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		return
	}

	post, ok := lookupPublished(pc.responder, pc.postService, w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		pc.render(w, r, http.StatusOK, views.PostShare, ShareContext{Post: post, Form: forms.NewForm()})
		return
	}

	values, err := readValues(w, r)
	if err != nil {
		pc.sendStatus(w, r, http.StatusBadRequest, err.Error())
		return
	}

	data := ShareContext{Post: post}
	input, fieldErrs := forms.ParseShareForm(values)
	data.Form = forms.Bind(values, fieldErrs)
	if fieldErrs != nil {
		pc.render(w, r, http.StatusOK, views.PostShare, data)
		return
	}

	err = pc.shareService.Share(r.Context(), post, input, pc.origin(r))
	switch {
	case err == nil:
		data.Sent = true
		data.SentTo = input.To
		data.Form = forms.NewForm()
		pc.render(w, r, http.StatusOK, views.PostShare, data)
	case errors.Is(err, mail.ErrTransport):
		pc.logger.Error("share email failed",
			zap.Error(err),
			zap.Int("post_id", post.ID),
			zap.String("request_id", requestID(r)),
		)
		data.Error = shareFailedMessage
		pc.render(w, r, http.StatusBadGateway, views.PostShare, data)
	default:
		pc.sendError(w, r, err)
	}
}

// origin is the scheme and host absolute links are built from.
func (pc *PostController) origin(r *http.Request) string {
	if pc.siteURL != "" {
		return pc.siteURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + r.Host
}

// lookupPublished loads the published post named by the id path variable,
// answering 404 itself when there is none.
func lookupPublished(rs responder, postService *services.PostService, w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := pathInt(r, "id")
	if err != nil {
		rs.NotFound(w, r, "No post matches the given query.")
		return nil, false
	}
	post, err := postService.GetPublishedByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		rs.NotFound(w, r, "No post matches the given query.")
		return nil, false
	}
	if err != nil {
		rs.sendError(w, r, err)
		return nil, false
	}
	return post, true
}
