package controllers

import (
	"net/http"

	"blogsite/app/forms"
	"blogsite/app/models"
	"blogsite/app/repositories"
	"blogsite/app/services"
	"blogsite/app/views"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	responder
	postService    *services.PostService
	commentService *services.CommentService
}

// CommentContext is the view context after a comment submission.
// Comment is nil when the form did not validate.
type CommentContext struct {
	Post    *models.Post    `json:"post"`
	Comment *models.Comment `json:"comment"`
	Form    *forms.Form     `json:"form"`
}

// NewCommentController creates a new CommentController
func NewCommentController(postService *services.PostService, commentService *services.CommentService, renderer *views.Renderer, logger *zap.Logger) *CommentController {
	return &CommentController{
		responder:      newResponder(renderer, logger),
		postService:    postService,
		commentService: commentService,
	}
}

// Create handles adding a comment to a published post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		cc.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	post, ok := lookupPublished(cc.responder, cc.postService, w, r)
	if !ok {
		return
	}

	values, err := readValues(w, r)
	if err != nil {
		cc.sendStatus(w, r, http.StatusBadRequest, err.Error())
		return
	}

	data := CommentContext{Post: post}
	input, fieldErrs := forms.ParseCommentForm(values)
	if fieldErrs != nil {
		data.Form = forms.Bind(values, fieldErrs)
		cc.render(w, r, http.StatusOK, views.PostComment, data)
		return
	}

	comment, err := cc.commentService.AddComment(post, input)
	var invalid forms.FieldErrors
	switch {
	case err == nil:
		data.Comment = comment
		data.Form = forms.Bind(values, nil)
		status := http.StatusOK
		if wantsJSON(r) {
			status = http.StatusCreated
		}
		cc.render(w, r, status, views.PostComment, data)
	case errors.As(err, &invalid):
		data.Form = forms.Bind(values, invalid)
		cc.render(w, r, http.StatusOK, views.PostComment, data)
	case errors.Is(err, repositories.ErrNotFound):
		cc.NotFound(w, r, "No post matches the given query.")
	default:
		cc.sendError(w, r, err)
	}
}
