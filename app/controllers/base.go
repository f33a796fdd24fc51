package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"blogsite/app/forms"
	"blogsite/app/middleware"
	"blogsite/app/views"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// maxFormBytes bounds submitted form and JSON bodies.
const maxFormBytes = 1 << 20

// responder holds what every controller needs to answer a request.
type responder struct {
	views  *views.Renderer
	logger *zap.Logger
}

func newResponder(renderer *views.Renderer, logger *zap.Logger) responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return responder{views: renderer, logger: logger}
}

// wantsJSON is true for /api paths and for clients asking for JSON.
func wantsJSON(r *http.Request) bool {
	return middleware.IsAPI(r) || strings.Contains(r.Header.Get("Accept"), "application/json")
}

// render answers with the view context as JSON or as the named page.
func (rs responder) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	if wantsJSON(r) {
		rs.sendJSON(w, status, data)
		return
	}
	if err := rs.views.RenderPage(w, status, page, data); err != nil {
		rs.sendError(w, r, errors.Wrapf(err, "render %s", page))
	}
}

func (rs responder) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Warn("failed to encode response", zap.Error(err))
	}
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields forms.FieldErrors `json:"fields,omitempty"`
}

// sendStatus writes a plain error response for status.
func (rs responder) sendStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	if wantsJSON(r) {
		rs.sendJSON(w, status, errorBody{Error: message})
		return
	}
	http.Error(w, message, status)
}

// sendError logs err and answers 500 without exposing it.
func (rs responder) sendError(w http.ResponseWriter, r *http.Request, err error) {
	rs.logger.Error("request failed",
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestID(r)),
	)
	rs.sendStatus(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// NotFound answers 404 as JSON or with the not found page.
func (rs responder) NotFound(w http.ResponseWriter, r *http.Request, message string) {
	if wantsJSON(r) {
		rs.sendJSON(w, http.StatusNotFound, errorBody{Error: message})
		return
	}
	data := struct{ Message string }{message}
	if err := rs.views.RenderPage(w, http.StatusNotFound, views.NotFound, data); err != nil {
		rs.logger.Error("failed to render not found page", zap.Error(err))
		http.Error(w, message, http.StatusNotFound)
	}
}

func (rs responder) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	rs.sendStatus(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}

func requestID(r *http.Request) string {
	return middleware.GetRequestID(r.Context())
}

// pathInt reads an integer mux variable.
func pathInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

// readValues returns the submitted fields from a form encoded or JSON body.
// JSON scalars are converted to their string form.
func readValues(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		if err := r.ParseForm(); err != nil {
			return nil, errors.Wrap(err, "failed to parse form")
		}
		return r.PostForm, nil
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "invalid JSON")
	}
	values := url.Values{}
	for field, v := range raw {
		switch v := v.(type) {
		case nil:
		case string:
			values.Set(field, v)
		case float64, bool:
			values.Set(field, fmt.Sprint(v))
		default:
			return nil, errors.Errorf("invalid JSON: field %q must be a string", field)
		}
	}
	return values, nil
}
