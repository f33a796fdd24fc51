// Package views renders the HTML pages of the blog.
//
// Page templates live under templates/ and are embedded in the binary. Each
// page is parsed together with base.html and the shared partials, and is
// rendered through its "base" template.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

//go:embed templates
var files embed.FS

// Page template names.
const (
	PostList     = "blog/post/list.html"
	PostDetail   = "blog/post/detail.html"
	PostShare    = "blog/post/share.html"
	PostComment  = "blog/post/comment.html"
	NotFound     = "errors/404.html"
	baseTemplate = "base.html"
	partials     = "partials/*.html"
)

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page template.
func New() (*Renderer, error) {
	return NewFromFS(files)
}

// NewFromFS parses templates from fsys, which must hold a templates/
// directory laid out like the embedded one.
func NewFromFS(fsys fs.FS) (*Renderer, error) {
	root, err := fs.Sub(fsys, "templates")
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, name := range []string{PostList, PostDetail, PostShare, PostComment, NotFound} {
		tmpl, err := template.New(baseTemplate).Funcs(Funcs()).ParseFS(root, baseTemplate, partials, name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// Render writes page name with data to w.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPage renders into a buffer first so a failing template never
// leaves a half written response.
func (r *Renderer) RenderPage(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"date":          formatDate,
		"truncatewords": truncateWords,
		"linebreaks":    linebreaks,
		"pluralize":     pluralize,
		"inc":           func(i int) int { return i + 1 },
	}
}

func formatDate(t time.Time) string {
	return t.UTC().Format("Jan. 2, 2006, 15:04")
}

func truncateWords(n int, s string) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}

// linebreaks escapes s and wraps blank-line separated paragraphs in <p>,
// turning single newlines into <br>.
func linebreaks(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var b strings.Builder
	for _, para := range strings.Split(s, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, line := range lines {
			lines[i] = template.HTMLEscapeString(line)
		}
		b.WriteString("<p>" + strings.Join(lines, "<br>") + "</p>\n")
	}
	return template.HTML(b.String())
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
