// Package handler contains the HTTP handlers for DevFinder.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming request (query parameters, Accept header)
// 2. Call the service layer
// 3. Write the response: a full page, an HTML fragment, or JSON
//
// Handlers hold no business logic. Whether a query redirects, resolves or
// names a missing user is decided by internal/service; the handler only maps
// that decision onto status codes and templates.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"

	"github.com/sakif/devfinder/internal/apperror"
	"github.com/sakif/devfinder/internal/combobox"
	"github.com/sakif/devfinder/internal/format"
	"github.com/sakif/devfinder/internal/model"
)

// siteName is appended to every page title.
const siteName = "DevFinder"

// Tab names on the profile page. The first is the default.
const (
	TabRepositories = "repositories"
	TabProfile      = "profile"
)

// Pages renders the HTML side of the site.
// Templates are parsed once at startup and shared by every request.
//
// TEMPLATE COMPOSITION:
// base.html defines the layout with a {{template "content" .}} placeholder.
// Each page file fills it with {{define "content"}}. Every page therefore
// gets its own template set: base.html parsed together with that one page.
type Pages struct {
	profileTmpl    *template.Template
	errorTmpl      *template.Template
	candidatesTmpl *template.Template
	logger         *slog.Logger
}

// NewPages parses the templates under templates/ in fsys (see web.Templates).
func NewPages(fsys fs.FS, logger *slog.Logger) (*Pages, error) {
	parse := func(files ...string) (*template.Template, error) {
		patterns := make([]string, len(files))
		for i, f := range files {
			patterns[i] = "templates/" + f
		}
		return template.New("").Funcs(templateFuncs()).ParseFS(fsys, patterns...)
	}

	profileTmpl, err := parse("base.html", "profile.html")
	if err != nil {
		return nil, fmt.Errorf("parsing profile page: %w", err)
	}
	errorTmpl, err := parse("base.html", "error.html")
	if err != nil {
		return nil, fmt.Errorf("parsing error page: %w", err)
	}
	candidatesTmpl, err := parse("candidates.html")
	if err != nil {
		return nil, fmt.Errorf("parsing candidates fragment: %w", err)
	}

	return &Pages{
		profileTmpl:    profileTmpl,
		errorTmpl:      errorTmpl,
		candidatesTmpl: candidatesTmpl,
		logger:         logger,
	}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"date":       format.Date,
		"iso":        format.ISO,
		"decimal":    format.Decimal,
		"count":      format.Count,
		"profileURL": combobox.ProfileURL,
		"tabURL":     tabURL,
		"noResults":  func() string { return combobox.NoResultsText },
	}
}

// tabURL links to one tab of a profile page.
func tabURL(login, tab string) string {
	return "/?" + url.Values{"q": {login}, "tab": {tab}}.Encode()
}

func pageTitle(prefix string) string {
	return prefix + " | " + siteName
}

// profilePage is the data for profile.html.
type profilePage struct {
	Title   string
	Query   string // value of the header search bar
	Profile *model.Profile
	Tab     string
}

// errorPage is the data for error.html, the error boundary.
type errorPage struct {
	Title     string
	Query     string
	Status    int
	Message   string
	Reference string // set for server errors; also written to the log
}

// Profile renders the result page for a found user.
func (p *Pages) Profile(w http.ResponseWriter, r *http.Request, profile *model.Profile) {
	tab := r.URL.Query().Get("tab")
	if tab != TabProfile {
		tab = TabRepositories
	}

	p.render(w, http.StatusOK, p.profileTmpl, "base", profilePage{
		Title:   pageTitle(profile.DisplayName()),
		Query:   r.URL.Query().Get("q"),
		Profile: profile,
		Tab:     tab,
	})
}

// Error renders the error boundary with message and status.
// A 404 is titled "Not Found"; every other status "Oops!".
func (p *Pages) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	p.renderError(w, r, status, message, "")
}

// ServerError renders err through the error boundary as a 500.
// The page shows the error's message and a reference ID; the same ID is
// logged with the full error so the two can be matched.
func (p *Pages) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	ref := xid.New().String()
	p.logger.Error("request failed",
		slog.String("reference", ref),
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	p.renderError(w, r, http.StatusInternalServerError, apperror.MessageOf(err), ref)
}

func (p *Pages) renderError(w http.ResponseWriter, r *http.Request, status int, message, ref string) {
	title := "Oops!"
	if status == http.StatusNotFound {
		title = "Not Found"
	}
	if message == "" {
		message = apperror.FallbackMessage
	}

	p.render(w, status, p.errorTmpl, "base", errorPage{
		Title:     pageTitle(title),
		Query:     r.URL.Query().Get("q"),
		Status:    status,
		Message:   message,
		Reference: ref,
	})
}

// Candidates renders the combobox fragment for view.
func (p *Pages) Candidates(w http.ResponseWriter, view combobox.View) {
	p.render(w, http.StatusOK, p.candidatesTmpl, "candidates", view)
}

// CandidatesError renders the combobox error fragment. The dialog shows it
// in place of the list, so a failed search is never mistaken for an empty one.
func (p *Pages) CandidatesError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = apperror.FallbackMessage
	}
	p.render(w, status, p.candidatesTmpl, "candidates-error", message)
}

// render executes the template into a buffer first, so a template error can
// still become a clean 500 instead of a half-written page.
func (p *Pages) render(w http.ResponseWriter, status int, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		p.logger.Error("failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		p.logger.Debug("writing response body", slog.String("error", err.Error()))
	}
}

// HandleNotFound renders the error boundary for routes that do not exist.
func (p *Pages) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	p.Error(w, r, http.StatusNotFound, fmt.Sprintf("No route matches URL %q", r.URL.Path))
}
