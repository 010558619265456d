package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sakif/devfinder/internal/service"
)

// ProfileResolver is the part of service.ProfileService the page needs.
type ProfileResolver interface {
	Resolve(ctx context.Context, q string) (service.Outcome, error)
}

// ProfileHandler serves the main page: GET /?q=<login>.
type ProfileHandler struct {
	profiles ProfileResolver
	pages    *Pages
	logger   *slog.Logger
}

func NewProfileHandler(profiles ProfileResolver, pages *Pages, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		pages:    pages,
		logger:   logger,
	}
}

// HandleProfile maps the outcome of a profile query onto HTTP:
//
//	StateRedirect → 302 to the same URL with q set to the default login
//	StateAbsent   → 404 error boundary with the "No user ..." message
//	StateResolved → 200 profile page
//	error         → 500 error boundary with the upstream message
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	out, err := h.profiles.Resolve(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.pages.ServerError(w, r, err)
		return
	}

	switch out.State {
	case service.StateRedirect:
		http.Redirect(w, r, withLogin(r.URL, out.Login), http.StatusFound)
	case service.StateAbsent:
		h.pages.Error(w, r, http.StatusNotFound, out.Message)
	default:
		h.pages.Profile(w, r, out.Profile)
	}
}

// withLogin returns u's path and query with q replaced by login.
// Other query parameters survive the redirect.
func withLogin(u *url.URL, login string) string {
	values := u.Query()
	values.Set("q", login)

	path := u.Path
	if path == "" {
		path = "/"
	}
	target := url.URL{Path: path, RawQuery: values.Encode()}
	return target.String()
}
