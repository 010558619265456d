package handler_test

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/devfinder/internal/apperror"
	"github.com/sakif/devfinder/internal/handler"
	"github.com/sakif/devfinder/internal/model"
	"github.com/sakif/devfinder/internal/service"
	"github.com/sakif/devfinder/web"
)

// MockGitHub stands in for github.Client behind the real services, so these
// tests exercise the whole flow below the router without the network.
type MockGitHub struct {
	Profiles   map[string]*model.Profile
	Candidates []model.Candidate
	Err        error

	Fetched  []string
	Searched []string
}

func (m *MockGitHub) FetchProfile(_ context.Context, login string) (*model.Profile, bool, error) {
	m.Fetched = append(m.Fetched, login)
	if m.Err != nil {
		return nil, false, m.Err
	}
	p, ok := m.Profiles[login]
	return p, ok, nil
}

func (m *MockGitHub) SearchCandidates(_ context.Context, query string) ([]model.Candidate, error) {
	m.Searched = append(m.Searched, query)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Candidates, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func newPages(t *testing.T) *handler.Pages {
	t.Helper()
	pages, err := handler.NewPages(web.Templates, testLogger())
	require.NoError(t, err)
	return pages
}

func newProfileHandler(t *testing.T, gh *MockGitHub) *handler.ProfileHandler {
	t.Helper()
	svc := service.NewProfileService(gh, "", testLogger())
	return handler.NewProfileHandler(svc, newPages(t), testLogger())
}

func newSearchHandler(t *testing.T, gh *MockGitHub) *handler.UserSearchHandler {
	t.Helper()
	svc := service.NewSearchService(gh, testLogger())
	return handler.NewUserSearchHandler(svc, newPages(t), testLogger())
}

func kent() *model.Profile {
	return &model.Profile{
		Login:           "kentcdodds",
		Name:            "Kent C. Dodds",
		AvatarURL:       "https://avatars.githubusercontent.com/u/1500684",
		URL:             "https://github.com/kentcdodds",
		Location:        "Utah",
		TwitterUsername: "kentcdodds",
		CreatedAt:       time.Date(2012, time.March, 4, 22, 32, 1, 0, time.UTC),
		RepositoryCount: 1234,
		FollowerCount:   34567,
		FollowingCount:  42,
		TopRepositories: []model.Repository{
			{
				Name:            "cross-env",
				URL:             "https://github.com/kentcdodds/cross-env",
				StargazerCount:  1,
				ForkCount:       2048,
				PrimaryLanguage: &model.Language{Name: "JavaScript", Color: "#f1e05a"},
				License:         "MIT License",
				Topics:          []string{"env", "cli"},
				UpdatedAt:       time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			},
			{
				Name:      "odd-license",
				URL:       "https://github.com/kentcdodds/odd-license",
				License:   "Other",
				UpdatedAt: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

// =========================================================================
// PROFILE PAGE TESTS
// =========================================================================

func TestProfileHandler_HandleProfile(t *testing.T) {
	t.Run("empty query redirects to default login", func(t *testing.T) {
		for _, target := range []string{"/", "/?q=", "/?q=%20%20"} {
			gh := &MockGitHub{}
			h := newProfileHandler(t, gh)

			rr := httptest.NewRecorder()
			h.HandleProfile(rr, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusFound, rr.Code, target)
			assert.Equal(t, "/?q=kentcdodds", rr.Header().Get("Location"), target)
			assert.Empty(t, gh.Fetched, "a redirect must not call GitHub")
		}
	})

	t.Run("redirect keeps other parameters and happens once", func(t *testing.T) {
		gh := &MockGitHub{Profiles: map[string]*model.Profile{"kentcdodds": kent()}}
		h := newProfileHandler(t, gh)

		rr := httptest.NewRecorder()
		h.HandleProfile(rr, httptest.NewRequest(http.MethodGet, "/?tab=profile", nil))
		require.Equal(t, http.StatusFound, rr.Code)

		location := rr.Header().Get("Location")
		assert.Equal(t, "/?q=kentcdodds&tab=profile", location)

		rr = httptest.NewRecorder()
		h.HandleProfile(rr, httptest.NewRequest(http.MethodGet, location, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"kentcdodds"}, gh.Fetched)
	})

	t.Run("found user renders the profile", func(t *testing.T) {
		gh := &MockGitHub{Profiles: map[string]*model.Profile{"kentcdodds": kent()}}
		h := newProfileHandler(t, gh)

		rr := httptest.NewRecorder()
		h.HandleProfile(rr, httptest.NewRequest(http.MethodGet, "/?q=%20kentcdodds%20", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

		body := rr.Body.String()
		assert.Contains(t, body, "<title>Kent C. Dodds | DevFinder</title>")
		assert.Contains(t, body, "4 Mar 2012")
		assert.Contains(t, body, "1,234")
		assert.Contains(t, body, "34,567")
		assert.Contains(t, body, "1 star")
		assert.Contains(t, body, "2,048 forks")
		assert.Contains(t, body, "MIT License")
		assert.NotContains(t, body, ">Other<", "the Other license is hidden")
		assert.Contains(t, body, "https://github.com/kentcdodds?tab=repositories")
		assert.Contains(t, body, "https://twitter.com/kentcdodds")
		assert.Contains(t, body, "N/A", "missing profile fields render N/A")
		assert.Equal(t, []string{"kentcdodds"}, gh.Fetched)
	})

	t.Run("title falls back to @login", func(t *testing.T) {
		p := kent()
		p.Name = ""
		h := newProfileHandler(t, &MockGitHub{Profiles: map[string]*model.Profile{"kentcdodds": p}})

		rr := httptest.NewRecorder()
		h.HandleProfile(rr, httptest.NewRequest(http.MethodGet, "/?q=kentcdodds", nil))

		assert.Contains(t, rr.Body.String(), "<title>@kentcdodds | DevFinder</title>")
	})

	t.Run("user without repositories shows the empty state", func(t *testing.T) {
		p := kent()
		p.TopRepositories = nil
		h := newProfileHandler(t, &MockGitHub{Profiles: map[string]*model.Profile{"kentcdodds": p}})

		rr := httptest.NewRecorder()
		h.HandleProfile(rr, httptest.NewRequest(http.MethodGet, "/?q=kentcdodds", nil))

		body := rr.Body.String()
		assert.Contains(t, body, "No repositories found")
		assert.Contains(t, body, "kentcdodds doesn't have any public repositories yet.")
	})

	t.Run("unknown user is a 404 with the message", func(t *testing.T) {
		h := newProfileHandler(t, &MockGitHub{})

		rr := httptest.NewRecorder()
		h.HandleProfile(rr, httptest.NewRequest(http.MethodGet, "/?q=doesnotexist12345", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)

		body := rr.Body.String()
		want := `No user with the login "doesnotexist12345" exists.`
		assert.Contains(t, body, template.HTMLEscapeString(want))
		assert.Contains(t, body, "<title>Not Found | DevFinder</title>")
	})

	t.Run("remote failure renders the error boundary", func(t *testing.T) {
		gh := &MockGitHub{Err: apperror.RemoteFailure("API rate limit exceeded", nil)}
		h := newProfileHandler(t, gh)

		rr := httptest.NewRecorder()
		h.HandleProfile(rr, httptest.NewRequest(http.MethodGet, "/?q=octocat", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		body := rr.Body.String()
		assert.Contains(t, body, "Oops! An error occurred")
		assert.Contains(t, body, "API rate limit exceeded")
		assert.Contains(t, body, "<title>Oops! | DevFinder</title>")
		assert.Contains(t, body, "Reference")
	})

	t.Run("remote failure without a message", func(t *testing.T) {
		h := newProfileHandler(t, &MockGitHub{Err: &apperror.RemoteError{}})

		rr := httptest.NewRecorder()
		h.HandleProfile(rr, httptest.NewRequest(http.MethodGet, "/?q=octocat", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), apperror.FallbackMessage)
	})
}

// =========================================================================
// USER SEARCH RESOURCE TESTS
// =========================================================================

func TestUserSearchHandler_HandleSearch(t *testing.T) {
	users := []model.Candidate{
		{Login: "kentcdodds", Name: "Kent C. Dodds", AvatarURL: "https://avatars/kent"},
		{Login: "kent"},
	}

	t.Run("missing query is a validation error", func(t *testing.T) {
		gh := &MockGitHub{}
		h := newSearchHandler(t, gh)

		req := httptest.NewRequest(http.MethodGet, "/resources/users", nil)
		req.Header.Set("Accept", "application/json")
		rr := httptest.NewRecorder()
		h.HandleSearch(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var res handler.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "validation_error", res.Error)
		assert.Equal(t, "query is required", res.Message)
		assert.Empty(t, gh.Searched)
	})

	t.Run("invalid seq is a validation error", func(t *testing.T) {
		h := newSearchHandler(t, &MockGitHub{})

		rr := httptest.NewRecorder()
		h.HandleSearch(rr, httptest.NewRequest(http.MethodGet, "/resources/users?query=a&seq=x", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("json answer echoes seq", func(t *testing.T) {
		gh := &MockGitHub{Candidates: users}
		h := newSearchHandler(t, gh)

		req := httptest.NewRequest(http.MethodGet, "/resources/users?query=kent&seq=7", nil)
		req.Header.Set("Accept", "application/json")
		rr := httptest.NewRecorder()
		h.HandleSearch(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "7", rr.Header().Get(handler.SeqHeader))

		var res handler.SearchResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, uint64(7), res.Seq)
		assert.Equal(t, "kent", res.Query)
		assert.Equal(t, users, res.Users)
		assert.Equal(t, []string{"kent"}, gh.Searched)
	})

	t.Run("empty query is valid and returns an empty list", func(t *testing.T) {
		gh := &MockGitHub{}
		h := newSearchHandler(t, gh)

		req := httptest.NewRequest(http.MethodGet, "/resources/users?query=", nil)
		req.Header.Set("Accept", "application/json")
		rr := httptest.NewRecorder()
		h.HandleSearch(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"query":"","users":[]}`, rr.Body.String())
		assert.Equal(t, []string{""}, gh.Searched)
	})

	t.Run("html fragment lists candidates", func(t *testing.T) {
		h := newSearchHandler(t, &MockGitHub{Candidates: users})

		rr := httptest.NewRecorder()
		h.HandleSearch(rr, httptest.NewRequest(http.MethodGet, "/resources/users?query=kent&seq=3", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "3", rr.Header().Get(handler.SeqHeader))

		body := rr.Body.String()
		assert.Contains(t, body, `href="/?q=kentcdodds"`)
		assert.Contains(t, body, "Kent C. Dodds")
		assert.Contains(t, body, "@kent")
		assert.NotContains(t, body, "No people found.")
	})

	t.Run("html fragment for no results", func(t *testing.T) {
		h := newSearchHandler(t, &MockGitHub{})

		rr := httptest.NewRecorder()
		h.HandleSearch(rr, httptest.NewRequest(http.MethodGet, "/resources/users?query=zzzz", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "No people found.")
	})

	t.Run("html fragment for empty query is empty", func(t *testing.T) {
		h := newSearchHandler(t, &MockGitHub{})

		rr := httptest.NewRecorder()
		h.HandleSearch(rr, httptest.NewRequest(http.MethodGet, "/resources/users?query=", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("remote failure is a bad gateway", func(t *testing.T) {
		h := newSearchHandler(t, &MockGitHub{Err: apperror.RemoteFailure("Bad credentials", nil)})

		req := httptest.NewRequest(http.MethodGet, "/resources/users?query=kent", nil)
		req.Header.Set("Accept", "application/json")
		rr := httptest.NewRecorder()
		h.HandleSearch(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)

		var res handler.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "remote_error", res.Error)
		assert.Equal(t, "Bad credentials", res.Message)
	})

	t.Run("html remote failure renders the error fragment", func(t *testing.T) {
		h := newSearchHandler(t, &MockGitHub{Err: apperror.RemoteFailure("API rate limit exceeded", nil)})

		rr := httptest.NewRecorder()
		h.HandleSearch(rr, httptest.NewRequest(http.MethodGet, "/resources/users?query=kent&seq=4", nil))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Equal(t, "4", rr.Header().Get(handler.SeqHeader), "the dialog still needs the seq to order the answer")

		body := rr.Body.String()
		assert.Contains(t, body, `class="combobox-error"`)
		assert.Contains(t, body, "API rate limit exceeded")
		assert.NotContains(t, body, "No people found.")
	})

	t.Run("html remote failure without a message falls back", func(t *testing.T) {
		h := newSearchHandler(t, &MockGitHub{Err: apperror.RemoteFailure("", nil)})

		rr := httptest.NewRecorder()
		h.HandleSearch(rr, httptest.NewRequest(http.MethodGet, "/resources/users?query=kent", nil))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, rr.Body.String(), apperror.FallbackMessage)
	})

	t.Run("html validation error renders the error fragment", func(t *testing.T) {
		h := newSearchHandler(t, &MockGitHub{})

		rr := httptest.NewRecorder()
		h.HandleSearch(rr, httptest.NewRequest(http.MethodGet, "/resources/users", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Body.String(), "query is required")
	})
}

// =========================================================================
// MISC
// =========================================================================

func TestPages_HandleNotFound(t *testing.T) {
	pages := newPages(t)

	rr := httptest.NewRecorder()
	pages.HandleNotFound(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "<title>Not Found | DevFinder</title>")
	assert.Contains(t, rr.Body.String(), "/nope")
}

func TestHandleHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	handler.HandleHealth(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
