package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/sakif/devfinder/internal/apperror"
	"github.com/sakif/devfinder/internal/combobox"
	"github.com/sakif/devfinder/internal/model"
)

// SeqHeader echoes the combobox request sequence number back to the browser.
const SeqHeader = "X-Search-Seq"

// UserSearcher is the part of service.SearchService the resource needs.
type UserSearcher interface {
	Search(ctx context.Context, query string) ([]model.Candidate, error)
}

// UserSearchHandler serves GET /resources/users, the combobox data source.
type UserSearchHandler struct {
	users  UserSearcher
	pages  *Pages
	logger *slog.Logger
}

func NewUserSearchHandler(users UserSearcher, pages *Pages, logger *slog.Logger) *UserSearchHandler {
	return &UserSearchHandler{
		users:  users,
		pages:  pages,
		logger: logger,
	}
}

// SearchResponse is the JSON body of /resources/users.
type SearchResponse struct {
	Seq   uint64            `json:"seq,omitempty"`
	Query string            `json:"query"`
	Users []model.Candidate `json:"users"`
}

// HandleSearch answers one combobox keystroke.
//
// QUERY PARAMETERS:
//
//	query  required; the empty string is valid
//	seq    optional; echoed in the body and the X-Search-Seq header
//
// With "Accept: application/json" the answer is a SearchResponse; otherwise
// it is the rendered candidate list, ready to drop into the dialog. Errors
// follow the same split: JSON clients get an ErrorResponse, the dialog gets
// an error fragment carrying the upstream message.
func (h *UserSearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	if !values.Has("query") {
		h.fail(w, r, apperror.ValidationFailed("query", "query is required"))
		return
	}
	query := values.Get("query")

	var seq uint64
	if raw := values.Get("seq"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.fail(w, r, apperror.ValidationFailed("seq", "seq must be a non-negative integer"))
			return
		}
		seq = n
		w.Header().Set(SeqHeader, raw)
	}

	users, err := h.users.Search(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if users == nil {
		users = []model.Candidate{}
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, SearchResponse{
			Seq:   seq,
			Query: query,
			Users: users,
		})
		return
	}
	h.pages.Candidates(w, combobox.NewView(query, users))
}

// fail answers with err in the format the client asked for.
func (h *UserSearchHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if wantsJSON(r) {
		writeError(w, err)
		return
	}
	status, _, message := classifyError(err)
	h.pages.CandidatesError(w, status, message)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
