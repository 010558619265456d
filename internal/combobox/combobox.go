// Package combobox models the user-search combobox: the Ctrl+K dialog that
// searches GitHub accounts as the user types.
//
// The widget itself runs in the browser (web/static/app.js). Only NewView is
// used by the server, to render the candidate fragment. Widget and SpinDelay
// are the executable reference for the browser copy: nothing outside the
// tests drives them, and app.js is kept in step with them by hand.
//
// The rules:
//
//   - every keystroke issues a request tagged with an increasing sequence number
//   - a response is applied only if its sequence is the highest applied so far
//     and it was issued after the last close; stale answers are dropped
//   - the spinner appears after 150ms in flight and then stays for at least 500ms
//   - an empty query shows nothing; a non-empty query with no results shows
//     "No people found."
//   - selecting a candidate closes the dialog, clears the text and navigates
//     to /?q=<login>
package combobox

import (
	"net/url"
	"time"

	"github.com/sakif/devfinder/internal/model"
)

const (
	// OpenShortcut opens the dialog when it is closed ("mod" is Ctrl or Cmd).
	OpenShortcut = "mod+k"
	// FocusShortcut focuses the plain search bar in the page header.
	FocusShortcut = "/"

	// NoResultsText is shown for a non-empty query without candidates.
	NoResultsText = "No people found."

	SpinnerDelay       = 150 * time.Millisecond
	SpinnerMinDuration = 500 * time.Millisecond
)

// ProfileURL is where selecting the candidate with this login navigates to.
func ProfileURL(login string) string {
	return "/?" + url.Values{"q": {login}}.Encode()
}

// Request is one search the widget asks the server for.
type Request struct {
	Seq   uint64
	Query string
}

// View is what the dialog renders.
type View struct {
	Query      string
	Candidates []model.Candidate
	ShowList   bool // render the candidate list
	ShowEmpty  bool // render NoResultsText
	Spinner    bool // loading indicator instead of the search icon
}

// NewView decides what to render for query and its candidates.
func NewView(query string, candidates []model.Candidate) View {
	v := View{Query: query}
	if query == "" {
		return v
	}
	if len(candidates) == 0 {
		v.ShowEmpty = true
		return v
	}
	v.Candidates = candidates
	v.ShowList = true
	return v
}

// Widget is the state of one combobox.
// It is not safe for concurrent use; like the browser widget, it is driven
// by a single event loop.
type Widget struct {
	now func() time.Time

	open       bool
	query      string
	candidates []model.Candidate

	issued  uint64 // sequence of the latest request
	applied uint64 // sequence of the latest response shown
	closed  uint64 // responses up to this sequence belong to a closed session

	spinner *SpinDelay
}

// Option configures a Widget.
type Option func(*Widget)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Widget) { w.now = now }
}

// New returns a closed widget.
func New(opts ...Option) *Widget {
	w := &Widget{
		now:     time.Now,
		spinner: NewSpinDelay(SpinnerDelay, SpinnerMinDuration),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Open handles the open shortcut. It reports false if the widget was already
// open, since the shortcut is disabled then.
func (w *Widget) Open() bool {
	if w.open {
		return false
	}
	w.open = true
	return true
}

// IsOpen reports whether the dialog is showing.
func (w *Widget) IsOpen() bool { return w.open }

// Query is the current input text.
func (w *Widget) Query() string { return w.query }

// Input records a keystroke and returns the request to send for it.
// ok is false when the widget is closed.
func (w *Widget) Input(query string) (req Request, ok bool) {
	if !w.open {
		return Request{}, false
	}
	w.query = query
	w.issued++
	w.spinner.Start(w.now())
	return Request{Seq: w.issued, Query: query}, true
}

// Receive offers the response to request seq. It reports whether the
// response was applied.
func (w *Widget) Receive(seq uint64, candidates []model.Candidate) bool {
	if !w.open || seq <= w.closed || seq <= w.applied || seq > w.issued {
		return false
	}
	w.applied = seq
	w.candidates = candidates
	if seq == w.issued {
		w.spinner.Stop(w.now())
	}
	return true
}

// Select closes the widget and returns the URL to navigate to.
func (w *Widget) Select(c model.Candidate) string {
	w.Close()
	return ProfileURL(c.Login)
}

// Close handles blur, escape and backdrop clicks: the text is cleared and
// anything still in flight is discarded when it arrives.
func (w *Widget) Close() {
	w.open = false
	w.query = ""
	w.candidates = nil
	w.closed = w.issued
	w.applied = w.issued
	w.spinner.Stop(w.now())
}

// View returns what the widget renders right now.
func (w *Widget) View() View {
	v := NewView(w.query, w.candidates)
	v.Spinner = w.open && w.spinner.Visible(w.now())
	return v
}
