package combobox

import "time"

// SpinDelay decides when a loading indicator is visible.
//
// The indicator appears only once loading has lasted Delay, and once it has
// appeared it stays for at least MinDuration, even if loading finishes first.
// Short requests therefore never flash a spinner.
type SpinDelay struct {
	delay       time.Duration
	minDuration time.Duration

	loading bool
	since   time.Time // start of the current loading period
	shownAt time.Time // when the indicator appeared; zero if it has not
}

// NewSpinDelay returns an idle indicator with the given delay and minimum duration.
func NewSpinDelay(delay, minDuration time.Duration) *SpinDelay {
	return &SpinDelay{delay: delay, minDuration: minDuration}
}

// Start marks the beginning of a loading period. Calling it while already
// loading is a no-op.
func (s *SpinDelay) Start(now time.Time) {
	if s.loading {
		return
	}
	if !s.Visible(now) {
		s.shownAt = time.Time{}
	}
	s.loading = true
	s.since = now
}

// Stop marks the end of a loading period.
func (s *SpinDelay) Stop(now time.Time) {
	if !s.loading {
		return
	}
	s.loading = false
	if s.shownAt.IsZero() && now.Sub(s.since) >= s.delay {
		s.shownAt = s.since.Add(s.delay)
	}
}

// Visible reports whether the indicator is shown at now.
func (s *SpinDelay) Visible(now time.Time) bool {
	if s.loading {
		return !s.shownAt.IsZero() || now.Sub(s.since) >= s.delay
	}
	return !s.shownAt.IsZero() && now.Before(s.shownAt.Add(s.minDuration))
}
