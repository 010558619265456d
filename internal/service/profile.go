// Package service contains DevFinder's two query flows.
//
// THE LAYERS:
//
//	Handler (HTTP)      → parses query parameters, renders pages
//	Service (this)      → decides what a query means (redirect, found, absent)
//	github.Client (I/O) → talks GraphQL to GitHub
//
// The services know nothing about HTTP. They take plain strings and return
// domain values or errors, so the handler is the only place where status
// codes and URLs are decided.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/devfinder/internal/apperror"
	"github.com/sakif/devfinder/internal/config"
	"github.com/sakif/devfinder/internal/model"
)

// ProfileFetcher looks up a single account by exact login.
// found=false with a nil error means the login does not exist.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, login string) (profile *model.Profile, found bool, err error)
}

// State is where a profile query ends up.
type State int

const (
	// StateRedirect: no login was given; load the page again for the default login.
	StateRedirect State = iota
	// StateResolved: the login exists and Profile is set.
	StateResolved
	// StateAbsent: GitHub has no such login; Message explains it.
	StateAbsent
)

func (s State) String() string {
	switch s {
	case StateRedirect:
		return "redirect"
	case StateResolved:
		return "resolved"
	case StateAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// Outcome is the result of Resolve.
type Outcome struct {
	State   State
	Login   string         // trimmed login that was looked up, or the default login for StateRedirect
	Profile *model.Profile // set only for StateResolved
	Message string         // set only for StateAbsent
}

// ProfileService implements the profile query flow behind the main page.
type ProfileService struct {
	fetcher      ProfileFetcher
	defaultLogin string
	logger       *slog.Logger
}

// NewProfileService creates a ProfileService. An empty defaultLogin falls back
// to config.DefaultLogin so that a redirect always has somewhere to go.
func NewProfileService(fetcher ProfileFetcher, defaultLogin string, logger *slog.Logger) *ProfileService {
	defaultLogin = strings.TrimSpace(defaultLogin)
	if defaultLogin == "" {
		defaultLogin = config.DefaultLogin
	}
	return &ProfileService{
		fetcher:      fetcher,
		defaultLogin: defaultLogin,
		logger:       logger,
	}
}

// DefaultLogin is the login used for StateRedirect.
func (s *ProfileService) DefaultLogin() string {
	return s.defaultLogin
}

// Resolve runs the flow for the raw value of the q parameter.
//
// A blank q (after trimming) yields StateRedirect. The default login is never
// blank, so following the redirect always reaches GitHub and cannot redirect
// again. Remote errors are returned unchanged.
func (s *ProfileService) Resolve(ctx context.Context, q string) (Outcome, error) {
	login := strings.TrimSpace(q)
	if login == "" {
		return Outcome{State: StateRedirect, Login: s.defaultLogin}, nil
	}

	profile, found, err := s.fetcher.FetchProfile(ctx, login)
	if err != nil {
		s.logger.Error("profile lookup failed",
			slog.String("login", login),
			slog.String("error", err.Error()),
		)
		return Outcome{}, err
	}

	if !found {
		s.logger.Info("profile not found", slog.String("login", login))
		return Outcome{
			State:   StateAbsent,
			Login:   login,
			Message: apperror.UserNotFound(login).Message,
		}, nil
	}

	return Outcome{State: StateResolved, Login: login, Profile: profile}, nil
}
