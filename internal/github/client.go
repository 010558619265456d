// Package github is DevFinder's Remote Data Client: the only code that talks
// to GitHub.
//
// It issues two read-only GraphQL queries (embedded from queries/*.graphql)
// and normalises the answers into internal/model types. Failures are
// classified once, here:
//
//   - a GraphQL error of type NOT_FOUND on the profile query is not an error
//     at all; FetchProfile reports found=false
//   - every other failure (GraphQL error, HTTP status, network, timeout)
//     becomes an *apperror.RemoteError carrying the upstream message
//
// Nothing is retried and nothing is cached.
package github

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gh "github.com/cli/go-gh"
	"github.com/cli/go-gh/pkg/api"
	"golang.org/x/oauth2"

	"github.com/sakif/devfinder/internal/apperror"
)

//go:embed queries/user.graphql
var userQuery string

//go:embed queries/search-users.graphql
var searchUsersQuery string

// DefaultHost is the public GitHub host.
const DefaultHost = "github.com"

// Options configures a Client.
type Options struct {
	// Token is the GitHub API token. Required.
	Token string
	// Host is github.com or a GitHub Enterprise Server hostname.
	Host string
	// Timeout bounds a single request. Zero means no client-side timeout.
	Timeout time.Duration
	// Transport is the base RoundTripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Client runs DevFinder's GraphQL queries against GitHub.
type Client struct {
	gql    api.GQLClient
	logger *slog.Logger
}

// New builds a Client. A missing token is a configuration error: the client
// is useless without one, so it must be caught at startup.
func New(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, &apperror.ConfigError{Field: "GITHUB_API_TOKEN", Message: "must be set"}
	}
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	// The oauth2 transport attaches "Authorization: token <token>" to every
	// request. go-gh sends the same header from AuthToken; setting Host,
	// AuthToken and Transport together also stops go-gh from reading the
	// local gh CLI configuration.
	transport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: opts.Token,
			TokenType:   "token",
		}),
		Base: base,
	}

	gql, err := gh.GQLClient(&api.ClientOptions{
		AuthToken: opts.Token,
		Host:      opts.Host,
		Timeout:   opts.Timeout,
		Transport: transport,
		Headers: map[string]string{
			"User-Agent": "devfinder",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("github: creating GraphQL client: %w", err)
	}

	return &Client{gql: gql, logger: opts.Logger}, nil
}

// do runs one query and logs how long it took.
func (c *Client) do(ctx context.Context, name, query string, vars map[string]any, resp any) error {
	start := time.Now()
	err := c.gql.DoWithContext(ctx, query, vars, resp)

	attrs := []any{
		slog.String("query", name),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	c.logger.Debug("github graphql query", attrs...)

	return err
}

// graphQLErrors returns the error items of a GraphQL error response, if err
// is one. go-gh has returned GQLError both by value and by pointer, so both
// are accepted.
func graphQLErrors(err error) ([]api.GQLErrorItem, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch gqlErr := any(e).(type) {
		case api.GQLError:
			return gqlErr.Errors, true
		case *api.GQLError:
			if gqlErr != nil {
				return gqlErr.Errors, true
			}
		}
	}
	return nil, false
}

// isNotFound reports whether any GraphQL error item is of type NOT_FOUND.
func isNotFound(items []api.GQLErrorItem) bool {
	for _, item := range items {
		if item.Type == "NOT_FOUND" {
			return true
		}
	}
	return false
}

// remoteError converts any failed query into an *apperror.RemoteError.
// GraphQL errors keep the first upstream message; transport errors keep
// their own text.
func remoteError(err error) *apperror.RemoteError {
	if items, ok := graphQLErrors(err); ok && len(items) > 0 {
		return apperror.RemoteFailure(items[0].Message, err)
	}
	return apperror.RemoteFailure("", err)
}
