package github

import (
	"context"

	"github.com/sakif/devfinder/internal/model"
)

// searchResponse matches queries/search-users.graphql.
// Login is a pointer so that nodes without one (organizations, or malformed
// data) can be told apart from a login that is the empty string.
type searchResponse struct {
	Search struct {
		Nodes []struct {
			AvatarURL string  `json:"avatarUrl"`
			Login     *string `json:"login"`
			Name      string  `json:"name"`
		} `json:"nodes"`
	} `json:"search"`
}

// SearchCandidates returns up to five accounts fuzzy-matching query, in
// GitHub's relevance order. Nodes without a login are dropped.
func (c *Client) SearchCandidates(ctx context.Context, query string) ([]model.Candidate, error) {
	var resp searchResponse
	if err := c.do(ctx, "search", searchUsersQuery, map[string]any{"searchQuery": query}, &resp); err != nil {
		return nil, remoteError(err)
	}

	candidates := make([]model.Candidate, 0, len(resp.Search.Nodes))
	for _, n := range resp.Search.Nodes {
		if n.Login == nil {
			continue
		}
		candidates = append(candidates, model.Candidate{
			Login:     *n.Login,
			Name:      n.Name,
			AvatarURL: n.AvatarURL,
		})
		if len(candidates) == model.MaxCandidates {
			break
		}
	}
	return candidates, nil
}
