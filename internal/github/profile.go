package github

import (
	"context"
	"time"

	"github.com/sakif/devfinder/internal/model"
)

type totalCount struct {
	TotalCount int `json:"totalCount"`
}

// userResponse matches queries/user.graphql. Nullable strings decode to "".
type userResponse struct {
	User *graphQLUser `json:"user"`
}

type graphQLUser struct {
	AvatarURL       string     `json:"avatarUrl"`
	Bio             string     `json:"bio"`
	Company         string     `json:"company"`
	CreatedAt       time.Time  `json:"createdAt"`
	Email           string     `json:"email"`
	Followers       totalCount `json:"followers"`
	Following       totalCount `json:"following"`
	Location        string     `json:"location"`
	Login           string     `json:"login"`
	Name            string     `json:"name"`
	Pronouns        string     `json:"pronouns"`
	Repositories    totalCount `json:"repositories"`
	TopRepositories struct {
		Nodes []graphQLRepository `json:"nodes"`
	} `json:"topRepositories"`
	TwitterUsername string `json:"twitterUsername"`
	URL             string `json:"url"`
	WebsiteURL      string `json:"websiteUrl"`
}

type graphQLRepository struct {
	Description string `json:"description"`
	ForkCount   int    `json:"forkCount"`
	LicenseInfo *struct {
		Name string `json:"name"`
	} `json:"licenseInfo"`
	Name            string `json:"name"`
	PrimaryLanguage *struct {
		Color string `json:"color"`
		Name  string `json:"name"`
	} `json:"primaryLanguage"`
	RepositoryTopics struct {
		Nodes []struct {
			Topic struct {
				Name string `json:"name"`
			} `json:"topic"`
		} `json:"nodes"`
	} `json:"repositoryTopics"`
	StargazerCount int       `json:"stargazerCount"`
	UpdatedAt      time.Time `json:"updatedAt"`
	URL            string    `json:"url"`
}

// FetchProfile looks up the account with exactly this login.
//
// found is false (and err nil) when GitHub reports the login does not exist.
// Any other failure is an *apperror.RemoteError.
func (c *Client) FetchProfile(ctx context.Context, login string) (profile *model.Profile, found bool, err error) {
	var resp userResponse
	err = c.do(ctx, "user", userQuery, map[string]any{"login": login}, &resp)
	if err != nil {
		if items, ok := graphQLErrors(err); ok && isNotFound(items) {
			return nil, false, nil
		}
		return nil, false, remoteError(err)
	}

	if resp.User == nil {
		return nil, false, nil
	}
	return resp.User.toModel(), true, nil
}

func (u *graphQLUser) toModel() *model.Profile {
	p := &model.Profile{
		Login:           u.Login,
		Name:            u.Name,
		AvatarURL:       u.AvatarURL,
		Bio:             u.Bio,
		Company:         u.Company,
		Location:        u.Location,
		Email:           u.Email,
		WebsiteURL:      u.WebsiteURL,
		TwitterUsername: u.TwitterUsername,
		URL:             u.URL,
		Pronouns:        u.Pronouns,
		CreatedAt:       u.CreatedAt,
		RepositoryCount: u.Repositories.TotalCount,
		FollowerCount:   u.Followers.TotalCount,
		FollowingCount:  u.Following.TotalCount,
	}

	nodes := u.TopRepositories.Nodes
	if len(nodes) > model.MaxTopRepositories {
		nodes = nodes[:model.MaxTopRepositories]
	}
	p.TopRepositories = make([]model.Repository, 0, len(nodes))
	for _, n := range nodes {
		p.TopRepositories = append(p.TopRepositories, n.toModel())
	}
	return p
}

func (r graphQLRepository) toModel() model.Repository {
	repo := model.Repository{
		Name:           r.Name,
		Description:    r.Description,
		URL:            r.URL,
		StargazerCount: r.StargazerCount,
		ForkCount:      r.ForkCount,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.PrimaryLanguage != nil {
		repo.PrimaryLanguage = &model.Language{
			Name:  r.PrimaryLanguage.Name,
			Color: r.PrimaryLanguage.Color,
		}
	}
	if r.LicenseInfo != nil {
		repo.License = r.LicenseInfo.Name
	}

	for _, t := range r.RepositoryTopics.Nodes {
		if len(repo.Topics) == model.MaxTopics {
			break
		}
		repo.Topics = append(repo.Topics, t.Topic.Name)
	}
	return repo
}
