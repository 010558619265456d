// Package model defines the data structures used throughout the application.
//
// Every value here is request-scoped: it is built from a GitHub response,
// handed to a template, and thrown away. Nothing is persisted.
package model

import "time"

// MaxTopRepositories is how many repositories a Profile carries, most-starred first.
const MaxTopRepositories = 10

// MaxTopics is how many topic names are kept per Repository.
const MaxTopics = 6

// MaxCandidates is how many accounts a single search returns.
const MaxCandidates = 5

// Profile is a GitHub user account as shown on the result page.
//
// Optional fields (Name, Bio, Company, ...) are empty strings when GitHub
// returns null. A Profile never represents "user not found"; callers get an
// explicit found=false instead.
type Profile struct {
	Login           string       `json:"login"`
	Name            string       `json:"name,omitempty"`
	AvatarURL       string       `json:"avatarUrl"`
	Bio             string       `json:"bio,omitempty"`
	Company         string       `json:"company,omitempty"`
	Location        string       `json:"location,omitempty"`
	Email           string       `json:"email,omitempty"`
	WebsiteURL      string       `json:"websiteUrl,omitempty"`
	TwitterUsername string       `json:"twitterUsername,omitempty"`
	URL             string       `json:"url"`
	Pronouns        string       `json:"pronouns,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	RepositoryCount int          `json:"repositoryCount"`
	FollowerCount   int          `json:"followerCount"`
	FollowingCount  int          `json:"followingCount"`
	TopRepositories []Repository `json:"topRepositories"`
}

// DisplayName returns the name, or "@login" when the user has not set one.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return "@" + p.Login
}

// Repository is a summary of one repository owned by a Profile.
type Repository struct {
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	URL             string    `json:"url"`
	StargazerCount  int       `json:"stargazerCount"`
	ForkCount       int       `json:"forkCount"`
	PrimaryLanguage *Language `json:"primaryLanguage,omitempty"`
	License         string    `json:"license,omitempty"`
	Topics          []string  `json:"topics,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Language is a repository's primary language and its GitHub display color.
type Language struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Candidate is the minimal projection of an account used by the search combobox.
type Candidate struct {
	Login     string `json:"login"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl"`
}

// Label is what the combobox shows for a candidate: the name, or "@login".
func (c Candidate) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return "@" + c.Login
}
