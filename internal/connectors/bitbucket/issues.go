package bitbucket

import (
	"context"
	"fmt"
)

// RepositoryDescriptor describes one repository owned by the configured user.
type RepositoryDescriptor struct {
	Slug      string `json:"slug"`
	HasIssues bool   `json:"has_issues"`
}

// Issue is the raw Bitbucket issue as returned by the API. The remote is
// loosely typed; optional fields are pointers so absence is distinguishable
// from the zero value. Required-field checks happen at mapping time.
type Issue struct {
	LocalID     *int         `json:"local_id"`
	Title       *string      `json:"title"`
	Status      *string      `json:"status"`
	Priority    *string      `json:"priority"`
	ResourceURI string       `json:"resource_uri"`
	Responsible *Responsible `json:"responsible"`
}

// Responsible identifies the user an issue is assigned to.
type Responsible struct {
	Username string `json:"username"`
}

// Owner returns the responsible username, empty when unassigned.
func (i *Issue) Owner() string {
	if i.Responsible == nil {
		return ""
	}
	return i.Responsible.Username
}

// Comment is one entry of an issue's comment thread, in remote return
// order (assumed chronological ascending).
type Comment struct {
	AuthorUsername string
	Body           string
}

// userProfile is the wire envelope of GET /users/{username}/.
type userProfile struct {
	Repositories []RepositoryDescriptor `json:"repositories"`
}

// issueListing is the wire envelope of the issue listing endpoint.
type issueListing struct {
	Issues []Issue `json:"issues"`
}

// wireComment is the wire shape of one comment.
type wireComment struct {
	AuthorInfo struct {
		Username string `json:"username"`
	} `json:"author_info"`
	Content string `json:"content"`
}

// ListRepositories fetches the user profile and returns the repositories
// whose issue tracker is enabled.
func ListRepositories(ctx context.Context, client *Client, username string) ([]RepositoryDescriptor, error) {
	var profile userProfile
	if err := client.Get(ctx, "/users/"+username+"/", &profile); err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}

	repos := make([]RepositoryDescriptor, 0, len(profile.Repositories))
	for _, repo := range profile.Repositories {
		if repo.HasIssues {
			repos = append(repos, repo)
		}
	}
	return repos, nil
}

// ListIssues fetches the full issue listing for a repository tag
// ("owner/slug"). The 1.0 API returns the listing unpaginated.
func ListIssues(ctx context.Context, client *Client, tag string) ([]Issue, error) {
	var listing issueListing
	if err := client.Get(ctx, fmt.Sprintf("/repositories/%s/issues/", tag), &listing); err != nil {
		return nil, fmt.Errorf("list issues %s: %w", tag, err)
	}
	return listing.Issues, nil
}

// ListComments fetches the comment thread for one issue.
func ListComments(ctx context.Context, client *Client, tag string, localID int) ([]Comment, error) {
	var wire []wireComment
	path := fmt.Sprintf("/repositories/%s/issues/%d/comments", tag, localID)
	if err := client.Get(ctx, path, &wire); err != nil {
		return nil, fmt.Errorf("list comments %s#%d: %w", tag, localID, err)
	}

	comments := make([]Comment, len(wire))
	for i, c := range wire {
		comments[i] = Comment{
			AuthorUsername: c.AuthorInfo.Username,
			Body:           c.Content,
		}
	}
	return comments, nil
}
