// Package gateway provides a gateway to the GitHub GraphQL API,
// abstracting away the underlying client and pagination.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

const (
	// DefaultEndpoint is the public GitHub GraphQL endpoint.
	DefaultEndpoint = "https://api.github.com/graphql"
	// DefaultQuery selects the most starred repositories.
	DefaultQuery = "stars:>1000 sort:stars-desc"
	// DefaultTimeout bounds every request made by the gateway.
	DefaultTimeout = 30 * time.Second
	// MaxPageSize is the largest page requested from the search endpoint.
	MaxPageSize = 20
)

// Searcher defines the behavior of a gateway for searching repositories on GitHub.
type Searcher interface {
	// SearchRepositories collects up to target repositories matching query.
	// When pagination stops early the records gathered so far are returned
	// along with the error that stopped it; the records are always usable.
	SearchRepositories(ctx context.Context, query string, target int) ([]domain.RawRecord, error)
}

// Options configures a GitHubGateway.
type Options struct {
	Token    string
	Endpoint string
	Timeout  time.Duration
}

// GitHubGateway is the concrete implementation of the Searcher interface.
type GitHubGateway struct {
	graphqlClient *githubv4.Client
	pageSize      int
	logger        *log.Logger
}

// repositoryNode mirrors the fields requested for every repository.
// Timestamps are decoded as plain strings and parsed later, so a malformed
// value surfaces as an input error instead of a failed page.
type repositoryNode struct {
	Name  string
	Owner struct {
		Login string
	}
	StargazerCount  int
	CreatedAt       string
	UpdatedAt       string
	PrimaryLanguage struct {
		Name string
	}
	PullRequests struct {
		TotalCount int
	} `graphql:"pullRequests(states: MERGED)"`
	Releases struct {
		TotalCount int
	}
	Issues struct {
		TotalCount int
	}
	ClosedIssues struct {
		TotalCount int
	} `graphql:"closedIssues: issues(states: CLOSED)"`
	URL         string `graphql:"url"`
	Description *string
}

// repositorySearchQuery is the paginated repository search.
type repositorySearchQuery struct {
	Search struct {
		PageInfo struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Nodes []struct {
			Typename   string         `graphql:"__typename"`
			Repository repositoryNode `graphql:"... on Repository"`
		}
	} `graphql:"search(query: $query, type: REPOSITORY, first: $first, after: $cursor)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token yields an unauthenticated client; the API will reject its requests.
func NewGitHubGateway(opts Options, logger *log.Logger) (Searcher, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if u, err := url.Parse(endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid GraphQL endpoint %q", endpoint)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if opts.Token != "" {
		httpClient.Transport = &oauth2.Transport{
			Base:   http.DefaultTransport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
		}
	}

	client := githubv4.NewClient(httpClient)
	if endpoint != DefaultEndpoint {
		client = githubv4.NewEnterpriseClient(endpoint, httpClient)
	}
	return &GitHubGateway{
		graphqlClient: client,
		pageSize:      MaxPageSize,
		logger:        logger,
	}, nil
}

// SearchRepositories pages through the search results until target records
// are collected or the endpoint has no more pages.
func (g *GitHubGateway) SearchRepositories(ctx context.Context, query string, target int) ([]domain.RawRecord, error) {
	records := []domain.RawRecord{}
	if target <= 0 {
		return records, nil
	}
	g.logger.Info("Collecting repositories", "query", query, "target", target)

	variables := map[string]interface{}{
		"query":  githubv4.String(query),
		"first":  githubv4.Int(0),
		"cursor": (*githubv4.String)(nil),
	}
	for len(records) < target {
		variables["first"] = githubv4.Int(min(g.pageSize, target-len(records)))

		var q repositorySearchQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return records, fmt.Errorf("search stopped after %d repositories: %w", len(records), err)
		}

		for _, node := range q.Search.Nodes {
			if len(records) == target {
				break // The server may ignore "first"; never keep more than asked.
			}
			if node.Typename != "" && node.Typename != "Repository" {
				continue
			}
			records = append(records, node.Repository.raw())
		}
		g.logger.Debug("Fetched page", "collected", len(records), "target", target)

		if !q.Search.PageInfo.HasNextPage || len(q.Search.Nodes) == 0 {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Search.PageInfo.EndCursor)
	}
	g.logger.Info("Completed collecting repositories", "collected", len(records))
	return records, nil
}

func (n repositoryNode) raw() domain.RawRecord {
	r := domain.RawRecord{
		Name:               n.Name,
		OwnerLogin:         n.Owner.Login,
		Stars:              n.StargazerCount,
		CreatedAt:          n.CreatedAt,
		UpdatedAt:          n.UpdatedAt,
		MergedPullRequests: n.PullRequests.TotalCount,
		Releases:           n.Releases.TotalCount,
		TotalIssues:        n.Issues.TotalCount,
		ClosedIssues:       n.ClosedIssues.TotalCount,
		URL:                n.URL,
		Description:        n.Description,
	}
	if n.PrimaryLanguage.Name != "" {
		lang := n.PrimaryLanguage.Name
		r.PrimaryLanguage = &lang
	}
	return r
}
