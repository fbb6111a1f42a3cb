// Package github provides a ContentStore adapter backed by the GitHub
// contents API. Every successful write produces a commit on the target
// repository, which doubles as the audit log of the store.
package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/eflav/aio-index/internal/core/domain"
	"github.com/eflav/aio-index/internal/core/ports/driven"
	"github.com/eflav/aio-index/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ContentStore = (*Store)(nil)

// DefaultTimeout is the HTTP request timeout for store calls.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the GitHub content store.
type Config struct {
	// Token is a PAT or OAuth access token with contents write scope.
	Token string

	// Owner and Repo address the content repository.
	Owner string
	Repo  string
}

// Store reads and writes JSON documents as files in a GitHub repository.
// The document sha returned by the contents API serves as the opaque
// revision marker for compare-and-swap writes.
type Store struct {
	gh          *gh.Client
	owner       string
	repo        string
	rateLimiter *RateLimiter
}

// New creates a store authenticated with a static access token.
func New(ctx context.Context, cfg Config) *Store {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Store{
		gh:          gh.NewClient(tc),
		owner:       cfg.Owner,
		repo:        cfg.Repo,
		rateLimiter: NewRateLimiter(),
	}
}

// newWithClient wires a prepared go-github client. Used by tests to
// point the store at a fake API server.
func newWithClient(client *gh.Client, owner, repo string) *Store {
	return &Store{
		gh:          client,
		owner:       owner,
		repo:        repo,
		rateLimiter: NewRateLimiter(),
	}
}

// Read fetches current content and revision marker for a path.
// A missing document returns domain.ErrNotFound.
func (s *Store) Read(ctx context.Context, path string) ([]byte, string, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	opts := &gh.RepositoryContentGetOptions{}
	content, _, resp, err := s.gh.Repositories.GetContents(ctx, s.owner, s.repo, path, opts)
	s.updateRateLimit(resp)
	if err != nil {
		return nil, "", wrapError(path, err)
	}
	if content == nil {
		return nil, "", &domain.StoreError{Path: path, Message: "path is a directory, not a file"}
	}

	decoded, err := content.GetContent()
	if err != nil {
		return nil, "", &domain.StoreError{Path: path, Message: "decode content: " + err.Error()}
	}
	return []byte(decoded), content.GetSHA(), nil
}

// Write stores content at the path, committing "Add <path>" on create
// and "Update <path>" on overwrite. A non-empty revision performs a
// compare-and-swap; a stale revision yields domain.ErrRevisionConflict.
func (s *Store) Write(ctx context.Context, path string, content []byte, revision string) error {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	opts := &gh.RepositoryContentFileOptions{
		Content: content,
	}

	var resp *gh.Response
	var err error
	if revision != "" {
		opts.Message = gh.Ptr("Update " + path)
		opts.SHA = gh.Ptr(revision)
		_, resp, err = s.gh.Repositories.UpdateFile(ctx, s.owner, s.repo, path, opts)
	} else {
		opts.Message = gh.Ptr("Add " + path)
		_, resp, err = s.gh.Repositories.CreateFile(ctx, s.owner, s.repo, path, opts)
	}
	s.updateRateLimit(resp)
	if err != nil {
		return wrapError(path, err)
	}

	logger.Debug("wrote %s to %s/%s", path, s.owner, s.repo)
	return nil
}

// updateRateLimit feeds response headers into the rate limiter.
func (s *Store) updateRateLimit(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	s.rateLimiter.UpdateFromResponse(resp.Response)
}
