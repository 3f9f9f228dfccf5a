// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/tomnomnom/linkheader"

	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
	"github.com/MKhiriev/go-repo-pulse/internal/metrics"
	"github.com/MKhiriev/go-repo-pulse/internal/requests"
	"github.com/MKhiriev/go-repo-pulse/models"
)

// GitHub wire constants.
const (
	MediaTypeGitHubJSON = "application/vnd.github+json"
	APIVersion          = "2022-11-28"

	// contributorsPerPage is the largest page GitHub serves.
	contributorsPerPage = 100
	// maxContributorPages stops a pagination loop fed by a broken Link header.
	maxContributorPages = 500
	// repositoryAttempts bounds the repository lookup, which is cheap to redo
	// on the next flow run.
	repositoryAttempts = 2
)

type githubAdapter struct {
	session *requests.Session
	baseURL string

	policy     requests.RetryPolicy
	repoPolicy requests.RetryPolicy

	logger *logger.Logger
}

// AdapterOption customises NewGitHubAdapter.
type AdapterOption func(*adapterOptions)

type adapterOptions struct {
	recorder metrics.Recorder
	session  []requests.SessionOption
}

// WithMetrics reports the request attempts of the adapter to r.
func WithMetrics(r metrics.Recorder) AdapterOption {
	return func(o *adapterOptions) { o.recorder = r }
}

// WithSessionOptions appends options to the session the adapter creates.
func WithSessionOptions(opts ...requests.SessionOption) AdapterOption {
	return func(o *adapterOptions) { o.session = append(o.session, opts...) }
}

// NewGitHubAdapter constructs the REST implementation of [GitHubAdapter].
// It normalises and validates the API URL of cfg, builds the retry policies
// from cfg.HTTP and opens the session every call of the adapter shares.
//
// Returns an error wrapping [ErrInvalidBaseURL] if the API URL cannot be
// parsed, or [requests.ErrInvalidRetryPolicy] if cfg.HTTP does not describe a
// usable retry loop.
func NewGitHubAdapter(cfg *config.StructuredConfig, log *logger.Logger, opts ...AdapterOption) (GitHubAdapter, error) {
	o := adapterOptions{recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL, err := normalizeBaseURL(cfg.GitHubAPIURL())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	policy := RetryPolicyFromConfig(cfg.HTTP, log)
	if err = policy.Validate(); err != nil {
		return nil, err
	}
	repoPolicy := policy
	repoPolicy.MaxAttempts = min(policy.MaxAttempts, repositoryAttempts)

	headers := map[string]string{
		"Accept":               MediaTypeGitHubJSON,
		"X-GitHub-Api-Version": APIVersion,
	}
	if cfg.HTTP.UserAgent != "" {
		headers["User-Agent"] = cfg.HTTP.UserAgent
	}
	if token := strings.TrimSpace(cfg.GitHub.Token); token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	sessionOpts := []requests.SessionOption{
		requests.WithDefaultHeaders(headers),
		requests.WithRateLimit(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst),
		requests.WithSessionLogger(log),
		requests.WithRecorder(o.recorder),
		requests.WithResponseDump(cfg.Development.Enabled && cfg.Development.DumpResponses),
	}
	if cfg.HTTP.Timeout > 0 {
		sessionOpts = append(sessionOpts, requests.WithTimeout(cfg.HTTP.Timeout))
	}
	sessionOpts = append(sessionOpts, o.session...)

	return &githubAdapter{
		session:    requests.CreateSession(sessionOpts...),
		baseURL:    baseURL,
		policy:     policy,
		repoPolicy: repoPolicy,
		logger:     log,
	}, nil
}

// RetryPolicyFromConfig maps the outbound HTTP settings onto a retry policy.
// Zero values keep the defaults of [requests.DefaultRetryPolicy].
func RetryPolicyFromConfig(cfg config.HTTP, log *logger.Logger) requests.RetryPolicy {
	p := requests.NewRetryPolicy(requests.WithRetryLogger(log))
	if cfg.MaxAttempts != 0 {
		p.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.WaitMultiplier != 0 {
		p.WaitMultiplier = cfg.WaitMultiplier
	}
	if cfg.WaitMin != 0 {
		p.WaitMin = cfg.WaitMin
	}
	if cfg.WaitMax != 0 {
		p.WaitMax = cfg.WaitMax
	}
	return p
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (g *githubAdapter) repoURL(owner, name string, segments ...string) string {
	var b strings.Builder
	b.WriteString(g.baseURL)
	b.WriteString("/repos/")
	b.WriteString(url.PathEscape(owner))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(name))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// GetRepository implements [GitHubAdapter]. It issues
// GET /repos/{owner}/{name} with at most two attempts.
func (g *githubAdapter) GetRepository(ctx context.Context, owner, name string) (models.Repository, error) {
	repo, _, err := requests.Fetch[models.Repository](ctx, g.session, http.MethodGet, g.repoURL(owner, name),
		requests.WithRetryPolicy(g.repoPolicy),
	)
	if err != nil {
		return models.Repository{}, mapRequestError("get repository", err)
	}
	return repo, nil
}

// ListContributors implements [GitHubAdapter]. It starts from the
// contributors_url of repo (or builds it from the repository name) and follows
// rel="next" links until the last page.
func (g *githubAdapter) ListContributors(ctx context.Context, repo models.Repository) ([]models.Contributor, error) {
	next := repo.ContributorsURL
	if next == "" {
		next = g.repoURL(repo.Owner.Login, repo.Name, "contributors")
	}

	query := url.Values{"per_page": []string{strconv.Itoa(contributorsPerPage)}}
	contributors := make([]models.Contributor, 0)

	for page := 1; next != ""; page++ {
		if page > maxContributorPages {
			return nil, fmt.Errorf("list contributors: %w: more than %d pages", ErrUnexpectedResponse, maxContributorPages)
		}

		opts := []requests.RequestOption{
			requests.WithRetryPolicy(g.policy),
			requests.WithAbsentOn404(),
		}
		// next links already carry the query of the first page
		if page == 1 {
			opts = append(opts, requests.WithQuery(query))
		}

		res, err := requests.MakeRequest(ctx, g.session, http.MethodGet, next, opts...)
		if err != nil {
			return nil, mapRequestError("list contributors", err)
		}
		if res == nil || res.StatusCode == http.StatusNoContent || len(res.Body) == 0 {
			break
		}

		var batch []models.Contributor
		if err = res.Decode(&batch); err != nil {
			return nil, fmt.Errorf("list contributors: %w: %w", ErrUnexpectedResponse, err)
		}
		contributors = append(contributors, batch...)

		next = nextPageURL(res.Header.Get("Link"))
	}

	g.logger.Debug().
		Str("repository", repo.FullName).
		Int("contributors", len(contributors)).
		Msg("contributors listed")

	return contributors, nil
}

// GetActionsPublicKey implements [GitHubAdapter]. It issues
// GET /repos/{owner}/{name}/actions/secrets/public-key.
func (g *githubAdapter) GetActionsPublicKey(ctx context.Context, owner, name string) (models.ActionsPublicKey, error) {
	key, _, err := requests.Fetch[models.ActionsPublicKey](ctx, g.session, http.MethodGet,
		g.repoURL(owner, name, "actions", "secrets", "public-key"),
		requests.WithRetryPolicy(g.policy),
	)
	if err != nil {
		return models.ActionsPublicKey{}, mapRequestError("get actions public key", err)
	}
	if key.KeyID == "" || key.Key == "" {
		return models.ActionsPublicKey{}, fmt.Errorf("get actions public key: %w: empty key", ErrUnexpectedResponse)
	}
	return key, nil
}

// PutActionsSecret implements [GitHubAdapter]. It issues
// PUT /repos/{owner}/{name}/actions/secrets/{secret.Name}; GitHub answers 201
// for a new secret and 204 for an updated one.
func (g *githubAdapter) PutActionsSecret(ctx context.Context, owner, name string, secret models.EncryptedSecret) error {
	if secret.Name == "" {
		return ErrEmptySecretName
	}

	res, err := requests.MakeRequest(ctx, g.session, http.MethodPut,
		g.repoURL(owner, name, "actions", "secrets", secret.Name),
		requests.WithBody(secret),
		requests.WithRetryPolicy(g.policy),
	)
	if err != nil {
		return mapRequestError("put actions secret", err)
	}

	switch res.StatusCode {
	case http.StatusCreated, http.StatusNoContent:
		g.logger.Debug().
			Str("secret", secret.Name).
			Int("status", res.StatusCode).
			Msg("actions secret stored")
		return nil
	default:
		return fmt.Errorf("put actions secret: %w: status %d", ErrUnexpectedResponse, res.StatusCode)
	}
}

// Close implements [GitHubAdapter].
func (g *githubAdapter) Close() {
	g.session.Close()
}

// nextPageURL extracts the rel="next" target of an RFC 8288 Link header. A
// link may carry several space separated relation types.
func nextPageURL(header string) string {
	for _, link := range linkheader.Parse(header) {
		if slices.Contains(strings.Fields(link.Rel), "next") {
			return link.URL
		}
	}
	return ""
}
