package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultBaseURL         = "https://api.github.com"
	defaultDownloadBaseURL = "https://github.com"
	defaultOwner           = "abhisek"
	defaultRepo            = "worksheetai"
	defaultTimeout         = 10 * time.Second
)

// Checker looks up GitHub releases and applies updates.
type Checker struct {
	client          *http.Client
	baseURL         string
	downloadBaseURL string
	owner           string
	repo            string
	execPath        func() (string, error)
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithDownloadBaseURL overrides the base URL release assets are fetched from.
func WithDownloadBaseURL(u string) Option {
	return func(c *Checker) { c.downloadBaseURL = u }
}

// WithRepository overrides the GitHub owner and repository.
func WithRepository(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

func withExecPath(fn func() (string, error)) Option {
	return func(c *Checker) { c.execPath = fn }
}

// NewChecker creates a Checker for the worksheetai releases.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:          &http.Client{Timeout: defaultTimeout},
		baseURL:         defaultBaseURL,
		downloadBaseURL: defaultDownloadBaseURL,
		owner:           defaultOwner,
		repo:            defaultRepo,
		execPath:        os.Executable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

type releaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check fetches the latest release and compares it with input.Version.
// Versions that are not valid semver never report an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	var rel releaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}

	current := canonical(input.Version)
	latest := canonical(rel.TagName)
	return &CheckResult{
		CurrentVersion:  input.Version,
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
		UpdateAvailable: semver.IsValid(current) && semver.IsValid(latest) && semver.Compare(latest, current) > 0,
	}, nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
