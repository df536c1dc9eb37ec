// Package deploy publishes the document to the site repository through the
// host's contents API: fetch the file's current revision marker, then write
// conditionally against it. The host rejects stale markers; that conflict is
// its optimistic-concurrency control, not ours.
package deploy

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"myself/console/internal/portfolio"
)

const (
	defaultBranch = "main"
	// commitMessage is the fixed message the site repo sees on every publish.
	commitMessage = "Update content via Admin Panel"
)

var (
	// ErrConfigMissing indicates an incomplete publish target.
	ErrConfigMissing = errors.New("deploy: github settings incomplete")
	// ErrInFlight indicates a deploy is already running. The conditional
	// write is not idempotent, so overlapping runs are rejected outright.
	ErrInFlight = errors.New("deploy: another deployment is in flight")
	// ErrFetchInfo indicates the revision-marker fetch failed.
	ErrFetchInfo = errors.New("deploy: failed to fetch file info")
	// ErrRejected indicates the conditional write was refused.
	ErrRejected = errors.New("deploy: update rejected")
)

// Publisher performs the two-step conditional overwrite.
type Publisher struct {
	apiBase  string
	filePath string
	http     *http.Client
	inflight atomic.Bool
}

// New creates a publisher against apiBase (https://api.github.com in
// production, an httptest server in tests) writing filePath in the target
// repository.
func New(apiBase, filePath string, httpClient *http.Client) *Publisher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Publisher{
		apiBase:  strings.TrimRight(apiBase, "/"),
		filePath: filePath,
		http:     httpClient,
	}
}

// Deploy renders doc into the site's data file and overwrites it at the
// target. The caller re-triggers on any failure; nothing retries here.
func (p *Publisher) Deploy(ctx context.Context, doc portfolio.Document, target portfolio.GitHubConfig) error {
	if target.Username == "" || target.Repo == "" || target.PAT == "" {
		return ErrConfigMissing
	}
	if !p.inflight.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer p.inflight.Store(false)

	branch := target.Branch
	if branch == "" {
		branch = defaultBranch
	}

	content, err := RenderDataFile(doc)
	if err != nil {
		return err
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(content))

	sha, err := p.fetchSHA(ctx, target, branch)
	if err != nil {
		return err
	}

	return p.putFile(ctx, target, branch, encoded, sha)
}

func (p *Publisher) contentsURL(target portfolio.GitHubConfig) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", p.apiBase, target.Username, target.Repo, p.filePath)
}

func (p *Publisher) fetchSHA(ctx context.Context, target portfolio.GitHubConfig, branch string) (string, error) {
	getURL := p.contentsURL(target) + "?ref=" + url.QueryEscape(branch)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, getURL, nil)
	if err != nil {
		return "", fmt.Errorf("build info request: %w", err)
	}
	setAPIHeaders(req, target.PAT)

	res, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchInfo, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrFetchInfo, res.Status)
	}

	var info struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("%w: decode file info: %v", ErrFetchInfo, err)
	}
	return info.SHA, nil
}

func (p *Publisher) putFile(ctx context.Context, target portfolio.GitHubConfig, branch, encoded, sha string) error {
	body, err := json.Marshal(map[string]string{
		"message": commitMessage,
		"content": encoded,
		"sha":     sha,
		"branch":  branch,
	})
	if err != nil {
		return fmt.Errorf("marshal update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.contentsURL(target), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	setAPIHeaders(req, target.PAT)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRejected, err)
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("%w: %s", ErrRejected, res.Status)
	}
	return nil
}

func setAPIHeaders(req *http.Request, pat string) {
	req.Header.Set("Authorization", "token "+pat)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}
