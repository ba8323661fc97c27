package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/handiism/release-fetcher/internal/github/dto"
	"github.com/handiism/release-fetcher/internal/http"
	"github.com/handiism/release-fetcher/internal/model"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

const acceptHeader = "application/vnd.github+json"

// Locator retrieves release manifests from the GitHub API.
//
// Example usage:
//
//	loc := NewLocator(http.NewClient("grf/dev", time.Minute), DefaultBaseURL, log.Default())
//	loc.Timeout = 30 * time.Second
//
//	release, err := loc.Locate(ctx, model.Reference{Owner: "acme", Repo: "tool"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(release.Tag)
type Locator struct {
	client  *http.Client
	baseURL string
	logger  *log.Logger

	// Timeout bounds the manifest request. Zero means no limit beyond ctx.
	Timeout time.Duration

	// now is overridable for tests of the rate limit hint.
	now func() time.Time
}

// NewLocator creates a Locator that talks to the API at baseURL.
//
// baseURL is normally DefaultBaseURL; tests point it at an httptest server.
// A nil logger discards output.
func NewLocator(client *http.Client, baseURL string, logger *log.Logger) *Locator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Locator{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

// Endpoint returns the API URL for the release ref points at: the tags
// endpoint when ref carries a tag and the latest-release endpoint otherwise.
func (l *Locator) Endpoint(ref model.Reference) string {
	base := fmt.Sprintf("%s/repos/%s/%s/releases", l.baseURL, url.PathEscape(ref.Owner), url.PathEscape(ref.Repo))
	if ref.HasTag() {
		return base + "/tags/" + url.PathEscape(ref.Tag)
	}
	return base + "/latest"
}

// Locate fetches and decodes the release manifest for ref.
//
// It makes exactly one request. Failures to reach the API or non-200
// answers are returned as *ReleaseFetchError; bodies that are not valid
// JSON or do not match the release schema are returned as
// *ManifestParseError.
func (l *Locator) Locate(ctx context.Context, ref model.Reference) (*model.Release, error) {
	endpoint := l.Endpoint(ref)
	l.logger.Debug("fetching release manifest", "repo", ref.Slug(), "tag", ref.Tag, "url", endpoint)

	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	body, err := l.client.Get(ctx, endpoint, "Accept", acceptHeader)
	if err != nil {
		return nil, l.fetchError(endpoint, err)
	}

	if err := validateManifest(body); err != nil {
		return nil, err
	}

	var jr dto.JSONRelease
	if err := json.Unmarshal(body, &jr); err != nil {
		return nil, &ManifestParseError{Err: err}
	}

	release, err := jr.ToRelease()
	if err != nil {
		return nil, &ManifestParseError{Err: err}
	}

	l.logger.Debug("release manifest decoded", "tag", release.Tag, "assets", len(release.Assets))
	return release, nil
}

func (l *Locator) fetchError(endpoint string, err error) *ReleaseFetchError {
	fe := &ReleaseFetchError{URL: endpoint, Err: err}

	var se *http.StatusError
	if errors.As(err, &se) {
		fe.StatusCode = se.StatusCode
		fe.Hint = rateLimitHint(se, l.now())
	}
	return fe
}

// rateLimitHint describes when the API quota resets if the response says it
// is exhausted.
func rateLimitHint(se *http.StatusError, now time.Time) string {
	if se.Header.Get("X-Ratelimit-Remaining") != "0" {
		return ""
	}

	reset, err := strconv.ParseInt(se.Header.Get("X-Ratelimit-Reset"), 10, 64)
	if err != nil {
		return "API rate limit exceeded"
	}

	wait := time.Unix(reset, 0).Sub(now).Round(time.Second)
	if wait < 0 {
		wait = 0
	}
	return fmt.Sprintf("API rate limit exceeded, resets in %s", wait)
}
