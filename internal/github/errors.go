package github

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedReference is returned when a recognized URL has fewer
	// than two non-empty path segments for owner and repo.
	ErrMalformedReference = errors.New("malformed repository reference")

	// ErrUnsupportedReference is returned when a URL is neither a GitHub web
	// URL nor a GitHub API repository URL.
	ErrUnsupportedReference = errors.New("unsupported reference format, expected a GitHub repository or API URL")

	// ErrConflictingTag is returned when the URL embeds a release tag that
	// differs from the explicitly requested one.
	ErrConflictingTag = errors.New("conflicting release tags")
)

// ReleaseFetchError is returned when the release manifest cannot be
// retrieved, either because of a transport failure or an HTTP error status.
type ReleaseFetchError struct {
	// URL is the API endpoint that was requested.
	URL string

	// StatusCode is the HTTP status, zero for transport failures.
	StatusCode int

	// Hint is extra advice for the user, e.g. when the rate limit resets.
	Hint string

	Err error
}

func (e *ReleaseFetchError) Error() string {
	msg := fmt.Sprintf("error fetching release data from %s: %v", e.URL, e.Err)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *ReleaseFetchError) Unwrap() error {
	return e.Err
}

// ManifestParseError is returned when the release manifest is not valid JSON
// or does not have the expected structure.
type ManifestParseError struct {
	Err error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("invalid release manifest: %v", e.Err)
}

func (e *ManifestParseError) Unwrap() error {
	return e.Err
}
