package github

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/handiism/release-fetcher/internal/model"
)

const (
	apiHost = "api.github.com"
	webHost = "github.com"
)

// Resolve normalizes a GitHub URL into a repository reference.
//
// Accepted forms:
//   - https://api.github.com/repos/{owner}/{repo}
//   - https://api.github.com/repos/{owner}/{repo}/releases/tags/{tag}
//   - https://api.github.com/repos/{owner}/{repo}/releases/latest
//   - https://github.com/{owner}/{repo}
//   - https://github.com/{owner}/{repo}/releases/tag/{tag}
//
// A trailing ".git" on the repo segment is dropped, and query strings and
// fragments are ignored.
//
// requestedTag is the tag asked for explicitly (e.g. via --release). If the URL
// also embeds a tag and the two differ, ErrConflictingTag is returned. When
// only one of them is present it wins; when neither is, Tag is empty and the
// latest release is meant.
//
// Returns ErrMalformedReference when owner or repo is missing and
// ErrUnsupportedReference for anything else that is not a GitHub URL.
func Resolve(raw, requestedTag string) (model.Reference, error) {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return model.Reference{}, fmt.Errorf("%w: %q", ErrUnsupportedReference, raw)
	}

	segments := splitPath(u.Path)

	var ref model.Reference
	switch strings.ToLower(u.Hostname()) {
	case apiHost:
		if len(segments) == 0 || segments[0] != "repos" {
			return model.Reference{}, fmt.Errorf("%w: %q", ErrUnsupportedReference, raw)
		}
		ref, err = fromSegments(segments[1:], "tags")
	case webHost, "www." + webHost:
		ref, err = fromSegments(segments, "tag")
	default:
		return model.Reference{}, fmt.Errorf("%w: %q", ErrUnsupportedReference, raw)
	}
	if err != nil {
		return model.Reference{}, fmt.Errorf("%w: %q", err, raw)
	}

	switch {
	case requestedTag == "":
	case ref.Tag == "":
		ref.Tag = requestedTag
	case ref.Tag != requestedTag:
		return model.Reference{}, fmt.Errorf("%w: URL specifies %q, but --release specifies %q",
			ErrConflictingTag, ref.Tag, requestedTag)
	}

	return ref, nil
}

// fromSegments reads owner/repo[/releases/{tagWord}/{tag}] from path
// segments. tagWord is "tags" for API URLs and "tag" for web URLs.
func fromSegments(segments []string, tagWord string) (model.Reference, error) {
	if len(segments) < 2 {
		return model.Reference{}, ErrMalformedReference
	}

	ref := model.Reference{
		Owner: segments[0],
		Repo:  strings.TrimSuffix(segments[1], ".git"),
	}
	if ref.Owner == "" || ref.Repo == "" {
		return model.Reference{}, ErrMalformedReference
	}

	rest := segments[2:]
	if len(rest) >= 3 && rest[0] == "releases" && rest[1] == tagWord {
		// Tags may contain slashes, e.g. "release/1.0".
		ref.Tag = strings.Join(rest[2:], "/")
	}

	return ref, nil
}

// splitPath splits a URL path into its segments, dropping a leading or
// trailing slash but keeping empty inner segments.
func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
