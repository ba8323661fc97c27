// Package github resolves repository references and fetches release
// manifests from the GitHub REST API.
//
// The package handles two steps of a run:
//
//  1. Resolving a user supplied URL (web or API style) into a model.Reference
//  2. Locating the release for that reference and decoding its asset list
//
// # Reference Resolution
//
// Resolve accepts both URL shapes and an optional explicitly requested tag:
//
//	ref, err := github.Resolve("https://github.com/acme/tool/releases/tag/v2.0", "")
//	// ref = {Owner: "acme", Repo: "tool", Tag: "v2.0"}
//
//	_, err = github.Resolve("https://github.com/acme/tool/releases/tag/v2.0", "v1.0")
//	errors.Is(err, github.ErrConflictingTag) // true
//
// Resolve is pure: it never touches the network.
//
// # Release Lookup
//
// A Locator fetches the manifest of a tagged release, or of the latest
// release when the reference carries no tag:
//
//	loc := github.NewLocator(client, "https://api.github.com", logger)
//	release, err := loc.Locate(ctx, ref)
//
// The response body is validated against an embedded JSON schema before it
// is decoded, so a manifest without tag_name or with malformed assets fails
// with a ManifestParseError instead of producing empty records.
package github
