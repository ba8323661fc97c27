package model

import (
	"path/filepath"
	"time"
)

// Reference identifies a repository and, optionally, one of its release tags.
//
// An empty Tag means "the latest release".
type Reference struct {
	// Owner is the user or organization that owns the repository.
	Owner string

	// Repo is the repository name.
	Repo string

	// Tag is the requested release tag. Empty selects the latest release.
	Tag string
}

// Slug returns the "owner/repo" form of the reference.
func (r Reference) Slug() string {
	return r.Owner + "/" + r.Repo
}

// HasTag reports whether a specific release tag was requested.
func (r Reference) HasTag() bool {
	return r.Tag != ""
}

// Release is a published release and its downloadable assets.
//
// A Release is fetched once per run and never mutated afterwards.
type Release struct {
	// Tag is the release tag name (tag_name in the API payload).
	Tag string

	// Name is the human readable release title. May be empty.
	Name string

	// Prerelease is set for releases marked as pre-releases.
	Prerelease bool

	// PublishedAt is when the release was published. Zero if unknown.
	PublishedAt time.Time

	// Assets lists the release files in manifest order.
	Assets []Asset
}

// Asset is one downloadable file of a release.
type Asset struct {
	// Name is the file name, unique within a release.
	Name string

	// Size is the declared size in bytes. It is the source of truth for
	// verifying a finished download.
	Size int64

	// DownloadURL is the browser_download_url of the asset.
	DownloadURL string

	// ContentType is the MIME type reported by the API. May be empty.
	ContentType string
}

// TargetPath returns where the asset is stored below dir.
func (a Asset) TargetPath(dir string) string {
	return filepath.Join(dir, a.Name)
}

// TotalSize returns the sum of the declared sizes of assets.
func TotalSize(assets []Asset) int64 {
	var total int64
	for _, a := range assets {
		total += a.Size
	}
	return total
}
