package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/handiism/release-fetcher/internal/model"
)

// JSONRelease represents a release object from the GitHub REST API.
//
// Only the fields grf uses are decoded.
type JSONRelease struct {
	TagName     string      `json:"tag_name"`
	Name        *string     `json:"name"`
	Prerelease  bool        `json:"prerelease"`
	PublishedAt *time.Time  `json:"published_at"`
	Assets      []JSONAsset `json:"assets"`
}

// JSONAsset represents one entry of a release's asset list.
type JSONAsset struct {
	Name               string  `json:"name"`
	Size               int64   `json:"size"`
	BrowserDownloadURL string  `json:"browser_download_url"`
	ContentType        *string `json:"content_type"`
}

// ToRelease converts JSONRelease to a model.Release.
//
// Asset order is preserved. Asset names become file names in the output
// directory, so names containing path separators and duplicate names are
// reported as errors.
func (jr *JSONRelease) ToRelease() (*model.Release, error) {
	release := &model.Release{
		Tag:        jr.TagName,
		Prerelease: jr.Prerelease,
		Assets:     make([]model.Asset, 0, len(jr.Assets)),
	}
	if jr.Name != nil {
		release.Name = *jr.Name
	}
	if jr.PublishedAt != nil {
		release.PublishedAt = *jr.PublishedAt
	}

	seen := make(map[string]bool, len(jr.Assets))
	for _, ja := range jr.Assets {
		if strings.ContainsAny(ja.Name, `/\`) || ja.Name == "." || ja.Name == ".." {
			return nil, fmt.Errorf("invalid asset name %q", ja.Name)
		}
		if seen[ja.Name] {
			return nil, fmt.Errorf("duplicate asset name %q", ja.Name)
		}
		seen[ja.Name] = true
		release.Assets = append(release.Assets, ja.ToAsset())
	}

	return release, nil
}

// ToAsset converts JSONAsset to a model.Asset.
func (ja *JSONAsset) ToAsset() model.Asset {
	asset := model.Asset{
		Name:        ja.Name,
		Size:        ja.Size,
		DownloadURL: ja.BrowserDownloadURL,
	}
	if ja.ContentType != nil {
		asset.ContentType = *ja.ContentType
	}
	return asset
}
