package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/release-fetcher/internal/model"
)

// ListingFormat selects how WriteListing renders a release.
type ListingFormat string

const (
	// ListingText is the human readable listing:
	//
	//	Release: v1.0
	//	Files:
	//	  a.zip (100.00 B)
	ListingText ListingFormat = "text"

	// ListingJSON writes a single indented JSON document.
	ListingJSON ListingFormat = "json"
)

// ParseListingFormat converts a user supplied name into a ListingFormat.
// Matching is case-insensitive.
func ParseListingFormat(s string) (ListingFormat, error) {
	switch f := ListingFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ListingText, ListingJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown listing format %q, expected text or json", s)
	}
}

type jsonListing struct {
	Tag        string      `json:"tag"`
	Name       string      `json:"name,omitempty"`
	Prerelease bool        `json:"prerelease"`
	Assets     []jsonAsset `json:"assets"`
	TotalSize  int64       `json:"total_size"`
}

type jsonAsset struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// WriteListing writes the release tag and the given assets to w.
//
// assets is normally the filtered selection rather than release.Assets.
func WriteListing(w io.Writer, release *model.Release, assets []model.Asset, f ListingFormat) error {
	switch f {
	case ListingJSON:
		return writeJSONListing(w, release, assets)
	case ListingText, "":
		return writeTextListing(w, release, assets)
	default:
		return fmt.Errorf("unknown listing format %q", f)
	}
}

func writeTextListing(w io.Writer, release *model.Release, assets []model.Asset) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Release: %s\n", release.Tag)
	b.WriteString("Files:\n")
	for _, a := range assets {
		fmt.Fprintf(&b, "  %s (%s)\n", a.Name, Size(a.Size))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSONListing(w io.Writer, release *model.Release, assets []model.Asset) error {
	out := jsonListing{
		Tag:        release.Tag,
		Name:       release.Name,
		Prerelease: release.Prerelease,
		Assets:     make([]jsonAsset, 0, len(assets)),
		TotalSize:  model.TotalSize(assets),
	}
	for _, a := range assets {
		out.Assets = append(out.Assets, jsonAsset{Name: a.Name, Size: a.Size, URL: a.DownloadURL})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
