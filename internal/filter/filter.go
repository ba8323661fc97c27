// Package filter selects which release assets to download by name.
package filter

import (
	"errors"

	"github.com/handiism/release-fetcher/internal/model"
)

// ErrConflictingFilter is returned when both include and exclude names are
// given. The two modes are mutually exclusive.
var ErrConflictingFilter = errors.New("--include and --exclude are mutually exclusive")

// Filter holds a name based asset selection.
//
// At most one of Include and Exclude is non-empty. The zero Filter selects
// every asset.
type Filter struct {
	Include []string
	Exclude []string
}

// New creates a Filter, failing with ErrConflictingFilter if both include
// and exclude are non-empty.
func New(include, exclude []string) (Filter, error) {
	f := Filter{Include: include, Exclude: exclude}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// Validate reports ErrConflictingFilter for a Filter with both sets populated.
func (f Filter) Validate() error {
	if len(f.Include) > 0 && len(f.Exclude) > 0 {
		return ErrConflictingFilter
	}
	return nil
}

// Empty reports whether the filter selects every asset.
func (f Filter) Empty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Select applies f to assets.
//
// In include mode only assets named in the include set are kept; names that
// match nothing are ignored. In exclude mode every asset not named in the
// exclude set is kept. Manifest order is preserved in both modes, and an
// empty filter returns assets unchanged.
func Select(assets []model.Asset, f Filter) ([]model.Asset, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if f.Empty() {
		return assets, nil
	}

	include := len(f.Include) > 0
	names := toSet(f.Include)
	if !include {
		names = toSet(f.Exclude)
	}

	selected := make([]model.Asset, 0, len(assets))
	for _, a := range assets {
		if names[a.Name] == include {
			selected = append(selected, a)
		}
	}
	return selected, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
