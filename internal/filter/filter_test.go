package filter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/handiism/release-fetcher/internal/model"
)

func names(assets []model.Asset) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.Name)
	}
	return out
}

func TestSelect(t *testing.T) {
	assets := []model.Asset{
		{Name: "a.zip", Size: 100},
		{Name: "b.zip", Size: 200},
		{Name: "c.tar.gz", Size: 300},
	}

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{"no filter", nil, nil, []string{"a.zip", "b.zip", "c.tar.gz"}},
		{"include keeps manifest order", []string{"c.tar.gz", "a.zip"}, nil, []string{"a.zip", "c.tar.gz"}},
		{"include unknown name", []string{"missing.zip"}, nil, []string{}},
		{"include partly unknown", []string{"b.zip", "missing.zip"}, nil, []string{"b.zip"}},
		{"exclude", nil, []string{"b.zip"}, []string{"a.zip", "c.tar.gz"}},
		{"exclude unknown name", nil, []string{"missing.zip"}, []string{"a.zip", "b.zip", "c.tar.gz"}},
		{"exclude everything", nil, []string{"a.zip", "b.zip", "c.tar.gz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.include, tt.exclude)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			got, err := Select(assets, f)
			if err != nil {
				t.Fatalf("Select failed: %v", err)
			}
			if !reflect.DeepEqual(names(got), tt.want) {
				t.Errorf("Select() = %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestConflictingFilter(t *testing.T) {
	if _, err := New([]string{"a.zip"}, []string{"b.zip"}); !errors.Is(err, ErrConflictingFilter) {
		t.Errorf("New() error = %v, want ErrConflictingFilter", err)
	}

	f := Filter{Include: []string{"a.zip"}, Exclude: []string{"b.zip"}}
	if _, err := Select([]model.Asset{{Name: "a.zip"}}, f); !errors.Is(err, ErrConflictingFilter) {
		t.Errorf("Select() error = %v, want ErrConflictingFilter", err)
	}
}
