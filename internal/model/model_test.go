package model

import (
	"path/filepath"
	"testing"
	"time"
)

func TestReference_Slug(t *testing.T) {
	ref := Reference{Owner: "acme", Repo: "tool"}
	if got := ref.Slug(); got != "acme/tool" {
		t.Errorf("Slug() = %q, want %q", got, "acme/tool")
	}
	if ref.HasTag() {
		t.Error("HasTag() should be false without a tag")
	}

	ref.Tag = "v1.0"
	if !ref.HasTag() {
		t.Error("HasTag() should be true with a tag")
	}
}

func TestAsset_TargetPath(t *testing.T) {
	asset := Asset{Name: "a.zip", Size: 100}
	want := filepath.Join("out", "v1.0", "a.zip")
	if got := asset.TargetPath(filepath.Join("out", "v1.0")); got != want {
		t.Errorf("TargetPath() = %q, want %q", got, want)
	}
}

func TestTotalSize(t *testing.T) {
	assets := []Asset{{Name: "a", Size: 100}, {Name: "b", Size: 200}}
	if got := TotalSize(assets); got != 300 {
		t.Errorf("TotalSize() = %d, want 300", got)
	}
	if got := TotalSize(nil); got != 0 {
		t.Errorf("TotalSize(nil) = %d, want 0", got)
	}
}

func TestStatus_OK(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusCompleted, true},
		{StatusAlreadyComplete, true},
		{StatusSizeMismatch, false},
		{StatusTransferFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			if got := tt.status.OK(); got != tt.want {
				t.Errorf("OK() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTask_Progress(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{
		Asset:     Asset{Name: "a.zip", Size: 100},
		Offset:    40,
		Written:   70,
		Total:     100,
		StartedAt: start,
	}

	p := task.Progress(start.Add(2 * time.Second))

	if p.Transferred != 30 {
		t.Errorf("Transferred = %d, want 30", p.Transferred)
	}
	if p.Fraction() != 0.7 {
		t.Errorf("Fraction() = %v, want 0.7", p.Fraction())
	}
	if p.Throughput() != 15 {
		t.Errorf("Throughput() = %v, want 15", p.Throughput())
	}
}

func TestProgress_ZeroValues(t *testing.T) {
	tests := []struct {
		name string
		p    Progress
	}{
		{"zero elapsed", Progress{Written: 10, Total: 100, Transferred: 10}},
		{"negative elapsed", Progress{Written: 10, Total: 100, Transferred: 10, Elapsed: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Throughput(); got != 0 {
				t.Errorf("Throughput() = %v, want 0", got)
			}
		})
	}

	if got := (Progress{Written: 10}).Fraction(); got != 0 {
		t.Errorf("Fraction() with unknown total = %v, want 0", got)
	}
}
