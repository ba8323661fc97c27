package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/handiism/release-fetcher/internal/model"
)

func TestSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0.00 B"},
		{100, "100.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 << 30, "3.00 GB"},
		{2 << 40, "2.00 TB"},
		{4 << 50, "4.00 PB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Size(tt.in); got != tt.want {
				t.Errorf("Size(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSpeed(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00 B/s"},
		{512, "512.00 B/s"},
		{2048, "2.00 KB/s"},
		{1.5 * 1024 * 1024, "1.50 MB/s"},
		{3000 * 1024 * 1024, "3000.00 MB/s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Speed(tt.in); got != tt.want {
				t.Errorf("Speed(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProgressLine(t *testing.T) {
	tests := []struct {
		name string
		p    model.Progress
		want string
	}{
		{
			name: "half",
			p:    model.Progress{Written: 50, Total: 100, Transferred: 50, Elapsed: time.Second},
			want: "[" + strings.Repeat("#", 25) + strings.Repeat(".", 25) + "] 50% - 50.00 B/s",
		},
		{
			name: "done",
			p:    model.Progress{Written: 100, Total: 100, Transferred: 60, Elapsed: 2 * time.Second},
			want: "[" + strings.Repeat("#", 50) + "] 100% - 30.00 B/s",
		},
		{
			name: "unknown total",
			p:    model.Progress{Written: 10, Transferred: 10},
			want: "[" + strings.Repeat(".", 50) + "] 0% - 0.00 B/s",
		},
		{
			name: "overrun",
			p:    model.Progress{Written: 150, Total: 100, Transferred: 150, Elapsed: time.Second},
			want: "[" + strings.Repeat("#", 50) + "] 150% - 150.00 B/s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressLine(tt.p, BarWidth); got != tt.want {
				t.Errorf("ProgressLine() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestTerminalBar_Plain(t *testing.T) {
	var buf bytes.Buffer
	bar := NewTerminalBar(&buf)

	bar.Flush()
	if buf.Len() != 0 {
		t.Fatalf("Flush without a drawn line wrote %q", buf.String())
	}

	bar.Observe(model.Progress{Written: 50, Total: 100})
	bar.Observe(model.Progress{Written: 100, Total: 100})
	bar.Flush()
	bar.Flush()

	out := buf.String()
	if strings.Count(out, "\r") != 2 {
		t.Errorf("expected 2 carriage returns in %q", out)
	}
	if !strings.HasSuffix(out, "] 100% - 0.00 B/s\n") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Contains(out, "\x1b") {
		t.Errorf("plain output should not contain escape codes: %q", out)
	}
}

func TestWriteListing_Text(t *testing.T) {
	release := &model.Release{Tag: "v1.0"}
	assets := []model.Asset{{Name: "a.zip", Size: 100}}

	var buf bytes.Buffer
	if err := WriteListing(&buf, release, assets, ListingText); err != nil {
		t.Fatalf("WriteListing failed: %v", err)
	}

	want := "Release: v1.0\nFiles:\n  a.zip (100.00 B)\n"
	if buf.String() != want {
		t.Errorf("listing =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteListing_JSON(t *testing.T) {
	release := &model.Release{Tag: "v1.0", Name: "First"}
	assets := []model.Asset{
		{Name: "a.zip", Size: 100, DownloadURL: "https://example.com/a.zip"},
		{Name: "b.zip", Size: 200, DownloadURL: "https://example.com/b.zip"},
	}

	var buf bytes.Buffer
	if err := WriteListing(&buf, release, assets, ListingJSON); err != nil {
		t.Fatalf("WriteListing failed: %v", err)
	}

	var got jsonListing
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("listing is not valid JSON: %v\n%s", err, buf.String())
	}
	if got.Tag != "v1.0" || got.Name != "First" || got.TotalSize != 300 {
		t.Errorf("listing = %+v", got)
	}
	if len(got.Assets) != 2 || got.Assets[1].URL != "https://example.com/b.zip" {
		t.Errorf("assets = %+v", got.Assets)
	}
}

func TestParseListingFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ListingFormat
		wantErr bool
	}{
		{in: "text", want: ListingText},
		{in: "JSON", want: ListingJSON},
		{in: " json ", want: ListingJSON},
		{in: "yaml", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseListingFormat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseListingFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
