package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/tool/releases/tags/v1.0":
			fmt.Fprintf(w, `{"tag_name": "v1.0", "assets": [
				{"name": "a.zip", "size": 100, "browser_download_url": "%[1]s/dl/a.zip"},
				{"name": "b.zip", "size": 200, "browser_download_url": "%[1]s/dl/b.zip"}
			]}`, ts.URL)
		case "/dl/a.zip":
			w.Write(bytes.Repeat([]byte("a"), 100))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	t.Setenv("GRF_API_BASE_URL", ts.URL)
	return ts
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestListing(t *testing.T) {
	newAPI(t)

	stdout, _, err := execute(t, "https://github.com/acme/tool", "-r", "v1.0", "-e", "b.zip")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	want := "Release: v1.0\nFiles:\n  a.zip (100.00 B)\n"
	if stdout != want {
		t.Errorf("stdout =\n%q\nwant\n%q", stdout, want)
	}
}

func TestListingJSON(t *testing.T) {
	newAPI(t)

	stdout, _, err := execute(t, "https://github.com/acme/tool/releases/tag/v1.0", "--format", "json")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	var listing struct {
		Tag    string `json:"tag"`
		Assets []struct {
			Name string `json:"name"`
		} `json:"assets"`
	}
	if err := json.Unmarshal([]byte(stdout), &listing); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if listing.Tag != "v1.0" || len(listing.Assets) != 2 {
		t.Errorf("listing = %+v", listing)
	}
}

func TestDownload(t *testing.T) {
	newAPI(t)
	out := t.TempDir()

	stdout, _, err := execute(t, "https://github.com/acme/tool", "-r", "v1.0", "-d", "-o", out, "-i", "a.zip")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	path := filepath.Join(out, "v1.0", "a.zip")
	info, err := os.Stat(path)
	if err != nil || info.Size() != 100 {
		t.Fatalf("downloaded file: %v, %v", info, err)
	}

	for _, want := range []string{
		"Downloading files to: " + filepath.Join(out, "v1.0"),
		"Downloading: a.zip (100.00 B)",
		"Done: " + path,
		"Summary: 1 downloaded, 0 already present, 0 failed",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "b.zip") {
		t.Error("b.zip should not be listed with --include a.zip")
	}
}

func TestFatalErrors(t *testing.T) {
	newAPI(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"conflicting filters", []string{"https://github.com/acme/tool", "-i", "a.zip", "-e", "b.zip"}, "mutually exclusive"},
		{"conflicting tags", []string{"https://github.com/acme/tool/releases/tag/v2.0", "-r", "v1.0"}, "conflicting release tags"},
		{"unsupported reference", []string{"https://gitlab.com/acme/tool"}, "unsupported reference format"},
		{"missing release", []string{"https://github.com/acme/tool", "-r", "v9"}, "404"},
		{"bad format", []string{"https://github.com/acme/tool", "--format", "xml"}, "unknown listing format"},
		{"no reference", []string{}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
			if strings.Contains(stdout, "Downloading") {
				t.Error("no download may start after a fatal error")
			}
		})
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "Github Release Fetcher ") {
		t.Errorf("version output = %q", stdout)
	}
}
