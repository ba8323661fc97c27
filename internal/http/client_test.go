package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Get(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "grf/test" {
			t.Errorf("User-Agent = %q, want %q", got, "grf/test")
		}
		switch r.URL.Path {
		case "/ok":
			if got := r.Header.Get("Accept"); got != "application/json" {
				t.Errorf("Accept = %q, want application/json", got)
			}
			w.Write([]byte(`{"ok":true}`))
		default:
			w.Header().Set("X-Ratelimit-Remaining", "0")
			http.Error(w, "not here", http.StatusNotFound)
		}
	}))
	defer ts.Close()

	client := NewClientWith(ts.Client(), "grf/test")

	body, err := client.Get(context.Background(), ts.URL+"/ok", "Accept", "application/json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("body = %q", body)
	}

	_, err = client.Get(context.Background(), ts.URL+"/missing")
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
	se := err.(*StatusError)
	if se.Header.Get("X-Ratelimit-Remaining") != "0" {
		t.Error("StatusError should keep response headers")
	}
	if !bytes.Contains([]byte(se.Error()), []byte("not here")) {
		t.Errorf("error %q should contain the response body", se.Error())
	}
}

func TestClient_GetRange(t *testing.T) {
	content := []byte("0123456789")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/file":
			// ServeContent honours Range headers.
			http.ServeContent(w, r, "file", time.Time{}, bytes.NewReader(content))
		case "/ignore-range":
			w.Write(content)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer ts.Close()

	client := NewClientWith(ts.Client(), "grf/test")

	tests := []struct {
		name       string
		path       string
		offset     int64
		wantStatus int
		wantBody   string
	}{
		{"full", "/file", 0, http.StatusOK, "0123456789"},
		{"ranged", "/file", 4, http.StatusPartialContent, "456789"},
		{"range ignored", "/ignore-range", 4, http.StatusOK, "0123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.GetRange(context.Background(), ts.URL+tt.path, tt.offset)
			if err != nil {
				t.Fatalf("GetRange failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}

	if _, err := client.GetRange(context.Background(), ts.URL+"/broken", 0); !IsStatus(err, http.StatusInternalServerError) {
		t.Errorf("expected 500 StatusError, got %v", err)
	}
}

func TestProgressWriter(t *testing.T) {
	var buf bytes.Buffer
	var calls [][2]int64

	pw := &ProgressWriter{
		Writer:  &buf,
		Written: 40,
		Total:   100,
		OnUpdate: func(written, total int64) {
			calls = append(calls, [2]int64{written, total})
		},
	}

	pw.Write(make([]byte, 30))
	pw.Write(make([]byte, 30))

	if len(calls) != 2 {
		t.Fatalf("got %d updates, want 2", len(calls))
	}
	if calls[0] != [2]int64{70, 100} || calls[1] != [2]int64{100, 100} {
		t.Errorf("updates = %v", calls)
	}
	if buf.Len() != 60 {
		t.Errorf("underlying writer got %d bytes, want 60", buf.Len())
	}
}

func TestParseContentRange(t *testing.T) {
	tests := []struct {
		in        string
		start     int64
		end       int64
		total     int64
		wantError bool
	}{
		{in: "bytes 40-99/100", start: 40, end: 99, total: 100},
		{in: "bytes 0-9/*", start: 0, end: 9, total: -1},
		{in: "items 0-9/10", wantError: true},
		{in: "bytes 0-9", wantError: true},
		{in: "bytes x-9/10", wantError: true},
		{in: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, total, err := ParseContentRange(tt.in)
			if tt.wantError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start != tt.start || end != tt.end || total != tt.total {
				t.Errorf("got (%d, %d, %d), want (%d, %d, %d)", start, end, total, tt.start, tt.end, tt.total)
			}
		})
	}
}
