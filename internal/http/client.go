package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody bounds how much of an error response body is kept.
const maxErrorBody = 64 << 10

// Client wraps HTTP operations with release-fetcher configuration.
//
// Client provides:
//   - Configured User-Agent header
//   - Response header timeout (the body of a large download may take
//     arbitrarily long, so there is no overall request timeout)
//   - Plain and ranged GET requests
//
// Example usage:
//
//	client := NewClient("grf/dev", time.Minute)
//
//	// Fetch the release manifest
//	body, err := client.Get(ctx, apiURL)
//
//	// Resume a download
//	resp, err := client.GetRange(ctx, assetURL, existingSize)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// The client is configured with:
//   - the given User-Agent header
//   - headerTimeout as the time allowed for the server to send response
//     headers; zero disables it
func NewClient(userAgent string, headerTimeout time.Duration) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = headerTimeout

	return &Client{
		httpClient: &http.Client{Transport: transport},
		userAgent:  userAgent,
	}
}

// NewClientWith wraps an existing *http.Client, e.g. one returned by
// httptest.Server.Client.
func NewClientWith(hc *http.Client, userAgent string) *Client {
	return &Client{httpClient: hc, userAgent: userAgent}
}

// StatusError is returned when a server answers with an unexpected status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string

	// Header holds the response headers, e.g. for rate limit inspection.
	Header http.Header

	// Body is the start of the response body, for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("HTTP %s from %s", e.Status, e.URL)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// IsStatus reports whether err is a *StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// ProgressWriter wraps a writer to track download progress.
//
// Written may be preset to the number of bytes already on disk so that
// resumed downloads report progress against the full file.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with current progress.
	// Parameters are (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header plus any extra
// headers given as key/value pairs.
//
// Returns a *StatusError if the response status is not 200 OK.
//
// Example:
//
//	data, err := client.Get(ctx, apiURL, "Accept", "application/vnd.github+json")
func (c *Client) Get(ctx context.Context, url string, headers ...string) ([]byte, error) {
	req, err := c.newRequest(ctx, url, headers...)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError(url, resp)
	}

	return io.ReadAll(resp.Body)
}

// GetRange starts a download of url at byte offset.
//
// With a positive offset the request carries "Range: bytes={offset}-".
// Both 200 OK and 206 Partial Content are accepted; callers must check
// StatusCode since servers are free to ignore the Range header and send the
// whole file. Any other status is returned as a *StatusError and the body is
// closed. On success the caller must close the response body.
func (c *Client) GetRange(ctx context.Context, url string, offset int64) (*http.Response, error) {
	var headers []string
	if offset > 0 {
		headers = []string{"Range", fmt.Sprintf("bytes=%d-", offset)}
	}

	req, err := c.newRequest(ctx, url, headers...)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusPartialContent:
		return resp, nil
	default:
		defer resp.Body.Close()
		return nil, newStatusError(url, resp)
	}
}

func (c *Client) newRequest(ctx context.Context, url string, headers ...string) (*http.Request, error) {
	if len(headers)%2 != 0 {
		return nil, fmt.Errorf("odd number of header arguments")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return req, nil
}

func newStatusError(url string, resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		URL:        url,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header.Clone(),
		Body:       string(b),
	}
}

// ParseContentRange parses a Content-Range header value such as
// "bytes 40-99/100". A total of "*" is reported as -1.
func ParseContentRange(value string) (start, end, total int64, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(value), "bytes ")
	if !ok {
		return 0, 0, 0, fmt.Errorf("unsupported Content-Range %q", value)
	}

	span, size, ok := strings.Cut(rest, "/")
	if !ok {
		return 0, 0, 0, fmt.Errorf("malformed Content-Range %q", value)
	}

	first, last, ok := strings.Cut(span, "-")
	if !ok {
		return 0, 0, 0, fmt.Errorf("malformed Content-Range %q", value)
	}

	if start, err = strconv.ParseInt(first, 10, 64); err != nil {
		return 0, 0, 0, fmt.Errorf("malformed Content-Range %q: %w", value, err)
	}
	if end, err = strconv.ParseInt(last, 10, 64); err != nil {
		return 0, 0, 0, fmt.Errorf("malformed Content-Range %q: %w", value, err)
	}

	total = -1
	if size != "*" {
		if total, err = strconv.ParseInt(size, 10, 64); err != nil {
			return 0, 0, 0, fmt.Errorf("malformed Content-Range %q: %w", value, err)
		}
	}

	return start, end, total, nil
}
