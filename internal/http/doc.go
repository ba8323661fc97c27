// Package http provides the HTTP client used for GitHub API requests and
// asset downloads.
//
// The Client in this package handles:
//   - User-Agent headers on every request
//   - Status checking with a readable error for non-success responses
//   - Ranged GET requests for resuming downloads
//   - Response header timeouts that leave long transfers alone
//
// # Basic Usage
//
//	client := http.NewClient("grf/1.2.0", 60*time.Second)
//
//	// Fetch a JSON document
//	body, err := client.Get(ctx, "https://api.github.com/repos/acme/tool/releases/latest")
//
//	// Continue a download at byte 40
//	resp, err := client.GetRange(ctx, assetURL, 40)
//	defer resp.Body.Close()
//
// # Progress Tracking
//
// The ProgressWriter type can be used to wrap any io.Writer for progress tracking:
//
//	pw := &http.ProgressWriter{
//	    Writer:   file,
//	    Written:  offset,
//	    Total:    offset + resp.ContentLength,
//	    OnUpdate: func(written, total int64) { /* update UI */ },
//	}
package http
