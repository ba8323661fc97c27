// Package download provides the download pipeline for fetching GitHub
// release assets.
//
// # Engine
//
// The Engine downloads one asset at a time:
//
//  1. Probe the target file; a file with the declared size is left alone
//  2. Resume a shorter file with "Range: bytes={size}-"
//  3. Restart from zero when the file is larger or the server ignores Range
//  4. Stream the body to disk in 1 MiB chunks, notifying an Observer
//  5. Verify the final size against the manifest
//
// The result is always a model.Outcome; Download has no error return.
//
// # Manager
//
// The Manager runs a whole request: resolve the reference, locate the
// release, filter its assets, then download them sequentially.
//
//	manager := download.NewManager(settings, logger, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.Initialize(ctx, download.Request{
//	    Reference: "https://github.com/acme/tool",
//	    Tag:       "v1.0",
//	    Exclude:   []string{"checksums.txt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	outcomes, err := manager.StartDownloads(ctx, ".", format.NewTerminalBar(os.Stdout))
//	fmt.Println(download.Summarize(outcomes))
//
// # Progress Tracking
//
// User facing messages are reported via a callback that receives
// ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Byte level progress goes to the Observer passed to StartDownloads.
//
// # Failures
//
// A failed asset never stops the batch and is never retried; running the
// same request again resumes any partial file.
package download
