package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/handiism/release-fetcher/internal/http"
	ioutils "github.com/handiism/release-fetcher/internal/io"
	"github.com/handiism/release-fetcher/internal/model"
)

// DefaultChunkSize is the read size of a transfer: 1 MiB.
const DefaultChunkSize = 1 << 20

// Observer receives a progress snapshot after every chunk written to disk.
type Observer interface {
	Observe(p model.Progress)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(p model.Progress)

// Observe calls f(p).
func (f ObserverFunc) Observe(p model.Progress) {
	f(p)
}

// Engine downloads single assets with resume and size verification.
//
// For each asset the Engine:
//  1. Skips the transfer if the target already has the declared size
//  2. Resumes a shorter file with a Range request, or restarts a longer one
//  3. Streams the body to disk in fixed size chunks, reporting progress
//  4. Compares the final size on disk with the declared size
//
// Example usage:
//
//	engine := NewEngine(client, DefaultChunkSize, logger)
//	outcome := engine.Download(ctx, asset, asset.TargetPath(dir), format.NewTerminalBar(os.Stdout))
//	if !outcome.Status.OK() {
//	    fmt.Println(outcome.Status, outcome.Err)
//	}
type Engine struct {
	client    *http.Client
	chunkSize int
	logger    *log.Logger

	now func() time.Time
}

// NewEngine creates an Engine. A chunkSize of zero or less selects
// DefaultChunkSize, and a nil logger discards output.
func NewEngine(client *http.Client, chunkSize int, logger *log.Logger) *Engine {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		client:    client,
		chunkSize: chunkSize,
		logger:    logger,
		now:       time.Now,
	}
}

// Download transfers asset to targetPath and classifies the result.
//
// Download never returns an error: transport problems are reported as
// StatusTransferFailed with Outcome.Err set, and the partial file is left
// in place so a later run can resume it. observer may be nil.
func (e *Engine) Download(ctx context.Context, asset model.Asset, targetPath string, observer Observer) model.Outcome {
	outcome := model.Outcome{Asset: asset, Path: targetPath}

	existing, exists, err := ioutils.FileSize(targetPath)
	if err != nil {
		return failed(outcome, err)
	}
	outcome.Size = existing

	if exists && existing == asset.Size {
		outcome.Status = model.StatusAlreadyComplete
		return outcome
	}

	var offset int64
	switch {
	case exists && existing < asset.Size:
		offset = existing
	case exists:
		e.logger.Debug("existing file larger than declared size, restarting", "path", targetPath, "size", existing, "declared", asset.Size)
	}

	resp, err := e.client.GetRange(ctx, asset.DownloadURL, offset)
	if err != nil {
		return failed(outcome, err)
	}
	defer resp.Body.Close()

	if offset > 0 {
		switch resp.StatusCode {
		case nethttp.StatusOK:
			e.logger.Debug("server ignored range request, restarting", "url", asset.DownloadURL, "offset", offset)
			offset = 0
		case nethttp.StatusPartialContent:
			start, _, _, err := http.ParseContentRange(resp.Header.Get("Content-Range"))
			if err != nil {
				return failed(outcome, err)
			}
			if start != offset {
				return failed(outcome, fmt.Errorf("server resumed at byte %d, requested %d", start, offset))
			}
			e.logger.Debug("resuming download", "path", targetPath, "offset", offset)
		}
	}
	outcome.Resumed = offset > 0

	f, err := ioutils.OpenAt(targetPath, offset)
	if err != nil {
		return failed(outcome, err)
	}

	total := asset.Size
	if resp.ContentLength >= 0 {
		total = offset + resp.ContentLength
	}

	task := &model.Task{
		Asset:      asset,
		TargetPath: targetPath,
		Offset:     offset,
		Written:    offset,
		Total:      total,
		StartedAt:  e.now(),
	}

	pw := &http.ProgressWriter{
		Writer:  f,
		Total:   total,
		Written: offset,
		OnUpdate: func(written, _ int64) {
			task.Written = written
			if observer != nil {
				observer.Observe(task.Progress(e.now()))
			}
		},
	}

	copyErr := e.copyChunks(pw, resp.Body)
	closeErr := f.Close()

	if size, _, err := ioutils.FileSize(targetPath); err == nil {
		outcome.Size = size
	}

	if err := errors.Join(copyErr, closeErr); err != nil {
		return failed(outcome, err)
	}

	if outcome.Size != asset.Size {
		outcome.Status = model.StatusSizeMismatch
		outcome.Err = fmt.Errorf("size on disk %d, expected %d", outcome.Size, asset.Size)
		return outcome
	}

	outcome.Status = model.StatusCompleted
	return outcome
}

// copyChunks streams r to w in chunkSize pieces. Every write except the last
// is a full chunk.
func (e *Engine) copyChunks(w io.Writer, r io.Reader) error {
	buf := make([]byte, e.chunkSize)
	for {
		n, err := fill(r, buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// fill reads into buf until it is full or r returns an error. Unlike
// io.ReadFull it passes io.EOF through unchanged, so a clean end of body can
// be told apart from a connection cut short (io.ErrUnexpectedEOF).
func fill(r io.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func failed(outcome model.Outcome, err error) model.Outcome {
	outcome.Status = model.StatusTransferFailed
	outcome.Err = err
	return outcome
}
