package model

import "time"

// Status is the terminal state of a single asset download.
type Status string

const (
	// StatusCompleted means the transfer finished and the file size matches
	// the manifest.
	StatusCompleted Status = "Completed"

	// StatusAlreadyComplete means the file was already present with the
	// declared size and no request was made.
	StatusAlreadyComplete Status = "AlreadyComplete"

	// StatusSizeMismatch means the transfer finished but the file on disk
	// differs in size from the manifest.
	StatusSizeMismatch Status = "SizeMismatch"

	// StatusTransferFailed means a connection or HTTP error interrupted
	// the transfer. Any partial file is left on disk for a later resume.
	StatusTransferFailed Status = "TransferFailed"
)

// String returns the string representation of Status.
func (s Status) String() string {
	return string(s)
}

// OK reports whether the file is complete on disk.
func (s Status) OK() bool {
	return s == StatusCompleted || s == StatusAlreadyComplete
}

// Task is the state of one in-flight transfer.
//
// Tasks are created by the download engine per asset and discarded when the
// transfer ends.
type Task struct {
	Asset      Asset
	TargetPath string

	// Offset is the byte offset the transfer started writing at. Zero for
	// fresh downloads, the existing file size for resumes.
	Offset int64

	// Written is the number of bytes on disk, including Offset.
	Written int64

	// Total is the expected final size: Offset plus the response
	// Content-Length, or the declared size when the server omits it.
	Total int64

	StartedAt time.Time
}

// Progress returns the observation for the task at time now.
func (t *Task) Progress(now time.Time) Progress {
	return Progress{
		Asset:       t.Asset,
		Written:     t.Written,
		Total:       t.Total,
		Transferred: t.Written - t.Offset,
		Elapsed:     now.Sub(t.StartedAt),
	}
}

// Progress is a snapshot taken after each chunk of a transfer.
type Progress struct {
	Asset Asset

	// Written is the number of bytes on disk, including resumed bytes.
	Written int64

	// Total is the expected final size of the file.
	Total int64

	// Transferred is the number of bytes received in this attempt.
	Transferred int64

	// Elapsed is the wall-clock time since this attempt started.
	Elapsed time.Duration
}

// Fraction returns the completed share of Total in the range [0, 1] for
// well-behaved servers. Zero when Total is unknown.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Written) / float64(p.Total)
}

// Throughput returns the transfer rate of this attempt in bytes per second.
// A zero elapsed time yields zero.
func (p Progress) Throughput() float64 {
	secs := p.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(p.Transferred) / secs
}

// Outcome is the result of downloading one asset.
type Outcome struct {
	Asset  Asset
	Path   string
	Status Status

	// Size is the size of the file on disk when the download ended.
	Size int64

	// Resumed is set when the transfer continued an existing partial file.
	Resumed bool

	// Err holds the cause for StatusTransferFailed.
	Err error
}
