package ioutils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// FileSize returns the size of the regular file at path.
//
// A missing file is not an error: exists is false and size is zero.
// A directory at path is reported as an error, since it can never be
// completed by a download.
//
// Example:
//
//	size, exists, err := FileSize("/out/v1.0/tool.zip")
//	if exists && size == asset.Size {
//	    // nothing to do
//	}
func FileSize(path string) (size int64, exists bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if info.IsDir() {
		return 0, true, fmt.Errorf("%s is a directory", path)
	}
	return info.Size(), true, nil
}

// OpenAt opens path for writing so that the next write lands at offset.
//
// The file is created with mode 0644 if it doesn't exist. Anything after
// offset is discarded, so OpenAt(path, 0) behaves like os.Create and
// OpenAt(path, size) continues an existing file. An offset beyond the end of
// the file is rejected rather than leaving a hole.
//
// Parameters:
//   - path: File path to write to
//   - offset: Byte position of the first write
//
// The caller owns the returned file and must close it.
func OpenAt(path string, offset int64) (*os.File, error) {
	if offset < 0 {
		return nil, fmt.Errorf("negative offset %d", offset)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if offset > info.Size() {
		f.Close()
		return nil, fmt.Errorf("offset %d is past the end of %s (%d bytes)", offset, path, info.Size())
	}

	if err := f.Truncate(offset); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/downloads/v1.0")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
