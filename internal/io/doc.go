// Package ioutils provides the file system operations used by the
// download engine.
//
// This package contains functions for:
//   - Probing the size of a partially downloaded file
//   - Opening a target file for writing at a byte offset
//   - Directory creation
//
// # Resuming
//
// A download either starts fresh (offset 0) or continues an existing file at
// its current size. Both cases go through OpenAt:
//
//	size, exists, err := ioutils.FileSize(path)
//	f, err := ioutils.OpenAt(path, size) // appends after the existing bytes
//	defer f.Close()
//
//	f, err = ioutils.OpenAt(path, 0) // truncates and starts over
package ioutils
