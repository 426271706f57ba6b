// Package mmap exposes input files as read-only byte slices.
package mmap

import (
	"fmt"
	"os"
)

// File is a read-only view of a whole file.
type File struct {
	Data   []byte // file contents, valid until Close
	Path   string
	file   *os.File
	mapped bool
}

// Open maps the file at path into memory. Empty files yield an empty Data
// slice without creating a mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get file info for %q: %w", path, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%q is a directory", path)
	}

	size := fi.Size()
	if size == 0 {
		return &File{Data: []byte{}, Path: path, file: f}, nil
	}
	if int64(int(size)) != size {
		f.Close()
		return nil, fmt.Errorf("file %q is too large to map (%d bytes)", path, size)
	}

	data, mapped, err := mapFile(f, int(size))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file %q with length %d: %w", path, size, err)
	}

	return &File{
		Data:   data,
		Path:   path,
		file:   f,
		mapped: mapped,
	}, nil
}

// Size returns the length of the mapped contents.
func (mf *File) Size() int {
	return len(mf.Data)
}

// Close unmaps the memory region and closes the underlying file.
func (mf *File) Close() error {
	var err error
	if mf.mapped && mf.Data != nil {
		if err = unmapFile(mf.Data); err != nil {
			err = fmt.Errorf("failed to munmap: %w", err)
		}
	}
	mf.Data = nil
	mf.mapped = false

	if mf.file != nil {
		closeErr := mf.file.Close()
		mf.file = nil
		if closeErr != nil {
			if err != nil {
				return fmt.Errorf("%w (and close file: %v)", err, closeErr)
			}
			return fmt.Errorf("failed to close file: %w", closeErr)
		}
	}
	return err
}
