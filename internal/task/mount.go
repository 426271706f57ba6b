// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package task

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ostafen/apngkit/internal/fuse"
	"github.com/ostafen/apngkit/internal/logger"
	"github.com/ostafen/apngkit/internal/mmap"
	"github.com/ostafen/apngkit/pkg/png"
)

type MountOptions struct {
	LogOptions
	Mountpoint string // defaults to the file name without extension plus "_frames"
	Template   string
}

// Mount exposes the frames of the file at path as a read-only directory and
// blocks until it is unmounted.
func Mount(path string, opts MountOptions, out *logger.Logger) error {
	template := opts.Template
	if template == "" {
		template = DefaultTemplate
	}

	mountpoint := opts.Mountpoint
	if mountpoint == "" {
		mountpoint = DefaultMountpoint(path)
	}

	slogger, logFile, err := setupLogger(opts.LogOptions)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	f, err := mmap.Open(path)
	if err != nil {
		return err
	}

	r := png.NewReader(png.WithLogger(slogger.With("file", path)))
	frames := r.Demux(f.Data)
	info := r.Info()

	// frames are self-contained copies, the mapping is no longer needed
	if err := f.Close(); err != nil {
		return err
	}

	if !info.OK() {
		if info.Kind() != png.KindNoIEND {
			return fmt.Errorf("failed to demux %q: %w", path, info.Err)
		}
		out.Warnf("%s: %s, frames may be incomplete", path, info.Err.Msg)
	}
	return fuse.Mount(absPath(mountpoint), frames, template, out)
}

// DefaultMountpoint derives a mountpoint name from an input file name.
func DefaultMountpoint(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_frames"
}
