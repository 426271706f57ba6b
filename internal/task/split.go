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
	"io"
	"path/filepath"
	"time"

	"github.com/ostafen/apngkit/internal/logger"
	"github.com/ostafen/apngkit/internal/mmap"
	"github.com/ostafen/apngkit/pkg/pbar"
	"github.com/ostafen/apngkit/pkg/png"
	fmtutil "github.com/ostafen/apngkit/pkg/util/format"
	osutils "github.com/ostafen/apngkit/pkg/util/os"
)

type SplitOptions struct {
	LogOptions
	OutputDir string
	Template  string
	Progress  io.Writer // nil disables the progress bar
}

// Split writes every frame of the file at path as a standalone PNG file.
// A missing IEND chunk is reported as a warning; any other parse error aborts
// before anything is written.
func Split(path string, opts SplitOptions, out *logger.Logger) (png.Info, error) {
	template := opts.Template
	if template == "" {
		template = DefaultTemplate
	}

	slogger, logFile, err := setupLogger(opts.LogOptions)
	if err != nil {
		return png.Info{}, err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	f, err := mmap.Open(path)
	if err != nil {
		return png.Info{}, err
	}
	defer f.Close()

	out.Info("Starting split operation...")
	out.Field("Source", absPath(path))
	out.Field("Destination", absPath(opts.OutputDir))
	printLogTarget(out, opts.LogOptions)

	start := time.Now()

	r := png.NewReader(png.WithLogger(slogger.With("file", path)))
	frames := r.Demux(f.Data)
	info := r.Info()

	switch info.Kind() {
	case png.KindNone:
	case png.KindNoIEND:
		out.Warnf("%s: %s, frames may be incomplete", path, info.Err.Msg)
	default:
		slogger.Error("demux failed", "err", info.Err)
		return info, fmt.Errorf("failed to split %q: %w", path, info.Err)
	}

	if _, err := osutils.EnsureDir(opts.OutputDir, false); err != nil {
		return info, err
	}

	var bar *pbar.ProgressBarState
	if opts.Progress != nil {
		bar = pbar.NewProgressBarState(opts.Progress, "Writing", len(frames))
	}

	var written int64
	for i, frame := range frames {
		name := filepath.Join(opts.OutputDir, png.FrameName(template, i, len(frames)))
		if err := writeFile(name, frame); err != nil {
			return info, err
		}
		slogger.Debug("frame written", "index", i, "path", name, "size", len(frame))

		written += int64(len(frame))
		if bar != nil {
			bar.Add(len(frame))
		}
	}
	if bar != nil {
		bar.Finish()
	}

	out.Info("Split completed!")
	out.Lines(info.String())
	out.Field("Total data", fmtutil.FormatBytes(written))
	out.Field("Duration", fmtutil.FormatDurationHMS(time.Since(start)))
	return info, nil
}
