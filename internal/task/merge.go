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
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ostafen/apngkit/internal/env"
	"github.com/ostafen/apngkit/internal/logger"
	"github.com/ostafen/apngkit/internal/mmap"
	"github.com/ostafen/apngkit/pkg/pbar"
	"github.com/ostafen/apngkit/pkg/png"
	fmtutil "github.com/ostafen/apngkit/pkg/util/format"
	osutils "github.com/ostafen/apngkit/pkg/util/os"
)

var ErrNoInputs = errors.New("no input frames found")

type MergeOptions struct {
	LogOptions
	Inputs   []string // files or directories of .png files
	Output   string
	FPS      int
	Strict   bool
	Progress io.Writer // nil disables the progress bar
	Now      func() time.Time
}

// Merge composes the input frames, in order, into a single APNG file.
func Merge(opts MergeOptions, out *logger.Logger) (int, error) {
	if opts.FPS <= 0 {
		return 0, fmt.Errorf("invalid frame rate %d: %w", opts.FPS, png.ErrInvalidFrameRate)
	}

	var paths []string
	for _, in := range opts.Inputs {
		files, err := osutils.ListFiles(in, ".png")
		if err != nil {
			return 0, err
		}
		paths = append(paths, files...)
	}
	if len(paths) == 0 {
		return 0, ErrNoInputs
	}

	slogger, logFile, err := setupLogger(opts.LogOptions)
	if err != nil {
		return 0, err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	out.Infof("Merging %d files into %s", len(paths), opts.Output)
	out.Field("FPS", opts.FPS)
	printLogTarget(out, opts.LogOptions)

	writerOpts := []png.Option{
		png.WithLogger(slogger),
		png.WithStrict(opts.Strict),
		png.WithSoftware(env.Software()),
	}
	if opts.Now != nil {
		writerOpts = append(writerOpts, png.WithClock(opts.Now))
	}
	w := png.NewWriter(writerOpts...)

	var bar *pbar.ProgressBarState
	if opts.Progress != nil {
		bar = pbar.NewProgressBarState(opts.Progress, "Reading", len(paths))
	}

	start := time.Now()
	for _, path := range paths {
		size, err := appendFrame(w, path, opts.Strict)
		if err != nil {
			return 0, fmt.Errorf("failed to append %q: %w", path, err)
		}
		if bar != nil {
			bar.Add(size)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	if dropped := len(paths) - w.Count(); dropped > 0 {
		out.Warnf("%d of %d frames were dropped, see the log for details", dropped, len(paths))
	}

	data, err := w.Compose(opts.FPS)
	if err != nil {
		return 0, err
	}
	if err := writeFile(opts.Output, data); err != nil {
		return 0, err
	}

	out.Info("Merge completed!")
	out.Field("Frames", w.Count())
	out.Field("Total data", fmtutil.FormatBytes(int64(len(data))))
	out.Field("Duration", fmtutil.FormatDurationHMS(time.Since(start)))
	return w.Count(), nil
}

func appendFrame(w *png.Writer, path string, strict bool) (int, error) {
	f, err := mmap.Open(path)
	if err != nil {
		if strict {
			return 0, err
		}
		// the writer logs and drops unreadable files in lenient mode
		return 0, w.AppendFile(path)
	}
	defer f.Close()

	return f.Size(), w.Append(f.Data)
}
