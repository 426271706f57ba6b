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
	"os"
	"time"

	"github.com/ostafen/apngkit/internal/env"
	"github.com/ostafen/apngkit/internal/logger"
	"github.com/ostafen/apngkit/internal/mmap"
	"github.com/ostafen/apngkit/pkg/png"
	"github.com/ostafen/apngkit/pkg/report"
	fmtutil "github.com/ostafen/apngkit/pkg/util/format"
)

type InspectOptions struct {
	LogOptions
	ReportFile string // empty disables the XML report
	Now        func() time.Time
}

// Inspect parses the file at path and prints its summary. Unlike Split, a
// parse error is part of the result rather than a failure of the task.
func Inspect(path string, opts InspectOptions, out *logger.Logger) (png.Info, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
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

	r := png.NewReader(png.WithLogger(slogger.With("file", path)))
	frames := r.Demux(f.Data)
	info := r.Info()

	var frameBytes int64
	for _, frame := range frames {
		frameBytes += int64(len(frame))
	}

	out.Field("Source", absPath(path))
	out.Field("Size", fmtutil.FormatBytes(int64(f.Size())))
	out.Lines(info.String())
	if len(frames) > 0 {
		out.Field("Demuxed size", fmtutil.FormatBytes(frameBytes))
		out.Field("Overhead", fmtutil.FormatRatio(frameBytes-int64(f.Size()), int64(f.Size())))
	}

	if opts.ReportFile == "" {
		return info, nil
	}

	if err := writeReport(opts.ReportFile, path, f.Data, info, now()); err != nil {
		return info, err
	}
	out.Field("Report saved to", absPath(opts.ReportFile))
	return info, nil
}

func writeReport(reportFile, path string, data []byte, info png.Info, now time.Time) error {
	outFile, err := os.Create(reportFile)
	if err != nil {
		return err
	}
	defer outFile.Close()

	w := report.NewWriter(outFile)
	err = w.WriteHeader(report.Header{
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(now),
		},
		Source: report.NewSource(path, len(data), info),
	})
	if err != nil {
		return err
	}

	for _, obj := range report.Objects(data) {
		if err := w.WriteChunk(obj); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return outFile.Close()
}
