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
package pbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ostafen/apngkit/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

const barLength = 20

// ProgressBarState tracks frames processed out of a known total.
type ProgressBarState struct {
	out             io.Writer
	Label           string
	TotalFrames     int
	ProcessedFrames int
	ProcessedBytes  int64
	StartTime       time.Time
	LastUpdateTime  time.Time
}

func NewProgressBarState(out io.Writer, label string, totalFrames int) *ProgressBarState {
	return &ProgressBarState{
		out:         out,
		Label:       label,
		TotalFrames: totalFrames,
		StartTime:   time.Now(),
	}
}

// Add records one more processed frame of size bytes and redraws the bar.
func (pbs *ProgressBarState) Add(size int) {
	pbs.ProcessedFrames++
	pbs.ProcessedBytes += int64(size)
	pbs.Render(pbs.ProcessedFrames == pbs.TotalFrames)
}

func (pbs *ProgressBarState) Render(force bool) {
	if !force && time.Since(pbs.LastUpdateTime) < MinRefreshRate {
		return
	}
	pbs.LastUpdateTime = time.Now()

	percentage := 100.0
	if pbs.TotalFrames > 0 {
		percentage = float64(pbs.ProcessedFrames) / float64(pbs.TotalFrames) * 100
	}

	filledLen := min(int(barLength*percentage/100), barLength)
	var bar string
	if filledLen == barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	// \r rewinds to the start of the line; trailing spaces clear leftovers of a longer line
	fmt.Fprintf(pbs.out, "\r[INFO] %s: [%s] %3.0f%% (%d/%d frames) | %s | %s    ",
		pbs.Label,
		bar,
		percentage,
		pbs.ProcessedFrames,
		pbs.TotalFrames,
		format.FormatBytes(pbs.ProcessedBytes),
		format.FormatDurationHMS(time.Since(pbs.StartTime)))
}

func (pbs *ProgressBarState) Finish() {
	fmt.Fprintln(pbs.out)
}
