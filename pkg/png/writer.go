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
package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/image/draw"
)

// DefaultSoftware is the producer identifier written into composed files.
const DefaultSoftware = "apngkit"

// creationTimeLayout renders timestamps as "Tue, 11 03 2025 14:36:48".
const creationTimeLayout = "Mon, 02 01 2006 15:04:05"

var (
	ErrNoFrames         = errors.New("png: no frames to compose")
	ErrInvalidFrameRate = errors.New("png: frame rate must be positive")
)

// Writer merges a sequence of PNG streams into a single APNG stream.
// The first appended frame provides the IHDR chunk and the ancillary chunks
// shared by the whole animation; later frames only contribute image data.
// A Writer is not safe for concurrent use.
type Writer struct {
	logger   *slog.Logger
	strict   bool
	now      func() time.Time
	software string

	header    Chunk
	width     uint32
	height    uint32
	ancillary []Chunk

	base  []byte
	extra [][]byte
}

// NewWriter returns a Writer configured with opts.
func NewWriter(opts ...Option) *Writer {
	c := newConfig(opts)
	return &Writer{
		logger:   c.logger,
		strict:   c.strict,
		now:      c.now,
		software: c.software,
	}
}

// Append adds a frame encoded as a PNG stream. A frame whose chunks fail
// to decode keeps the chunks read before the failure; a frame without image
// data is dropped. In strict mode both conditions are returned as errors
// and the frame is left out entirely.
func (w *Writer) Append(data []byte) error {
	var (
		header    Chunk
		ancillary []Chunk
		payload   []byte
		hasIDAT   bool
	)

	if w.strict && (len(data) < len(Signature) || string(data[:len(Signature)]) != Signature) {
		return newParseError(KindSignature, 0, "no PNG signature found")
	}

	for off := len(Signature); ; {
		c, next, err := DecodeChunk(data, off)
		if err == io.EOF {
			break
		}
		if err != nil {
			if w.strict {
				return err
			}
			w.logger.Warn("truncating appended frame", "frame", w.Count(), "err", err)
			break
		}
		off = next

		switch {
		case c.Type == TypeIHDR:
			header = cloneChunk(c)
		case c.Type == TypeIDAT:
			payload = append(payload, c.Data...)
			hasIDAT = true
		case c.Type == TypeIEND, Classify(c.Type) == ClassAPNG:
			// control chunks are regenerated by Compose
		default:
			ancillary = append(ancillary, cloneChunk(c))
		}
	}

	if !hasIDAT {
		if w.strict {
			return newParseError(KindNoIDAT, 0, "no IDAT chunk found")
		}
		w.logger.Warn("dropping frame without image data", "frame", w.Count())
		return nil
	}

	if len(w.base) > 0 {
		w.extra = append(w.extra, payload)
		return nil
	}

	if w.header.Type == "" {
		if header.Type == "" {
			if w.strict {
				return newParseError(KindNoIHDR, len(Signature), "no IHDR chunk found")
			}
			w.logger.Warn("dropping first frame without IHDR chunk")
			return nil
		}

		width, height, err := Dimensions(header.Data)
		if err != nil {
			if w.strict {
				return err
			}
			w.logger.Warn("dropping first frame with malformed IHDR chunk", "err", err)
			return nil
		}
		w.header = header
		w.width, w.height = width, height
		w.ancillary = ancillary
	}
	w.base = payload
	return nil
}

// AppendImage encodes img as PNG and appends it.
func (w *Writer) AppendImage(img image.Image) error {
	data, err := EncodeImage(img)
	if err != nil {
		return err
	}
	return w.Append(data)
}

// AppendFile reads the PNG file at path and appends it.
func (w *Writer) AppendFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if w.strict {
			return err
		}
		w.logger.Warn("dropping unreadable frame", "path", path, "err", err)
		return nil
	}
	return w.Append(data)
}

// Reset drops all frames. The IHDR and ancillary chunks captured from the
// first frame are kept, so the Writer can compose another animation with the
// same canvas.
func (w *Writer) Reset() {
	w.base = nil
	w.extra = nil
}

// Count returns the number of frames appended so far.
func (w *Writer) Count() int {
	n := len(w.extra)
	if len(w.base) > 0 {
		n++
	}
	return n
}

// Compose returns the APNG stream made of all appended frames, played at fps
// frames per second in an infinite loop.
func (w *Writer) Compose(fps int) ([]byte, error) {
	if fps <= 0 {
		return nil, ErrInvalidFrameRate
	}
	if w.header.Type == "" || len(w.base) == 0 {
		return nil, ErrNoFrames
	}

	created, err := TextChunk("Creation time", w.now().Format(creationTimeLayout))
	if err != nil {
		return nil, err
	}
	software, err := TextChunk("Software", w.software)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, w.estimateSize())
	buf = append(buf, Signature...)
	buf = AppendChunk(buf, w.header, false)
	for _, c := range w.ancillary {
		buf = AppendChunk(buf, c, false)
	}
	buf = AppendChunk(buf, created, false)
	buf = AppendChunk(buf, software, false)

	actl := AnimationControl{Frames: uint32(1 + len(w.extra)), Plays: 0}
	buf = AppendChunk(buf, actl.Chunk(), false)

	buf = AppendChunk(buf, NewFrameControl(-1, w.width, w.height, fps).Chunk(), false)
	buf = appendImageData(buf, w.base)

	for i, payload := range w.extra {
		buf = AppendChunk(buf, NewFrameControl(i, w.width, w.height, fps).Chunk(), false)

		data := make([]byte, 0, 4+len(payload))
		data = binary.BigEndian.AppendUint32(data, uint32(2*i+2))
		data = append(data, payload...)
		buf = AppendChunk(buf, NewChunk(TypeFDAT, data), false)
	}

	w.logger.Debug("composed animation", "frames", w.Count(), "fps", fps, "bytes", len(buf))
	return AppendChunk(buf, EndChunk(), false), nil
}

// ComposeTo composes the animation and writes it to out.
func (w *Writer) ComposeTo(out io.Writer, fps int) (int64, error) {
	data, err := w.Compose(fps)
	if err != nil {
		return 0, err
	}
	n, err := out.Write(data)
	return int64(n), err
}

func (w *Writer) estimateSize() int {
	size := len(Signature) + w.header.Size() + 3*chunkOverhead + actlSize + fctlSize + len(w.base)
	for _, c := range w.ancillary {
		size += c.Size()
	}
	size += chunkOverhead * (len(w.base)/MaxImageDataChunk + 1)
	for _, p := range w.extra {
		size += 2*chunkOverhead + fctlSize + 4 + len(p)
	}
	return size + 128
}

// EncodeImage encodes img as a non-interlaced 8-bit PNG stream without
// compression, so that equal bitmaps always produce equal bytes.
func EncodeImage(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("png: nil image")
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.NoCompression}
	if err := enc.Encode(&buf, toNRGBA(img)); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok && m.Bounds().Min == (image.Point{}) {
		return m
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
