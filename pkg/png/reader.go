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
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Reader splits an APNG stream into standalone PNG streams, one per frame.
// A Reader is not safe for concurrent use; every Demux call starts from a
// clean state.
type Reader struct {
	logger *slog.Logger

	info Info

	header    Chunk
	idat      []byte
	ancillary []Chunk
	frames    []Chunk

	seenACTL bool
	seenIEND bool
}

// NewReader returns a Reader configured with opts.
func NewReader(opts ...Option) *Reader {
	c := newConfig(opts)
	return &Reader{logger: c.logger}
}

// Info returns the diagnostics of the last Demux call.
func (r *Reader) Info() Info {
	return r.info
}

// Reset drops all accumulated chunks and diagnostics.
func (r *Reader) Reset() {
	r.info = Info{}
	r.header = Chunk{}
	r.idat = nil
	r.ancillary = nil
	r.frames = nil
	r.seenACTL = false
	r.seenIEND = false
}

func (r *Reader) fail(err *ParseError) {
	if r.info.Err != nil {
		return
	}
	r.logger.Debug("parse error", "kind", err.Kind, "offset", err.Offset, "msg", err.Msg)
	r.info.setError(err)
}

func (r *Reader) failWith(err error) {
	var perr *ParseError
	if errors.As(err, &perr) {
		r.fail(perr)
	}
}

// Demux parses data and returns one self-contained PNG stream per frame.
// The result is empty whenever a structural error is found, except for a
// missing IEND chunk, which is reported through Info while frames are still
// returned. Callers must inspect Info to tell an error from an empty result.
func (r *Reader) Demux(data []byte) [][]byte {
	r.Reset()

	r.parse(data)

	r.info.Frames = len(r.frames)
	if len(r.idat) > 0 {
		r.info.Frames++
	}

	if r.info.OK() {
		r.validate()
	}

	if !r.info.OK() && r.info.Kind() != KindNoIEND {
		return nil
	}
	return r.assemble()
}

func (r *Reader) parse(data []byte) {
	r.info.Format = FormatPNG

	if len(data) < len(Signature) || string(data[:len(Signature)]) != Signature {
		r.info.Format = FormatInvalid
		r.fail(newParseError(KindSignature, 0, "no PNG signature found"))
		return
	}

	off := len(Signature)

	hdr, next, err := DecodeChunk(data, off)
	if err != nil && err != io.EOF {
		r.failWith(err)
		return
	}
	if err == nil && Classify(hdr.Type) == ClassAPNG {
		r.info.Format = FormatAPNG
	}
	if err == io.EOF || hdr.Type != TypeIHDR {
		r.fail(newParseError(KindNoIHDR, off, "no IHDR chunk found at %d", off))
		return
	}
	r.header = cloneChunk(hdr)

	for off = next; ; off = next {
		c, n, err := DecodeChunk(data, off)
		if err == io.EOF {
			return
		}
		if err != nil {
			r.failWith(err)
			return
		}
		next = n

		if Classify(c.Type) == ClassAPNG && r.info.Format != FormatAPNG {
			r.info.Format = FormatAPNG
		}

		if !r.bucket(c, off) {
			return
		}
	}
}

func (r *Reader) bucket(c Chunk, off int) bool {
	r.logger.Debug("chunk", "type", c.Type, "offset", off, "length", c.Length)

	switch c.Type {
	case TypeIDAT:
		r.idat = append(r.idat, c.Data...)
	case TypeFDAT:
		if len(c.Data) < 4 {
			r.fail(newParseError(KindInvalidSize, off, "fdAT chunk at %d has no sequence number", off))
			return false
		}
		r.frames = append(r.frames, cloneChunk(c))
	case TypeFCTL:
		fctl, err := ParseFrameControl(c.Data)
		if err != nil {
			r.fail(newParseError(KindInvalidSize, off, "invalid fcTL chunk at %d: %s", off, err))
			return false
		}
		r.info.FPS = fctl.FPS()
	case TypeACTL:
		r.seenACTL = true
	case TypeIEND:
		r.seenIEND = true
	default:
		r.ancillary = append(r.ancillary, cloneChunk(c))
	}
	return true
}

func (r *Reader) validate() {
	if len(r.idat) == 0 {
		r.fail(newParseError(KindNoIDAT, 0, "no IDAT chunk found"))
		return
	}
	if r.info.Format == FormatAPNG && !r.seenACTL {
		r.fail(newParseError(KindNoACTL, 0, "no acTL chunk found"))
		return
	}
	if !r.seenIEND {
		r.fail(newParseError(KindNoIEND, 0, "no IEND chunk found"))
	}
}

func (r *Reader) assemble() [][]byte {
	out := make([][]byte, 0, r.info.Frames)
	if len(r.idat) > 0 {
		out = append(out, r.frame(r.idat))
	}
	for _, fdat := range r.frames {
		out = append(out, r.frame(fdat.Data[4:]))
	}
	return out
}

func (r *Reader) frame(payload []byte) []byte {
	size := len(Signature) + r.header.Size() + len(payload) + chunkOverhead
	for _, c := range r.ancillary {
		size += c.Size()
	}
	size += chunkOverhead * (len(payload)/MaxImageDataChunk + 1)

	buf := make([]byte, 0, size)
	buf = append(buf, Signature...)
	buf = AppendChunk(buf, r.header, false)
	for _, c := range r.ancillary {
		buf = AppendChunk(buf, c, false)
	}
	buf = appendImageData(buf, payload)
	return AppendChunk(buf, EndChunk(), false)
}

// DemuxFile reads the file at path and demultiplexes it.
func (r *Reader) DemuxFile(path string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return r.Demux(data), nil
}

// DemuxImages demultiplexes data and decodes every frame into a bitmap.
func (r *Reader) DemuxImages(data []byte) ([]image.Image, error) {
	frames := r.Demux(data)
	if !r.info.OK() && r.info.Kind() != KindNoIEND {
		return nil, r.info.Err
	}
	return DecodeFrames(frames)
}

// DecodeFrames decodes standalone PNG streams into bitmaps.
func DecodeFrames(frames [][]byte) ([]image.Image, error) {
	images := make([]image.Image, 0, len(frames))
	for i, f := range frames {
		img, err := png.Decode(bytes.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("failed to decode frame %d: %w", i, err)
		}
		images = append(images, img)
	}
	return images, nil
}

// FrameName expands template for the frame at index. The first "%s" in
// template is replaced by the index, zero padded to the width of the
// largest index in a sequence of total frames.
func FrameName(template string, index, total int) string {
	width := len(strconv.Itoa(max(total-1, 0)))
	num := fmt.Sprintf("%0*d", width, index)
	return strings.Replace(template, "%s", num, 1)
}

func cloneChunk(c Chunk) Chunk {
	c.Data = bytes.Clone(c.Data)
	if c.Data == nil {
		c.Data = []byte{}
	}
	return c
}
