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
	"encoding/binary"
	"io"
)

// Signature is the fixed 8-byte prefix of every PNG stream.
const Signature = "\x89PNG\r\n\x1a\n"

// chunkOverhead is the number of bytes surrounding a chunk payload:
// 4 bytes length, 4 bytes type and 4 bytes CRC.
const chunkOverhead = 12

const (
	TypeIHDR = "IHDR"
	TypePLTE = "PLTE"
	TypeIDAT = "IDAT"
	TypeIEND = "IEND"
	TypeTEXT = "tEXt"
	TypeACTL = "acTL"
	TypeFCTL = "fcTL"
	TypeFDAT = "fdAT"
)

// Class tells which recognized chunk set a type code belongs to.
type Class int

const (
	ClassInvalid Class = iota
	ClassPNG
	ClassAPNG
)

var pngChunks = map[string]struct{}{
	// critical
	"IHDR": {}, "PLTE": {}, "IDAT": {}, "IEND": {},
	// ancillary
	"tRNS": {}, "cHRM": {}, "gAMA": {}, "iCCP": {}, "sBIT": {}, "sRGB": {},
	"cICP": {}, "mDCv": {}, "cLLi": {}, "tEXt": {}, "zTXt": {}, "iTXt": {},
	"bKGD": {}, "hIST": {}, "pHYs": {}, "sPLT": {}, "eXIf": {}, "tIME": {},
	// registered extensions
	"oFFs": {}, "pCAL": {}, "sCAL": {}, "sTER": {}, "gIFg": {}, "gIFx": {},
	"gIFt": {}, "dSIG": {},
}

var apngChunks = map[string]struct{}{
	TypeACTL: {}, TypeFCTL: {}, TypeFDAT: {},
}

// Classify reports whether typ is a recognized PNG or APNG chunk name.
// Names are case sensitive.
func Classify(typ string) Class {
	if _, ok := pngChunks[typ]; ok {
		return ClassPNG
	}
	if _, ok := apngChunks[typ]; ok {
		return ClassAPNG
	}
	return ClassInvalid
}

// Chunk is a length-prefixed, type-tagged, checksummed PNG record.
type Chunk struct {
	Length uint32
	Type   string
	Data   []byte
	CRC    uint32
}

// NewChunk builds a chunk with its length and CRC filled in.
func NewChunk(typ string, data []byte) Chunk {
	return Chunk{
		Length: uint32(len(data)),
		Type:   typ,
		Data:   data,
		CRC:    chunkChecksum(typ, data),
	}
}

// Checksum computes the CRC over the chunk type and payload.
func (c Chunk) Checksum() uint32 {
	return chunkChecksum(c.Type, c.Data)
}

// Valid reports whether the stored length and CRC agree with the content.
func (c Chunk) Valid() bool {
	return len(c.Type) == 4 &&
		int(c.Length) == len(c.Data) &&
		c.CRC == c.Checksum()
}

// Size returns the number of bytes the chunk occupies once encoded.
func (c Chunk) Size() int {
	return chunkOverhead + len(c.Data)
}

// DecodeChunk decodes the chunk starting at offset and returns it together
// with the offset of the following chunk. It returns io.EOF when offset is
// at the end of buf, and a *ParseError when the chunk is malformed.
func DecodeChunk(buf []byte, offset int) (Chunk, int, error) {
	if offset >= len(buf) {
		return Chunk{}, offset, io.EOF
	}

	if len(buf)-offset < 4 {
		return Chunk{}, offset, newParseError(KindInvalidSize, offset, "invalid chunk size at %d", offset)
	}

	length := binary.BigEndian.Uint32(buf[offset : offset+4])
	if uint64(offset)+uint64(length)+chunkOverhead > uint64(len(buf)) {
		return Chunk{}, offset, newParseError(KindInvalidSize, offset, "invalid chunk size at %d", offset)
	}

	dataStart := offset + 8
	dataEnd := dataStart + int(length)

	c := Chunk{
		Length: length,
		Type:   string(buf[offset+4 : dataStart]),
		Data:   buf[dataStart:dataEnd:dataEnd],
		CRC:    binary.BigEndian.Uint32(buf[dataEnd : dataEnd+4]),
	}

	if Classify(c.Type) == ClassInvalid {
		return Chunk{}, offset, newParseError(KindChunkName, offset, "invalid chunk name %q at %d", c.Type, offset)
	}

	if c.CRC != c.Checksum() {
		return Chunk{}, offset, newParseError(KindCRC, offset, "invalid CRC value for chunk %q at %d", c.Type, offset)
	}
	return c, dataEnd + 4, nil
}

// AppendChunk appends the encoded chunk to dst. When recompute is false the
// stored CRC is emitted verbatim.
func AppendChunk(dst []byte, c Chunk, recompute bool) []byte {
	crc := c.CRC
	if recompute {
		crc = c.Checksum()
	}

	dst = binary.BigEndian.AppendUint32(dst, uint32(len(c.Data)))
	dst = append(dst, c.Type...)
	dst = append(dst, c.Data...)
	return binary.BigEndian.AppendUint32(dst, crc)
}

// EncodeChunk returns the wire encoding of c.
func EncodeChunk(c Chunk, recompute bool) []byte {
	return AppendChunk(make([]byte, 0, c.Size()), c, recompute)
}

// ChunkEntry is a chunk yielded by Chunks, along with its position.
type ChunkEntry struct {
	Offset int
	Chunk  Chunk
	Err    error
}

// Chunks walks the chunk stream following the signature. Iteration stops at
// the end of data or after yielding the first entry whose Err is set.
func Chunks(data []byte) func(yield func(ChunkEntry) bool) {
	return func(yield func(ChunkEntry) bool) {
		if len(data) < len(Signature) || string(data[:len(Signature)]) != Signature {
			yield(ChunkEntry{Err: newParseError(KindSignature, 0, "no PNG signature found")})
			return
		}

		for off := len(Signature); ; {
			c, next, err := DecodeChunk(data, off)
			if err == io.EOF {
				return
			}
			if !yield(ChunkEntry{Offset: off, Chunk: c, Err: err}) || err != nil {
				return
			}
			off = next
		}
	}
}
