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

// crcPoly is the reversed representation of the ISO-3309 polynomial.
const crcPoly = 0xEDB88320

var crcTable = makeCRCTable()

func makeCRCTable() [256]uint32 {
	var t [256]uint32
	for i := range t {
		c := uint32(i)
		for range 8 {
			if c&1 != 0 {
				c = (c >> 1) ^ crcPoly
			} else {
				c >>= 1
			}
		}
		t[i] = c
	}
	return t
}

// UpdateChecksum feeds p into a running CRC register. The register must be
// seeded with 0xFFFFFFFF and the final value inverted by the caller.
func UpdateChecksum(crc uint32, p []byte) uint32 {
	for _, b := range p {
		crc = (crc >> 8) ^ crcTable[byte(crc)^b]
	}
	return crc
}

// Checksum returns the CRC32 of p as stored in PNG chunk trailers.
func Checksum(p []byte) uint32 {
	return UpdateChecksum(0xFFFFFFFF, p) ^ 0xFFFFFFFF
}

func chunkChecksum(typ string, data []byte) uint32 {
	crc := UpdateChecksum(0xFFFFFFFF, []byte(typ))
	return UpdateChecksum(crc, data) ^ 0xFFFFFFFF
}
