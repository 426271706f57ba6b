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

// Package report writes and reads XML descriptions of a PNG chunk stream.
package report

import (
	"encoding/xml"
	"fmt"
	"os"
	"os/user"
	"runtime"
	"time"

	"github.com/ostafen/apngkit/pkg/png"
)

const OutputVersion = "1.0"

// Header holds the document level elements written before the chunk list.
type Header struct {
	Version string
	Creator Creator
	Source  Source
}

// Creator describes the software and environment used to generate the report.
type Creator struct {
	XMLName              xml.Name `xml:"creator"`
	Package              string   `xml:"package"`
	Version              string   `xml:"version"`
	ExecutionEnvironment ExecEnv  `xml:"execution_environment"`
}

// ExecEnv provides information about the host where the report was created.
type ExecEnv struct {
	OS    string `xml:"os"`
	Arch  string `xml:"arch"`
	Host  string `xml:"host"`
	User  string `xml:"user"`
	Start string `xml:"start_time"`
}

// Source summarizes the inspected file and the outcome of parsing it.
type Source struct {
	XMLName  xml.Name    `xml:"source"`
	Filename string      `xml:"filename"`
	FileSize uint64      `xml:"filesize"`
	Format   string      `xml:"format"`
	Frames   int         `xml:"frames"`
	FPS      uint32      `xml:"fps,omitempty"`
	Error    *ErrorEntry `xml:"parse_error,omitempty"`
}

// ErrorEntry is the first parse error found in the file.
type ErrorEntry struct {
	Kind    string `xml:"kind,attr"`
	Offset  int    `xml:"offset,attr"`
	Message string `xml:",chardata"`
}

// ChunkObject describes a single chunk of the stream.
type ChunkObject struct {
	XMLName xml.Name `xml:"chunk"`
	Index   int      `xml:"index,attr"`
	Offset  int      `xml:"offset,attr"`
	Type    string   `xml:"type"`
	Class   string   `xml:"class"`
	Length  uint32   `xml:"length"`
	CRC     string   `xml:"crc"`
	Valid   bool     `xml:"crc_valid"`
}

// GetExecEnv retrieves runtime information to populate the ExecEnv struct.
func GetExecEnv(now time.Time) ExecEnv {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	name := "unknown"
	if u, err := user.Current(); err == nil {
		name = u.Username
	}

	return ExecEnv{
		OS:    runtime.GOOS,
		Arch:  runtime.GOARCH,
		Host:  host,
		User:  name,
		Start: now.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// NewSource builds the source element from a parse outcome.
func NewSource(filename string, size int, info png.Info) Source {
	src := Source{
		Filename: filename,
		FileSize: uint64(size),
		Format:   info.Format.String(),
		Frames:   info.Frames,
		FPS:      info.FPS,
	}
	if info.Err != nil {
		src.Error = &ErrorEntry{
			Kind:    info.Err.Kind.String(),
			Offset:  info.Err.Offset,
			Message: info.Err.Msg,
		}
	}
	return src
}

// Objects lists the chunks of data up to the first undecodable one.
func Objects(data []byte) []ChunkObject {
	var objs []ChunkObject
	for e := range png.Chunks(data) {
		if e.Err != nil {
			break
		}
		objs = append(objs, ChunkObject{
			Index:  len(objs),
			Offset: e.Offset,
			Type:   e.Chunk.Type,
			Class:  className(png.Classify(e.Chunk.Type)),
			Length: e.Chunk.Length,
			CRC:    fmt.Sprintf("%08X", e.Chunk.CRC),
			Valid:  e.Chunk.Valid(),
		})
	}
	return objs
}

func className(c png.Class) string {
	switch c {
	case png.ClassPNG:
		return "png"
	case png.ClassAPNG:
		return "apng"
	}
	return "invalid"
}
