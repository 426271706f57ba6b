package png

import (
	"errors"
	"fmt"
	"strings"
)

// Format is the container type detected while parsing.
type Format int

const (
	FormatInvalid Format = iota
	FormatPNG
	FormatAPNG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatAPNG:
		return "APNG"
	default:
		return "Invalid"
	}
}

// Kind classifies a parse failure.
type Kind int

const (
	KindNone Kind = iota
	KindSignature
	KindNoIHDR
	KindNoIDAT
	KindNoIEND
	KindNoACTL
	KindCRC
	KindChunkName
	KindInvalidSize
)

var (
	ErrSignature   = errors.New("png: missing signature")
	ErrNoIHDR      = errors.New("png: missing IHDR chunk")
	ErrNoIDAT      = errors.New("png: missing IDAT chunk")
	ErrNoIEND      = errors.New("png: missing IEND chunk")
	ErrNoACTL      = errors.New("png: missing acTL chunk")
	ErrCRC         = errors.New("png: CRC mismatch")
	ErrChunkName   = errors.New("png: unrecognized chunk name")
	ErrInvalidSize = errors.New("png: invalid chunk size")
)

var kindErrors = map[Kind]error{
	KindSignature:   ErrSignature,
	KindNoIHDR:      ErrNoIHDR,
	KindNoIDAT:      ErrNoIDAT,
	KindNoIEND:      ErrNoIEND,
	KindNoACTL:      ErrNoACTL,
	KindCRC:         ErrCRC,
	KindChunkName:   ErrChunkName,
	KindInvalidSize: ErrInvalidSize,
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSignature:
		return "signature"
	case KindNoIHDR:
		return "no IHDR"
	case KindNoIDAT:
		return "no IDAT"
	case KindNoIEND:
		return "no IEND"
	case KindNoACTL:
		return "no acTL"
	case KindCRC:
		return "CRC"
	case KindChunkName:
		return "chunk name"
	case KindInvalidSize:
		return "invalid size"
	}
	return "unknown"
}

// ParseError describes the first defect found in a chunk stream.
type ParseError struct {
	Kind   Kind
	Msg    string
	Offset int // byte offset where the defect was detected
}

func newParseError(kind Kind, offset int, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:   kind,
		Msg:    fmt.Sprintf(format, args...),
		Offset: offset,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("png: %s (offset 0x%x)", e.Msg, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return kindErrors[e.Kind]
}

// Info accumulates the outcome of parsing one file.
type Info struct {
	Format Format
	FPS    uint32
	Frames int
	Err    *ParseError
}

// OK reports whether no error was recorded.
func (i Info) OK() bool {
	return i.Err == nil
}

// Kind returns the kind of the recorded error, or KindNone.
func (i Info) Kind() Kind {
	if i.Err == nil {
		return KindNone
	}
	return i.Err.Kind
}

// Error returns the recorded error as an error value, nil when parsing succeeded.
func (i Info) Error() error {
	if i.Err == nil {
		return nil
	}
	return i.Err
}

func (i *Info) setError(err *ParseError) {
	i.Err = err
}

func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Type: %s\n", i.Format)
	fmt.Fprintf(&sb, "Frames: %d\n", i.Frames)
	if i.Format == FormatAPNG {
		fmt.Fprintf(&sb, "FPS: %d\n", i.FPS)
	}
	if i.Err != nil {
		fmt.Fprintf(&sb, "Parse error: %s (0x%x)\n", i.Err.Msg, i.Err.Offset)
	}
	return sb.String()
}
