package png

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

const (
	actlSize = 8
	fctlSize = 26
)

// Dispose and blend operations of a frame control chunk.
const (
	DisposeOpNone uint8 = 0
	BlendOpSource uint8 = 0
)

// AnimationControl is the payload of an acTL chunk.
type AnimationControl struct {
	Frames uint32
	Plays  uint32 // 0 means infinite looping
}

func (a AnimationControl) Chunk() Chunk {
	data := make([]byte, 0, actlSize)
	data = binary.BigEndian.AppendUint32(data, a.Frames)
	data = binary.BigEndian.AppendUint32(data, a.Plays)
	return NewChunk(TypeACTL, data)
}

// FrameControl is the payload of an fcTL chunk.
type FrameControl struct {
	Sequence  uint32
	Width     uint32
	Height    uint32
	XOffset   uint32
	YOffset   uint32
	DelayNum  uint16
	DelayDen  uint16
	DisposeOp uint8
	BlendOp   uint8
}

// NewFrameControl returns the control record of the animation frame at index.
// Index -1 denotes the default image, which carries sequence number 0.
//
// The delay is stored as 1000/fps milliseconds, truncated. Readers recover the
// rate as 1000/(1000/fps), so rates which do not divide 1000 drift slightly.
func NewFrameControl(index int, width, height uint32, fps int) FrameControl {
	var seq uint32
	if index >= 0 {
		seq = uint32(2*index + 1)
	}

	return FrameControl{
		Sequence:  seq,
		Width:     width,
		Height:    height,
		DelayNum:  uint16(1000 / fps),
		DelayDen:  1000,
		DisposeOp: DisposeOpNone,
		BlendOp:   BlendOpSource,
	}
}

// FPS returns the frame rate encoded by the delay fields, 0 if unknown.
func (f FrameControl) FPS() uint32 {
	if f.DelayNum == 0 {
		return 0
	}
	return uint32(f.DelayDen) / uint32(f.DelayNum)
}

func (f FrameControl) Chunk() Chunk {
	data := make([]byte, 0, fctlSize)
	data = binary.BigEndian.AppendUint32(data, f.Sequence)
	data = binary.BigEndian.AppendUint32(data, f.Width)
	data = binary.BigEndian.AppendUint32(data, f.Height)
	data = binary.BigEndian.AppendUint32(data, f.XOffset)
	data = binary.BigEndian.AppendUint32(data, f.YOffset)
	data = binary.BigEndian.AppendUint16(data, f.DelayNum)
	data = binary.BigEndian.AppendUint16(data, f.DelayDen)
	data = append(data, f.DisposeOp, f.BlendOp)
	return NewChunk(TypeFCTL, data)
}

// ParseFrameControl decodes an fcTL payload.
func ParseFrameControl(data []byte) (FrameControl, error) {
	if len(data) < fctlSize {
		return FrameControl{}, fmt.Errorf("fcTL payload too short: %d bytes", len(data))
	}

	return FrameControl{
		Sequence:  binary.BigEndian.Uint32(data[0:4]),
		Width:     binary.BigEndian.Uint32(data[4:8]),
		Height:    binary.BigEndian.Uint32(data[8:12]),
		XOffset:   binary.BigEndian.Uint32(data[12:16]),
		YOffset:   binary.BigEndian.Uint32(data[16:20]),
		DelayNum:  binary.BigEndian.Uint16(data[20:22]),
		DelayDen:  binary.BigEndian.Uint16(data[22:24]),
		DisposeOp: data[24],
		BlendOp:   data[25],
	}, nil
}

// EndChunk returns the IEND terminator.
func EndChunk() Chunk {
	return NewChunk(TypeIEND, []byte{})
}

// TextChunk builds a tEXt chunk. Key and value are stored as Latin-1,
// separated by a single NUL byte.
func TextChunk(key, value string) (Chunk, error) {
	enc := charmap.ISO8859_1.NewEncoder()

	k, err := enc.String(key)
	if err != nil {
		return Chunk{}, fmt.Errorf("tEXt key %q is not Latin-1: %w", key, err)
	}
	v, err := enc.String(value)
	if err != nil {
		return Chunk{}, fmt.Errorf("tEXt value %q is not Latin-1: %w", value, err)
	}

	data := make([]byte, 0, len(k)+1+len(v))
	data = append(data, k...)
	data = append(data, 0)
	data = append(data, v...)
	return NewChunk(TypeTEXT, data), nil
}

// ParseText decodes a tEXt payload into its key and value.
func ParseText(data []byte) (string, string, error) {
	dec := charmap.ISO8859_1.NewDecoder()

	for i, b := range data {
		if b != 0 {
			continue
		}
		k, err := dec.Bytes(data[:i])
		if err != nil {
			return "", "", err
		}
		v, err := dec.Bytes(data[i+1:])
		if err != nil {
			return "", "", err
		}
		return string(k), string(v), nil
	}
	return "", "", fmt.Errorf("tEXt payload has no separator")
}

// Dimensions returns the width and height stored in an IHDR payload.
func Dimensions(ihdr []byte) (uint32, uint32, error) {
	if len(ihdr) < 8 {
		return 0, 0, fmt.Errorf("IHDR payload too short: %d bytes", len(ihdr))
	}
	return binary.BigEndian.Uint32(ihdr[0:4]), binary.BigEndian.Uint32(ihdr[4:8]), nil
}
