package png_test

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/ostafen/apngkit/pkg/png"
	"github.com/stretchr/testify/require"
)

var fixedClock = func() time.Time {
	return time.Date(2025, time.March, 11, 14, 36, 48, 0, time.UTC)
}

// prepareImage draws a red square on a transparent canvas, shifted by i.
func prepareImage(i, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	red := color.NRGBA{R: 255, A: 255}

	for y := i; y < min(i+size/10+1, size); y++ {
		for x := i; x < min(i+size/10+1, size); x++ {
			img.SetNRGBA(x, y, red)
		}
	}
	return img
}

func encodeImage(t *testing.T, img image.Image) []byte {
	t.Helper()

	data, err := png.EncodeImage(img)
	require.NoError(t, err)
	return data
}

func buildStream(chunks ...png.Chunk) []byte {
	data := []byte(png.Signature)
	for _, c := range chunks {
		data = png.AppendChunk(data, c, false)
	}
	return data
}

func chunksOf(t *testing.T, data []byte) []png.Chunk {
	t.Helper()

	var chunks []png.Chunk
	for e := range png.Chunks(data) {
		require.NoError(t, e.Err)
		chunks = append(chunks, e.Chunk)
	}
	return chunks
}

func chunkTypes(chunks []png.Chunk) []string {
	types := make([]string, len(chunks))
	for i, c := range chunks {
		types[i] = c.Type
	}
	return types
}

func without(chunks []png.Chunk, typ string) []png.Chunk {
	out := make([]png.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if c.Type != typ {
			out = append(out, c)
		}
	}
	return out
}

func requireSameImage(t *testing.T, want, got image.Image) {
	t.Helper()

	require.Equal(t, want.Bounds().Size(), got.Bounds().Size())

	wb, gb := want.Bounds(), got.Bounds()
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			wc := color.NRGBAModel.Convert(want.At(wb.Min.X+x, wb.Min.Y+y))
			gc := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
			require.Equal(t, wc, gc, "pixel (%d, %d)", x, y)
		}
	}
}
