package png_test

import (
	"encoding/hex"
	"hash/crc32"
	"math/rand"
	"testing"

	"github.com/ostafen/apngkit/pkg/png"
	"github.com/stretchr/testify/require"
)

func TestChecksumVectors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{"empty", nil, 0x00000000},
		{"IEND", mustHex(t, "49454E44"), 0xAE426082},
		{"IHDR", mustHex(t, "4948445200000258000002580806000000"), 0xBE6698DC},
		{"acTL", mustHex(t, "6163544C0000007800000000"), 0x40EF6B1E},
		{"fcTL", mustHex(t, "6663544C0000000000000258000002580000000000000000002103E80000"), 0x16E15EB9},
		{"tEXt", []byte("tEXtCreation time\x00Tue, 11 03 2025 14:36:48"), 0x8F5835AD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, png.Checksum(tt.data))
		})
	}
}

func TestChecksumMatchesIEEE(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for range 100 {
		data := make([]byte, rng.Intn(4096))
		rng.Read(data)

		require.Equal(t, crc32.ChecksumIEEE(data), png.Checksum(data))
	}
}

func TestUpdateChecksumIncremental(t *testing.T) {
	data := []byte("IDATsome compressed pixels")

	crc := png.UpdateChecksum(0xFFFFFFFF, data[:4])
	crc = png.UpdateChecksum(crc, data[4:])

	require.Equal(t, png.Checksum(data), crc^0xFFFFFFFF)
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
