package pbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	pb := NewProgressBarState(&buf, "Writing", 4)

	pb.Add(1024)
	require.Contains(t, buf.String(), "[=====>              ]  25% (1/4 frames) | 1KB")

	buf.Reset()
	pb.Add(1024)
	require.Empty(t, buf.String())

	pb.Add(1024)
	pb.Add(1024)
	require.Contains(t, buf.String(), "[====================] 100% (4/4 frames) | 4KB")

	pb.Finish()
	require.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestProgressBarEmpty(t *testing.T) {
	var buf bytes.Buffer
	pb := NewProgressBarState(&buf, "Reading", 0)
	pb.Render(true)
	require.Contains(t, buf.String(), "100% (0/0 frames)")
}
