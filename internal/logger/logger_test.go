package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, DebugLevel, ParseLevel("debug"))
	require.Equal(t, WarnLevel, ParseLevel("WARN"))
	require.Equal(t, ErrorLevel, ParseLevel("Error"))
	require.Equal(t, InfoLevel, ParseLevel("INFO"))
	require.Equal(t, InfoLevel, ParseLevel("verbose"))

	require.Equal(t, slog.LevelDebug, DebugLevel.Slog())
	require.Equal(t, slog.LevelError, ErrorLevel.Slog())
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WarnLevel)

	l.Info("hidden")
	l.Debugf("hidden %d", 1)
	l.Warnf("frame %d dropped", 3)
	l.Error("failed")

	require.Equal(t, "[WARN] frame 3 dropped\n[ERROR] failed\n", buf.String())
}

func TestLoggerBlocks(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, InfoLevel)

	l.Field("Frames", 10)
	l.Lines("Type: APNG\nFrames: 10\n\n")

	require.Equal(t, "[INFO] Frames: \t10\n[INFO] Type: APNG\n[INFO] Frames: 10\n", buf.String())
}
