package cmd

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/apngkit/pkg/png"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestMergeSplitInfoCommands(t *testing.T) {
	dir := t.TempDir()

	frames := filepath.Join(dir, "frames")
	require.NoError(t, os.Mkdir(frames, 0755))
	for i := range 3 {
		img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
		img.SetNRGBA(i, i, color.NRGBA{G: 255, A: 255})

		data, err := png.EncodeImage(img)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(frames, png.FrameName("f%s.png", i, 3)), data, 0644))
	}

	anim := filepath.Join(dir, "anim.png")
	out, err := run(t, "merge", frames, "-o", anim, "--fps", "15", "--no-progress")
	require.NoError(t, err)
	require.Contains(t, out, "[INFO] Merge completed!")
	require.NotContains(t, out, "Reading:")

	report := filepath.Join(dir, "report.xml")
	out, err = run(t, "info", anim, "--report", report)
	require.NoError(t, err)
	require.Contains(t, out, "[INFO] Type: APNG")
	require.Contains(t, out, "[INFO] FPS: 15")
	require.FileExists(t, report)

	split := filepath.Join(dir, "split")
	out, err = run(t, "split", anim, "-o", split, "-t", "out_%s.png")
	require.NoError(t, err)
	require.Contains(t, out, "Writing:")
	for _, name := range []string{"out_0.png", "out_1.png", "out_2.png"} {
		require.FileExists(t, filepath.Join(split, name))
	}
}

func TestCommandErrors(t *testing.T) {
	_, err := run(t, "merge", t.TempDir())
	require.Error(t, err)

	_, err = run(t, "split")
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("bad"), 0644))

	_, err = run(t, "split", bad, "-o", t.TempDir())
	require.ErrorIs(t, err, png.ErrSignature)

	out, err := run(t, "info", bad, "--log-level", "error")
	require.NoError(t, err)
	require.NotContains(t, out, "[INFO]")
}
