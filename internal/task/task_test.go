package task

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ostafen/apngkit/internal/logger"
	"github.com/ostafen/apngkit/pkg/png"
	"github.com/ostafen/apngkit/pkg/report"
	"github.com/stretchr/testify/require"
)

var fixedClock = func() time.Time {
	return time.Date(2025, time.March, 11, 14, 36, 48, 0, time.UTC)
}

func writeFrames(t *testing.T, dir string, n int) []image.Image {
	t.Helper()

	images := make([]image.Image, n)
	for i := range n {
		img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
		for y := i; y < i+4; y++ {
			for x := i; x < i+4; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			}
		}
		images[i] = img

		data, err := png.EncodeImage(img)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, png.FrameName("in_%s.png", i, n)), data, 0644))
	}
	return images
}

func TestMergeSplitRoundTrip(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "in")
	require.NoError(t, os.Mkdir(in, 0755))
	images := writeFrames(t, in, 12)

	// a stray file that must be ignored when expanding the directory
	require.NoError(t, os.WriteFile(filepath.Join(in, "README.txt"), []byte("x"), 0644))

	var console, progress bytes.Buffer
	out := logger.New(&console, logger.InfoLevel)

	anim := filepath.Join(root, "anim.png")
	n, err := Merge(MergeOptions{
		Inputs:   []string{in},
		Output:   anim,
		FPS:      24,
		Progress: &progress,
		Now:      fixedClock,
		LogOptions: LogOptions{
			LogFile: filepath.Join(root, "logs", "merge.log"),
		},
	}, out)
	require.NoError(t, err)
	require.Equal(t, 12, n)
	require.Contains(t, console.String(), "[INFO] Merge completed!")
	require.Contains(t, progress.String(), "(12/12 frames)")
	require.FileExists(t, filepath.Join(root, "logs", "merge.log"))

	outDir := filepath.Join(root, "out")
	info, err := Split(anim, SplitOptions{OutputDir: outDir}, out)
	require.NoError(t, err)
	require.True(t, info.OK())
	require.Equal(t, png.FormatAPNG, info.Format)
	require.Equal(t, uint32(24), info.FPS)
	require.Equal(t, 12, info.Frames)

	for i, want := range images {
		data, err := os.ReadFile(filepath.Join(outDir, png.FrameName(DefaultTemplate, i, 12)))
		require.NoError(t, err)

		got, err := png.DecodeFrames([][]byte{data})
		require.NoError(t, err)
		require.Equal(t, want.(*image.NRGBA).Pix, toNRGBA(got[0]).Pix, "frame %d", i)
	}
}

func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m
	}
	b := img.Bounds()
	m := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			m.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return m
}

func TestMergeErrors(t *testing.T) {
	root := t.TempDir()
	out := logger.New(&bytes.Buffer{}, logger.InfoLevel)

	_, err := Merge(MergeOptions{Inputs: []string{root}, Output: filepath.Join(root, "a.png"), FPS: 0}, out)
	require.ErrorIs(t, err, png.ErrInvalidFrameRate)

	_, err = Merge(MergeOptions{Inputs: []string{root}, Output: filepath.Join(root, "a.png"), FPS: 30}, out)
	require.ErrorIs(t, err, ErrNoInputs)

	_, err = Merge(MergeOptions{Inputs: []string{filepath.Join(root, "missing")}, Output: filepath.Join(root, "a.png"), FPS: 30}, out)
	require.Error(t, err)

	bad := filepath.Join(root, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0644))

	_, err = Merge(MergeOptions{Inputs: []string{bad}, Output: filepath.Join(root, "a.png"), FPS: 30, Strict: true}, out)
	require.ErrorIs(t, err, png.ErrSignature)

	_, err = Merge(MergeOptions{Inputs: []string{bad}, Output: filepath.Join(root, "a.png"), FPS: 30}, out)
	require.ErrorIs(t, err, png.ErrNoFrames)
	require.NoFileExists(t, filepath.Join(root, "a.png"))
}

func TestMergeWarnsOnDroppedFrames(t *testing.T) {
	root := t.TempDir()
	writeFrames(t, root, 2)
	require.NoError(t, os.WriteFile(filepath.Join(root, "in_9.png"), []byte("not a png"), 0644))

	var console bytes.Buffer
	n, err := Merge(MergeOptions{
		Inputs: []string{root},
		Output: filepath.Join(t.TempDir(), "anim.png"),
		FPS:    10,
	}, logger.New(&console, logger.InfoLevel))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Contains(t, console.String(), "[WARN] 1 of 3 frames were dropped")
}

func TestSplitMissingIEND(t *testing.T) {
	root := t.TempDir()
	writeFrames(t, root, 3)

	anim := filepath.Join(root, "anim.png")
	_, err := Merge(MergeOptions{Inputs: []string{root}, Output: anim, FPS: 10}, logger.New(&bytes.Buffer{}, logger.InfoLevel))
	require.NoError(t, err)

	data, err := os.ReadFile(anim)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(anim, data[:len(data)-12], 0644))

	var console bytes.Buffer
	outDir := filepath.Join(root, "out")
	info, err := Split(anim, SplitOptions{OutputDir: outDir, Template: "f%s.png"}, logger.New(&console, logger.InfoLevel))
	require.NoError(t, err)
	require.Equal(t, png.KindNoIEND, info.Kind())
	require.Contains(t, console.String(), "[WARN]")

	for _, name := range []string{"f0.png", "f1.png", "f2.png"} {
		require.FileExists(t, filepath.Join(outDir, name))
	}
}

func TestSplitRejectsMalformedFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("GIF89a"), 0644))

	outDir := filepath.Join(root, "out")
	info, err := Split(path, SplitOptions{OutputDir: outDir}, logger.New(&bytes.Buffer{}, logger.InfoLevel))
	require.ErrorIs(t, err, png.ErrSignature)
	require.Equal(t, png.FormatInvalid, info.Format)
	require.NoDirExists(t, outDir)
}

func TestInspect(t *testing.T) {
	root := t.TempDir()
	writeFrames(t, root, 2)

	anim := filepath.Join(root, "anim.png")
	_, err := Merge(MergeOptions{Inputs: []string{root}, Output: anim, FPS: 5, Now: fixedClock}, logger.New(&bytes.Buffer{}, logger.InfoLevel))
	require.NoError(t, err)

	var console bytes.Buffer
	reportFile := filepath.Join(root, "report.xml")
	info, err := Inspect(anim, InspectOptions{ReportFile: reportFile, Now: fixedClock}, logger.New(&console, logger.InfoLevel))
	require.NoError(t, err)
	require.True(t, info.OK())
	require.Contains(t, console.String(), "[INFO] Type: APNG\n[INFO] Frames: 2\n[INFO] FPS: 5\n")

	f, err := os.Open(reportFile)
	require.NoError(t, err)
	defer f.Close()

	rep, err := report.Read(f)
	require.NoError(t, err)
	require.Equal(t, "apngkit", rep.Creator.Package)
	require.Equal(t, "2025-03-11T14:36:48Z", rep.Creator.ExecutionEnvironment.Start)
	require.Equal(t, 2, rep.Source.Frames)
	require.Equal(t, png.TypeIHDR, rep.Chunks[0].Type)
	require.Equal(t, png.TypeIEND, rep.Chunks[len(rep.Chunks)-1].Type)
}

func TestInspectReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	var console bytes.Buffer
	info, err := Inspect(path, InspectOptions{}, logger.New(&console, logger.InfoLevel))
	require.NoError(t, err)
	require.Equal(t, png.KindSignature, info.Kind())
	require.Contains(t, console.String(), "Parse error:")
}

func TestDefaultMountpoint(t *testing.T) {
	require.Equal(t, "anim_frames", DefaultMountpoint("/tmp/anim.png"))
	require.Equal(t, "clip_frames", DefaultMountpoint("clip"))
}
