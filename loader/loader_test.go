package loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/parview/object"
	"github.com/lixenwraith/parview/palette"
)

const sampleFrames = `[
  {
    "spheres": [{"loc": [0, 0, 0], "diameter": 0.1, "names": ["A", "1"]}],
    "spherocylinders": [{"loc": [0.1, 0, 0], "axis": [0, 0.2, 0], "diameter": 0.05, "names": ["B"]}],
    "text": "first"
  },
  {"spheres": [], "spherocylinders": [], "text": "second"}
]`

func TestReadFrames(t *testing.T) {
	frames, err := ReadFrames(strings.NewReader(sampleFrames))
	require.NoError(t, err)
	require.Len(t, frames, 2)

	assert.Equal(t, "first", frames[0].Text)
	assert.Equal(t, 1, frames[0].Count(object.KindSphere))
	assert.Equal(t, 1, frames[0].Count(object.KindSpherocylinder))
	assert.Empty(t, frames[1].Objects)
}

func TestReadFramesErrors(t *testing.T) {
	_, err := ReadFrames(strings.NewReader(`[]`))
	assert.ErrorIs(t, err, ErrNoFrames)

	_, err = ReadFrames(strings.NewReader(`{"spheres": []}`))
	assert.Error(t, err)

	_, err = ReadFrames(strings.NewReader(`[{"spheres": [{"loc": [0,0,0], "names": ["a"]}]}]`))
	assert.Error(t, err, "sphere without a size")
}

func TestSaveLoadFrames(t *testing.T) {
	dir := t.TempDir()
	frames := Generate(7)

	for _, name := range []string{"frames.json", "frames.json.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, SaveFrames(path, frames))

			back, err := LoadFrames(path)
			require.NoError(t, err)
			assert.Equal(t, frames, back)
		})
	}

	// The compressed file really is gzip
	raw, err := os.ReadFile(filepath.Join(dir, "frames.json.gz"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])

	_, err = LoadFrames(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadFramesBadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.json.gz")
	require.NoError(t, os.WriteFile(path, []byte(sampleFrames), 0o644))

	_, err := LoadFrames(path)
	assert.Error(t, err)
}

func TestWriteFramesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrames(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestGenerate(t *testing.T) {
	frames := Generate(42)
	require.Len(t, frames, genFrames)

	for i, f := range frames {
		want := genSpheres
		if i >= 11 && i <= 19 {
			want = genSpheres - genDropped
		}
		require.Len(t, f.Objects, want, "frame %d", i)
		assert.Equal(t, "Frame "+strconv.Itoa(i)+" with "+strconv.Itoa(want)+" spheres", f.Text)

		for n, o := range f.Objects {
			assert.Equal(t, object.KindSphere, o.Kind)
			assert.Equal(t, object.NewID(strconv.Itoa(n/4+1), strconv.Itoa(n%4+1)), o.ID)
			assert.GreaterOrEqual(t, o.Diameter, float32(0))
			assert.LessOrEqual(t, o.Diameter, float32(genMaxDiameter))
			// Home in (-0.5, 0.5) plus jitter of at most 0.05
			assert.Less(t, o.Position.X, float32(0.56))
			assert.Greater(t, o.Position.X, float32(-0.56))
		}
	}

	// Spheres other than 0 keep their diameter
	assert.Equal(t, frames[0].Objects[5].Diameter, frames[30].Objects[5].Diameter)

	// Seeded runs are reproducible
	assert.Equal(t, frames, Generate(42))
	assert.NotEqual(t, frames, Generate(43))
}

func TestGeneratePalette(t *testing.T) {
	p := GeneratePalette()
	assert.Equal(t, palette.Color{R: 255}, p.Color(object.NewID("A")))
	assert.Equal(t, palette.Color{G: 255}, p.Color(object.NewID("B")))
	assert.Len(t, p.Assignments(), 2)

	path := filepath.Join(t.TempDir(), "palette.toml")
	require.NoError(t, GeneratePalette().Save(path))
	back, err := palette.Load(path)
	require.NoError(t, err)
	assert.True(t, GeneratePalette().Equal(back))
}

func waitReload(t *testing.T, w *Watcher) (got bool, frames int, pal bool) {
	t.Helper()
	select {
	case r := <-w.Reloads():
		return true, len(r.Frames), r.Palette != nil
	case <-time.After(5 * time.Second):
		return false, 0, false
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	framesPath := filepath.Join(dir, "frames.json")
	palettePath := filepath.Join(dir, "palette.toml")
	require.NoError(t, os.WriteFile(framesPath, []byte(sampleFrames), 0o644))
	require.NoError(t, GeneratePalette().Save(palettePath))

	w, err := NewWatcher(framesPath, palettePath)
	require.NoError(t, err)
	defer w.Close()
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Frames change
	require.NoError(t, SaveFrames(framesPath, Generate(1)))
	ok, n, pal := waitReload(t, w)
	require.True(t, ok, "no reload after frames write")
	assert.Equal(t, genFrames, n)
	assert.False(t, pal)

	// Palette change
	require.NoError(t, palette.Default().Save(palettePath))
	ok, n, pal = waitReload(t, w)
	require.True(t, ok, "no reload after palette write")
	assert.Zero(t, n)
	assert.True(t, pal)

	// Broken frames are skipped, unrelated files are ignored
	require.NoError(t, os.WriteFile(framesPath, []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("x"), 0o644))
	select {
	case r := <-w.Reloads():
		t.Fatalf("unexpected reload: %d frames", len(r.Frames))
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	framesPath := filepath.Join(dir, "frames.json")
	require.NoError(t, os.WriteFile(framesPath, []byte(sampleFrames), 0o644))

	w, err := NewWatcher(framesPath, "")
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher("/nonexistent/dir/frames.json", "")
	assert.Error(t, err)
}

func TestWatcherService(t *testing.T) {
	dir := t.TempDir()
	framesPath := filepath.Join(dir, "frames.json")
	require.NoError(t, os.WriteFile(framesPath, []byte(sampleFrames), 0o644))

	w, err := NewWatcher(framesPath, "")
	require.NoError(t, err)
	w.Debounce = 50 * time.Millisecond
	assert.Equal(t, "watch", w.Name())
	assert.Empty(t, w.Dependencies())

	require.NoError(t, w.Start())
	require.NoError(t, w.Start(), "second start is a no-op")

	require.NoError(t, SaveFrames(framesPath, Generate(2)))
	ok, n, _ := waitReload(t, w)
	require.True(t, ok)
	assert.Equal(t, genFrames, n)

	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
