package loader

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func newTestLoader(t *testing.T, options ...LoaderBuilderOption) Loader {
	t.Helper()
	l := NewLoader(BackendTypeImage, append([]LoaderBuilderOption{WithWorkers(2)}, options...)...)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLoadDecodesPNGToRGBA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	writePNG(t, path, testImage(3, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))

	b, err := newTestLoader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), b.Width())
	assert.Equal(t, uint32(2), b.Height())

	px, ok := b.Pixel(2, 1)
	require.True(t, ok)
	assert.Equal(t, uint32(0xff1e140a), px)
	assert.True(t, b.IsModified(), "a fresh bitmap is uploaded on first draw")
}

func TestLoadDecodesBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(2, 2, color.NRGBA{G: 255, A: 255})))

	b, err := newTestLoader(t).LoadReader("green.bmp", &buf)
	require.NoError(t, err)
	px, _ := b.Pixel(0, 0)
	assert.Equal(t, uint32(0xff00ff00), px)
}

func TestLoadReturnsIndependentCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	writePNG(t, path, testImage(2, 2, color.NRGBA{A: 255}))
	l := newTestLoader(t)

	first, err := l.Load(path)
	require.NoError(t, err)
	require.True(t, first.SetPixel(0, 0, 0xffffffff))

	second, err := l.Load(path)
	require.NoError(t, err)
	px, _ := second.Pixel(0, 0)
	assert.Equal(t, uint32(0xff000000), px, "edits never leak into the cache")
	assert.NotEqual(t, first.Identity(), second.Identity())
	assert.NotNil(t, l.Get(path))
}

func TestLoadServesCacheUntilEvicted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	writePNG(t, path, testImage(2, 2, color.NRGBA{A: 255}))
	l := newTestLoader(t)

	_, err := l.Load(path)
	require.NoError(t, err)
	writePNG(t, path, testImage(4, 4, color.NRGBA{A: 255}))

	cached, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), cached.Width())

	l.Evict(path)
	assert.Nil(t, l.Get(path))
	fresh, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), fresh.Width())
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	_, err := newTestLoader(t).LoadReader("note", strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := newTestLoader(t).Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAsync(t *testing.T) {
	dir := t.TempDir()
	l := newTestLoader(t)

	var results []<-chan Result
	for i := range 4 {
		path := filepath.Join(dir, string(rune('a'+i))+".png")
		writePNG(t, path, testImage(i+1, 1, color.NRGBA{A: 255}))
		results = append(results, l.LoadAsync(path))
	}
	for i, ch := range results {
		res := <-ch
		require.NoError(t, res.Err)
		assert.Equal(t, uint32(i+1), res.Bitmap.Width())
		_, open := <-ch
		assert.False(t, open)
	}
}

func TestLoadAsyncAfterClose(t *testing.T) {
	l := NewLoader(BackendTypeImage)
	require.NoError(t, l.Close())
	res := <-l.LoadAsync("whatever.png")
	assert.ErrorIs(t, res.Err, ErrLoaderClosed)
}

func TestWithMaxSizeDownscales(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(8, 4, color.NRGBA{B: 255, A: 255})))

	b, err := newTestLoader(t, WithMaxSize(4, 4)).LoadReader("wide", &buf)
	require.NoError(t, err)
	assert.Equal(t, [2]uint32{4, 2}, [2]uint32{b.Width(), b.Height()})
}

func TestFitSize(t *testing.T) {
	w, h := fitSize(100, 50, 0, 0)
	assert.Equal(t, [2]int{100, 50}, [2]int{w, h})
	w, h = fitSize(100, 50, 10, 100)
	assert.Equal(t, [2]int{10, 5}, [2]int{w, h})
	w, h = fitSize(1000, 1, 10, 10)
	assert.Equal(t, [2]int{10, 1}, [2]int{w, h})
}

func TestCopyIntoResizesWhenNeeded(t *testing.T) {
	dst := surface.MustBitmap(2, 2)
	src := surface.MustBitmap(3, 1)
	require.True(t, src.SetPixel(2, 0, 0xff0000ff))

	require.NoError(t, CopyInto(dst, src))
	assert.Equal(t, [2]uint32{3, 1}, [2]uint32{dst.Width(), dst.Height()})
	px, _ := dst.Pixel(2, 0)
	assert.Equal(t, uint32(0xff0000ff), px)

	same := surface.MustBitmap(3, 1)
	id := dst.Identity()
	require.NoError(t, CopyInto(dst, same))
	assert.Equal(t, id, dst.Identity(), "equal sizes update in place")
	assert.True(t, dst.IsModified())
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.png")
	writePNG(t, path, testImage(2, 2, color.NRGBA{A: 255}))
	l := newTestLoader(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded := make(chan *surface.Bitmap, 8)
	require.NoError(t, l.Watch(ctx, path, func(b *surface.Bitmap, err error) {
		if err == nil {
			reloaded <- b
		}
	}))

	writePNG(t, path, testImage(5, 3, color.NRGBA{R: 255, A: 255}))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case b := <-reloaded:
			if b.Width() == 5 {
				assert.Equal(t, uint32(3), b.Height())
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatchAfterClose(t *testing.T) {
	l := NewLoader(BackendTypeImage)
	require.NoError(t, l.Close())
	err := l.Watch(context.Background(), t.TempDir(), func(*surface.Bitmap, error) {})
	assert.ErrorIs(t, err, ErrLoaderClosed)
}
