// Package loader decodes image files into surface bitmaps, on a worker pool when asked to, and
// watches image files for changes.
package loader

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/image/draw"
)

// LoaderBackendType identifies the image decoding backend to use.
type LoaderBackendType int

const (
	// BackendTypeImage decodes PNG, JPEG, GIF, BMP, TIFF and WebP.
	BackendTypeImage LoaderBackendType = iota
)

// Result is the outcome of an asynchronous load.
type Result struct {
	Bitmap *surface.Bitmap
	Err    error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	backend loaderBackend
	pool    worker.DynamicWorkerPool
	workers int
	queue   int
	taskID  int

	maxWidth, maxHeight int
	cacheEnabled        bool
	cache               map[string]*surface.Bitmap

	watchers []context.CancelFunc
	closed   bool
}

// Loader decodes images into surface bitmaps and caches the decoded pixels.
//
// Every Load returns a new Bitmap the caller owns and may edit freely; the cache keeps a
// private copy, so edits never leak into later loads.
type Loader interface {
	// Load decodes the image file at path. A leading ~ is expanded to the home directory.
	//
	// Parameters:
	//   - path: the image file
	//
	// Returns:
	//   - *surface.Bitmap: a new bitmap holding the image
	//   - error: ErrUnsupportedImage for unknown formats, or the file or decode error
	Load(path string) (*surface.Bitmap, error)

	// LoadReader decodes an image from r and caches it under name.
	//
	// Parameters:
	//   - name: the cache key
	//   - r: the encoded image data
	//
	// Returns:
	//   - *surface.Bitmap: a new bitmap holding the image
	//   - error: ErrUnsupportedImage for unknown formats, or the decode error
	LoadReader(name string, r io.Reader) (*surface.Bitmap, error)

	// LoadAsync decodes the image file at path on the loader's worker pool.
	//
	// Parameters:
	//   - path: the image file
	//
	// Returns:
	//   - <-chan Result: receives exactly one result, then is closed
	LoadAsync(path string) <-chan Result

	// Get returns a copy of a cached image.
	//
	// Parameters:
	//   - name: the path passed to Load or the name passed to LoadReader
	//
	// Returns:
	//   - *surface.Bitmap: a new bitmap, nil if nothing is cached under name
	Get(name string) *surface.Bitmap

	// Evict drops a cached image so the next Load decodes it again.
	//
	// Parameters:
	//   - name: the path passed to Load or the name passed to LoadReader
	Evict(name string)

	// Watch reloads the image file at path whenever it is written or replaced and passes the
	// result to onChange, from a background goroutine. Decode errors are passed on as well;
	// a half-written file usually decodes on the next event.
	// Watching stops when ctx is done or the loader is closed.
	//
	// Parameters:
	//   - ctx: bounds the lifetime of the watch
	//   - path: the image file
	//   - onChange: receives every reload
	//
	// Returns:
	//   - error: error if the file's directory cannot be watched
	Watch(ctx context.Context, path string, onChange func(*surface.Bitmap, error)) error

	// Close stops every watch and the worker pool.
	//
	// Returns:
	//   - error: always nil
	Close() error
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeImage)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers:      runtime.NumCPU(),
		queue:        64,
		cacheEnabled: true,
		cache:        make(map[string]*surface.Bitmap),
	}

	switch backendType {
	case BackendTypeImage:
		fallthrough
	default:
		l.backend = newImageLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queue, time.Second)
	return l
}

func (l *loader) Load(path string) (*surface.Bitmap, error) {
	key, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if b := l.Get(key); b != nil {
		return b, nil
	}

	f, err := os.Open(key)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer f.Close()

	b, format, err := l.decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	common.Logger().Info("image loaded", "path", key, "format", format, "width", b.Width(), "height", b.Height())
	return l.store(key, b), nil
}

func (l *loader) LoadReader(name string, r io.Reader) (*surface.Bitmap, error) {
	if b := l.Get(name); b != nil {
		return b, nil
	}
	b, _, err := l.decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	return l.store(name, b), nil
}

func (l *loader) LoadAsync(path string) <-chan Result {
	out := make(chan Result, 1)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		out <- Result{Err: ErrLoaderClosed}
		close(out)
		return out
	}
	id := l.taskID
	l.taskID++
	l.mu.Unlock()

	l.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: path,
		Do: func() (any, error) {
			defer close(out)
			b, err := l.Load(path)
			out <- Result{Bitmap: b, Err: err}
			return b, err
		},
	})
	return out
}

func (l *loader) Get(name string) *surface.Bitmap {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if b, ok := l.cache[name]; ok {
		return b.Clone()
	}
	if key, err := resolvePath(name); err == nil {
		if b, ok := l.cache[key]; ok {
			return b.Clone()
		}
	}
	return nil
}

func (l *loader) Evict(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, name)
	if key, err := resolvePath(name); err == nil {
		delete(l.cache, key)
	}
}

func (l *loader) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	watchers := l.watchers
	l.watchers = nil
	l.mu.Unlock()

	for _, cancel := range watchers {
		cancel()
	}
	l.pool.Stop()
	return nil
}

// decode decodes r and converts the result to a non-premultiplied RGBA bitmap, downscaling it
// when it exceeds the configured maximum size.
func (l *loader) decode(r io.Reader) (*surface.Bitmap, string, error) {
	img, format, err := l.backend.Decode(r)
	if err != nil {
		return nil, format, err
	}

	src := img.Bounds()
	w, h := fitSize(src.Dx(), src.Dy(), l.maxWidth, l.maxHeight)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	}

	b, err := surface.NewBitmapInit(uint32(w), uint32(h), dst.Pix)
	if err != nil {
		return nil, format, err
	}
	return b, format, nil
}

// store caches b when caching is enabled and returns the bitmap handed to the caller.
func (l *loader) store(key string, b *surface.Bitmap) *surface.Bitmap {
	if !l.cacheEnabled {
		return b
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache[key] = b
	return b.Clone()
}

// fitSize scales (w, h) down to fit (maxW, maxH), keeping the aspect ratio. A zero bound is
// unlimited. The result is never smaller than 1x1.
func fitSize(w, h, maxW, maxH int) (int, int) {
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 && h > maxH {
		scale = min(scale, float64(maxH)/float64(h))
	}
	if scale == 1 {
		return w, h
	}
	return max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))
}

// resolvePath expands a leading ~ and returns the cleaned absolute path.
func resolvePath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// CopyInto replaces the pixels of dst with those of src, resizing dst first when the sizes
// differ. It edits dst, so it must run on dst's writer goroutine.
//
// Parameters:
//   - dst: the bitmap to overwrite, typically the one a canvas displays
//   - src: the new image
//
// Returns:
//   - error: error if the resize or update fails
func CopyInto(dst, src *surface.Bitmap) error {
	if dst.Width() != src.Width() || dst.Height() != src.Height() {
		if err := dst.Resize(src.Width(), src.Height()); err != nil {
			return err
		}
	}
	return dst.Update(src.Raw())
}
