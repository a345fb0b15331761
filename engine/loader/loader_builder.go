package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the number of goroutines decoding images for LoadAsync and Watch.
//
// Parameters:
//   - n: the worker count; values <= 0 keep the default (one per CPU)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithQueueSize sets how many asynchronous loads may wait for a worker before LoadAsync blocks.
//
// Parameters:
//   - n: the queue size; values <= 0 keep the default
//
// Returns:
//   - LoaderBuilderOption: a function that applies the queue option to a loader
func WithQueueSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.queue = n
		}
	}
}

// WithMaxSize downscales decoded images that exceed the given size, keeping the aspect ratio.
//
// Parameters:
//   - width: the maximum width in pixels, 0 for unlimited
//   - height: the maximum height in pixels, 0 for unlimited
//
// Returns:
//   - LoaderBuilderOption: a function that applies the size limit to a loader
func WithMaxSize(width, height int) LoaderBuilderOption {
	return func(l *loader) {
		l.maxWidth, l.maxHeight = max(width, 0), max(height, 0)
	}
}

// WithCache enables or disables caching of decoded images. Caching is enabled by default.
//
// Parameters:
//   - enabled: false to decode on every load
//
// Returns:
//   - LoaderBuilderOption: a function that applies the cache option to a loader
func WithCache(enabled bool) LoaderBuilderOption {
	return func(l *loader) {
		l.cacheEnabled = enabled
	}
}
