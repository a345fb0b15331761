package loader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-canvas/common"
	"github.com/Carmen-Shannon/oxy-canvas/engine/surface"
	"github.com/fsnotify/fsnotify"
)

func (l *loader) Watch(ctx context.Context, path string, onChange func(*surface.Bitmap, error)) error {
	key, err := resolvePath(path)
	if err != nil {
		return err
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoaderClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	l.watchers = append(l.watchers, cancel)
	l.mu.Unlock()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Editors often replace files by renaming over them, which drops a watch on the file itself.
	if err := w.Add(filepath.Dir(key)); err != nil {
		cancel()
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", key, err)
	}
	common.Logger().Info("watching image", "path", key)

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != key {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				l.Evict(key)
				var res Result
				select {
				case res = <-l.LoadAsync(key):
				case <-ctx.Done():
					return
				}
				if res.Err != nil {
					common.Logger().Warn("image reload failed", "path", key, "error", res.Err)
				}
				onChange(res.Bitmap, res.Err)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				common.Logger().Warn("image watcher error", "path", key, "error", err)
			}
		}
	}()
	return nil
}
