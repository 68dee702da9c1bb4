package colorscheme

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/cadview/internal/logger"
)

// Watch reloads scheme files in dir as they are created or written and
// calls onChange with each newly registered scheme. onChange runs on the
// watcher goroutine; hosts hand the result to their render thread. Watching
// stops when ctx is done.
func (r *Registry) Watch(ctx context.Context, dir string, onChange func(*Scheme)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create color scheme watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch color scheme dir: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				if !IsSchemeFile(event.Name) {
					continue
				}
				s, err := LoadFile(event.Name)
				if err != nil {
					// Editors often write partial files; the next write retries.
					logger.Debug("color scheme reload failed", zap.Error(err))
					continue
				}
				r.Register(s)
				logger.Info("color scheme reloaded",
					zap.String("name", s.Name()),
					zap.String("file", event.Name))
				if onChange != nil {
					onChange(s)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("color scheme watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}
