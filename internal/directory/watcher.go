package directory

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last file event before a
// reload starts.
const DefaultDebounce = 500 * time.Millisecond

// Watch reloads the directory whenever the dataset file changes, until ctx
// is done. The parent directory is watched so that editors replacing the file
// by rename are noticed. Reload failures are logged and keep the old data.
func (d *Directory) Watch(ctx context.Context, debounce time.Duration) error {
	if d.cfg.Path == "" {
		return fmt.Errorf("no dataset path to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	path, err := filepath.Abs(d.cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", d.cfg.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	d.logger.Info("watching dataset", zap.String("path", path))

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				d.logger.Debug("dataset file changed", zap.String("op", event.Op.String()))
				timer.Reset(debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			d.logger.Warn("dataset watcher error", zap.Error(err))
		case <-timer.C:
			if err := d.Reload(ctx); err != nil {
				d.logger.Warn("keeping previous dataset after failed reload", zap.Error(err))
			}
		}
	}
}
