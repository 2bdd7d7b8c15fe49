package cmd

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/phrasegen/log"
)

// watch calls rebuild once, then again after any of files is written,
// created, removed or renamed, until ctx is done. Events arriving within
// quiesce of each other trigger a single rebuild.
//
// The parent directories are watched rather than the files themselves, so
// editors that replace a file on save are followed.
func watch(ctx context.Context, files []string, quiesce time.Duration, rebuild func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer w.Close()

	want := make(map[string]struct{}, len(files))

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return ErrWatch.Wrap(err).With(slog.String("path", f))
		}

		want[abs] = struct{}{}

		if err := w.Add(filepath.Dir(abs)); err != nil {
			return ErrWatch.Wrap(err).With(slog.String("path", f))
		}
	}

	log.InfoContext(ctx, "watching input files", slog.Any("files", files))

	rebuild()

	var (
		fire  = make(chan struct{}, 1)
		timer *time.Timer
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if _, ok := want[ev.Name]; !ok || ev.Op == fsnotify.Chmod {
				continue
			}

			log.DebugContext(ctx, "input changed",
				slog.String("path", ev.Name),
				slog.String("op", ev.Op.String()),
			)

			if timer != nil {
				timer.Stop()
			}

			timer = time.AfterFunc(quiesce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", err))

		case <-fire:
			rebuild()
		}
	}
}
