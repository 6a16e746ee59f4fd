// Package bootstrap provides application lifecycle helpers.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"
)

// App manages application lifecycle with graceful shutdown support.
type App struct {
	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

// New creates a new App.
func New() *App {
	return &App{}
}

// AddShutdownHook registers a function to call during graceful shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run sets up signal handling and executes the run function.
// On OS interrupt, it calls registered shutdown hooks in LIFO order.
// If run returns an error before a signal, that error is returned.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return a.shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// RunPeriodic runs tick immediately and then on every interval until the
// context is cancelled. A failing tick is logged and the loop keeps going;
// periodic work recovers on the next interval rather than killing the app.
func (a *App) RunPeriodic(ctx context.Context, interval time.Duration, tick func(ctx context.Context) error) error {
	return a.Run(ctx, func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if err := tick(ctx); err != nil {
				slog.Error("periodic task failed", "error", err)
			}
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		if err := a.hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
