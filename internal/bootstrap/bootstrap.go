// Package bootstrap runs a long-lived process until it is interrupted and then shuts it down.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const DefaultShutdownTimeout = 10 * time.Second

type shutdownHook struct {
	name string
	fn   func(ctx context.Context) error
}

type App struct {
	mu              sync.Mutex
	hooks           []shutdownHook
	shutdownTimeout time.Duration
}

func New(shutdownTimeout time.Duration) *App {
	return &App{
		shutdownTimeout: shutdownTimeout,
	}
}

// AddShutdownHook registers fn to be called on shutdown. Hooks run in reverse order of registration.
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, shutdownHook{name: name, fn: fn})
}

// Run calls run until it returns or the process receives SIGINT or SIGTERM.
// On a signal the shutdown hooks are called within the shutdown timeout.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
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
	case err := <-errCh:
		// run may also return because it observed the cancellation
		if err != nil || ctx.Err() == nil {
			return err
		}
	}

	slog.Default().Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancelShutdown()
	return a.shutdown(shutdownCtx)
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		hook := a.hooks[i]
		if err := hook.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s > %w", hook.name, err))
			continue
		}
		slog.Default().Debug("shutdown hook finished", "name", hook.name)
	}
	return errors.Join(errs...)
}
