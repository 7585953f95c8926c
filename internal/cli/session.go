// Package cli renders the study dashboard on a terminal and runs the interactive study session.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

var errEnd = errors.New("end")

//go:generate mockgen -source=session.go -destination=../mocks/cli/mock_session.go -package=mock_cli

// Session handles one prompt of an interactive loop. It returns errEnd when the loop should stop.
type Session interface {
	Session(ctx context.Context) error
}

// Run repeats session until it ends, fails, or the process is interrupted.
func Run(ctx context.Context, session Session, stdoutWriter io.Writer) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}
