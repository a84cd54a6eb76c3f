package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Run executes cmd until it finishes or the process is interrupted and
// returns the process exit code. Failures are logged to stderr.
func Run(cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	executed, err := cmd.ExecuteContextC(ctx)
	if err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().
			Timestamp().
			Str("cmd", cmd.Name()).
			Logger()
		if executed != nil {
			if app, aerr := appFrom(executed); aerr == nil {
				logger = app.Logger
			}
		}

		logFailure(logger, err)
		return 1
	}
	return 0
}

// logFailure logs err with its code and context. At debug level the full
// coded error, stack included, follows.
func logFailure(logger zerolog.Logger, err error) {
	event := logger.Error().Err(err)
	if code := errors.GetCode(err); code != "" {
		event = event.Str("code", code)
	}
	for k, v := range errors.GetContext(err) {
		event = event.Str(k, v)
	}
	event.Msg("Command failed")

	if e := logger.Debug(); e.Enabled() {
		e.Msg(errors.FormatError(err))
	}
}
