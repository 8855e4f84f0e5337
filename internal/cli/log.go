// Package cli implements the pinboard command-line interface.
//
// The commands load a layout document (JSON, TOML or YAML), run it through
// the layout pipeline and write or display the result. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a layout and write it as JSON
//   - render: Write JSON and SVG wireframe artifacts
//   - sticky: Print the entries visible at a scroll offset with headers pinned
//   - preview: Scroll through a layout interactively in the terminal
//   - serve: Run the HTTP layout service
//   - cache: Manage the local layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --log-format to switch between human-readable text and JSON or logfmt
// records, which suits the serve command behind a log collector. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/pinboard/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinboard/pkg/errors"
)

// Values accepted by --log-format.
const (
	logFormatText   = "text"
	logFormatJSON   = "json"
	logFormatLogfmt = "logfmt"
)

// newLogger creates a text logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Formatter:       log.TextFormatter,
	})
}

// parseLogFormat maps a --log-format value to a formatter.
func parseLogFormat(s string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", logFormatText:
		return log.TextFormatter, nil
	case logFormatJSON:
		return log.JSONFormatter, nil
	case logFormatLogfmt:
		return log.LogfmtFormatter, nil
	}
	return log.TextFormatter, errors.New(errors.ErrCodeInvalidInput,
		"unknown log format %q (want %s, %s or %s)", s, logFormatText, logFormatJSON, logFormatLogfmt)
}

// progress logs the elapsed time of one operation.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and an "elapsed" field rounded to the
// millisecond.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when
// none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
