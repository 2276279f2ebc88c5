package cli

import (
	"bytes"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// heldLogger returns a logger at the CLI's level whose output is buffered
// until flush is called. Lines logged while the spinner is drawing would
// otherwise be overwritten by its frames.
func (c *CLI) heldLogger() (logger *log.Logger, flush func()) {
	var buf bytes.Buffer
	logger = newLogger(&buf, c.Logger.GetLevel())
	return logger, func() {
		if buf.Len() > 0 {
			_, _ = c.logw.Write(buf.Bytes())
			buf.Reset()
		}
	}
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to debug will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// debug logs msg at debug level along with the elapsed time since progress was created.
// Example output: "Fetched domain (1.234s)"
func (p *progress) debug(msg string) {
	p.logger.Debugf("%s (%s)", msg, p.elapsed())
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}
