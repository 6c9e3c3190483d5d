package jsonlog

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/arloliu/logio/errs"
	"github.com/arloliu/logio/internal/options"
)

const (
	// DefaultIndentation is the number of spaces per level in pretty mode.
	DefaultIndentation = 2

	defaultWriteBufferSize = 64 * 1024
)

// WriterConfig holds the output policy of a Writer.
type WriterConfig struct {
	pretty      bool
	indentation int
	bufferSize  int
	logger      *slog.Logger
}

func newWriterConfig() *WriterConfig {
	return &WriterConfig{
		pretty:      true,
		indentation: DefaultIndentation,
		bufferSize:  defaultWriteBufferSize,
		logger:      discardLogger(),
	}
}

// validate checks settings that depend on each other once every option is applied.
func (c *WriterConfig) validate() error {
	if c.pretty && c.indentation < 0 {
		return fmt.Errorf("%w: invalid indentation %d", errs.ErrInvalidArgument, c.indentation)
	}
	if !c.pretty {
		c.indentation = 0
	}

	return nil
}

// Pretty reports whether the writer produces human readable output.
func (c *WriterConfig) Pretty() bool { return c.pretty }

// Indentation returns the number of spaces per indentation level, 0 in dense mode.
func (c *WriterConfig) Indentation() int { return c.indentation }

// WriterOption configures a Writer.
type WriterOption = options.Option[*WriterConfig]

// WithPretty selects human readable output (true, the default) or dense output
// without optional whitespace (false).
func WithPretty(pretty bool) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.pretty = pretty
	})
}

// WithIndentation sets the number of spaces per level in pretty mode.
// A negative value is rejected when the writer is created in pretty mode.
func WithIndentation(indentation int) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.indentation = indentation
	})
}

// WithBufferSize sets the size of the output buffer in bytes.
func WithBufferSize(size int) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if size <= 0 {
			return fmt.Errorf("%w: invalid buffer size %d", errs.ErrInvalidArgument, size)
		}
		c.bufferSize = size

		return nil
	})
}

// WithLogger sets the logger receiving debug records about stream boundaries.
func WithLogger(logger *slog.Logger) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
