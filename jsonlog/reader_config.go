package jsonlog

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/logio/errs"
	"github.com/arloliu/logio/internal/options"
)

const (
	// DefaultChunkSize is the number of rows read between two DataListener notifications.
	DefaultChunkSize = 1000

	defaultReadBufferSize = 64 * 1024
)

// ReaderConfig holds the read policy of a Reader.
type ReaderConfig struct {
	curveData  bool
	listener   DataListener
	chunkSize  int
	bufferSize int
	logger     *slog.Logger
}

func newReaderConfig() *ReaderConfig {
	return &ReaderConfig{
		curveData:  true,
		chunkSize:  DefaultChunkSize,
		bufferSize: defaultReadBufferSize,
		logger:     discardLogger(),
	}
}

// ReaderOption configures a Reader.
type ReaderOption = options.Option[*ReaderConfig]

// WithCurveData selects whether curve data is loaded (true, the default).
// Without curve data only headers and curve definitions are read, and the
// data arrays are skipped.
func WithCurveData(curveData bool) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.curveData = curveData
	})
}

// WithDataListener sets the listener notified while curve data is read.
func WithDataListener(listener DataListener) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		c.listener = listener
	})
}

// WithChunkSize sets the number of rows read between two listener notifications.
func WithChunkSize(rows int) ReaderOption {
	return options.New(func(c *ReaderConfig) error {
		if rows <= 0 {
			return fmt.Errorf("%w: invalid chunk size %d", errs.ErrInvalidArgument, rows)
		}
		c.chunkSize = rows

		return nil
	})
}

// WithReaderLogger sets the logger receiving debug records about stream boundaries.
func WithReaderLogger(logger *slog.Logger) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}
