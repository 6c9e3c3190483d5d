package jsonlog

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/arloliu/logio/errs"
	"github.com/arloliu/logio/format"
	"github.com/arloliu/logio/header"
	"github.com/arloliu/logio/internal/options"
	"github.com/arloliu/logio/internal/pool"
	"github.com/arloliu/logio/numfmt"
)

type writerState uint8

const (
	stateUnopened writerState = iota
	stateOpenEmpty
	stateOpenWithData
	stateClosed
)

func (s writerState) String() string {
	switch s {
	case stateUnopened:
		return "unopened"
	case stateOpenEmpty:
		return "open-empty"
	case stateOpenWithData:
		return "open-with-data"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Indentation levels of the document structure.
const (
	levelArray  = 0 // the top level array of logs
	levelLog    = 1 // a log object
	levelMember = 2 // header, curves and data members
	levelItem   = 3 // curve definitions and data rows
)

// Writer streams logs to a JSON Well Log document.
//
// A document holds one or more logs. Write starts a new log, Append adds
// curve data to the log written last and Close terminates the document.
// Memory use is bounded by the log passed to a single call, so a large log
// can be written by repeatedly clearing and refilling its curves:
//
//	w.Write(log)      // header, curve definitions and the first batch
//	log.ClearCurves()
//	// ... refill curves ...
//	w.Append(log)     // next batch
//	w.Close()
//
// A Writer is not safe for concurrent use. Errors returned by the underlying
// io.Writer are returned as is.
type Writer struct {
	cfg *WriterConfig

	path  string   // file to create on the first Write, empty for NewWriter
	sink  io.Writer
	file  *os.File // owned by the writer, closed by Close
	out   *bufio.Writer
	state writerState

	newline string
	spacing string
	indents []string

	nCurves int // curves of the log written last
	rows    int // rows written to the log written last
	logs    int
}

// NewWriter creates a writer that streams the document to w.
//
// The writer flushes but never closes w.
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: writer cannot be nil", errs.ErrInvalidArgument)
	}

	return newWriter("", w, opts)
}

// NewFileWriter creates a writer for the file at path. The file is created
// by the first Write and closed by Close.
func NewFileWriter(path string, opts ...WriterOption) (*Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", errs.ErrInvalidArgument)
	}

	return newWriter(path, nil, opts)
}

func newWriter(path string, sink io.Writer, opts []WriterOption) (*Writer, error) {
	cfg := newWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	w := &Writer{
		cfg:  cfg,
		path: path,
		sink: sink,
	}
	if cfg.pretty {
		w.newline = "\n"
		w.spacing = " "
	}

	return w, nil
}

// Write starts a new log in the document and writes its header, curve
// definitions and curve data. The first call opens the document.
func (w *Writer) Write(log *Log) error {
	if log == nil {
		return fmt.Errorf("%w: log cannot be nil", errs.ErrInvalidArgument)
	}
	if w.state == stateClosed {
		return errs.ErrWriterClosed
	}

	bb := pool.GetRowBuffer()
	defer pool.PutRowBuffer(bb)

	if w.state == stateUnopened {
		if err := w.open(); err != nil {
			return err
		}
		bb.WriteByte('[')
		bb.WriteString(w.newline)
	} else {
		w.endLog(bb)
		bb.WriteByte(',')
		bb.WriteString(w.newline)
	}

	if err := w.writeLogStart(bb, log); err != nil {
		return err
	}

	w.rows = 0
	w.nCurves = log.NCurves()
	w.logs++
	w.state = stateOpenEmpty

	if err := w.writeData(bb, log); err != nil {
		return err
	}

	if err := w.flush(bb); err != nil {
		return err
	}

	w.cfg.logger.Debug("json log written",
		slog.String("name", log.Name()),
		slog.Int("curves", w.nCurves),
		slog.Int("rows", w.rows))

	return nil
}

// Append writes the curve data of log to the log written last. log must have
// the same curve layout as that log; its header and curve definitions are
// not written.
func (w *Writer) Append(log *Log) error {
	if log == nil {
		return fmt.Errorf("%w: log cannot be nil", errs.ErrInvalidArgument)
	}

	switch w.state {
	case stateClosed:
		return errs.ErrWriterClosed
	case stateUnopened:
		return errs.ErrWriterNotOpen
	}

	if n := log.NCurves(); n != w.nCurves {
		return fmt.Errorf("%w: appended log has %d curves, open log has %d",
			errs.ErrInvalidArgument, n, w.nCurves)
	}

	bb := pool.GetRowBuffer()
	defer pool.PutRowBuffer(bb)

	before := w.rows
	if err := w.writeData(bb, log); err != nil {
		return err
	}

	if err := w.flush(bb); err != nil {
		return err
	}

	w.cfg.logger.Debug("json log data appended",
		slog.Int("rows", w.rows-before),
		slog.Int("total", w.rows))

	return nil
}

// Close terminates the document and flushes it. A file created by the
// writer is closed. Closing a writer that never wrote a log produces no
// output. Close is idempotent; the writer cannot be used afterwards.
func (w *Writer) Close() error {
	switch w.state {
	case stateClosed:
		return nil
	case stateUnopened:
		w.state = stateClosed
		return nil
	}

	w.state = stateClosed

	bb := pool.GetRowBuffer()
	defer pool.PutRowBuffer(bb)

	w.endLog(bb)
	w.startLine(bb, levelArray)
	bb.WriteByte(']')
	bb.WriteByte('\n')

	err := w.flush(bb)
	if w.file != nil {
		err = multierr.Append(err, w.file.Close())
		w.file = nil
	}

	w.cfg.logger.Debug("json writer closed", slog.Int("logs", w.logs))

	return err
}

func (w *Writer) open() error {
	sink := w.sink
	if w.path != "" {
		f, err := os.Create(w.path)
		if err != nil {
			return err
		}
		w.file = f
		sink = f
	}

	w.out = bufio.NewWriterSize(sink, w.cfg.bufferSize)
	w.cfg.logger.Debug("json writer opened",
		slog.String("path", w.path),
		slog.Bool("pretty", w.cfg.pretty),
		slog.Int("indentation", w.cfg.indentation))

	return nil
}

// drain moves the buffered bytes to the output buffer.
func (w *Writer) drain(bb *pool.ByteBuffer) error {
	if bb.Len() == 0 {
		return nil
	}

	_, err := bb.WriteTo(w.out)
	bb.Reset()

	return err
}

// flush drains bb and pushes everything written so far to the sink.
func (w *Writer) flush(bb *pool.ByteBuffer) error {
	if err := w.drain(bb); err != nil {
		return err
	}

	return w.out.Flush()
}

func (w *Writer) indent(level int) string {
	if w.cfg.indentation == 0 {
		return ""
	}

	for len(w.indents) <= level {
		w.indents = append(w.indents, strings.Repeat(" ", len(w.indents)*w.cfg.indentation))
	}

	return w.indents[level]
}

// startLine begins a new line at the given level.
func (w *Writer) startLine(bb *pool.ByteBuffer, level int) {
	bb.WriteString(w.newline)
	bb.WriteString(w.indent(level))
}

func (w *Writer) writeKey(bb *pool.ByteBuffer, key string) {
	bb.B = appendQuoted(bb.B, key)
	bb.WriteByte(':')
	bb.WriteString(w.spacing)
}

// writeLogStart writes everything of a log object up to and including the
// opening bracket of its data array.
func (w *Writer) writeLogStart(bb *pool.ByteBuffer, log *Log) error {
	bb.WriteString(w.indent(levelLog))
	bb.WriteByte('{')

	w.startLine(bb, levelMember)
	w.writeKey(bb, "header")
	if err := w.writeHeader(bb, log.Header()); err != nil {
		return err
	}
	bb.WriteByte(',')

	w.startLine(bb, levelMember)
	w.writeKey(bb, "curves")
	w.writeCurveDefinitions(bb, log.Curves())
	bb.WriteByte(',')

	w.startLine(bb, levelMember)
	w.writeKey(bb, "data")
	bb.WriteByte('[')

	return nil
}

// endLog closes the data array and the object of the log written last.
func (w *Writer) endLog(bb *pool.ByteBuffer) {
	w.startLine(bb, levelMember)
	bb.WriteByte(']')
	w.startLine(bb, levelLog)
	bb.WriteByte('}')
}

func (w *Writer) writeHeader(bb *pool.ByteBuffer, hdr header.Value) error {
	ts := hdr.Tokens()
	tok, ok := ts.Next()
	if !ok {
		return fmt.Errorf("%w: empty header token stream", errs.ErrInvalidArgument)
	}

	return w.writeValue(bb, ts, tok, levelMember)
}

// writeValue writes the value that starts with tok, consuming the rest of it
// from ts. level is the indentation level of the line holding tok.
func (w *Writer) writeValue(bb *pool.ByteBuffer, ts header.TokenStream, tok header.Token, level int) error {
	switch tok.Kind {
	case header.TokenObjectStart:
		return w.writeContainer(bb, ts, level, '{', '}', header.TokenObjectEnd)
	case header.TokenArrayStart:
		return w.writeContainer(bb, ts, level, '[', ']', header.TokenArrayEnd)
	case header.TokenNull:
		bb.WriteString(numfmt.Null)
	case header.TokenBool:
		bb.WriteString(strconv.FormatBool(tok.Bool))
	case header.TokenNumber:
		bb.WriteString(tok.Text)
	case header.TokenString:
		bb.B = appendQuoted(bb.B, tok.Text)
	default:
		return fmt.Errorf("%w: unexpected header token %s", errs.ErrInvalidArgument, tok.Kind)
	}

	return nil
}

// writeContainer writes an object or array whose start token was consumed.
// Members go on their own lines; an empty container stays on one line.
func (w *Writer) writeContainer(bb *pool.ByteBuffer, ts header.TokenStream, level int, open, closing byte, end header.TokenKind) error {
	bb.WriteByte(open)

	first := true
	for {
		tok, ok := ts.Next()
		if !ok {
			return fmt.Errorf("%w: truncated header token stream", errs.ErrInvalidArgument)
		}

		if tok.Kind == end {
			if !first {
				w.startLine(bb, level)
			}
			bb.WriteByte(closing)

			return nil
		}

		if !first {
			bb.WriteByte(',')
		}
		first = false
		w.startLine(bb, level+1)

		if end == header.TokenObjectEnd {
			if tok.Kind != header.TokenKey {
				return fmt.Errorf("%w: expected header key, got %s", errs.ErrInvalidArgument, tok.Kind)
			}
			w.writeKey(bb, tok.Text)

			if tok, ok = ts.Next(); !ok {
				return fmt.Errorf("%w: truncated header token stream", errs.ErrInvalidArgument)
			}
		}

		if err := w.writeValue(bb, ts, tok, level+1); err != nil {
			return err
		}
	}
}

func (w *Writer) writeCurveDefinitions(bb *pool.ByteBuffer, curves []*Curve) {
	bb.WriteByte('[')
	if len(curves) == 0 {
		bb.WriteByte(']')
		return
	}

	for i, c := range curves {
		if i > 0 {
			bb.WriteByte(',')
		}
		w.startLine(bb, levelItem)
		bb.WriteByte('{')

		w.writeDefinitionText(bb, "name", c.Name())
		w.writeDefinitionText(bb, "description", c.Description())
		w.writeDefinitionText(bb, "quantity", c.Quantity())
		w.writeDefinitionText(bb, "unit", c.Unit())
		w.writeDefinitionText(bb, "valueType", c.ValueType().String())

		w.startLine(bb, levelItem+1)
		w.writeKey(bb, "dimensions")
		bb.WriteString(strconv.Itoa(c.Dimensions()))

		w.startLine(bb, levelItem)
		bb.WriteByte('}')
	}

	w.startLine(bb, levelMember)
	bb.WriteByte(']')
}

// writeDefinitionText writes one text member of a curve definition followed
// by a comma. Empty text is written as null.
func (w *Writer) writeDefinitionText(bb *pool.ByteBuffer, key, text string) {
	w.startLine(bb, levelItem+1)
	w.writeKey(bb, key)
	if text == "" {
		bb.WriteString(numfmt.Null)
	} else {
		bb.B = appendQuoted(bb.B, text)
	}
	bb.WriteByte(',')
}

// column holds the rendered cells of one curve for a single Write or Append.
type column struct {
	dims    int
	width   int
	cells   []string // dimension-major: cells[dim*nValues+index]
	cleanup func()
}

// renderColumn renders the first nValues samples of curve. Missing samples
// render as null.
func renderColumn(curve *Curve, isIndex bool, nValues int) column {
	dims := curve.Dimensions()
	cells, cleanup := pool.GetStringSlice(nValues * dims)
	formatter := newFormatter(curve, isIndex, nValues)

	width := 0
	for dim := 0; dim < dims; dim++ {
		for index := 0; index < nValues; index++ {
			text := renderCell(curve.Value(dim, index), formatter)
			cells[dim*nValues+index] = text
			width = max(width, len(text))
		}
	}

	return column{dims: dims, width: width, cells: cells, cleanup: cleanup}
}

func renderCell(value any, formatter *numfmt.Formatter) string {
	switch v := value.(type) {
	case nil:
		return numfmt.Null
	case float64:
		if formatter == nil {
			return header.FormatFloat(v)
		}
		return formatter.Format(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return quote(v)
	case time.Time:
		return quote(format.FormatTime(v))
	default:
		return quote(fmt.Sprint(v))
	}
}

// writeData writes one row per sample of the index curve of log.
func (w *Writer) writeData(bb *pool.ByteBuffer, log *Log) error {
	curves := log.Curves()
	nValues := log.NValues()
	if nValues == 0 || len(curves) == 0 {
		return nil
	}

	columns := make([]column, len(curves))
	for i, c := range curves {
		columns[i] = renderColumn(c, i == 0, nValues)
	}
	defer func() {
		for _, col := range columns {
			col.cleanup()
		}
	}()

	for index := 0; index < nValues; index++ {
		if w.rows > 0 {
			bb.WriteByte(',')
		}
		w.startLine(bb, levelItem)
		bb.WriteByte('[')

		for i, col := range columns {
			if i > 0 {
				bb.WriteByte(',')
				bb.WriteString(w.spacing)
			}
			w.writeCell(bb, col, index, nValues)
		}

		bb.WriteByte(']')
		w.rows++
		w.state = stateOpenWithData

		if bb.Len() >= pool.RowBufferDefaultSize {
			if err := w.drain(bb); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *Writer) writeCell(bb *pool.ByteBuffer, col column, index, nValues int) {
	if col.dims == 1 {
		bb.WritePadded(col.cells[index], col.width)
		return
	}

	bb.WriteByte('[')
	for dim := 0; dim < col.dims; dim++ {
		if dim > 0 {
			bb.WriteByte(',')
			bb.WriteString(w.spacing)
		}
		bb.WritePadded(col.cells[dim*nValues+index], col.width)
	}
	bb.WriteByte(']')
}
