package jsonlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/logio/errs"
	"github.com/arloliu/logio/format"
	"github.com/arloliu/logio/internal/options"
)

// Reader reads the logs of a JSON Well Log document.
//
// The document is decoded as a token stream: headers are captured and parsed
// one at a time and data rows are decoded row by row, so a DataListener that
// consumes and clears the curves keeps memory bounded for any data size.
type Reader struct {
	cfg  *ReaderConfig
	src  io.Reader
	path string
}

// curveDefinition is the wire form of one entry of the curves array.
type curveDefinition struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Quantity    *string `json:"quantity"`
	Unit        *string `json:"unit"`
	ValueType   *string `json:"valueType"`
	Dimensions  *int    `json:"dimensions"`
}

// NewReader creates a reader for the document in r.
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reader cannot be nil", errs.ErrInvalidArgument)
	}

	return newReader("", r, opts)
}

// NewFileReader creates a reader for the file at path. The file is opened by Read.
func NewFileReader(path string, opts ...ReaderOption) (*Reader, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", errs.ErrInvalidArgument)
	}

	return newReader(path, nil, opts)
}

func newReader(path string, src io.Reader, opts []ReaderOption) (*Reader, error) {
	cfg := newReaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Reader{cfg: cfg, src: src, path: path}, nil
}

// Read decodes every log of the document.
//
// Within a log object the header and the curve definitions must precede the
// data array, so a DataListener always sees the complete header.
//
// When a DataListener is configured it is called on the reading goroutine
// each time a chunk of rows has been added to the curves, and once more for
// a trailing partial chunk. Errors in the document wrap errs.ErrMalformedInput.
func (r *Reader) Read() ([]*Log, error) {
	src := r.src
	if r.path != "" {
		f, err := os.Open(r.path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}

	dec := json.NewDecoder(bufio.NewReaderSize(src, r.cfg.bufferSize))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var logs []*Log
	for dec.More() {
		log, err := r.readLog(dec, len(logs))
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	r.cfg.logger.Debug("json document read",
		slog.String("path", r.path),
		slog.Int("logs", len(logs)))

	return logs, nil
}

func (r *Reader) readLog(dec *json.Decoder, logNo int) (*Log, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	log := newLog(r.cfg.curveData)
	var curves []*Curve
	headerRead, curvesRead := false, false

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case "header":
			if err := readHeader(dec, log); err != nil {
				return nil, fmt.Errorf("log %d: %w", logNo, err)
			}
			headerRead = true
		case "curves":
			if curves, err = readCurveDefinitions(dec); err != nil {
				return nil, fmt.Errorf("log %d: %w", logNo, err)
			}
			curvesRead = true
			log.setCurves(curves, r.cfg.curveData)
		case "data":
			if !r.cfg.curveData {
				err = skipValue(dec)
				break
			}
			if !headerRead {
				return nil, fmt.Errorf("%w: log %d: data before header", errs.ErrMalformedInput, logNo)
			}
			if !curvesRead {
				return nil, fmt.Errorf("%w: log %d: data before curve definitions", errs.ErrMalformedInput, logNo)
			}
			err = r.readData(dec, log, curves)
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return nil, fmt.Errorf("log %d: %w", logNo, malformed(err))
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	r.cfg.logger.Debug("json log read",
		slog.Int("log", logNo),
		slog.String("name", log.Name()),
		slog.Int("curves", len(curves)),
		slog.Int("rows", log.NValues()))

	return log, nil
}

func readHeader(dec *json.Decoder, log *Log) error {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return malformed(err)
	}

	return log.SetHeaderJSON(raw)
}

func readCurveDefinitions(dec *json.Decoder) ([]*Curve, error) {
	var defs []curveDefinition
	if err := dec.Decode(&defs); err != nil {
		return nil, malformed(err)
	}

	curves := make([]*Curve, 0, len(defs))
	for i, def := range defs {
		c, err := def.curve()
		if err != nil {
			return nil, fmt.Errorf("%w: curve %d: %w", errs.ErrMalformedInput, i, err)
		}
		curves = append(curves, c)
	}

	return curves, nil
}

func (d curveDefinition) curve() (*Curve, error) {
	valueType := format.TypeFloat
	if d.ValueType != nil {
		vt, err := format.ParseValueType(*d.ValueType)
		if err != nil {
			return nil, err
		}
		valueType = vt
	}

	opts := []CurveOption{
		WithDescription(deref(d.Description)),
		WithQuantity(deref(d.Quantity)),
		WithUnit(deref(d.Unit)),
	}
	if d.Dimensions != nil {
		opts = append(opts, WithDimensions(*d.Dimensions))
	}

	return NewCurve(d.Name, valueType, opts...)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// readData decodes the data array row by row into curves.
func (r *Reader) readData(dec *json.Decoder, log *Log, curves []*Curve) error {
	if err := expectDelim(dec, '['); err != nil {
		return err
	}

	pending := 0
	for rowNo := 0; dec.More(); rowNo++ {
		var row []any
		if err := dec.Decode(&row); err != nil {
			return err
		}
		if err := addRow(curves, row); err != nil {
			return fmt.Errorf("row %d: %w", rowNo, err)
		}

		pending++
		if r.cfg.listener != nil && pending == r.cfg.chunkSize {
			r.cfg.listener.DataRead(log)
			pending = 0
		}
	}

	if err := expectDelim(dec, ']'); err != nil {
		return err
	}

	if r.cfg.listener != nil && pending > 0 {
		r.cfg.listener.DataRead(log)
	}
	log.TrimCurves()

	return nil
}

func addRow(curves []*Curve, row []any) error {
	if len(row) != len(curves) {
		return fmt.Errorf("%w: row has %d cells, expected %d", errs.ErrMalformedInput, len(row), len(curves))
	}

	for i, c := range curves {
		cell := row[i]
		if c.Dimensions() == 1 {
			if err := c.AddValue(cell); err != nil {
				return fmt.Errorf("curve %s: %w", c.Name(), err)
			}

			continue
		}

		if cell == nil {
			c.AddNull()
			continue
		}

		values, ok := cell.([]any)
		if !ok {
			return fmt.Errorf("%w: curve %s: expected array of %d values", errs.ErrMalformedInput, c.Name(), c.Dimensions())
		}
		if err := c.AddValues(values...); err != nil {
			return fmt.Errorf("curve %s: %w", c.Name(), err)
		}
	}

	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", malformed(err)
	}

	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected object key, got %v", errs.ErrMalformedInput, tok)
	}

	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return malformed(err)
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", errs.ErrMalformedInput, want, tok)
	}

	return nil
}

// skipValue consumes the next value of dec, token by token.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	d, ok := tok.(json.Delim)
	if !ok {
		return nil
	}

	isObject := d == '{'
	for dec.More() {
		if isObject {
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		if err := skipValue(dec); err != nil {
			return err
		}
	}

	_, err = dec.Token()

	return err
}

// malformed marks err as a document error unless it already is one.
func malformed(err error) error {
	if err == nil || errors.Is(err, errs.ErrMalformedInput) {
		return err
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return fmt.Errorf("%w: %w", errs.ErrMalformedInput, err)
}
