// Package logio reads and writes well logs in the JSON Well Log format.
//
// A JSON Well Log document is an array of logs. Each log carries a free-form
// header object, an ordered list of curve definitions and a data array with
// one row per sample of the index curve (the first curve):
//
//	[
//	  {
//	    "header": {"name": "EcoScope Data", "well": "35/12-6S", ...},
//	    "curves": [{"name": "MD", "unit": "m", "valueType": "float", "dimensions": 1, ...}, ...],
//	    "data": [[1000.0, 10.3], [1000.5, 11.2], ...]
//	  }
//	]
//
// # Core Features
//
//   - Streaming writer: a log is written once and its data appended in
//     batches, so memory is bounded by one batch
//   - Column aligned output with a significant-digit policy per float curve
//   - Streaming reader with a DataListener notified after every chunk of rows
//   - Header properties stored as an immutable tree, readable while another
//     goroutine updates them
//
// # Basic Usage
//
// Writing a log:
//
//	log := logio.NewLog()
//	log.SetName("EcoScope Data")
//	log.SetWell("35/12-6S")
//
//	depth, _ := logio.NewCurve("MD", format.TypeFloat, jsonlog.WithUnit("m"))
//	gr, _ := logio.NewCurve("GR", format.TypeFloat, jsonlog.WithUnit("gAPI"))
//	log.AddCurve(depth)
//	log.AddCurve(gr)
//
//	for i := 0; i < 1000; i++ {
//	    depth.AddValue(1000 + 0.5*float64(i))
//	    gr.AddValue(readGammaRay(i))
//	}
//
//	err := logio.WriteFile("well.json", []*logio.Log{log})
//
// Reading it back:
//
//	logs, err := logio.ReadFile("well.json")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the jsonlog
// package. Use jsonlog directly for incremental writing with Append and for
// header-only reading.
package logio

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/arloliu/logio/format"
	"github.com/arloliu/logio/internal/hash"
	"github.com/arloliu/logio/jsonlog"
)

// Log is one JSON well log.
type Log = jsonlog.Log

// Curve is one curve of a log.
type Curve = jsonlog.Curve

// NewLog creates an empty log.
func NewLog() *Log {
	return jsonlog.NewLog()
}

// NewCurve creates an empty curve.
func NewCurve(name string, valueType format.ValueType, opts ...jsonlog.CurveOption) (*Curve, error) {
	return jsonlog.NewCurve(name, valueType, opts...)
}

// CurveID returns the 64-bit identifier of a curve name, as reported by Curve.ID.
func CurveID(name string) uint64 {
	return hash.CurveID(name)
}

// NewWriter creates a streaming writer on w.
func NewWriter(w io.Writer, opts ...jsonlog.WriterOption) (*jsonlog.Writer, error) {
	return jsonlog.NewWriter(w, opts...)
}

// NewFileWriter creates a streaming writer on the file at path.
func NewFileWriter(path string, opts ...jsonlog.WriterOption) (*jsonlog.Writer, error) {
	return jsonlog.NewFileWriter(path, opts...)
}

// NewReader creates a reader for the document in r.
func NewReader(r io.Reader, opts ...jsonlog.ReaderOption) (*jsonlog.Reader, error) {
	return jsonlog.NewReader(r, opts...)
}

// WriteLogs writes logs as one document to w.
func WriteLogs(w io.Writer, logs []*Log, opts ...jsonlog.WriterOption) error {
	writer, err := jsonlog.NewWriter(w, opts...)
	if err != nil {
		return err
	}

	return writeAll(writer, logs)
}

// WriteFile writes logs as one document to the file at path.
func WriteFile(path string, logs []*Log, opts ...jsonlog.WriterOption) error {
	writer, err := jsonlog.NewFileWriter(path, opts...)
	if err != nil {
		return err
	}

	return writeAll(writer, logs)
}

func writeAll(writer *jsonlog.Writer, logs []*Log) error {
	for i, log := range logs {
		if err := writer.Write(log); err != nil {
			return multierr.Append(fmt.Errorf("write log %d: %w", i, err), writer.Close())
		}
	}

	return writer.Close()
}

// ToString renders logs as a JSON Well Log document. An empty slice renders
// as an empty string.
func ToString(logs []*Log, pretty bool, indentation int) (string, error) {
	var buf bytes.Buffer
	err := WriteLogs(&buf, logs, jsonlog.WithPretty(pretty), jsonlog.WithIndentation(indentation))
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ReadFile reads every log of the document at path.
func ReadFile(path string, opts ...jsonlog.ReaderOption) ([]*Log, error) {
	reader, err := jsonlog.NewFileReader(path, opts...)
	if err != nil {
		return nil, err
	}

	return reader.Read()
}

// Read reads every log of the document in r.
func Read(r io.Reader, opts ...jsonlog.ReaderOption) ([]*Log, error) {
	reader, err := jsonlog.NewReader(r, opts...)
	if err != nil {
		return nil, err
	}

	return reader.Read()
}
