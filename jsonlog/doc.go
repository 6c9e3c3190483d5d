// Package jsonlog implements the JSON Well Log data model together with a
// streaming writer and reader.
//
// # Data Model
//
// A Log holds a header (an immutable header.Value object), an ordered list of
// curve definitions and their samples. The first curve is the index curve;
// every other curve has one sample per index sample.
//
// # Writing
//
// Writer produces column aligned output. Float curves are rendered with a
// number of decimals derived from a significant-digit budget: the index curve
// gets enough digits to represent its step exactly, every other float curve
// gets numfmt.DefaultSignificantDigits. Column widths are computed per Write
// or Append call.
//
// # Reading
//
// Reader decodes a document log by log. A DataListener registered with
// WithDataListener is called after every chunk of rows and may clear the
// curves to keep memory bounded:
//
//	listener := jsonlog.DataListenerFunc(func(log *jsonlog.Log) {
//	    process(log)
//	    log.ClearCurves()
//	})
//	r, _ := jsonlog.NewReader(f, jsonlog.WithDataListener(listener))
//	logs, err := r.Read()
package jsonlog
