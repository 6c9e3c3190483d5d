package jsonlog

// DataListener is notified by a Reader each time a chunk of samples has been
// appended to the curves of a log.
//
// It is the hook for processing logs larger than physical memory: the
// listener consumes the new samples and may call log.ClearCurves before
// returning so the reader starts the next chunk with empty buffers.
//
//	type exporter struct{ w *jsonlog.Writer }
//
//	func (e *exporter) DataRead(log *jsonlog.Log) {
//	    _ = e.w.Append(log)
//	    log.ClearCurves()
//	}
//
// DataRead runs synchronously on the reading goroutine. The log is never nil
// and its header and curve definitions are fully populated before the first
// call. Curve buffers may be cleared as soon as DataRead returns, so a
// listener must copy any samples it wants to keep.
type DataListener interface {
	DataRead(log *Log)
}

// DataListenerFunc adapts a plain function into a DataListener.
type DataListenerFunc func(log *Log)

// DataRead calls f(log).
func (f DataListenerFunc) DataRead(log *Log) {
	f(log)
}
