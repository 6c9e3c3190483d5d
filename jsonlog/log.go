package jsonlog

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/arloliu/logio/errs"
	"github.com/arloliu/logio/format"
	"github.com/arloliu/logio/header"
	"github.com/arloliu/logio/internal/hash"
)

// Log is the content of one JSON well log: a header, curve definitions and curve data.
//
// Header reads never block: every SetProperty builds a new immutable header
// snapshot and publishes it atomically, so a reader observes either the old or
// the new header, never a partially built one. Concurrent SetProperty calls are
// serialised on a mutex that guards only the read-modify-swap.
//
// The curve list is append-only. Curves returns a snapshot of the list; curves
// added after the snapshot was taken are not visible through it, and adding
// them never disturbs an iteration in progress.
type Log struct {
	headerMu sync.Mutex
	hdr      atomic.Pointer[header.Value]

	curvesMu sync.RWMutex
	curves   []*Curve

	hasCurveData atomic.Bool
}

// NewLog creates an empty log with an empty header object.
func NewLog() *Log {
	return newLog(true)
}

// newLog creates a log. Readers pass hasCurveData=false when only the header
// and curve definitions are loaded.
func newLog(hasCurveData bool) *Log {
	l := &Log{}
	empty := header.EmptyObject()
	l.hdr.Store(&empty)
	l.hasCurveData.Store(hasCurveData)

	return l
}

// HasCurveData reports whether the log holds curve data, as opposed to a
// log read header-only.
func (l *Log) HasCurveData() bool {
	return l.hasCurveData.Load()
}

// Header returns the current header snapshot. It is always an object.
func (l *Log) Header() header.Value {
	return *l.hdr.Load()
}

// SetHeader replaces the whole header. v must be an object.
func (l *Log) SetHeader(v header.Value) error {
	if !v.IsObject() {
		return fmt.Errorf("%w: header must be an object, got %s", errs.ErrInvalidArgument, v.Kind())
	}

	l.headerMu.Lock()
	defer l.headerMu.Unlock()
	l.hdr.Store(&v)

	return nil
}

// SetHeaderJSON replaces the whole header with the JSON object in data.
func (l *Log) SetHeaderJSON(data []byte) error {
	v, err := header.ParseObject(data)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrMalformedInput, err)
	}

	return l.SetHeader(v)
}

// SetProperty sets the header property key to value. header.Null() unsets the
// property: the key is kept with a null value and every lookup reports it as
// not found.
func (l *Log) SetProperty(key string, value header.Value) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", errs.ErrInvalidArgument)
	}

	l.headerMu.Lock()
	defer l.headerMu.Unlock()

	next := l.hdr.Load().With(key, value)
	l.hdr.Store(&next)

	return nil
}

// AddCurve appends curve to the end of the curve list. Sample counts are not
// checked here; the writer reconciles them against the index curve.
func (l *Log) AddCurve(curve *Curve) error {
	if curve == nil {
		return fmt.Errorf("%w: curve cannot be nil", errs.ErrInvalidArgument)
	}

	l.curvesMu.Lock()
	defer l.curvesMu.Unlock()
	l.curves = append(l.curves, curve)

	return nil
}

// Curves returns a snapshot of the curve list. The first curve is the index curve.
func (l *Log) Curves() []*Curve {
	l.curvesMu.RLock()
	defer l.curvesMu.RUnlock()

	n := len(l.curves)

	return l.curves[:n:n]
}

// setCurves replaces the curve list wholesale. It is used by the reader when
// populating a log, hasData tells whether the curves carry their samples.
func (l *Log) setCurves(curves []*Curve, hasData bool) {
	l.curvesMu.Lock()
	defer l.curvesMu.Unlock()

	l.curves = curves
	l.hasCurveData.Store(hasData)
}

// NCurves returns the number of curves.
func (l *Log) NCurves() int {
	l.curvesMu.RLock()
	defer l.curvesMu.RUnlock()

	return len(l.curves)
}

// NValues returns the number of samples of the index curve, 0 without curves.
func (l *Log) NValues() int {
	index := l.IndexCurve()
	if index == nil {
		return 0
	}

	return index.Len()
}

// IndexCurve returns the first curve, or nil if the log has no curves.
func (l *Log) IndexCurve() *Curve {
	l.curvesMu.RLock()
	defer l.curvesMu.RUnlock()

	if len(l.curves) == 0 {
		return nil
	}

	return l.curves[0]
}

// FindCurve returns the first curve with the given name.
func (l *Log) FindCurve(name string) (*Curve, bool) {
	id := hash.CurveID(name)
	for _, c := range l.Curves() {
		if c.id == id && c.name == name {
			return c, true
		}
	}

	return nil, false
}

// IndexValueType returns the value type of the index curve, or float when the
// log has no curves.
func (l *Log) IndexValueType() format.ValueType {
	index := l.IndexCurve()
	if index == nil {
		return format.TypeFloat
	}

	return index.ValueType()
}

// ClearCurves removes the samples of every curve, keeping the definitions.
// Call it from a DataListener to bound memory while reading.
func (l *Log) ClearCurves() {
	for _, c := range l.Curves() {
		c.Clear()
	}
}

// TrimCurves releases unused buffer capacity of every curve.
func (l *Log) TrimCurves() {
	for _, c := range l.Curves() {
		c.Trim()
	}
}

// String returns a multi-line description of the log for diagnostics.
func (l *Log) String() string {
	var sb strings.Builder
	sb.WriteString("-- JSON well log\nHeader:\n")

	for _, m := range l.Header().Members() {
		text, ok := m.Value.AsString()
		if !ok {
			text = m.Value.Kind().String()
		}
		fmt.Fprintf(&sb, "  %s: %s\n", m.Key, text)
	}
	for _, c := range l.Curves() {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}
