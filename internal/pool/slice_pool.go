package pool

import "sync"

// Slice pools used when a curve is flattened into a column for formatting.
var (
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
	stringSlicePool = sync.Pool{
		New: func() any { return &[]string{} },
	}
)

// GetFloat64Slice retrieves a float64 slice of exactly size elements from the pool.
//
// The caller must call the returned cleanup function, typically with defer,
// once the slice is no longer referenced.
//
// Example:
//
//	column, cleanup := pool.GetFloat64Slice(curve.Len())
//	defer cleanup()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}

// GetStringSlice retrieves a string slice of exactly size elements from the pool.
//
// Pooled strings are cleared on return so rendered cells are not kept alive
// by the pool after a write completes.
func GetStringSlice(size int) ([]string, func()) {
	ptr, _ := stringSlicePool.Get().(*[]string)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]string, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() {
		clear(*ptr)
		stringSlicePool.Put(ptr)
	}
}
