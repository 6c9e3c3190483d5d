package hash

import "github.com/cespare/xxhash/v2"

// CurveID computes the xxHash64 identifier of a curve name.
//
// Names are hashed byte for byte, so lookups by identifier are case sensitive
// in the same way curve names are.
func CurveID(name string) uint64 {
	return xxhash.Sum64String(name)
}
