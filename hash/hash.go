// Package hash provides the injected hash functions consumed by densemap
// and denseset. The container treats hashing as an external collaborator
// (see SPEC_FULL.md); this package just offers ready-made hashers so most
// callers never have to write their own.
package hash

import (
	"hash/maphash"
	"math/bits"
	"math/rand/v2"
	"unsafe"

	dolt "github.com/dolthub/maphash"
)

var hashkey = [...]uint64{rand.Uint64(), rand.Uint64()}

// String returns a hasher for string keys, seeded once per call.
func String() func(string) uint64 {
	seed := maphash.MakeSeed()
	return func(s string) uint64 {
		return maphash.String(seed, s)
	}
}

// Bytes returns a hasher for []byte keys, seeded once per call.
func Bytes() func([]byte) uint64 {
	seed := maphash.MakeSeed()
	return func(b []byte) uint64 {
		return maphash.Bytes(seed, b)
	}
}

// Integer hashing algorithm inspired by https://github.com/Nicoshev/rapidhash

// IntType constrains the integer kinds Number can hash directly.
type IntType interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Number returns a hasher for integer keys.
func Number[T IntType]() func(v T) uint64 {
	seed := rand.Uint64()
	var zero T
	seed ^= mix(seed^hashkey[0], hashkey[1]) ^ uint64(unsafe.Sizeof(zero))
	return func(v T) uint64 {
		var a, b uint64
		b = uint64(v)
		if unsafe.Sizeof(v) == 4 {
			b |= b << 32
			a = b
		} else {
			a = bits.RotateLeft64(b, 32)
		}
		b, a = bits.Mul64(a^hashkey[1], b^seed)
		return mix(a^hashkey[0]^uint64(unsafe.Sizeof(v)), b^hashkey[1])
	}
}

func mix(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return hi ^ lo
}

// Generic returns a hasher for any comparable key type, backed by
// github.com/dolthub/maphash's reflection-free generic hasher. This is the
// default used by densemap.New/denseset.New for every key type K when no
// WithHasher option is supplied.
func Generic[K comparable]() func(K) uint64 {
	h := dolt.NewHasher[K]()
	return func(k K) uint64 {
		return h.Hash(k)
	}
}
