package lumen

import (
	"hash/fnv"
	"math"
)

// Hasher accumulates the structural hashes used for reconciliation
// (props hash) and renderable caching (render hash).
type Hasher struct {
	h uint64
}

// NewHasher returns a fresh Hasher.
func NewHasher() *Hasher {
	f := fnv.New64a()
	return &Hasher{h: f.Sum64()}
}

func (h *Hasher) write(b []byte) {
	// Inline FNV-1a so writes don't allocate.
	for _, c := range b {
		h.h ^= uint64(c)
		h.h *= 1099511628211
	}
}

func (h *Hasher) WriteUint64(v uint64) {
	var b [8]byte
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
	h.write(b[:])
}

func (h *Hasher) WriteInt(v int) {
	h.WriteUint64(uint64(v))
}

func (h *Hasher) WriteFloat(v float64) {
	h.WriteUint64(math.Float64bits(v))
}

func (h *Hasher) WriteBool(v bool) {
	if v {
		h.WriteUint64(1)
	} else {
		h.WriteUint64(0)
	}
}

func (h *Hasher) WriteString(s string) {
	h.write([]byte(s))
	h.WriteUint64(uint64(len(s)))
}

// Sum returns the accumulated hash.
func (h *Hasher) Sum() uint64 {
	return h.h
}
