// Package volatile provides memory-mapped register words.
//
// Every access is a single atomic load or store so the compiler can neither
// elide nor reorder it. On the host the same types back in-memory register
// blocks, which lets drivers be exercised without hardware.
package volatile

import "sync/atomic"

type Register32 struct {
	Reg uint32
}

func (r *Register32) Get() uint32 {
	return atomic.LoadUint32(&r.Reg)
}

func (r *Register32) Set(value uint32) {
	atomic.StoreUint32(&r.Reg, value)
}

// SetBits reads the register, ORs in value and writes it back.
func (r *Register32) SetBits(value uint32) {
	r.Set(r.Get() | value)
}

// ClearBits reads the register, clears the bits in value and writes it back.
func (r *Register32) ClearBits(value uint32) {
	r.Set(r.Get() &^ value)
}

func (r *Register32) HasBits(value uint32) bool {
	return r.Get()&value != 0
}

// ReplaceBits replaces the field of width mask at position pos with value.
func (r *Register32) ReplaceBits(value uint32, mask uint32, pos uint8) {
	v := r.Get()
	v &^= mask << pos
	v |= (value & mask) << pos
	r.Set(v)
}

// Field extracts the field of width mask at position pos.
func (r *Register32) Field(mask uint32, pos uint8) uint32 {
	return (r.Get() >> pos) & mask
}
