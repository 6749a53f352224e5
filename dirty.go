package gimbal

import "fmt"

// DirtyFlags is a growable set of boolean flags. A Node carries two of them:
// a local set for concerns that only depend on the node's own pose and a
// world set for anything that depends on the ancestor chain.
//
// Reads are pull based. Get with consume=true returns the current value and
// clears it in the same call, so every registrant observes a transition at
// most once. A registrant that does not poll every frame may see several
// mutations collapsed into one.
type DirtyFlags struct {
	bits []bool
}

// newDirtyFlags returns a set with n reserved slots, all dirty.
func newDirtyFlags(n int) DirtyFlags {
	f := DirtyFlags{bits: make([]bool, n)}
	f.SetAll(true)
	return f
}

// Add registers a new slot and returns its index. The slot starts dirty so
// the first poll reports a change since registration.
func (f *DirtyFlags) Add() int {
	f.bits = append(f.bits, true)
	return len(f.bits) - 1
}

// Len returns the number of registered slots.
func (f *DirtyFlags) Len() int {
	return len(f.bits)
}

// Get returns the value of slot i. When consume is true the slot is cleared.
// Panics if i is out of range.
func (f *DirtyFlags) Get(i int, consume bool) bool {
	f.check(i)
	v := f.bits[i]
	if consume {
		f.bits[i] = false
	}
	return v
}

// Set sets slot i to v. Panics if i is out of range.
func (f *DirtyFlags) Set(i int, v bool) {
	f.check(i)
	f.bits[i] = v
}

// SetAll sets every slot to v.
func (f *DirtyFlags) SetAll(v bool) {
	for i := range f.bits {
		f.bits[i] = v
	}
}

func (f *DirtyFlags) check(i int) {
	if i < 0 || i >= len(f.bits) {
		panic(fmt.Sprintf("gimbal: dirty flag index %d out of range [0,%d)", i, len(f.bits)))
	}
}
