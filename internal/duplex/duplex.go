// Package duplex implements a framed cryptographic duplex over the Simpira-1024 permutation.
package duplex

import (
	"crypto/subtle"

	"github.com/codahale/fiatshamir/internal/simpira1024"
)

// Flags identify the kind of operation being performed on a duplex. They are absorbed at the start of every
// operation, so operations of different kinds never share an encoding.
type Flags byte

const (
	FlagInit    Flags = 1 << iota // Initialization with a domain separation context.
	FlagMeta                      // Framing metadata, as opposed to content.
	FlagKey                       // Secret key material.
	FlagData                      // Absorbed content.
	FlagSqueeze                   // Pseudorandom output.
	FlagRatchet                   // Irreversible erasure of prior state.
)

// forcePermute are the flags of operations which must start on a freshly permuted state.
const forcePermute = FlagKey | FlagSqueeze | FlagRatchet

// A State is the state of a cryptographic duplex. It uses the Simpira-1024 permutation, has a width of 1024 bits, a
// capacity of 256 bits, 8 bits of framing, 8 bits of padding, and a rate of 752 bits. This offers 128 bits of security
// for collision resistance, 256 bits of security for state recovery, and 128 bits of security for birthday-bound
// indistinguishability.
//
// In addition to using SHA-3's pad10*1 scheme for each block of permutation input, it uses a STROBE-like framing
// mechanism for domain separation of operations. Each operation begins with a frame and its flags, and may be
// continued across multiple calls without changing the resulting state.
//
// A State has value semantics: assigning it copies the entire state.
type State struct {
	state             [width]byte
	rateIdx, frameIdx int
	flags             Flags
}

// New returns a State initialized with the given domain separation context.
func New(context []byte) State {
	var d State
	d.Begin(FlagInit|FlagMeta, false)
	d.Absorb(context)
	return d
}

// Begin starts a new operation with the given flags by framing the state and absorbing the flags. Key, squeeze, and
// ratchet operations additionally permute the state so that they start on a fresh block.
//
// If more is true, the current operation is continued instead and Begin has no effect on the state. Begin panics if a
// continued operation's flags differ from the ones it was started with.
func (d *State) Begin(flags Flags, more bool) {
	if more {
		if flags != d.flags {
			panic("duplex: cannot continue a different operation")
		}
		return
	}

	d.Frame()
	d.AbsorbByte(byte(flags))
	d.flags = flags
	if flags&forcePermute != 0 {
		d.Permute()
	}
}

// Permute applies a Frame-oriented padding scheme to the state by absorbing the Frame index into the rate or
// potentially overflowing into the first of two padding bytes, then applies SHA-3's pad10*1 padding scheme to the
// entire, unpadded rate. Finally, it permutes the entire state with Simpira-1024 and resets rateIdx and frameIdx.
func (d *State) Permute() {
	d.state[d.rateIdx] ^= byte(d.frameIdx)
	d.rateIdx++
	d.state[d.rateIdx] ^= 0x01
	d.state[padByteIdx] ^= 0x80
	simpira1024.Permute(&d.state)
	d.rateIdx = 0
	d.frameIdx = 0
}

// Absorb updates the duplex's state with the given data, running the permutation as the rate is exhausted.
//
// Multiple Absorb calls are effectively the same thing as a single Absorb call with concatenated inputs.
func (d *State) Absorb(b []byte) {
	for len(b) > 0 {
		remain := min(len(b), maxRateIdx-d.rateIdx)
		dst := d.state[d.rateIdx : d.rateIdx+remain]
		subtle.XORBytes(dst, dst, b[:remain])
		d.rateIdx += remain
		if d.rateIdx == maxRateIdx {
			d.Permute()
		}
		b = b[remain:]
	}
}

// AbsorbByte absorbs a single byte.
func (d *State) AbsorbByte(b byte) {
	d.state[d.rateIdx] ^= b
	d.rateIdx++
	if d.rateIdx == maxRateIdx {
		d.Permute()
	}
}

// Frame absorbs the current frame index and updates the frame index to be the current rate index.
func (d *State) Frame() {
	d.AbsorbByte(byte(d.frameIdx))
	d.frameIdx = d.rateIdx
}

// Squeeze fills the given slice with data from the duplex's state, running the permutation as the state becomes
// exhausted.
//
// Multiple Squeeze calls are effectively the same thing as a single Squeeze call with concatenated outputs.
func (d *State) Squeeze(out []byte) {
	for len(out) > 0 {
		remain := min(len(out), maxRateIdx-d.rateIdx)
		copy(out[:remain], d.state[d.rateIdx:d.rateIdx+remain])
		d.rateIdx += remain
		if d.rateIdx == maxRateIdx {
			d.Permute()
		}
		out = out[remain:]
	}
}

// Ratchet applies the Simpira-1024 permutation if needed, then zeros out 256 bits of the rate, preventing rollback.
func (d *State) Ratchet() {
	if d.rateIdx > 0 {
		d.Permute()
	}
	// Zero out a portion of the rate equal to the size of the capacity and advance past it. This ensures the security
	// margin for state recovery applies to rollback attacks as well.
	clear(d.state[:capacity])
	d.rateIdx = capacity
}

const (
	width      = simpira1024.Width // The width of the permutation in bytes.
	capacity   = 32                // The duplex's capacity in bytes.
	padding    = 1                 // The duplex uses a dedicated byte for pad10*1 block padding.
	framing    = 1                 // The duplex uses a reserved byte for framing.
	maxRateIdx = width - padding - framing - capacity
	padByteIdx = width - capacity - padding
)
