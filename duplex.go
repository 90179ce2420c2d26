package fiatshamir

import "github.com/codahale/fiatshamir/internal/duplex"

// A Duplex is a cryptographic duplex which a Transcript or Stream sequences its operations into.
//
// Every absorbing or squeezing method takes a more argument. When more is false, the call begins a new operation; when
// it is true, the call continues the previous operation, which must be of the same kind. Continuing an operation with
// inputs a and b must be indistinguishable from a single call with a||b, and continuing a squeeze must yield the next
// bytes of the same output stream.
//
// Absorbed metadata must remain cryptographically distinct from absorbed data, even if the bytes are identical.
type Duplex interface {
	// AbsorbKey absorbs secret key material.
	AbsorbKey(key []byte, more bool)

	// AbsorbData absorbs ordinary content.
	AbsorbData(data []byte, more bool)

	// AbsorbMetadata absorbs framing data, such as labels and lengths.
	AbsorbMetadata(data []byte, more bool)

	// Squeeze fills out with pseudorandom output.
	Squeeze(out []byte, more bool)

	// Ratchet irreversibly modifies the state so that prior states cannot be recovered from it.
	Ratchet()

	// Clone returns an independent copy of the duplex. Operations on either copy must not affect the other.
	Clone() Duplex
}

// A Construction returns a new Duplex initialized with the given domain separation context.
type Construction func(context []byte) Duplex

// Simpira is a Construction which returns a STROBE-like framed duplex over the Simpira-1024 permutation, offering 128
// bits of security. It is the default Construction for transcripts and streams.
func Simpira(context []byte) Duplex {
	return &simpiraDuplex{s: duplex.New(context)}
}

type simpiraDuplex struct {
	s duplex.State
}

func (d *simpiraDuplex) AbsorbKey(key []byte, more bool) {
	d.s.Begin(duplex.FlagKey, more)
	d.s.Absorb(key)
}

func (d *simpiraDuplex) AbsorbData(data []byte, more bool) {
	d.s.Begin(duplex.FlagData, more)
	d.s.Absorb(data)
}

func (d *simpiraDuplex) AbsorbMetadata(data []byte, more bool) {
	d.s.Begin(duplex.FlagMeta|duplex.FlagData, more)
	d.s.Absorb(data)
}

func (d *simpiraDuplex) Squeeze(out []byte, more bool) {
	d.s.Begin(duplex.FlagSqueeze, more)
	d.s.Squeeze(out)
}

func (d *simpiraDuplex) Ratchet() {
	d.s.Begin(duplex.FlagRatchet, false)
	d.s.Ratchet()
}

func (d *simpiraDuplex) Clone() Duplex {
	c := *d
	return &c
}

var _ Duplex = (*simpiraDuplex)(nil)
