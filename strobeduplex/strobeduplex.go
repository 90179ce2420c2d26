// Package strobeduplex provides a fiatshamir.Construction backed by [STROBE] over Keccak-f[1600], using the
// [StrobeGo] implementation.
//
// Transcripts built with this construction are interchangeable in use with the default Simpira construction, but their
// challenges are different.
//
// [STROBE]: https://strobe.sourceforge.io
// [StrobeGo]: https://github.com/mimoo/StrobeGo
package strobeduplex

import (
	"github.com/codahale/fiatshamir"
	"github.com/mimoo/StrobeGo/strobe"
)

const (
	// Security is the STROBE security level, in bits.
	Security = 128

	// ratchetSize is the number of rate bytes zeroed by a ratchet.
	ratchetSize = Security / 8
)

// New returns a STROBE duplex initialized with the given domain separation context. It is a fiatshamir.Construction.
func New(context []byte) fiatshamir.Duplex {
	return &duplex{s: strobe.InitStrobe(string(context), Security)}
}

type duplex struct {
	s strobe.Strobe

	// StrobeGo cannot begin an operation without any data, so an empty, uncontinued squeeze is held until the next
	// squeeze continues it.
	pendingSqueeze bool
}

func (d *duplex) AbsorbKey(key []byte, more bool) {
	d.checkPending()
	d.s.Operate(false, "KEY", key, 0, more)
}

func (d *duplex) AbsorbData(data []byte, more bool) {
	d.checkPending()
	d.s.Operate(false, "AD", data, 0, more)
}

func (d *duplex) AbsorbMetadata(data []byte, more bool) {
	d.checkPending()
	d.s.Operate(true, "AD", data, 0, more)
}

func (d *duplex) Squeeze(out []byte, more bool) {
	if len(out) == 0 {
		if !more {
			d.checkPending()
			d.pendingSqueeze = true
		}
		return
	}

	if !more {
		d.checkPending()
	} else if d.pendingSqueeze {
		more = false
		d.pendingSqueeze = false
	}
	copy(out, d.s.Operate(false, "PRF", nil, len(out), more))
}

func (d *duplex) Ratchet() {
	d.checkPending()
	d.s.RATCHET(ratchetSize)
}

func (d *duplex) Clone() fiatshamir.Duplex {
	return &duplex{s: *d.s.Clone(), pendingSqueeze: d.pendingSqueeze}
}

func (d *duplex) checkPending() {
	if d.pendingSqueeze {
		panic("strobeduplex: an empty squeeze must be continued by another squeeze")
	}
}

var _ fiatshamir.Construction = New
