// Package simpira1024 provides a portable implementation of the Simpira-1024 permutation, also known as
// [Simpira b=8 V2].
//
// The AES round at its core is bitsliced so that it runs in constant time without table lookups.
//
// [Simpira b=8 V2]: https://eprint.iacr.org/2016/122.pdf
package simpira1024

import "encoding/binary"

const (
	// Width is the permutation's width in bytes.
	Width = 128

	blocks = Width / 16
	rounds = 18
)

// Permute applies the Simpira b=8 V2 permutation to a 1024-bit state. It implements Algorithm 9 of the Simpira V2
// paper.
func Permute(state *[Width]byte) {
	var x [blocks][16]byte
	for i := range x {
		copy(x[i][:], state[i*16:])
	}

	// The Feistel structure cycles the six blocks in s and the two blocks in t through four F-functions per round.
	s := [6]int{0, 1, 6, 5, 4, 3}
	t := [2]int{2, 7}
	c := uint32(1)
	for r := range rounds {
		steps := [4]struct{ src, dst int }{
			{s[r%6], s[(r+1)%6]},
			{t[r%2], s[(r+5)%6]},
			{s[(r+4)%6], s[(r+3)%6]},
			{s[(r+2)%6], t[(r+1)%2]},
		}

		// All four F-functions read the pre-round values of their source blocks.
		var f [4][16]byte
		for i, step := range steps {
			f[i] = roundF(x[step.src], c)
			c++
		}

		for i, step := range steps {
			for j := range 16 {
				x[step.dst][j] ^= f[i][j]
			}
		}
	}

	for i := range x {
		copy(state[i*16:], x[i][:])
	}
}

// roundF is the F-function from Algorithm 2 of the Simpira V2 paper: two AES rounds, the first keyed with a
// round-dependent constant and the second with zero.
func roundF(x [16]byte, c uint32) [16]byte {
	var k [16]byte
	for i := range 4 {
		binary.LittleEndian.PutUint32(k[i*4:], uint32(i)<<4^blocks^c)
	}
	return aesEnc(aesEnc(x, k), [16]byte{})
}
