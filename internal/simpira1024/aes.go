package simpira1024

// aesEnc performs a single AES encryption round (SubBytes, ShiftRows, MixColumns, AddRoundKey), equivalent to the
// AESENC instruction. It is Algorithm 1 of the Simpira V2 paper.
//
// The state is bitsliced into eight 16-bit words, one per bit position, so that every step is a fixed sequence of
// bitwise operations.
func aesEnc(state, key [16]byte) [16]byte {
	state = unpack(mixColumns(shiftRows(sbox(pack(state)))))
	for i := range state {
		state[i] ^= key[i]
	}
	return state
}

// pack transposes the state so that bit i of q[k] is bit k of byte i. With AES's column-major layout, each nibble of a
// word holds one column and bit 4c+r holds row r of column c.
func pack(s [16]byte) (q [8]uint16) {
	for i, b := range s {
		for k := range q {
			q[k] |= uint16(b>>k&1) << i
		}
	}
	return q
}

// unpack is the inverse of pack.
func unpack(q [8]uint16) (s [16]byte) {
	for i := range s {
		var b byte
		for k, w := range q {
			b |= byte(w>>i&1) << k
		}
		s[i] = b
	}
	return s
}

// shiftRows rotates row r of the state left by r columns.
func shiftRows(q [8]uint16) [8]uint16 {
	for i, w := range q {
		q[i] = w&0x1111 |
			(w&0x2220)>>4 | (w&0x0002)<<12 |
			(w&0x4400)>>8 | (w&0x0044)<<8 |
			(w&0x0888)<<4 | (w&0x8000)>>12
	}
	return q
}

// mixColumns computes 2a[r] ^ 3a[r+1] ^ a[r+2] ^ a[r+3] for every row r of every column.
func mixColumns(q [8]uint16) [8]uint16 {
	// Multiplication by x in GF(2^8), reducing by x^8 + x^4 + x^3 + x + 1.
	x := [8]uint16{q[7], q[0] ^ q[7], q[1], q[2] ^ q[7], q[3] ^ q[7], q[4], q[5], q[6]}

	// rotN moves row r+N of each column into row r.
	rot1 := func(w uint16) uint16 { return (w>>1)&0x7777 | (w&0x1111)<<3 }
	rot2 := func(w uint16) uint16 { return (w>>2)&0x3333 | (w&0x3333)<<2 }
	rot3 := func(w uint16) uint16 { return (w>>3)&0x1111 | (w&0x7777)<<1 }

	var r [8]uint16
	for k := range r {
		r[k] = x[k] ^ rot1(x[k]^q[k]) ^ rot2(q[k]) ^ rot3(q[k])
	}
	return r
}

// sbox applies the AES S-box: multiplicative inversion in GF(2^8) followed by the affine transform.
func sbox(q [8]uint16) [8]uint16 {
	return affine(inv(q))
}

// inv computes a^254, which is a^-1 for a != 0 and 0 for a == 0.
func inv(a [8]uint16) [8]uint16 {
	// a^254 = a^2 * a^4 * ... * a^128
	p := sq(a)
	r := p
	for range 6 {
		p = sq(p)
		r = mul(r, p)
	}
	return r
}

func mul(a, b [8]uint16) [8]uint16 {
	var p [15]uint16
	for i := range a {
		for j := range b {
			p[i+j] ^= a[i] & b[j]
		}
	}
	return reduce(&p)
}

func sq(a [8]uint16) [8]uint16 {
	var p [15]uint16
	for i := range a {
		p[2*i] = a[i]
	}
	return reduce(&p)
}

// reduce reduces a product of two field elements modulo x^8 + x^4 + x^3 + x + 1.
func reduce(p *[15]uint16) (r [8]uint16) {
	for i := 14; i >= 8; i-- {
		p[i-4] ^= p[i]
		p[i-5] ^= p[i]
		p[i-7] ^= p[i]
		p[i-8] ^= p[i]
	}
	copy(r[:], p[:8])
	return r
}

func affine(a [8]uint16) (s [8]uint16) {
	for i := range s {
		s[i] = a[i] ^ a[(i+4)%8] ^ a[(i+5)%8] ^ a[(i+6)%8] ^ a[(i+7)%8]
	}

	// XOR in 0x63.
	s[0], s[1], s[5], s[6] = ^s[0], ^s[1], ^s[5], ^s[6]
	return s
}
