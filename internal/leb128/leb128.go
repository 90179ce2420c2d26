// Package leb128 implements the unsigned [LEB128] encoding used to frame label and data lengths before they are
// absorbed into a duplex.
//
// Encodings are never decoded; they exist only to make the boundaries between absorbed fields unambiguous.
//
// [LEB128]: https://en.wikipedia.org/wiki/LEB128
package leb128

// MaxSize is the length, in bytes, of the largest encoded integer.
const MaxSize = 10

// Encode encodes x using unsigned LEB128. It returns a fixed-size buffer and the number of significant bytes in it.
//
// Each byte holds seven bits of x, least significant group first. The high bit is set on every byte but the last.
func Encode(x uint64) (buf [MaxSize]byte, n int) {
	for x >= 0x80 {
		buf[n] = byte(x) | 0x80
		x >>= 7
		n++
	}
	buf[n] = byte(x)
	return buf, n + 1
}

// EncodeLen encodes the length of a slice or string.
//
// EncodeLen panics if n is negative.
func EncodeLen(n int) (buf [MaxSize]byte, size int) {
	if n < 0 {
		panic("leb128: length cannot be negative")
	}
	return Encode(uint64(n))
}
