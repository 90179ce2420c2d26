package fiatshamir

import (
	"encoding/binary"
	"io"

	"github.com/gtank/ristretto255"
)

// SeedSize is the size, in bytes, of a Stream's seed.
const SeedSize = 32

// streamContext is the domain separation context for every Stream's duplex. It is never used as a protocol identifier.
const streamContext = "fiatshamir.challenge-stream"

// A Stream is a deterministic, unbounded stream of pseudorandom bytes derived from a seed.
//
// The bytes a Stream produces depend only on its seed, not on how they are read: reading 32 bytes and then 32 more
// yields the same 64 bytes as a single 64-byte read.
//
// Stream instances are not concurrent-safe.
type Stream struct {
	duplex Duplex
}

// NewStream returns a Stream seeded with the given seed, using the Simpira Construction.
func NewStream(seed *[SeedSize]byte) *Stream {
	return NewStreamWith(Simpira, seed)
}

// NewStreamWith returns a Stream seeded with the given seed, using the given Construction.
func NewStreamWith(c Construction, seed *[SeedSize]byte) *Stream {
	d := c([]byte(streamContext))
	d.AbsorbKey(seed[:], false)

	// Begin the squeeze operation without output so that every read continues it.
	d.Squeeze(nil, false)

	return &Stream{duplex: d}
}

// Fill fills dst with the next len(dst) bytes of the stream.
func (s *Stream) Fill(dst []byte) {
	s.duplex.Squeeze(dst, true)
}

// Read fills p with the next len(p) bytes of the stream. It implements io.Reader and never returns an error.
func (s *Stream) Read(p []byte) (n int, err error) {
	s.Fill(p)
	return len(p), nil
}

// Bytes appends the next n bytes of the stream to dst and returns the resulting slice.
//
// Bytes panics if n is negative.
func (s *Stream) Bytes(dst []byte, n int) []byte {
	if n < 0 {
		panic("invalid argument to Bytes: n cannot be negative")
	}

	ret, out := sliceForAppend(dst, n)
	s.Fill(out)
	return ret
}

// Uint32 returns the next four bytes of the stream as a little-endian uint32.
func (s *Stream) Uint32() uint32 {
	var b [4]byte
	s.Fill(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// Uint64 returns the next eight bytes of the stream as a little-endian uint64.
func (s *Stream) Uint64() uint64 {
	var b [8]byte
	s.Fill(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// Scalar returns a uniformly distributed ristretto255 scalar derived from the next 64 bytes of the stream.
func (s *Stream) Scalar() *ristretto255.Scalar {
	var b [64]byte
	s.Fill(b[:])
	x, err := ristretto255.NewScalar().SetUniformBytes(b[:])
	if err != nil {
		panic(err)
	}
	return x
}

// Element returns a uniformly distributed ristretto255 element derived from the next 64 bytes of the stream.
func (s *Stream) Element() *ristretto255.Element {
	var b [64]byte
	s.Fill(b[:])
	e, err := ristretto255.NewIdentityElement().SetUniformBytes(b[:])
	if err != nil {
		panic(err)
	}
	return e
}

var _ io.Reader = (*Stream)(nil)
