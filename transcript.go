// Package fiatshamir provides Fiat-Shamir transcripts, which turn interactive public-coin protocols into
// non-interactive ones.
//
// A Transcript records the messages of a protocol by absorbing them into the state of a cryptographic duplex. Where a
// verifier would send a random challenge, the prover instead draws one from the transcript. Each challenge is a Stream
// of pseudorandom bytes that depends on the protocol, on every message and challenge recorded so far, and on the
// challenge's own label.
//
// Labels and lengths are framed with LEB128 and absorbed as metadata, separately from message contents, so no two
// different sequences of messages share an encoding.
package fiatshamir

import (
	"slices"

	"github.com/codahale/fiatshamir/internal/leb128"
)

// A Transcript is a record of a public-coin protocol from which challenges can be drawn.
//
// The basic flow of using a transcript involves creating it, recording messages, and drawing challenges:
//
//	t := fiatshamir.New("com.example.protocol")
//	t.Message("commitment", commitment)
//	c := t.Challenge("challenge").Scalar()
//
// Messages and challenges may be interleaved freely.
//
// Transcript instances are not concurrent-safe. To use a transcript from multiple goroutines, give each one its own
// fork.
type Transcript struct {
	duplex       Duplex
	construction Construction
}

// New returns a Transcript for the given protocol, using the Simpira Construction.
//
// The protocol string should be unique to the application and specific protocol. It should not contain dynamic data
// like timestamps or user IDs. A good format is "application-name.protocol-name".
//
// Most schemes should accept a Transcript rather than create their own, so that they can be composed with other
// schemes.
func New(protocol string) *Transcript {
	return NewWith(Simpira, protocol)
}

// NewWith returns a Transcript for the given protocol, using the given Construction for both the transcript and the
// streams it returns from Challenge.
func NewWith(c Construction, protocol string) *Transcript {
	d := c([]byte(protocol))

	// Ratchet so the protocol string cannot run into the metadata absorbed after it.
	d.Ratchet()

	return &Transcript{duplex: d, construction: c}
}

// Message records a labeled message in the transcript.
//
// Labels identify a message's role in the protocol and should be constants. Different fields should use different
// labels, but a label may be a prefix of another.
func (t *Transcript) Message(label string, data []byte) {
	t.metadataLen(len(label), false)
	t.duplex.AbsorbMetadata([]byte(label), true)
	t.metadataLen(len(data), true)
	t.duplex.AbsorbData(data, false)
}

// Challenge draws a labeled challenge from the transcript and records that it was drawn. It returns the challenge as a
// Stream.
//
// Challenges are framed exactly like messages with empty contents, followed by the derivation of the stream's seed.
func (t *Transcript) Challenge(label string) *Stream {
	var seed [SeedSize]byte
	t.metadataLen(len(label), false)
	t.duplex.AbsorbMetadata([]byte(label), true)
	t.metadataLen(0, true)
	t.duplex.Squeeze(seed[:], false)

	s := NewStreamWith(t.construction, &seed)
	clear(seed[:])
	return s
}

// ChallengeBytes draws a labeled challenge from the transcript and appends its first n bytes to dst, returning the
// resulting slice.
//
// ChallengeBytes panics if n is negative.
func (t *Transcript) ChallengeBytes(label string, dst []byte, n int) []byte {
	if n < 0 {
		panic("invalid argument to ChallengeBytes: n cannot be negative")
	}
	return t.Challenge(label).Bytes(dst, n)
}

// Forked returns a copy of the transcript with a labeled message recorded in the copy only. The receiver is not
// modified.
//
// Forks let independent branches, such as the proofs of several parties made at the same point in a protocol, be
// derived from a shared history. Because every fork records a message, forks with different labels or data never
// produce the same challenges.
func (t *Transcript) Forked(label string, data []byte) *Transcript {
	fork := &Transcript{duplex: t.duplex.Clone(), construction: t.construction}
	fork.Message(label, data)
	return fork
}

// metadataLen absorbs a length as metadata.
func (t *Transcript) metadataLen(n int, more bool) {
	buf, size := leb128.EncodeLen(n)
	t.duplex.AbsorbMetadata(buf[:size], more)
}

// sliceForAppend takes a slice and a requested number of bytes. It returns a slice with the contents of the given slice
// followed by that many bytes and a second slice that aliases into it and contains only the extra bytes. If the
// original slice has sufficient capacity, then no allocation is performed.
func sliceForAppend(in []byte, n int) (head, tail []byte) {
	head = slices.Grow(in, n)
	head = head[:len(in)+n]
	tail = head[len(in):]
	return head, tail
}
