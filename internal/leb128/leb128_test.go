package leb128

import (
	"bytes"
	"encoding/hex"
	"math"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		input uint64
		want  string
	}{
		{name: "zero", input: 0, want: "00"},
		{name: "one", input: 1, want: "01"},
		{name: "127", input: 127, want: "7f"},
		{name: "128", input: 128, want: "8001"},
		{name: "300", input: 300, want: "ac02"},
		{name: "16383", input: 16383, want: "ff7f"},
		{name: "16384", input: 16384, want: "808001"},
		{name: "0x2003cb", input: 0x2003cb, want: "cb878001"},
		{name: "max", input: math.MaxUint64, want: "ffffffffffffffffff01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, n := Encode(tt.input)
			if got := hex.EncodeToString(buf[:n]); got != tt.want {
				t.Errorf("Encode(%d) = %s, want = %s", tt.input, got, tt.want)
			}

			for i, b := range buf[n:] {
				if b != 0 {
					t.Errorf("Encode(%d) buf[%d] = %#x, want = 0", tt.input, n+i, b)
				}
			}
		})
	}
}

func TestEncode_AllOnes(t *testing.T) {
	for k := 1; k <= 9; k++ {
		x := uint64(1)<<(7*k) - 1

		want := make([]byte, k)
		for i := range k - 1 {
			want[i] = 0xFF
		}
		want[k-1] = 0x7F

		buf, n := Encode(x)
		if n != k {
			t.Errorf("Encode(2^%d-1) used %d bytes, want = %d", 7*k, n, k)
		}

		if got := buf[:n]; !bytes.Equal(got, want) {
			t.Errorf("Encode(2^%d-1) = %x, want = %x", 7*k, got, want)
		}
	}
}

func TestEncode_SizeBoundaries(t *testing.T) {
	for k := 1; k < MaxSize; k++ {
		x := uint64(1) << (7 * k)
		if _, n := Encode(x); n != k+1 {
			t.Errorf("Encode(2^%d) used %d bytes, want = %d", 7*k, n, k+1)
		}
	}
}

func TestEncodeLen(t *testing.T) {
	t.Run("matches Encode", func(t *testing.T) {
		for _, n := range []int{0, 1, 127, 128, 1 << 20, math.MaxInt} {
			gotBuf, gotN := EncodeLen(n)
			wantBuf, wantN := Encode(uint64(n))
			if gotBuf != wantBuf || gotN != wantN {
				t.Errorf("EncodeLen(%d) = %x, want = %x", n, gotBuf[:gotN], wantBuf[:wantN])
			}
		}
	})

	t.Run("negative length", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("The code did not panic")
			}
		}()

		EncodeLen(-1)
	})
}

func FuzzEncode(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(127))
	f.Add(uint64(128))
	f.Add(uint64(math.MaxUint64))

	f.Fuzz(func(t *testing.T, x uint64) {
		buf, n := Encode(x)
		if n < 1 || n > MaxSize {
			t.Fatalf("Encode(%d) used %d bytes", x, n)
		}

		// Only the final byte may lack the continuation bit.
		for i, b := range buf[:n-1] {
			if b&0x80 == 0 {
				t.Errorf("Encode(%d) byte %d = %#x, missing continuation bit", x, i, b)
			}
		}
		if buf[n-1]&0x80 != 0 {
			t.Errorf("Encode(%d) final byte = %#x, has continuation bit", x, buf[n-1])
		}

		var y uint64
		for i, b := range buf[:n] {
			y |= uint64(b&0x7F) << (7 * i)
		}
		if y != x {
			t.Errorf("Encode(%d) = %x, which reads back as %d", x, buf[:n], y)
		}
	})
}
