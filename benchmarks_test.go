package fiatshamir_test

import (
	"testing"

	"github.com/codahale/fiatshamir"
	"github.com/codahale/fiatshamir/strobeduplex"
)

func BenchmarkConstruction(b *testing.B) {
	constructions := []struct {
		name string
		c    fiatshamir.Construction
	}{
		{"Simpira", fiatshamir.Simpira},
		{"STROBE", strobeduplex.New},
	}

	for _, construction := range constructions {
		for _, length := range lengths {
			b.Run(construction.name+"/"+length.name, func(b *testing.B) {
				input := make([]byte, length.n)
				b.ReportAllocs()
				b.SetBytes(int64(length.n))
				for b.Loop() {
					t := fiatshamir.NewWith(construction.c, "benchmark")
					t.Message("message", input)
					t.Challenge("challenge").Uint64()
				}
			})
		}
	}
}
