package recovery

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ed770878/HohhaDynamicXOR/internal/hohha"
)

func buildSamples(t *testing.T, key []byte, keyJumps uint32, salts [][2]uint32, plains [][]byte) []Sample {
	t.Helper()
	samples := make([]Sample, len(salts))
	for i, sv := range salts {
		ct := encryptFixture(t, key, keyJumps, sv[0], sv[1], plains[i])
		samples[i] = Sample{S1: sv[0], S2: sv[1], Plaintext: plains[i], Ciphertext: ct}
	}
	return samples
}

func reproducesSample(t *testing.T, guess *Guess, keyJumps uint32, sample Sample) bool {
	t.Helper()
	s := &hohha.State{}
	qt.Assert(t, qt.IsNil(s.Init(guess.Key, len(guess.Key), keyJumps, sample.S1, sample.S2, 0)))
	ct := make([]byte, len(sample.Plaintext))
	s.Encrypt(sample.Plaintext, ct)
	return string(ct) == string(sample.Ciphertext)
}

func TestSearchUnrestrictedFindsConsistentSolution(t *testing.T) {
	key := []byte{0x11, 0x22, 0x33, 0x44}
	keyJumps := uint32(2)
	salts := [][2]uint32{
		{0x01020304, 0x05060708},
		{0xa1b2c3d4, 0x0f0e0d0c},
		{0x11223344, 0x55667788},
	}
	plains := make([][]byte, 3)
	for i := range plains {
		p := make([]byte, 16)
		for j := range p {
			p[j] = byte(i*37 + j*7 + 3)
		}
		plains[i] = p
	}
	samples := buildSamples(t, key, keyJumps, salts, plains)

	ctx := newTestContext(t, samples, len(key), keyJumps)

	var solutions []*Guess
	err := Search(ctx, SearchOptions{
		DepthLimit: -1,
		OnSolution: func(c *Context) error {
			solutions = append(solutions, c.Guess.Clone())
			return nil
		},
	})
	qt.Assert(t, qt.IsNil(err))
	if len(solutions) == 0 {
		t.Fatal("expected at least one solution")
	}

	for _, sample := range samples {
		if !reproducesSample(t, solutions[0], keyJumps, sample) {
			t.Fatalf("solution %v does not reproduce a sample", solutions[0])
		}
	}
}

func TestSearchDepthLimitStopsAtLeaf(t *testing.T) {
	key := []byte{0x11, 0x22}
	keyJumps := uint32(2)
	samples := buildSamples(t, key, keyJumps, [][2]uint32{{1, 2}}, [][]byte{{9, 9, 9, 9}})

	ctx := newTestContext(t, samples, len(key), keyJumps)

	var leaves int
	err := Search(ctx, SearchOptions{
		DepthLimit: 0,
		OnLeaf:     func(*Context) { leaves++ },
	})
	qt.Assert(t, qt.IsNil(err))
	if leaves == 0 {
		t.Fatal("expected at least one leaf at depth limit 0")
	}
}
