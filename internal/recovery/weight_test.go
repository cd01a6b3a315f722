package recovery

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestSortByWeightDescIsStable(t *testing.T) {
	candidates := []byte{0, 1, 2, 3, 4}
	var weight [256]uint32
	weight[0] = 5
	weight[1] = 5
	weight[2] = 9
	weight[3] = 0
	weight[4] = 9

	sortByWeightDesc(candidates, weight)

	// 2 and 4 tie at weight 9 but must keep their relative order; same
	// for 0 and 1 at weight 5.
	qt.Assert(t, qt.DeepEquals(candidates, []byte{2, 4, 0, 1, 3}))
}

func TestPruneZeroWeightDropsDeadCandidates(t *testing.T) {
	candidates := []byte{10, 20, 30}
	var weight [256]uint32
	weight[10] = 0
	weight[20] = 4
	weight[30] = 0

	kept, shrink := pruneZeroWeight(candidates, weight)

	qt.Assert(t, qt.DeepEquals(kept, []byte{20}))
	qt.Assert(t, qt.Equals(shrink, 3.0))
}

func TestPruneZeroWeightAllDeadReturnsZeroShrink(t *testing.T) {
	candidates := []byte{10, 20}
	var weight [256]uint32

	kept, shrink := pruneZeroWeight(candidates, weight)
	qt.Assert(t, qt.HasLen(kept, 0))
	qt.Assert(t, qt.Equals(shrink, 0.0))
}

func TestWeightsRecordTracksMaxProgress(t *testing.T) {
	ctx := newTestContext(t, []Sample{
		{S1: 1, S2: 2, Plaintext: []byte{0, 0}, Ciphertext: []byte{0, 0}},
	}, 4, 2)
	ctx.CommitKey(0, 0x42)
	ctx.Positions[0].Idx = 1

	w := newWeights(4)
	w.record(ctx, 0x07)

	qt.Assert(t, qt.Equals(w.Key[0][0x42], uint32(1)))
	qt.Assert(t, qt.Equals(w.V[0x07], uint32(1)))

	ctx.Positions[0].Idx = 0
	w.record(ctx, 0x07)
	// A lower observed idx must not overwrite the prior maximum.
	qt.Assert(t, qt.Equals(w.Key[0][0x42], uint32(1)))
}
