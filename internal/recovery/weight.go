package recovery

import "sort"

// Weights holds, per key index and per v low-byte value, the maximum
// forward progress (max Idx across samples) ever observed for that
// candidate during a depth-limited weighing search.
type Weights struct {
	Key [][256]uint32
	V   [256]uint32
}

func newWeights(keyLength int) *Weights {
	return &Weights{Key: make([][256]uint32, keyLength)}
}

func (w *Weights) zero() {
	for i := range w.Key {
		w.Key[i] = [256]uint32{}
	}
	w.V = [256]uint32{}
}

// record is the weighing search's leaf callback: for every currently
// committed key index and its guessed byte, and for the v low-byte value
// fixed for this weighing pass, record the run's maximum Idx if it beats
// what is already recorded.
func (w *Weights) record(ctx *Context, vLowByte byte) {
	maxIdx := 0
	for _, pos := range ctx.Positions {
		if pos.Idx > maxIdx {
			maxIdx = pos.Idx
		}
	}
	progress := uint32(maxIdx)

	for i, committed := range ctx.Mask.Key {
		if committed != 0xff {
			continue
		}
		b := ctx.Guess.Key[i]
		if progress > w.Key[i][b] {
			w.Key[i][b] = progress
		}
	}
	if progress > w.V[vLowByte] {
		w.V[vLowByte] = progress
	}
}

// sortByWeightDesc sorts candidates by descending weight, stably, so
// that equal-weight candidates keep their relative order across depths —
// the guarantee original_source/hohha_util.c's merge_sort gives and an
// unstable sort would not.
func sortByWeightDesc(candidates []byte, weight [256]uint32) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return weight[candidates[i]] > weight[candidates[j]]
	})
}

// pruneZeroWeight drops candidates that never contributed to any
// forward progress, returning the surviving list and the shrink factor
// (len(before)/len(after), or 0 when no candidate survives).
func pruneZeroWeight(candidates []byte, weight [256]uint32) (kept []byte, shrink float64) {
	before := len(candidates)
	kept = candidates[:0]
	for _, c := range candidates {
		if weight[c] > 0 {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return kept, 0
	}
	return kept, float64(before) / float64(len(kept))
}

func containsByte(list []byte, v byte) bool {
	for _, c := range list {
		if c == v {
			return true
		}
	}
	return false
}
