package recovery

import (
	"fmt"
	"sort"
)

// deepenState is the per-depth context threaded through the steps
// below.
type deepenState struct {
	ctx     *Context
	cfg     Config
	weights *Weights
	depth   int
}

// Run drives the iterative-deepening outer loop: at each depth, zero
// weights, run the weighing search across every v low-byte value, sort
// and prune candidate lists, rebuild the branching prefix, then move to
// the next depth. At cutoff, run one final unrestricted search and hand
// every accepted (Guess, Mask) pair to emit.
func Run(ctx *Context, cfg Config, emit func(*Guess, *Mask) error) error {
	keyLength := len(ctx.Guess.Key)
	cfg = cfg.resolve(keyLength, len(ctx.Samples))

	state := &deepenState{ctx: ctx, cfg: cfg, weights: newWeights(keyLength)}

	steps := []struct {
		name string
		run  func(*deepenState) error
	}{
		{"zero weights", stepZeroWeights},
		{"weigh", stepWeigh},
		{"sort", stepSort},
		{"prune", stepPrune},
		{"reorder", stepReorder},
	}

	maxDepth := cfg.Cutoff
	if keyLength < maxDepth {
		maxDepth = keyLength
	}

	for d := 1; d <= maxDepth; d++ {
		state.depth = d
		for _, step := range steps {
			if err := step.run(state); err != nil {
				return fmt.Errorf("depth %d: %s step failed: %w", d, step.name, err)
			}
		}
		ctx.Logger.Dbg("depth %d: order=%v", d, ctx.Order)
	}

	return Search(ctx, SearchOptions{
		DepthLimit: -1,
		OnSolution: func(c *Context) error {
			return emit(c.Guess.Clone(), c.Mask.Clone())
		},
	})
}

// stepZeroWeights clears the per-depth weight accumulators.
func stepZeroWeights(st *deepenState) error {
	st.weights.zero()
	return nil
}

// stepWeigh tries every low-byte value of v in turn, running the full
// search restricted to the current depth and recording weights on every
// leaf it reaches.
func stepWeigh(st *deepenState) error {
	ctx := st.ctx
	snap := ctx.pool.get()
	ctx.Snapshot(snap)
	defer func() {
		ctx.Restore(snap)
		ctx.pool.put(snap)
	}()

	for _, b := range ctx.VPermutation {
		ctx.CommitV(0xff, (uint32(b)^ctx.Guess.V)&0xff)

		err := Search(ctx, SearchOptions{
			DepthLimit: st.depth,
			OnLeaf: func(c *Context) {
				st.weights.record(c, b)
			},
		})
		ctx.Restore(snap)
		if err != nil {
			return err
		}
	}
	return nil
}

// stepSort reorders each candidate list and the v permutation by
// descending weight.
func stepSort(st *deepenState) error {
	ctx := st.ctx
	for i, candidates := range ctx.Candidates {
		sortByWeightDesc(candidates, st.weights.Key[i])
	}

	perm := ctx.VPermutation[:]
	sort.SliceStable(perm, func(i, j int) bool {
		return st.weights.V[perm[i]] > st.weights.V[perm[j]]
	})
	return nil
}

// stepPrune drops zero-weight candidates, and aborts with
// ErrInternalInvariant if a configured known answer was pruned away.
func stepPrune(st *deepenState) error {
	ctx := st.ctx
	for i, candidates := range ctx.Candidates {
		kept, shrink := pruneZeroWeight(candidates, st.weights.Key[i])
		ctx.Candidates[i] = kept

		if st.cfg.HasKnown && i < len(st.cfg.KnownKey) && !containsByte(kept, st.cfg.KnownKey[i]) {
			return fmt.Errorf("%w: key index %d pruned away the known candidate %#x", ErrInternalInvariant, i, st.cfg.KnownKey[i])
		}
		if shrink > 0 {
			ctx.Logger.Vdbg("prune key[%d]: shrink factor %.2f", i, shrink)
		}
	}

	if st.cfg.HasKnown {
		knownLow := byte(st.cfg.KnownV)
		if st.weights.V[knownLow] == 0 {
			return fmt.Errorf("%w: v low byte %#x pruned away", ErrInternalInvariant, knownLow)
		}
	}
	return nil
}

// stepReorder recomputes the fixed branching prefix from a score
// combining how many samples are currently blocked on each key index and
// how short its candidate list has become. Unlike Advance's
// NeedKeyIndices, which dedupes to one entry per index regardless of how
// many samples share it, blocked here tallies one increment per blocked
// sample so the score reflects the actual count.
func stepReorder(st *deepenState) error {
	ctx := st.ctx
	keyLength := len(ctx.Candidates)

	blocked := make([]int, keyLength)
	for i := range ctx.Positions {
		outcome := advancePosition(&ctx.Positions[i], &ctx.Samples[i], ctx.Mask)
		if outcome.needKey {
			blocked[outcome.needKeyIndex]++
		}
	}

	type scored struct {
		index uint32
		score int
	}
	scores := make([]scored, keyLength)
	for i := 0; i < keyLength; i++ {
		remaining := len(ctx.Candidates[i])
		scores[i] = scored{
			index: uint32(i),
			score: blocked[i] + (256-remaining)<<16,
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	order := ctx.Order[:0]
	for _, s := range scores {
		if s.score < st.cfg.PrefixThreshold {
			continue
		}
		order = append(order, s.index)
	}
	ctx.Order = order
	return nil
}
