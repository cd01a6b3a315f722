package recovery

import "errors"

// SearchOptions configures a single depth-first search run over ctx.
type SearchOptions struct {
	// DepthLimit caps how many key-index branches deep the search goes
	// before treating the position as a leaf; negative means unlimited.
	DepthLimit int
	// OnLeaf, if set, is called at every leaf: a solution, a dead end
	// (inconsistency), or a branch cut off by DepthLimit. Used during
	// the weighing phase of iterative deepening to record forward progress.
	OnLeaf func(ctx *Context)
	// OnSolution, if set, is called (in addition to OnLeaf) whenever
	// every position is done.
	OnSolution func(ctx *Context) error
}

// Search is the recursive backtracking procedure: advance every
// position, then branch on whatever the advance engine reports is still
// needed, snapshotting before each recursive call and restoring after.
// The progress oracle is polled once per entry, never inside Advance —
// that is the search's single polling point.
func Search(ctx *Context, opts SearchOptions) error {
	return search(ctx, opts, 0)
}

func search(ctx *Context, opts SearchOptions, depth int) error {
	if ctx.ProgressRequested.CompareAndSwap(true, false) {
		logProgress(ctx)
	}

	result, err := Advance(ctx)
	if errors.Is(err, ErrInconsistentBranch) {
		if opts.OnLeaf != nil {
			opts.OnLeaf(ctx)
		}
		return nil
	}
	if err != nil {
		return err
	}

	if result.Done {
		if opts.OnLeaf != nil {
			opts.OnLeaf(ctx)
		}
		if opts.OnSolution != nil {
			return opts.OnSolution(ctx)
		}
		return nil
	}

	if result.NeedVMask != 0 {
		return branchOnV(ctx, opts, depth, result.NeedVMask)
	}

	if opts.DepthLimit >= 0 && depth >= opts.DepthLimit {
		if opts.OnLeaf != nil {
			opts.OnLeaf(ctx)
		}
		return nil
	}

	return branchOnKey(ctx, opts, depth, result.NeedKeyIndices)
}

// branchOnV enumerates every submask of need via incr32Mask, committing
// each as a candidate value of the still-unknown bits of v. V-bit
// branches do not count against DepthLimit.
func branchOnV(ctx *Context, opts SearchOptions, depth int, need uint32) error {
	snap := ctx.pool.get()
	ctx.Snapshot(snap)
	defer ctx.pool.put(snap)

	var outerErr error
	forEachSubmask(need, func(guess uint32) {
		if outerErr != nil {
			return
		}
		ctx.CommitV(need, guess)
		outerErr = search(ctx, opts, depth)
		ctx.Restore(snap)
	})
	return outerErr
}

// branchOnKey picks the most promising still-needed key index under the
// current ordering policy and tries every remaining candidate byte for
// it.
func branchOnKey(ctx *Context, opts SearchOptions, depth int, needIndices []uint32) error {
	m := ctx.chooseKeyIndex(needIndices)

	snap := ctx.pool.get()
	ctx.Snapshot(snap)
	defer ctx.pool.put(snap)

	for _, cand := range ctx.Candidates[m] {
		ctx.CommitKey(m, cand)
		if err := search(ctx, opts, depth+1); err != nil {
			return err
		}
		ctx.Restore(snap)
	}
	return nil
}

// chooseKeyIndex prefers the earliest entry of ctx.Order that appears in
// need, falling back to need's first element when Order doesn't cover
// any of them yet (e.g. before the first reorder pass).
func (ctx *Context) chooseKeyIndex(need []uint32) uint32 {
	for _, idx := range ctx.Order {
		for _, n := range need {
			if n == idx {
				return idx
			}
		}
	}
	return need[0]
}

func logProgress(ctx *Context) {
	if ctx.Logger == nil {
		return
	}
	ctx.Logger.Dbg("progress: v=%08x mask.v=%08x", ctx.Guess.V, ctx.Mask.V)
	for i, pos := range ctx.Positions {
		ctx.Logger.Dbg("  sample %d: idx=%d jmp=%d len=%d", i, pos.Idx, pos.Jmp, len(ctx.Samples[i].Plaintext))
	}
}
