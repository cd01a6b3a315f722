package recovery

import "math/bits"

// AdvanceResult summarizes how far Advance could push every position
// without guessing anything.
type AdvanceResult struct {
	// Done is true once every position has consumed its whole sample.
	Done bool
	// NeedVMask is the union, translated into orig's unrotated frame, of
	// every bit of v some position still needs. Zero if no position is
	// blocked on v.
	NeedVMask uint32
	// NeedKeyIndices lists the distinct key indices some position is
	// blocked reading. Empty if no position is blocked on a key byte.
	NeedKeyIndices []uint32
}

// Advance pushes every sample's position forward as far as the current
// Guess/Mask allow. It returns ErrInconsistentBranch, unwrapped, the
// moment any position's expected output byte disagrees with its sample,
// so a caller need only check that one return to know the branch is dead.
func Advance(ctx *Context) (AdvanceResult, error) {
	result := AdvanceResult{Done: true}
	seenKeyIndex := make(map[uint32]bool)

	for i := range ctx.Positions {
		pos := &ctx.Positions[i]
		sample := &ctx.Samples[i]

		outcome := advancePosition(pos, sample, ctx.Mask)
		switch {
		case outcome.inconsistent:
			return AdvanceResult{}, ErrInconsistentBranch
		case outcome.done:
			// nothing to record
		case outcome.needV:
			result.Done = false
			result.NeedVMask |= outcome.needVMask
		case outcome.needKey:
			result.Done = false
			if !seenKeyIndex[outcome.needKeyIndex] {
				seenKeyIndex[outcome.needKeyIndex] = true
				result.NeedKeyIndices = append(result.NeedKeyIndices, outcome.needKeyIndex)
			}
		}
	}

	return result, nil
}

type positionOutcome struct {
	done         bool
	inconsistent bool
	needV        bool
	needVMask    uint32
	needKey      bool
	needKeyIndex uint32
}

// advancePosition runs one position's state machine as far as it will
// go: ready-to-jump, blocked-on-key[m], blocked-on-v-bits, ready-to-step,
// inconsistent, done.
func advancePosition(pos *Position, sample *Sample, mask *Mask) positionOutcome {
	for {
		if pos.Idx == len(sample.Plaintext) {
			return positionOutcome{done: true}
		}

		idxMod := uint32(pos.Idx) % 32
		rotatedMask := bits.RotateLeft32(mask.V, int(idxMod))
		neededRotated := ^rotatedMask & (pos.Running.KeyMask | 0xff)
		if neededRotated != 0 {
			needOrig := bits.RotateLeft32(neededRotated, -int(idxMod))
			return positionOutcome{needV: true, needVMask: needOrig}
		}

		for pos.Jmp < pos.Running.KeyJumps {
			m := pos.Running.M
			if mask.Key[m] != 0xff {
				return positionOutcome{needKey: true, needKeyIndex: m}
			}
			pos.Running.JumpAt(pos.Jmp)
			pos.Jmp++
		}

		expected := sample.Plaintext[pos.Idx] ^ sample.Ciphertext[pos.Idx]
		actual := pos.Running.StepXOR()
		if expected != actual {
			return positionOutcome{inconsistent: true}
		}

		pos.Running.StepCRC(sample.Plaintext[pos.Idx])
		pos.Jmp = 0
		pos.Idx++
	}
}
