// Package recovery implements the known-plaintext key-recovery engine for
// the Hohha Dynamic XOR cipher: a bit-level backtracking search with
// partial-information propagation, iterative deepening, and weighted
// branch-order learning.
package recovery

import (
	"math/bits"
	"sync/atomic"

	"github.com/ed770878/HohhaDynamicXOR/internal/hohha"
)

// Guess is the engine's current best guess of the initial cipher state,
// before any sample's first jump.
type Guess struct {
	Key []byte
	V   uint32
}

// Clone returns a deep copy of g.
func (g *Guess) Clone() *Guess {
	return &Guess{Key: append([]byte(nil), g.Key...), V: g.V}
}

// Mask records which bits of a Guess are committed. Key bytes are
// all-or-nothing: Key[i] is 0xff once orig.Key[i] is known, 0x00 until
// then. V is a bitmask of individually committed bits.
type Mask struct {
	Key []byte
	V   uint32
}

// Clone returns a deep copy of m.
func (m *Mask) Clone() *Mask {
	return &Mask{Key: append([]byte(nil), m.Key...), V: m.V}
}

// Sample is one known-plaintext/ciphertext pair produced under the
// unknown key with its own salts.
type Sample struct {
	S1, S2     uint32
	Plaintext  []byte
	Ciphertext []byte
}

// Position is a sample's forward-simulation cursor: the next plaintext
// byte to consume, the next jump within the current step, and the
// cipher state advanced to exactly that point under the context's
// current committed guesses.
type Position struct {
	Idx     int
	Jmp     uint32
	Running hohha.State
}

// Context is the global search context: the sample set, one running
// position per sample, the committed guess and its mask, and the
// iterative-deepening metadata that orders and prunes branching.
type Context struct {
	Samples   []Sample
	Positions []Position
	Guess     *Guess
	Mask      *Mask

	// Order is the fixed prefix of key indices branching prefers, most
	// promising first, as maintained by the deepening loop's reorder step.
	Order []uint32
	// Candidates holds, per key index, the byte values still permitted.
	Candidates [][]byte
	// VPermutation is the order in which low-byte values of v are tried
	// during the weighing phase, initially identity.
	VPermutation [256]byte

	Logger *Logger

	// ProgressRequested is set by an external signal handler and polled
	// once at the top of Search, never inside Advance.
	ProgressRequested atomic.Bool

	pool *pool
}

// NewContext builds a Context over samples for a key of length keyLength
// and the given jump count, with identity candidate lists and v
// permutation.
func NewContext(samples []Sample, keyLength int, keyJumps uint32, logger *Logger, poolCapacity int) (*Context, error) {
	positions := make([]Position, len(samples))
	for i, s := range samples {
		running := hohha.State{}
		if err := running.Init(nil, keyLength, keyJumps, s.S1, s.S2, 0); err != nil {
			return nil, err
		}
		// Guess.V starts at 0, and committed v bits reach every running
		// V only through CommitV, so the running V starts at 0 as well.
		running.V = 0
		positions[i] = Position{Running: running}
	}

	candidates := make([][]byte, keyLength)
	for i := range candidates {
		candidates[i] = identityByteList()
	}

	ctx := &Context{
		Samples:    samples,
		Positions:  positions,
		Guess:      &Guess{Key: make([]byte, keyLength)},
		Mask:       &Mask{Key: make([]byte, keyLength)},
		Candidates: candidates,
		Logger:     logger,
		pool:       newPool(poolCapacity),
	}
	for i := range ctx.VPermutation {
		ctx.VPermutation[i] = byte(i)
	}
	for i := 0; i < keyLength; i++ {
		ctx.Order = append(ctx.Order, uint32(i))
	}
	return ctx, nil
}

func identityByteList() []byte {
	out := make([]byte, 256)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

// CommitKey commits orig.Key[m] = x and propagates the change into every
// position's running key buffer, xoring in only the delta so partial
// forward progress need not be redone.
func (ctx *Context) CommitKey(m uint32, x byte) {
	prev := ctx.Guess.Key[m]
	ctx.Mask.Key[m] = 0xff
	ctx.Guess.Key[m] = x

	delta := prev ^ x
	if delta == 0 {
		return
	}
	for i := range ctx.Positions {
		ctx.Positions[i].Running.Key[m] ^= delta
	}
}

// CommitV commits maskBits (in orig's unrotated frame) of v with value
// xor, and propagates the change to every position's running v, each
// rotated by that position's own idx mod 32.
func (ctx *Context) CommitV(maskBits, xor uint32) {
	ctx.Mask.V |= maskBits
	ctx.Guess.V ^= xor

	for i := range ctx.Positions {
		idxMod := uint32(ctx.Positions[i].Idx) % 32
		ctx.Positions[i].Running.V ^= bits.RotateLeft32(xor, int(idxMod))
	}
}
