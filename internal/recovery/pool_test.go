package recovery

import "testing"

func TestPoolRespectsCapacity(t *testing.T) {
	p := newPool(2)
	a, b, c := &snapshot{}, &snapshot{}, &snapshot{}
	p.put(a)
	p.put(b)
	p.put(c) // dropped, pool already at capacity

	if len(p.free) != 2 {
		t.Fatalf("got %d free snapshots, want 2", len(p.free))
	}
}

func TestPoolGetReusesBeforeAllocating(t *testing.T) {
	p := newPool(4)
	s := &snapshot{guessKey: []byte{1, 2, 3}}
	p.put(s)

	got := p.get()
	if got != s {
		t.Fatal("expected Get to return the pooled snapshot")
	}

	fresh := p.get()
	if fresh == nil || fresh == s {
		t.Fatal("expected a freshly allocated snapshot when the pool is empty")
	}
}

func TestContextSnapshotRestoreRoundTrip(t *testing.T) {
	ctx := newTestContext(t, []Sample{
		{S1: 1, S2: 2, Plaintext: []byte{0, 0}, Ciphertext: []byte{0, 0}},
	}, 4, 2)
	ctx.CommitKey(0, 0x11)
	ctx.CommitV(0xff, 0x22)
	ctx.Positions[0].Idx = 1
	ctx.Positions[0].Jmp = 1

	snap := ctx.pool.get()
	ctx.Snapshot(snap)

	ctx.CommitKey(1, 0x33)
	ctx.CommitV(0xff00, 0x4400)
	ctx.Positions[0].Idx = 2

	ctx.Restore(snap)

	if ctx.Guess.Key[1] != 0 || ctx.Mask.Key[1] != 0 {
		t.Fatal("Restore did not undo the second CommitKey")
	}
	if ctx.Mask.V != 0xff || ctx.Guess.V != 0x22 {
		t.Fatalf("Restore did not undo the second CommitV: mask=%#x guess=%#x", ctx.Mask.V, ctx.Guess.V)
	}
	if ctx.Positions[0].Idx != 1 || ctx.Positions[0].Jmp != 1 {
		t.Fatal("Restore did not undo the position advance")
	}
}
