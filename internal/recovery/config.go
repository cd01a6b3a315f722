package recovery

// Config carries every tunable the iterative-deepening loop exposes.
// There is no config file or environment variable binding; callers
// (cmd/hohha-brut) populate it from flag.FlagSet.
type Config struct {
	// Cutoff is the maximum iterative-deepening depth; reaching it (or
	// the key length, whichever is smaller) triggers the final
	// unrestricted search. Zero means "use keyLength/2".
	Cutoff int
	// PrefixThreshold is the score below which a key index is dropped
	// from the branching prefix during reorder. Zero means
	// "use 3*len(samples)/keyLength".
	PrefixThreshold int
	// PoolCapacity bounds the snapshot free list. Zero means 1<<14.
	PoolCapacity int
	// Verbosity selects the Logger level: 0 silent, 1 dbg, 2 vdbg, 3 vvdbg.
	Verbosity int

	// KnownKey and KnownV, if HasKnown is set, enable a monotonicity
	// self-check: if pruning or reordering ever drops the known answer,
	// the run aborts with ErrInternalInvariant instead of silently
	// continuing.
	KnownKey []byte
	KnownV   uint32
	HasKnown bool
}

// resolve fills in zero-valued tunables relative to a key of the given
// length and sample count.
func (c Config) resolve(keyLength, sampleCount int) Config {
	if c.Cutoff <= 0 {
		c.Cutoff = keyLength / 2
	}
	if c.PrefixThreshold <= 0 && keyLength > 0 {
		c.PrefixThreshold = 3 * sampleCount / keyLength
	}
	if c.PoolCapacity <= 0 {
		c.PoolCapacity = 1 << 14
	}
	return c
}
