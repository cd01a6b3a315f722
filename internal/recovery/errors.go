package recovery

import "errors"

// ErrInvalidArgument names malformed CLI/config input. No function in
// this module returns it; the internal/cli front ends report such input
// directly.
var ErrInvalidArgument = errors.New("recovery: invalid argument")

// ErrInvalidInput names malformed test-vector or base64 input that
// cannot be recovered from at the call site (as opposed to a single
// skipped line, which internal/testvectors handles silently). No
// function in this module returns it.
var ErrInvalidInput = errors.New("recovery: invalid input")

// ErrInconsistentBranch is the expected, non-error outcome of Advance
// finding a branch that cannot match its samples. It unwinds exactly one
// recursion frame and is never logged or surfaced past Search.
var ErrInconsistentBranch = errors.New("recovery: inconsistent branch")

// ErrInternalInvariant marks a bug: pruning discarded a candidate that a
// caller-supplied known answer required.
var ErrInternalInvariant = errors.New("recovery: internal invariant violated")

// ErrIO names failures opening or reading sample input. No function in
// this module returns or wraps it; hohha-brut reports such failures
// directly.
var ErrIO = errors.New("recovery: io error")
