package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ed770878/HohhaDynamicXOR/internal/codec"
	"github.com/ed770878/HohhaDynamicXOR/internal/recovery"
	"github.com/ed770878/HohhaDynamicXOR/internal/testvectors"
)

// RunHohhaBrut implements the hohha-brut command: it recovers a Hohha
// Dynamic XOR key body and its derived value from known
// plaintext/ciphertext samples, mirroring original_source/hohha_brut.c
// but reading a file of samples rather than a single -S/-m/-x triple,
// since the recovery engine requires several samples to converge.
func RunHohhaBrut(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hohha-brut", flag.ContinueOnError)
	fs.SetOutput(stderr)

	argJ := fs.Uint("j", 2, "key jumps")
	argL := fs.Int("l", 0, "key length (power of two)")
	cutoff := fs.Int("cutoff", 0, "iterative-deepening cutoff depth (default key length / 2)")
	prefixThreshold := fs.Int("prefix-threshold", 0, "weight-zeroing threshold for the branching prefix (default 3*samples/length)")
	poolCapacity := fs.Int("pool-capacity", 0, "snapshot free-list capacity (default 16384)")
	knownKey := fs.String("known-key", "", "known key body (base64), enables the monotonicity self-check")
	knownV := fs.String("known-v", "", "known derived value v (hex), used with -known-key")
	var v verbosity
	fs.Var(&v, "v", "increase debug verbosity (may be repeated)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *argL <= 0 {
		fmt.Fprintln(stderr, "missing -l for key length")
		return 2
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: hohha-brut [flags] <test-vector-file>")
		return 2
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer f.Close()

	records, err := testvectors.All(testvectors.NewReader(f))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if len(records) == 0 {
		fmt.Fprintln(stderr, "no valid test-vector records found")
		return 1
	}

	samples := make([]recovery.Sample, len(records))
	for i, r := range records {
		samples[i] = recovery.Sample{S1: r.S1, S2: r.S2, Plaintext: r.Plaintext, Ciphertext: r.Ciphertext}
	}

	cfg := recovery.Config{
		Cutoff:          *cutoff,
		PrefixThreshold: *prefixThreshold,
		PoolCapacity:    *poolCapacity,
		Verbosity:       int(v),
	}
	if *knownKey != "" {
		body, err := codec.DecodeString(*knownKey)
		if err != nil {
			fmt.Fprintf(stderr, "invalid -known-key: %v\n", err)
			return 1
		}
		val, err := strconv.ParseUint(*knownV, 16, 32)
		if err != nil {
			fmt.Fprintf(stderr, "invalid -known-v: %v\n", err)
			return 1
		}
		cfg.HasKnown = true
		cfg.KnownKey = body
		cfg.KnownV = uint32(val)
	}

	logger := recovery.NewLogger(stderr, int(v))
	ctx, err := recovery.NewContext(samples, *argL, uint32(*argJ), logger, *poolCapacity)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	installProgressHandler(ctx)

	found := 0
	err = recovery.Run(ctx, cfg, func(g *recovery.Guess, m *recovery.Mask) error {
		found++
		fmt.Fprintln(stdout, "--------------------------------")
		fmt.Fprintf(stdout, "v: %#08x (%#08x)\n", g.V, m.V)
		fmt.Fprintf(stdout, "k: %s\n", codec.EncodeToString(g.Key))
		fmt.Fprintf(stdout, "m: %s\n", codec.EncodeToString(m.Key))
		return nil
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if found == 0 {
		fmt.Fprintln(stderr, "no solution found")
		return 1
	}
	return 0
}

// installProgressHandler wires SIGUSR1 to the polled atomic flag Search
// checks at the top of every recursive call.
func installProgressHandler(ctx *recovery.Context) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1)
	go func() {
		for range sigs {
			ctx.ProgressRequested.Store(true)
		}
	}()
}

// RunHohhaBrutMain is the os.Exit-driven entry point used by cmd/hohha-brut.
func RunHohhaBrutMain() int {
	return RunHohhaBrut(os.Args[1:], os.Stdout, os.Stderr)
}
