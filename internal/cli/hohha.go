// Package cli holds the front ends for the hohha command-line tools,
// factored out of cmd/* so both the binaries and the testscript
// integration tests can invoke them in-process.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ed770878/HohhaDynamicXOR/internal/codec"
	"github.com/ed770878/HohhaDynamicXOR/internal/hohha"
)

var errUsage = errors.New("usage error")

type verbosity int

func (v *verbosity) String() string { return strconv.Itoa(int(*v)) }
func (v *verbosity) Set(string) error {
	*v++
	return nil
}
func (v *verbosity) IsBoolFlag() bool { return true }

// RunHohha implements the hohha command: single-message encrypt or
// decrypt, mirroring original_source/hohha.c's -e/-d/-D front end.
func RunHohha(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hohha", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var encrypt, decryptBase64, decryptPlain bool
	fs.BoolVar(&encrypt, "e", false, "encrypt the plaintext message (base64 output)")
	fs.BoolVar(&decryptBase64, "d", false, "decrypt the ciphertext message (base64 output)")
	fs.BoolVar(&decryptPlain, "D", false, "decrypt the ciphertext message (plain output)")

	argK := fs.String("K", "", "Hohha key blob (base64)")
	argJ := fs.String("j", "", "override key jumps (numeric)")
	argK2 := fs.String("k", "", "override key body (base64)")
	argL := fs.String("l", "", "override key length (numeric)")
	argS := fs.String("S", "", "override salt (8 decimal bytes, little-endian per word)")
	argM := fs.String("M", "", "message (plain)")
	argm := fs.String("m", "", "message (base64)")

	var v verbosity
	fs.Var(&v, "v", "increase debug verbosity (may be repeated)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	state, err := resolveKey(*argK, *argJ, *argK2, *argL, *argS)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(err)
	}

	var message []byte
	switch {
	case *argM != "":
		message = []byte(*argM)
	case *argm != "":
		message, err = codec.DecodeString(*argm)
		if err != nil {
			fmt.Fprintf(stderr, "invalid base64 message: %v\n", err)
			return 1
		}
	default:
		fmt.Fprintln(stderr, "missing -M or -m for message")
		return 2
	}

	switch {
	case encrypt:
		out := make([]byte, len(message))
		state.Encrypt(message, out)
		fmt.Fprintln(stdout, codec.EncodeToString(out))
	case decryptBase64, decryptPlain:
		out := make([]byte, len(message))
		state.Decrypt(message, out)
		if decryptPlain {
			stdout.Write(out)
			fmt.Fprintln(stdout)
		} else {
			fmt.Fprintln(stdout, codec.EncodeToString(out))
		}
	default:
		fmt.Fprintln(stderr, "missing one of -e, -d, -D")
		return 2
	}

	return 0
}

func exitCode(err error) int {
	if errors.Is(err, errUsage) {
		return 2
	}
	return 1
}

func resolveKey(argK, argJ, argBody, argLen, argSalt string) (*hohha.State, error) {
	if argK != "" {
		raw, err := codec.DecodeString(argK)
		if err != nil {
			return nil, fmt.Errorf("invalid -K: %w", err)
		}
		blob, err := hohha.DecodeBlob(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid -K: %w", err)
		}
		return blob.State()
	}

	if argJ == "" {
		return nil, fmt.Errorf("%w: missing -K or -j for jumps", errUsage)
	}
	if argBody == "" {
		return nil, fmt.Errorf("%w: missing -K or -k for key body", errUsage)
	}
	if argSalt == "" {
		return nil, fmt.Errorf("%w: missing -K or -S for salt", errUsage)
	}

	jumps, err := strconv.ParseUint(argJ, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid -j: %w", err)
	}

	body, err := codec.DecodeString(argBody)
	if err != nil {
		return nil, fmt.Errorf("invalid -k: %w", err)
	}

	if argLen != "" {
		length, err := strconv.Atoi(argLen)
		if err != nil {
			return nil, fmt.Errorf("invalid -l: %w", err)
		}
		if length != len(body) {
			body = append(body, make([]byte, max(0, length-len(body)))...)
			body = body[:length]
		}
	}

	s1, s2, err := parseSalt(argSalt)
	if err != nil {
		return nil, err
	}

	state := &hohha.State{}
	if err := state.Init(body, len(body), uint32(jumps), s1, s2, 0); err != nil {
		return nil, err
	}
	return state, nil
}

func parseSalt(arg string) (s1, s2 uint32, err error) {
	fields := strings.Fields(arg)
	if len(fields) != 8 {
		return 0, 0, fmt.Errorf("invalid -S: want 8 decimal bytes, got %d", len(fields))
	}
	var b [8]byte
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid -S byte %q: %w", f, err)
		}
		b[i] = byte(v)
	}
	s1 = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	s2 = uint32(b[4]) | uint32(b[5])<<8 | uint32(b[6])<<16 | uint32(b[7])<<24
	return s1, s2, nil
}

// RunHohhaMain is the os.Exit-driven entry point used by cmd/hohha.
func RunHohhaMain() int {
	return RunHohha(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}
