package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ed770878/HohhaDynamicXOR/internal/codec"
	"github.com/ed770878/HohhaDynamicXOR/internal/hohha"
)

// RunHohhaCRC implements the hohha-crc command: CRC32 of a message, a
// raw key body, or the body embedded in a Hohha key blob, mirroring
// original_source/hohha_crc.c.
func RunHohhaCRC(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hohha-crc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	argM := fs.String("M", "", "message (plain)")
	argm := fs.String("m", "", "message (base64)")
	argK := fs.String("K", "", "Hohha key blob (base64); CRCs only the key body")
	argk := fs.String("k", "", "key body (base64)")
	var v verbosity
	fs.Var(&v, "v", "increase debug verbosity (may be repeated)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	data, err := selectData(*argM, *argm, *argK, *argk)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if err == errNoInput {
			return 2
		}
		return 1
	}

	crc := hohha.CRC32Data(data)
	fmt.Fprintf(stdout, "%#x (%d)\n", crc, crc)
	return 0
}

var errNoInput = fmt.Errorf("missing one of -M, -m, -K, -k")

func selectData(argM, argm, argK, argk string) ([]byte, error) {
	switch {
	case argM != "":
		return []byte(argM), nil
	case argm != "":
		return codec.DecodeString(argm)
	case argk != "":
		return codec.DecodeString(argk)
	case argK != "":
		raw, err := codec.DecodeString(argK)
		if err != nil {
			return nil, fmt.Errorf("invalid -K: %w", err)
		}
		blob, err := hohha.DecodeBlob(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid -K: %w", err)
		}
		return blob.Body, nil
	default:
		return nil, errNoInput
	}
}

// RunHohhaCRCMain is the os.Exit-driven entry point used by cmd/hohha-crc.
func RunHohhaCRCMain() int {
	return RunHohhaCRC(os.Args[1:], os.Stdout, os.Stderr)
}
