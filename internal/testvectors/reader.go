// Package testvectors reads known-plaintext/ciphertext samples for the
// key-recovery engine, in a whitespace-separated text format: eight
// decimal salt bytes followed by base64 plaintext and ciphertext.
package testvectors

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/ed770878/HohhaDynamicXOR/internal/cmdquoted"
	"github.com/ed770878/HohhaDynamicXOR/internal/codec"
)

// Record is one known-plaintext sample: the salts the cipher was
// initialized with, plus the matching plaintext/ciphertext pair.
type Record struct {
	S1, S2     uint32
	Plaintext  []byte
	Ciphertext []byte
}

// Reader parses Records out of the test-vector text format. Malformed
// lines are skipped rather than surfaced as errors: the reader treats
// the stream as truncated and proceeds with what it has.
type Reader struct {
	scan *bufio.Scanner
	line int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{scan: bufio.NewScanner(r)}
}

// Next returns the next valid record, or io.EOF once the input is
// exhausted. Lines that do not parse are silently skipped.
func (r *Reader) Next() (*Record, error) {
	for r.scan.Scan() {
		r.line++
		fields, err := cmdquoted.Split(r.scan.Text())
		if err != nil || len(fields) == 0 {
			continue
		}
		rec, ok := parseRecord(fields)
		if !ok {
			continue
		}
		return rec, nil
	}
	if err := r.scan.Err(); err != nil {
		return nil, fmt.Errorf("testvectors: reading line %d: %w", r.line+1, err)
	}
	return nil, io.EOF
}

// All reads every remaining valid record from r.
func All(r *Reader) ([]*Record, error) {
	var out []*Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func parseRecord(fields []string) (*Record, bool) {
	if len(fields) != 10 {
		return nil, false
	}

	var saltBytes [8]byte
	for i := 0; i < 8; i++ {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return nil, false
		}
		saltBytes[i] = byte(v)
	}

	plain, err := codec.DecodeString(fields[8])
	if err != nil {
		return nil, false
	}
	cipher, err := codec.DecodeString(fields[9])
	if err != nil {
		return nil, false
	}
	if len(plain) != len(cipher) {
		return nil, false
	}

	return &Record{
		S1:         leu32(saltBytes[0:4]),
		S2:         leu32(saltBytes[4:8]),
		Plaintext:  plain,
		Ciphertext: cipher,
	}, true
}

func leu32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
