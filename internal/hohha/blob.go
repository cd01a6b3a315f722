package hohha

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// blobHeaderSize is the size, in bytes, of a Hohha key blob header:
// key_jumps(1) | key_length(2,LE) | s1(4,LE) | s2(4,LE).
const blobHeaderSize = 11

// ErrBlobTooShort is returned when a byte slice is shorter than the blob
// header, or shorter than the header plus the declared key body length.
var ErrBlobTooShort = errors.New("hohha: key blob too short")

// Blob is the external encoding of a Hohha key: jump count, key length,
// two default salts, and the key body itself. It is the layout
// original_source/hohha_pkt.h calls HX_KEY_*.
type Blob struct {
	KeyJumps uint32
	KeyLen   uint16
	S1, S2   uint32
	Body     []byte
}

// DecodeBlob parses a Hohha key blob from raw.
func DecodeBlob(raw []byte) (*Blob, error) {
	if len(raw) < blobHeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrBlobTooShort, len(raw), blobHeaderSize)
	}

	b := &Blob{
		KeyJumps: uint32(raw[0]),
		KeyLen:   binary.LittleEndian.Uint16(raw[1:3]),
		S1:       binary.LittleEndian.Uint32(raw[3:7]),
		S2:       binary.LittleEndian.Uint32(raw[7:11]),
	}

	end := blobHeaderSize + int(b.KeyLen)
	if len(raw) < end {
		return nil, fmt.Errorf("%w: got %d bytes, need %d for key_length=%d", ErrBlobTooShort, len(raw), end, b.KeyLen)
	}
	b.Body = append([]byte(nil), raw[blobHeaderSize:end]...)

	return b, nil
}

// Encode serializes the blob back into its external byte layout.
func (b *Blob) Encode() []byte {
	out := make([]byte, blobHeaderSize+len(b.Body))
	out[0] = byte(b.KeyJumps)
	binary.LittleEndian.PutUint16(out[1:3], uint16(len(b.Body)))
	binary.LittleEndian.PutUint32(out[3:7], b.S1)
	binary.LittleEndian.PutUint32(out[7:11], b.S2)
	copy(out[blobHeaderSize:], b.Body)
	return out
}

// State builds a freshly initialized cipher State from the blob's key
// body, jump count, and default salts.
func (b *Blob) State() (*State, error) {
	s := &State{}
	if err := s.Init(b.Body, len(b.Body), b.KeyJumps, b.S1, b.S2, 0); err != nil {
		return nil, err
	}
	return s, nil
}
