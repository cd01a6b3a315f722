package cli

import (
	"golang.org/x/crypto/chacha20"
)

// deterministicStream derives a reproducible byte stream from a fixed
// seed word, used to build salts and plaintext for samples the way a
// property test fixture needs without relying on math/rand's global
// state.
type deterministicStream struct {
	cipher *chacha20.Cipher
}

func newDeterministicStream(seed uint32) *deterministicStream {
	key := make([]byte, chacha20.KeySize)
	for i := range key {
		key[i] = byte(seed >> (8 * (i % 4)))
	}
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		panic(err)
	}
	return &deterministicStream{cipher: c}
}

func (d *deterministicStream) bytes(n int) []byte {
	buf := make([]byte, n)
	d.cipher.XORKeyStream(buf, buf)
	return buf
}

func (d *deterministicStream) uint32() uint32 {
	b := d.bytes(4)
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
