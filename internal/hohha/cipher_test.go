package hohha

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/go-quicktest/qt"
)

func newState(t *testing.T, key []byte, keyJumps, s1, s2 uint32) *State {
	t.Helper()
	s := &State{}
	if err := s.Init(key, len(key), keyJumps, s1, s2, 0); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func TestCRC32KnownVector(t *testing.T) {
	// Scenario 5: CRC32("123456789") == 0xE3069283.
	got := CRC32Data([]byte("123456789"))
	qt.Assert(t, qt.Equals(got, uint32(0xE3069283)))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	for _, keyJumps := range []uint32{2, 3, 4, 5, 6, 7, 8, 9, 13} {
		for _, keyLen := range []int{2, 4, 8, 16, 32} {
			t.Run("", func(t *testing.T) {
				key := make([]byte, keyLen)
				rand.New(rand.NewSource(int64(keyLen)*31 + int64(keyJumps))).Read(key)

				plain := []byte("The quick brown fox jumps over the lazy dog, 0123456789!")

				enc := newState(t, key, keyJumps, 0x01020304, 0x05060708)
				ct := make([]byte, len(plain))
				enc.Encrypt(plain, ct)

				dec := newState(t, key, keyJumps, 0x01020304, 0x05060708)
				pt := make([]byte, len(ct))
				dec.Decrypt(ct, pt)

				qt.Assert(t, qt.DeepEquals(pt, plain))
			})
		}
	}
}

func TestEncryptCRCIdentity(t *testing.T) {
	key := []byte{0x11, 0x22, 0x33, 0x44}
	plain := []byte("Hi!")

	s := newState(t, key, 2, 0x01020304, 0x05060708)
	ct := make([]byte, len(plain))
	s.Encrypt(plain, ct)

	qt.Assert(t, qt.Equals(s.TextCRC(), CRC32Data(plain)))
}

func TestJumpSequenceEquivalence(t *testing.T) {
	t.Parallel()

	for _, keyJumps := range []uint32{2, 3, 4, 5, 6, 7, 8} {
		key := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

		unrolled := newState(t, key, keyJumps, 0xdeadbeef, 0xfeedface)
		general := newState(t, key, keyJumps, 0xdeadbeef, 0xfeedface)

		unrolled.Jump()
		general.jumpGeneral()

		if unrolled.S1 != general.S1 || unrolled.S2 != general.S2 || unrolled.M != general.M || !bytes.Equal(unrolled.Key, general.Key) {
			t.Fatalf("keyJumps=%d: unrolled and general diverged", keyJumps)
		}
		qt.Assert(t, qt.Equals(unrolled.S1, general.S1))
		qt.Assert(t, qt.Equals(unrolled.S2, general.S2))
		qt.Assert(t, qt.Equals(unrolled.M, general.M))
		qt.Assert(t, qt.DeepEquals(unrolled.Key, general.Key))
	}
}

func TestHiBang(t *testing.T) {
	// End-to-end scenario 1: L=4, jumps=2, key=[0x11,0x22,0x33,0x44],
	// s1=0x01020304, s2=0x05060708, P="Hi!" round-trips deterministically.
	key := []byte{0x11, 0x22, 0x33, 0x44}
	plain := []byte("Hi!")

	enc := newState(t, key, 2, 0x01020304, 0x05060708)
	ct := make([]byte, len(plain))
	enc.Encrypt(plain, ct)

	dec := newState(t, key, 2, 0x01020304, 0x05060708)
	pt := make([]byte, len(ct))
	dec.Decrypt(ct, pt)

	qt.Assert(t, qt.DeepEquals(pt, plain))
}

func TestInitRejectsNonZeroOpt(t *testing.T) {
	s := &State{}
	err := s.Init([]byte{1, 2, 3, 4}, 4, 2, 0, 0, 1)
	if err == nil {
		t.Fatal("expected error for opt != 0")
	}
}

func TestInitRejectsNonPow2Length(t *testing.T) {
	s := &State{}
	err := s.Init([]byte{1, 2, 3}, 3, 2, 0, 0, 0)
	if err == nil {
		t.Fatal("expected error for non-power-of-two key length")
	}
}
