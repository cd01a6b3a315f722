// Package hohha implements the Hohha Dynamic XOR stream cipher: encrypt,
// decrypt, and the exact bit-level state machine the key-recovery engine
// in internal/recovery depends on.
package hohha

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrUnsupportedOption is returned by Init when Opt is non-zero. The
// reference jump sequence only defines behavior for Opt == 0.
var ErrUnsupportedOption = errors.New("hohha: opt must be 0")

// ErrKeyLengthNotPowerOfTwo is returned by Init when the key body length
// is not a power of two, or is zero.
var ErrKeyLengthNotPowerOfTwo = errors.New("hohha: key length must be a power of two")

// jumpPlan tags which jump sequence Step uses, replacing the reference
// implementation's function-pointer table with a value matched once at
// Init time.
type jumpPlan int

const (
	jumpsGeneral jumpPlan = iota
	jumpsTwo
	jumpsThree
	jumpsFour
	jumpsFive
	jumpsSix
	jumpsSeven
	jumpsEight
)

func planFor(keyJumps uint32) jumpPlan {
	switch keyJumps {
	case 2:
		return jumpsTwo
	case 3:
		return jumpsThree
	case 4:
		return jumpsFour
	case 5:
		return jumpsFive
	case 6:
		return jumpsSix
	case 7:
		return jumpsSeven
	case 8:
		return jumpsEight
	default:
		return jumpsGeneral
	}
}

// State is the Hohha Dynamic XOR cipher state: the moving pointer into a
// secret key body, two salts, a key-derived mixing value, and the running
// (inverted) CRC32 of the plaintext.
type State struct {
	Key      []byte // secret key body, length a power of two
	KeyMask  uint32 // len(Key) - 1
	KeyJumps uint32 // number of jumps per output byte, >= 2
	S1, S2   uint32 // salts
	M        uint32 // moving pointer into Key, always < len(Key)
	V        uint32 // key-derived mixing value
	Cs       uint32 // running inverted CRC32 of the plaintext
	Opt      uint32 // reserved; only 0 is supported

	plan jumpPlan
}

// InitKey copies key into the state (or zero-fills keyLen bytes of key
// body when key is nil) and derives KeyMask, KeyJumps, and V = CRC32(key).
func (s *State) InitKey(key []byte, keyLen int, keyJumps uint32) error {
	if keyLen <= 0 || !isPow2(uint32(keyLen)) {
		return fmt.Errorf("%w: got %d", ErrKeyLengthNotPowerOfTwo, keyLen)
	}

	s.Key = make([]byte, keyLen)
	if key != nil {
		copy(s.Key, key)
	}

	s.KeyMask = uint32(keyLen) - 1
	s.KeyJumps = keyJumps
	s.plan = planFor(keyJumps)

	s.V = CRC32Data(s.Key)
	s.Cs = ^uint32(0)

	return nil
}

// InitSalt sets the salts and derives the initial moving pointer M. The
// key body must already be initialized so KeyMask is valid.
func (s *State) InitSalt(s1, s2 uint32) {
	s.S1 = s1
	s.S2 = s2
	s.M = ((s1 >> 24) * (s2 >> 24)) & s.KeyMask
}

// InitOpt sets the algorithm-option word. Only opt == 0 is accepted.
func (s *State) InitOpt(opt uint32) error {
	if opt != 0 {
		return fmt.Errorf("%w: got %d", ErrUnsupportedOption, opt)
	}
	s.Opt = opt
	return nil
}

// Init fully initializes the state from scratch: key body, salts, and
// options.
func (s *State) Init(key []byte, keyLen int, keyJumps, s1, s2, opt uint32) error {
	if err := s.InitKey(key, keyLen, keyJumps); err != nil {
		return err
	}
	s.InitSalt(s1, s2)
	return s.InitOpt(opt)
}

func isPow2(v uint32) bool {
	return v != 0 && v&(v-1) == 0
}

// Jump0 performs the first even jump: xor key[m] into s1, overwrite key[m]
// with low8(s2), mix m with s2, rotate s2 left by one bit. Exported so
// internal/recovery can single-step a sample's jump sequence while some
// of it is still unknown.
func (s *State) Jump0() {
	s.S1 ^= uint32(s.Key[s.M])
	s.Key[s.M] = byte(s.S2)
	s.M = (s.M ^ s.S2) & s.KeyMask
	s.S2 = bits.RotateLeft32(s.S2, 1)
}

// Jump1 performs the first odd jump: xor key[m] into s2, overwrite key[m]
// with low8(s1), mix m with v, rotate s1 right by one bit.
func (s *State) Jump1() {
	s.S2 ^= uint32(s.Key[s.M])
	s.Key[s.M] = byte(s.S1)
	s.M = (s.M ^ s.V) & s.KeyMask
	s.S1 = bits.RotateLeft32(s.S1, 31)
}

// Jump2 performs the next even jump: same as Jump0 but mixes m with v
// instead of s2.
func (s *State) Jump2() {
	s.S1 ^= uint32(s.Key[s.M])
	s.Key[s.M] = byte(s.S2)
	s.M = (s.M ^ s.V) & s.KeyMask
	s.S2 = bits.RotateLeft32(s.S2, 1)
}

// Jump3 performs the next odd jump: same as Jump1 but mixes m with s1
// instead of v.
func (s *State) Jump3() {
	s.S2 ^= uint32(s.Key[s.M])
	s.Key[s.M] = byte(s.S1)
	s.M = (s.M ^ s.S1) & s.KeyMask
	s.S1 = bits.RotateLeft32(s.S1, 31)
}

// JumpAt performs jump number n (0-based) of a step's sequence: jump 0 and
// 1 always run Jump0/Jump1; jump index >= 2 alternates Jump2/Jump3 by
// parity, matching the general loop in jumpGeneral.
func (s *State) JumpAt(n uint32) {
	switch {
	case n == 0:
		s.Jump0()
	case n == 1:
		s.Jump1()
	case n%2 == 0:
		s.Jump2()
	default:
		s.Jump3()
	}
}

// Jump performs the full per-output-byte jump sequence: jump0, jump1, then
// alternating jump2/jump3 until KeyJumps jumps total have been performed.
// The unrolled cases for KeyJumps in [2,8] are bit-for-bit identical to
// the general loop (see TestJumpSequenceEquivalence); they exist only to
// avoid the loop and rotation bookkeeping on the hot path.
func (s *State) Jump() {
	switch s.plan {
	case jumpsTwo:
		s.Jump0()
		s.Jump1()
	case jumpsThree:
		s.Jump0()
		s.Jump1()
		s.Jump2()
	case jumpsFour:
		s.Jump0()
		s.Jump1()
		s.Jump2()
		s.Jump3()
	case jumpsFive:
		s.Jump0()
		s.Jump1()
		s.Jump2()
		s.Jump3()
		s.Jump2()
	case jumpsSix:
		s.Jump0()
		s.Jump1()
		s.Jump2()
		s.Jump3()
		s.Jump2()
		s.Jump3()
	case jumpsSeven:
		s.Jump0()
		s.Jump1()
		s.Jump2()
		s.Jump3()
		s.Jump2()
		s.Jump3()
		s.Jump2()
	case jumpsEight:
		s.Jump0()
		s.Jump1()
		s.Jump2()
		s.Jump3()
		s.Jump2()
		s.Jump3()
		s.Jump2()
		s.Jump3()
	default:
		s.jumpGeneral()
	}
}

// jumpGeneral is the reference loop form of Jump, used for KeyJumps
// outside [2,8] and as the correctness oracle for the unrolled cases.
func (s *State) jumpGeneral() {
	j := uint32(1)
	jumps := s.KeyJumps

	s.Jump0()
	s.Jump1()

	for {
		j++
		if j == jumps {
			return
		}
		s.Jump2()

		j++
		if j == jumps {
			return
		}
		s.Jump3()
	}
}

// StepXOR returns the per-step XOR byte, the low byte of v ^ s1 ^ s2.
func (s *State) StepXOR() byte {
	return byte(s.V ^ s.S1 ^ s.S2)
}

// StepCRC folds word into the running plaintext CRC and mixes it into V.
func (s *State) StepCRC(word byte) {
	s.Cs = CRC32Byte(s.Cs, word)
	s.V = bits.RotateLeft32(s.V^s.Cs, 1)
}

// TextCRC returns the CRC32 of the plaintext processed so far.
func (s *State) TextCRC() uint32 {
	return ^s.Cs
}

// Encrypt XORs plaintext with the cipher's keystream, advancing the state
// in place. len(out) == len(plaintext) is required.
func (s *State) Encrypt(plaintext, out []byte) {
	for i, p := range plaintext {
		s.Jump()
		x := s.StepXOR()
		s.StepCRC(p)
		out[i] = p ^ x
	}
}

// Decrypt XORs ciphertext with the cipher's keystream, advancing the state
// in place. len(out) == len(ciphertext) is required.
func (s *State) Decrypt(ciphertext, out []byte) {
	for i, c := range ciphertext {
		s.Jump()
		x := s.StepXOR()
		p := c ^ x
		out[i] = p
		s.StepCRC(p)
	}
}

// Clone returns a deep copy of s, including its own key-body backing array.
func (s *State) Clone() *State {
	c := *s
	c.Key = append([]byte(nil), s.Key...)
	return &c
}
