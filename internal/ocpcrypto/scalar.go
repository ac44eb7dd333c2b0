package ocpcrypto

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ScalarBytes is the canonical big-endian encoding length of a scalar
// field element (spec §6).
const ScalarBytes = 32

// Scalar is an element of the BLS12-381 scalar field (Fr), the group
// order of both G1 and G2. It is the type of every signing key, Lagrange
// coefficient, and mask.
type Scalar struct {
	v fr.Element
}

func ScalarZero() Scalar {
	return Scalar{}
}

// ScalarRandom draws a scalar uniformly from Fr. Used only by players to
// sample an ephemeral hand signing key, never by the engine itself.
func ScalarRandom() (Scalar, error) {
	var s Scalar
	if _, err := s.v.SetRandom(); err != nil {
		return Scalar{}, fmt.Errorf("ocpcrypto: scalar random: %w", err)
	}
	return s, nil
}

func ScalarFromUint64(x uint64) Scalar {
	var s Scalar
	s.v.SetUint64(x)
	return s
}

// ScalarFromBytesCanonical decodes a big-endian 32-byte scalar, rejecting
// anything that does not reduce to a canonical Fr representative.
func ScalarFromBytesCanonical(b []byte) (Scalar, error) {
	if len(b) != ScalarBytes {
		return Scalar{}, fmt.Errorf("ocpcrypto: scalar: expected %d bytes, got %d", ScalarBytes, len(b))
	}
	var s Scalar
	s.v.SetBytes(b)
	var back [ScalarBytes]byte
	back = s.v.Bytes()
	for i := range back {
		if back[i] != b[i] {
			return Scalar{}, fmt.Errorf("ocpcrypto: scalar: non-canonical encoding")
		}
	}
	return s, nil
}

// ScalarFromUniformBytes reduces a uniform byte string (such as a hash
// digest) into Fr. Used by internal/ocpshuffle's DeterministicRng, not
// by signing-key sampling.
func ScalarFromUniformBytes(b []byte) Scalar {
	var s Scalar
	s.v.SetBytes(b)
	return s
}

func (s Scalar) Bytes() []byte {
	b := s.v.Bytes()
	return b[:]
}

func (s Scalar) IsZero() bool {
	return s.v.IsZero()
}

func ScalarAdd(a, b Scalar) Scalar {
	var out Scalar
	out.v.Add(&a.v, &b.v)
	return out
}

func ScalarSub(a, b Scalar) Scalar {
	var out Scalar
	out.v.Sub(&a.v, &b.v)
	return out
}

func ScalarMul(a, b Scalar) Scalar {
	var out Scalar
	out.v.Mul(&a.v, &b.v)
	return out
}

func ScalarNeg(a Scalar) Scalar {
	var out Scalar
	out.v.Neg(&a.v)
	return out
}

func ScalarInv(a Scalar) (Scalar, error) {
	if a.IsZero() {
		return Scalar{}, fmt.Errorf("ocpcrypto: scalar: inverse of zero")
	}
	var out Scalar
	out.v.Inverse(&a.v)
	return out, nil
}

func ScalarEq(a, b Scalar) bool {
	return a.v.Equal(&b.v)
}

// MarshalBinary implements encoding.BinaryMarshaler as the canonical
// 32-byte big-endian encoding.
func (s Scalar) MarshalBinary() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Scalar) UnmarshalBinary(b []byte) error {
	decoded, err := ScalarFromBytesCanonical(b)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
