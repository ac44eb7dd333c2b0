package ocpcrypto

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// G1Bytes and G2Bytes are the compressed point sizes fixed by spec §6.
const (
	G1Bytes = 48
	G2Bytes = 96
)

// G1Point is an element of G1. Card identities, masked cards, and
// signatures all live here (the "min-signature-size" BLS parameter
// assignment: spec §4.1, original_source crum_bls/types.rs).
type G1Point struct {
	v bls12381.G1Affine
}

// G2Point is an element of G2. Ephemeral per-hand public keys live here.
type G2Point struct {
	v bls12381.G2Affine
}

func G1Identity() G1Point {
	var p G1Point
	p.v.X.SetZero()
	p.v.Y.SetZero()
	return p
}

func G2Identity() G2Point {
	var p G2Point
	p.v.X.SetZero()
	p.v.Y.SetZero()
	return p
}

func G1Generator() G1Point {
	_, _, g1Aff, _ := bls12381.Generators()
	return G1Point{v: g1Aff}
}

func G2Generator() G2Point {
	_, _, _, g2Aff := bls12381.Generators()
	return G2Point{v: g2Aff}
}

// G1Add and G2Add accumulate Lagrange-weighted shares (internal/threshold)
// without round-tripping through Jacobian conversions at every call site.
func G1Add(a, b G1Point) G1Point {
	var aJac, bJac bls12381.G1Jac
	aJac.FromAffine(&a.v)
	bJac.FromAffine(&b.v)
	aJac.AddAssign(&bJac)
	var out bls12381.G1Affine
	out.FromJacobian(&aJac)
	return G1Point{v: out}
}

func G2Add(a, b G2Point) G2Point {
	var aJac, bJac bls12381.G2Jac
	aJac.FromAffine(&a.v)
	bJac.FromAffine(&b.v)
	aJac.AddAssign(&bJac)
	var out bls12381.G2Affine
	out.FromJacobian(&aJac)
	return G2Point{v: out}
}

func G1FromBytesCompressed(b []byte) (G1Point, error) {
	if len(b) != G1Bytes {
		return G1Point{}, fmt.Errorf("ocpcrypto: g1: expected %d bytes, got %d", G1Bytes, len(b))
	}
	var p bls12381.G1Affine
	if _, err := p.SetBytes(b); err != nil {
		return G1Point{}, fmt.Errorf("ocpcrypto: g1: decode: %w", err)
	}
	return G1Point{v: p}, nil
}

func G2FromBytesCompressed(b []byte) (G2Point, error) {
	if len(b) != G2Bytes {
		return G2Point{}, fmt.Errorf("ocpcrypto: g2: expected %d bytes, got %d", G2Bytes, len(b))
	}
	var p bls12381.G2Affine
	if _, err := p.SetBytes(b); err != nil {
		return G2Point{}, fmt.Errorf("ocpcrypto: g2: decode: %w", err)
	}
	return G2Point{v: p}, nil
}

// AsAffine exposes the underlying gnark-crypto point for callers (such
// as internal/unmaskaudit and internal/shuffleproof) that need to build
// their own batched PairingCheck operand slices.
func (p G1Point) AsAffine() bls12381.G1Affine {
	return p.v
}

// AsAffine exposes the underlying gnark-crypto point, see G1Point.AsAffine.
func (p G2Point) AsAffine() bls12381.G2Affine {
	return p.v
}

func (p G1Point) Bytes() []byte {
	b := p.v.Bytes()
	return b[:]
}

func (p G2Point) Bytes() []byte {
	b := p.v.Bytes()
	return b[:]
}

// MarshalBinary implements encoding.BinaryMarshaler as the compressed
// G1Bytes encoding.
func (p G1Point) MarshalBinary() ([]byte, error) {
	return p.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *G1Point) UnmarshalBinary(b []byte) error {
	decoded, err := G1FromBytesCompressed(b)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler as the compressed
// G2Bytes encoding.
func (p G2Point) MarshalBinary() ([]byte, error) {
	return p.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *G2Point) UnmarshalBinary(b []byte) error {
	decoded, err := G2FromBytesCompressed(b)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

func G1Eq(a, b G1Point) bool {
	return a.v.Equal(&b.v)
}

func G2Eq(a, b G2Point) bool {
	return a.v.Equal(&b.v)
}

// MulG1 computes k·P, the commutative mask operation of spec §4.2. It is
// the single primitive behind both mask() and unmask() (unmask is
// MulG1(P, k⁻¹)).
func MulG1(p G1Point, k Scalar) G1Point {
	var kBig big.Int
	k.v.BigInt(&kBig)
	var jac bls12381.G1Jac
	jac.FromAffine(&p.v)
	jac.ScalarMultiplication(&jac, &kBig)
	var out bls12381.G1Affine
	out.FromJacobian(&jac)
	return G1Point{v: out}
}

func MulG2(p G2Point, k Scalar) G2Point {
	var kBig big.Int
	k.v.BigInt(&kBig)
	var jac bls12381.G2Jac
	jac.FromAffine(&p.v)
	jac.ScalarMultiplication(&jac, &kBig)
	var out bls12381.G2Affine
	out.FromJacobian(&jac)
	return G2Point{v: out}
}

func G1Neg(p G1Point) G1Point {
	var out bls12381.G1Affine
	out.Neg(&p.v)
	return G1Point{v: out}
}

func G2Neg(p G2Point) G2Point {
	var out bls12381.G2Affine
	out.Neg(&p.v)
	return G2Point{v: out}
}
