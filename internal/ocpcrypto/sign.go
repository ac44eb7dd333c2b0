package ocpcrypto

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// ErrVerification is returned whenever a pairing check fails to hold  - 
// a forged signature, a wrong unmasking, or a corrupted share.
var ErrVerification = errors.New("ocpcrypto: verification failed")

// Sign computes sk·H(msg), the single primitive behind both BLS signing
// and card masking (original_source/lib/crum_bls/src/sign.rs: mask and
// sign share one code path, there is no separate "encrypt").
func Sign(sk Scalar, msg []byte) (G1Point, error) {
	h, err := HashToCurve(msg)
	if err != nil {
		return G1Point{}, err
	}
	return MulG1(h, sk), nil
}

// Verify accepts iff e(sig, G2_gen) · e(H(msg), -pk) = 1, the
// "min-signature-size" BLS equation from original_source/lib/crum_bls/src/verify.rs.
func Verify(pk G2Point, msg []byte, sig G1Point) error {
	h, err := HashToCurve(msg)
	if err != nil {
		return err
	}
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{sig.v, h.v},
		[]bls12381.G2Affine{G2Generator().v, G2Neg(pk).v},
	)
	if err != nil {
		return fmt.Errorf("ocpcrypto: verify: %w", err)
	}
	if !ok {
		return ErrVerification
	}
	return nil
}

// Mask applies a player's ephemeral key to a card point. Masking and
// unmasking are the same scalar-multiplication primitive as signing;
// Unmask simply multiplies by the inverse scalar.
func Mask(card G1Point, k Scalar) G1Point {
	return MulG1(card, k)
}

// Unmask reverses a single player's mask given that player's key.
func Unmask(masked G1Point, k Scalar) (G1Point, error) {
	kInv, err := ScalarInv(k)
	if err != nil {
		return G1Point{}, fmt.Errorf("ocpcrypto: unmask: %w", err)
	}
	return MulG1(masked, kInv), nil
}

// VerifyMasking accepts iff e(after, -G2_gen) · e(before, pk) = 1  -  i.e.
// `after` is exactly `before` with this player's mask *applied*, the
// dual of VerifyUnmasking used to check a single step of a shuffle
// trace (original_source/lib/crum_pkr/src/poker_hand_verify.rs's
// sibling equation, spec §4.5).
func VerifyMasking(before, after G1Point, pk G2Point) error {
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{after.v, before.v},
		[]bls12381.G2Affine{G2Neg(G2Generator()).v, pk.v},
	)
	if err != nil {
		return fmt.Errorf("ocpcrypto: verify masking: %w", err)
	}
	if !ok {
		return ErrVerification
	}
	return nil
}

// VerifyUnmasking accepts iff e(after, pk) · e(-before, G2_gen) = 1  - 
// i.e. `after` is exactly `before` with the holder of `pk`'s mask
// removed, without the verifier ever learning the mask scalar itself
// (original_source/lib/crum_bls/src/verify.rs, `verify_unmasking`).
func VerifyUnmasking(before, after G1Point, pk G2Point) error {
	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{after.v, G1Neg(before).v},
		[]bls12381.G2Affine{pk.v, G2Generator().v},
	)
	if err != nil {
		return fmt.Errorf("ocpcrypto: verify unmasking: %w", err)
	}
	if !ok {
		return ErrVerification
	}
	return nil
}
