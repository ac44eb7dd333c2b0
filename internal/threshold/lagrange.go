// Package threshold combines per-player BLS shares  -  signature/card
// shares in G1, public-key shares in G2  -  into a single value via
// Lagrange interpolation at x=0, grounded on
// original_source/lib/crum_bls/src/lagrange.rs.
package threshold

import (
	"errors"
	"fmt"

	"crumble/internal/ocpcrypto"
)

// ErrInvalidLabelSet is returned for an empty label set, a zero label
// (x=0 is the evaluation point itself, so a share there is undefined),
// or a duplicate label.
var ErrInvalidLabelSet = errors.New("threshold: invalid label set")

// LagrangeAtZero returns the coefficients (mod r) for reconstructing
// f(0) from shares (label_i, f(label_i)) with distinct non-zero labels.
//
// Coefficient for label i:  λ_i = Π_{j≠i} (0 - label_j) / (label_i - label_j)
func LagrangeAtZero(labels []uint32) ([]ocpcrypto.Scalar, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: empty label set", ErrInvalidLabelSet)
	}
	seen := make(map[uint32]bool, len(labels))
	for _, l := range labels {
		if l == 0 {
			return nil, fmt.Errorf("%w: label 0 not allowed", ErrInvalidLabelSet)
		}
		if seen[l] {
			return nil, fmt.Errorf("%w: duplicate label %d", ErrInvalidLabelSet, l)
		}
		seen[l] = true
	}

	one := ocpcrypto.ScalarFromUint64(1)
	lambdas := make([]ocpcrypto.Scalar, 0, len(labels))
	for _, li := range labels {
		xi := ocpcrypto.ScalarFromUint64(uint64(li))
		num := one
		den := one
		for _, lj := range labels {
			if lj == li {
				continue
			}
			xj := ocpcrypto.ScalarFromUint64(uint64(lj))
			num = ocpcrypto.ScalarMul(num, ocpcrypto.ScalarNeg(xj))
			den = ocpcrypto.ScalarMul(den, ocpcrypto.ScalarSub(xi, xj))
		}
		denInv, err := ocpcrypto.ScalarInv(den)
		if err != nil {
			return nil, fmt.Errorf("%w: labels %v produce a zero denominator", ErrInvalidLabelSet, labels)
		}
		lambdas = append(lambdas, ocpcrypto.ScalarMul(num, denInv))
	}
	return lambdas, nil
}

// Share pairs a contributing player's label with its G1 share (a
// partial signature or a partially-unmasked card).
type Share struct {
	Label uint32
	Value ocpcrypto.G1Point
}

// PublicShare pairs a label with its G2 public-key share.
type PublicShare struct {
	Label uint32
	Value ocpcrypto.G2Point
}

// Combine reconstructs the G1 value at x=0 (spec §4.3's threshold
// signature/card recombination) from a set of shares, weighting each
// by its Lagrange coefficient and accumulating in G1.
func Combine(shares []Share) (ocpcrypto.G1Point, error) {
	labels := make([]uint32, len(shares))
	for i, s := range shares {
		labels[i] = s.Label
	}
	lambdas, err := LagrangeAtZero(labels)
	if err != nil {
		return ocpcrypto.G1Point{}, err
	}
	acc := ocpcrypto.G1Identity()
	for i, s := range shares {
		acc = ocpcrypto.G1Add(acc, ocpcrypto.MulG1(s.Value, lambdas[i]))
	}
	return acc, nil
}

// Recover reconstructs the G2 group public key at x=0 from individual
// players' public-key shares, mirroring Combine but in G2.
func Recover(shares []PublicShare) (ocpcrypto.G2Point, error) {
	labels := make([]uint32, len(shares))
	for i, s := range shares {
		labels[i] = s.Label
	}
	lambdas, err := LagrangeAtZero(labels)
	if err != nil {
		return ocpcrypto.G2Point{}, err
	}
	acc := ocpcrypto.G2Identity()
	for i, s := range shares {
		acc = ocpcrypto.G2Add(acc, ocpcrypto.MulG2(s.Value, lambdas[i]))
	}
	return acc, nil
}
