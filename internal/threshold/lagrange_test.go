package threshold

import (
	"errors"
	"testing"

	"crumble/internal/ocpcrypto"
)

func TestLagrangeAtZero_RejectsEmpty(t *testing.T) {
	if _, err := LagrangeAtZero(nil); !errors.Is(err, ErrInvalidLabelSet) {
		t.Fatalf("empty labels: got %v, want ErrInvalidLabelSet", err)
	}
}

func TestLagrangeAtZero_RejectsZeroLabel(t *testing.T) {
	if _, err := LagrangeAtZero([]uint32{1, 0, 2}); !errors.Is(err, ErrInvalidLabelSet) {
		t.Fatalf("zero label: got %v, want ErrInvalidLabelSet", err)
	}
}

func TestLagrangeAtZero_RejectsDuplicateLabel(t *testing.T) {
	if _, err := LagrangeAtZero([]uint32{3, 1, 3}); !errors.Is(err, ErrInvalidLabelSet) {
		t.Fatalf("duplicate label: got %v, want ErrInvalidLabelSet", err)
	}
}

// reconstruct evaluates a degree-(len(coeffs)-1) polynomial (constant
// term first) at x via Horner's method, entirely in Fr.
func reconstruct(t *testing.T, coeffs []ocpcrypto.Scalar, x uint32) ocpcrypto.Scalar {
	t.Helper()
	acc := ocpcrypto.ScalarZero()
	xs := ocpcrypto.ScalarFromUint64(uint64(x))
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = ocpcrypto.ScalarAdd(ocpcrypto.ScalarMul(acc, xs), coeffs[i])
	}
	return acc
}

func TestCombine_RecoversSecretFromShares(t *testing.T) {
	// f(x) = secret + a1*x + a2*x^2, shares are (label, f(label)) encoded
	// as G1 points via the secret's masking primitive (f(label))·G.
	secret, err := ocpcrypto.ScalarRandom()
	if err != nil {
		t.Fatalf("scalar random: %v", err)
	}
	a1, _ := ocpcrypto.ScalarRandom()
	a2, _ := ocpcrypto.ScalarRandom()
	coeffs := []ocpcrypto.Scalar{secret, a1, a2}

	labels := []uint32{1, 2, 3}
	shares := make([]Share, len(labels))
	for i, l := range labels {
		fl := reconstruct(t, coeffs, l)
		shares[i] = Share{Label: l, Value: ocpcrypto.MulG1(ocpcrypto.G1Generator(), fl)}
	}

	got, err := Combine(shares)
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	want := ocpcrypto.MulG1(ocpcrypto.G1Generator(), secret)
	if !ocpcrypto.G1Eq(got, want) {
		t.Fatalf("combine did not recover the constant term")
	}
}

func TestRecover_RecoversGroupPublicKeyFromShares(t *testing.T) {
	secret, _ := ocpcrypto.ScalarRandom()
	a1, _ := ocpcrypto.ScalarRandom()
	coeffs := []ocpcrypto.Scalar{secret, a1}

	labels := []uint32{5, 9}
	shares := make([]PublicShare, len(labels))
	for i, l := range labels {
		fl := reconstruct(t, coeffs, l)
		shares[i] = PublicShare{Label: l, Value: ocpcrypto.MulG2(ocpcrypto.G2Generator(), fl)}
	}

	got, err := Recover(shares)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	want := ocpcrypto.MulG2(ocpcrypto.G2Generator(), secret)
	if !ocpcrypto.G2Eq(got, want) {
		t.Fatalf("recover did not reconstruct the group public key")
	}
}

func TestCombine_ThreeOfThreeMatchesAnyTwoSubsets(t *testing.T) {
	// Threshold reconstruction must agree regardless of which labels
	// contribute, as long as enough of them are present for the
	// polynomial's degree (spec's "any quorum reconstructs the same
	// value" property).
	secret, _ := ocpcrypto.ScalarRandom()
	a1, _ := ocpcrypto.ScalarRandom()
	coeffs := []ocpcrypto.Scalar{secret, a1}

	all := []uint32{1, 2, 3}
	shareFor := func(l uint32) Share {
		fl := reconstruct(t, coeffs, l)
		return Share{Label: l, Value: ocpcrypto.MulG1(ocpcrypto.G1Generator(), fl)}
	}

	subsets := [][]uint32{all, {1, 2}, {2, 3}, {1, 3}}
	var first ocpcrypto.G1Point
	for i, subset := range subsets {
		shares := make([]Share, len(subset))
		for j, l := range subset {
			shares[j] = shareFor(l)
		}
		got, err := Combine(shares)
		if err != nil {
			t.Fatalf("subset %v: %v", subset, err)
		}
		if i == 0 {
			first = got
			continue
		}
		if !ocpcrypto.G1Eq(first, got) {
			t.Fatalf("subset %v disagrees with subset %v", subset, subsets[0])
		}
	}
}
