package ocpcrypto

import "testing"

// TestHashToCurve_IsDeterministic pins the one property spec §4.1
// actually requires of this module in isolation: the same message
// always maps to the same point. A true cross-implementation
// known-answer vector against original_source's Keccak-256-based XMD
// is not pinned here, since gnark-crypto's HashToG1 expands with
// SHA-256 internally (see HashToCurveDST's doc comment and DESIGN.md) -
// a hardcoded Keccak-256 KAT would simply never match this backend.
func TestHashToCurve_IsDeterministic(t *testing.T) {
	p1, err := HashToCurve([]byte("As"))
	if err != nil {
		t.Fatalf("hash to curve: %v", err)
	}
	p2, err := HashToCurve([]byte("As"))
	if err != nil {
		t.Fatalf("hash to curve: %v", err)
	}
	if !G1Eq(p1, p2) {
		t.Fatalf("HashToCurve(%q) was not deterministic across two calls", "As")
	}
}

func TestHashToCurve_DistinctMessagesYieldDistinctPoints(t *testing.T) {
	p1, err := HashToCurve([]byte("As"))
	if err != nil {
		t.Fatalf("hash to curve: %v", err)
	}
	p2, err := HashToCurve([]byte("Kh"))
	if err != nil {
		t.Fatalf("hash to curve: %v", err)
	}
	if G1Eq(p1, p2) {
		t.Fatalf("distinct card identities hashed to the same point")
	}
}
