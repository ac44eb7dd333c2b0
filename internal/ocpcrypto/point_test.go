package ocpcrypto

import "testing"

func TestMulG1_DistributesOverScalarAdd(t *testing.T) {
	p, err := HashToCurve([]byte("a card"))
	if err != nil {
		t.Fatalf("hash to curve: %v", err)
	}
	a, err := ScalarRandom()
	if err != nil {
		t.Fatalf("scalar random: %v", err)
	}
	b, err := ScalarRandom()
	if err != nil {
		t.Fatalf("scalar random: %v", err)
	}
	lhs := MulG1(p, ScalarAdd(a, b))
	rhs := G1Add(MulG1(p, a), MulG1(p, b))
	if !G1Eq(lhs, rhs) {
		t.Fatalf("(a+b)*P != a*P + b*P")
	}
}

func TestMaskUnmask_RoundTrips(t *testing.T) {
	p, err := HashToCurve([]byte("another card"))
	if err != nil {
		t.Fatalf("hash to curve: %v", err)
	}
	sk, err := ScalarRandom()
	if err != nil {
		t.Fatalf("scalar random: %v", err)
	}
	masked := Mask(p, sk)
	opened, err := Unmask(masked, sk)
	if err != nil {
		t.Fatalf("unmask: %v", err)
	}
	if !G1Eq(p, opened) {
		t.Fatalf("unmask(mask(p)) != p")
	}
}

func TestG1Point_BytesRoundTrips(t *testing.T) {
	p, err := HashToCurve([]byte("yet another card"))
	if err != nil {
		t.Fatalf("hash to curve: %v", err)
	}
	decoded, err := G1FromBytesCompressed(p.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !G1Eq(p, decoded) {
		t.Fatalf("G1 point did not round-trip through bytes")
	}
}

func TestG1Point_HexRoundTrips(t *testing.T) {
	p := G1Generator()
	decoded, err := G1FromHex(p.String())
	if err != nil {
		t.Fatalf("G1FromHex: %v", err)
	}
	if !G1Eq(p, decoded) {
		t.Fatalf("G1 point did not round-trip through hex")
	}
}

func TestG2Point_HexRoundTrips(t *testing.T) {
	p := G2Generator()
	decoded, err := G2FromHex(p.String())
	if err != nil {
		t.Fatalf("G2FromHex: %v", err)
	}
	if !G2Eq(p, decoded) {
		t.Fatalf("G2 point did not round-trip through hex")
	}
}

func TestG1Neg_CancelsUnderAdd(t *testing.T) {
	p := G1Generator()
	if !G1Eq(G1Add(p, G1Neg(p)), G1Identity()) {
		t.Fatalf("P + (-P) != identity")
	}
}
