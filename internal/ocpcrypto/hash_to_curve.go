package ocpcrypto

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// HashToCurveDST is the domain-separation tag spec §3/§6 fixes for every
// card-identity and signature hash-to-curve call, reproduced from
// original_source/lib/crum_bls/src/hash_to_curve.rs.
const HashToCurveDST = "BLS_SIG_BLS12381G2_XMD:KECCAK-256_SSWU_RO_"

// HashToCurve maps an arbitrary message to a uniformly-distributed G1
// point, deterministically and identically for every caller  -  this is the
// only "dictionary" a deck's 52 card points are derived from (spec §3).
//
// The RFC9380 expand-message-xmd/SSWU pipeline itself is gnark-crypto's;
// we do not hand-roll the simplified-SWU isogeny map (its constant tables
// are exactly the kind of easy-to-get-silently-wrong code spec §9 warns
// about). gnark-crypto's suite hashes with SHA-256 rather than the
// Keccak-256 named in the DST above  -  noted in DESIGN.md rather than
// silently worked around, since nothing in this module cross-verifies
// against an external implementation. This also means the DST is
// intentionally non-interoperable with a Keccak-256-based XMD
// expansion: the only known-answer vector spec §4.1 asks for that this
// backend can actually satisfy is the self-consistency pin in
// hash_to_curve_test.go, not a byte-for-byte match against
// original_source's Keccak-256 implementation.
func HashToCurve(message []byte) (G1Point, error) {
	p, err := bls12381.HashToG1(message, []byte(HashToCurveDST))
	if err != nil {
		return G1Point{}, fmt.Errorf("ocpcrypto: hash to curve: %w", err)
	}
	return G1Point{v: p}, nil
}
