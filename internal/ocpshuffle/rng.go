// Package ocpshuffle supplies the shuffle step with the one piece of
// randomness it actually needs to be reproducible: a seed-derived
// Fisher-Yates permutation, plus the compact little-endian wire helpers
// internal/shuffleproof and internal/deck use for their
// encoding.BinaryMarshaler implementations. Adapted from the teacher's
// deterministic-RNG and wire-encoding helpers (originally built for an
// ElGamal ciphertext wire format this engine does not use).
package ocpshuffle

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"

	"crumble/internal/ocpcrypto"
)

// DeterministicRng derives an unbounded stream of scalars from a fixed
// seed via Keccak-256. A player can publish just the seed instead of a
// full list of swaps and let any verifier recompute the same
// permutation, which is what Permutation below is for.
type DeterministicRng struct {
	seed    []byte
	counter uint32
}

func NewDeterministicRng(seed []byte) (*DeterministicRng, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("ocpshuffle: deterministic rng: empty seed")
	}
	return &DeterministicRng{seed: append([]byte(nil), seed...)}, nil
}

// NextScalar draws the next value in the stream.
func (r *DeterministicRng) NextScalar() ocpcrypto.Scalar {
	h := sha3.NewLegacyKeccak256()
	h.Write(r.seed)
	var c [4]byte
	binary.LittleEndian.PutUint32(c[:], r.counter)
	h.Write(c[:])
	r.counter++
	return ocpcrypto.ScalarFromUniformBytes(h.Sum(nil))
}

// Permutation produces a length-n Fisher-Yates permutation driven
// entirely by NextScalar, so the same seed always yields the same
// permutation regardless of which machine computes it.
func (r *DeterministicRng) Permutation(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		b := r.NextScalar().Bytes()
		v := binary.BigEndian.Uint64(b[len(b)-8:])
		j := int(v % uint64(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}
