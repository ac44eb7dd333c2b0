// Package deck builds the fixed 52-card alphabet and the two mutable
// views of it a hand passes around  -  a still-masked stack and a set of
// cards already unmasked for viewing  -  grounded on
// original_source/lib/crum_pkr/src/poker_deck.rs.
package deck

import (
	"encoding/hex"
	"fmt"
	"math/rand/v2"

	"golang.org/x/crypto/sha3"

	"crumble/internal/ocpcrypto"
	"crumble/internal/ocpshuffle"
)

var ranks = []byte("23456789TJQKA")
var suits = []byte("shdc")

// Card is a two-byte rank+suit identifier, e.g. "Ah" for the ace of
// hearts.
type Card [2]byte

func (c Card) String() string {
	return string(c[:])
}

// Deck is the canonical 52-card alphabet: each card's fixed identity is
// its hash-to-curve point, computed once per Deck. Each hand builds its
// own Deck with identical contents; it carries no per-hand state.
type Deck struct {
	cards   []Card
	points  []ocpcrypto.G1Point
	byBytes map[string]int
}

// New builds the 52-card dictionary, mapping each card to a point via
// HashToCurve exactly once.
func New() (*Deck, error) {
	d := &Deck{
		cards:   make([]Card, 0, 52),
		points:  make([]ocpcrypto.G1Point, 0, 52),
		byBytes: make(map[string]int, 52),
	}
	for _, r := range ranks {
		for _, s := range suits {
			c := Card{r, s}
			p, err := ocpcrypto.HashToCurve(c[:])
			if err != nil {
				return nil, fmt.Errorf("deck: hash card %s: %w", c, err)
			}
			idx := len(d.cards)
			d.cards = append(d.cards, c)
			d.points = append(d.points, p)
			d.byBytes[string(p.Bytes())] = idx
		}
	}
	return d, nil
}

// Points returns the 52 canonical card points in a fresh, unshuffled
// order, ready to be handed to a MaskedDeck.
func (d *Deck) Points() []ocpcrypto.G1Point {
	out := make([]ocpcrypto.G1Point, len(d.points))
	copy(out, d.points)
	return out
}

// FindCard resolves a fully-unmasked point back to its card identity.
// The dictionary is fixed-size (52 entries) so a hash-indexed lookup is
// a documented optimization over the straightforward linear scan the
// reference implementation uses, not a change in behavior.
func (d *Deck) FindCard(p ocpcrypto.G1Point) (Card, bool) {
	idx, ok := d.byBytes[string(p.Bytes())]
	if !ok {
		return Card{}, false
	}
	return d.cards[idx], true
}

// MaskedDeck is a sequence of card points still under one or more
// players' masks  -  the only form a stack of cards may take while being
// shuffled and dealt.
type MaskedDeck struct {
	cards []ocpcrypto.G1Point
}

// NewMaskedDeck wraps a slice of (possibly already partially masked)
// card points.
func NewMaskedDeck(cards []ocpcrypto.G1Point) *MaskedDeck {
	return &MaskedDeck{cards: append([]ocpcrypto.G1Point(nil), cards...)}
}

// Len reports how many cards remain in the stack.
func (m *MaskedDeck) Len() int {
	return len(m.cards)
}

// Cards returns a copy of the current stack contents.
func (m *MaskedDeck) Cards() []ocpcrypto.G1Point {
	out := make([]ocpcrypto.G1Point, len(m.cards))
	copy(out, m.cards)
	return out
}

// Mask applies a player's key to every card in the stack in place.
func (m *MaskedDeck) Mask(sk ocpcrypto.Scalar) {
	for i, c := range m.cards {
		m.cards[i] = ocpcrypto.Mask(c, sk)
	}
}

// Shuffle permutes the stack using the supplied source of randomness.
// Callers pass a *rand.Rand seeded however they like; the package never
// reaches for a shared global generator.
func (m *MaskedDeck) Shuffle(r *rand.Rand) {
	r.Shuffle(len(m.cards), func(i, j int) {
		m.cards[i], m.cards[j] = m.cards[j], m.cards[i]
	})
}

// ShuffleWithSeed permutes the stack the same way Shuffle does, but
// deterministically: any verifier handed only seed can recompute the
// identical permutation, which is enough to independently check a
// shuffle step without the player ever exposing their swap sequence.
func (m *MaskedDeck) ShuffleWithSeed(seed []byte) error {
	rng, err := ocpshuffle.NewDeterministicRng(seed)
	if err != nil {
		return fmt.Errorf("deck: shuffle with seed: %w", err)
	}
	perm := rng.Permutation(len(m.cards))
	out := make([]ocpcrypto.G1Point, len(m.cards))
	for afterIdx, beforeIdx := range perm {
		out[afterIdx] = m.cards[beforeIdx]
	}
	m.cards = out
	return nil
}

// Hash returns the Keccak-256 digest of the stack's compressed points,
// in order  -  the value every player signs off on as "this is the deck
// I shuffled", matching the reference implementation's deck hash.
func (m *MaskedDeck) Hash() [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, c := range m.cards {
		h.Write(c.Bytes())
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler: a uint16 card count
// followed by each card's compressed G1 point, in order.
func (m *MaskedDeck) MarshalBinary() ([]byte, error) {
	if len(m.cards) > 0xffff {
		return nil, fmt.Errorf("deck: too many cards to encode: %d", len(m.cards))
	}
	var w ocpshuffle.Writer
	w.PutUint16(uint16(len(m.cards)))
	for _, c := range m.cards {
		w.PutBytes(c.Bytes())
	}
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (m *MaskedDeck) UnmarshalBinary(b []byte) error {
	r := ocpshuffle.NewReader(b)
	count, err := r.Uint16()
	if err != nil {
		return fmt.Errorf("deck: decode masked deck: %w", err)
	}
	cards := make([]ocpcrypto.G1Point, count)
	for i := range cards {
		pb, err := r.Bytes(ocpcrypto.G1Bytes)
		if err != nil {
			return fmt.Errorf("deck: decode masked deck: %w", err)
		}
		p, err := ocpcrypto.G1FromBytesCompressed(pb)
		if err != nil {
			return fmt.Errorf("deck: decode masked deck: %w", err)
		}
		cards[i] = p
	}
	if !r.Done() {
		return fmt.Errorf("deck: decode masked deck: trailing bytes")
	}
	m.cards = cards
	return nil
}

// Deal removes the first count cards from the top of the stack and
// returns them as an UnmaskedCards ready to be progressively unmasked.
func (m *MaskedDeck) Deal(count int) (*UnmaskedCards, error) {
	if count < 0 || count > len(m.cards) {
		return nil, fmt.Errorf("deck: deal %d cards: only %d remain", count, len(m.cards))
	}
	dealt := append([]ocpcrypto.G1Point(nil), m.cards[:count]...)
	m.cards = m.cards[count:]
	return &UnmaskedCards{cards: dealt}, nil
}

// UnmaskedCards is a dealt hand of cards progressively stripped of each
// contributing player's mask.
type UnmaskedCards struct {
	cards []ocpcrypto.G1Point
}

// NewUnmaskedCards wraps an already-dealt slice of card points.
func NewUnmaskedCards(cards []ocpcrypto.G1Point) *UnmaskedCards {
	return &UnmaskedCards{cards: append([]ocpcrypto.G1Point(nil), cards...)}
}

// Cards returns a copy of the current (possibly still partially masked)
// points.
func (u *UnmaskedCards) Cards() []ocpcrypto.G1Point {
	out := make([]ocpcrypto.G1Point, len(u.cards))
	copy(out, u.cards)
	return out
}

// Unmask removes one player's mask from every card in this hand.
func (u *UnmaskedCards) Unmask(sk ocpcrypto.Scalar) error {
	for i, c := range u.cards {
		opened, err := ocpcrypto.Unmask(c, sk)
		if err != nil {
			return fmt.Errorf("deck: unmask: %w", err)
		}
		u.cards[i] = opened
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler, same wire shape as
// MaskedDeck.MarshalBinary.
func (u *UnmaskedCards) MarshalBinary() ([]byte, error) {
	if len(u.cards) > 0xffff {
		return nil, fmt.Errorf("deck: too many cards to encode: %d", len(u.cards))
	}
	var w ocpshuffle.Writer
	w.PutUint16(uint16(len(u.cards)))
	for _, c := range u.cards {
		w.PutBytes(c.Bytes())
	}
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (u *UnmaskedCards) UnmarshalBinary(b []byte) error {
	r := ocpshuffle.NewReader(b)
	count, err := r.Uint16()
	if err != nil {
		return fmt.Errorf("deck: decode unmasked cards: %w", err)
	}
	cards := make([]ocpcrypto.G1Point, count)
	for i := range cards {
		pb, err := r.Bytes(ocpcrypto.G1Bytes)
		if err != nil {
			return fmt.Errorf("deck: decode unmasked cards: %w", err)
		}
		p, err := ocpcrypto.G1FromBytesCompressed(pb)
		if err != nil {
			return fmt.Errorf("deck: decode unmasked cards: %w", err)
		}
		cards[i] = p
	}
	if !r.Done() {
		return fmt.Errorf("deck: decode unmasked cards: trailing bytes")
	}
	u.cards = cards
	return nil
}

// Resolve maps every fully-unmasked point back to its card identity,
// failing closed if any point is not in the dictionary (it was either
// never fully unmasked, or a forged point was substituted).
func (d *Deck) Resolve(u *UnmaskedCards) ([]Card, error) {
	out := make([]Card, len(u.cards))
	for i, p := range u.cards {
		c, ok := d.FindCard(p)
		if !ok {
			return nil, fmt.Errorf("deck: resolve: point %s is not a card in this deck", hex.EncodeToString(p.Bytes()))
		}
		out[i] = c
	}
	return out, nil
}
