package deck

import (
	"math/rand/v2"
	"testing"

	"crumble/internal/ocpcrypto"
)

func TestNew_Builds52DistinctCards(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(d.cards) != 52 {
		t.Fatalf("got %d cards, want 52", len(d.cards))
	}
	seen := make(map[string]bool, 52)
	for _, p := range d.points {
		key := string(p.Bytes())
		if seen[key] {
			t.Fatalf("duplicate card point for %v", p)
		}
		seen[key] = true
	}
}

func TestMaskShuffleDealUnmask_RoundTrips(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sk, err := ocpcrypto.ScalarRandom()
	if err != nil {
		t.Fatalf("scalar random: %v", err)
	}

	m := NewMaskedDeck(d.Points())
	m.Mask(sk)
	m.Shuffle(rand.New(rand.NewPCG(1, 2)))

	if m.Len() != 52 {
		t.Fatalf("got %d cards after shuffle, want 52", m.Len())
	}

	dealt, err := m.Deal(2)
	if err != nil {
		t.Fatalf("deal: %v", err)
	}
	if m.Len() != 50 {
		t.Fatalf("got %d cards remaining, want 50", m.Len())
	}

	if err := dealt.Unmask(sk); err != nil {
		t.Fatalf("unmask: %v", err)
	}

	cards, err := d.Resolve(dealt)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d resolved cards, want 2", len(cards))
	}
	if cards[0] == cards[1] {
		t.Fatalf("dealt the same card twice: %v", cards[0])
	}
}

func TestShuffleWithSeed_IsReproducible(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m1 := NewMaskedDeck(d.Points())
	m2 := NewMaskedDeck(d.Points())
	if err := m1.ShuffleWithSeed([]byte("table seed")); err != nil {
		t.Fatalf("shuffle with seed: %v", err)
	}
	if err := m2.ShuffleWithSeed([]byte("table seed")); err != nil {
		t.Fatalf("shuffle with seed: %v", err)
	}
	c1, c2 := m1.Cards(), m2.Cards()
	for i := range c1 {
		if !ocpcrypto.G1Eq(c1[i], c2[i]) {
			t.Fatalf("card %d diverged between identically-seeded shuffles", i)
		}
	}
}

func TestMaskedDeck_MarshalBinaryRoundTrips(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	original := NewMaskedDeck(d.Points())
	encoded, err := original.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded MaskedDeck
	if err := decoded.UnmarshalBinary(encoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Len() != original.Len() {
		t.Fatalf("got %d cards, want %d", decoded.Len(), original.Len())
	}
	want, got := original.Cards(), decoded.Cards()
	for i := range want {
		if !ocpcrypto.G1Eq(want[i], got[i]) {
			t.Fatalf("card %d did not round-trip", i)
		}
	}
}

func TestDeal_RejectsTooMany(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m := NewMaskedDeck(d.Points())
	if _, err := m.Deal(53); err == nil {
		t.Fatalf("dealing more cards than remain should fail")
	}
}

func TestResolve_RejectsUnmaskedForgery(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// A point that is not a hash-to-curve image of any of the 52 cards
	// must never resolve to a card.
	forged := ocpcrypto.G1Generator()
	u := NewUnmaskedCards([]ocpcrypto.G1Point{forged})
	if _, err := d.Resolve(u); err == nil {
		t.Fatalf("resolving a non-card point should fail")
	}
}
