// Package crumble is the public driver API: a thin facade over
// internal/table and internal/holdem that exposes the game as one
// "what do I do next" call plus a matching Submit* method per phase  - 
// the role PokerHandStateEnum and crum_bot's act() dispatch play in the
// reference implementation (original_source/apps/crum_bot/src/main.rs).
package crumble

import (
	"github.com/rs/zerolog"

	"crumble/internal/deck"
	"crumble/internal/holdem"
	"crumble/internal/ocpcrypto"
	"crumble/internal/shuffleproof"
	"crumble/internal/table"
)

// Re-exported so callers never need to import crumble/internal/holdem
// themselves.
type (
	Phase  = holdem.Phase
	Action = holdem.Action
)

const (
	PhaseShuffle              = holdem.PhaseShuffle
	PhaseSmallBlind           = holdem.PhaseSmallBlind
	PhaseBigBlind             = holdem.PhaseBigBlind
	PhaseBet                  = holdem.PhaseBet
	PhaseUnmaskHoleCards      = holdem.PhaseUnmaskHoleCards
	PhaseUnmaskCommunityCards = holdem.PhaseUnmaskCommunityCards
	PhaseUnmaskShowdown       = holdem.PhaseUnmaskShowdown
	PhaseSubmitPublicKey      = holdem.PhaseSubmitPublicKey
	PhaseFinished             = holdem.PhaseFinished
	PhaseCheated              = holdem.PhaseCheated
)

const (
	RoundPreflop = holdem.RoundPreflop
	RoundFlop    = holdem.RoundFlop
	RoundTurn    = holdem.RoundTurn
	RoundRiver   = holdem.RoundRiver
)

// Table is the entry point: create one, Join every player, then
// StartHand repeatedly, driving each hand to completion with the
// Submit* methods below before starting the next.
type Table struct {
	t *table.Table
}

// NewTable creates a table seating up to maxPlayers, logging through
// logger (the zero value disables logging).
func NewTable(maxPlayers int, logger zerolog.Logger) *Table {
	return &Table{t: table.New(maxPlayers, int(holdem.RoundRiver)+1, logger)}
}

func (tb *Table) Join(playerID uint32) error { return tb.t.Join(playerID) }

func (tb *Table) StartHand(initialChips, smallBlind uint64) error {
	return tb.t.StartHand(initialChips, smallBlind)
}

func (tb *Table) PlayerCount() int                 { return tb.t.PlayerCount() }
func (tb *Table) Player(index int) (uint32, error) { return tb.t.Player(index) }
func (tb *Table) DealerButton() int                { return tb.t.DealerButton() }

// CurrentAction reports what the active hand expects next. Calling it
// before the first StartHand panics with a nil pointer the same way
// calling any other gameplay method would  -  there is nothing fair to
// report about a table with no hand.
func (tb *Table) CurrentAction() Action {
	return tb.t.CurrentHand().CurrentAction()
}

func (tb *Table) ShuffledDeck() *deck.MaskedDeck { return tb.t.CurrentHand().ShuffledDeck() }
func (tb *Table) Deck() *deck.Deck               { return tb.t.CurrentHand().Deck() }
func (tb *Table) PlayerCards() []*deck.UnmaskedCards {
	return tb.t.CurrentHand().PlayerCards()
}
func (tb *Table) CommunityCards(round int) (*deck.UnmaskedCards, error) {
	return tb.t.CurrentHand().CommunityCards(round)
}
func (tb *Table) CallAmountRequired(player int) (uint64, error) {
	return tb.t.CurrentHand().CallAmountRequired(player)
}
func (tb *Table) ChipsRemaining(player int) uint64 {
	return tb.t.CurrentHand().ChipsRemaining(player)
}
func (tb *Table) SmallBlind() uint64 { return tb.t.CurrentHand().SmallBlind() }
func (tb *Table) BigBlind() uint64   { return tb.t.CurrentHand().BigBlind() }

func (tb *Table) SubmitShuffledDeck(player int, shuffled *deck.MaskedDeck) error {
	return tb.t.CurrentHand().SubmitShuffledDeck(player, shuffled)
}
func (tb *Table) SubmitSmallBlind(player int) error { return tb.t.CurrentHand().SubmitSmallBlind(player) }
func (tb *Table) SubmitBigBlind(player int) error   { return tb.t.CurrentHand().SubmitBigBlind(player) }
func (tb *Table) SubmitPlayerCards(player int, cards []*deck.UnmaskedCards) error {
	return tb.t.CurrentHand().SubmitPlayerCards(player, cards)
}
func (tb *Table) SubmitPlayerCardsShowdown(player int, cards []*deck.UnmaskedCards) error {
	return tb.t.CurrentHand().SubmitPlayerCardsShowdown(player, cards)
}
func (tb *Table) SubmitCommunityCards(player, round int, cards *deck.UnmaskedCards) error {
	return tb.t.CurrentHand().SubmitCommunityCards(player, round, cards)
}
func (tb *Table) SubmitBet(player int, amount uint64) error {
	return tb.t.CurrentHand().SubmitBet(player, amount)
}
func (tb *Table) SubmitPublicKey(player int, pk ocpcrypto.G2Point, trace shuffleproof.Trace) error {
	return tb.t.CurrentHand().SubmitPublicKey(player, pk, trace)
}
