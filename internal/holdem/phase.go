// Package holdem is the hand-lifecycle state machine: it turns a
// sequence of per-player submissions into phase transitions, delegates
// legality of bets to internal/betting, and at the end of a hand
// replays the recorded shuffle and unmasking history through
// internal/shuffleproof and internal/unmaskaudit to accept or reject
// the hand as fair. Grounded on
// original_source/lib/crum_pkr/src/poker_state.rs and poker_hand.rs.
package holdem

// Phase identifies where a hand currently sits in its lifecycle.
type Phase uint8

const (
	PhaseShuffle Phase = iota
	PhaseSmallBlind
	PhaseBigBlind
	PhaseBet
	PhaseUnmaskHoleCards
	PhaseUnmaskCommunityCards
	PhaseUnmaskShowdown
	PhaseSubmitPublicKey
	PhaseFinished
	PhaseCheated
)

// Holdem round indices, reused both for community-card bookkeeping and
// for PhaseBet's round field.
const (
	RoundPreflop = iota
	RoundFlop
	RoundTurn
	RoundRiver
	numRounds
)

func (p Phase) String() string {
	switch p {
	case PhaseShuffle:
		return "Shuffle"
	case PhaseSmallBlind:
		return "SmallBlind"
	case PhaseBigBlind:
		return "BigBlind"
	case PhaseBet:
		return "Bet"
	case PhaseUnmaskHoleCards:
		return "UnmaskHoleCards"
	case PhaseUnmaskCommunityCards:
		return "UnmaskCommunityCards"
	case PhaseUnmaskShowdown:
		return "UnmaskShowdown"
	case PhaseSubmitPublicKey:
		return "SubmitPublicKey"
	case PhaseFinished:
		return "Finished"
	case PhaseCheated:
		return "Cheated"
	default:
		return "Invalid"
	}
}

// Action describes what the hand expects next: which phase it is in,
// which player must act, and the extra data (round number, dealer
// flag) that phase carries  -  a tagged-variant stand-in for
// PokerHandStateEnum, since Go has no sum types.
type Action struct {
	Phase    Phase
	Player   int
	Round    int
	IsDealer bool
}

// cursor tracks dealer button, active player, and current
// round/phase, mirroring PokerHandState.
type cursor struct {
	dealerButton  int
	numPlayers    int
	maxRounds     int
	currentPlayer int
	currentRound  int
	phase         Phase
}

func newCursor(numPlayers, maxRounds, dealerButton int) cursor {
	return cursor{
		dealerButton:  dealerButton,
		numPlayers:    numPlayers,
		maxRounds:     maxRounds,
		currentPlayer: dealerButton,
		currentRound:  0,
		phase:         PhaseShuffle,
	}
}

func (c *cursor) isDealer(player int) bool {
	return c.dealerButton == player
}

func (c *cursor) isCurrentDealer() bool {
	return c.isDealer(c.currentPlayer)
}

func (c *cursor) nextDealer() {
	c.currentPlayer = c.dealerButton
}

// nextPlayer advances to the next seat and reports whether doing so
// wrapped back around to the dealer button.
func (c *cursor) nextPlayer() bool {
	c.currentPlayer = (c.currentPlayer + 1) % c.numPlayers
	return c.currentPlayer == c.dealerButton
}

// nextPlayerMasked advances past folded seats, optionally restarting
// from the dealer button first, reporting whether it wrapped back to
// where it started without finding an eligible seat.
func (c *cursor) nextPlayerMasked(active []bool, fromDealer bool) bool {
	if fromDealer {
		c.nextDealer()
		if active[c.currentPlayer] {
			return false
		}
	}
	start := c.currentPlayer
	for {
		c.nextPlayer()
		if active[c.currentPlayer] {
			return false
		}
		if c.currentPlayer == start {
			return true
		}
	}
}

// nextRound advances the round counter, reporting whether this was the
// last round (river) about to complete.
func (c *cursor) nextRound() (bool, error) {
	next := c.currentRound + 1
	if next > c.maxRounds {
		return false, errHandFinished
	}
	c.currentRound = next
	return next == c.maxRounds, nil
}

// action returns the tagged-variant view of the current cursor state.
func (c *cursor) action() Action {
	a := Action{Phase: c.phase, Player: c.currentPlayer, Round: c.currentRound}
	if c.phase == PhaseShuffle {
		a.IsDealer = c.isCurrentDealer()
	}
	return a
}
