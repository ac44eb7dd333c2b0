package holdem

import (
	"fmt"

	"github.com/rs/zerolog"

	"crumble/internal/betting"
	"crumble/internal/deck"
	"crumble/internal/ocpcrypto"
	"crumble/internal/shuffleproof"
	"crumble/internal/unmaskaudit"
)

// unmaskEvent is one entry of the ordered, purely advisory audit log  - 
// it is never consulted to gate play, only replayed at SubmitPublicKey
// completion.
type unmaskEvent struct {
	Actor int
	Phase Phase
	Cards []*deck.UnmaskedCards
}

// Hand is one dealt hand of No-Limit Hold'em: the deck, the betting
// ledger, and the lifecycle cursor that gates every submission.
type Hand struct {
	deck           *deck.Deck
	shuffled       *deck.MaskedDeck
	shuffleHistory []*deck.MaskedDeck
	playerCards    []*deck.UnmaskedCards
	playerKeys     []*ocpcrypto.G2Point
	communityCards []*deck.UnmaskedCards
	unmaskingSeq   []unmaskEvent
	cur            cursor
	betting        *betting.State
	smallBlind     uint64
	logger         zerolog.Logger
}

// New deals a fresh hand: dealerButton seats the button, initialChips
// funds every stack, smallBlind sets the blind schedule (big blind is
// always twice the small blind). logger may be the zero value to
// disable logging.
func New(numPlayers, dealerButton int, initialChips, smallBlind uint64, logger zerolog.Logger) (*Hand, error) {
	d, err := deck.New()
	if err != nil {
		return nil, fmt.Errorf("holdem: build deck: %w", err)
	}
	h := &Hand{
		deck:           d,
		shuffled:       deck.NewMaskedDeck(d.Points()),
		playerCards:    make([]*deck.UnmaskedCards, numPlayers),
		playerKeys:     make([]*ocpcrypto.G2Point, numPlayers),
		communityCards: make([]*deck.UnmaskedCards, numRounds-1),
		cur:            newCursor(numPlayers, numRounds, dealerButton),
		betting:        betting.New(numPlayers, initialChips),
		smallBlind:     smallBlind,
		logger:         logger,
	}
	return h, nil
}

// CurrentAction reports what the hand expects next.
func (h *Hand) CurrentAction() Action {
	return h.cur.action()
}

// Deck returns the shared 52-card dictionary every player masks
// against.
func (h *Hand) Deck() *deck.Deck {
	return h.deck
}

// ShuffledDeck returns the deck's current state, to be masked and
// shuffled by whichever player's turn it is.
func (h *Hand) ShuffledDeck() *deck.MaskedDeck {
	return h.shuffled
}

// PlayerCards returns the current (possibly still masked) hole cards
// for every player.
func (h *Hand) PlayerCards() []*deck.UnmaskedCards {
	out := make([]*deck.UnmaskedCards, len(h.playerCards))
	copy(out, h.playerCards)
	return out
}

// CommunityCards returns the flop/turn/river slice for round (1=flop,
// 2=turn, 3=river); round 0 (preflop) has none.
func (h *Hand) CommunityCards(round int) (*deck.UnmaskedCards, error) {
	if round <= RoundPreflop || round-1 >= len(h.communityCards) {
		return nil, fmt.Errorf("%w: round %d", ErrOutOfBounds, round)
	}
	return h.communityCards[round-1], nil
}

// CallAmountRequired delegates to the betting ledger.
func (h *Hand) CallAmountRequired(player int) (uint64, error) {
	return h.betting.CallAmountRequired(player)
}

// ChipsRemaining delegates to the betting ledger.
func (h *Hand) ChipsRemaining(player int) uint64 {
	return h.betting.ChipsRemaining(player)
}

// SmallBlind and BigBlind report the hand's blind schedule.
func (h *Hand) SmallBlind() uint64 { return h.smallBlind }
func (h *Hand) BigBlind() uint64   { return h.smallBlind * 2 }

// SubmitShuffledDeck is called by the current shuffling player to
// publish their masked-then-permuted deck.
func (h *Hand) SubmitShuffledDeck(player int, shuffled *deck.MaskedDeck) error {
	a := h.cur.action()
	if a.Phase != PhaseShuffle {
		return fmt.Errorf("%w: in %s", ErrWrongPhase, h.cur.phase)
	}
	if a.Player != player {
		return fmt.Errorf("%w: player %d, current player %d", ErrWrongTurn, player, a.Player)
	}

	// shuffleHistory keeps an independent snapshot: h.shuffled is about
	// to be drained by Deal() as hole/community cards go out, and must
	// not silently shrink the historical record used by verifyShuffle
	// and verifyUnmasking at hand end.
	h.shuffleHistory = append(h.shuffleHistory, deck.NewMaskedDeck(shuffled.Cards()))
	h.shuffled = shuffled
	h.logger.Debug().Int("player", player).Msg("shuffle submitted")

	if h.cur.nextPlayer() {
		h.cur.phase = PhaseSmallBlind
	}
	return nil
}

// SubmitSmallBlind posts the small blind for the current player.
func (h *Hand) SubmitSmallBlind(player int) error {
	a := h.cur.action()
	if a.Phase != PhaseSmallBlind {
		return fmt.Errorf("%w: in %s", ErrWrongPhase, h.cur.phase)
	}
	if a.Player != player {
		return fmt.Errorf("%w: player %d, current player %d", ErrWrongTurn, player, a.Player)
	}
	if err := h.betting.ProcessAction(player, h.smallBlind); err != nil {
		return err
	}
	h.cur.nextPlayer()
	h.cur.phase = PhaseBigBlind
	return nil
}

// SubmitBigBlind posts the big blind and deals two hole cards to every
// player from the top of the final shuffled deck.
func (h *Hand) SubmitBigBlind(player int) error {
	a := h.cur.action()
	if a.Phase != PhaseBigBlind {
		return fmt.Errorf("%w: in %s", ErrWrongPhase, h.cur.phase)
	}
	if a.Player != player {
		return fmt.Errorf("%w: player %d, current player %d", ErrWrongTurn, player, a.Player)
	}
	if err := h.betting.ProcessAction(player, h.BigBlind()); err != nil {
		return err
	}

	for i := range h.playerCards {
		dealt, err := h.shuffled.Deal(2)
		if err != nil {
			return fmt.Errorf("holdem: deal hole cards: %w", err)
		}
		h.playerCards[i] = dealt
	}

	h.cur.nextDealer()
	h.cur.phase = PhaseUnmaskHoleCards
	return nil
}

// SubmitPlayerCards is called by each player in turn to peel every
// other active player's hole cards  -  it replaces the whole hole-card
// slice, since the acting player leaves their own untouched here.
func (h *Hand) SubmitPlayerCards(player int, playerCards []*deck.UnmaskedCards) error {
	a := h.cur.action()
	if a.Phase != PhaseUnmaskHoleCards {
		return fmt.Errorf("%w: in %s", ErrWrongPhase, h.cur.phase)
	}
	if a.Player != player {
		return fmt.Errorf("%w: player %d, current player %d", ErrWrongTurn, player, a.Player)
	}
	if len(playerCards) != len(h.playerCards) {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(playerCards), len(h.playerCards))
	}

	h.unmaskingSeq = append(h.unmaskingSeq, unmaskEvent{Actor: player, Phase: PhaseUnmaskHoleCards, Cards: playerCards})
	h.playerCards = playerCards

	if h.cur.nextPlayer() {
		h.cur.nextPlayerMasked(h.betting.Active(), true)
		h.betting.NextStreet()
		h.cur.phase = PhaseBet
		if err := h.checkBettingRoundComplete(); err != nil {
			return err
		}
	}
	return nil
}

// SubmitPlayerCardsShowdown is called by each player in turn to peel
// their own hole cards at showdown.
func (h *Hand) SubmitPlayerCardsShowdown(player int, playerCards []*deck.UnmaskedCards) error {
	a := h.cur.action()
	if a.Phase != PhaseUnmaskShowdown {
		return fmt.Errorf("%w: in %s", ErrWrongPhase, h.cur.phase)
	}
	if a.Player != player {
		return fmt.Errorf("%w: player %d, current player %d", ErrWrongTurn, player, a.Player)
	}
	if len(playerCards) != len(h.playerCards) {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(playerCards), len(h.playerCards))
	}

	h.unmaskingSeq = append(h.unmaskingSeq, unmaskEvent{Actor: player, Phase: PhaseUnmaskShowdown, Cards: playerCards})
	h.playerCards = playerCards

	if h.cur.nextPlayer() {
		h.cur.phase = PhaseSubmitPublicKey
	}
	return nil
}

// SubmitCommunityCards is called by each player in turn to peel the
// current community-card round.
func (h *Hand) SubmitCommunityCards(player, round int, cards *deck.UnmaskedCards) error {
	a := h.cur.action()
	if a.Phase != PhaseUnmaskCommunityCards {
		return fmt.Errorf("%w: in %s", ErrWrongPhase, h.cur.phase)
	}
	if a.Round != round {
		return fmt.Errorf("%w: round %d, current round %d", ErrOutOfBounds, round, a.Round)
	}
	if a.Player != player {
		return fmt.Errorf("%w: player %d, current player %d", ErrWrongTurn, player, a.Player)
	}

	idx := round - 1
	if idx < 0 || idx >= len(h.communityCards) {
		return fmt.Errorf("%w: round %d", ErrOutOfBounds, round)
	}

	h.unmaskingSeq = append(h.unmaskingSeq, unmaskEvent{Actor: player, Phase: PhaseUnmaskCommunityCards, Cards: []*deck.UnmaskedCards{cards}})
	h.communityCards[idx] = cards

	if h.cur.nextPlayer() {
		h.cur.nextPlayerMasked(h.betting.Active(), true)
		h.betting.NextStreet()
		h.cur.phase = PhaseBet
		if err := h.checkBettingRoundComplete(); err != nil {
			return err
		}
	}
	return nil
}

// SubmitBet applies a player's fold/check/call/raise, expressed purely
// as the amount of chips they put in.
func (h *Hand) SubmitBet(player int, amount uint64) error {
	a := h.cur.action()
	if a.Phase != PhaseBet {
		return fmt.Errorf("%w: in %s", ErrWrongPhase, h.cur.phase)
	}
	if a.Player != player {
		return fmt.Errorf("%w: player %d, current player %d", ErrWrongTurn, player, a.Player)
	}
	if err := h.betting.ProcessAction(player, amount); err != nil {
		return err
	}
	h.cur.nextPlayerMasked(h.betting.Active(), false)
	return h.checkBettingRoundComplete()
}

func (h *Hand) checkBettingRoundComplete() error {
	if !h.betting.IsBettingRoundComplete() {
		return nil
	}
	h.cur.nextDealer()
	round := h.cur.currentRound

	riverDone, err := h.cur.nextRound()
	if err != nil {
		return fmt.Errorf("holdem: advance round: %w", err)
	}
	if riverDone {
		h.cur.phase = PhaseUnmaskShowdown
		return nil
	}

	numCardsDeal := 1
	if round == RoundPreflop {
		numCardsDeal = 3
	}
	dealt, err := h.shuffled.Deal(numCardsDeal)
	if err != nil {
		return fmt.Errorf("holdem: deal community cards: %w", err)
	}
	h.communityCards[round] = dealt
	h.cur.phase = PhaseUnmaskCommunityCards
	return nil
}

// SubmitPublicKey is called once by every player at hand end: it
// reveals the ephemeral key behind that player's masking, checks their
// shuffle trace, and  -  once every player has submitted  -  replays the
// entire unmasking history in one batched pairing check. Any failure
// moves the hand to PhaseCheated and is returned as an error.
func (h *Hand) SubmitPublicKey(player int, pk ocpcrypto.G2Point, trace shuffleproof.Trace) error {
	a := h.cur.action()
	if a.Phase != PhaseSubmitPublicKey {
		return fmt.Errorf("%w: in %s", ErrWrongPhase, h.cur.phase)
	}
	if a.Player != player {
		return fmt.Errorf("%w: player %d, current player %d", ErrWrongTurn, player, a.Player)
	}

	h.playerKeys[player] = &pk
	h.logger.Debug().Int("player", player).Msg("public key submitted")

	if err := h.verifyShuffle(player, pk, trace); err != nil {
		h.cur.phase = PhaseCheated
		h.logger.Error().Int("player", player).Err(err).Msg("shuffle verification failed")
		return err
	}

	if h.cur.nextPlayer() {
		if err := h.verifyUnmasking(); err != nil {
			h.cur.phase = PhaseCheated
			h.logger.Error().Err(err).Msg("unmask audit failed")
			return err
		}
		h.cur.phase = PhaseFinished
		h.logger.Info().Msg("hand finished fairly")
	}
	return nil
}

// verifyShuffle checks the single shuffle step this player is
// responsible for: the deck they received (the previous player's
// output, or the canonical deck for the first shuffler) versus the
// deck they published.
func (h *Hand) verifyShuffle(player int, pk ocpcrypto.G2Point, trace shuffleproof.Trace) error {
	numPlayers := h.cur.numPlayers
	dealer := h.cur.dealerButton
	stepIndex := (player + numPlayers - dealer) % numPlayers

	next := h.shuffleHistory[stepIndex].Cards()
	var prev []ocpcrypto.G1Point
	if stepIndex == 0 {
		prev = h.deck.Points()
	} else {
		prev = h.shuffleHistory[stepIndex-1].Cards()
	}
	return shuffleproof.Verify(prev, next, pk, trace)
}

// verifyUnmasking reconstructs the dealt state from the final shuffled
// deck and replays every peel in unmaskingSeq against it.
func (h *Hand) verifyUnmasking() error {
	if len(h.shuffleHistory) == 0 {
		return fmt.Errorf("holdem: no shuffle history")
	}
	finalDeck := h.shuffleHistory[len(h.shuffleHistory)-1].Cards()
	numPlayers := h.cur.numPlayers

	trackedHole := make([][]ocpcrypto.G1Point, numPlayers)
	deckIdx := 0
	for i := 0; i < numPlayers; i++ {
		trackedHole[i] = finalDeck[deckIdx : deckIdx+2]
		deckIdx += 2
	}
	trackedCommunity := [][]ocpcrypto.G1Point{
		finalDeck[deckIdx : deckIdx+3],
		finalDeck[deckIdx+3 : deckIdx+4],
		finalDeck[deckIdx+4 : deckIdx+5],
	}
	commRoundIdx := 0
	commUnmaskCount := 0

	publicKeys := make([]ocpcrypto.G2Point, numPlayers)
	for i, pk := range h.playerKeys {
		if pk == nil {
			return fmt.Errorf("%w: player %d", ErrMissingPublicKey, i)
		}
		publicKeys[i] = *pk
	}

	var entries []unmaskaudit.Entry
	for _, ev := range h.unmaskingSeq {
		switch ev.Phase {
		case PhaseUnmaskHoleCards:
			for target := 0; target < numPlayers; target++ {
				if target == ev.Actor {
					continue
				}
				before := trackedHole[target]
				after := ev.Cards[target].Cards()
				for i := range before {
					entries = append(entries, unmaskaudit.Entry{Before: before[i], After: after[i], Actor: ev.Actor})
				}
				trackedHole[target] = after
			}
		case PhaseUnmaskCommunityCards:
			before := trackedCommunity[commRoundIdx]
			after := ev.Cards[0].Cards()
			for i := range before {
				entries = append(entries, unmaskaudit.Entry{Before: before[i], After: after[i], Actor: ev.Actor})
			}
			trackedCommunity[commRoundIdx] = after
			commUnmaskCount++
			if commUnmaskCount == numPlayers {
				commUnmaskCount = 0
				commRoundIdx++
			}
		case PhaseUnmaskShowdown:
			target := ev.Actor
			before := trackedHole[target]
			after := ev.Cards[target].Cards()
			for i := range before {
				entries = append(entries, unmaskaudit.Entry{Before: before[i], After: after[i], Actor: ev.Actor})
			}
			trackedHole[target] = after
		}
	}

	return unmaskaudit.Replay(entries, publicKeys, h.logger)
}
