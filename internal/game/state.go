package game

import (
	"errors"
	"fmt"

	"github.com/commandersim/commander-sim-go/internal/game/mana"
	"github.com/commandersim/commander-sim-go/internal/game/tags"
)

// ErrUnaffordable is returned by CastSpell when the pool cannot cover the
// cost. The heuristic must pre-check affordability, so hitting this is a
// contract violation by the caller and aborts the game rather than
// continuing with corrupted mana accounting.
var ErrUnaffordable = errors.New("cannot afford spell")

// ErrCardNotInHand is returned by CastSpell for a card outside the hand.
var ErrCardNotInHand = errors.New("card not in hand")

// GameState tracks the complete state of one goldfish game.
//
// Invariants: every card is in exactly one of the four zones; pool values
// are never negative; at most one land is recorded played per turn.
type GameState struct {
	Library     []*Card
	Hand        []*Card
	Battlefield []*Card
	Graveyard   []*Card

	Pool        *mana.Pool
	TurnCounter int

	Commander *Card

	landPlayedThisTurn *Card
	// enteredThisTurn tracks instance IDs of permanents that entered the
	// battlefield this turn, for tapped-entry and sickness checks. Keyed by
	// the stable per-instance ID rather than pointer identity.
	enteredThisTurn map[string]struct{}
}

// NewGameState initializes an empty game state at turn 1.
func NewGameState() *GameState {
	return &GameState{
		Pool:            mana.NewPool(),
		TurnCounter:     1,
		enteredThisTurn: make(map[string]struct{}),
	}
}

// DrawCard moves the library head to the hand tail. Drawing from an empty
// library is a no-op, not an error, and returns nil.
func (gs *GameState) DrawCard() *Card {
	if len(gs.Library) == 0 {
		return nil
	}
	card := gs.Library[0]
	gs.Library = gs.Library[1:]
	gs.Hand = append(gs.Hand, card)
	return card
}

// PlayLand plays a land from hand to battlefield. It succeeds only when no
// land has been played this turn, the card is in hand, and the card carries
// LAND; otherwise it returns false without mutating anything.
func (gs *GameState) PlayLand(card *Card) bool {
	if gs.landPlayedThisTurn != nil {
		return false
	}
	idx := indexOf(gs.Hand, card)
	if idx < 0 {
		return false
	}
	if !card.Tags.Has(tags.TagLand) {
		return false
	}

	gs.Hand = append(gs.Hand[:idx], gs.Hand[idx+1:]...)
	gs.Battlefield = append(gs.Battlefield, card)
	gs.landPlayedThisTurn = card
	gs.MarkEntered(card)
	return true
}

// CastSpell casts a card from hand, paying its cost from the pool.
// Permanents go to the battlefield and are marked entered-this-turn;
// instants and sorceries go to the graveyard. An unaffordable attempt
// returns ErrUnaffordable and must be treated as fatal.
func (gs *GameState) CastSpell(card *Card) error {
	idx := indexOf(gs.Hand, card)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, card.Name)
	}
	if !gs.Pool.CanAfford(card.ManaCost) {
		return fmt.Errorf("%w: %s (cost %d, pool %d)",
			ErrUnaffordable, card.Name, card.ManaCost.Total(), gs.Pool.Total())
	}

	gs.Pool.Pay(card.ManaCost)
	gs.Hand = append(gs.Hand[:idx], gs.Hand[idx+1:]...)

	if card.IsPermanent() {
		gs.Battlefield = append(gs.Battlefield, card)
		gs.MarkEntered(card)
	} else {
		gs.Graveyard = append(gs.Graveyard, card)
	}
	return nil
}

// AddMana adds mana to the pool.
func (gs *GameState) AddMana(manaType mana.ManaType, amount int) {
	gs.Pool.Add(manaType, amount)
}

// CanAfford reports whether the pool covers the cost (totals only).
func (gs *GameState) CanAfford(cost *mana.Cost) bool {
	return gs.Pool.CanAfford(cost)
}

// ClearManaPool resets the pool and the entered-this-turn set. Runs once per
// turn at cleanup.
func (gs *GameState) ClearManaPool() {
	gs.Pool.Empty()
	gs.enteredThisTurn = make(map[string]struct{})
}

// ResetLandDrop clears the land-played flag for the next turn.
func (gs *GameState) ResetLandDrop() {
	gs.landPlayedThisTurn = nil
}

// LandPlayedThisTurn returns the land played this turn, or nil.
func (gs *GameState) LandPlayedThisTurn() *Card {
	return gs.landPlayedThisTurn
}

// MarkEntered records that the card entered the battlefield this turn.
func (gs *GameState) MarkEntered(card *Card) {
	gs.enteredThisTurn[card.ID] = struct{}{}
}

// EnteredThisTurn reports whether the card entered the battlefield this turn.
func (gs *GameState) EnteredThisTurn(card *Card) bool {
	_, ok := gs.enteredThisTurn[card.ID]
	return ok
}

// LandsOnBattlefield counts lands in play.
func (gs *GameState) LandsOnBattlefield() int {
	count := 0
	for _, card := range gs.Battlefield {
		if card.IsLand() {
			count++
		}
	}
	return count
}

// TotalCards returns the combined size of all four zones. Against a
// 99-card library this stays 99 for the whole game (zone partition).
func (gs *GameState) TotalCards() int {
	return len(gs.Library) + len(gs.Hand) + len(gs.Battlefield) + len(gs.Graveyard)
}

// Summary is a point-in-time snapshot of a game's externally visible state.
type Summary struct {
	Turn            int `json:"turn"`
	HandSize        int `json:"hand_size"`
	BattlefieldSize int `json:"battlefield_size"`
	LibrarySize     int `json:"library_size"`
	Lands           int `json:"lands_on_battlefield"`
	ManaAvailable   int `json:"mana_available"`
}

// Summary returns the current snapshot.
func (gs *GameState) Summary() Summary {
	return Summary{
		Turn:            gs.TurnCounter,
		HandSize:        len(gs.Hand),
		BattlefieldSize: len(gs.Battlefield),
		LibrarySize:     len(gs.Library),
		Lands:           gs.LandsOnBattlefield(),
		ManaAvailable:   gs.Pool.Total(),
	}
}

func indexOf(zone []*Card, card *Card) int {
	for i, c := range zone {
		if c.ID == card.ID {
			return i
		}
	}
	return -1
}

func removeCard(zone []*Card, card *Card) ([]*Card, bool) {
	idx := indexOf(zone, card)
	if idx < 0 {
		return zone, false
	}
	return append(zone[:idx], zone[idx+1:]...), true
}
