package game

import (
	"errors"
	"fmt"

	"github.com/commandersim/commander-sim-go/internal/game/tags"
)

// DeckSize is the number of main-deck cards in a Commander deck, excluding
// the commander itself.
const DeckSize = 99

// ErrDeckSize is returned when a deck is constructed with the wrong number
// of main-deck cards.
var ErrDeckSize = errors.New("deck must have exactly 99 cards")

// Deck is a Commander deck: one designated commander plus exactly 99 other
// cards.
type Deck struct {
	Commander *Card
	Cards     []*Card
}

// NewDeck constructs a deck, enforcing the 99-card main deck invariant.
func NewDeck(commander *Card, cards []*Card) (*Deck, error) {
	if len(cards) != DeckSize {
		return nil, fmt.Errorf("%w: got %d", ErrDeckSize, len(cards))
	}
	return &Deck{Commander: commander, Cards: cards}, nil
}

// AllCards returns the commander (when present) followed by the main deck.
func (d *Deck) AllCards() []*Card {
	if d.Commander == nil {
		return d.Cards
	}
	all := make([]*Card, 0, len(d.Cards)+1)
	all = append(all, d.Commander)
	all = append(all, d.Cards...)
	return all
}

// LandCount counts lands across the whole deck.
func (d *Deck) LandCount() int {
	count := 0
	for _, card := range d.AllCards() {
		if card.IsLand() {
			count++
		}
	}
	return count
}

// AverageManaValue is the mean mana value of nonland cards.
func (d *Deck) AverageManaValue() float64 {
	sum, n := 0, 0
	for _, card := range d.AllCards() {
		if card.IsLand() {
			continue
		}
		sum += card.ManaValue
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// TagDistribution counts how many cards carry each tag.
func (d *Deck) TagDistribution() map[tags.Tag]int {
	dist := make(map[tags.Tag]int)
	for _, card := range d.AllCards() {
		for _, tag := range card.Tags.Slice() {
			dist[tag]++
		}
	}
	return dist
}

// Clone deep-copies the deck for one game. Every card instance, including
// its tag set, is independent of the template; sharing instances across
// concurrent games is a correctness bug.
func (d *Deck) Clone() *Deck {
	cp := &Deck{Cards: make([]*Card, len(d.Cards))}
	if d.Commander != nil {
		cp.Commander = d.Commander.Clone()
	}
	for i, card := range d.Cards {
		cp.Cards[i] = card.Clone()
	}
	return cp
}
