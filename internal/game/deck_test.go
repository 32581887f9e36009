package game

import (
	"errors"
	"testing"

	"github.com/commandersim/commander-sim-go/internal/game/tags"
)

func TestNewDeckEnforcesSize(t *testing.T) {
	commander := spell("Omnath, Locus of Mana", "Legendary Creature — Elemental", "{2}{G}")
	cards := []*Card{basicLand("Forest", "Forest")}

	if _, err := NewDeck(commander, cards); !errors.Is(err, ErrDeckSize) {
		t.Fatalf("expected ErrDeckSize, got %v", err)
	}
}

func TestDeckStatistics(t *testing.T) {
	deck := mustDeck(t, 40, 59)

	if got := deck.LandCount(); got != 40 {
		t.Errorf("expected 40 lands, got %d", got)
	}
	dist := deck.TagDistribution()
	if dist[tags.TagLand] != 40 {
		t.Errorf("expected 40 LAND tags, got %d", dist[tags.TagLand])
	}
	if avg := deck.AverageManaValue(); avg <= 0 {
		t.Errorf("expected positive average mana value, got %f", avg)
	}
}

func TestDeckCloneIsDeep(t *testing.T) {
	deck := mustDeck(t, 40, 59)
	clone := deck.Clone()

	if clone.Cards[0].ID == deck.Cards[0].ID {
		t.Error("cloned cards must get fresh instance IDs")
	}

	clone.Cards[0].Tags.Add(tags.TagTappedEntry)
	if deck.Cards[0].Tags.Has(tags.TagTappedEntry) {
		t.Error("clone tag mutation leaked into the template deck")
	}

	if clone.Commander == deck.Commander {
		t.Error("commander must be cloned too")
	}
}

func mustDeck(t *testing.T, lands, spells int) *Deck {
	t.Helper()
	cards := make([]*Card, 0, DeckSize)
	for i := 0; i < lands; i++ {
		cards = append(cards, basicLand("Forest", "Forest"))
	}
	for i := 0; i < spells; i++ {
		cards = append(cards, spell("Llanowar Visionary", "Creature — Elf Druid", "{2}{G}"))
	}
	commander := spell("Omnath, Locus of Mana", "Legendary Creature — Elemental", "{2}{G}")
	deck, err := NewDeck(commander, cards)
	if err != nil {
		t.Fatal(err)
	}
	return deck
}
