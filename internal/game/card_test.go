package game

import (
	"testing"

	"github.com/commandersim/commander-sim-go/internal/game/mana"
	"github.com/commandersim/commander-sim-go/internal/game/tags"
)

func TestNewCardComputesManaValue(t *testing.T) {
	card := NewCard("Cultivate", "Sorcery", "", mana.MustParseCost("{2}{G}"), nil)
	if card.ManaValue != 3 {
		t.Errorf("expected mana value 3, got %d", card.ManaValue)
	}
	if card.ID == "" {
		t.Error("card must get an instance ID")
	}
}

func TestNewCardNilCostIsZero(t *testing.T) {
	card := NewCard("Forest", "Basic Land — Forest", "", nil, tags.NewTagSet(tags.TagLand))
	if card.ManaValue != 0 {
		t.Errorf("expected mana value 0, got %d", card.ManaValue)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := NewCard("Evolving Wilds", "Land", "", nil,
		tags.NewTagSet(tags.TagLand, tags.TagFetchLand))
	clone := original.Clone()

	if clone.ID == original.ID {
		t.Error("clone must get a fresh instance ID")
	}

	// Mutating the clone's tags must not leak back, fetched copies get
	// tapped-entry forced on them mid-game.
	clone.Tags.Add(tags.TagTappedEntry)
	if original.Tags.Has(tags.TagTappedEntry) {
		t.Error("clone tag mutation leaked into the template card")
	}
}

func TestTypePredicates(t *testing.T) {
	land := NewCard("Forest", "Basic Land — Forest", "", nil, nil)
	instant := NewCard("Opt", "Instant", "", mana.MustParseCost("{U}"), nil)
	creature := NewCard("Grizzly Bears", "Creature — Bear", "", mana.MustParseCost("{1}{G}"), nil)

	if !land.IsLand() || instant.IsLand() {
		t.Error("IsLand must follow the type line")
	}
	if instant.IsPermanent() {
		t.Error("instants are not permanents")
	}
	if !creature.IsPermanent() || !land.IsPermanent() {
		t.Error("creatures and lands are permanents")
	}
	if !creature.HasSubtype("Bear") || creature.HasSubtype("Elf") {
		t.Error("HasSubtype must match the type line words")
	}
}
