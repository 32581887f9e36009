package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/commandersim/commander-sim-go/internal/game/mana"
	"github.com/commandersim/commander-sim-go/internal/game/tags"
)

// Card is one physical card instance. Duplicate copies of the same name are
// independent instances: each carries its own ID and its own mutable tag
// set, because fetch resolution force-tags specific instances.
type Card struct {
	ID            string
	Name          string
	ManaCost      *mana.Cost
	ManaValue     int
	TypeLine      string
	OracleText    string
	Tags          tags.TagSet
	ScryfallID    string
	ColorIdentity []string
}

// NewCard builds a classified card instance. The tag set comes from the
// classifier at ingestion time; per-game copies are made with Clone.
func NewCard(name, typeLine, oracleText string, cost *mana.Cost, cardTags tags.TagSet) *Card {
	if cost == nil {
		cost = &mana.Cost{}
	}
	if cardTags == nil {
		cardTags = tags.NewTagSet()
	}
	return &Card{
		ID:         uuid.NewString(),
		Name:       name,
		ManaCost:   cost,
		ManaValue:  cost.Total(),
		TypeLine:   typeLine,
		OracleText: oracleText,
		Tags:       cardTags,
	}
}

// Clone creates a fully independent copy with a fresh instance ID. Template
// decks are cloned per game so that parallel games never alias an instance.
func (c *Card) Clone() *Card {
	cp := *c
	cp.ID = uuid.NewString()
	cp.ManaCost = c.ManaCost.Copy()
	cp.Tags = c.Tags.Clone()
	cp.ColorIdentity = append([]string(nil), c.ColorIdentity...)
	return &cp
}

// IsLand reports whether the card is a land by type line.
func (c *Card) IsLand() bool {
	return strings.Contains(c.TypeLine, "Land")
}

// IsPermanent reports whether the card stays on the battlefield when cast.
// Instants and sorceries resolve to the graveyard; everything else
// (artifact, creature, enchantment, planeswalker, land) is a permanent.
func (c *Card) IsPermanent() bool {
	if strings.Contains(c.TypeLine, "Instant") || strings.Contains(c.TypeLine, "Sorcery") {
		return false
	}
	return true
}

// HasSubtype reports whether the type line carries the given subtype word.
func (c *Card) HasSubtype(subtype string) bool {
	return strings.Contains(c.TypeLine, subtype)
}

func (c *Card) String() string {
	return fmt.Sprintf("%s (MV %d) [%s]", c.Name, c.ManaValue, strings.Join(c.Tags.Strings(), ", "))
}
