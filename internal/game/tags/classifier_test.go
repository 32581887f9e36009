package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, name, typeLine, oracle string) TagSet {
	t.Helper()
	return NewClassifier().Classify(name, typeLine, oracle)
}

func TestClassify_StaticOverrideWins(t *testing.T) {
	ts := classify(t, "Sol Ring", "Artifact", "{T}: Add {C}{C}.")
	assert.True(t, ts.Has(TagManaRock))
	assert.True(t, ts.Has(TagRamp))
	assert.True(t, ts.Has(TagArtifact))
}

func TestClassify_StructuralTags(t *testing.T) {
	ts := classify(t, "Island", "Basic Land — Island", "")
	assert.True(t, ts.Has(TagLand))

	ts = classify(t, "Grizzly Bears", "Creature — Bear", "")
	assert.True(t, ts.Has(TagCreature))
	assert.False(t, ts.Has(TagLand))

	ts = classify(t, "Ornithopter", "Artifact Creature — Thopter", "Flying")
	assert.True(t, ts.Has(TagArtifact))
	assert.True(t, ts.Has(TagCreature))
}

func TestClassify_ManaRockFromText(t *testing.T) {
	ts := classify(t, "Worn Powerstone", "Artifact", "Worn Powerstone enters the battlefield tapped.\n{T}: Add {C}{C}.")
	assert.True(t, ts.Has(TagManaRock))
	assert.True(t, ts.Has(TagRamp))
	assert.True(t, ts.Has(TagTappedEntry))
}

func TestClassify_ManaDorkWordCount(t *testing.T) {
	ts := classify(t, "Somberwald Sage", "Creature — Human Druid", "{T}: Add three mana of any one color.")
	assert.True(t, ts.Has(TagManaRock))
}

func TestClassify_AddCounterIsNotManaRock(t *testing.T) {
	ts := classify(t, "Coretapper", "Artifact Creature — Myr", "{T}: Put a charge counter on target artifact.")
	assert.False(t, ts.Has(TagManaRock))
}

func TestClassify_Draw(t *testing.T) {
	ts := classify(t, "Divination", "Sorcery", "Draw two cards.")
	assert.True(t, ts.Has(TagDraw))
	assert.True(t, ts.Has(TagSorcery))
}

func TestClassify_Removal(t *testing.T) {
	ts := classify(t, "Doom Blade", "Instant", "Destroy target nonblack creature.")
	assert.True(t, ts.Has(TagRemoval))
}

func TestClassify_RemovalNeedsTarget(t *testing.T) {
	// "Destroy" with no creature/permanent/target wording is not removal.
	ts := classify(t, "Demolish", "Sorcery", "Destroy all lands you own.")
	assert.False(t, ts.Has(TagRemoval))
}

func TestClassify_BoardWipe(t *testing.T) {
	ts := classify(t, "Day of Judgment", "Sorcery", "Destroy all creatures.")
	assert.True(t, ts.Has(TagBoardWipe))
}

func TestClassify_Counterspell(t *testing.T) {
	ts := classify(t, "Cancel", "Instant", "Counter target spell.")
	assert.True(t, ts.Has(TagCounterspell))
}

func TestClassify_Tutor(t *testing.T) {
	ts := classify(t, "Diabolic Tutor", "Sorcery", "Search your library for a card, put it into your hand, then shuffle.")
	assert.True(t, ts.Has(TagTutor))
}

func TestClassify_FetchLand(t *testing.T) {
	ts := classify(t, "Fabled Passage", "Land",
		"{T}, Sacrifice this land: Search your library for a basic land card, put it onto the battlefield tapped, then shuffle.")
	assert.True(t, ts.Has(TagFetchLand))
	assert.True(t, ts.Has(TagLand))
}

func TestClassify_TappedEntryPlain(t *testing.T) {
	ts := classify(t, "Gateway Plaza", "Land — Gate", "Gateway Plaza enters the battlefield tapped.")
	assert.True(t, ts.Has(TagTappedEntry))
}

func TestClassify_TappedEntryModernWording(t *testing.T) {
	ts := classify(t, "Forge of Heroes", "Land", "This land enters tapped.")
	assert.True(t, ts.Has(TagTappedEntry))
}

// Exception 1: "unless you control two or more basic lands" — retracted, the
// conservative assumption being that basics are there by the time it matters.
func TestClassify_Exception_TwoOrMoreBasics(t *testing.T) {
	ts := classify(t, "Glacial Fortress", "Land",
		"Glacial Fortress enters the battlefield tapped unless you control 2 or more basic lands.")
	assert.False(t, ts.Has(TagTappedEntry))
}

// Exception 2: "unless you control a Plains" — retracted.
func TestClassify_Exception_BasicLandType(t *testing.T) {
	ts := classify(t, "Clifftop Retreat", "Land",
		"Clifftop Retreat enters the battlefield tapped unless you control a Mountain or a Plains.")
	assert.False(t, ts.Has(TagTappedEntry))
}

// Exception 3: shock lands — assume the player pays.
func TestClassify_Exception_PayLife(t *testing.T) {
	ts := classify(t, "Steam Vents", "Land — Island Mountain",
		"As this land enters, you may pay 2 life. If you don't, it enters tapped.")
	assert.False(t, ts.Has(TagTappedEntry))
}

// Exception 4: fastlands keep TAPPED_ENTRY plus the per-turn conditional.
func TestClassify_Exception_Fastland(t *testing.T) {
	ts := classify(t, "Botania Vista", "Land",
		"This land enters tapped unless you control two or fewer other lands.")
	assert.True(t, ts.Has(TagTappedEntry))
	assert.True(t, ts.Has(TagCondFastland))
}

// Exception 5: count checklands attach a parametric conditional.
func TestClassify_Exception_CountCheckland(t *testing.T) {
	ts := classify(t, "Dwarven Mine", "Land — Mountain",
		"This land enters tapped unless you control three or more other Mountains.")
	assert.True(t, ts.Has(TagTappedEntry))
	assert.True(t, ts.Has(CondCount(3, "Mountain")))
}

// Exception 6: opponent-keyed lands stay tapped — there is no opponent.
func TestClassify_Exception_OpponentMoreLands(t *testing.T) {
	ts := classify(t, "Rivalry Grounds", "Land",
		"This land enters tapped unless an opponent controls more lands than you.")
	assert.True(t, ts.Has(TagTappedEntry))
	assert.False(t, ts.Has(TagCondFastland))
}

// Unrecognized conditional phrasing defaults conservatively: stays tapped.
func TestClassify_UnrecognizedConditionalStaysTapped(t *testing.T) {
	ts := classify(t, "Mystery Land", "Land",
		"This land enters tapped unless the moon is full.")
	assert.True(t, ts.Has(TagTappedEntry))
}

func TestClassify_Purity(t *testing.T) {
	c := NewClassifier()
	first := c.Classify("Dwarven Mine", "Land — Mountain",
		"This land enters tapped unless you control three or more other Mountains.")
	for i := 0; i < 10; i++ {
		again := c.Classify("Dwarven Mine", "Land — Mountain",
			"This land enters tapped unless you control three or more other Mountains.")
		assert.Equal(t, first.Slice(), again.Slice())
	}
}

func TestCondCount_RoundTrip(t *testing.T) {
	tag := CondCount(3, "Mountain")
	assert.Equal(t, Tag("COND_COUNT_3_MOUNTAIN"), tag)

	n, subtype, ok := ParseCondCount(tag)
	require.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, "Mountain", subtype)

	_, _, ok = ParseCondCount(TagTappedEntry)
	assert.False(t, ok)
}

func TestTagSet_CloneIsIndependent(t *testing.T) {
	ts := NewTagSet(TagLand)
	cp := ts.Clone()
	cp.Add(TagTappedEntry)

	assert.False(t, ts.Has(TagTappedEntry))
	assert.True(t, cp.Has(TagLand))
}

func TestLoadOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.toml")
	content := `
[cards]
"Sol Ring" = ["ARTIFACT"]
"Homebrew Lotus" = ["RAMP", "ARTIFACT", "MANA_ROCK"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c := NewClassifier()
	require.NoError(t, c.LoadOverrideFile(path))

	// File entries replace built-ins of the same name.
	ts := c.Classify("Sol Ring", "Artifact", "")
	assert.False(t, ts.Has(TagManaRock))
	assert.True(t, ts.Has(TagArtifact))

	ts = c.Classify("Homebrew Lotus", "Artifact", "")
	assert.True(t, ts.Has(TagManaRock))
}
