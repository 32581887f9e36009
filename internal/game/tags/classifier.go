package tags

import (
	"regexp"
	"strings"
)

// oracleRule is one ordered (predicate, effect) tagging rule applied to
// lowercased oracle text.
type oracleRule struct {
	name    string
	matches func(oracle string) bool
	apply   func(ts TagSet)
}

// tappedException is one ordered exception rule for lands that would enter
// tapped. The first matching rule wins; no match keeps TAPPED_ENTRY.
type tappedException struct {
	name    string
	matches func(oracle string) bool
	apply   func(ts TagSet, oracle string)
}

var (
	reManaRock    = regexp.MustCompile(`add\s+.*(\{.*\})|add\s+(one|two|three|any)\s+mana`)
	reDraw        = regexp.MustCompile(`draw (a card|cards|\d+ cards?|two cards?|three cards?|four cards?)`)
	reBoardWipe   = regexp.MustCompile(`destroy all (creatures|permanents)`)
	reTappedEntry = regexp.MustCompile(`(this\s+(land|artifact)\s+)?(enters?|enter)\s+(the\s+battlefield\s+)?tapped`)

	reTwoOrMoreBasics = regexp.MustCompile(`unless you control (two or more|2 or more) basic lands`)
	reBasicLandType   = regexp.MustCompile(`unless you control (a|an) (plains|island|swamp|mountain|forest)`)
	rePayOrReveal     = regexp.MustCompile(`(unless you (pay|reveal)|as .*(this\s+)?(land\s+)?enters.* you may (pay|reveal))`)
	reFastland        = regexp.MustCompile(`unless you control (two|2) or fewer other lands`)
	reCountCheckland  = regexp.MustCompile(`unless you control (three|3) or more other .*(mountains|islands|plains|swamps|forests)`)
	reOpponentLands   = regexp.MustCompile(`unless an opponent (has|controls) more lands`)
	reThreeOrMore     = regexp.MustCompile(`enters.*tapped.*if you control (three|3) or more`)
)

// oracleRules run in order after structural tagging. Order matters: the
// mana-rock rule also implies RAMP, and the tapped-entry rule must run
// before the land exception pass.
var oracleRules = []oracleRule{
	{
		name: "fetch-ramp",
		matches: func(oracle string) bool {
			return strings.Contains(oracle, "search your library for a") &&
				strings.Contains(oracle, "land")
		},
		apply: func(ts TagSet) { ts.Add(TagRamp) },
	},
	{
		name:    "mana-rock",
		matches: reManaRock.MatchString,
		apply: func(ts TagSet) {
			ts.Add(TagManaRock)
			ts.Add(TagRamp)
		},
	},
	{
		name:    "draw",
		matches: reDraw.MatchString,
		apply:   func(ts TagSet) { ts.Add(TagDraw) },
	},
	{
		name: "removal",
		matches: func(oracle string) bool {
			action := strings.Contains(oracle, "destroy") ||
				strings.Contains(oracle, "exile") ||
				strings.Contains(oracle, "sacrifice")
			target := strings.Contains(oracle, "creature") ||
				strings.Contains(oracle, "permanent") ||
				strings.Contains(oracle, "target")
			return action && target
		},
		apply: func(ts TagSet) { ts.Add(TagRemoval) },
	},
	{
		name:    "board-wipe",
		matches: reBoardWipe.MatchString,
		apply:   func(ts TagSet) { ts.Add(TagBoardWipe) },
	},
	{
		name: "counterspell",
		matches: func(oracle string) bool {
			return strings.Contains(oracle, "counter target spell")
		},
		apply: func(ts TagSet) { ts.Add(TagCounterspell) },
	},
	{
		name: "tutor",
		matches: func(oracle string) bool {
			return strings.Contains(oracle, "search your library for a card")
		},
		apply: func(ts TagSet) { ts.Add(TagTutor) },
	},
	{
		name:    "tapped-entry",
		matches: reTappedEntry.MatchString,
		apply:   func(ts TagSet) { ts.Add(TagTappedEntry) },
	},
}

// tappedExceptions resolve "enters tapped unless ..." phrasings on lands.
// Retraction is deliberate where most decks satisfy the condition by the
// time the land matters; anything unrecognized stays tapped.
var tappedExceptions = []tappedException{
	{
		// Dual/check lands: most decks control two basics by turn 2-3.
		name:    "two-or-more-basics",
		matches: reTwoOrMoreBasics.MatchString,
		apply:   func(ts TagSet, _ string) { ts.Remove(TagTappedEntry) },
	},
	{
		// "unless you control a Plains": assume the basic type is there.
		name:    "basic-land-type",
		matches: reBasicLandType.MatchString,
		apply:   func(ts TagSet, _ string) { ts.Remove(TagTappedEntry) },
	},
	{
		// Shock/reveal lands: assume the player pays.
		name:    "pay-or-reveal",
		matches: rePayOrReveal.MatchString,
		apply:   func(ts TagSet, _ string) { ts.Remove(TagTappedEntry) },
	},
	{
		// Fastlands: keep TAPPED_ENTRY, attach the per-turn conditional.
		name:    "fastland",
		matches: reFastland.MatchString,
		apply: func(ts TagSet, _ string) {
			ts.Add(TagCondFastland)
		},
	},
	{
		// Count checklands (Dwarven Mine): parametric conditional.
		name:    "count-checkland",
		matches: reCountCheckland.MatchString,
		apply: func(ts TagSet, oracle string) {
			match := reCountCheckland.FindStringSubmatch(oracle)
			plural := match[2]
			ts.Add(CondCount(3, strings.TrimSuffix(plural, "s")))
		},
	},
	{
		// Tempo lands keyed to an opponent's board: goldfish has no
		// opponent, so they always enter tapped.
		name:    "opponent-more-lands",
		matches: reOpponentLands.MatchString,
		apply:   func(ts TagSet, _ string) {},
	},
	{
		// "enters tapped if you control three or more": untapped early game.
		name:    "three-or-more-lands",
		matches: reThreeOrMore.MatchString,
		apply:   func(ts TagSet, _ string) { ts.Remove(TagTappedEntry) },
	},
}

// fetchLandRule detects lands that sacrifice themselves to search out
// another land.
func isFetchLand(oracle string) bool {
	return strings.Contains(oracle, "sacrifice") &&
		strings.Contains(oracle, "search your library for a basic land")
}

// Classifier maps card text to capability tags. Zero-value construction via
// NewClassifier uses the built-in override table; additional overrides can
// be merged from a TOML file. A classifier is immutable after setup, so
// Classify is pure: identical inputs always produce identical tag sets.
type Classifier struct {
	overrides map[string][]Tag
}

// NewClassifier creates a classifier with the built-in static overrides.
func NewClassifier() *Classifier {
	overrides := make(map[string][]Tag, len(staticCardTags))
	for name, cardTags := range staticCardTags {
		overrides[name] = cardTags
	}
	return &Classifier{overrides: overrides}
}

// Classify derives the capability tag set for a card. Evaluation order:
// static overrides, structural type tags, the ordered oracle rule pass, and
// finally the land tapped-entry exception pass.
func (c *Classifier) Classify(name, typeLine, oracleText string) TagSet {
	ts := NewTagSet()

	if override, ok := c.overrides[name]; ok {
		for _, tag := range override {
			ts.Add(tag)
		}
	}

	for substr, tag := range map[string]Tag{
		"Land":         TagLand,
		"Artifact":     TagArtifact,
		"Creature":     TagCreature,
		"Enchantment":  TagEnchantment,
		"Instant":      TagInstant,
		"Sorcery":      TagSorcery,
		"Planeswalker": TagPlaneswalker,
	} {
		if strings.Contains(typeLine, substr) {
			ts.Add(tag)
		}
	}

	oracle := strings.ToLower(oracleText)
	for _, rule := range oracleRules {
		if rule.matches(oracle) {
			rule.apply(ts)
		}
	}

	if ts.Has(TagLand) && isFetchLand(oracle) {
		ts.Add(TagFetchLand)
	}

	if ts.Has(TagLand) && ts.Has(TagTappedEntry) {
		for _, exception := range tappedExceptions {
			if exception.matches(oracle) {
				exception.apply(ts, oracle)
				break
			}
		}
	}

	return ts
}
