// Package tags derives a card's functional capabilities from its name, type
// line, and oracle text. Classification is heuristic by nature: the rule set
// is an explicit, priority-ordered list so precedence stays auditable, and
// unrecognized phrasings default to the conservative reading.
package tags

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Tag is an opaque capability marker on a card. Membership is the only
// operation the engine performs on tags.
type Tag string

const (
	// Structural tags derived from the type line.
	TagLand         Tag = "LAND"
	TagArtifact     Tag = "ARTIFACT"
	TagCreature     Tag = "CREATURE"
	TagEnchantment  Tag = "ENCHANTMENT"
	TagInstant      Tag = "INSTANT"
	TagSorcery      Tag = "SORCERY"
	TagPlaneswalker Tag = "PLANESWALKER"

	// Behavioral tags inferred from oracle text.
	TagRamp         Tag = "RAMP"
	TagDraw         Tag = "DRAW"
	TagRemoval      Tag = "REMOVAL"
	TagCounterspell Tag = "COUNTERSPELL"
	TagBoardWipe    Tag = "BOARD_WIPE"
	TagTutor        Tag = "TUTOR"
	TagManaRock     Tag = "MANA_ROCK"
	TagFetchLand    Tag = "FETCH_LAND"
	TagTappedEntry  Tag = "TAPPED_ENTRY"

	// Parametric-conditional tags attached to lands whose tapped entry
	// depends on live board state.
	TagCondFastland Tag = "COND_FASTLAND"

	condCountPrefix = "COND_COUNT_"
)

// CondCount builds the parametric tag for "enters tapped unless you control
// n or more <subtype>s" lands, e.g. COND_COUNT_3_MOUNTAIN.
func CondCount(n int, subtype string) Tag {
	return Tag(fmt.Sprintf("%s%d_%s", condCountPrefix, n, strings.ToUpper(subtype)))
}

// ParseCondCount decodes a parametric count-conditional tag. It returns the
// required count and the land subtype in type-line capitalization
// ("Mountain"), or ok=false for any other tag.
func ParseCondCount(tag Tag) (n int, subtype string, ok bool) {
	s := string(tag)
	if !strings.HasPrefix(s, condCountPrefix) {
		return 0, "", false
	}
	rest := strings.SplitN(strings.TrimPrefix(s, condCountPrefix), "_", 2)
	if len(rest) != 2 {
		return 0, "", false
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil || rest[1] == "" {
		return 0, "", false
	}
	lower := strings.ToLower(rest[1])
	return n, strings.ToUpper(lower[:1]) + lower[1:], true
}

// TagSet is a mutable set of tags. Each card instance owns its own set;
// template classifications are cloned, never shared, because fetch
// resolution mutates tags on specific instances.
type TagSet map[Tag]struct{}

// NewTagSet creates a set containing the given tags.
func NewTagSet(tags ...Tag) TagSet {
	ts := make(TagSet, len(tags))
	for _, tag := range tags {
		ts[tag] = struct{}{}
	}
	return ts
}

// Has reports whether the tag is in the set.
func (ts TagSet) Has(tag Tag) bool {
	_, ok := ts[tag]
	return ok
}

// Add inserts a tag.
func (ts TagSet) Add(tag Tag) {
	ts[tag] = struct{}{}
}

// Remove deletes a tag if present.
func (ts TagSet) Remove(tag Tag) {
	delete(ts, tag)
}

// Clone returns an independent copy of the set.
func (ts TagSet) Clone() TagSet {
	cp := make(TagSet, len(ts))
	for tag := range ts {
		cp[tag] = struct{}{}
	}
	return cp
}

// Slice returns the tags in sorted order for deterministic output.
func (ts TagSet) Slice() []Tag {
	out := make([]Tag, 0, len(ts))
	for tag := range ts {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the sorted tags as plain strings (for logs and storage).
func (ts TagSet) Strings() []string {
	slice := ts.Slice()
	out := make([]string, len(slice))
	for i, tag := range slice {
		out[i] = string(tag)
	}
	return out
}
