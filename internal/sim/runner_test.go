package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commandersim/commander-sim-go/internal/game"
	"github.com/commandersim/commander-sim-go/internal/game/mana"
	"github.com/commandersim/commander-sim-go/internal/game/tags"
)

func testDeck(t *testing.T, lands int) *game.Deck {
	t.Helper()
	cards := make([]*game.Card, 0, game.DeckSize)
	for i := 0; i < lands; i++ {
		cards = append(cards, game.NewCard("Forest", "Basic Land — Forest", "", nil,
			tags.NewTagSet(tags.TagLand)))
	}
	for len(cards) < game.DeckSize {
		cards = append(cards, game.NewCard("Cultivate", "Sorcery", "",
			mana.MustParseCost("{2}{G}"), nil))
	}
	commander := game.NewCard("Omnath, Locus of Mana", "Legendary Creature — Elemental", "",
		mana.MustParseCost("{2}{G}"), tags.NewTagSet(tags.TagCreature))
	deck, err := game.NewDeck(commander, cards)
	require.NoError(t, err)
	return deck
}

func TestRunCompletesAllGames(t *testing.T) {
	runner := NewRunner(testDeck(t, 40), nil)

	batch, err := runner.Run(context.Background(), BatchConfig{
		Games:   50,
		Turns:   8,
		Seed:    11,
		Workers: 4,
	})
	require.NoError(t, err)

	assert.Len(t, batch.Results, 50)
	assert.Equal(t, 0, batch.Aborted)
	for _, result := range batch.Results {
		assert.Equal(t, 8, result.Stats.FinalTurn)
		assert.LessOrEqual(t, result.Stats.FinalLands, 8)
	}
}

func TestRunDoesNotMutateTemplateDeck(t *testing.T) {
	deck := testDeck(t, 40)
	before := deck.TagDistribution()

	runner := NewRunner(deck, nil)
	_, err := runner.Run(context.Background(), BatchConfig{Games: 10, Turns: 5, Seed: 3})
	require.NoError(t, err)

	assert.Equal(t, before, deck.TagDistribution())
	assert.Len(t, deck.Cards, game.DeckSize)
}

func TestRunIsReproducibleFromSeed(t *testing.T) {
	run := func() map[int]game.RunStats {
		runner := NewRunner(testDeck(t, 35), nil)
		batch, err := runner.Run(context.Background(), BatchConfig{
			Games: 20, Turns: 10, Seed: 99, Workers: 4,
		})
		require.NoError(t, err)

		byIndex := make(map[int]game.RunStats, len(batch.Results))
		for _, result := range batch.Results {
			byIndex[result.GameIndex] = result.Stats
		}
		return byIndex
	}

	first := run()
	second := run()
	require.Equal(t, len(first), len(second))
	for idx, stats := range first {
		assert.Equal(t, stats, second[idx], "game %d", idx)
	}
}

func TestRunRejectsEmptyBatch(t *testing.T) {
	runner := NewRunner(testDeck(t, 40), nil)
	_, err := runner.Run(context.Background(), BatchConfig{Games: 0, Turns: 5})
	require.Error(t, err)
}
