package game

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commandersim/commander-sim-go/internal/game/rules"
)

func recordedGame(t *testing.T) string {
	t.Helper()
	e := testEngine(t)
	e.StartGame(buildDeck(t, 38, 40))
	require.NoError(t, e.RunTurns(5))

	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, e.ExportLog(path))
	return path
}

func TestReplayRoundTrip(t *testing.T) {
	path := recordedGame(t)

	replay, err := LoadReplay(path)
	require.NoError(t, err)

	assert.NotEmpty(t, replay.GameID())
	assert.Equal(t, 5, replay.TotalTurns())
	assert.Equal(t, "Omnath, Locus of Mana", replay.Commander())

	var events []rules.Event
	for {
		evt, ok := replay.Next()
		if !ok {
			break
		}
		events = append(events, evt)
	}
	require.NotEmpty(t, events)
	assert.Equal(t, rules.EventGameStart, events[0].Type)
	assert.Equal(t, 0, replay.Remaining())

	// Rewinding makes the log playable again.
	replay.Start()
	first, ok := replay.Next()
	require.True(t, ok)
	assert.Equal(t, events[0].Type, first.Type)
}

func TestReplayPublishAll(t *testing.T) {
	path := recordedGame(t)

	replay, err := LoadReplay(path)
	require.NoError(t, err)

	bus := rules.NewEventBus()
	turnStarts := 0
	bus.SubscribeTyped(rules.EventTurnStart, func(rules.Event) {
		turnStarts++
	})

	replay.PublishAll(bus)
	assert.Equal(t, 5, turnStarts)
}

func TestLoadReplayMissingFile(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
