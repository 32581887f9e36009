package game

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/commandersim/commander-sim-go/internal/game/rules"
)

// Replay plays back a recorded game log event by event. It reads the JSON
// files ExportLog writes, so any finished game can be re-watched or fed to
// subscribers without re-running the engine.
type Replay struct {
	log   exportedLog
	index int
}

// LoadReplay reads an exported game log from disk.
func LoadReplay(path string) (*Replay, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game log: %w", err)
	}
	var log exportedLog
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, fmt.Errorf("failed to decode game log: %w", err)
	}
	return &Replay{log: log}, nil
}

// GameID returns the recorded game's ID.
func (r *Replay) GameID() string {
	return r.log.Metadata.GameID
}

// Commander returns the recorded commander name, if any.
func (r *Replay) Commander() string {
	return r.log.Metadata.Commander
}

// TotalTurns returns how many turns the recorded game played.
func (r *Replay) TotalTurns() int {
	return r.log.Metadata.TotalTurns
}

// FinalState returns the recorded end-of-game snapshot.
func (r *Replay) FinalState() Summary {
	return r.log.FinalState
}

// Start rewinds to the first event.
func (r *Replay) Start() {
	r.index = 0
}

// Next returns the next event, or false when the log is exhausted.
func (r *Replay) Next() (rules.Event, bool) {
	if r.index >= len(r.log.Events) {
		return rules.Event{}, false
	}
	evt := r.log.Events[r.index]
	r.index++
	return evt, true
}

// Remaining reports how many events are left to play.
func (r *Replay) Remaining() int {
	return len(r.log.Events) - r.index
}

// PublishAll replays every remaining event through the bus in recorded
// order.
func (r *Replay) PublishAll(bus *rules.EventBus) {
	for {
		evt, ok := r.Next()
		if !ok {
			return
		}
		bus.Publish(evt)
	}
}
