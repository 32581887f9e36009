package game

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/commandersim/commander-sim-go/internal/game/mana"
	"github.com/commandersim/commander-sim-go/internal/game/rules"
	"github.com/commandersim/commander-sim-go/internal/game/tags"
)

// OpeningHandSize is the number of cards drawn at game start.
const OpeningHandSize = 7

// DefaultCheckpointTurn is the turn whose end-of-turn board is sampled for
// aggregate statistics.
const DefaultCheckpointTurn = 4

var basicLandTypes = []string{"Plains", "Island", "Swamp", "Mountain", "Forest"}

// Options configures one engine instance.
type Options struct {
	// Seed for the game's private RNG. Zero means time-seeded. Parallel
	// games must not share a generator, so each engine owns its own.
	Seed int64
	// CheckpointTurn is the turn sampled for RunStats; zero means the
	// default of 4.
	CheckpointTurn int
	// RecordEvents enables the in-memory event log. Batch runs that only
	// need aggregate stats leave it off.
	RecordEvents bool
}

// RunStats are the per-game aggregates consumed by batch tooling.
type RunStats struct {
	ManaSourcesAtCheckpoint int `json:"mana_sources_at_checkpoint"`
	LandsAtCheckpoint       int `json:"lands_at_checkpoint"`
	// HandEmptyTurn is the first turn the hand was empty at end of turn,
	// or 0 if it never emptied.
	HandEmptyTurn int `json:"hand_empty_turn"`
	FinalLands    int `json:"final_lands"`
	FinalTurn     int `json:"final_turn"`
}

// Engine drives one goldfish game through the fixed turn skeleton with a
// greedy, non-lookahead heuristic. A single engine is single-threaded; batch
// execution creates one engine per game.
type Engine struct {
	GameID string
	State  *GameState

	logger         *zap.Logger
	rng            *rand.Rand
	turns          *rules.TurnManager
	bus            *rules.EventBus
	eventLog       []rules.Event
	recordEvents   bool
	checkpointTurn int
	stats          RunStats
}

// NewEngine creates an engine. The logger may be zap.NewNop() for silent
// batch runs.
func NewEngine(logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	checkpoint := opts.CheckpointTurn
	if checkpoint == 0 {
		checkpoint = DefaultCheckpointTurn
	}
	return &Engine{
		GameID:         uuid.NewString(),
		State:          NewGameState(),
		logger:         logger,
		rng:            rand.New(rand.NewSource(seed)),
		turns:          rules.NewTurnManager(),
		bus:            rules.NewEventBus(),
		recordEvents:   opts.RecordEvents,
		checkpointTurn: checkpoint,
	}
}

// Events returns the chronological event log recorded so far.
func (e *Engine) Events() []rules.Event {
	return e.eventLog
}

// Bus exposes the engine's event bus for live subscribers.
func (e *Engine) Bus() *rules.EventBus {
	return e.bus
}

// Stats returns the aggregates captured so far. Final fields are filled by
// RunSimulation.
func (e *Engine) Stats() RunStats {
	return e.stats
}

// StartGame shuffles the deck's main cards into the library and draws the
// opening hand. The deck must already be a per-game clone; the engine
// mutates card instances (fetched lands are force-tagged on entry).
func (e *Engine) StartGame(deck *Deck) {
	e.State.Commander = deck.Commander
	e.State.Library = make([]*Card, len(deck.Cards))
	copy(e.State.Library, deck.Cards)
	e.shuffleLibrary()

	commanderName := ""
	if deck.Commander != nil {
		commanderName = deck.Commander.Name
	}
	evt := rules.NewEvent(rules.EventGameStart, e.State.TurnCounter)
	evt.Metadata = map[string]string{
		"game_id":      e.GameID,
		"commander":    commanderName,
		"library_size": strconv.Itoa(len(e.State.Library)),
	}
	e.emit(evt)

	landsInHand := 0
	names := make([]string, 0, OpeningHandSize)
	for i := 0; i < OpeningHandSize; i++ {
		card := e.State.DrawCard()
		if card == nil {
			break
		}
		names = append(names, card.Name)
		if card.IsLand() {
			landsInHand++
		}
	}

	hand := rules.NewEvent(rules.EventOpeningHand, e.State.TurnCounter)
	hand.Amount = len(e.State.Hand)
	hand.Metadata = map[string]string{
		"cards":         strings.Join(names, "|"),
		"lands_in_hand": strconv.Itoa(landsInHand),
	}
	e.emit(hand)

	e.logger.Debug("game started",
		zap.String("game_id", e.GameID),
		zap.String("commander", commanderName),
		zap.Int("library_size", len(e.State.Library)),
		zap.Int("opening_hand", len(e.State.Hand)),
	)
}

// Step executes one complete turn: Untap, Upkeep, Draw, Main, Cleanup.
// The only error it can return is a fatal heuristic contract violation
// surfaced by the main phase.
func (e *Engine) Step() error {
	for {
		switch e.turns.CurrentStep() {
		case rules.StepUntap:
			start := rules.NewEvent(rules.EventTurnStart, e.State.TurnCounter)
			start.Metadata = map[string]string{
				"hand_size":        strconv.Itoa(len(e.State.Hand)),
				"battlefield_size": strconv.Itoa(len(e.State.Battlefield)),
				"library_size":     strconv.Itoa(len(e.State.Library)),
			}
			e.emit(start)

			untap := rules.NewEvent(rules.EventUntapStep, e.State.TurnCounter)
			untap.Metadata = map[string]string{
				"untapped_lands":     strconv.Itoa(e.State.LandsOnBattlefield()),
				"untapped_artifacts": strconv.Itoa(e.countManaRocks()),
			}
			e.emit(untap)

		case rules.StepUpkeep:
			// No upkeep triggers in the modeled subset; retained as a log
			// checkpoint.
			e.emit(rules.NewEvent(rules.EventUpkeepStep, e.State.TurnCounter))

		case rules.StepDraw:
			drawn := e.State.DrawCard()
			evt := rules.NewEvent(rules.EventDrawCard, e.State.TurnCounter)
			if drawn != nil {
				evt.Card = drawn.Name
				evt.Amount = drawn.ManaValue
			} else {
				evt.Metadata = map[string]string{"empty_library": "true"}
			}
			e.emit(evt)

		case rules.StepMain:
			if err := e.mainPhase(); err != nil {
				return fmt.Errorf("turn %d main phase: %w", e.State.TurnCounter, err)
			}

		case rules.StepCleanup:
			e.State.ClearManaPool()
			e.State.ResetLandDrop()

			end := rules.NewEvent(rules.EventTurnEnd, e.State.TurnCounter)
			end.ManaRemaining = e.State.Pool.Total()
			end.Metadata = map[string]string{
				"hand_size":            strconv.Itoa(len(e.State.Hand)),
				"battlefield_size":     strconv.Itoa(len(e.State.Battlefield)),
				"lands_on_battlefield": strconv.Itoa(e.State.LandsOnBattlefield()),
			}
			e.emit(end)
		}

		if e.turns.AdvanceStep() == rules.StepUntap {
			break
		}
	}

	e.State.TurnCounter = e.turns.TurnNumber()
	e.captureCheckpoint()
	return nil
}

// RunTurns runs n complete turns, stopping early on a fatal error.
func (e *Engine) RunTurns(n int) error {
	for i := 0; i < n; i++ {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunSimulation plays a full game of the given turn count and returns the
// aggregate stats.
func (e *Engine) RunSimulation(turns int) (RunStats, error) {
	if err := e.RunTurns(turns); err != nil {
		return RunStats{}, err
	}
	e.stats.FinalTurn = e.State.TurnCounter - 1
	e.stats.FinalLands = e.State.LandsOnBattlefield()

	done := rules.NewEvent(rules.EventGameEnd, e.State.TurnCounter)
	done.Metadata = map[string]string{
		"final_lands": strconv.Itoa(e.stats.FinalLands),
	}
	e.emit(done)

	return e.stats, nil
}

// mainPhase runs the greedy heuristic: one land drop, then the fixed-point
// loop of mana sweeps and casts with fetch resolution as the fallback.
func (e *Engine) mainPhase() error {
	e.playLandDrop()

	// Instance IDs of sources already tapped for mana this turn.
	tapped := make(map[string]struct{})

	// Termination is provable (each iteration consumes a bounded resource),
	// but the cap guards against future rule additions breaking the bound.
	maxIterations := len(e.State.Battlefield) + len(e.State.Hand) + 8
	for iteration := 0; ; iteration++ {
		if iteration >= maxIterations {
			e.logger.Warn("main phase iteration cap reached",
				zap.String("game_id", e.GameID),
				zap.Int("turn", e.State.TurnCounter),
				zap.Int("iterations", iteration),
			)
			break
		}

		manaAdded := e.manaSweep(tapped)

		castSomething, err := e.castBestSpell()
		if err != nil {
			return err
		}

		if !manaAdded && !castSomething {
			if e.resolveFetches(tapped) {
				continue
			}
			break
		}
	}
	return nil
}

// playLandDrop plays the first land in hand order, if any, and logs whether
// it resolved tapped against the current battlefield.
func (e *Engine) playLandDrop() {
	if e.State.LandPlayedThisTurn() != nil {
		return
	}
	var land *Card
	for _, card := range e.State.Hand {
		if card.Tags.Has(tags.TagLand) {
			land = card
			break
		}
	}
	if land == nil {
		return
	}
	if !e.State.PlayLand(land) {
		return
	}

	entersTapped := e.entersTapped(land)
	evt := rules.NewEvent(rules.EventPlayLand, e.State.TurnCounter)
	evt.Card = land.Name
	evt.Tapped = entersTapped
	e.emit(evt)
}

// manaSweep taps every eligible untapped mana source for one generic mana:
// first lands, then mana-rock artifacts. Returns whether any mana was added.
func (e *Engine) manaSweep(tapped map[string]struct{}) bool {
	landsTapped := 0
	rocksTapped := 0

	for _, card := range e.State.Battlefield {
		if !card.IsLand() {
			continue
		}
		if _, used := tapped[card.ID]; used {
			continue
		}
		// Fetch lands do not produce mana themselves.
		if card.Tags.Has(tags.TagFetchLand) {
			continue
		}
		// Tapped entry is resolved lazily at sweep time against the live
		// board, so a conditional land benefits from permanents that
		// arrived earlier in the same turn.
		if e.State.EnteredThisTurn(card) && e.entersTapped(card) {
			continue
		}
		e.State.AddMana(mana.ManaColorless, 1)
		tapped[card.ID] = struct{}{}
		landsTapped++
	}

	for _, card := range e.State.Battlefield {
		if !card.Tags.Has(tags.TagManaRock) || !card.Tags.Has(tags.TagArtifact) {
			continue
		}
		if _, used := tapped[card.ID]; used {
			continue
		}
		if e.State.EnteredThisTurn(card) {
			if card.Tags.Has(tags.TagTappedEntry) {
				continue
			}
			// Creature rocks are summoning-sick the turn they arrive.
			if strings.Contains(card.TypeLine, "Creature") {
				continue
			}
		}
		e.State.AddMana(mana.ManaColorless, 1)
		tapped[card.ID] = struct{}{}
		rocksTapped++
	}

	if landsTapped == 0 && rocksTapped == 0 {
		return false
	}

	evt := rules.NewEvent(rules.EventGenerateMana, e.State.TurnCounter)
	evt.Amount = landsTapped + rocksTapped
	evt.ManaRemaining = e.State.Pool.Total()
	evt.Metadata = map[string]string{
		"lands":     strconv.Itoa(landsTapped),
		"artifacts": strconv.Itoa(rocksTapped),
	}
	e.emit(evt)
	return true
}

// castBestSpell casts the highest-mana-value affordable nonland card, ties
// broken by hand order. Casting a fresh mana rock makes it eligible on the
// next sweep iteration, which is why the caller loops to a fixed point.
func (e *Engine) castBestSpell() (bool, error) {
	var best *Card
	for _, card := range e.State.Hand {
		if card.Tags.Has(tags.TagLand) {
			continue
		}
		if !e.State.CanAfford(card.ManaCost) {
			continue
		}
		if best == nil || card.ManaValue > best.ManaValue {
			best = card
		}
	}
	if best == nil {
		return false, nil
	}

	spent := best.ManaCost.Total()
	if err := e.State.CastSpell(best); err != nil {
		// Affordability was pre-checked above; reaching this is a bug in
		// the heuristic itself, so the game aborts.
		return false, err
	}

	evt := rules.NewEvent(rules.EventCastSpell, e.State.TurnCounter)
	evt.Card = best.Name
	evt.Amount = spent
	evt.ManaRemaining = e.State.Pool.Total()
	evt.Metadata = map[string]string{
		"permanent": strconv.FormatBool(best.IsPermanent()),
	}
	e.emit(evt)
	return true, nil
}

// resolveFetches cracks the first eligible fetch land on the battlefield:
// sacrifice it, search the library in order for the first basic-typed land,
// put that land onto the battlefield tapped, and reshuffle. The library is
// reshuffled whether or not a target was found, because searching always
// shuffles. Only one fetch resolves per call; the caller's loop retries the
// rest. Returns true when state changed.
func (e *Engine) resolveFetches(tapped map[string]struct{}) bool {
	for _, fetcher := range e.State.Battlefield {
		if !fetcher.Tags.Has(tags.TagFetchLand) {
			continue
		}
		// Tap-activated fetchers (Evolving Wilds style) cannot be cracked
		// if already used for anything or if they entered tapped this turn.
		// Enters-the-battlefield fetchers sacrifice themselves regardless.
		if strings.Contains(fetcher.OracleText, "{T}") {
			if _, used := tapped[fetcher.ID]; used {
				continue
			}
			if e.State.EnteredThisTurn(fetcher) && e.entersTapped(fetcher) {
				continue
			}
		}

		e.State.Battlefield, _ = removeCard(e.State.Battlefield, fetcher)
		e.State.Graveyard = append(e.State.Graveyard, fetcher)

		var target *Card
		for _, card := range e.State.Library {
			if card.IsLand() && isBasicTyped(card) {
				target = card
				break
			}
		}

		evt := rules.NewEvent(rules.EventFetchLand, e.State.TurnCounter)
		evt.Card = fetcher.Name

		if target != nil {
			e.State.Library, _ = removeCard(e.State.Library, target)
			e.State.Battlefield = append(e.State.Battlefield, target)
			e.State.MarkEntered(target)
			// The fetched land enters tapped regardless of its template, so
			// the tag is forced onto this specific instance.
			target.Tags.Add(tags.TagTappedEntry)
			evt.Metadata = map[string]string{"fetched": target.Name, "shuffle": "true"}
		} else {
			evt.Metadata = map[string]string{"fetched": "", "shuffle": "true"}
			e.logger.Debug("fetch found no basic land",
				zap.String("game_id", e.GameID),
				zap.String("fetcher", fetcher.Name),
			)
		}

		e.shuffleLibrary()
		e.emit(evt)
		return true
	}
	return false
}

// entersTapped resolves whether a tapped-entry land actually enters (or
// stays) tapped given the current battlefield, excluding the card itself.
func (e *Engine) entersTapped(card *Card) bool {
	if !card.Tags.Has(tags.TagTappedEntry) {
		return false
	}

	if card.Tags.Has(tags.TagCondFastland) {
		otherLands := 0
		for _, c := range e.State.Battlefield {
			if c.IsLand() && c.ID != card.ID {
				otherLands++
			}
		}
		if otherLands <= 2 {
			return false
		}
	}

	for _, tag := range card.Tags.Slice() {
		n, subtype, ok := tags.ParseCondCount(tag)
		if !ok {
			continue
		}
		count := 0
		for _, c := range e.State.Battlefield {
			if c.IsLand() && c.ID != card.ID && c.HasSubtype(subtype) {
				count++
			}
		}
		if count >= n {
			return false
		}
	}

	return true
}

func (e *Engine) shuffleLibrary() {
	e.rng.Shuffle(len(e.State.Library), func(i, j int) {
		e.State.Library[i], e.State.Library[j] = e.State.Library[j], e.State.Library[i]
	})
}

func (e *Engine) countManaRocks() int {
	count := 0
	for _, card := range e.State.Battlefield {
		if card.Tags.Has(tags.TagManaRock) && card.Tags.Has(tags.TagArtifact) {
			count++
		}
	}
	return count
}

// captureCheckpoint samples the board right after the checkpoint turn ends
// and tracks the first turn the hand emptied.
func (e *Engine) captureCheckpoint() {
	if e.State.TurnCounter == e.checkpointTurn+1 {
		lands := e.State.LandsOnBattlefield()
		e.stats.LandsAtCheckpoint = lands
		e.stats.ManaSourcesAtCheckpoint = lands + e.countManaRocks()
	}
	if len(e.State.Hand) == 0 && e.stats.HandEmptyTurn == 0 {
		e.stats.HandEmptyTurn = e.State.TurnCounter - 1
	}
}

func (e *Engine) emit(evt rules.Event) {
	if e.recordEvents {
		e.eventLog = append(e.eventLog, evt)
	}
	e.bus.Publish(evt)
}

func isBasicTyped(card *Card) bool {
	if card.HasSubtype("Basic") {
		return true
	}
	for _, basic := range basicLandTypes {
		if card.HasSubtype(basic) {
			return true
		}
	}
	return false
}

// exportedLog is the JSON shape of a saved game log.
type exportedLog struct {
	Metadata struct {
		GameID     string    `json:"game_id"`
		Timestamp  time.Time `json:"timestamp"`
		Commander  string    `json:"commander,omitempty"`
		TotalTurns int       `json:"total_turns"`
		DeckSize   int       `json:"deck_size"`
	} `json:"metadata"`
	Events     []rules.Event `json:"events"`
	FinalState Summary       `json:"final_state"`
}

// ExportLog writes the recorded event log with metadata and the final state
// snapshot as indented JSON.
func (e *Engine) ExportLog(path string) error {
	var out exportedLog
	out.Metadata.GameID = e.GameID
	out.Metadata.Timestamp = time.Now()
	if e.State.Commander != nil {
		out.Metadata.Commander = e.State.Commander.Name
	}
	out.Metadata.TotalTurns = e.State.TurnCounter - 1
	out.Metadata.DeckSize = e.State.TotalCards()
	out.Events = e.eventLog
	out.FinalState = e.State.Summary()

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode game log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write game log: %w", err)
	}
	return nil
}
