package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/commandersim/commander-sim-go/internal/game"
	"github.com/commandersim/commander-sim-go/internal/game/rules"
	"github.com/commandersim/commander-sim-go/internal/game/tags"
	"github.com/commandersim/commander-sim-go/internal/scryfall"
)

var (
	simTurns   int
	simSeed    int64
	simLogPath string
	simQuiet   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <decklist>",
	Short: "Play one goldfish game with turn-by-turn narration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, err := loadDeck(cmd, args[0])
		if err != nil {
			return err
		}

		engine := game.NewEngine(logger, game.Options{
			Seed:           simSeed,
			CheckpointTurn: cfg.Simulation.CheckpointTurn,
			RecordEvents:   true,
		})
		if !simQuiet {
			narrate(engine.Bus())
		}

		engine.StartGame(deck.Clone())
		stats, err := engine.RunSimulation(simTurns)
		if err != nil {
			return fmt.Errorf("game aborted: %w", err)
		}

		printGameSummary(deck, engine, stats)

		if simLogPath != "" {
			if err := engine.ExportLog(simLogPath); err != nil {
				return err
			}
			fmt.Printf("\nGame log written to %s\n", simLogPath)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().IntVar(&simTurns, "turns", 10, "number of turns to play")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "RNG seed (0 = random)")
	simulateCmd.Flags().StringVar(&simLogPath, "log", "", "write the JSON game log to this file")
	simulateCmd.Flags().BoolVar(&simQuiet, "quiet", false, "suppress turn narration")
}

// loadDeck parses a decklist file and fetches its cards.
func loadDeck(cmd *cobra.Command, path string) (*game.Deck, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open decklist: %w", err)
	}
	defer file.Close()

	list, err := scryfall.ParseDecklist(file)
	if err != nil {
		return nil, err
	}

	cache, err := scryfall.NewCache(cfg.Scryfall.CacheDir, cfg.Scryfall.CacheTTL)
	if err != nil {
		logger.Warn("cache unavailable, fetching without it", zap.Error(err))
		cache = nil
	}
	client := scryfall.NewClient(cfg.Scryfall, cache, logger)
	if cfg.Tags.OverridesFile != "" {
		if err := client.Classifier().LoadOverrideFile(cfg.Tags.OverridesFile); err != nil {
			return nil, fmt.Errorf("failed to load tag overrides: %w", err)
		}
	}
	builder := scryfall.NewDeckBuilder(client, logger)
	return builder.Build(cmd.Context(), list)
}

// narrate prints engine events as they happen.
func narrate(bus *rules.EventBus) {
	turnColor := color.New(color.FgCyan, color.Bold)
	landColor := color.New(color.FgGreen)
	castColor := color.New(color.FgYellow)
	fetchColor := color.New(color.FgMagenta)

	bus.SubscribeTyped(rules.EventTurnStart, func(evt rules.Event) {
		turnColor.Printf("\n=== Turn %d ===\n", evt.Turn)
		fmt.Printf("  hand %s, battlefield %s, library %s\n",
			evt.Metadata["hand_size"], evt.Metadata["battlefield_size"], evt.Metadata["library_size"])
	})
	bus.SubscribeTyped(rules.EventDrawCard, func(evt rules.Event) {
		if evt.Card == "" {
			fmt.Println("  draw: library empty")
			return
		}
		fmt.Printf("  draw: %s\n", evt.Card)
	})
	bus.SubscribeTyped(rules.EventPlayLand, func(evt rules.Event) {
		suffix := ""
		if evt.Tapped {
			suffix = " (tapped)"
		}
		landColor.Printf("  land: %s%s\n", evt.Card, suffix)
	})
	bus.SubscribeTyped(rules.EventGenerateMana, func(evt rules.Event) {
		fmt.Printf("  mana: +%d (%s lands, %s artifacts), pool %d\n",
			evt.Amount, evt.Metadata["lands"], evt.Metadata["artifacts"], evt.ManaRemaining)
	})
	bus.SubscribeTyped(rules.EventCastSpell, func(evt rules.Event) {
		castColor.Printf("  cast: %s for %d, pool %d\n", evt.Card, evt.Amount, evt.ManaRemaining)
	})
	bus.SubscribeTyped(rules.EventFetchLand, func(evt rules.Event) {
		target := evt.Metadata["fetched"]
		if target == "" {
			target = "nothing"
		}
		fetchColor.Printf("  fetch: %s -> %s, shuffle\n", evt.Card, target)
	})
}

func printGameSummary(deck *game.Deck, engine *game.Engine, stats game.RunStats) {
	bold := color.New(color.Bold)

	bold.Println("\nFinal state")
	summary := engine.State.Summary()
	fmt.Printf("  turns played:  %d\n", stats.FinalTurn)
	fmt.Printf("  lands in play: %d\n", summary.Lands)
	fmt.Printf("  battlefield:   %d permanents\n", summary.BattlefieldSize)
	fmt.Printf("  hand:          %d cards\n", summary.HandSize)
	fmt.Printf("  graveyard:     %d cards\n", len(engine.State.Graveyard))

	bold.Println("\nDeck profile")
	fmt.Printf("  lands:           %d\n", deck.LandCount())
	fmt.Printf("  avg mana value:  %.2f\n", deck.AverageManaValue())

	dist := deck.TagDistribution()
	keys := make([]string, 0, len(dist))
	for tag := range dist {
		keys = append(keys, string(tag))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", key, dist[tags.Tag(key)]))
	}
	fmt.Printf("  tags:            %s\n", strings.Join(parts, " "))
}
