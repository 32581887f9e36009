package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/commandersim/commander-sim-go/internal/sim"
)

var (
	batchGames   int
	batchTurns   int
	batchSeed    int64
	batchWorkers int
	batchCSVPath string
	batchJSON    string
)

var batchCmd = &cobra.Command{
	Use:   "batch <decklist>",
	Short: "Run a Monte Carlo batch of goldfish games",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, err := loadDeck(cmd, args[0])
		if err != nil {
			return err
		}

		runner := sim.NewRunner(deck, logger)
		batch, err := runner.Run(cmd.Context(), sim.BatchConfig{
			Games:          pick(batchGames, cfg.Simulation.Games),
			Turns:          pick(batchTurns, cfg.Simulation.Turns),
			CheckpointTurn: cfg.Simulation.CheckpointTurn,
			Seed:           pick64(batchSeed, cfg.Simulation.Seed),
			Workers:        pick(batchWorkers, cfg.Simulation.Workers),
		})
		if err != nil {
			return err
		}

		printBatchSummary(batch)

		if batchCSVPath != "" {
			if err := writeTo(batchCSVPath, batch.ExportCSV); err != nil {
				return err
			}
			fmt.Printf("\nCSV results written to %s\n", batchCSVPath)
		}
		if batchJSON != "" {
			if err := writeTo(batchJSON, batch.ExportJSON); err != nil {
				return err
			}
			fmt.Printf("JSON results written to %s\n", batchJSON)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchGames, "games", 0, "number of games (overrides config)")
	batchCmd.Flags().IntVar(&batchTurns, "turns", 0, "turns per game (overrides config)")
	batchCmd.Flags().Int64Var(&batchSeed, "seed", 0, "base RNG seed (overrides config)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent games (overrides config)")
	batchCmd.Flags().StringVar(&batchCSVPath, "csv", "", "write per-game results to this CSV file")
	batchCmd.Flags().StringVar(&batchJSON, "json", "", "write full results to this JSON file")
}

func printBatchSummary(batch *sim.BatchResult) {
	agg := batch.Aggregate()
	bold := color.New(color.Bold)

	bold.Println("\nMonte Carlo summary")
	fmt.Printf("  games:              %d (%d aborted) in %s\n",
		agg.Games, batch.Aborted, batch.Duration.Round(time.Millisecond))
	fmt.Printf("  checkpoint turn:    %d\n", batch.Config.CheckpointTurn)
	fmt.Printf("  avg lands:          %.2f ± %.2f\n",
		agg.MeanLandsAtCheckpoint, agg.StddevLandsAtCheckpoint)
	fmt.Printf("  avg mana sources:   %.2f\n", agg.MeanManaAtCheckpoint)
	fmt.Printf("  avg final lands:    %.2f\n", agg.MeanFinalLands)
	fmt.Printf("  hand emptied:       %.1f%% (avg turn %.1f)\n",
		agg.EmptyHandPct, agg.MeanEmptyHandTurn)

	bold.Println("\nLands at checkpoint")
	for _, bucket := range agg.HistogramBuckets() {
		count := agg.LandsHistogram[bucket]
		pct := float64(count) / float64(agg.Games) * 100
		bar := strings.Repeat("#", int(pct/2))
		fmt.Printf("  %2d lands: %5d (%5.1f%%) %s\n", bucket, count, pct, bar)
	}
}

func writeTo(path string, write func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	return write(file)
}

func pick(flag, fallback int) int {
	if flag > 0 {
		return flag
	}
	return fallback
}

func pick64(flag, fallback int64) int64 {
	if flag != 0 {
		return flag
	}
	return fallback
}
