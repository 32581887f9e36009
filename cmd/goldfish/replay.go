package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/commandersim/commander-sim-go/internal/game"
	"github.com/commandersim/commander-sim-go/internal/game/rules"
)

var replayCmd = &cobra.Command{
	Use:   "replay <game-log>",
	Short: "Replay a recorded game log turn by turn",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		replay, err := game.LoadReplay(args[0])
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		bold.Printf("Replaying game %s", replay.GameID())
		if replay.Commander() != "" {
			fmt.Printf(" (%s)", replay.Commander())
		}
		fmt.Printf(", %d turns\n", replay.TotalTurns())

		bus := rules.NewEventBus()
		narrate(bus)
		replay.PublishAll(bus)

		final := replay.FinalState()
		bold.Println("\nRecorded final state")
		fmt.Printf("  lands in play: %d\n", final.Lands)
		fmt.Printf("  battlefield:   %d permanents\n", final.BattlefieldSize)
		fmt.Printf("  hand:          %d cards\n", final.HandSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
