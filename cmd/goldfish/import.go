package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/commandersim/commander-sim-go/internal/game"
	"github.com/commandersim/commander-sim-go/internal/repository"
	"github.com/commandersim/commander-sim-go/internal/scryfall"
)

var importCmd = &cobra.Command{
	Use:   "import <decklist>",
	Short: "Fetch a decklist's cards and store them in PostgreSQL",
	Long: `Import fetches every unique card of a decklist from Scryfall, classifies
it, and upserts the results into the configured card store so later runs can
skip the network entirely.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Database.Enabled() {
			return fmt.Errorf("no database configured; set database.host")
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open decklist: %w", err)
		}
		defer file.Close()

		list, err := scryfall.ParseDecklist(file)
		if err != nil {
			return err
		}

		cache, err := scryfall.NewCache(cfg.Scryfall.CacheDir, cfg.Scryfall.CacheTTL)
		if err != nil {
			logger.Warn("cache unavailable, fetching without it", zap.Error(err))
			cache = nil
		}
		client := scryfall.NewClient(cfg.Scryfall, cache, logger)
		if cfg.Tags.OverridesFile != "" {
			if err := client.Classifier().LoadOverrideFile(cfg.Tags.OverridesFile); err != nil {
				return fmt.Errorf("failed to load tag overrides: %w", err)
			}
		}

		ctx := cmd.Context()
		db, err := repository.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := repository.NewCardRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}

		seen := make(map[string]struct{})
		var cards []*game.Card
		names := make([]string, 0, len(list.Entries)+1)
		for _, entry := range list.Entries {
			names = append(names, entry.Name)
		}
		if list.Commander != "" {
			names = append(names, list.Commander)
		}

		for _, name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}

			data, err := client.FetchCard(ctx, name)
			if err != nil {
				logger.Warn("skipping card", zap.String("card", name), zap.Error(err))
				continue
			}
			card, err := client.ToCard(data)
			if err != nil {
				return err
			}
			cards = append(cards, card)
		}

		if err := repo.SaveAll(ctx, cards); err != nil {
			return err
		}

		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d cards; store now holds %d\n", len(cards), count)
		return nil
	},
}
