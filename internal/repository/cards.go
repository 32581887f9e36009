package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/commandersim/commander-sim-go/internal/game"
	"github.com/commandersim/commander-sim-go/internal/game/mana"
	"github.com/commandersim/commander-sim-go/internal/game/tags"
)

// ErrCardNotStored is returned when a card is absent from the store.
var ErrCardNotStored = errors.New("card not in store")

const cardsSchema = `
CREATE TABLE IF NOT EXISTS cards (
	scryfall_id    TEXT PRIMARY KEY,
	name           TEXT NOT NULL UNIQUE,
	mana_cost      TEXT NOT NULL DEFAULT '',
	mana_value     INT  NOT NULL DEFAULT 0,
	type_line      TEXT NOT NULL DEFAULT '',
	oracle_text    TEXT NOT NULL DEFAULT '',
	color_identity TEXT[] NOT NULL DEFAULT '{}',
	card_tags      TEXT[] NOT NULL DEFAULT '{}',
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS cards_name_lower_idx ON cards (lower(name));
`

// CardRepository stores classified cards.
type CardRepository struct {
	db *DB
}

// NewCardRepository wraps a database.
func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

// EnsureSchema creates the cards table if missing.
func (r *CardRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.pool.Exec(ctx, cardsSchema); err != nil {
		return fmt.Errorf("failed to create cards schema: %w", err)
	}
	return nil
}

// SaveAll upserts cards in one transaction. Tags are persisted as text so
// per-instance classification survives round trips.
func (r *CardRepository) SaveAll(ctx context.Context, cards []*game.Card) error {
	tx, err := r.db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, card := range cards {
		costStr := ""
		if card.ManaCost != nil {
			costStr = card.ManaCost.String()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO cards (
				scryfall_id, name, mana_cost, mana_value, type_line,
				oracle_text, color_identity, card_tags, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
			ON CONFLICT (scryfall_id) DO UPDATE SET
				name           = EXCLUDED.name,
				mana_cost      = EXCLUDED.mana_cost,
				mana_value     = EXCLUDED.mana_value,
				type_line      = EXCLUDED.type_line,
				oracle_text    = EXCLUDED.oracle_text,
				color_identity = EXCLUDED.color_identity,
				card_tags      = EXCLUDED.card_tags,
				updated_at     = now()
		`,
			card.ScryfallID,
			card.Name,
			costStr,
			card.ManaValue,
			card.TypeLine,
			card.OracleText,
			card.ColorIdentity,
			card.Tags.Strings(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert card %s: %w", card.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit card upserts: %w", err)
	}
	r.db.logger.Info("cards stored", zap.Int("count", len(cards)))
	return nil
}

// GetByName loads one card template by name, case-insensitively.
func (r *CardRepository) GetByName(ctx context.Context, name string) (*game.Card, error) {
	row := r.db.pool.QueryRow(ctx, `
		SELECT scryfall_id, name, mana_cost, type_line, oracle_text,
		       color_identity, card_tags
		FROM cards WHERE lower(name) = lower($1)
	`, name)
	return scanCard(row)
}

// Count returns how many cards are stored.
func (r *CardRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM cards").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

func scanCard(row pgx.Row) (*game.Card, error) {
	var (
		scryfallID, name, costStr, typeLine, oracleText string
		colorIdentity, tagStrings                       []string
	)
	err := row.Scan(&scryfallID, &name, &costStr, &typeLine, &oracleText,
		&colorIdentity, &tagStrings)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCardNotStored
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan card row: %w", err)
	}

	var cost *mana.Cost
	if costStr != "" {
		cost, err = mana.ParseCost(costStr)
		if err != nil {
			return nil, fmt.Errorf("stored mana cost of %s is corrupt: %w", name, err)
		}
	}

	tagSet := tags.NewTagSet()
	for _, s := range tagStrings {
		tagSet.Add(tags.Tag(s))
	}

	card := game.NewCard(name, typeLine, oracleText, cost, tagSet)
	card.ScryfallID = scryfallID
	card.ColorIdentity = colorIdentity
	return card, nil
}
