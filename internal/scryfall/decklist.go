package scryfall

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/commandersim/commander-sim-go/internal/game"
)

// Entry is one decklist line: a card name and how many copies.
type Entry struct {
	Name     string
	Quantity int
}

// Decklist is a parsed deck file.
type Decklist struct {
	Entries   []Entry
	Commander string
}

// TotalCards sums entry quantities, excluding the commander.
func (d *Decklist) TotalCards() int {
	total := 0
	for _, e := range d.Entries {
		total += e.Quantity
	}
	return total
}

var (
	reQuantity = regexp.MustCompile(`^(\d+)x?\s+(.+)$`)
	reSetCode  = regexp.MustCompile(`\s*\([^)]+\)\s*$`)
)

// ParseDecklist reads a deck file. Supported line formats:
//
//	Sol Ring
//	1 Sol Ring
//	3x Forest
//	1 Sol Ring (CMD)
//	# Commander: Atraxa, Praetors' Voice
//
// Other comment lines and blank lines are skipped.
func ParseDecklist(r io.Reader) (*Decklist, error) {
	deck := &Decklist{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if name, ok := strings.CutPrefix(line, "# Commander:"); ok {
			deck.Commander = strings.TrimSpace(name)
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		quantity := 1
		name := line
		if m := reQuantity.FindStringSubmatch(line); m != nil {
			q, err := strconv.Atoi(m[1])
			if err != nil || q < 1 {
				return nil, fmt.Errorf("invalid quantity on line %q", line)
			}
			quantity = q
			name = m[2]
		}

		name = strings.TrimSpace(reSetCode.ReplaceAllString(name, ""))
		if name == "" {
			continue
		}
		deck.Entries = append(deck.Entries, Entry{Name: name, Quantity: quantity})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read decklist: %w", err)
	}
	return deck, nil
}

// DeckBuilder fetches a parsed decklist's cards and assembles a playable
// deck of classified card instances.
type DeckBuilder struct {
	client *Client
	logger *zap.Logger
}

// NewDeckBuilder wires a builder around a client.
func NewDeckBuilder(client *Client, logger *zap.Logger) *DeckBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeckBuilder{client: client, logger: logger}
}

// Build fetches every unique card once, then expands quantities into
// independent card instances. Cards the API cannot find are reported and
// skipped; a deck that ends up at the wrong size fails deck construction.
func (b *DeckBuilder) Build(ctx context.Context, list *Decklist) (*game.Deck, error) {
	unique := make([]string, 0, len(list.Entries))
	seen := make(map[string]struct{})
	for _, entry := range list.Entries {
		key := strings.ToLower(entry.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, entry.Name)
	}
	if list.Commander != "" {
		if _, ok := seen[strings.ToLower(list.Commander)]; !ok {
			unique = append(unique, list.Commander)
		}
	}

	b.logger.Info("building deck",
		zap.Int("entries", len(list.Entries)),
		zap.Int("unique_cards", len(unique)),
		zap.Int("total_cards", list.TotalCards()),
		zap.String("commander", list.Commander),
	)

	templates := make(map[string]*game.Card, len(unique))
	var missing []string
	for _, name := range unique {
		data, err := b.client.FetchCard(ctx, name)
		if errors.Is(err, ErrCardNotFound) {
			missing = append(missing, name)
			continue
		}
		if err != nil {
			return nil, err
		}
		card, err := b.client.ToCard(data)
		if err != nil {
			return nil, err
		}
		// Key by the requested name; fuzzy matching may correct casing or
		// punctuation in the returned name.
		templates[strings.ToLower(name)] = card
	}
	if len(missing) > 0 {
		b.logger.Warn("cards not found", zap.Strings("missing", missing))
	}

	cards := make([]*game.Card, 0, list.TotalCards())
	for _, entry := range list.Entries {
		template, ok := templates[strings.ToLower(entry.Name)]
		if !ok {
			continue
		}
		for i := 0; i < entry.Quantity; i++ {
			cards = append(cards, template.Clone())
		}
	}

	var commander *game.Card
	if list.Commander != "" {
		if template, ok := templates[strings.ToLower(list.Commander)]; ok {
			commander = template.Clone()
		}
	}

	deck, err := game.NewDeck(commander, cards)
	if err != nil {
		return nil, fmt.Errorf("decklist did not assemble a legal deck: %w", err)
	}
	return deck, nil
}
