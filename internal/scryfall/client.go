// Package scryfall fetches card data from the Scryfall API and turns it
// into classified game cards.
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/commandersim/commander-sim-go/internal/config"
	"github.com/commandersim/commander-sim-go/internal/game"
	"github.com/commandersim/commander-sim-go/internal/game/mana"
	"github.com/commandersim/commander-sim-go/internal/game/tags"
)

// ErrCardNotFound is returned when the API has no card matching the name.
var ErrCardNotFound = errors.New("card not found")

// maxRetries bounds the exponential backoff on HTTP 429. Scryfall bans IPs
// that keep hammering, so giving up beats retrying forever.
const maxRetries = 5

// CardData is the subset of the Scryfall card object the simulator needs.
type CardData struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ManaCost      string   `json:"mana_cost"`
	CMC           float64  `json:"cmc"`
	TypeLine      string   `json:"type_line"`
	OracleText    string   `json:"oracle_text"`
	ColorIdentity []string `json:"color_identity"`
}

// Client is a rate-limited Scryfall API client with an optional disk cache.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	classifier *tags.Classifier
	logger     *zap.Logger

	requestDelay time.Duration
	lastRequest  time.Time
}

// NewClient builds a client from configuration. A nil cache disables
// caching.
func NewClient(cfg config.ScryfallConfig, cache *Cache, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		cache:        cache,
		classifier:   tags.NewClassifier(),
		logger:       logger,
		requestDelay: cfg.RequestDelay,
	}
}

// Classifier exposes the client's classifier so callers can load tag
// override files before fetching.
func (c *Client) Classifier() *tags.Classifier {
	return c.classifier
}

// FetchCard fetches one card by fuzzy name, consulting the cache first.
// HTTP 429 responses are retried with exponential backoff; 404 maps to
// ErrCardNotFound.
func (c *Client) FetchCard(ctx context.Context, name string) (*CardData, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(name); ok {
			c.logger.Debug("cache hit", zap.String("card", name))
			return data, nil
		}
	}

	data, err := c.fetchRemote(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.Put(name, data); err != nil {
			c.logger.Warn("failed to cache card",
				zap.String("card", name), zap.Error(err))
		}
	}
	return data, nil
}

func (c *Client) fetchRemote(ctx context.Context, name string, attempt int) (*CardData, error) {
	c.throttle(ctx)

	u := fmt.Sprintf("%s/cards/named?fuzzy=%s", c.baseURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", name, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var data CardData
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return nil, fmt.Errorf("failed to decode response for %s: %w", name, err)
		}
		return &data, nil

	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, name)

	case http.StatusTooManyRequests:
		if attempt >= maxRetries {
			return nil, fmt.Errorf("rate limit exceeded after %d retries for %s", maxRetries, name)
		}
		backoff := time.Duration(1<<attempt) * time.Second
		c.logger.Warn("rate limited, backing off",
			zap.String("card", name),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
		)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return c.fetchRemote(ctx, name, attempt+1)

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d fetching %s: %s",
			resp.StatusCode, name, string(body))
	}
}

// throttle spaces live API requests. Scryfall asks for 50-100ms between
// calls.
func (c *Client) throttle(ctx context.Context) {
	if c.requestDelay <= 0 {
		return
	}
	elapsed := time.Since(c.lastRequest)
	if elapsed < c.requestDelay {
		select {
		case <-time.After(c.requestDelay - elapsed):
		case <-ctx.Done():
		}
	}
	c.lastRequest = time.Now()
}

// ToCard converts raw API data into a classified template card.
func (c *Client) ToCard(data *CardData) (*game.Card, error) {
	var cost *mana.Cost
	if data.ManaCost != "" {
		parsed, err := mana.ParseCost(data.ManaCost)
		if err != nil {
			return nil, fmt.Errorf("failed to parse mana cost of %s: %w", data.Name, err)
		}
		cost = parsed
	}

	cardTags := c.classifier.Classify(data.Name, data.TypeLine, data.OracleText)
	card := game.NewCard(data.Name, data.TypeLine, data.OracleText, cost, cardTags)
	card.ScryfallID = data.ID
	card.ColorIdentity = append([]string(nil), data.ColorIdentity...)
	return card, nil
}
