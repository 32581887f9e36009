package scryfall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commandersim/commander-sim-go/internal/config"
	"github.com/commandersim/commander-sim-go/internal/game/tags"
)

func testConfig(baseURL string) config.ScryfallConfig {
	return config.ScryfallConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		// No request delay in tests.
	}
}

func solRingData() CardData {
	return CardData{
		ID:         "f08c0c05-a3d4-4c65-bfd3-3b96e7f586b4",
		Name:       "Sol Ring",
		ManaCost:   "{1}",
		CMC:        1,
		TypeLine:   "Artifact",
		OracleText: "{T}: Add {C}{C}.",
	}
}

func TestFetchCardByFuzzyName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/named", r.URL.Path)
		assert.Equal(t, "Sol Ring", r.URL.Query().Get("fuzzy"))
		json.NewEncoder(w).Encode(solRingData())
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, nil)
	data, err := client.FetchCard(context.Background(), "Sol Ring")
	require.NoError(t, err)
	assert.Equal(t, "Sol Ring", data.Name)
	assert.Equal(t, "{1}", data.ManaCost)
}

func TestFetchCardNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, nil)
	_, err := client.FetchCard(context.Background(), "Not A Real Card")
	require.ErrorIs(t, err, ErrCardNotFound)
}

func TestFetchCardRetriesOnRateLimit(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(solRingData())
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), nil, nil)
	data, err := client.FetchCard(context.Background(), "Sol Ring")
	require.NoError(t, err)
	assert.Equal(t, "Sol Ring", data.Name)
	assert.Equal(t, 2, calls)
}

func TestFetchCardUsesCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(solRingData())
	}))
	defer server.Close()

	cache, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	client := NewClient(testConfig(server.URL), cache, nil)
	_, err = client.FetchCard(context.Background(), "Sol Ring")
	require.NoError(t, err)
	_, err = client.FetchCard(context.Background(), "Sol Ring")
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second fetch must come from the cache")
}

func TestToCardClassifies(t *testing.T) {
	client := NewClient(testConfig("http://unused"), nil, nil)

	data := solRingData()
	card, err := client.ToCard(&data)
	require.NoError(t, err)

	assert.Equal(t, "Sol Ring", card.Name)
	assert.Equal(t, 1, card.ManaValue)
	assert.True(t, card.Tags.Has(tags.TagArtifact))
	assert.True(t, card.Tags.Has(tags.TagManaRock))
	assert.Equal(t, data.ID, card.ScryfallID)
}

func TestToCardLandHasNoCost(t *testing.T) {
	client := NewClient(testConfig("http://unused"), nil, nil)

	card, err := client.ToCard(&CardData{
		Name:     "Forest",
		TypeLine: "Basic Land — Forest",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, card.ManaValue)
	assert.True(t, card.IsLand())
}
