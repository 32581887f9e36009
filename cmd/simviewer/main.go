// Command simviewer serves a WebSocket feed of live goldfish games so a
// browser client can watch turns resolve as they happen.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/commandersim/commander-sim-go/internal/config"
	"github.com/commandersim/commander-sim-go/internal/game"
	"github.com/commandersim/commander-sim-go/internal/game/rules"
	"github.com/commandersim/commander-sim-go/internal/scryfall"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Local viewer, any origin may connect.
	},
}

// WSMessage is the envelope for both directions of the socket.
type WSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// startRequest asks the hub to play one game.
type startRequest struct {
	Turns int   `json:"turns"`
	Seed  int64 `json:"seed"`
	// Delay in milliseconds between replayed events, so the browser can
	// animate instead of receiving the whole game at once.
	Delay int `json:"delay"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type hub struct {
	deck   *game.Deck
	cfg    *config.Config
	logger *zap.Logger

	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client

	mu      sync.Mutex
	running bool
}

func newHub(deck *game.Deck, cfg *config.Config, logger *zap.Logger) *hub {
	return &hub{
		deck:       deck,
		cfg:        cfg,
		logger:     logger,
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.logger.Info("viewer connected", zap.Int("viewers", len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.logger.Info("viewer disconnected", zap.Int("viewers", len(h.clients)))
			}

		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

func (h *hub) send(msgType string, data any) {
	raw, err := json.Marshal(WSMessage{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal message", zap.Error(err))
		return
	}
	h.broadcast <- raw
}

// playGame runs one engine game, streaming every event to the viewers. Only
// one game runs at a time; extra start requests are rejected.
func (h *hub) playGame(req startRequest) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		h.send("error", "a game is already running")
		return
	}
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	turns := req.Turns
	if turns <= 0 {
		turns = h.cfg.Simulation.Turns
	}
	delay := time.Duration(req.Delay) * time.Millisecond

	engine := game.NewEngine(h.logger, game.Options{
		Seed:           req.Seed,
		CheckpointTurn: h.cfg.Simulation.CheckpointTurn,
	})
	engine.Bus().Subscribe(func(evt rules.Event) {
		h.send("game_event", evt)
		if delay > 0 {
			time.Sleep(delay)
		}
	})

	engine.StartGame(h.deck.Clone())
	stats, err := engine.RunSimulation(turns)
	if err != nil {
		h.logger.Error("game aborted", zap.Error(err))
		h.send("error", err.Error())
		return
	}

	h.send("game_done", struct {
		Stats   game.RunStats `json:"stats"`
		Summary game.Summary  `json:"final_state"`
	}{stats, engine.State.Summary()})
}

func (h *hub) handleMessage(raw []byte) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.logger.Warn("bad message from viewer", zap.Error(err))
		return
	}

	switch msg.Type {
	case "start_game":
		var req startRequest
		if msg.Data != nil {
			data, _ := json.Marshal(msg.Data)
			_ = json.Unmarshal(data, &req)
		}
		go h.playGame(req)

	case "deck_info":
		h.send("deck_info", struct {
			Commander string  `json:"commander"`
			Lands     int     `json:"lands"`
			AvgMV     float64 `json:"avg_mana_value"`
		}{
			Commander: commanderName(h.deck),
			Lands:     h.deck.LandCount(),
			AvgMV:     h.deck.AverageManaValue(),
		})
	}
}

func (c *client) readPump(h *hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		h.handleMessage(message)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}

func serveWS(h *hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 256)}
	h.register <- c
	go c.writePump()
	go c.readPump(h)
}

func commanderName(deck *game.Deck) string {
	if deck.Commander == nil {
		return ""
	}
	return deck.Commander.Name
}

func main() {
	var (
		cfgPath  = flag.String("config", "", "path to configuration file")
		deckPath = flag.String("deck", "", "path to decklist file")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *deckPath == "" {
		logger.Fatal("a decklist is required, pass -deck")
	}

	deck, err := loadDeck(cfg, logger, *deckPath)
	if err != nil {
		logger.Fatal("failed to load deck", zap.Error(err))
	}
	logger.Info("deck loaded",
		zap.String("commander", commanderName(deck)),
		zap.Int("lands", deck.LandCount()),
	)

	h := newHub(deck, cfg, logger)
	go h.run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(h, w, r)
	})

	logger.Info("viewer server listening", zap.String("addr", cfg.Viewer.Addr))
	if err := http.ListenAndServe(cfg.Viewer.Addr, nil); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func loadDeck(cfg *config.Config, logger *zap.Logger, path string) (*game.Deck, error) {
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
	return builder.Build(context.Background(), list)
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
