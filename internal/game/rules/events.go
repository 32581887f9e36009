package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a game event.
type EventType string

const (
	EventGameStart    EventType = "GAME_START"
	EventOpeningHand  EventType = "OPENING_HAND"
	EventTurnStart    EventType = "TURN_START"
	EventUntapStep    EventType = "UNTAP_STEP"
	EventUpkeepStep   EventType = "UPKEEP_STEP"
	EventDrawCard     EventType = "DRAW_CARD"
	EventPlayLand     EventType = "PLAY_LAND"
	EventGenerateMana EventType = "GENERATE_MANA"
	EventCastSpell    EventType = "CAST_SPELL"
	EventFetchLand    EventType = "FETCH_LAND"
	EventShuffle      EventType = "SHUFFLE_LIBRARY"
	EventTurnEnd      EventType = "TURN_END"
	EventGameEnd      EventType = "GAME_END"
)

// Event is one structured action record in a game's chronological log.
// The log is replayable: events carry enough payload to reconstruct what the
// heuristic did without re-running the game.
type Event struct {
	Turn          int               `json:"turn"`
	Type          EventType         `json:"event"`
	Card          string            `json:"card,omitempty"`
	Amount        int               `json:"amount,omitempty"`
	ManaRemaining int               `json:"mana_remaining,omitempty"`
	Tapped        bool              `json:"tapped,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// NewEvent creates an event with common fields populated.
func NewEvent(eventType EventType, turn int) Event {
	return Event{
		Type:      eventType,
		Turn:      turn,
		Timestamp: time.Now(),
	}
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type
// filtering. The engine publishes while it runs; subscribers (exporters, the
// live viewer) must not block.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	if typedListeners, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typedListeners {
			listener.Callback(event)
		}
	}
}
