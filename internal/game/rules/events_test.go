package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_SubscribePublish(t *testing.T) {
	bus := NewEventBus()

	var received []Event
	handle := bus.Subscribe(func(e Event) {
		received = append(received, e)
	})
	assert.GreaterOrEqual(t, handle, 0)

	bus.Publish(NewEvent(EventDrawCard, 3))
	bus.Publish(NewEvent(EventTurnEnd, 3))

	assert.Len(t, received, 2)
	assert.Equal(t, EventDrawCard, received[0].Type)
	assert.Equal(t, 3, received[0].Turn)
}

func TestEventBus_TypedListener(t *testing.T) {
	bus := NewEventBus()

	var casts int
	bus.SubscribeTyped(EventCastSpell, func(e Event) {
		casts++
	})

	bus.Publish(NewEvent(EventCastSpell, 1))
	bus.Publish(NewEvent(EventDrawCard, 1))
	bus.Publish(NewEvent(EventCastSpell, 2))

	assert.Equal(t, 2, casts)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()

	var count int
	handle := bus.Subscribe(func(e Event) { count++ })
	bus.Publish(NewEvent(EventDrawCard, 1))
	bus.Unsubscribe(handle)
	bus.Publish(NewEvent(EventDrawCard, 2))

	assert.Equal(t, 1, count)
}

func TestEventBus_NilListener(t *testing.T) {
	bus := NewEventBus()
	assert.Equal(t, -1, bus.Subscribe(nil))
	assert.Equal(t, -1, bus.SubscribeTyped(EventDrawCard, nil))
}
