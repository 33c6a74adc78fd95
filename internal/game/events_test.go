package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_DispatchesInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int
	bus.Subscribe(EventNearMiss, func(Event) { order = append(order, 1) })
	bus.Subscribe(EventNearMiss, func(Event) { order = append(order, 2) })

	bus.Emit(Event{Type: EventNearMiss})
	assert.Equal(t, []int{1, 2}, order)
}

func TestEventBus_EmitWithoutSubscribersIsSafe(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() { bus.Emit(Event{Type: EventCrashed}) })
}

func TestEventBus_DeliversPayload(t *testing.T) {
	bus := NewEventBus()
	var got Event
	bus.Subscribe(EventPowerupTaken, func(e Event) { got = e })

	bus.Emit(Event{Type: EventPowerupTaken, X: 10, Y: 20, Data: 7})
	assert.Equal(t, Event{Type: EventPowerupTaken, X: 10, Y: 20, Data: 7}, got)
}

func TestEventBus_TypesAreIsolated(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	bus.Subscribe(EventNearMiss, func(Event) { calls++ })

	bus.Emit(Event{Type: EventCarPassed})
	bus.Emit(Event{Type: EventCrashed})
	assert.Equal(t, 0, calls)

	bus.Emit(Event{Type: EventNearMiss})
	assert.Equal(t, 1, calls)
}
