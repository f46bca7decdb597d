package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mine/internal/events"
)

func TestEventBus_DeliversPayload(t *testing.T) {
	bus := events.NewBus()

	var got *events.TurnTakenEvent
	bus.Subscribe(events.EventTypeTurnTaken, &testListener{
		id:       "recorder",
		priority: events.PriorityRecording,
		handler: func(e events.Event) error {
			got = e.(*events.TurnTakenEvent)
			return nil
		},
	})

	err := bus.Emit(&events.TurnTakenEvent{
		BaseEvent: events.BaseEvent{
			Type:     events.EventTypeTurnTaken,
			CombatID: "combat-1",
			Actor:    "mech0",
			Target:   "drone0",
		},
		Command: "punch",
		Damage:  12,
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "combat-1", got.GetCombatID())
	assert.Equal(t, "mech0", got.GetActor())
	assert.Equal(t, "drone0", got.GetTarget())
	assert.Equal(t, 12, got.Damage)
}

func TestEventBus_Priority(t *testing.T) {
	bus := events.NewBus()

	// Track execution order
	var executionOrder []string
	record := func(name string) func(events.Event) error {
		return func(events.Event) error {
			executionOrder = append(executionOrder, name)
			return nil
		}
	}

	// Subscribe in random order
	bus.Subscribe(events.EventTypeUnitDefeated, &testListener{id: "low", priority: 300, handler: record("low")})
	bus.Subscribe(events.EventTypeUnitDefeated, &testListener{id: "high", priority: 100, handler: record("high")})
	bus.Subscribe(events.EventTypeUnitDefeated, &testListener{id: "medium", priority: 200, handler: record("medium")})

	err := bus.Emit(&events.UnitDefeatedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeUnitDefeated},
	})
	require.NoError(t, err)

	// Lower priority number = earlier execution
	assert.Equal(t, []string{"high", "medium", "low"}, executionOrder)
}

func TestEventBus_Cancellation(t *testing.T) {
	bus := events.NewBus()

	var firstExecuted, secondExecuted bool

	bus.Subscribe(events.EventTypeCombatEnded, &testListener{
		id:       "first",
		priority: 100,
		handler: func(e events.Event) error {
			firstExecuted = true
			e.Cancel()
			return nil
		},
	})
	bus.Subscribe(events.EventTypeCombatEnded, &testListener{
		id:       "second",
		priority: 200,
		handler: func(e events.Event) error {
			secondExecuted = true
			return nil
		},
	})

	event := &events.CombatEndedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeCombatEnded},
		Winners:   []string{"rebels"},
	}

	require.NoError(t, bus.Emit(event))

	assert.True(t, firstExecuted)
	assert.False(t, secondExecuted)
	assert.True(t, event.IsCancelled())
}

func TestEventBus_ListenerErrorStopsEmit(t *testing.T) {
	bus := events.NewBus()

	bus.Subscribe(events.EventTypeActionResolved, &testListener{
		id:       "broken",
		priority: 100,
		handler:  func(events.Event) error { return errors.New("disk full") },
	})

	err := bus.Emit(&events.ActionResolvedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeActionResolved},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listener broken failed")
}

func TestEventBus_UnsubscribeAndSubscribeAll(t *testing.T) {
	bus := events.NewBus()

	calls := 0
	listener := &testListener{
		id:       "counter",
		priority: 100,
		handler: func(events.Event) error {
			calls++
			return nil
		},
	}

	bus.SubscribeAll(listener)
	require.NoError(t, bus.Emit(&events.CombatStartedEvent{BaseEvent: events.BaseEvent{Type: events.EventTypeCombatStarted}}))
	require.NoError(t, bus.Emit(&events.ActionExpiredEvent{BaseEvent: events.BaseEvent{Type: events.EventTypeActionExpired}}))
	assert.Equal(t, 2, calls)

	bus.Unsubscribe(events.EventTypeCombatStarted, "counter")
	require.NoError(t, bus.Emit(&events.CombatStartedEvent{BaseEvent: events.BaseEvent{Type: events.EventTypeCombatStarted}}))
	assert.Equal(t, 2, calls)

	bus.Clear()
	require.NoError(t, bus.Emit(&events.ActionExpiredEvent{BaseEvent: events.BaseEvent{Type: events.EventTypeActionExpired}}))
	assert.Equal(t, 2, calls)
}

// Test helper: simple event listener
type testListener struct {
	id       string
	priority int
	handler  func(events.Event) error
}

func (l *testListener) ID() string                       { return l.id }
func (l *testListener) Priority() int                    { return l.priority }
func (l *testListener) HandleEvent(e events.Event) error { return l.handler(e) }
