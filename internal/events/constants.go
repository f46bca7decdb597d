package events

// Event type constants
const (
	EventTypeCombatStarted   EventType = "combat_started"
	EventTypeTurnTaken       EventType = "turn_taken"
	EventTypeActionScheduled EventType = "action_scheduled"
	EventTypeActionResolved  EventType = "action_resolved"
	EventTypeActionExpired   EventType = "action_expired"
	EventTypeUnitDefeated    EventType = "unit_defeated"
	EventTypeCombatEnded     EventType = "combat_ended"
)

// Priority levels for listener ordering
const (
	PriorityRecording = 100 // Logs, statistics
	PriorityDisplay   = 200 // Anything that renders
	PriorityDefault   = 300
)
