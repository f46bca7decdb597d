package events

// EventType represents the type of combat event
type EventType string

// Event is the base interface for all combat events
type Event interface {
	GetType() EventType
	GetCombatID() string
	GetActor() string
	GetTarget() string
	IsCancelled() bool
	Cancel()
}

// Emitter is anything that accepts events, usually a *Bus
type Emitter interface {
	Emit(event Event) error
}

// BaseEvent provides common implementation for all events. Actor and Target
// are combat display names.
type BaseEvent struct {
	Type      EventType
	CombatID  string
	Actor     string
	Target    string
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType  { return e.Type }
func (e *BaseEvent) GetCombatID() string { return e.CombatID }
func (e *BaseEvent) GetActor() string    { return e.Actor }
func (e *BaseEvent) GetTarget() string   { return e.Target }
func (e *BaseEvent) IsCancelled() bool   { return e.Cancelled }
func (e *BaseEvent) Cancel()             { e.Cancelled = true }
