package events

// CombatStartedEvent is emitted once a roster has been named and scheduled
type CombatStartedEvent struct {
	BaseEvent
	Units []string
}

// TurnTakenEvent is emitted after a unit has chosen and activated a command
type TurnTakenEvent struct {
	BaseEvent
	Command string
	Damage  int            // Immediate damage dealt, if any
	Buffs   map[string]int // Immediate attribute changes, if any
	Pending bool           // The command was scheduled rather than resolved
}

// ActionScheduledEvent is emitted when an action joins the turn order
type ActionScheduledEvent struct {
	BaseEvent
	Command string
	Phase   string
	Ticks   int
}

// ActionResolvedEvent is emitted when a delayed action applies its effect
type ActionResolvedEvent struct {
	BaseEvent
	Command string
	Damage  int
	Buffs   map[string]int
}

// ActionExpiredEvent is emitted when an action's effect is reverted
type ActionExpiredEvent struct {
	BaseEvent
	Command string
	Healed  int
	Buffs   map[string]int
}

// UnitDefeatedEvent is emitted when a unit leaves the roster at zero hitpoints
type UnitDefeatedEvent struct {
	BaseEvent
	Team string
}

// CombatEndedEvent is emitted when the victory condition is met
type CombatEndedEvent struct {
	BaseEvent
	Winners []string
	Events  int
}
