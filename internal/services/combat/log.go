package combat

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/mine/internal/events"
)

// DefaultLogSize is how many log lines a stored record keeps
const DefaultLogSize = 50

// combatLog turns combat events into readable lines, keeping only the most
// recent ones
type combatLog struct {
	mu      sync.Mutex
	size    int
	entries []string
}

func newCombatLog(size int) *combatLog {
	return &combatLog{size: size}
}

func (l *combatLog) ID() string    { return "combat-log" }
func (l *combatLog) Priority() int { return events.PriorityRecording }

func (l *combatLog) HandleEvent(event events.Event) error {
	line := describe(event)
	if line == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, line)
	if over := len(l.entries) - l.size; over > 0 {
		l.entries = append(l.entries[:0], l.entries[over:]...)
	}
	return nil
}

// Entries returns a copy of the retained lines, oldest first
func (l *combatLog) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func describe(event events.Event) string {
	switch e := event.(type) {
	case *events.CombatStartedEvent:
		return "combat started: " + strings.Join(e.Units, ", ")
	case *events.TurnTakenEvent:
		line := fmt.Sprintf("%s used %s on %s", e.Actor, e.Command, e.Target)
		switch {
		case e.Damage > 0:
			line += fmt.Sprintf(" for %d damage", e.Damage)
		case len(e.Buffs) > 0:
			line += " (" + formatBuffs(e.Buffs) + ")"
		}
		return line
	case *events.ActionScheduledEvent:
		return fmt.Sprintf("%s's %s is pending (%s, %d ticks)", e.Actor, e.Command, e.Phase, e.Ticks)
	case *events.ActionResolvedEvent:
		if len(e.Buffs) > 0 {
			return fmt.Sprintf("%s landed on %s (%s)", e.Command, e.Target, formatBuffs(e.Buffs))
		}
		return fmt.Sprintf("%s landed on %s for %d damage", e.Command, e.Target, e.Damage)
	case *events.ActionExpiredEvent:
		if e.Healed > 0 {
			return fmt.Sprintf("%s wore off %s, restoring %d", e.Command, e.Target, e.Healed)
		}
		return fmt.Sprintf("%s wore off %s", e.Command, e.Target)
	case *events.UnitDefeatedEvent:
		return fmt.Sprintf("%s (%s) was defeated", e.Actor, e.Team)
	case *events.CombatEndedEvent:
		if len(e.Winners) == 0 {
			return "combat ended in a draw"
		}
		return "combat won by " + strings.Join(e.Winners, ", ")
	}
	return ""
}

func formatBuffs(buffs map[string]int) string {
	keys := make([]string, 0, len(buffs))
	for k := range buffs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %+d", k, buffs[k])
	}
	return strings.Join(parts, ", ")
}
