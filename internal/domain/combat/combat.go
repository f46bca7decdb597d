// Package combat runs turn-based combats: units and pending actions share one
// turn order, every entry loses a tick per cycle and the first to reach zero
// acts.
package combat

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/KirkDiggler/mine/internal/errors"
	"github.com/KirkDiggler/mine/internal/events"
)

const (
	// MaxSpinCycles bounds a single Spin
	MaxSpinCycles = 500
	// OrderListLimit is how many upcoming names the order display shows
	OrderListLimit = 4
)

// Config holds what a combat needs to run
type Config struct {
	ID      string
	Units   []*Unit
	Env     Env
	Victory VictoryCondition // defaults to Deathmatch

	Renderer Renderer       // optional
	Events   events.Emitter // optional
	Logger   *zap.Logger    // defaults to a no-op logger
}

// Result is the outcome of a finished combat
type Result struct {
	CombatID  string
	Winners   []string
	Events    int
	Survivors []string
}

// Combat owns the roster and the turn order. It is driven by a single
// goroutine; nothing in it is safe for concurrent use.
type Combat struct {
	id         string
	roster     []*Unit
	schedule   []Schedulable
	nextActive int
	eventCount int

	env      Env
	victory  VictoryCondition
	renderer Renderer
	emitter  events.Emitter
	logger   *zap.Logger
}

// New names the units for this combat and schedules them in roster order
func New(cfg *Config) (*Combat, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("combat config is required")
	}
	if len(cfg.Units) == 0 {
		return nil, errors.InvalidArgument("combat needs at least one unit")
	}
	for i, u := range cfg.Units {
		if u == nil {
			return nil, errors.InvalidArgumentf("unit %d is nil", i)
		}
		if u.Team() == nil {
			return nil, errors.InvalidArgumentf("unit %s has no team", u.ID())
		}
	}

	c := &Combat{
		id:       cfg.ID,
		roster:   slices.Clone(cfg.Units),
		env:      cfg.Env,
		victory:  cfg.Victory,
		renderer: cfg.Renderer,
		emitter:  cfg.Events,
		logger:   cfg.Logger,
	}
	if c.victory == nil {
		c.victory = Deathmatch
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	assignDisplayNames(c.roster)

	c.schedule = make([]Schedulable, len(c.roster))
	for i, u := range c.roster {
		c.schedule[i] = u
	}

	return c, nil
}

// assignDisplayNames gives every unit a name unique within the combat. A free
// unique name is used as is, a taken one gets a numeric suffix from 1; units
// without one are numbered from 0 by definition id.
func assignDisplayNames(units []*Unit) {
	used := make(map[string]bool, len(units))
	for _, u := range units {
		name := u.UniqueName()
		switch {
		case name != "" && !used[name]:
		case name != "":
			name = nextFreeName(name, 1, used)
		default:
			name = nextFreeName(u.ID(), 0, used)
		}
		used[name] = true
		u.displayName = name
	}
}

func nextFreeName(base string, start int, used map[string]bool) string {
	for i := start; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !used[candidate] {
			return candidate
		}
	}
}

// ID returns the combat id
func (c *Combat) ID() string { return c.id }

// Roster returns the units still in the combat
func (c *Combat) Roster() []*Unit { return slices.Clone(c.roster) }

// Spin advances every entry a tick at a time, starting at the cursor, until
// one is ready, and returns it. Entries that pop for the last time leave the
// schedule.
func (c *Combat) Spin() (Schedulable, error) {
	if len(c.schedule) == 0 {
		return nil, errors.SchedulingStalledf("combat %s has nothing scheduled", c.id)
	}

	for cycle := 0; cycle < MaxSpinCycles; cycle++ {
		n := len(c.schedule)
		for offset := 0; offset < n; offset++ {
			idx := (c.nextActive + offset) % n
			entry := c.schedule[idx]

			switch entry.Tick() {
			case TickSilent:
				continue
			case TickPopDie:
				c.schedule = slices.Delete(c.schedule, idx, idx+1)
				c.nextActive = idx
			default:
				c.nextActive = idx + 1
			}
			if c.nextActive >= len(c.schedule) {
				c.nextActive = 0
			}
			return entry, nil
		}
	}

	return nil, errors.SchedulingStalledf("combat %s: nothing became ready within %d cycles", c.id, MaxSpinCycles)
}

// Run drives the combat until the victory condition is met
func (c *Combat) Run(ctx context.Context) (*Result, error) {
	c.logger.Info("combat started",
		zap.String("combat", c.id),
		zap.Int("units", len(c.roster)))

	names := make([]string, len(c.roster))
	for i, u := range c.roster {
		names[i] = u.DisplayName()
	}
	if err := c.emit(&events.CombatStartedEvent{
		BaseEvent: c.base(events.EventTypeCombatStarted, "", ""),
		Units:     names,
	}); err != nil {
		return nil, err
	}

	for len(c.roster) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "combat %s interrupted", c.id)
		}

		entry, err := c.Spin()
		if err != nil {
			return nil, err
		}

		if err := c.render(); err != nil {
			return nil, err
		}

		if err := entry.dispatch(ctx, c); err != nil {
			return nil, err
		}
		c.eventCount++

		if err := c.removeDead(); err != nil {
			return nil, err
		}

		if winners, over := c.victory(c.roster); over {
			return c.finish(winners)
		}
	}

	return nil, errors.UnexpectedTermination(fmt.Sprintf("combat %s ended without a result", c.id))
}

func (c *Combat) finish(winners []string) (*Result, error) {
	if winners == nil {
		winners = []string{}
	}

	result := &Result{
		CombatID: c.id,
		Winners:  winners,
		Events:   c.eventCount,
	}
	for _, u := range c.roster {
		if u.Alive() {
			result.Survivors = append(result.Survivors, u.DisplayName())
		}
	}

	c.logger.Info("combat ended",
		zap.String("combat", c.id),
		zap.Strings("winners", winners),
		zap.Int("events", c.eventCount))

	if err := c.emit(&events.CombatEndedEvent{
		BaseEvent: c.base(events.EventTypeCombatEnded, "", ""),
		Winners:   winners,
		Events:    c.eventCount,
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Combat) handleUnitTurn(ctx context.Context, u *Unit) error {
	if !u.Alive() {
		return nil
	}

	turn, err := u.TakeTurn(ctx, c.roster, c.env)
	if err != nil {
		return err
	}
	if turn == nil {
		c.logger.Debug("unit has nothing to do", zap.String("unit", u.DisplayName()))
		return nil
	}

	c.logger.Debug("turn taken",
		zap.String("unit", u.DisplayName()),
		zap.String("command", turn.Command.ID),
		zap.String("target", turn.Target.DisplayName()),
		zap.Int("damage", turn.Immediate.Damage))

	if err := c.emit(&events.TurnTakenEvent{
		BaseEvent: c.base(events.EventTypeTurnTaken, u.DisplayName(), turn.Target.DisplayName()),
		Command:   turn.Command.ID,
		Damage:    turn.Immediate.Damage,
		Buffs:     buffNames(turn.Immediate.Buffs),
		Pending:   turn.Pending != nil,
	}); err != nil {
		return err
	}

	if turn.Pending == nil {
		return nil
	}

	c.schedule = append(c.schedule, turn.Pending)
	return c.emit(&events.ActionScheduledEvent{
		BaseEvent: c.base(events.EventTypeActionScheduled, u.DisplayName(), turn.Target.DisplayName()),
		Command:   turn.Command.ID,
		Phase:     string(turn.Pending.Phase()),
		Ticks:     turn.Pending.Remaining(),
	})
}

func (c *Combat) handleActionResolution(_ context.Context, a *Action) error {
	expiring := a.Phase() == PhaseAwaitingExpiry

	effect, err := a.Turn()
	if err != nil {
		return err
	}

	actor := ""
	if a.Caller() != nil {
		actor = a.Caller().DisplayName()
	}
	base := func(t events.EventType) events.BaseEvent {
		return c.base(t, actor, a.Target().DisplayName())
	}

	if expiring {
		c.logger.Debug("action expired",
			zap.String("command", a.Command().ID),
			zap.String("target", a.Target().DisplayName()))
		return c.emit(&events.ActionExpiredEvent{
			BaseEvent: base(events.EventTypeActionExpired),
			Command:   a.Command().ID,
			Healed:    effect.Healed,
			Buffs:     buffNames(effect.Buffs),
		})
	}

	c.logger.Debug("action resolved",
		zap.String("command", a.Command().ID),
		zap.String("target", a.Target().DisplayName()),
		zap.Int("damage", effect.Damage))
	return c.emit(&events.ActionResolvedEvent{
		BaseEvent: base(events.EventTypeActionResolved),
		Command:   a.Command().ID,
		Damage:    effect.Damage,
		Buffs:     buffNames(effect.Buffs),
	})
}

// removeDead drops dead units from the roster and the schedule, keeping the
// cursor on the same next entry
func (c *Combat) removeDead() error {
	alive := c.roster[:0]
	var dead []*Unit
	for _, u := range c.roster {
		if u.Alive() {
			alive = append(alive, u)
		} else {
			dead = append(dead, u)
		}
	}
	c.roster = alive

	for _, u := range dead {
		if idx := slices.Index(c.schedule, Schedulable(u)); idx >= 0 {
			c.schedule = slices.Delete(c.schedule, idx, idx+1)
			if idx < c.nextActive {
				c.nextActive--
			}
		}

		c.logger.Debug("unit defeated", zap.String("unit", u.DisplayName()))
		if err := c.emit(&events.UnitDefeatedEvent{
			BaseEvent: c.base(events.EventTypeUnitDefeated, u.DisplayName(), ""),
			Team:      u.Team().ID(),
		}); err != nil {
			return err
		}
	}

	if c.nextActive >= len(c.schedule) {
		c.nextActive = 0
	}
	return nil
}

func (c *Combat) render() error {
	if c.renderer == nil {
		return nil
	}
	order, err := c.UpcomingOrder(OrderListLimit)
	if err != nil {
		return err
	}
	c.renderer.RenderStatus(c.Status())
	c.renderer.RenderOrder(order)
	return nil
}

func (c *Combat) emit(event events.Event) error {
	if c.emitter == nil {
		return nil
	}
	if err := c.emitter.Emit(event); err != nil {
		return errors.Wrapf(err, "combat %s: emitting %s", c.id, event.GetType())
	}
	return nil
}

func (c *Combat) base(t events.EventType, actor, target string) events.BaseEvent {
	return events.BaseEvent{
		Type:     t,
		CombatID: c.id,
		Actor:    actor,
		Target:   target,
	}
}

func buffNames(in map[AttributeKey]int) map[string]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[string(k)] = v
	}
	return out
}
