package combat

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/mine/internal/dice"
	"github.com/KirkDiggler/mine/internal/domain/shared"
	"github.com/KirkDiggler/mine/internal/errors"
)

// UnitDefinition is the validated stat block a unit is built from
type UnitDefinition struct {
	ID         string
	Name       string
	UniqueName string
	Hitpoints  int
	Defence    int
	Evasion    int
	Speed      int
	Melee      int
	Ranged     int
	Commands   []string
}

// Turn is what a unit did when its timer popped
type Turn struct {
	Command   *CommandDefinition
	Target    *Unit
	Pending   *Action // set when the action must be scheduled
	Immediate Effect
}

// Unit is a combatant. It owns its attribute counters and a recurring turn
// timer whose period is its current speed.
type Unit struct {
	id          string
	longName    string
	uniqueName  string
	displayName string
	team        *Team
	automated   bool

	hitpoints  *shared.Counter
	attributes map[AttributeKey]*shared.Counter
	attacks    map[AttributeKey]*shared.Counter

	commands []*CommandDefinition
	timer    *Timer
}

// NewUnit builds a unit from its definition. Hitpoints have no stat ceiling;
// every other attribute is capped at MaxStat.
func NewUnit(def UnitDefinition, team *Team, commands []*CommandDefinition, automated bool) *Unit {
	u := &Unit{
		id:          def.ID,
		longName:    def.Name,
		uniqueName:  def.UniqueName,
		displayName: def.ID,
		team:        team,
		automated:   automated,
		hitpoints:   shared.NewCounter(def.Hitpoints, true),
		attributes: map[AttributeKey]*shared.Counter{
			AttributeDefence: shared.NewCounterAt(MaxStat, def.Defence),
			AttributeEvasion: shared.NewCounterAt(MaxStat, def.Evasion),
			AttributeSpeed:   shared.NewCounterAt(MaxStat, def.Speed),
		},
		attacks: map[AttributeKey]*shared.Counter{
			AttributeMelee:  shared.NewCounterAt(MaxStat, def.Melee),
			AttributeRanged: shared.NewCounterAt(MaxStat, def.Ranged),
		},
		commands: commands,
	}
	u.timer = NewRecurringTimer(u.Speed)
	return u
}

// ID returns the definition key the unit was built from
func (u *Unit) ID() string { return u.id }

// LongName returns the descriptive name from the definition
func (u *Unit) LongName() string { return u.longName }

// UniqueName returns the permanent name, empty when the unit has none
func (u *Unit) UniqueName() string { return u.uniqueName }

// DisplayName returns the name this combat knows the unit by
func (u *Unit) DisplayName() string { return u.displayName }

// Team returns the unit's team
func (u *Unit) Team() *Team { return u.team }

// Automated reports whether the unit chooses its own commands
func (u *Unit) Automated() bool { return u.automated }

// SetUniqueName gives the unit a permanent name that the combat will use as
// its display name when free
func (u *Unit) SetUniqueName(name string) { u.uniqueName = name }

// Commands returns the unit's commands in offer order
func (u *Unit) Commands() []*CommandDefinition { return u.commands }

// ListCommands returns the command names joined for display
func (u *Unit) ListCommands() string {
	names := make([]string, len(u.commands))
	for i, c := range u.commands {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// Hitpoints returns the current hitpoints
func (u *Unit) Hitpoints() int { return u.hitpoints.Value() }

// MaxHitpoints returns the hitpoint ceiling
func (u *Unit) MaxHitpoints() int { return u.hitpoints.Maximum() }

// Speed returns the ticks between the unit's turns
func (u *Unit) Speed() int { return u.attributes[AttributeSpeed].Value() }

// DefenceStat returns the current defence
func (u *Unit) DefenceStat() int { return u.attributes[AttributeDefence].Value() }

// AttackStat returns the attack value for an attacking kind, zero otherwise
func (u *Unit) AttackStat(kind ActionKind) int {
	if c, ok := u.attacks[AttributeKey(kind)]; ok {
		return c.Value()
	}
	return 0
}

// Attribute returns the current value of any attribute. The aggregate attack
// key sums melee and ranged.
func (u *Unit) Attribute(key AttributeKey) (int, bool) {
	switch key {
	case AttributeHitpoints:
		return u.hitpoints.Value(), true
	case AttributeAttack:
		return u.attacks[AttributeMelee].Value() + u.attacks[AttributeRanged].Value(), true
	}
	if c, ok := u.attributes[key]; ok {
		return c.Value(), true
	}
	if c, ok := u.attacks[key]; ok {
		return c.Value(), true
	}
	return 0, false
}

// State is StateDead exactly when hitpoints are zero
func (u *Unit) State() State {
	if u.hitpoints.Value() == 0 {
		return StateDead
	}
	return StateOK
}

// Alive reports whether the unit is not dead
func (u *Unit) Alive() bool { return u.State() == StateOK }

// ApplyDamage removes up to amount hitpoints and returns how many were removed
func (u *Unit) ApplyDamage(amount int) int {
	if !u.Alive() {
		return 0
	}
	return -u.hitpoints.Reduce(amount)
}

// Heal restores up to amount hitpoints and returns how many were restored
func (u *Unit) Heal(amount int) int {
	if !u.Alive() {
		return 0
	}
	return u.hitpoints.Increase(amount)
}

// DamageFraction removes a fraction of the current hitpoints
func (u *Unit) DamageFraction(fraction float64) int {
	if !u.Alive() {
		return 0
	}
	return -u.hitpoints.ReduceFraction(fraction)
}

// HealFraction adds a fraction of the current hitpoints
func (u *Unit) HealFraction(fraction float64) int {
	if !u.Alive() {
		return 0
	}
	return u.hitpoints.IncreaseFraction(fraction)
}

// Kill drops hitpoints to zero
func (u *Unit) Kill() { u.hitpoints.Minimize() }

// Reset restores every counter to its default, reviving a dead unit
func (u *Unit) Reset() {
	u.hitpoints.Reset()
	for _, c := range u.attributes {
		c.Reset()
	}
	for _, c := range u.attacks {
		c.Reset()
	}
}

// Buff changes one attribute by amount and returns the change that actually
// applied after clamping. Only melee and ranged can be buffed, never the
// aggregate attack.
func (u *Unit) Buff(key AttributeKey, amount int) (int, error) {
	switch key {
	case AttributeAttack:
		return 0, errors.UnsupportedBuffTargetf("unit %s: attack can only be buffed through melee or ranged", u.displayName)
	case AttributeHitpoints:
		if amount < 0 {
			return -u.ApplyDamage(-amount), nil
		}
		return u.Heal(amount), nil
	}
	if c, ok := u.attributes[key]; ok {
		return c.Increase(amount), nil
	}
	if c, ok := u.attacks[key]; ok {
		return c.Increase(amount), nil
	}
	return 0, errors.UnsupportedBuffTargetf("unit %s: unknown attribute %q", u.displayName, key)
}

// Tick advances the unit's turn timer
func (u *Unit) Tick() TickResult { return u.timer.Tick() }

// TimeToTurn returns the ticks until the unit next acts
func (u *Unit) TimeToTurn() int { return u.timer.Remaining() }

func (u *Unit) dispatch(ctx context.Context, h eventHandler) error {
	return h.handleUnitTurn(ctx, u)
}

// TakeTurn chooses a command and target and activates it. Only commands that
// target the caller or have a legal target in roster are offered; a unit with
// nothing to offer passes and TakeTurn returns nil.
func (u *Unit) TakeTurn(ctx context.Context, roster []*Unit, env Env) (*Turn, error) {
	offered := u.offerable(roster)
	if len(offered) == 0 {
		return nil, nil
	}

	command, err := u.chooseCommand(ctx, offered, env)
	if err != nil {
		return nil, err
	}

	target := u
	if !command.SelfOnly {
		target, err = command.ChooseTarget(ctx, roster, u.team, u.automated, env)
		if err != nil {
			return nil, err
		}
	}

	pending, effect, err := command.Activate(u, target, env.Roller)
	if err != nil {
		return nil, errors.Wrapf(err, "%s using %s", u.displayName, command.ID)
	}

	return &Turn{
		Command:   command,
		Target:    target,
		Pending:   pending,
		Immediate: effect,
	}, nil
}

func (u *Unit) offerable(roster []*Unit) []*CommandDefinition {
	var out []*CommandDefinition
	for _, c := range u.commands {
		if c.SelfOnly || len(c.LegalTargets(roster, u.team)) > 0 {
			out = append(out, c)
		}
	}
	return out
}

func (u *Unit) chooseCommand(ctx context.Context, offered []*CommandDefinition, env Env) (*CommandDefinition, error) {
	if u.automated {
		if env.Roller == nil {
			return nil, errors.Internalf("no roller available to choose a command")
		}
		idx, err := dice.Pick(env.Roller, len(offered))
		if err != nil {
			return nil, errors.Wrapf(err, "choosing command for %s", u.displayName)
		}
		return offered[idx], nil
	}

	if env.Selector == nil {
		return nil, errors.Internalf("no selector available for an interactive unit")
	}
	options := make([]string, len(offered))
	for i, c := range offered {
		options[i] = c.Name
	}
	idx, err := env.Selector.Select(ctx, fmt.Sprintf("%s, choose a command", u.displayName), options)
	if err != nil {
		return nil, errors.Wrapf(err, "selecting command for %s", u.displayName)
	}
	if idx < 0 || idx >= len(offered) {
		return nil, errors.InvalidArgumentf("selection %d out of range", idx)
	}
	return offered[idx], nil
}
