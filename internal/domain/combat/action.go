package combat

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/mine/internal/dice"
	"github.com/KirkDiggler/mine/internal/errors"
)

// Damage variance, in percent of the caller's attack stat
const (
	MinDamageRoll = 75
	MaxDamageRoll = 125
)

// Phase is where an action sits in its lifecycle
type Phase string

const (
	PhaseImmediate      Phase = "immediate"
	PhaseAwaitingDelay  Phase = "awaiting_delay"
	PhaseAwaitingExpiry Phase = "awaiting_expiry"
	PhaseDone           Phase = "done"
)

// Effect describes one application or reversal of an action
type Effect struct {
	Damage int                  // hitpoints removed from the target
	Healed int                  // hitpoints given back on expiry
	Buffs  map[AttributeKey]int // actual per-attribute change
}

// IsZero reports whether nothing changed
func (e Effect) IsZero() bool {
	return e.Damage == 0 && e.Healed == 0 && len(e.Buffs) == 0
}

// Action is a live command between a caller and a target. Delayed actions
// resolve when their delay timer pops; actions with an expiry are reverted
// when the expiry timer pops, by exactly the change they recorded.
type Action struct {
	command *CommandDefinition
	caller  *Unit
	target  *Unit
	roller  dice.Roller

	phase     Phase
	timer     *Timer
	armExpiry bool

	damage int
	buffs  map[AttributeKey]int
}

func newAction(command *CommandDefinition, caller, target *Unit, roller dice.Roller) *Action {
	return &Action{
		command: command,
		caller:  caller,
		target:  target,
		roller:  roller,
		phase:   PhaseImmediate,
	}
}

// Command returns the definition the action was activated from
func (a *Action) Command() *CommandDefinition { return a.command }

// Caller returns the unit that used the command, nil when there is none
func (a *Action) Caller() *Unit { return a.caller }

// Target returns the unit the action applies to
func (a *Action) Target() *Unit { return a.target }

// Phase returns where the action is in its lifecycle
func (a *Action) Phase() Phase { return a.phase }

// Remaining returns the ticks left on the active timer
func (a *Action) Remaining() int {
	if a.timer == nil {
		return 0
	}
	return a.timer.Remaining()
}

// DisplayName names the action in turn order listings
func (a *Action) DisplayName() string {
	if a.caller == nil {
		return a.command.Name
	}
	return fmt.Sprintf("%s (%s)", a.command.Name, a.caller.DisplayName())
}

// Alive reports whether the action still has a transition to make
func (a *Action) Alive() bool { return a.phase != PhaseDone }

// Tick drives the active timer. A delay that must be followed by an expiry
// pops without leaving the schedule.
func (a *Action) Tick() TickResult {
	if a.phase == PhaseDone || a.timer == nil {
		return TickPopDie
	}

	result := a.timer.Tick()
	if result == TickSilent {
		return TickSilent
	}
	if a.phase == PhaseAwaitingDelay && a.armExpiry {
		return TickPop
	}
	return TickPopDie
}

// Turn performs the pending transition: a delayed action resolves (arming its
// expiry if it has one), an expiring action reverts and finishes.
func (a *Action) Turn() (Effect, error) {
	switch a.phase {
	case PhaseAwaitingDelay:
		effect, err := a.resolve()
		if err != nil {
			a.phase = PhaseDone
			return Effect{}, err
		}
		if a.armExpiry {
			a.phase = PhaseAwaitingExpiry
			a.timer = NewTimer(a.command.Expiry)
		} else {
			a.phase = PhaseDone
		}
		return effect, nil

	case PhaseAwaitingExpiry:
		effect, err := a.revert()
		a.phase = PhaseDone
		return effect, err

	default:
		return Effect{}, errors.Internalf("action %s has nothing pending in phase %s", a.command.ID, a.phase)
	}
}

func (a *Action) dispatch(ctx context.Context, h eventHandler) error {
	return h.handleActionResolution(ctx, a)
}

func (a *Action) resolve() (Effect, error) {
	switch kind := a.command.Kind; {
	case kind == ActionKindInactive:
		return Effect{}, nil

	case kind.IsAttack():
		amount, err := a.damageAmount()
		if err != nil {
			return Effect{}, err
		}
		a.damage = a.target.ApplyDamage(amount)
		return Effect{Damage: a.damage}, nil

	case kind == ActionKindBuff:
		a.buffs = make(map[AttributeKey]int)
		for _, key := range a.command.Buffs {
			delta, err := a.target.Buff(key, a.command.Amount)
			if err != nil {
				return Effect{}, err
			}
			if delta != 0 {
				a.buffs[key] = delta
			}
		}
		return Effect{Buffs: copyBuffs(a.buffs)}, nil

	default:
		return Effect{}, errors.UnrecognizedActionKindf("command %s has action kind %q", a.command.ID, kind)
	}
}

func (a *Action) revert() (Effect, error) {
	switch kind := a.command.Kind; {
	case kind == ActionKindInactive:
		return Effect{}, nil

	case kind.IsAttack():
		return Effect{Healed: a.target.Heal(a.damage)}, nil

	case kind == ActionKindBuff:
		reverted := make(map[AttributeKey]int)
		for _, key := range a.command.Buffs {
			delta, ok := a.buffs[key]
			if !ok {
				continue
			}
			applied, err := a.target.Buff(key, -delta)
			if err != nil {
				return Effect{}, err
			}
			if applied != 0 {
				reverted[key] = applied
			}
		}
		return Effect{Buffs: reverted}, nil

	default:
		return Effect{}, errors.UnrecognizedActionKindf("command %s has action kind %q", a.command.ID, kind)
	}
}

// damageAmount computes
//
//	floor((base + attack*roll/100) * (1 - defence/100))
//
// in integers. The defence is the caller's own, as the game has always played.
func (a *Action) damageAmount() (int, error) {
	base := min(max(a.command.Amount, -MaxAmount), MaxAmount)
	if a.caller == nil {
		return base, nil
	}
	if a.roller == nil {
		return 0, errors.Internalf("no roller available to resolve %s", a.command.ID)
	}

	roll, err := dice.Between(a.roller, MinDamageRoll, MaxDamageRoll)
	if err != nil {
		return 0, errors.Wrapf(err, "rolling damage for %s", a.command.ID)
	}

	attack := int64(a.caller.AttackStat(a.command.Kind))
	defence := int64(a.caller.DefenceStat())

	damage := (int64(base)*100 + attack*int64(roll)) * (MaxStat - defence) / (100 * MaxStat)
	if damage < 0 {
		damage = 0
	}
	return int(damage), nil
}

func copyBuffs(in map[AttributeKey]int) map[AttributeKey]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[AttributeKey]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
