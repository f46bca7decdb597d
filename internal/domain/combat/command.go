package combat

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/mine/internal/dice"
	"github.com/KirkDiggler/mine/internal/errors"
)

// CommandDefinition describes one combat command. It is built once from
// definitions and shared read-only by every action that uses it.
type CommandDefinition struct {
	ID                string
	Name              string
	Description       string
	Kind              ActionKind
	Amount            int
	SelfOnly          bool
	Offensive         bool
	Delay             int // ticks before the effect lands
	Expiry            int // ticks after the effect before it is undone
	DelayDescription  string
	ExpiryDescription string
	Buffs             []AttributeKey // meaningful only for ActionKindBuff
}

// Validate checks the definition is usable
func (c *CommandDefinition) Validate() error {
	if c.ID == "" {
		return errors.Configurationf("command id is required")
	}
	if !c.Kind.Valid() {
		return errors.Configurationf("command %s: unrecognized action kind %q", c.ID, c.Kind).
			WithMeta("command", c.ID)
	}
	if c.Amount < -MaxAmount || c.Amount > MaxAmount {
		return errors.Configurationf("command %s: amount %d is outside [-%d, %d]", c.ID, c.Amount, MaxAmount, MaxAmount).
			WithMeta("command", c.ID)
	}
	if c.Delay < 0 || c.Expiry < 0 {
		return errors.Configurationf("command %s: delay and expiry must not be negative", c.ID).
			WithMeta("command", c.ID)
	}
	if c.Kind != ActionKindBuff && len(c.Buffs) > 0 {
		return errors.Configurationf("command %s: buffs are only valid on buff commands", c.ID).
			WithMeta("command", c.ID)
	}
	if c.Kind == ActionKindBuff && len(c.Buffs) == 0 {
		return errors.Configurationf("command %s: buff command names no attributes", c.ID).
			WithMeta("command", c.ID)
	}
	for _, key := range c.Buffs {
		if !key.Valid() {
			return errors.Configurationf("command %s: unknown attribute %q", c.ID, key).
				WithMeta("command", c.ID)
		}
		if key == AttributeAttack {
			return errors.Configurationf("command %s: buff melee or ranged instead of attack", c.ID).
				WithMeta("command", c.ID)
		}
	}
	return nil
}

// LegalTargets filters pool to the living units this command may target.
// Offensive commands target teams the caller is not allied with, the rest
// target allied teams (the caller's own included).
func (c *CommandDefinition) LegalTargets(pool []*Unit, callerTeam *Team) []*Unit {
	var out []*Unit
	for _, u := range pool {
		if !u.Alive() {
			continue
		}
		allied := callerTeam.IsAlliedWith(u.Team().ID())
		if allied != c.Offensive {
			out = append(out, u)
		}
	}
	return out
}

// ChooseTarget picks the target for this command. Automated callers pick
// uniformly among the legal targets; people are offered the whole pool.
func (c *CommandDefinition) ChooseTarget(ctx context.Context, pool []*Unit, callerTeam *Team, automated bool, env Env) (*Unit, error) {
	if !automated {
		return c.selectTarget(ctx, pool, env)
	}

	candidates := c.LegalTargets(pool, callerTeam)
	if len(candidates) == 0 {
		return nil, errors.EmptyTargetPoolf("command %s has no legal targets for team %s", c.ID, callerTeam.ID()).
			WithMeta("command", c.ID)
	}
	if env.Roller == nil {
		return nil, errors.Internalf("no roller available to choose a target")
	}

	idx, err := dice.Pick(env.Roller, len(candidates))
	if err != nil {
		return nil, errors.Wrapf(err, "choosing target for %s", c.ID)
	}
	return candidates[idx], nil
}

func (c *CommandDefinition) selectTarget(ctx context.Context, pool []*Unit, env Env) (*Unit, error) {
	if len(pool) == 0 {
		return nil, errors.EmptyTargetPoolf("command %s has no targets to offer", c.ID).
			WithMeta("command", c.ID)
	}
	if env.Selector == nil {
		return nil, errors.Internalf("no selector available for an interactive unit")
	}

	options := make([]string, len(pool))
	for i, u := range pool {
		options[i] = u.DisplayName()
	}

	idx, err := env.Selector.Select(ctx, fmt.Sprintf("Target for %s", c.Name), options)
	if err != nil {
		return nil, errors.Wrapf(err, "selecting target for %s", c.ID)
	}
	if idx < 0 || idx >= len(pool) {
		return nil, errors.InvalidArgumentf("selection %d out of range", idx)
	}
	return pool[idx], nil
}

// Activate applies this command from caller to target. The returned action is
// non-nil only when it has a delay or expiry and must be scheduled; the effect
// reports whatever was applied right away.
func (c *CommandDefinition) Activate(caller, target *Unit, roller dice.Roller) (*Action, Effect, error) {
	if target == nil {
		return nil, Effect{}, errors.InvalidArgumentf("command %s activated without a target", c.ID)
	}

	a := newAction(c, caller, target, roller)

	switch {
	case c.Delay == 0 && c.Expiry == 0:
		effect, err := a.resolve()
		a.phase = PhaseDone
		if err != nil {
			return nil, Effect{}, err
		}
		return nil, effect, nil

	case c.Delay > 0:
		a.phase = PhaseAwaitingDelay
		a.timer = NewTimer(c.Delay)
		a.armExpiry = c.Expiry > 0
		return a, Effect{}, nil

	default:
		effect, err := a.resolve()
		if err != nil {
			a.phase = PhaseDone
			return nil, Effect{}, err
		}
		a.phase = PhaseAwaitingExpiry
		a.timer = NewTimer(c.Expiry)
		return a, effect, nil
	}
}
