package combat_test

import (
	"github.com/KirkDiggler/mine/internal/domain/combat"
)

var (
	rebels    = combat.NewTeam("rebels", "Rebel Alliance", nil)
	autoarmy  = combat.NewTeam("autoarmy", "Automated Army", nil)
	wildcards = combat.NewTeam("wildcards", "Wildcards", []string{"rebels"})
)

func attackCommand() *combat.CommandDefinition {
	return &combat.CommandDefinition{
		ID:        "attack",
		Name:      "Attack",
		Kind:      combat.ActionKindMelee,
		Amount:    10,
		Offensive: true,
	}
}

func passCommand() *combat.CommandDefinition {
	return &combat.CommandDefinition{
		ID:       "pass",
		Name:     "Pass",
		Kind:     combat.ActionKindInactive,
		SelfOnly: true,
	}
}

func armourCommand(amount, expiry int) *combat.CommandDefinition {
	return &combat.CommandDefinition{
		ID:       "armour",
		Name:     "Armour",
		Kind:     combat.ActionKindBuff,
		Amount:   amount,
		SelfOnly: true,
		Expiry:   expiry,
		Buffs:    []combat.AttributeKey{combat.AttributeDefence},
	}
}

type unitOpts struct {
	hitpoints int
	defence   int
	speed     int
	melee     int
	ranged    int
	automated bool
}

func newUnit(id string, team *combat.Team, opts unitOpts, commands ...*combat.CommandDefinition) *combat.Unit {
	if opts.hitpoints == 0 {
		opts.hitpoints = 100
	}
	if opts.speed == 0 {
		opts.speed = 5
	}
	return combat.NewUnit(combat.UnitDefinition{
		ID:        id,
		Name:      id,
		Hitpoints: opts.hitpoints,
		Defence:   opts.defence,
		Speed:     opts.speed,
		Melee:     opts.melee,
		Ranged:    opts.ranged,
	}, team, commands, opts.automated)
}
