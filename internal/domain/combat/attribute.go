package combat

// AttributeKey names a unit attribute that commands can read or buff
type AttributeKey string

const (
	AttributeHitpoints AttributeKey = "hitpoints"
	AttributeDefence   AttributeKey = "defence"
	AttributeEvasion   AttributeKey = "evasion"
	AttributeSpeed     AttributeKey = "speed"
	AttributeAttack    AttributeKey = "attack" // aggregate of melee and ranged, never buffed directly
	AttributeMelee     AttributeKey = "melee"
	AttributeRanged    AttributeKey = "ranged"
)

// MaxStat caps every attribute except hitpoints
const MaxStat = 100

// MaxAmount bounds command amounts and definition numbers
const MaxAmount = 1_000_000

// Valid reports whether k is a known attribute
func (k AttributeKey) Valid() bool {
	switch k {
	case AttributeHitpoints, AttributeDefence, AttributeEvasion, AttributeSpeed,
		AttributeAttack, AttributeMelee, AttributeRanged:
		return true
	}
	return false
}

// ActionKind selects how a command resolves
type ActionKind string

const (
	ActionKindMelee    ActionKind = "melee"
	ActionKindRanged   ActionKind = "ranged"
	ActionKindBuff     ActionKind = "buff"
	ActionKindInactive ActionKind = "inactive"
)

// Valid reports whether k is one of the four recognized kinds
func (k ActionKind) Valid() bool {
	switch k {
	case ActionKindMelee, ActionKindRanged, ActionKindBuff, ActionKindInactive:
		return true
	}
	return false
}

// IsAttack reports whether k deals damage
func (k ActionKind) IsAttack() bool {
	return k == ActionKindMelee || k == ActionKindRanged
}

// State is a unit's derived life state
type State string

const (
	StateOK   State = "OK"
	StateDead State = "Dead"
)
