package combat

//go:generate mockgen -destination=mocks/mock_collaborators.go -package=mockcombat -source=collaborators.go

import (
	"context"

	"github.com/KirkDiggler/mine/internal/dice"
)

// Selector asks a person to pick one of options. It returns the chosen index
// and only fails when no answer can ever be produced.
type Selector interface {
	Select(ctx context.Context, prompt string, options []string) (int, error)
}

// UnitStatus is the plain data a renderer needs for one unit
type UnitStatus struct {
	Name         string
	Team         string
	Hitpoints    int
	MaxHitpoints int
	State        State
}

// Renderer presents combat state. The core never formats anything itself.
type Renderer interface {
	RenderStatus(status []UnitStatus)
	RenderOrder(names []string)
}

// Env carries the collaborators a turn may need
type Env struct {
	Roller   dice.Roller
	Selector Selector // only consulted for units that are not automated
}
