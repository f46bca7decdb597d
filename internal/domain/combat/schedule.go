package combat

import "context"

// Schedulable is an entry in the turn order: a unit waiting for its turn or
// an action waiting to resolve or expire. The set of implementations is
// closed so that dispatch covers every kind of entry.
type Schedulable interface {
	Tick() TickResult
	DisplayName() string
	Alive() bool

	dispatch(ctx context.Context, h eventHandler) error
}

// eventHandler receives one call per kind of schedulable entry
type eventHandler interface {
	handleUnitTurn(ctx context.Context, u *Unit) error
	handleActionResolution(ctx context.Context, a *Action) error
}

var (
	_ Schedulable = (*Unit)(nil)
	_ Schedulable = (*Action)(nil)
)
