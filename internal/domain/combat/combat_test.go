package combat_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/mine/internal/dice"
	mockdice "github.com/KirkDiggler/mine/internal/dice/mock"
	"github.com/KirkDiggler/mine/internal/domain/combat"
	mockcombat "github.com/KirkDiggler/mine/internal/domain/combat/mocks"
	mineerr "github.com/KirkDiggler/mine/internal/errors"
	"github.com/KirkDiggler/mine/internal/events"
)

func TestNew_Validation(t *testing.T) {
	_, err := combat.New(nil)
	assert.True(t, mineerr.IsInvalidArgument(err))

	_, err = combat.New(&combat.Config{})
	assert.True(t, mineerr.IsInvalidArgument(err))

	orphan := newUnit("drone", nil, unitOpts{})
	_, err = combat.New(&combat.Config{Units: []*combat.Unit{orphan}})
	assert.True(t, mineerr.IsInvalidArgument(err))
}

func TestNew_UniqueDisplayNames(t *testing.T) {
	units := make([]*combat.Unit, 100)
	for i := range units {
		units[i] = newUnit("drone", autoarmy, unitOpts{})
	}
	units[45].SetUniqueName("X")
	units[77].SetUniqueName("X")

	_, err := combat.New(&combat.Config{Units: units})
	require.NoError(t, err)

	assert.Equal(t, "drone0", units[0].DisplayName())
	assert.Equal(t, "X", units[45].DisplayName())
	assert.Equal(t, "X1", units[77].DisplayName())
	assert.Equal(t, "drone97", units[99].DisplayName())

	seen := make(map[string]bool)
	for _, u := range units {
		assert.False(t, seen[u.DisplayName()], "duplicate name %s", u.DisplayName())
		seen[u.DisplayName()] = true
	}
	assert.Len(t, seen, 100)
}

func TestSpin_AlternatesDistinctSpeeds(t *testing.T) {
	mech := newUnit("mech", rebels, unitOpts{speed: 3})
	drone := newUnit("drone", autoarmy, unitOpts{speed: 4})

	c, err := combat.New(&combat.Config{Units: []*combat.Unit{mech, drone}})
	require.NoError(t, err)

	want := []*combat.Unit{mech, drone, mech, drone, mech}
	var previous combat.Schedulable
	for i, expected := range want {
		before := c.ActiveList()

		next, err := c.Spin()
		require.NoError(t, err)

		assert.Same(t, expected, next, "spin %d", i)
		assert.NotEqual(t, previous, next)
		assert.NotSame(t, before[0], c.ActiveList()[0], "the rotated view moves on")
		previous = next
	}
}

func TestUpcomingOrder(t *testing.T) {
	mech := newUnit("mech", rebels, unitOpts{speed: 3})
	drone := newUnit("drone", autoarmy, unitOpts{speed: 4})
	tank := newUnit("tank", autoarmy, unitOpts{speed: 5})

	c, err := combat.New(&combat.Config{Units: []*combat.Unit{mech, drone, tank}})
	require.NoError(t, err)

	order, err := c.UpcomingOrder(combat.OrderListLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"mech0", "drone0", "tank0"}, order, "never more names than living units")

	order, err = c.UpcomingOrder(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"mech0", "drone0"}, order)

	_, err = c.Spin()
	require.NoError(t, err)

	drone.Kill()
	order, err = c.UpcomingOrder(combat.OrderListLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"tank0", "mech0"}, order)
}

func TestStatus(t *testing.T) {
	mech := newUnit("mech", rebels, unitOpts{hitpoints: 120})
	mech.ApplyDamage(20)
	drone := newUnit("drone", autoarmy, unitOpts{})
	drone.Kill()

	c, err := combat.New(&combat.Config{Units: []*combat.Unit{mech, drone}})
	require.NoError(t, err)

	assert.Equal(t, []combat.UnitStatus{
		{Name: "mech0", Team: "rebels", Hitpoints: 100, MaxHitpoints: 120, State: combat.StateOK},
		{Name: "drone0", Team: "autoarmy", Hitpoints: 0, MaxHitpoints: 100, State: combat.StateDead},
	}, c.Status())
}

func TestDeathmatch(t *testing.T) {
	mech := newUnit("mech", rebels, unitOpts{})
	drone := newUnit("drone", autoarmy, unitOpts{})
	scout := newUnit("scout", wildcards, unitOpts{})

	winners, over := combat.Deathmatch([]*combat.Unit{mech, drone})
	assert.False(t, over)
	assert.Nil(t, winners)

	// wildcards list rebels, but rebels do not list wildcards
	_, over = combat.Deathmatch([]*combat.Unit{mech, scout})
	assert.False(t, over)

	friends := combat.NewTeam("friends", "Friends", []string{"wildcards"})
	friend := newUnit("friend", friends, unitOpts{})
	friendly := combat.NewTeam("wildcards", "Wildcards", []string{"friends"})
	pal := newUnit("pal", friendly, unitOpts{})

	winners, over = combat.Deathmatch([]*combat.Unit{friend, pal})
	assert.True(t, over)
	assert.Equal(t, []string{"friends", "wildcards"}, winners)

	drone.Kill()
	winners, over = combat.Deathmatch([]*combat.Unit{mech, drone})
	assert.True(t, over)
	assert.Equal(t, []string{"rebels"}, winners)

	mech.Kill()
	winners, over = combat.Deathmatch([]*combat.Unit{mech, drone})
	assert.True(t, over)
	assert.NotNil(t, winners)
	assert.Empty(t, winners)
}

func TestRun_SurvivorWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mockcombat.NewMockRenderer(ctrl)

	mech := newUnit("mech", rebels, unitOpts{speed: 3, automated: true}, attackCommand())
	drone := newUnit("drone", autoarmy, unitOpts{speed: 4, automated: true}, attackCommand())
	drone.Kill()

	renderer.EXPECT().RenderStatus(gomock.Len(2))
	renderer.EXPECT().RenderOrder([]string{"mech0"})

	c, err := combat.New(&combat.Config{
		ID:       "combat-1",
		Units:    []*combat.Unit{mech, drone},
		Env:      combat.Env{Roller: mockdice.NewManualMockRoller()},
		Renderer: renderer,
	})
	require.NoError(t, err)

	result, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "combat-1", result.CombatID)
	assert.Equal(t, []string{"rebels"}, result.Winners)
	assert.Equal(t, []string{"mech0"}, result.Survivors)
	assert.Equal(t, 1, result.Events)
	assert.Len(t, c.Roster(), 1)
}

func TestRun_Annihilation(t *testing.T) {
	mech := newUnit("mech", rebels, unitOpts{automated: true}, attackCommand())
	drone := newUnit("drone", autoarmy, unitOpts{automated: true}, attackCommand())
	mech.Kill()
	drone.Kill()

	c, err := combat.New(&combat.Config{
		Units: []*combat.Unit{mech, drone},
		Env:   combat.Env{Roller: mockdice.NewManualMockRoller()},
	})
	require.NoError(t, err)

	result, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, result.Winners)
	assert.Empty(t, result.Winners)
	assert.Empty(t, result.Survivors)
}

func TestRun_DelayedActionThroughSchedule(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	// mech picks slam and its target, drone passes, slam rolls damage
	roller.SetRolls([]int{1, 1, 1, evenRoll})

	slam := &combat.CommandDefinition{
		ID:        "slam",
		Name:      "Slam",
		Kind:      combat.ActionKindMelee,
		Amount:    200,
		Offensive: true,
		Delay:     2,
	}

	mech := newUnit("mech", rebels, unitOpts{speed: 3, melee: 20, automated: true}, slam)
	drone := newUnit("drone", autoarmy, unitOpts{speed: 4, automated: true}, passCommand())

	bus := events.NewBus()
	recorder := &recordingListener{}
	bus.SubscribeAll(recorder)

	c, err := combat.New(&combat.Config{
		ID:     "combat-2",
		Units:  []*combat.Unit{mech, drone},
		Env:    combat.Env{Roller: roller},
		Events: bus,
	})
	require.NoError(t, err)

	result, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"rebels"}, result.Winners)
	assert.Equal(t, 3, result.Events)
	assert.Equal(t, 0, roller.Remaining())

	assert.Equal(t, []events.EventType{
		events.EventTypeCombatStarted,
		events.EventTypeTurnTaken,
		events.EventTypeActionScheduled,
		events.EventTypeTurnTaken,
		events.EventTypeActionResolved,
		events.EventTypeUnitDefeated,
		events.EventTypeCombatEnded,
	}, recorder.types())

	resolved := recorder.received[4].(*events.ActionResolvedEvent)
	assert.Equal(t, "combat-2", resolved.GetCombatID())
	assert.Equal(t, "mech0", resolved.GetActor())
	assert.Equal(t, "drone0", resolved.GetTarget())
	assert.Equal(t, 100, resolved.Damage)
}

func TestRun_RandomSkirmishFinishes(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		mech := newUnit("mech", rebels, unitOpts{speed: 4, melee: 20, automated: true},
			attackCommand(), armourCommand(20, 2), passCommand())
		drone := newUnit("drone", autoarmy, unitOpts{speed: 3, melee: 10, automated: true},
			attackCommand(), passCommand())

		c, err := combat.New(&combat.Config{
			Units: []*combat.Unit{mech, drone},
			Env:   combat.Env{Roller: dice.NewRandomRoller(seed)},
		})
		require.NoError(t, err)

		result, err := c.Run(context.Background())
		require.NoError(t, err, "seed %d", seed)
		assert.Len(t, result.Winners, 1, "seed %d", seed)
		assert.Positive(t, result.Events)
	}
}

func TestRun_NoResultIsUnexpected(t *testing.T) {
	mech := newUnit("mech", rebels, unitOpts{automated: true}, attackCommand())
	mech.Kill()

	c, err := combat.New(&combat.Config{
		Units:   []*combat.Unit{mech},
		Env:     combat.Env{Roller: mockdice.NewManualMockRoller()},
		Victory: func([]*combat.Unit) ([]string, bool) { return nil, false },
	})
	require.NoError(t, err)

	_, err = c.Run(context.Background())
	require.Error(t, err)
	assert.True(t, mineerr.IsUnexpectedTermination(err))
}

func TestRun_Cancelled(t *testing.T) {
	mech := newUnit("mech", rebels, unitOpts{automated: true}, attackCommand())
	drone := newUnit("drone", autoarmy, unitOpts{automated: true}, attackCommand())

	c, err := combat.New(&combat.Config{
		Units: []*combat.Unit{mech, drone},
		Env:   combat.Env{Roller: mockdice.NewManualMockRoller()},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Run(ctx)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, context.Canceled))
}

func TestRun_ListenerFailureAborts(t *testing.T) {
	bus := events.NewBus()
	bus.Subscribe(events.EventTypeCombatStarted, &recordingListener{err: stderrors.New("log full")})

	mech := newUnit("mech", rebels, unitOpts{automated: true}, attackCommand())
	c, err := combat.New(&combat.Config{Units: []*combat.Unit{mech}, Events: bus})
	require.NoError(t, err)

	_, err = c.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log full")
}

type recordingListener struct {
	received []events.Event
	err      error
}

func (l *recordingListener) ID() string    { return "recorder" }
func (l *recordingListener) Priority() int { return events.PriorityRecording }
func (l *recordingListener) HandleEvent(e events.Event) error {
	l.received = append(l.received, e)
	return l.err
}

func (l *recordingListener) types() []events.EventType {
	out := make([]events.EventType, len(l.received))
	for i, e := range l.received {
		out[i] = e.GetType()
	}
	return out
}
