package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mine/internal/console"
	"github.com/KirkDiggler/mine/internal/domain/combat"
	mineerr "github.com/KirkDiggler/mine/internal/errors"
)

func TestPrompter_MatchesIgnoringCase(t *testing.T) {
	var out bytes.Buffer
	p := console.NewPrompter(strings.NewReader("ARMOUR\n"), &out)

	idx, err := p.Select(context.Background(), "mech0, choose a command", []string{"Attack", "Armour", "Pass"})
	require.NoError(t, err)

	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "mech0, choose a command [Attack, Armour, Pass]: ")
}

func TestPrompter_RepromptsOnGarbage(t *testing.T) {
	var out bytes.Buffer
	p := console.NewPrompter(strings.NewReader("\nkick\n  pass  \n"), &out)

	idx, err := p.Select(context.Background(), "choose", []string{"Attack", "Pass"})
	require.NoError(t, err)

	assert.Equal(t, 1, idx)
	assert.Equal(t, 3, strings.Count(out.String(), "choose ["))
	assert.Contains(t, out.String(), `"kick" is not one of the options.`)
}

func TestPrompter_FailsWhenInputEnds(t *testing.T) {
	p := console.NewPrompter(strings.NewReader("kick\n"), &bytes.Buffer{})

	_, err := p.Select(context.Background(), "choose", []string{"Attack"})
	require.Error(t, err)
	assert.True(t, mineerr.IsInvalidArgument(err))
}

func TestPrompter_StopsWhenCancelled(t *testing.T) {
	p := console.NewPrompter(strings.NewReader("attack\n"), &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Select(ctx, "choose", []string{"Attack"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer(t *testing.T) {
	var out bytes.Buffer
	r := console.NewRenderer(&out)

	r.RenderStatus([]combat.UnitStatus{
		{Name: "Ironside", Team: "rebels", Hitpoints: 120, MaxHitpoints: 150, State: combat.StateOK},
		{Name: "drone0", Team: "autoarmy", Hitpoints: 0, MaxHitpoints: 60, State: combat.StateDead},
	})
	r.RenderOrder([]string{"Ironside", "drone1"})

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "Ironside  rebels    120/150  OK", lines[0])
	assert.Equal(t, "drone0    autoarmy  0/60     Dead", lines[1])
	assert.Equal(t, "Next: Ironside > drone1", lines[2])
}
