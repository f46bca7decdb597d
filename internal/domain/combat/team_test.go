package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/mine/internal/domain/combat"
)

func TestTeam_AlwaysAlliedWithItself(t *testing.T) {
	team := combat.NewTeam("rebels", "Rebel Alliance", []string{"wildcards"})

	assert.True(t, team.IsAlliedWith("rebels"))
	assert.True(t, team.IsAlliedWith("wildcards"))
	assert.False(t, team.IsAlliedWith("autoarmy"))
	assert.Equal(t, []string{"rebels", "wildcards"}, team.Allies())
	assert.Equal(t, "Rebel Alliance", team.Name())
}

func TestTeam_DuplicateSelfAlly(t *testing.T) {
	team := combat.NewTeam("rebels", "Rebels", []string{"rebels"})
	assert.Equal(t, []string{"rebels"}, team.Allies())
}
