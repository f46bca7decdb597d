package combat

import "sort"

// Team groups units into an allegiance. A team is always allied with itself.
type Team struct {
	id     string
	name   string
	allies map[string]struct{}
}

// NewTeam creates an immutable team
func NewTeam(id, name string, allies []string) *Team {
	t := &Team{
		id:     id,
		name:   name,
		allies: map[string]struct{}{id: {}},
	}
	for _, ally := range allies {
		t.allies[ally] = struct{}{}
	}
	return t
}

// ID returns the team key
func (t *Team) ID() string { return t.id }

// Name returns the human-readable team name
func (t *Team) Name() string { return t.name }

// IsAlliedWith reports whether teamID is in this team's ally list
func (t *Team) IsAlliedWith(teamID string) bool {
	_, ok := t.allies[teamID]
	return ok
}

// Allies returns the sorted ally ids, including the team itself
func (t *Team) Allies() []string {
	out := make([]string, 0, len(t.allies))
	for id := range t.allies {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// mutuallyAllied is true only when each team lists the other
func mutuallyAllied(a, b *Team) bool {
	return a.IsAlliedWith(b.ID()) && b.IsAlliedWith(a.ID())
}
