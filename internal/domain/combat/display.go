package combat

import "github.com/KirkDiggler/mine/internal/errors"

// ActiveList returns the schedule rotated so the next entry to be checked
// comes first. It does not change the schedule.
func (c *Combat) ActiveList() []Schedulable {
	out := make([]Schedulable, 0, len(c.schedule))
	out = append(out, c.schedule[c.nextActive:]...)
	return append(out, c.schedule[:c.nextActive]...)
}

// UpcomingOrder returns the display names of the next distinct living
// entries, at most limit and never more than there are living units
func (c *Combat) UpcomingOrder(limit int) ([]string, error) {
	living := 0
	for _, u := range c.roster {
		if u.Alive() {
			living++
		}
	}

	n := min(limit, living)
	if n > len(c.schedule) {
		return nil, errors.DisplayInvariantf("combat %s: %d names requested from a schedule of %d", c.id, n, len(c.schedule))
	}

	names := make([]string, 0, n)
	seen := make(map[string]bool, n)
	for _, entry := range c.ActiveList() {
		if len(names) == n {
			break
		}
		if !entry.Alive() || seen[entry.DisplayName()] {
			continue
		}
		seen[entry.DisplayName()] = true
		names = append(names, entry.DisplayName())
	}
	return names, nil
}

// Status returns the renderer's view of every unit in the roster
func (c *Combat) Status() []UnitStatus {
	out := make([]UnitStatus, len(c.roster))
	for i, u := range c.roster {
		out[i] = UnitStatus{
			Name:         u.DisplayName(),
			Team:         u.Team().ID(),
			Hitpoints:    u.Hitpoints(),
			MaxHitpoints: u.MaxHitpoints(),
			State:        u.State(),
		}
	}
	return out
}
