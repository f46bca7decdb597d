package combat

// VictoryCondition inspects the roster after every event. It returns the
// winning team ids and true once the combat is over; an empty winner list
// means nobody survived.
type VictoryCondition func(roster []*Unit) ([]string, bool)

// Deathmatch ends the combat once no two surviving teams are enemies. Every
// surviving team wins, in roster order.
func Deathmatch(roster []*Unit) ([]string, bool) {
	var teams []*Team
	seen := make(map[string]bool)
	for _, u := range roster {
		if !u.Alive() || seen[u.Team().ID()] {
			continue
		}
		seen[u.Team().ID()] = true
		teams = append(teams, u.Team())
	}

	for i := range teams {
		for j := i + 1; j < len(teams); j++ {
			if !mutuallyAllied(teams[i], teams[j]) {
				return nil, false
			}
		}
	}

	winners := make([]string, 0, len(teams))
	for _, t := range teams {
		winners = append(winners, t.ID())
	}
	return winners, true
}
