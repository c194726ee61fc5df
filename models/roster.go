package models

import "fmt"

// Roster represents one team's game-ready roster: an ordered batting
// lineup, the starting pitcher, and the defensive alignment.
type Roster struct {
	TeamID          string    `json:"team_id"`
	TeamName        string    `json:"team_name"`
	Lineup          []Batter  `json:"lineup"`
	StartingPitcher Pitcher   `json:"starting_pitcher"`
	Fielders        []Fielder `json:"fielders"`
}

// NewRoster builds a validated roster. Structural problems (empty lineup,
// duplicate identities, the pitcher batting) error immediately; a lineup
// shorter than nine is degenerate but allowed, the engine wraps whatever
// length it is given.
func NewRoster(teamID, teamName string, lineup []Batter, pitcher Pitcher, fielders []Fielder) (*Roster, error) {
	if len(lineup) == 0 {
		return nil, fmt.Errorf("roster for team %s has an empty lineup", teamID)
	}

	seen := make(map[string]bool, len(lineup))
	for _, b := range lineup {
		if seen[b.ID] {
			return nil, fmt.Errorf("duplicate player %s in lineup for team %s", b.ID, teamID)
		}
		seen[b.ID] = true
	}

	if seen[pitcher.ID] {
		return nil, fmt.Errorf("starting pitcher %s also appears in lineup for team %s", pitcher.ID, teamID)
	}

	return &Roster{
		TeamID:          teamID,
		TeamName:        teamName,
		Lineup:          lineup,
		StartingPitcher: pitcher,
		Fielders:        fielders,
	}, nil
}

// FielderAt returns the fielder at the given position, or nil when the
// alignment has no one there. Missing fielders degrade to default
// probabilities downstream rather than erroring.
func (r *Roster) FielderAt(position string) *Fielder {
	for i := range r.Fielders {
		if r.Fielders[i].Position == position {
			return &r.Fielders[i]
		}
	}
	return nil
}

// Catcher returns the roster's catcher, or nil
func (r *Roster) Catcher() *Fielder {
	return r.FielderAt("C")
}

// BatterAt returns the lineup slot for a raw cursor value, wrapping modulo
// lineup length.
func (r *Roster) BatterAt(index int) *Batter {
	return &r.Lineup[index%len(r.Lineup)]
}
