package simulation

import "github.com/mbutler/baseball-simulator-sub000/models"

// Decision is the lifecycle verdict after any event that could have
// produced a third out or changed the score.
type Decision struct {
	GameOver  bool   `json:"game_over"`
	Winner    string `json:"winner,omitempty"` // "home" or "away"
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Inning    int    `json:"inning"`
	FinalHalf string `json:"final_half,omitempty"` // half the game ended in
	WalkOff   bool   `json:"walk_off,omitempty"`
}

// Evaluate inspects the game state and decides whether play continues.
// When a half-inning completed without ending the game it also resets outs
// and bases and flips to the next half. Once a game-over state is reached
// the state is no longer touched, so repeated calls return the same
// decision.
//
// Rules in priority order: no game ends before the 9th; a completed top
// half with the home team ahead ends the game without playing the bottom;
// a completed bottom half ends it unless tied; and from the 9th on, the
// home team taking a lead at any point in the bottom half wins immediately
// (walk-off).
func Evaluate(gs *models.GameState) Decision {
	decision := Decision{
		HomeScore: gs.HomeScore,
		AwayScore: gs.AwayScore,
		Inning:    gs.Inning,
	}

	if gs.Inning >= 9 {
		bottom := gs.InningHalf == models.BottomHalf

		if bottom && gs.HomeScore > gs.AwayScore {
			decision.GameOver = true
			decision.Winner = "home"
			decision.FinalHalf = models.BottomHalf
			decision.WalkOff = gs.Outs < 3
			finishGame(gs, "home")
			return decision
		}

		if gs.Outs >= 3 {
			if !bottom && gs.HomeScore > gs.AwayScore {
				// Home already leads after the top half; the bottom is
				// not played.
				decision.GameOver = true
				decision.Winner = "home"
				decision.FinalHalf = models.TopHalf
				finishGame(gs, "home")
				return decision
			}
			if bottom && gs.AwayScore > gs.HomeScore {
				decision.GameOver = true
				decision.Winner = "away"
				decision.FinalHalf = models.BottomHalf
				finishGame(gs, "away")
				return decision
			}
		}
	}

	// Tied or early: a completed half-inning just flips over
	if gs.Outs >= 3 {
		gs.AdvanceHalfInning()
	}
	return decision
}

func finishGame(gs *models.GameState, winner string) {
	gs.IsComplete = true
	gs.WinnerTeam = winner
}
