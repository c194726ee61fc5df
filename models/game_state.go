package models

import "time"

// Base slot indexes. HomePlate is a pseudo-slot: advancing a runner there
// scores the run.
const (
	FirstBase  = 1
	SecondBase = 2
	ThirdBase  = 3
	HomePlate  = 4
)

// Half-inning flags
const (
	TopHalf    = "top"
	BottomHalf = "bottom"
)

// GameState represents the full mutable state of one simulated game. It is
// created once per game, mutated in place by the at-bat and baserunning
// resolvers, and must never be shared across concurrent games.
type GameState struct {
	GameID     string    `json:"game_id"`
	RunID      string    `json:"run_id"`
	Inning     int       `json:"inning"`
	InningHalf string    `json:"inning_half"` // "top" or "bottom"
	Outs       int       `json:"outs"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	Bases      BaseState `json:"bases"`

	// Lineup cursors, one per team, wrapping modulo lineup length
	HomeBatterIndex int `json:"home_batter_index"`
	AwayBatterIndex int `json:"away_batter_index"`

	// Batters faced by each team's current pitcher. Reset externally on a
	// pitching change.
	HomePitcherBF int `json:"home_pitcher_bf"`
	AwayPitcherBF int `json:"away_pitcher_bf"`

	CreatedAt  time.Time `json:"created_at"`
	IsComplete bool      `json:"is_complete"`
	WinnerTeam string    `json:"winner_team,omitempty"`
}

// BaseState represents which bases are occupied. Each slot owns a reference
// to the runner record; advancing a runner moves the same reference.
type BaseState struct {
	First  *BaseRunner `json:"first,omitempty"`
	Second *BaseRunner `json:"second,omitempty"`
	Third  *BaseRunner `json:"third,omitempty"`
}

// BaseRunner represents a player on base with the ratings the baserunning
// engine needs. Ratings are resolved (nil substituted) when the runner
// reaches base.
type BaseRunner struct {
	PlayerID         string  `json:"player_id"`
	Name             string  `json:"name"`
	Speed            float64 `json:"speed"`             // 0-100 scale
	BaserunningValue float64 `json:"baserunning_value"` // 0-100 scale
}

// AtBatResult represents the outcome of one resolved plate appearance.
// Fielder fields are set only when a specific defender was implicated
// (a fielded out, an error, a passed ball).
type AtBatResult struct {
	BatterID    string  `json:"batter_id"`
	BatterName  string  `json:"batter_name"`
	Outcome     Outcome `json:"outcome"`
	Description string  `json:"description"`

	FielderID       string `json:"fielder_id,omitempty"`
	FielderName     string `json:"fielder_name,omitempty"`
	FielderPosition string `json:"fielder_position,omitempty"`

	Runs int `json:"runs"`
	Outs int `json:"outs"`
}

// GameEvent represents a notable play recorded during a simulation
type GameEvent struct {
	Description string    `json:"description"`
	Inning      int       `json:"inning"`
	InningHalf  string    `json:"inning_half"`
	BatterID    string    `json:"batter_id"`
	Runs        int       `json:"runs,omitempty"`
	Outs        int       `json:"outs,omitempty"`
	WalkOff     bool      `json:"walk_off,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// SimulationResult represents the final result of one simulated game
type SimulationResult struct {
	RunID            string      `json:"run_id"`
	SimulationNumber int         `json:"simulation_number"`
	HomeScore        int         `json:"home_score"`
	AwayScore        int         `json:"away_score"`
	Winner           string      `json:"winner"`
	Innings          int         `json:"innings"`
	WalkOff          bool        `json:"walk_off"`
	KeyEvents        []GameEvent `json:"key_events"`
	FinalState       GameState   `json:"final_state"`
	CreatedAt        time.Time   `json:"created_at"`
}

// AggregatedResult represents the combined outcome of a batch of simulations
type AggregatedResult struct {
	RunID                 string             `json:"run_id"`
	TotalSimulations      int                `json:"total_simulations"`
	HomeWins              int                `json:"home_wins"`
	AwayWins              int                `json:"away_wins"`
	Unresolved            int                `json:"unresolved"`
	HomeWinProbability    float64            `json:"home_win_probability"`
	AwayWinProbability    float64            `json:"away_win_probability"`
	ExpectedHomeScore     float64            `json:"expected_home_score"`
	ExpectedAwayScore     float64            `json:"expected_away_score"`
	HomeScoreDistribution map[int]int        `json:"home_score_distribution"`
	AwayScoreDistribution map[int]int        `json:"away_score_distribution"`
	AverageInnings        float64            `json:"average_innings"`
	KeyEvents             []GameEvent        `json:"key_events"`
	Statistics            map[string]float64 `json:"statistics"`
}

// NewGameState creates a fresh game state: top of the 1st, no outs, bases
// empty, both scores zero.
func NewGameState(gameID, runID string) *GameState {
	return &GameState{
		GameID:     gameID,
		RunID:      runID,
		Inning:     1,
		InningHalf: TopHalf,
		Bases:      BaseState{},
		CreatedAt:  time.Now(),
	}
}

// BattingIsAway reports whether the away team is currently batting
func (gs *GameState) BattingIsAway() bool {
	return gs.InningHalf == TopHalf
}

// AddRuns credits runs to the team currently batting
func (gs *GameState) AddRuns(runs int) {
	if gs.BattingIsAway() {
		gs.AwayScore += runs
	} else {
		gs.HomeScore += runs
	}
}

// AdvanceHalfInning resets outs and bases and flips to the next half-inning,
// incrementing the inning after the bottom half.
func (gs *GameState) AdvanceHalfInning() {
	gs.Outs = 0
	gs.Bases = BaseState{}
	if gs.InningHalf == TopHalf {
		gs.InningHalf = BottomHalf
	} else {
		gs.InningHalf = TopHalf
		gs.Inning++
	}
}

// RunnerOn returns the runner occupying the given base, or nil
func (bs *BaseState) RunnerOn(base int) *BaseRunner {
	switch base {
	case FirstBase:
		return bs.First
	case SecondBase:
		return bs.Second
	case ThirdBase:
		return bs.Third
	}
	return nil
}

// SetRunner places a runner reference on the given base. Setting nil
// clears the base.
func (bs *BaseState) SetRunner(base int, r *BaseRunner) {
	switch base {
	case FirstBase:
		bs.First = r
	case SecondBase:
		bs.Second = r
	case ThirdBase:
		bs.Third = r
	}
}

// Count returns the number of occupied bases
func (bs *BaseState) Count() int {
	count := 0
	for base := FirstBase; base <= ThirdBase; base++ {
		if bs.RunnerOn(base) != nil {
			count++
		}
	}
	return count
}

// IsEmpty checks if all bases are empty
func (bs *BaseState) IsEmpty() bool {
	return bs.First == nil && bs.Second == nil && bs.Third == nil
}

// RunnersInScoringPosition reports whether second or third base is occupied
func (bs *BaseState) RunnersInScoringPosition() bool {
	return bs.Second != nil || bs.Third != nil
}

// ForceEligible returns the bases holding force-eligible runners, lead
// runner first. A runner is forced only if every base behind them down to
// first is occupied.
func (bs *BaseState) ForceEligible() []int {
	var bases []int
	if bs.First == nil {
		return bases
	}
	if bs.Second != nil && bs.Third != nil {
		bases = append(bases, ThirdBase, SecondBase, FirstBase)
	} else if bs.Second != nil {
		bases = append(bases, SecondBase, FirstBase)
	} else {
		bases = append(bases, FirstBase)
	}
	return bases
}
