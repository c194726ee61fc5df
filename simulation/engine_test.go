package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/baseball-simulator-sub000/models"
)

func TestSimulateGameCompletes(t *testing.T) {
	engine := NewEngine(nil, 1, 10)
	home := testRoster("home", 9)
	away := testRoster("away", 9)

	result := engine.SimulateGame("run-1", 1, home, away, NewSeededSource(11))

	require.Contains(t, []string{"home", "away"}, result.Winner)
	assert.GreaterOrEqual(t, result.Innings, 9)
	assert.NotEqual(t, result.HomeScore, result.AwayScore)
	if result.Winner == "home" {
		assert.Greater(t, result.HomeScore, result.AwayScore)
	} else {
		assert.Greater(t, result.AwayScore, result.HomeScore)
	}
	assert.True(t, result.FinalState.IsComplete)
}

func TestSimulateGameReproducible(t *testing.T) {
	engine := NewEngine(nil, 1, 10)
	home := testRoster("home", 9)
	away := testRoster("away", 9)

	a := engine.SimulateGame("run-1", 1, home, away, NewSeededSource(23))

	// Rosters carry no per-game mutable state, so the same seed must
	// replay the same game.
	b := engine.SimulateGame("run-1", 1, testRoster("home", 9), testRoster("away", 9), NewSeededSource(23))

	assert.Equal(t, a.HomeScore, b.HomeScore)
	assert.Equal(t, a.AwayScore, b.AwayScore)
	assert.Equal(t, a.Winner, b.Winner)
	assert.Equal(t, a.Innings, b.Innings)
}

func TestAggregate(t *testing.T) {
	engine := NewEngine(nil, 1, 10)

	results := []models.SimulationResult{
		{Winner: "home", HomeScore: 5, AwayScore: 3, Innings: 9},
		{Winner: "home", HomeScore: 2, AwayScore: 1, Innings: 10, WalkOff: true},
		{Winner: "away", HomeScore: 0, AwayScore: 4, Innings: 9},
		{Winner: "away", HomeScore: 3, AwayScore: 4, Innings: 11},
	}

	agg := engine.aggregate("run-1", results)

	assert.Equal(t, 4, agg.TotalSimulations)
	assert.Equal(t, 2, agg.HomeWins)
	assert.Equal(t, 2, agg.AwayWins)
	assert.Equal(t, 0, agg.Unresolved)
	assert.InDelta(t, 0.5, agg.HomeWinProbability, 1e-9)
	assert.InDelta(t, 0.5, agg.AwayWinProbability, 1e-9)
	assert.InDelta(t, 2.5, agg.ExpectedHomeScore, 1e-9)
	assert.InDelta(t, 3.0, agg.ExpectedAwayScore, 1e-9)
	assert.InDelta(t, 9.75, agg.AverageInnings, 1e-9)

	assert.Equal(t, 1, agg.HomeScoreDistribution[5])
	assert.Equal(t, 2, agg.AwayScoreDistribution[4])

	assert.InDelta(t, 50.0, agg.Statistics["one_run_game_pct"], 1e-9)
	assert.InDelta(t, 25.0, agg.Statistics["shutout_pct"], 1e-9)
	assert.InDelta(t, 50.0, agg.Statistics["extra_innings_pct"], 1e-9)
	assert.InDelta(t, 25.0, agg.Statistics["walk_off_pct"], 1e-9)
}

func TestAggregateEmpty(t *testing.T) {
	engine := NewEngine(nil, 1, 10)

	agg := engine.aggregate("run-1", nil)
	assert.Equal(t, "run-1", agg.RunID)
	assert.Equal(t, 0, agg.TotalSimulations)
}

func TestAggregateCountsUnresolved(t *testing.T) {
	engine := NewEngine(nil, 1, 10)

	agg := engine.aggregate("run-1", []models.SimulationResult{
		{Winner: "home", HomeScore: 1, AwayScore: 0, Innings: 9},
		{HomeScore: 3, AwayScore: 3, Innings: 40},
	})

	assert.Equal(t, 1, agg.Unresolved)
	assert.InDelta(t, 0.5, agg.HomeWinProbability, 1e-9)
}

func TestRunSimulationInMemory(t *testing.T) {
	engine := NewEngine(nil, 2, 10)
	home := testRoster("home", 9)
	away := testRoster("away", 9)

	engine.RunSimulation("run-1", home, away, 8, 99)

	status, exists := engine.GetRunStatus("run-1")
	require.True(t, exists)
	assert.Equal(t, "completed", status.Status)
	assert.Equal(t, 8, status.CompletedRuns)
	require.NotNil(t, status.AggregatedResult)
	assert.Equal(t, 8, status.AggregatedResult.TotalSimulations)
	assert.Equal(t, 8, status.AggregatedResult.HomeWins+status.AggregatedResult.AwayWins+
		status.AggregatedResult.Unresolved)

	result, err := engine.GetRunResult(t.Context(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, status.AggregatedResult, result)
}

func TestGetRunStatusMissing(t *testing.T) {
	engine := NewEngine(nil, 1, 10)

	_, exists := engine.GetRunStatus("nope")
	assert.False(t, exists)
}

func TestCleanupOldRuns(t *testing.T) {
	engine := NewEngine(nil, 1, 10)

	engine.mu.Lock()
	engine.activeRuns["stale"] = &RunStatus{RunID: "stale", StartTime: time.Now().Add(-48 * time.Hour)}
	engine.activeRuns["fresh"] = &RunStatus{RunID: "fresh", StartTime: time.Now()}
	engine.mu.Unlock()

	engine.CleanupOldRuns()

	if _, exists := engine.GetRunStatus("stale"); exists {
		t.Error("stale run should be removed")
	}
	if _, exists := engine.GetRunStatus("fresh"); !exists {
		t.Error("fresh run should survive cleanup")
	}
}

func TestNotable(t *testing.T) {
	tests := []struct {
		name     string
		inning   int
		result   models.AtBatResult
		decision Decision
		want     bool
	}{
		{"game ender", 9, models.AtBatResult{}, Decision{GameOver: true}, true},
		{"multi-run play", 3, models.AtBatResult{Runs: 2}, Decision{}, true},
		{"late scoring", 8, models.AtBatResult{Runs: 1}, Decision{}, true},
		{"early single run", 3, models.AtBatResult{Runs: 1}, Decision{}, false},
		{"routine out", 5, models.AtBatResult{Outs: 1}, Decision{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := notable(tt.inning, tt.result, tt.decision); got != tt.want {
				t.Errorf("notable() = %v, want %v", got, tt.want)
			}
		})
	}
}
