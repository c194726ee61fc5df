package simulation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mbutler/baseball-simulator-sub000/models"
)

// CreateRun inserts a pending simulation run row
func (e *Engine) CreateRun(ctx context.Context, runID, homeTeamID, awayTeamID string, totalRuns int) error {
	if e.db == nil {
		return nil
	}

	query := `
		INSERT INTO simulation_runs (id, home_team_id, away_team_id, total_runs, status)
		VALUES ($1, $2, $3, $4, 'pending')
	`

	if _, err := e.db.Exec(ctx, query, runID, homeTeamID, awayTeamID, totalRuns); err != nil {
		return fmt.Errorf("failed to create simulation run: %w", err)
	}
	return nil
}

// updateRunStatus updates the simulation run status in the database
func (e *Engine) updateRunStatus(runID, status string) {
	if e.db == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `
		UPDATE simulation_runs
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := e.db.Exec(ctx, query, runID, status); err != nil {
		log.Printf("Failed to update run status for %s: %v", runID, err)
	}
}

// storeSimulationResult stores one game's final score and key events
func (e *Engine) storeSimulationResult(ctx context.Context, result models.SimulationResult) error {
	if e.db == nil {
		return nil
	}

	keyEventsJSON, err := json.Marshal(result.KeyEvents)
	if err != nil {
		return fmt.Errorf("failed to marshal key events: %w", err)
	}

	query := `
		INSERT INTO simulation_results (
			id, run_id, simulation_number, home_score, away_score,
			innings, walk_off, key_events, created_at
		) VALUES (
			uuid_generate_v4(), $1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err = e.db.Exec(ctx, query,
		result.RunID,
		result.SimulationNumber,
		result.HomeScore,
		result.AwayScore,
		result.Innings,
		result.WalkOff,
		keyEventsJSON,
		result.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store simulation result: %w", err)
	}
	return nil
}

// storeAggregatedResult upserts the batch aggregate
func (e *Engine) storeAggregatedResult(ctx context.Context, result *models.AggregatedResult) error {
	if e.db == nil {
		return nil
	}

	homeDistJSON, err := json.Marshal(result.HomeScoreDistribution)
	if err != nil {
		return fmt.Errorf("failed to marshal home score distribution: %w", err)
	}
	awayDistJSON, err := json.Marshal(result.AwayScoreDistribution)
	if err != nil {
		return fmt.Errorf("failed to marshal away score distribution: %w", err)
	}
	eventsJSON, err := json.Marshal(result.KeyEvents)
	if err != nil {
		return fmt.Errorf("failed to marshal key events: %w", err)
	}
	statsJSON, err := json.Marshal(result.Statistics)
	if err != nil {
		return fmt.Errorf("failed to marshal statistics: %w", err)
	}

	query := `
		INSERT INTO simulation_aggregates (
			run_id, total_simulations, home_wins, away_wins,
			home_win_probability, away_win_probability,
			expected_home_score, expected_away_score,
			home_score_distribution, away_score_distribution,
			average_innings, key_events, statistics, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (run_id) DO UPDATE SET
			total_simulations = EXCLUDED.total_simulations,
			home_wins = EXCLUDED.home_wins,
			away_wins = EXCLUDED.away_wins,
			home_win_probability = EXCLUDED.home_win_probability,
			away_win_probability = EXCLUDED.away_win_probability,
			expected_home_score = EXCLUDED.expected_home_score,
			expected_away_score = EXCLUDED.expected_away_score,
			home_score_distribution = EXCLUDED.home_score_distribution,
			away_score_distribution = EXCLUDED.away_score_distribution,
			average_innings = EXCLUDED.average_innings,
			key_events = EXCLUDED.key_events,
			statistics = EXCLUDED.statistics
	`

	_, err = e.db.Exec(ctx, query,
		result.RunID,
		result.TotalSimulations,
		result.HomeWins,
		result.AwayWins,
		result.HomeWinProbability,
		result.AwayWinProbability,
		result.ExpectedHomeScore,
		result.ExpectedAwayScore,
		homeDistJSON,
		awayDistJSON,
		result.AverageInnings,
		eventsJSON,
		statsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to store aggregated results: %w", err)
	}
	return nil
}

// GetRunResult returns the aggregated result of a completed run, from
// memory when available, otherwise from the database.
func (e *Engine) GetRunResult(ctx context.Context, runID string) (*models.AggregatedResult, error) {
	e.mu.RLock()
	if status, exists := e.activeRuns[runID]; exists && status.AggregatedResult != nil {
		e.mu.RUnlock()
		return status.AggregatedResult, nil
	}
	e.mu.RUnlock()

	if e.db == nil {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	var result models.AggregatedResult
	var homeDist, awayDist, eventsJSON, statsJSON []byte

	query := `
		SELECT run_id, total_simulations, home_wins, away_wins,
		       home_win_probability, away_win_probability,
		       expected_home_score, expected_away_score,
		       home_score_distribution, away_score_distribution,
		       average_innings, key_events, statistics
		FROM simulation_aggregates
		WHERE run_id = $1
	`

	err := e.db.QueryRow(ctx, query, runID).Scan(
		&result.RunID,
		&result.TotalSimulations,
		&result.HomeWins,
		&result.AwayWins,
		&result.HomeWinProbability,
		&result.AwayWinProbability,
		&result.ExpectedHomeScore,
		&result.ExpectedAwayScore,
		&homeDist,
		&awayDist,
		&result.AverageInnings,
		&eventsJSON,
		&statsJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load simulation result: %w", err)
	}

	if err := json.Unmarshal(homeDist, &result.HomeScoreDistribution); err != nil {
		log.Printf("Failed to parse home score distribution: %v", err)
		result.HomeScoreDistribution = make(map[int]int)
	}
	if err := json.Unmarshal(awayDist, &result.AwayScoreDistribution); err != nil {
		log.Printf("Failed to parse away score distribution: %v", err)
		result.AwayScoreDistribution = make(map[int]int)
	}
	if err := json.Unmarshal(eventsJSON, &result.KeyEvents); err != nil {
		log.Printf("Failed to parse key events: %v", err)
		result.KeyEvents = []models.GameEvent{}
	}
	if err := json.Unmarshal(statsJSON, &result.Statistics); err != nil {
		log.Printf("Failed to parse statistics: %v", err)
		result.Statistics = make(map[string]float64)
	}

	return &result, nil
}
