package simulation

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbutler/baseball-simulator-sub000/models"
)

// LoadRoster builds a validated game roster for a team from its normalized
// season records: the ordered batting lineup, the starting pitcher, and
// the defensive alignment. Nullable rate columns scan straight into the
// records' optional fields; the probability model substitutes league
// averages for them at simulation time.
func LoadRoster(ctx context.Context, db *pgxpool.Pool, teamID string) (*models.Roster, error) {
	var teamName string
	if err := db.QueryRow(ctx,
		"SELECT name FROM teams WHERE team_id = $1", teamID).Scan(&teamName); err != nil {
		return nil, fmt.Errorf("failed to load team %s: %w", teamID, err)
	}

	lineup, err := loadLineup(ctx, db, teamID)
	if err != nil {
		return nil, err
	}

	pitcher, err := loadStartingPitcher(ctx, db, teamID)
	if err != nil {
		return nil, err
	}

	fielders, err := loadFielders(ctx, db, teamID)
	if err != nil {
		// Fielding data is optional: resolution degrades to fallback
		// probabilities without it.
		log.Printf("Warning: no fielding data for team %s: %v", teamID, err)
		fielders = nil
	}

	return models.NewRoster(teamID, teamName, lineup, *pitcher, fielders)
}

func loadLineup(ctx context.Context, db *pgxpool.Pool, teamID string) ([]models.Batter, error) {
	query := `
		SELECT p.player_id, p.name,
		       b.pa, b.singles, b.doubles, b.triples, b.hr,
		       b.bb, b.so, b.sf, b.hbp,
		       b.k_rate, b.bb_rate, b.hr_rate, b.babip,
		       b.speed, b.baserunning_value
		FROM players p
		JOIN batting_stats b ON b.player_id = p.player_id
		WHERE p.team_id = $1 AND p.lineup_order IS NOT NULL
		ORDER BY p.lineup_order
		LIMIT 9
	`

	rows, err := db.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lineup for team %s: %w", teamID, err)
	}
	defer rows.Close()

	var lineup []models.Batter
	for rows.Next() {
		var b models.Batter
		err := rows.Scan(
			&b.ID, &b.Name,
			&b.PlateAppearances, &b.Singles, &b.Doubles, &b.Triples, &b.HomeRuns,
			&b.Walks, &b.Strikeouts, &b.SacFlies, &b.HitByPitch,
			&b.StrikeoutRate, &b.WalkRate, &b.HomeRunRate, &b.BABIP,
			&b.Speed, &b.BaserunningValue,
		)
		if err != nil {
			log.Printf("Error scanning batter: %v", err)
			continue
		}
		lineup = append(lineup, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading lineup rows: %w", err)
	}

	return lineup, nil
}

func loadStartingPitcher(ctx context.Context, db *pgxpool.Pool, teamID string) (*models.Pitcher, error) {
	query := `
		SELECT p.player_id, p.name,
		       s.batters_faced, s.ip, s.h, s.bb, s.so, s.hr, s.hbp, s.pickoffs,
		       s.k_rate, s.bb_rate, s.hr_rate, s.babip
		FROM players p
		JOIN pitching_stats s ON s.player_id = p.player_id
		WHERE p.team_id = $1 AND p.is_starting_pitcher
		LIMIT 1
	`

	var pitcher models.Pitcher
	err := db.QueryRow(ctx, query, teamID).Scan(
		&pitcher.ID, &pitcher.Name,
		&pitcher.BattersFaced, &pitcher.InningsPitched,
		&pitcher.Hits, &pitcher.Walks, &pitcher.Strikeouts,
		&pitcher.HomeRuns, &pitcher.HitBatters, &pitcher.Pickoffs,
		&pitcher.StrikeoutRate, &pitcher.WalkRate, &pitcher.HomeRunRate, &pitcher.BABIP,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load starting pitcher for team %s: %w", teamID, err)
	}
	return &pitcher, nil
}

func loadFielders(ctx context.Context, db *pgxpool.Pool, teamID string) ([]models.Fielder, error) {
	query := `
		SELECT p.player_id, p.name, f.position,
		       f.po, f.a, f.e, f.dp,
		       f.fpct, f.range_factor, f.total_zone,
		       f.sb_allowed, f.cs, f.cs_pct, f.arm, f.passed_balls
		FROM players p
		JOIN fielding_stats f ON f.player_id = p.player_id
		WHERE p.team_id = $1
		ORDER BY f.position
	`

	rows, err := db.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fielders for team %s: %w", teamID, err)
	}
	defer rows.Close()

	var fielders []models.Fielder
	for rows.Next() {
		var f models.Fielder
		err := rows.Scan(
			&f.ID, &f.Name, &f.Position,
			&f.Putouts, &f.Assists, &f.Errors, &f.DoublePlays,
			&f.FieldingPct, &f.RangeFactor, &f.TotalZone,
			&f.StolenBasesAllowed, &f.CaughtStealing, &f.CaughtStealingPct,
			&f.ArmStrength, &f.PassedBalls,
		)
		if err != nil {
			log.Printf("Error scanning fielder: %v", err)
			continue
		}
		fielders = append(fielders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading fielder rows: %w", err)
	}

	return fielders, nil
}
