package simulation

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mbutler/baseball-simulator-sub000/models"
)

// maxPlateAppearances caps a single game's event loop so malformed rosters
// can never spin forever. A real game rarely clears 100 plate appearances.
const maxPlateAppearances = 1000

// keyEventLimit bounds how many notable events an aggregate keeps
const keyEventLimit = 50

// Engine runs batches of independent game simulations and aggregates the
// results. Each simulated game owns its own GameState and seeded random
// stream, so games within a batch run in parallel safely.
type Engine struct {
	db             *pgxpool.Pool
	workers        int
	simulationRuns int
	tunables       models.Tunables
	mu             sync.RWMutex
	activeRuns     map[string]*RunStatus
}

// RunStatus tracks the progress of one simulation run
type RunStatus struct {
	RunID            string
	HomeTeam         string
	AwayTeam         string
	TotalRuns        int
	CompletedRuns    int
	Status           string
	StartTime        time.Time
	CompletedTime    *time.Time
	AggregatedResult *models.AggregatedResult
}

// NewEngine creates a simulation engine. The database pool may be nil, in
// which case results are kept in memory only.
func NewEngine(db *pgxpool.Pool, workers, simulationRuns int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		db:             db,
		workers:        workers,
		simulationRuns: simulationRuns,
		tunables:       models.DefaultTunables(),
		activeRuns:     make(map[string]*RunStatus),
	}
}

// Tunables returns the engine's run environment
func (e *Engine) Tunables() models.Tunables { return e.tunables }

// SetTunables replaces the run environment for subsequent simulations
func (e *Engine) SetTunables(tun models.Tunables) { e.tunables = tun }

// RunSimulation executes a complete batch of game simulations between the
// two rosters, fanning games out across the worker pool and storing the
// aggregate when done. Intended to be called on its own goroutine.
func (e *Engine) RunSimulation(runID string, home, away *models.Roster, simulationRuns int, seed uint64) {
	ctx := context.Background()

	if simulationRuns <= 0 {
		simulationRuns = e.simulationRuns
	}

	e.mu.Lock()
	e.activeRuns[runID] = &RunStatus{
		RunID:     runID,
		HomeTeam:  home.TeamID,
		AwayTeam:  away.TeamID,
		TotalRuns: simulationRuns,
		Status:    "running",
		StartTime: time.Now(),
	}
	e.mu.Unlock()
	e.updateRunStatus(runID, "running")

	resultsChan := make(chan models.SimulationResult, simulationRuns)
	var wg sync.WaitGroup

	perWorker := simulationRuns / e.workers
	remainder := simulationRuns % e.workers

	for i := 0; i < e.workers; i++ {
		wg.Add(1)

		workerSims := perWorker
		if i < remainder {
			workerSims++
		}

		go func(workerID, simCount int) {
			defer wg.Done()

			for j := 0; j < simCount; j++ {
				simNumber := workerID*perWorker + j + 1
				// Independent stream per game keeps batches reproducible
				// regardless of worker interleaving.
				rng := NewSeededSource(seed + uint64(workerID)*1_000_003 + uint64(j))
				result := e.SimulateGame(runID, simNumber, home, away, rng)
				resultsChan <- result
				e.updateProgress(runID)
			}
		}(i, workerSims)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	var results []models.SimulationResult
	for result := range resultsChan {
		results = append(results, result)
		if err := e.storeSimulationResult(ctx, result); err != nil {
			log.Printf("Failed to store simulation result: %v", err)
		}
	}

	aggregated := e.aggregate(runID, results)
	if err := e.storeAggregatedResult(ctx, aggregated); err != nil {
		log.Printf("Failed to store aggregated results: %v", err)
	}

	e.mu.Lock()
	if status, exists := e.activeRuns[runID]; exists {
		status.Status = "completed"
		status.CompletedRuns = simulationRuns
		completedTime := time.Now()
		status.CompletedTime = &completedTime
		status.AggregatedResult = aggregated
	}
	e.mu.Unlock()
	e.updateRunStatus(runID, "completed")

	log.Printf("Simulation run %s completed: %d games of %s at %s",
		runID, simulationRuns, away.TeamID, home.TeamID)
}

// SimulateGame plays one full game between the rosters: repeated at-bat
// resolution against a shared game state, optional steal and pickoff
// attempts between at-bats, and a lifecycle check after every
// state-changing event.
func (e *Engine) SimulateGame(runID string, simNumber int, home, away *models.Roster, rng RandomSource) models.SimulationResult {
	tun := e.tunables
	gs := models.NewGameState(home.TeamID+"@"+away.TeamID, runID)

	awayDists := PrepareMatchups(away.Lineup, &home.StartingPitcher, tun)
	homeDists := PrepareMatchups(home.Lineup, &away.StartingPitcher, tun)

	var events []models.GameEvent

	for i := 0; i < maxPlateAppearances; i++ {
		// Between at-bats the offense may try a steal, and the defense a
		// pickoff. Either can produce a third out or a run.
		e.maybeRunBaserunning(gs, home, away, tun, rng)
		if decision := Evaluate(gs); decision.GameOver {
			return e.buildResult(runID, simNumber, gs, decision, events)
		}

		inning, half := gs.Inning, gs.InningHalf
		result, err := ResolveAtBat(awayDists, homeDists, gs, away, home, tun, rng)
		if err != nil {
			log.Printf("Simulation %d aborted: %v", simNumber, err)
			break
		}

		decision := Evaluate(gs)

		if notable(inning, result, decision) {
			events = append(events, models.GameEvent{
				Description: result.Description,
				Inning:      inning,
				InningHalf:  half,
				BatterID:    result.BatterID,
				Runs:        result.Runs,
				Outs:        result.Outs,
				WalkOff:     decision.WalkOff,
				Timestamp:   time.Now(),
			})
		}

		if decision.GameOver {
			return e.buildResult(runID, simNumber, gs, decision, events)
		}
	}

	// Safety cap reached: report the game unresolved rather than spinning
	log.Printf("Simulation %d hit the plate appearance cap, reporting unresolved", simNumber)
	return models.SimulationResult{
		RunID:            runID,
		SimulationNumber: simNumber,
		HomeScore:        gs.HomeScore,
		AwayScore:        gs.AwayScore,
		Innings:          gs.Inning,
		KeyEvents:        events,
		FinalState:       *gs,
		CreatedAt:        time.Now(),
	}
}

// maybeRunBaserunning occasionally fires a stolen-base or pickoff attempt
// keyed on who is on base. Fast runners try more often.
func (e *Engine) maybeRunBaserunning(gs *models.GameState, home, away *models.Roster, tun models.Tunables, rng RandomSource) {
	var defense *models.Roster
	if gs.BattingIsAway() {
		defense = home
	} else {
		defense = away
	}
	pitcher := &defense.StartingPitcher

	if runner := gs.Bases.First; runner != nil && gs.Bases.Second == nil {
		if rng.Float64() < tun.StealAttemptRate*(runner.Speed/50) {
			AttemptSteal(gs, models.FirstBase, models.SecondBase, defense.Catcher(), tun, rng)
			return
		}
		if rng.Float64() < tun.PickoffAttemptRate {
			AttemptPickoff(gs, models.FirstBase, pitcher, defense.FielderAt("1B"), tun, rng)
		}
		return
	}

	if runner := gs.Bases.Second; runner != nil && gs.Bases.Third == nil {
		if rng.Float64() < tun.StealAttemptRate/2*(runner.Speed/50) {
			AttemptSteal(gs, models.SecondBase, models.ThirdBase, defense.Catcher(), tun, rng)
		}
	}
}

// notable picks the events worth keeping in the aggregate: multi-run
// plays, any late-inning scoring, and game enders.
func notable(inning int, result models.AtBatResult, decision Decision) bool {
	if decision.GameOver {
		return true
	}
	if result.Runs >= 2 {
		return true
	}
	return result.Runs > 0 && inning >= 8
}

func (e *Engine) buildResult(runID string, simNumber int, gs *models.GameState,
	decision Decision, events []models.GameEvent) models.SimulationResult {

	return models.SimulationResult{
		RunID:            runID,
		SimulationNumber: simNumber,
		HomeScore:        decision.HomeScore,
		AwayScore:        decision.AwayScore,
		Winner:           decision.Winner,
		Innings:          decision.Inning,
		WalkOff:          decision.WalkOff,
		KeyEvents:        events,
		FinalState:       *gs,
		CreatedAt:        time.Now(),
	}
}

// aggregate folds a batch of game results into win probabilities, expected
// scores and score distributions.
func (e *Engine) aggregate(runID string, results []models.SimulationResult) *models.AggregatedResult {
	if len(results) == 0 {
		return &models.AggregatedResult{RunID: runID}
	}

	agg := &models.AggregatedResult{
		RunID:                 runID,
		TotalSimulations:      len(results),
		HomeScoreDistribution: make(map[int]int),
		AwayScoreDistribution: make(map[int]int),
		Statistics:            make(map[string]float64),
	}

	var totalHome, totalAway, totalInnings float64
	var oneRunGames, shutouts, extraInnings, walkOffs int

	for _, result := range results {
		switch result.Winner {
		case "home":
			agg.HomeWins++
		case "away":
			agg.AwayWins++
		default:
			agg.Unresolved++
		}

		agg.HomeScoreDistribution[result.HomeScore]++
		agg.AwayScoreDistribution[result.AwayScore]++

		totalHome += float64(result.HomeScore)
		totalAway += float64(result.AwayScore)
		totalInnings += float64(result.Innings)

		margin := result.HomeScore - result.AwayScore
		if margin < 0 {
			margin = -margin
		}
		if margin == 1 {
			oneRunGames++
		}
		if result.HomeScore == 0 || result.AwayScore == 0 {
			shutouts++
		}
		if result.Innings > 9 {
			extraInnings++
		}
		if result.WalkOff {
			walkOffs++
		}

		if len(agg.KeyEvents) < keyEventLimit {
			agg.KeyEvents = append(agg.KeyEvents, result.KeyEvents...)
			if len(agg.KeyEvents) > keyEventLimit {
				agg.KeyEvents = agg.KeyEvents[:keyEventLimit]
			}
		}
	}

	totalSims := float64(agg.TotalSimulations)
	agg.HomeWinProbability = float64(agg.HomeWins) / totalSims
	agg.AwayWinProbability = float64(agg.AwayWins) / totalSims
	agg.ExpectedHomeScore = totalHome / totalSims
	agg.ExpectedAwayScore = totalAway / totalSims
	agg.AverageInnings = totalInnings / totalSims

	agg.Statistics["one_run_game_pct"] = float64(oneRunGames) / totalSims * 100
	agg.Statistics["shutout_pct"] = float64(shutouts) / totalSims * 100
	agg.Statistics["extra_innings_pct"] = float64(extraInnings) / totalSims * 100
	agg.Statistics["walk_off_pct"] = float64(walkOffs) / totalSims * 100

	return agg
}

// GetRunStatus returns the current status of a simulation run
func (e *Engine) GetRunStatus(runID string) (*RunStatus, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	status, exists := e.activeRuns[runID]
	return status, exists
}

// CleanupOldRuns removes completed runs older than a day from memory
func (e *Engine) CleanupOldRuns() {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := time.Now().Add(-24 * time.Hour)
	for runID, status := range e.activeRuns {
		if status.StartTime.Before(cutoff) {
			delete(e.activeRuns, runID)
		}
	}
}

// StartMaintenance launches the background cleanup loop
func (e *Engine) StartMaintenance() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			e.CleanupOldRuns()
			e.mu.RLock()
			n := len(e.activeRuns)
			e.mu.RUnlock()
			log.Printf("Simulation engine cleanup: %d active runs", n)
		}
	}()
}

func (e *Engine) updateProgress(runID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if status, exists := e.activeRuns[runID]; exists {
		status.CompletedRuns++
	}
}
