package simulation

import (
	"fmt"

	"github.com/mbutler/baseball-simulator-sub000/models"
)

// StealResult reports the resolution of a stolen-base attempt
type StealResult struct {
	Attempted   bool   `json:"attempted"`
	Success     bool   `json:"success"`
	RunScored   bool   `json:"run_scored"`
	Description string `json:"description"`
}

// PickoffResult reports the three-way resolution of a pickoff attempt
type PickoffResult struct {
	Attempted   bool   `json:"attempted"`
	Out         bool   `json:"out"`
	Error       bool   `json:"error"`
	RunScored   bool   `json:"run_scored"`
	Description string `json:"description"`
}

// AttemptSteal resolves a stolen-base attempt from fromBase to targetBase,
// mutating the game state. An unoccupied fromBase is a no-op failure. The
// base success rate depends on the target and is refined by the runner's
// speed against the catcher's arm when both ratings are available.
func AttemptSteal(gs *models.GameState, fromBase, targetBase int,
	catcher *models.Fielder, tun models.Tunables, rng RandomSource) StealResult {

	runner := gs.Bases.RunnerOn(fromBase)
	if runner == nil || targetBase != fromBase+1 {
		return StealResult{}
	}

	var prob float64
	switch targetBase {
	case models.SecondBase:
		prob = tun.StealBaseSecond
	case models.ThirdBase:
		prob = tun.StealBaseThird
	case models.HomePlate:
		prob = tun.StealBaseHome
	default:
		return StealResult{}
	}

	if catcher != nil && catcher.ArmStrength != nil {
		prob = 0.5 + (runner.Speed-models.RatingOr(catcher.ArmStrength, 50))/200
		switch targetBase {
		case models.ThirdBase:
			prob -= tun.StealThirdPenalty
		case models.HomePlate:
			prob -= tun.StealHomePenalty
		}
	}
	prob = clamp(prob, tun.StealFloor, tun.StealCeil)

	result := StealResult{Attempted: true}
	gs.Bases.SetRunner(fromBase, nil)

	if rng.Float64() < prob {
		result.Success = true
		if targetBase >= models.HomePlate {
			result.RunScored = true
			gs.AddRuns(1)
			result.Description = fmt.Sprintf("%s steals home", runner.Name)
		} else {
			gs.Bases.SetRunner(targetBase, runner)
			result.Description = fmt.Sprintf("%s steals %s", runner.Name, baseName(targetBase))
		}
		return result
	}

	gs.Outs++
	result.Description = fmt.Sprintf("%s is caught stealing %s", runner.Name, baseName(targetBase))
	return result
}

// AttemptPickoff resolves a pickoff throw to the given base, mutating the
// game state. An unoccupied base is a no-op failure. Outcomes are
// three-way: the runner is picked off, the throw is botched and the runner
// advances, or nothing happens.
func AttemptPickoff(gs *models.GameState, base int, pitcher *models.Pitcher,
	fielder *models.Fielder, tun models.Tunables, rng RandomSource) PickoffResult {

	runner := gs.Bases.RunnerOn(base)
	if runner == nil {
		return PickoffResult{}
	}

	pickoffs := 0
	if pitcher != nil {
		pickoffs = pitcher.Pickoffs
	}
	successProb := clamp(0.01+float64(pickoffs)*0.005-(runner.Speed-50)/1000,
		tun.PickoffFloor, tun.PickoffCeil)
	errorProb := clamp(fielder.ErrorRate(0.02), tun.PickoffErrorFloor, tun.PickoffErrorCeil)

	result := PickoffResult{Attempted: true}
	roll := rng.Float64()

	switch {
	case roll < successProb:
		result.Out = true
		gs.Bases.SetRunner(base, nil)
		gs.Outs++
		result.Description = fmt.Sprintf("%s is picked off %s", runner.Name, baseName(base))
	case roll < successProb+errorProb:
		result.Error = true
		gs.Bases.SetRunner(base, nil)
		if base+1 >= models.HomePlate {
			result.RunScored = true
			gs.AddRuns(1)
			result.Description = fmt.Sprintf("%s scores on a pickoff error", runner.Name)
		} else {
			gs.Bases.SetRunner(base+1, runner)
			result.Description = fmt.Sprintf("%s advances to %s on a pickoff error", runner.Name, baseName(base+1))
		}
	default:
		result.Description = fmt.Sprintf("pickoff attempt at %s, %s back safely", baseName(base), runner.Name)
	}
	return result
}

func baseName(base int) string {
	switch base {
	case models.FirstBase:
		return "first"
	case models.SecondBase:
		return "second"
	case models.ThirdBase:
		return "third"
	case models.HomePlate:
		return "home"
	}
	return "?"
}
