package simulation

import (
	"errors"
	"fmt"

	"github.com/mbutler/baseball-simulator-sub000/models"
)

// ErrEmptyLineup is returned when an at-bat is requested for a team with no
// batters. This is the only structural failure the resolver raises; missing
// fielder or rate data degrades to documented fallbacks instead.
var ErrEmptyLineup = errors.New("cannot resolve at-bat: empty lineup")

// battedBallType classifies a ball put in play for fielder attribution
type battedBallType int

const (
	groundBall battedBallType = iota
	flyBall
	lineDrive
	popUp
)

func (bt battedBallType) String() string {
	switch bt {
	case groundBall:
		return "ground ball"
	case flyBall:
		return "fly ball"
	case lineDrive:
		return "line drive"
	default:
		return "pop up"
	}
}

type weightedPosition struct {
	position string
	weight   float64
}

// Batted-ball mix and per-type position weights. Roughly league shape; the
// split only decides which fielder is implicated, not the out itself.
var battedBallWeights = []struct {
	ballType battedBallType
	weight   float64
}{
	{groundBall, 0.44},
	{flyBall, 0.34},
	{lineDrive, 0.14},
	{popUp, 0.08},
}

var positionWeights = map[battedBallType][]weightedPosition{
	groundBall: {
		{"SS", 0.28}, {"2B", 0.26}, {"3B", 0.18}, {"1B", 0.14}, {"P", 0.10}, {"C", 0.04},
	},
	flyBall: {
		{"CF", 0.40}, {"LF", 0.31}, {"RF", 0.29},
	},
	lineDrive: {
		{"CF", 0.18}, {"LF", 0.16}, {"RF", 0.16}, {"SS", 0.14}, {"2B", 0.14}, {"3B", 0.12}, {"1B", 0.10},
	},
	popUp: {
		{"SS", 0.25}, {"2B", 0.22}, {"3B", 0.16}, {"1B", 0.14}, {"C", 0.13}, {"P", 0.10},
	},
}

// ResolveAtBat resolves one plate appearance, mutating the game state in
// place: it selects the batter from the batting team's lineup cursor,
// applies pitcher fatigue to that slot's precomputed distribution, samples
// the outcome, runs the ball-in-play sub-resolutions (error, triple play,
// double play, passed ball), and advances runners.
func ResolveAtBat(awayDists, homeDists []models.Distribution, gs *models.GameState,
	awayRoster, homeRoster *models.Roster, tun models.Tunables, rng RandomSource) (models.AtBatResult, error) {

	var offense, defense *models.Roster
	var dists []models.Distribution
	var cursor *int
	var battersFaced *int

	if gs.BattingIsAway() {
		offense, defense = awayRoster, homeRoster
		dists = awayDists
		cursor = &gs.AwayBatterIndex
		battersFaced = &gs.HomePitcherBF
	} else {
		offense, defense = homeRoster, awayRoster
		dists = homeDists
		cursor = &gs.HomeBatterIndex
		battersFaced = &gs.AwayPitcherBF
	}

	if len(offense.Lineup) == 0 || len(dists) == 0 {
		return models.AtBatResult{}, ErrEmptyLineup
	}

	slot := *cursor % len(offense.Lineup)
	batter := &offense.Lineup[slot]
	*cursor++

	// The opposing pitcher works to one more batter; fatigue past the
	// threshold shifts mass from outs toward walks and singles.
	*battersFaced++
	dist := applyFatigue(dists[slot%len(dists)].Clone(), *battersFaced, tun)

	sit := SituationFrom(gs)
	applySituation(dist, sit, tun)
	dist.Normalize()

	outcome := SampleOutcome(dist, rng)

	result := models.AtBatResult{
		BatterID:   batter.ID,
		BatterName: batter.Name,
		Outcome:    outcome,
	}

	switch outcome {
	case models.OutcomeInPlayOut:
		resolveBallInPlay(gs, batter, defense, tun, rng, &result)
	case models.OutcomeStrikeout:
		gs.Outs++
		result.Outs = 1
		result.Description = fmt.Sprintf("%s strikes out", batter.Name)
		resolvePassedBall(gs, defense, tun, rng, &result)
	case models.OutcomeWalk:
		result.Runs = advanceOnWalk(gs, batter)
		result.Description = fmt.Sprintf("%s walks", batter.Name)
		resolvePassedBall(gs, defense, tun, rng, &result)
	case models.OutcomeHitByPitch:
		result.Runs = advanceOnWalk(gs, batter)
		result.Description = fmt.Sprintf("%s is hit by the pitch", batter.Name)
	default:
		result.Runs = advanceOnHit(gs, batter, outcome, tun, rng)
		result.Description = fmt.Sprintf("%s hits a %s", batter.Name, hitName(outcome))
	}

	if result.Runs > 0 {
		gs.AddRuns(result.Runs)
	}
	return result, nil
}

// applyFatigue shifts probability mass from outs toward walks and singles
// once the pitcher is past the fatigue threshold. The shift grows with each
// extra batter but is capped, and the out probability is never pushed below
// half its original value.
func applyFatigue(dist models.Distribution, battersFaced int, tun models.Tunables) models.Distribution {
	over := battersFaced - tun.FatigueThreshold
	if over <= 0 {
		return dist
	}

	fraction := float64(over) * tun.FatigueShiftPerBatter
	if fraction > tun.FatigueShiftCap {
		fraction = tun.FatigueShiftCap
	}
	if fraction > 0.5 {
		fraction = 0.5
	}

	shift := dist[models.OutcomeInPlayOut] * fraction
	dist[models.OutcomeInPlayOut] -= shift
	dist[models.OutcomeWalk] += shift / 2
	dist[models.OutcomeSingle] += shift / 2
	dist.Normalize()
	return dist
}

// resolveBallInPlay handles a sampled in-play out: fielder attribution,
// then the error, triple-play, double-play and force-out sub-resolutions
// in that order. Each step only applies if the previous did not already
// settle the play.
func resolveBallInPlay(gs *models.GameState, batter *models.Batter, defense *models.Roster,
	tun models.Tunables, rng RandomSource, result *models.AtBatResult) {

	ballType := sampleBattedBall(rng)
	position := samplePosition(ballType, rng)
	fielder := defense.FielderAt(position)
	implicate(result, fielder, position)

	// Error check: the play becomes a single for baserunning purposes and
	// no out is recorded.
	if rng.Float64() < fielder.ErrorRate(tun.ErrorFallbackRate) {
		result.Runs = advanceRunners(gs, 1, nil)
		gs.Bases.SetRunner(models.FirstBase, newRunner(batter))
		result.Description = fmt.Sprintf("%s reaches on an error by %s", batter.Name, position)
		return
	}

	forceBases := gs.Bases.ForceEligible()

	if ballType == groundBall {
		bonus := fieldingBonus(fielder, tun)

		// Triple play: grounder, nobody out, at least two force-eligible
		// runners.
		if gs.Outs == 0 && len(forceBases) >= 2 {
			if rng.Float64() < tun.TriplePlayBaseRate+bonus {
				gs.Bases.SetRunner(forceBases[0], nil)
				gs.Bases.SetRunner(forceBases[1], nil)
				result.Outs = 3 - gs.Outs
				gs.Outs = 3
				result.Description = fmt.Sprintf("%s grounds into a triple play, %s", batter.Name, position)
				return
			}
		}

		// Double play: grounder, fewer than two out, a force in order.
		if gs.Outs < 2 && len(forceBases) >= 1 {
			prob := tun.DoublePlayBaseRate + bonus
			if prob > tun.DoublePlayCap {
				prob = tun.DoublePlayCap
			}
			if rng.Float64() < prob {
				gs.Bases.SetRunner(forceBases[0], nil)
				before := gs.Outs
				gs.Outs += 2
				if gs.Outs > 3 {
					gs.Outs = 3
				}
				result.Outs = gs.Outs - before
				result.Description = fmt.Sprintf("%s grounds into a double play, %s", batter.Name, position)
				return
			}
		}

		// Standard ground out: batter retired at first, forced runners
		// advance exactly one base each from the lead runner down,
		// unforced runners hold.
		gs.Outs++
		result.Outs = 1
		result.Runs = advanceForced(gs, forceBases)
		result.Description = fmt.Sprintf("%s grounds out to %s", batter.Name, position)
		return
	}

	// Fly balls, liners and pop ups retire the batter with no base movement
	gs.Outs++
	result.Outs = 1
	result.Description = fmt.Sprintf("%s is out on a %s to %s", batter.Name, ballType, position)
}

// resolvePassedBall gives the catcher a small chance of a passed ball on a
// strikeout or walk, advancing every runner one base. Elite
// fielding-percentage catchers halve the chance.
func resolvePassedBall(gs *models.GameState, defense *models.Roster,
	tun models.Tunables, rng RandomSource, result *models.AtBatResult) {

	if gs.Bases.IsEmpty() {
		return
	}

	catcher := defense.Catcher()
	chance := tun.PassedBallBaseRate
	if catcher != nil && catcher.PassedBalls > 0 {
		chance = clamp(float64(catcher.PassedBalls)*0.002, tun.PassedBallBaseRate, tun.PassedBallMaxRate)
	}
	if catcher != nil && models.RateOr(catcher.FieldingPct, 0) >= 0.995 {
		chance /= 2
	}

	if rng.Float64() >= chance {
		return
	}

	runs := 0
	for base := models.ThirdBase; base >= models.FirstBase; base-- {
		runner := gs.Bases.RunnerOn(base)
		if runner == nil {
			continue
		}
		gs.Bases.SetRunner(base, nil)
		if base+1 >= models.HomePlate {
			runs++
		} else {
			gs.Bases.SetRunner(base+1, runner)
		}
	}

	if runs > 0 {
		result.Runs += runs
	}
	implicate(result, catcher, "C")
	result.Description += ", runners advance on a passed ball"
}

// advanceOnWalk applies the forced-runner cascade for walks and
// hit-by-pitch: runners advance exactly one base only when pushed, with no
// empty-base skipping, then the batter takes first. Returns runs scored.
func advanceOnWalk(gs *models.GameState, batter *models.Batter) int {
	runs := advanceForced(gs, gs.Bases.ForceEligible())
	gs.Bases.SetRunner(models.FirstBase, newRunner(batter))
	return runs
}

// advanceForced walks the force-eligible bases lead runner first, moving
// each runner up one base. A runner forced off third scores.
func advanceForced(gs *models.GameState, forceBases []int) int {
	runs := 0
	for _, base := range forceBases {
		runner := gs.Bases.RunnerOn(base)
		if runner == nil {
			continue
		}
		gs.Bases.SetRunner(base, nil)
		if base+1 >= models.HomePlate {
			runs++
		} else {
			gs.Bases.SetRunner(base+1, runner)
		}
	}
	return runs
}

// advanceOnHit moves every runner up by the hit's base count, scores any
// runner whose destination is past third, applies the rating-gated stretch
// bonuses, then puts the batter on the appropriate base. Returns runs
// scored including the batter on a home run.
func advanceOnHit(gs *models.GameState, batter *models.Batter, outcome models.Outcome,
	tun models.Tunables, rng RandomSource) int {

	stretch := func(base int, runner *models.BaseRunner) bool {
		switch {
		case outcome == models.OutcomeSingle && base == models.SecondBase:
			// A fast runner can score from second on a single
			return rng.Float64() < stretchChance(runner.Speed, tun)
		case outcome == models.OutcomeSingle && base == models.FirstBase:
			// A fast runner can take third on a single
			return rng.Float64() < stretchChance(runner.Speed, tun)
		case outcome == models.OutcomeDouble && base == models.FirstBase:
			// An elite baserunner can score from first on a double
			return rng.Float64() < stretchChance(runner.BaserunningValue, tun)
		}
		return false
	}

	runs := advanceRunners(gs, outcome.BaseCount(), stretch)

	switch outcome {
	case models.OutcomeSingle:
		gs.Bases.SetRunner(models.FirstBase, newRunner(batter))
	case models.OutcomeDouble:
		gs.Bases.SetRunner(models.SecondBase, newRunner(batter))
	case models.OutcomeTriple:
		gs.Bases.SetRunner(models.ThirdBase, newRunner(batter))
	case models.OutcomeHomeRun:
		runs++
	}
	return runs
}

// advanceRunners moves all runners up by baseCount, lead runner first so a
// trailing runner never overruns the man ahead. The optional stretch gate
// grants one extra base when it fires and the target is open.
func advanceRunners(gs *models.GameState, baseCount int,
	stretch func(base int, runner *models.BaseRunner) bool) int {

	runs := 0
	for base := models.ThirdBase; base >= models.FirstBase; base-- {
		runner := gs.Bases.RunnerOn(base)
		if runner == nil {
			continue
		}
		dest := base + baseCount
		if dest < models.HomePlate && stretch != nil && stretch(base, runner) {
			if dest+1 >= models.HomePlate || gs.Bases.RunnerOn(dest+1) == nil {
				dest++
			}
		}
		gs.Bases.SetRunner(base, nil)
		if dest >= models.HomePlate {
			runs++
		} else {
			gs.Bases.SetRunner(dest, runner)
		}
	}
	return runs
}

// fieldingBonus converts a fielder's range factor, total zone rating and
// fielding percentage into a small additive boost for turning two (or
// three). Each component is capped, as is the sum.
func fieldingBonus(f *models.Fielder, tun models.Tunables) float64 {
	if f == nil {
		return 0
	}
	var bonus float64
	if f.RangeFactor != nil {
		bonus += capAt((*f.RangeFactor-2.5)*0.01, 0.02)
	}
	if f.TotalZone != nil {
		bonus += capAt(*f.TotalZone*0.002, 0.02)
	}
	if f.FieldingPct != nil {
		bonus += capAt((*f.FieldingPct-0.975)*0.4, 0.01)
	}
	if bonus < 0 {
		bonus = 0
	}
	if bonus > tun.FieldingBonusCap {
		bonus = tun.FieldingBonusCap
	}
	return bonus
}

// stretchChance maps a 0-100 runner rating to a small extra-base chance.
// League-average runners (50) get nothing.
func stretchChance(rating float64, tun models.Tunables) float64 {
	chance := (rating - 50) / 125
	if chance < 0 {
		return 0
	}
	if chance > tun.StretchChanceScale {
		return tun.StretchChanceScale
	}
	return chance
}

func sampleBattedBall(rng RandomSource) battedBallType {
	roll := rng.Float64()
	var cum float64
	for _, entry := range battedBallWeights {
		cum += entry.weight
		if roll < cum {
			return entry.ballType
		}
	}
	return groundBall
}

func samplePosition(ballType battedBallType, rng RandomSource) string {
	weights := positionWeights[ballType]
	roll := rng.Float64()
	var cum float64
	for _, entry := range weights {
		cum += entry.weight
		if roll < cum {
			return entry.position
		}
	}
	return weights[len(weights)-1].position
}

func newRunner(b *models.Batter) *models.BaseRunner {
	return &models.BaseRunner{
		PlayerID:         b.ID,
		Name:             b.Name,
		Speed:            models.RatingOr(b.Speed, 50),
		BaserunningValue: models.RatingOr(b.BaserunningValue, 50),
	}
}

func implicate(result *models.AtBatResult, f *models.Fielder, position string) {
	result.FielderPosition = position
	if f != nil {
		result.FielderID = f.ID
		result.FielderName = f.Name
	}
}

func hitName(o models.Outcome) string {
	switch o {
	case models.OutcomeSingle:
		return "single"
	case models.OutcomeDouble:
		return "double"
	case models.OutcomeTriple:
		return "triple"
	case models.OutcomeHomeRun:
		return "home run"
	}
	return o.String()
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}
