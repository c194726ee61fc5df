package simulation

import (
	"math"

	"github.com/mbutler/baseball-simulator-sub000/models"
)

// Situation carries the game context the probability model may nudge the
// distribution for. A nil Situation means no situational adjustment.
type Situation struct {
	RunnerInScoringPosition bool
	LateAndClose            bool
	TwoOuts                 bool
}

// SituationFrom derives the situational context from the current game state
func SituationFrom(gs *models.GameState) Situation {
	diff := gs.HomeScore - gs.AwayScore
	if diff < 0 {
		diff = -diff
	}
	return Situation{
		RunnerInScoringPosition: gs.Bases.RunnersInScoringPosition(),
		LateAndClose:            gs.Inning >= 7 && diff <= 1,
		TwoOuts:                 gs.Outs == 2,
	}
}

// ComputeProbabilities builds the eight-outcome distribution for one
// batter/pitcher matchup. It never fails: nil or garbage rates fall back to
// league averages, every component is clamped to [0,1], and the result is
// renormalized to sum to exactly 1.
//
// K, BB and HR combine multiplicatively against league average so that two
// extreme matchup halves compound instead of averaging out. BABIP combines
// as a simple mean clamped to a realistic band.
func ComputeProbabilities(batter *models.Batter, pitcher *models.Pitcher, sit *Situation, tun models.Tunables) models.Distribution {
	kRate := combineRates(
		models.RateOr(batter.StrikeoutRate, tun.LeagueStrikeoutRate),
		models.RateOr(pitcher.StrikeoutRate, tun.LeagueStrikeoutRate),
		tun.LeagueStrikeoutRate)
	bbRate := combineRates(
		models.RateOr(batter.WalkRate, tun.LeagueWalkRate),
		models.RateOr(pitcher.WalkRate, tun.LeagueWalkRate),
		tun.LeagueWalkRate)
	hrRate := combineRates(
		models.RateOr(batter.HomeRunRate, tun.LeagueHomeRunRate),
		models.RateOr(pitcher.HomeRunRate, tun.LeagueHomeRunRate),
		tun.LeagueHomeRunRate)

	babip := (models.RateOr(batter.BABIP, tun.LeagueBABIP) +
		models.RateOr(pitcher.BABIP, tun.LeagueBABIP)) / 2
	babip = clamp(babip, tun.BABIPFloor, tun.BABIPCeil)

	hbpRate := clamp01(batter.HitByPitchRate())

	ballsInPlay := 1 - (kRate + bbRate + hbpRate + hrRate)
	if ballsInPlay < 0 {
		ballsInPlay = 0
	}

	hitsInPlay := babip * ballsInPlay
	outsInPlay := ballsInPlay - hitsInPlay

	singleShare, doubleShare, tripleShare := batter.HitShares(
		tun.LeagueSingleShare, tun.LeagueDoubleShare, tun.LeagueTripleShare)

	dist := models.Distribution{
		models.OutcomeStrikeout:  kRate,
		models.OutcomeWalk:       bbRate,
		models.OutcomeHitByPitch: hbpRate,
		models.OutcomeHomeRun:    hrRate,
		models.OutcomeSingle:     hitsInPlay * singleShare,
		models.OutcomeDouble:     hitsInPlay * doubleShare,
		models.OutcomeTriple:     hitsInPlay * tripleShare,
		models.OutcomeInPlayOut:  outsInPlay,
	}

	if sit != nil {
		applySituation(dist, *sit, tun)
	}

	// Final defensive pass: clamp everything, then renormalize
	for _, o := range models.Outcomes {
		v := dist[o]
		if math.IsNaN(v) || v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		dist[o] = v
	}

	if dist.Total() <= 0 {
		return leagueDistribution(tun)
	}
	dist.Normalize()
	return dist
}

// combineRates combines a batter rate and a pitcher rate multiplicatively
// relative to league average: rate = b * p / league.
func combineRates(batterRate, pitcherRate, leagueRate float64) float64 {
	if leagueRate <= 0 {
		return clamp01((batterRate + pitcherRate) / 2)
	}
	return clamp01(batterRate * pitcherRate / leagueRate)
}

// applySituation moves a small amount of hit mass toward outs under
// pressure situations. The coefficients are tunables, not rules.
func applySituation(dist models.Distribution, sit Situation, tun models.Tunables) {
	var shift float64
	if sit.RunnerInScoringPosition {
		shift += tun.RISPPressureShift
	}
	if sit.TwoOuts {
		shift += tun.TwoOutShift
	}
	if sit.LateAndClose {
		shift += tun.LateCloseShift
	}
	if shift <= 0 {
		return
	}

	hitMass := dist[models.OutcomeSingle] + dist[models.OutcomeDouble] + dist[models.OutcomeTriple]
	if hitMass <= 0 {
		return
	}
	if shift > hitMass/2 {
		shift = hitMass / 2
	}

	scale := (hitMass - shift) / hitMass
	dist[models.OutcomeSingle] *= scale
	dist[models.OutcomeDouble] *= scale
	dist[models.OutcomeTriple] *= scale
	dist[models.OutcomeInPlayOut] += shift
}

// leagueDistribution is the safety net when input stats are so degenerate
// the computed distribution carries no mass.
func leagueDistribution(tun models.Tunables) models.Distribution {
	bip := 1 - (tun.LeagueStrikeoutRate + tun.LeagueWalkRate + tun.LeagueHomeRunRate)
	hits := tun.LeagueBABIP * bip
	dist := models.Distribution{
		models.OutcomeStrikeout:  tun.LeagueStrikeoutRate,
		models.OutcomeWalk:       tun.LeagueWalkRate,
		models.OutcomeHitByPitch: 0,
		models.OutcomeHomeRun:    tun.LeagueHomeRunRate,
		models.OutcomeSingle:     hits * tun.LeagueSingleShare,
		models.OutcomeDouble:     hits * tun.LeagueDoubleShare,
		models.OutcomeTriple:     hits * tun.LeagueTripleShare,
		models.OutcomeInPlayOut:  bip - hits,
	}
	dist.Normalize()
	return dist
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
