package models

import "math"

// Batter represents a hitter's normalized season record. Derived rates are
// nullable: a nil rate means the sample was too small to trust and the
// engine substitutes the league average from the Tunables table.
type Batter struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Counting stats
	PlateAppearances int `json:"pa"`
	Singles          int `json:"singles"`
	Doubles          int `json:"doubles"`
	Triples          int `json:"triples"`
	HomeRuns         int `json:"hr"`
	Walks            int `json:"bb"`
	Strikeouts       int `json:"so"`
	SacFlies         int `json:"sf"`
	HitByPitch       int `json:"hbp"`

	// Derived rate stats, each nil when the sample is insufficient
	StrikeoutRate *float64 `json:"k_rate,omitempty"`
	WalkRate      *float64 `json:"bb_rate,omitempty"`
	HomeRunRate   *float64 `json:"hr_rate,omitempty"`
	BABIP         *float64 `json:"babip,omitempty"`

	// Baserunning profile, 0-100 scale, nil = league average (~50)
	Speed            *float64 `json:"speed,omitempty"`
	BaserunningValue *float64 `json:"baserunning_value,omitempty"`
}

// Pitcher represents a pitcher's normalized season record
type Pitcher struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Counting stats
	BattersFaced   int     `json:"batters_faced"`
	InningsPitched float64 `json:"ip"`
	Hits           int     `json:"h"`
	Walks          int     `json:"bb"`
	Strikeouts     int     `json:"so"`
	HomeRuns       int     `json:"hr"`
	HitBatters     int     `json:"hbp"`
	Pickoffs       int     `json:"pickoffs"`

	// Derived rate stats, each nil when the sample is insufficient
	StrikeoutRate *float64 `json:"k_rate,omitempty"`
	WalkRate      *float64 `json:"bb_rate,omitempty"`
	HomeRunRate   *float64 `json:"hr_rate,omitempty"`
	BABIP         *float64 `json:"babip,omitempty"`
}

// Fielder represents a defender's normalized season record at their
// primary position
type Fielder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`

	Putouts     int `json:"po"`
	Assists     int `json:"a"`
	Errors      int `json:"e"`
	DoublePlays int `json:"dp"`

	FieldingPct *float64 `json:"fpct,omitempty"`
	RangeFactor *float64 `json:"range_factor,omitempty"`
	TotalZone   *float64 `json:"total_zone,omitempty"`

	// Catcher-only stats
	StolenBasesAllowed int      `json:"sb_allowed,omitempty"`
	CaughtStealing     int      `json:"cs,omitempty"`
	CaughtStealingPct  *float64 `json:"cs_pct,omitempty"`
	ArmStrength        *float64 `json:"arm,omitempty"`
	PassedBalls        int      `json:"passed_balls,omitempty"`
}

// RateOr resolves a nullable rate to a usable probability. Nil, NaN,
// infinite, or out-of-range values all fall back so garbage stats never
// reach the probability model.
func RateOr(rate *float64, fallback float64) float64 {
	if rate == nil {
		return fallback
	}
	v := *rate
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
		return fallback
	}
	return v
}

// RatingOr resolves a nullable 0-100 rating to a usable value
func RatingOr(rating *float64, fallback float64) float64 {
	if rating == nil {
		return fallback
	}
	v := *rating
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 100 {
		return fallback
	}
	return v
}

// ErrorRate returns the fielder's chance of botching a routine play,
// E/(PO+A+E), or the given fallback when no fielding data exists.
func (f *Fielder) ErrorRate(fallback float64) float64 {
	if f == nil {
		return fallback
	}
	chances := f.Putouts + f.Assists + f.Errors
	if chances <= 0 {
		return fallback
	}
	return float64(f.Errors) / float64(chances)
}

// HitByPitchRate returns HBP per plate appearance, 0 when the batter has
// no recorded plate appearances.
func (b *Batter) HitByPitchRate() float64 {
	if b.PlateAppearances <= 0 {
		return 0
	}
	return float64(b.HitByPitch) / float64(b.PlateAppearances)
}

// HitShares splits the batter's historical hits into single/double/triple
// proportions. Batters with no recorded hits fall back to the league shape.
func (b *Batter) HitShares(fallbackSingle, fallbackDouble, fallbackTriple float64) (single, double, triple float64) {
	total := b.Singles + b.Doubles + b.Triples
	if total <= 0 {
		return fallbackSingle, fallbackDouble, fallbackTriple
	}
	return float64(b.Singles) / float64(total),
		float64(b.Doubles) / float64(total),
		float64(b.Triples) / float64(total)
}
