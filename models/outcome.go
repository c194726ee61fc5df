package models

// Outcome is the closed set of plate appearance results the probability
// model can produce.
type Outcome int

const (
	OutcomeStrikeout Outcome = iota
	OutcomeWalk
	OutcomeHitByPitch
	OutcomeHomeRun
	OutcomeSingle
	OutcomeDouble
	OutcomeTriple
	OutcomeInPlayOut
)

// Outcomes lists every outcome in sampling order. Cumulative draws over a
// Distribution iterate this slice so results are reproducible for a given
// random sequence.
var Outcomes = []Outcome{
	OutcomeStrikeout,
	OutcomeWalk,
	OutcomeHitByPitch,
	OutcomeHomeRun,
	OutcomeSingle,
	OutcomeDouble,
	OutcomeTriple,
	OutcomeInPlayOut,
}

// String returns the conventional scorebook abbreviation
func (o Outcome) String() string {
	switch o {
	case OutcomeStrikeout:
		return "K"
	case OutcomeWalk:
		return "BB"
	case OutcomeHitByPitch:
		return "HBP"
	case OutcomeHomeRun:
		return "HR"
	case OutcomeSingle:
		return "1B"
	case OutcomeDouble:
		return "2B"
	case OutcomeTriple:
		return "3B"
	case OutcomeInPlayOut:
		return "Out"
	default:
		return "?"
	}
}

// IsHit reports whether the outcome puts the batter on base via a base hit
func (o Outcome) IsHit() bool {
	switch o {
	case OutcomeSingle, OutcomeDouble, OutcomeTriple, OutcomeHomeRun:
		return true
	}
	return false
}

// BaseCount returns how many bases the outcome is worth to runners (0 for
// outcomes that are not hits).
func (o Outcome) BaseCount() int {
	switch o {
	case OutcomeSingle:
		return 1
	case OutcomeDouble:
		return 2
	case OutcomeTriple:
		return 3
	case OutcomeHomeRun:
		return 4
	default:
		return 0
	}
}

// Distribution maps each outcome to its probability. A well-formed
// distribution has all eight outcome keys present, each in [0,1], summing
// to 1 within floating tolerance.
type Distribution map[Outcome]float64

// Total returns the probability mass across all outcomes
func (d Distribution) Total() float64 {
	var total float64
	for _, o := range Outcomes {
		total += d[o]
	}
	return total
}

// Normalize rescales the distribution to sum to exactly 1. A distribution
// with no mass is left untouched.
func (d Distribution) Normalize() {
	total := d.Total()
	if total <= 0 {
		return
	}
	for _, o := range Outcomes {
		d[o] = d[o] / total
	}
}

// Clone returns an independent copy of the distribution
func (d Distribution) Clone() Distribution {
	out := make(Distribution, len(Outcomes))
	for _, o := range Outcomes {
		out[o] = d[o]
	}
	return out
}
