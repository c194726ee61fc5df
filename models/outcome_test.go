package models

import (
	"math"
	"testing"
)

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeStrikeout, "K"},
		{OutcomeWalk, "BB"},
		{OutcomeHitByPitch, "HBP"},
		{OutcomeHomeRun, "HR"},
		{OutcomeSingle, "1B"},
		{OutcomeDouble, "2B"},
		{OutcomeTriple, "3B"},
		{OutcomeInPlayOut, "Out"},
		{Outcome(99), "?"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}

func TestOutcomeIsHit(t *testing.T) {
	hits := map[Outcome]bool{
		OutcomeSingle:  true,
		OutcomeDouble:  true,
		OutcomeTriple:  true,
		OutcomeHomeRun: true,
	}

	for _, o := range Outcomes {
		if got := o.IsHit(); got != hits[o] {
			t.Errorf("%s.IsHit() = %v, want %v", o, got, hits[o])
		}
	}
}

func TestOutcomeBaseCount(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    int
	}{
		{OutcomeSingle, 1},
		{OutcomeDouble, 2},
		{OutcomeTriple, 3},
		{OutcomeHomeRun, 4},
		{OutcomeStrikeout, 0},
		{OutcomeWalk, 0},
		{OutcomeHitByPitch, 0},
		{OutcomeInPlayOut, 0},
	}

	for _, tt := range tests {
		if got := tt.outcome.BaseCount(); got != tt.want {
			t.Errorf("%s.BaseCount() = %d, want %d", tt.outcome, got, tt.want)
		}
	}
}

func TestDistributionNormalize(t *testing.T) {
	d := Distribution{
		OutcomeStrikeout: 0.5,
		OutcomeWalk:      0.5,
		OutcomeSingle:    1.0,
	}

	d.Normalize()

	if total := d.Total(); math.Abs(total-1.0) > 1e-9 {
		t.Errorf("Total() after Normalize = %f, want 1.0", total)
	}
	if math.Abs(d[OutcomeSingle]-0.5) > 1e-9 {
		t.Errorf("single probability = %f, want 0.5", d[OutcomeSingle])
	}
}

func TestDistributionNormalizeNoMass(t *testing.T) {
	d := Distribution{}
	d.Normalize()

	if total := d.Total(); total != 0 {
		t.Errorf("Total() for empty distribution = %f, want 0", total)
	}
}

func TestDistributionClone(t *testing.T) {
	d := Distribution{OutcomeWalk: 0.3, OutcomeInPlayOut: 0.7}
	c := d.Clone()

	c[OutcomeWalk] = 0.9
	if d[OutcomeWalk] != 0.3 {
		t.Errorf("mutating clone changed original: got %f, want 0.3", d[OutcomeWalk])
	}
	if c[OutcomeInPlayOut] != 0.7 {
		t.Errorf("clone lost mass: got %f, want 0.7", c[OutcomeInPlayOut])
	}
}
