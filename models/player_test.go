package models

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestRateOr(t *testing.T) {
	tests := []struct {
		name     string
		rate     *float64
		fallback float64
		want     float64
	}{
		{"nil falls back", nil, 0.22, 0.22},
		{"valid rate passes through", ptr(0.31), 0.22, 0.31},
		{"zero is valid", ptr(0), 0.22, 0},
		{"one is valid", ptr(1), 0.22, 1},
		{"NaN falls back", ptr(math.NaN()), 0.22, 0.22},
		{"positive infinity falls back", ptr(math.Inf(1)), 0.22, 0.22},
		{"negative falls back", ptr(-0.1), 0.22, 0.22},
		{"above one falls back", ptr(1.5), 0.22, 0.22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RateOr(tt.rate, tt.fallback); got != tt.want {
				t.Errorf("RateOr() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRatingOr(t *testing.T) {
	tests := []struct {
		name   string
		rating *float64
		want   float64
	}{
		{"nil falls back", nil, 50},
		{"valid passes through", ptr(85), 85},
		{"negative falls back", ptr(-5), 50},
		{"above 100 falls back", ptr(120), 50},
		{"NaN falls back", ptr(math.NaN()), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RatingOr(tt.rating, 50); got != tt.want {
				t.Errorf("RatingOr() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestFielderErrorRate(t *testing.T) {
	f := &Fielder{Putouts: 80, Assists: 15, Errors: 5}
	if got := f.ErrorRate(0.01); got != 0.05 {
		t.Errorf("ErrorRate() = %f, want 0.05", got)
	}

	empty := &Fielder{}
	if got := empty.ErrorRate(0.01); got != 0.01 {
		t.Errorf("ErrorRate() with no chances = %f, want fallback 0.01", got)
	}

	var missing *Fielder
	if got := missing.ErrorRate(0.01); got != 0.01 {
		t.Errorf("ErrorRate() on nil fielder = %f, want fallback 0.01", got)
	}
}

func TestHitByPitchRate(t *testing.T) {
	b := &Batter{PlateAppearances: 500, HitByPitch: 10}
	if got := b.HitByPitchRate(); got != 0.02 {
		t.Errorf("HitByPitchRate() = %f, want 0.02", got)
	}

	noPA := &Batter{HitByPitch: 3}
	if got := noPA.HitByPitchRate(); got != 0 {
		t.Errorf("HitByPitchRate() with no PA = %f, want 0", got)
	}
}

func TestHitShares(t *testing.T) {
	b := &Batter{Singles: 60, Doubles: 30, Triples: 10}
	single, double, triple := b.HitShares(0.70, 0.20, 0.10)
	if single != 0.6 || double != 0.3 || triple != 0.1 {
		t.Errorf("HitShares() = %f/%f/%f, want 0.6/0.3/0.1", single, double, triple)
	}

	noHits := &Batter{}
	single, double, triple = noHits.HitShares(0.70, 0.20, 0.10)
	if single != 0.70 || double != 0.20 || triple != 0.10 {
		t.Errorf("HitShares() with no hits = %f/%f/%f, want league shape", single, double, triple)
	}
}
