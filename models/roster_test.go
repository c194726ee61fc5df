package models

import (
	"strings"
	"testing"
)

func testLineup(ids ...string) []Batter {
	lineup := make([]Batter, len(ids))
	for i, id := range ids {
		lineup[i] = Batter{ID: id, Name: id}
	}
	return lineup
}

func TestNewRoster(t *testing.T) {
	tests := []struct {
		name    string
		lineup  []Batter
		pitcher Pitcher
		wantErr string
	}{
		{
			name:    "valid roster",
			lineup:  testLineup("b1", "b2", "b3"),
			pitcher: Pitcher{ID: "p1"},
		},
		{
			name:    "empty lineup",
			lineup:  nil,
			pitcher: Pitcher{ID: "p1"},
			wantErr: "empty lineup",
		},
		{
			name:    "duplicate batter",
			lineup:  testLineup("b1", "b2", "b1"),
			pitcher: Pitcher{ID: "p1"},
			wantErr: "duplicate player",
		},
		{
			name:    "pitcher in lineup",
			lineup:  testLineup("b1", "p1"),
			pitcher: Pitcher{ID: "p1"},
			wantErr: "also appears in lineup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster, err := NewRoster("NYY", "Yankees", tt.lineup, tt.pitcher, nil)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("NewRoster() unexpected error: %v", err)
				}
				if roster.TeamID != "NYY" {
					t.Errorf("TeamID = %q, want NYY", roster.TeamID)
				}
				return
			}
			if err == nil {
				t.Fatal("NewRoster() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestFielderAt(t *testing.T) {
	roster, err := NewRoster("BOS", "Red Sox", testLineup("b1"), Pitcher{ID: "p1"}, []Fielder{
		{ID: "f1", Position: "SS"},
		{ID: "f2", Position: "C"},
	})
	if err != nil {
		t.Fatalf("NewRoster() error: %v", err)
	}

	if f := roster.FielderAt("SS"); f == nil || f.ID != "f1" {
		t.Errorf("FielderAt(SS) = %v, want f1", f)
	}
	if f := roster.FielderAt("CF"); f != nil {
		t.Errorf("FielderAt(CF) = %v, want nil", f)
	}
	if c := roster.Catcher(); c == nil || c.ID != "f2" {
		t.Errorf("Catcher() = %v, want f2", c)
	}
}

func TestBatterAtWraps(t *testing.T) {
	roster, err := NewRoster("LAD", "Dodgers", testLineup("b0", "b1", "b2"), Pitcher{ID: "p1"}, nil)
	if err != nil {
		t.Fatalf("NewRoster() error: %v", err)
	}

	for _, tt := range []struct {
		index int
		want  string
	}{
		{0, "b0"}, {2, "b2"}, {3, "b0"}, {7, "b1"},
	} {
		if got := roster.BatterAt(tt.index); got.ID != tt.want {
			t.Errorf("BatterAt(%d) = %s, want %s", tt.index, got.ID, tt.want)
		}
	}
}
