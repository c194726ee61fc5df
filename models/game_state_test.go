package models

import (
	"reflect"
	"testing"
)

func runner(id string) *BaseRunner {
	return &BaseRunner{PlayerID: id, Name: id, Speed: 50, BaserunningValue: 50}
}

func TestNewGameState(t *testing.T) {
	gs := NewGameState("game-1", "run-1")

	if gs.Inning != 1 {
		t.Errorf("Inning = %d, want 1", gs.Inning)
	}
	if gs.InningHalf != TopHalf {
		t.Errorf("InningHalf = %q, want %q", gs.InningHalf, TopHalf)
	}
	if gs.Outs != 0 || gs.HomeScore != 0 || gs.AwayScore != 0 {
		t.Errorf("expected zeroed outs and scores, got outs=%d home=%d away=%d",
			gs.Outs, gs.HomeScore, gs.AwayScore)
	}
	if !gs.Bases.IsEmpty() {
		t.Error("expected empty bases")
	}
	if !gs.BattingIsAway() {
		t.Error("away team should bat in the top of the 1st")
	}
}

func TestAddRuns(t *testing.T) {
	gs := NewGameState("g", "r")

	gs.AddRuns(2)
	if gs.AwayScore != 2 || gs.HomeScore != 0 {
		t.Errorf("top-half runs: away=%d home=%d, want 2/0", gs.AwayScore, gs.HomeScore)
	}

	gs.InningHalf = BottomHalf
	gs.AddRuns(3)
	if gs.AwayScore != 2 || gs.HomeScore != 3 {
		t.Errorf("bottom-half runs: away=%d home=%d, want 2/3", gs.AwayScore, gs.HomeScore)
	}
}

func TestAdvanceHalfInning(t *testing.T) {
	gs := NewGameState("g", "r")
	gs.Outs = 3
	gs.Bases.SetRunner(FirstBase, runner("a"))
	gs.Bases.SetRunner(ThirdBase, runner("b"))

	gs.AdvanceHalfInning()
	if gs.InningHalf != BottomHalf || gs.Inning != 1 {
		t.Errorf("after top: half=%q inning=%d, want bottom/1", gs.InningHalf, gs.Inning)
	}
	if gs.Outs != 0 || !gs.Bases.IsEmpty() {
		t.Error("expected outs and bases reset")
	}

	gs.AdvanceHalfInning()
	if gs.InningHalf != TopHalf || gs.Inning != 2 {
		t.Errorf("after bottom: half=%q inning=%d, want top/2", gs.InningHalf, gs.Inning)
	}
}

func TestBaseStateAccessors(t *testing.T) {
	bs := BaseState{}
	if bs.Count() != 0 || !bs.IsEmpty() || bs.RunnersInScoringPosition() {
		t.Error("empty base state misreported")
	}

	bs.SetRunner(SecondBase, runner("a"))
	if bs.Count() != 1 || bs.IsEmpty() {
		t.Error("one-runner state misreported")
	}
	if !bs.RunnersInScoringPosition() {
		t.Error("runner on second should be in scoring position")
	}
	if bs.RunnerOn(SecondBase) == nil || bs.RunnerOn(FirstBase) != nil {
		t.Error("RunnerOn returned the wrong slot")
	}

	bs.SetRunner(SecondBase, nil)
	if !bs.IsEmpty() {
		t.Error("clearing the base should leave the state empty")
	}

	if bs.RunnerOn(HomePlate) != nil {
		t.Error("home plate is not a real base slot")
	}
}

func TestForceEligible(t *testing.T) {
	tests := []struct {
		name  string
		bases []int
		want  []int
	}{
		{"empty", nil, nil},
		{"runner on first", []int{FirstBase}, []int{FirstBase}},
		{"runner on second only", []int{SecondBase}, nil},
		{"runner on third only", []int{ThirdBase}, nil},
		{"first and second", []int{FirstBase, SecondBase}, []int{SecondBase, FirstBase}},
		{"first and third", []int{FirstBase, ThirdBase}, []int{FirstBase}},
		{"second and third", []int{SecondBase, ThirdBase}, nil},
		{"bases loaded", []int{FirstBase, SecondBase, ThirdBase}, []int{ThirdBase, SecondBase, FirstBase}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs := BaseState{}
			for _, base := range tt.bases {
				bs.SetRunner(base, runner("r"))
			}
			got := bs.ForceEligible()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ForceEligible() = %v, want %v", got, tt.want)
			}
		})
	}
}
