package catcher

import "testing"

func TestSensorPolicy_SteersTowardBalls(t *testing.T) {
	p := SensorPolicy{}
	if a := p.Act(Observation{0, 1, 1, 0, 0, 0, 0, 0}); a != ActionLeft {
		t.Fatalf("balls seen on the left: expected left, got %s", a)
	}
	if a := p.Act(Observation{0, 0, 0, 0, 0, 0, 0, 1}); a != ActionRight {
		t.Fatalf("balls seen on the right: expected right, got %s", a)
	}
}

func TestSensorPolicy_CentreOnTie(t *testing.T) {
	p := SensorPolicy{}
	if a := p.Act(Observation{0.6, 0, 0, 0, 1, 0, 0, 0}); a != ActionLeft {
		t.Fatalf("centre ray only, right of centre: expected left, got %s", a)
	}
	if a := p.Act(Observation{-0.6, 0, 0, 0, 0, 0, 0, 0}); a != ActionRight {
		t.Fatalf("nothing seen, left of centre: expected right, got %s", a)
	}
}

func TestRandomPolicy_StaysInSpace(t *testing.T) {
	p := NewRandomPolicy(1)
	seen := map[Action]bool{}
	for i := 0; i < 200; i++ {
		a := p.Act(nil)
		if !ActionSpace.Contains(a) {
			t.Fatalf("random policy produced %d", a)
		}
		seen[a] = true
	}
	if len(seen) != 2 {
		t.Fatalf("expected both actions over 200 draws, saw %v", seen)
	}
}

func TestActionSequence_RepeatsLast(t *testing.T) {
	s := NewActionSequence(ActionLeft, ActionRight)
	got := []Action{s.Act(nil), s.Act(nil), s.Act(nil), s.Act(nil)}
	want := []Action{ActionLeft, ActionRight, ActionRight, ActionRight}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("action %d: want %s got %s", i, want[i], got[i])
		}
	}
	if NewActionSequence().Act(nil) != ActionRight {
		t.Fatal("empty sequence defaults to right")
	}
}
