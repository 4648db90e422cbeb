package domain

import (
	"testing"
)

func TestMapProportion(t *testing.T) {
	tests := []struct {
		count KickCount
		want  Proportion
	}{
		{0, Proportion{Achieved: 0, Remaining: 10}},
		{1, Proportion{Achieved: 1, Remaining: 9}},
		{6, Proportion{Achieved: 6, Remaining: 4}},
		{10, Proportion{Achieved: 10, Remaining: 0}},
		{12, Proportion{Achieved: 10, Remaining: 0}},
		{1000, Proportion{Achieved: 10, Remaining: 0}},
	}

	for _, tt := range tests {
		got := MapProportion(tt.count)
		if got != tt.want {
			t.Errorf("MapProportion(%d) = %+v, want %+v", tt.count, got, tt.want)
		}
	}
}

func TestMapProportion_SumsToGoal(t *testing.T) {
	for c := KickCount(0); c <= 50; c++ {
		p := MapProportion(c)
		if p.Total() != DailyGoal {
			t.Fatalf("MapProportion(%d) total = %d, want %d", c, p.Total(), DailyGoal)
		}
		if c > DailyGoal && (p.Achieved != DailyGoal || p.Remaining != 0) {
			t.Fatalf("MapProportion(%d) = %+v, want full ring", c, p)
		}
		if p.Remaining < 0 {
			t.Fatalf("MapProportion(%d) remaining is negative", c)
		}
	}
}

func TestProportion_Fraction(t *testing.T) {
	if got := MapProportion(5).Fraction(); got != 0.5 {
		t.Errorf("Fraction() = %v, want 0.5", got)
	}
	if got := MapProportion(25).Fraction(); got != 1 {
		t.Errorf("Fraction() = %v, want 1", got)
	}
	if got := (Proportion{}).Fraction(); got != 0 {
		t.Errorf("zero Proportion Fraction() = %v, want 0", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		count KickCount
		want  ActivityMessage
	}{
		{0, MessageNotActive},
		{3, MessageNotActive},
		{4, MessageQuiteActive},
		{7, MessageQuiteActive},
		{8, MessageVeryActive},
		{12, MessageVeryActive},
	}

	for _, tt := range tests {
		if got := Classify(tt.count); got != tt.want {
			t.Errorf("Classify(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestClassify_TiersPartition(t *testing.T) {
	tiers := map[ActivityMessage]int{}
	prev := Classify(0)
	changes := 0
	for c := KickCount(0); c <= 100; c++ {
		msg := Classify(c)
		tiers[msg]++
		if msg != prev {
			changes++
			if c != QuiteActiveThreshold && c != VeryActiveThreshold {
				t.Errorf("tier changed at %d, want only at %d and %d", c, QuiteActiveThreshold, VeryActiveThreshold)
			}
			prev = msg
		}
	}
	if len(tiers) != 3 {
		t.Errorf("got %d tiers, want 3", len(tiers))
	}
	if changes != 2 {
		t.Errorf("got %d tier changes, want 2", changes)
	}
}

func TestPureFunctionsAreIdempotent(t *testing.T) {
	for c := KickCount(0); c <= 20; c++ {
		if MapProportion(c) != MapProportion(c) {
			t.Errorf("MapProportion(%d) not stable", c)
		}
		if Classify(c) != Classify(c) {
			t.Errorf("Classify(%d) not stable", c)
		}
	}
}

func TestActivityMessage_Lines(t *testing.T) {
	lines := MessageNotActive.Lines()
	if len(lines) != 2 {
		t.Fatalf("Lines() returned %d lines, want 2", len(lines))
	}
	if lines[0] != "Not really active," || lines[1] != "maybe they're asleep" {
		t.Errorf("Lines() = %q", lines)
	}
	if got := MessageQuiteActive.Lines(); len(got) != 1 {
		t.Errorf("single-line message split into %d lines", len(got))
	}
	if got := ActivityMessage("").Lines(); got != nil {
		t.Errorf("empty message Lines() = %q, want nil", got)
	}
	if got := MessageNotActive.OneLine(); got != "Not really active, maybe they're asleep" {
		t.Errorf("OneLine() = %q", got)
	}
}

func TestKickCount_Caption(t *testing.T) {
	if got := KickCount(6).Caption(); got != "6 / 10 kicks today" {
		t.Errorf("Caption() = %q", got)
	}
}
