package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"zeros", State{}, true},
		{"normal", State{Q: 1.0, P: -2.0}, true},
		{"NaN position", State{Q: math.NaN(), P: 1}, false},
		{"NaN momentum", State{Q: 1, P: math.NaN()}, false},
		{"+Inf", State{Q: math.Inf(1), P: 0}, false},
		{"-Inf", State{Q: 0, P: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{Q: 1, P: 2}
	b := State{Q: 4, P: 6}

	if got := a.Add(b); got != (State{Q: 5, P: 8}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (State{Q: 3, P: 4}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (State{Q: 2, P: 4}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := (State{Q: 3, P: 4}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm = %v, want 5", got)
	}
}

func TestInterval_Map(t *testing.T) {
	src := Interval{Lo: -math.Pi, Hi: math.Pi}
	dst := Interval{Lo: 0, Hi: 800}

	tests := []struct {
		in, want float64
	}{
		{-math.Pi, 0},
		{0, 400},
		{math.Pi, 800},
		{2 * math.Pi, 1200},
	}

	for _, tt := range tests {
		if got := src.Map(tt.in, dst); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Map(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInterval_Contains(t *testing.T) {
	i := Interval{Lo: -1, Hi: 1}
	if !i.Contains(-1) {
		t.Error("lower end should be inside")
	}
	if i.Contains(1) {
		t.Error("upper end should be outside")
	}
}

func TestFrameError(t *testing.T) {
	base := errors.New("disk full")
	err := error(&FrameError{Frame: 7, Wrapped: base})

	if err.Error() != "frame 007: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("FrameError should unwrap to its cause")
	}

	var fe *FrameError
	if !errors.As(err, &fe) || fe.Frame != 7 {
		t.Error("errors.As should recover the frame index")
	}
}

func TestStepError(t *testing.T) {
	err := StepError{Step: 3, State: State{Q: math.NaN()}}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("StepError should unwrap to ErrInvalidState")
	}
}
