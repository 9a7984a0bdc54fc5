package metrics

import (
	"math"
	"testing"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
	"github.com/mtyler88/Phase-Diagrams/internal/integrators"
	"github.com/mtyler88/Phase-Diagrams/internal/physics"
	"github.com/mtyler88/Phase-Diagrams/internal/trajectory"
)

func TestEnergyValue(t *testing.T) {
	m := NewEnergy(physics.NewPendulum())

	x := dynamo.State{Q: math.Pi / 4, P: 1}
	m.Observe(x)

	expected := 0.5 - math.Cos(math.Pi/4)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftConservative(t *testing.T) {
	field := physics.NewPendulum()
	g, err := trajectory.NewGenerator(integrators.NewRK4(), field, 0.01, trajectory.Options{})
	if err != nil {
		t.Fatal(err)
	}
	states, _ := g.Generate(dynamo.State{Q: 0, P: 1.2}, 20000)

	vals := Observe(states, NewEnergyDrift(field))
	if vals["energy_drift"] > 1e-5 {
		t.Errorf("energy drift %.3e too large for a conservative field", vals["energy_drift"])
	}
}

func TestEnergyDriftDissipative(t *testing.T) {
	field := physics.NewDissipative(0.5, 0.5)
	g, err := trajectory.NewGenerator(integrators.NewRK4(), field, 0.01, trajectory.Options{})
	if err != nil {
		t.Fatal(err)
	}
	states, _ := g.Generate(dynamo.State{Q: 0, P: 1.2}, 2000)

	vals := Observe(states, NewEnergyDrift(field))
	if vals["energy_drift"] < 0.1 {
		t.Errorf("damped field should lose energy, drift %.3e", vals["energy_drift"])
	}
}

func TestInView(t *testing.T) {
	m := NewInView(dynamo.Interval{Lo: -1, Hi: 1}, dynamo.Interval{Lo: -1, Hi: 1})
	if m.Value() != 1 {
		t.Error("empty observation should count as fully visible")
	}

	vals := Observe([]dynamo.State{{Q: 0, P: 0}, {Q: 0, P: 5}, {Q: 0.5, P: -0.5}, {Q: 1, P: 0}}, m)
	if vals["in_view"] != 0.5 {
		t.Errorf("expected 0.5 in view, got %f", vals["in_view"])
	}
}

func TestWraps(t *testing.T) {
	m := NewWraps(dynamo.Interval{Lo: -math.Pi, Hi: math.Pi})
	states := []dynamo.State{{Q: 3.1}, {Q: -3.1}, {Q: -3.0}, {Q: 3.1}, {Q: 3.0}}

	vals := Observe(states, m)
	if vals["wraps"] != 2 {
		t.Errorf("expected 2 wraps, got %v", vals["wraps"])
	}
}
