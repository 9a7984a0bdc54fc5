package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtyler88/Phase-Diagrams/internal/config"
	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
	"github.com/mtyler88/Phase-Diagrams/internal/physics"
)

func TestDamping(t *testing.T) {
	cfg := config.DefaultConfig()

	tests := []struct {
		frame int
		want  float64
	}{
		{0, 0},
		{25, 1},
		{50, 0},
		{75, -1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Damping(cfg, tt.frame), 1e-12, "frame %d", tt.frame)
	}

	cfg.DampingAmplitude = 0.25
	assert.InDelta(t, 0.25, Damping(cfg, 25), 1e-12)
}

func TestInitialMomentum(t *testing.T) {
	cfg := config.DefaultConfig()
	spacing := 24.0 / 50

	assert.InDelta(t, -12.0, InitialMomentum(cfg, 0, 0), 1e-12)
	assert.InDelta(t, -12+spacing, InitialMomentum(cfg, 0, 1), 1e-12)
	assert.InDelta(t, -12+spacing/2, InitialMomentum(cfg, 50, 0), 1e-12)
	assert.InDelta(t, 12-spacing, InitialMomentum(cfg, 0, 49), 1e-12)

	// The sweep slides by just under one spacing over the animation.
	last := InitialMomentum(cfg, cfg.Frames-1, 0)
	assert.Less(t, last, -12+spacing)
	assert.Greater(t, last, -12+0.98*spacing)
}

func TestPlan(t *testing.T) {
	cfg := config.DefaultConfig()

	plan, err := Plan(cfg, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, plan.Frame)
	assert.InDelta(t, 1.0, plan.Damping, 1e-12)
	require.Len(t, plan.Initial, cfg.Lines)
	for i, x := range plan.Initial {
		assert.Zero(t, x.Q)
		assert.InDelta(t, InitialMomentum(cfg, 25, i), x.P, 1e-12)
	}

	field, ok := plan.Field.(*physics.Dissipative)
	require.True(t, ok, "default field is %T", plan.Field)
	assert.InDelta(t, 1.0, field.Damping, 1e-12)
	assert.Equal(t, 0.5, field.Frequency)
}

func TestPlanUnknownField(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Field = "spring"

	_, err := Plan(cfg, 0)
	assert.ErrorIs(t, err, dynamo.ErrUnknownField)
}

func TestPlanFieldParams(t *testing.T) {
	cfg := config.GetPreset("doublewell")
	cfg.FieldParams = map[string]float64{"A": 2, "B": 0.25}

	plan, err := Plan(cfg, 25)
	require.NoError(t, err)
	well, ok := plan.Field.(*physics.DoubleWell)
	require.True(t, ok, "field is %T", plan.Field)
	assert.Equal(t, 2.0, well.A)
	assert.Equal(t, 0.25, well.B)
	assert.InDelta(t, plan.Damping, well.Damping, 1e-12)

	cfg.FieldParams = map[string]float64{"C": 1}
	_, err = Plan(cfg, 0)
	assert.ErrorIs(t, err, dynamo.ErrUnknownParam)
}

func TestPlanDampingIsPeriodic(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Frames = 8
	for f := 0; f < cfg.Frames; f++ {
		want := math.Sin(2 * math.Pi * float64(f) / 8)
		assert.InDelta(t, want, Damping(cfg, f), 1e-12)
	}
}
