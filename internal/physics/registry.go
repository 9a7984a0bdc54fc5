package physics

import (
	"fmt"
	"sort"

	"github.com/mtyler88/Phase-Diagrams/internal/dynamo"
)

// Params carries the per-frame parameters a field constructor may use.
// Overrides are applied by name through [dynamo.Configurable] after
// construction, so they win over Damping and Frequency.
type Params struct {
	Damping   float64
	Frequency float64
	Overrides map[string]float64
}

var fields = map[string]func(Params) dynamo.Field{
	"pendulum":    func(Params) dynamo.Field { return NewPendulum() },
	"attractor":   func(Params) dynamo.Field { return NewAttractor() },
	"dissipative": func(p Params) dynamo.Field { return NewDissipative(p.Damping, p.Frequency) },
	"doublewell":  func(p Params) dynamo.Field { return NewDoubleWell(p.Damping) },
	"vanderpol":   func(p Params) dynamo.Field { return NewVanDerPol(p.Damping) },
}

// New builds the named field. Fields that take no parameters ignore p.
func New(name string, p Params) (dynamo.Field, error) {
	fn, ok := fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownField, name, Names())
	}
	f := fn(p)
	if err := Configure(f, p.Overrides); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// Configure sets each named parameter of f, in name order.
func Configure(f dynamo.Field, params map[string]float64) error {
	if len(params) == 0 {
		return nil
	}
	c, ok := f.(dynamo.Configurable)
	if !ok {
		return fmt.Errorf("%w: field takes no parameters", dynamo.ErrUnknownParam)
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.SetParam(name, params[name]); err != nil {
			return err
		}
	}
	return nil
}

func Names() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
