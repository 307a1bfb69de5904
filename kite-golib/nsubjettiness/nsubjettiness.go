package nsubjettiness

import (
	"fmt"

	"github.com/kiteco/jetml/kite-golib/errors"
	"github.com/kiteco/jetml/kite-golib/fastjet"
)

// Nsubjettiness computes tau_N for a single N
type Nsubjettiness struct {
	n       int
	axes    AxesDefinition
	measure Measure
}

// New validates n and returns the calculator
func New(n int, axes AxesDefinition, measure Measure) (*Nsubjettiness, error) {
	if n < 1 {
		return nil, errors.New("number of axes must be at least 1, got %d", n)
	}
	return &Nsubjettiness{n: n, axes: axes, measure: measure}, nil
}

// Result returns the unnormalized tau_N of the given constituents
func (t *Nsubjettiness) Result(constituents []fastjet.PseudoJet) (float64, error) {
	axes, err := t.axes.Prepare(constituents)
	if err != nil {
		return 0, err
	}
	return t.measure.Tau(constituents, axes.Axes(t.n)), nil
}

func (t *Nsubjettiness) String() string {
	return fmt.Sprintf("N-subjettiness with N = %d, %s, %s", t.n, t.axes.Description(), t.measure.Description())
}

// Calculator evaluates a list of observables on jets
type Calculator struct {
	observables []Observable
	measures    []Measure
	axes        AxesDefinition
}

// NewCalculator validates the observables
func NewCalculator(observables []Observable, axes AxesDefinition) (*Calculator, error) {
	if len(observables) == 0 {
		return nil, errors.New("no observables to compute")
	}

	c := &Calculator{
		observables: observables,
		axes:        axes,
	}
	for _, o := range observables {
		if o.N < 1 {
			return nil, errors.New("%s: number of axes must be at least 1", o.Name())
		}
		m, err := NewUnnormalizedMeasure(o.Beta)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", o.Name())
		}
		c.measures = append(c.measures, m)
	}
	return c, nil
}

// Observables returns the observables in evaluation order
func (c *Calculator) Observables() []Observable {
	return c.observables
}

// Compute returns tau_N^beta / pt(jet) for every observable, in order.
func (c *Calculator) Compute(jet fastjet.PseudoJet, constituents []fastjet.PseudoJet) ([]float64, error) {
	pt := jet.Pt()
	if pt == 0 {
		return nil, errors.New("jet has zero transverse momentum")
	}

	axes, err := c.axes.Prepare(constituents)
	if err != nil {
		return nil, err
	}

	byN := make(map[int][]fastjet.PseudoJet)
	values := make([]float64, len(c.observables))
	for i, o := range c.observables {
		a, ok := byN[o.N]
		if !ok {
			a = axes.Axes(o.N)
			byN[o.N] = a
		}
		values[i] = c.measures[i].Tau(constituents, a) / pt
	}
	return values, nil
}
