package analysis

import (
	"github.com/kiteco/jetml/kite-golib/jetdata"
	"github.com/kiteco/jetml/kite-golib/nsubjettiness"
)

// Result holds the observable values of every jet
type Result struct {
	Observables []nsubjettiness.Observable
	// Values is indexed by observable, then jet
	Values  [][]float64
	NumJets int
}

func newResult(observables []nsubjettiness.Observable, numJets int) *Result {
	r := &Result{
		Observables: observables,
		Values:      make([][]float64, len(observables)),
		NumJets:     numJets,
	}
	for i := range r.Values {
		r.Values[i] = make([]float64, numJets)
	}
	return r
}

// set stores the values of one jet; each jet index is written by exactly one worker
func (r *Result) set(jet int, values []float64) {
	for o, v := range values {
		r.Values[o][jet] = v
	}
}

// Column returns the values of the named observable
func (r *Result) Column(name string) ([]float64, bool) {
	for i, o := range r.Observables {
		if o.Name() == name {
			return r.Values[i], true
		}
	}
	return nil, false
}

// FeatureMatrix returns the values row-major as (jets x observables), one row per jet
func (r *Result) FeatureMatrix() []float64 {
	n := len(r.Observables)
	m := make([]float64, r.NumJets*n)
	for o, col := range r.Values {
		for j, v := range col {
			m[j*n+o] = v
		}
	}
	return m
}

// Output assembles the feature file contents for the dataset the result was computed from
func (r *Result) Output(ds *jetdata.Dataset) *jetdata.Output {
	out := &jetdata.Output{
		Labels:   ds.Labels,
		Dataset:  ds,
		Features: r.FeatureMatrix(),
	}
	for _, o := range r.Observables {
		out.NList = append(out.NList, int64(o.N))
		out.BetaList = append(out.BetaList, o.Beta)
	}
	return out
}

// ResultFromOutput rebuilds a Result from a feature file
func ResultFromOutput(out *jetdata.Output) *Result {
	var observables []nsubjettiness.Observable
	for i := range out.NList {
		observables = append(observables, nsubjettiness.Observable{N: int(out.NList[i]), Beta: out.BetaList[i]})
	}

	r := &Result{
		Observables: observables,
		Values:      make([][]float64, len(observables)),
		NumJets:     out.NumJets(),
	}
	for i := range observables {
		r.Values[i] = out.Column(i)
	}
	return r
}
