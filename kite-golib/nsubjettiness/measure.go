package nsubjettiness

import (
	"math"

	"github.com/kiteco/jetml/kite-golib/errors"
	"github.com/kiteco/jetml/kite-golib/fastjet"
)

// Measure turns constituents and axes into a tau value
type Measure interface {
	Description() string
	Tau(inputs, axes []fastjet.PseudoJet) float64
}

// UnnormalizedMeasure weights each constituent's pt by dR^beta to its nearest axis, with no radius cutoff
type UnnormalizedMeasure struct {
	Beta float64
}

// NewUnnormalizedMeasure validates beta
func NewUnnormalizedMeasure(beta float64) (UnnormalizedMeasure, error) {
	if !(beta > 0) || math.IsInf(beta, 0) {
		return UnnormalizedMeasure{}, errors.New("beta must be positive and finite, got %g", beta)
	}
	return UnnormalizedMeasure{Beta: beta}, nil
}

// Description implements Measure
func (m UnnormalizedMeasure) Description() string {
	return "unnormalized measure (beta = " + formatBeta(m.Beta) + ")"
}

// Tau implements Measure. With no axes there is nothing to measure against and tau is 0.
func (m UnnormalizedMeasure) Tau(inputs, axes []fastjet.PseudoJet) float64 {
	if len(axes) == 0 {
		return 0
	}

	halfBeta := m.Beta / 2
	var tau float64
	for _, p := range inputs {
		minDist := math.Inf(1)
		for _, axis := range axes {
			if d := p.SquaredDistance(axis); d < minDist {
				minDist = d
			}
		}
		tau += p.Pt() * math.Pow(minDist, halfBeta)
	}
	return tau
}
