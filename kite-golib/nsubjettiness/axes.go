package nsubjettiness

import (
	"github.com/kiteco/jetml/kite-golib/fastjet"
)

// AxesDefinition prepares the starting axes for a jet's constituents
type AxesDefinition interface {
	Description() string
	// Prepare does the per-jet work shared by every N
	Prepare(inputs []fastjet.PseudoJet) (Axes, error)
}

// Axes returns up to n axes for a prepared jet. Fewer than n axes come back
// when the jet has fewer than n constituents.
type Axes interface {
	Axes(n int) []fastjet.PseudoJet
}

// ExclusiveJetAxes takes the exclusive jets of a clustering of the constituents as axes
type ExclusiveJetAxes struct {
	Def fastjet.JetDefinition
}

// KTAxes are exclusive kt jets at the maximal radius
func KTAxes() ExclusiveJetAxes {
	return ExclusiveJetAxes{Def: fastjet.JetDefinition{Algorithm: fastjet.KtAlgorithm, R: fastjet.MaxAllowableR}}
}

// CAAxes are exclusive Cambridge/Aachen jets at the maximal radius
func CAAxes() ExclusiveJetAxes {
	return ExclusiveJetAxes{Def: fastjet.JetDefinition{Algorithm: fastjet.CambridgeAlgorithm, R: fastjet.MaxAllowableR}}
}

// Description implements AxesDefinition
func (a ExclusiveJetAxes) Description() string {
	return "exclusive " + a.Def.Algorithm.String() + " axes"
}

// Prepare implements AxesDefinition
func (a ExclusiveJetAxes) Prepare(inputs []fastjet.PseudoJet) (Axes, error) {
	cs, err := fastjet.NewClusterSequence(inputs, a.Def)
	if err != nil {
		return nil, err
	}
	return exclusiveAxes{cs: cs}, nil
}

type exclusiveAxes struct {
	cs *fastjet.ClusterSequence
}

func (e exclusiveAxes) Axes(n int) []fastjet.PseudoJet {
	return e.cs.ExclusiveJetsUpTo(n)
}
