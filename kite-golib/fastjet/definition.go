package fastjet

import (
	"fmt"

	"github.com/kiteco/jetml/kite-golib/errors"
)

// MaxAllowableR is the largest jet radius accepted by a JetDefinition; at this
// radius every particle of an event ends up in a single inclusive jet.
const MaxAllowableR = 1000.0

// Algorithm selects the distance measure of the generalized-kt family
type Algorithm int

const (
	// KtAlgorithm uses d_ij = min(kt_i^2, kt_j^2) dR_ij^2 / R^2
	KtAlgorithm Algorithm = iota
	// CambridgeAlgorithm uses d_ij = dR_ij^2 / R^2
	CambridgeAlgorithm
	// AntiKtAlgorithm uses d_ij = min(kt_i^-2, kt_j^-2) dR_ij^2 / R^2
	AntiKtAlgorithm
)

func (a Algorithm) String() string {
	switch a {
	case KtAlgorithm:
		return "kt"
	case CambridgeAlgorithm:
		return "Cambridge/Aachen"
	case AntiKtAlgorithm:
		return "anti-kt"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// JetDefinition pairs an algorithm with a radius
type JetDefinition struct {
	Algorithm Algorithm
	R         float64
}

// NewJetDefinition validates and returns a jet definition
func NewJetDefinition(alg Algorithm, r float64) (JetDefinition, error) {
	def := JetDefinition{Algorithm: alg, R: r}
	if err := def.Validate(); err != nil {
		return JetDefinition{}, err
	}
	return def, nil
}

// Validate checks the algorithm and radius
func (d JetDefinition) Validate() error {
	switch d.Algorithm {
	case KtAlgorithm, CambridgeAlgorithm, AntiKtAlgorithm:
	default:
		return errors.New("unknown jet algorithm %d", int(d.Algorithm))
	}
	if d.R <= 0 || d.R > MaxAllowableR {
		return errors.New("jet radius %g outside (0, %g]", d.R, MaxAllowableR)
	}
	return nil
}

// jetScale is the per-jet factor entering d_iB and d_ij
func (d JetDefinition) jetScale(j PseudoJet) float64 {
	switch d.Algorithm {
	case CambridgeAlgorithm:
		return 1
	case AntiKtAlgorithm:
		if j.kt2 > 1e-300 {
			return 1 / j.kt2
		}
		return 1e300
	default:
		return j.kt2
	}
}

func (d JetDefinition) String() string {
	return fmt.Sprintf("%s algorithm with R = %g and E-scheme recombination", d.Algorithm, d.R)
}
