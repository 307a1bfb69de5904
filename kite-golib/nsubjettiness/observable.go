package nsubjettiness

import (
	"fmt"
	"strconv"

	"github.com/kiteco/jetml/kite-golib/errors"
)

// Observable identifies tau_N^beta
type Observable struct {
	N    int
	Beta float64
}

func formatBeta(beta float64) string {
	return strconv.FormatFloat(beta, 'g', -1, 64)
}

// Name is the column name used for the feature, e.g. n_subjettiness_N2_beta0.5
func (o Observable) Name() string {
	return fmt.Sprintf("n_subjettiness_N%d_beta%s", o.N, formatBeta(o.Beta))
}

// Label is a short human readable form used in plot legends
func (o Observable) Label() string {
	return fmt.Sprintf("N=%d, β=%s", o.N, formatBeta(o.Beta))
}

func (o Observable) String() string {
	return o.Name()
}

var (
	betas     = []float64{0.5, 1, 2}
	lastBetas = []float64{1, 2}
)

// ObservableList returns the observables for a maximum axis count k:
// N = 1 .. k-2 each with beta in {0.5, 1, 2}, then N = k-1 with beta in {1, 2}.
func ObservableList(k int) ([]Observable, error) {
	if k < 2 {
		return nil, errors.New("maximum K must be at least 2, got %d", k)
	}

	var obs []Observable
	for n := 1; n <= k-2; n++ {
		for _, beta := range betas {
			obs = append(obs, Observable{N: n, Beta: beta})
		}
	}
	for _, beta := range lastBetas {
		obs = append(obs, Observable{N: k - 1, Beta: beta})
	}
	return obs, nil
}

// MaxN returns the largest N in obs
func MaxN(obs []Observable) int {
	var max int
	for _, o := range obs {
		if o.N > max {
			max = o.N
		}
	}
	return max
}
