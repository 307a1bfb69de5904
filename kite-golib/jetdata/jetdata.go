// Package jetdata holds the in-memory form of jet datasets and of the
// feature files written from them.
package jetdata

import (
	"fmt"

	"github.com/kiteco/jetml/kite-golib/errors"
)

// Components is the number of values per particle: E, px, py, pz
const Components = 4

// Particle component offsets within a particle row
const (
	E = iota
	Px
	Py
	Pz
)

// Dataset is a zero-padded (jets x particles x 4) block of particle
// four-vectors with one class label per jet.
type Dataset struct {
	// Particles is row-major with shape (NumJets, MaxParticles, Components)
	Particles    []float64
	Labels       []int64
	NumJets      int
	MaxParticles int
}

// NewDataset checks shapes and wraps the arrays
func NewDataset(particles []float64, labels []int64, numJets, maxParticles int) (*Dataset, error) {
	d := &Dataset{
		Particles:    particles,
		Labels:       labels,
		NumJets:      numJets,
		MaxParticles: maxParticles,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks that the arrays agree with the declared shape
func (d *Dataset) Validate() error {
	if d.NumJets < 0 || d.MaxParticles < 0 {
		return errors.New("invalid dataset shape %s", d.Shape())
	}
	if want := d.NumJets * d.MaxParticles * Components; len(d.Particles) != want {
		return errors.New("dataset %s needs %d particle values, got %d", d.Shape(), want, len(d.Particles))
	}
	if len(d.Labels) != d.NumJets {
		return errors.New("dataset has %d jets but %d labels", d.NumJets, len(d.Labels))
	}
	return nil
}

// Shape formats the particle array shape
func (d *Dataset) Shape() string {
	return fmt.Sprintf("(%d, %d, %d)", d.NumJets, d.MaxParticles, Components)
}

// Jet returns the (MaxParticles x Components) rows of jet i, sharing storage with the dataset
func (d *Dataset) Jet(i int) []float64 {
	stride := d.MaxParticles * Components
	return d.Particles[i*stride : (i+1)*stride]
}

// Head returns a dataset sharing storage with d that keeps only the first n jets.
func (d *Dataset) Head(n int) *Dataset {
	if n < 0 || n >= d.NumJets {
		return d
	}
	return &Dataset{
		Particles:    d.Particles[:n*d.MaxParticles*Components],
		Labels:       d.Labels[:n],
		NumJets:      n,
		MaxParticles: d.MaxParticles,
	}
}

// Output is the content of a feature file
type Output struct {
	// Labels is y
	Labels []int64
	// Dataset carries X, the particle array the features were computed from
	Dataset *Dataset
	// Features is X_Nsub, row-major (NumJets x NumObservables)
	Features []float64
	// NList and BetaList give (N, beta) per feature column
	NList    []int64
	BetaList []float64
}

// NumObservables is the number of feature columns
func (o *Output) NumObservables() int {
	return len(o.NList)
}

// NumJets is the number of feature rows
func (o *Output) NumJets() int {
	return len(o.Labels)
}

// Column copies feature column c
func (o *Output) Column(c int) []float64 {
	n := o.NumObservables()
	col := make([]float64, o.NumJets())
	for i := range col {
		col[i] = o.Features[i*n+c]
	}
	return col
}

// Validate checks that the output arrays are consistent with each other
func (o *Output) Validate() error {
	if len(o.NList) != len(o.BetaList) {
		return errors.New("N_list has %d entries but beta_list has %d", len(o.NList), len(o.BetaList))
	}
	if len(o.Features) != o.NumJets()*o.NumObservables() {
		return errors.New("X_Nsub has %d values, want %d jets x %d observables", len(o.Features), o.NumJets(), o.NumObservables())
	}
	if o.Dataset != nil {
		if err := o.Dataset.Validate(); err != nil {
			return errors.Wrapf(err, "invalid X")
		}
		if o.Dataset.NumJets != o.NumJets() {
			return errors.New("X has %d jets but y has %d", o.Dataset.NumJets, o.NumJets())
		}
	}
	return nil
}
