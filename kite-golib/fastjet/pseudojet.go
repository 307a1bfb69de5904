package fastjet

import (
	"fmt"
	"math"
)

const (
	// MaxRap is the rapidity assigned (with the sign of pz) to objects with zero transverse momentum.
	MaxRap = 1e5

	twoPi = 2 * math.Pi
)

// PseudoJet is a four-momentum with cached kinematics. Use NewPseudoJet to
// build one; the cached fields are not derived for composite literals.
type PseudoJet struct {
	px, py, pz, e float64

	kt2, phi, rap float64

	userIndex int
	// histPos is the position in the owning ClusterSequence history plus one; zero when unclustered.
	histPos int
}

// NewPseudoJet builds a pseudo-jet from its momentum components and energy.
func NewPseudoJet(px, py, pz, e float64) PseudoJet {
	j := PseudoJet{
		px:        px,
		py:        py,
		pz:        pz,
		e:         e,
		userIndex: -1,
	}
	j.finishInit()
	return j
}

func (j *PseudoJet) finishInit() {
	j.kt2 = j.px*j.px + j.py*j.py

	if j.kt2 == 0 {
		j.phi = 0
	} else {
		j.phi = math.Atan2(j.py, j.px)
	}
	if j.phi < 0 {
		j.phi += twoPi
	}
	if j.phi >= twoPi {
		j.phi -= twoPi
	}

	if j.e == math.Abs(j.pz) && j.kt2 == 0 {
		maxRapHere := MaxRap + math.Abs(j.pz)
		if j.pz >= 0 {
			j.rap = maxRapHere
		} else {
			j.rap = -maxRapHere
		}
		return
	}

	effectiveM2 := math.Max(0, j.M2())
	ePlusPz := j.e + math.Abs(j.pz)
	j.rap = 0.5 * math.Log((j.kt2+effectiveM2)/(ePlusPz*ePlusPz))
	if j.pz > 0 {
		j.rap = -j.rap
	}
}

// Px returns the x component of the momentum
func (j PseudoJet) Px() float64 { return j.px }

// Py returns the y component of the momentum
func (j PseudoJet) Py() float64 { return j.py }

// Pz returns the z component of the momentum
func (j PseudoJet) Pz() float64 { return j.pz }

// E returns the energy
func (j PseudoJet) E() float64 { return j.e }

// Pt2 returns the squared transverse momentum
func (j PseudoJet) Pt2() float64 { return j.kt2 }

// Pt returns the transverse momentum
func (j PseudoJet) Pt() float64 { return math.Sqrt(j.kt2) }

// Rap returns the rapidity
func (j PseudoJet) Rap() float64 { return j.rap }

// Phi returns the azimuth in [0, 2pi)
func (j PseudoJet) Phi() float64 { return j.phi }

// M2 returns the squared invariant mass, which may be negative for off-shell inputs
func (j PseudoJet) M2() float64 {
	return (j.e+j.pz)*(j.e-j.pz) - j.kt2
}

// M returns the invariant mass, negative when M2 is negative
func (j PseudoJet) M() float64 {
	m2 := j.M2()
	if m2 < 0 {
		return -math.Sqrt(-m2)
	}
	return math.Sqrt(m2)
}

// IsZero reports whether all four components vanish; zero-padded particle slots look like this.
func (j PseudoJet) IsZero() bool {
	return j.px == 0 && j.py == 0 && j.pz == 0 && j.e == 0
}

// UserIndex returns the index attached with WithUserIndex, or -1
func (j PseudoJet) UserIndex() int { return j.userIndex }

// WithUserIndex returns a copy of j carrying the given user index
func (j PseudoJet) WithUserIndex(i int) PseudoJet {
	j.userIndex = i
	return j
}

// Plus returns the E-scheme sum of j and o. The result carries no user index.
func (j PseudoJet) Plus(o PseudoJet) PseudoJet {
	return NewPseudoJet(j.px+o.px, j.py+o.py, j.pz+o.pz, j.e+o.e)
}

// DeltaPhi returns the azimuthal separation in [0, pi]
func (j PseudoJet) DeltaPhi(o PseudoJet) float64 {
	dphi := math.Abs(j.phi - o.phi)
	if dphi > math.Pi {
		dphi = twoPi - dphi
	}
	return dphi
}

// SquaredDistance returns dy^2 + dphi^2 in the rapidity-azimuth plane
func (j PseudoJet) SquaredDistance(o PseudoJet) float64 {
	dphi := j.DeltaPhi(o)
	drap := j.rap - o.rap
	return drap*drap + dphi*dphi
}

// DeltaR returns the rapidity-azimuth distance between j and o
func (j PseudoJet) DeltaR(o PseudoJet) float64 {
	return math.Sqrt(j.SquaredDistance(o))
}

func (j PseudoJet) String() string {
	return fmt.Sprintf("(px=%g py=%g pz=%g E=%g)", j.px, j.py, j.pz, j.e)
}

// Sum returns the E-scheme sum of the given pseudo-jets
func Sum(jets []PseudoJet) PseudoJet {
	var px, py, pz, e float64
	for _, j := range jets {
		px += j.px
		py += j.py
		pz += j.pz
		e += j.e
	}
	return NewPseudoJet(px, py, pz, e)
}
