package fastjet

import (
	"math"
	"sort"

	"github.com/kiteco/jetml/kite-golib/errors"
)

const (
	// parent markers in the history
	initialParent = -1
	beamParent    = -2

	noChild = -3
)

// historyElement records one step of the clustering. The first initialN
// entries are the input particles; every later entry is either a pairwise
// recombination or a merge with the beam (parent2 == beamParent).
type historyElement struct {
	parent1, parent2 int
	child            int
	// jetIndex indexes ClusterSequence.jets; -1 for beam merges
	jetIndex    int
	dij         float64
	maxDijSoFar float64
}

// ClusterSequence clusters a set of particles with a JetDefinition and keeps
// the full merge history.
type ClusterSequence struct {
	def      JetDefinition
	jets     []PseudoJet
	history  []historyElement
	initialN int
	r2       float64
	invR2    float64
}

// NewClusterSequence runs the clustering over particles. The input slice is not modified.
func NewClusterSequence(particles []PseudoJet, def JetDefinition) (*ClusterSequence, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	n := len(particles)
	cs := &ClusterSequence{
		def:      def,
		jets:     make([]PseudoJet, 0, 2*n),
		history:  make([]historyElement, 0, 2*n),
		initialN: n,
		r2:       def.R * def.R,
		invR2:    1 / (def.R * def.R),
	}

	for i, p := range particles {
		p.histPos = i + 1
		cs.jets = append(cs.jets, p)
		cs.history = append(cs.history, historyElement{
			parent1:  initialParent,
			parent2:  initialParent,
			child:    noChild,
			jetIndex: i,
		})
	}

	cs.cluster()
	return cs, nil
}

// JetDefinition used for the clustering
func (cs *ClusterSequence) JetDefinition() JetDefinition {
	return cs.def
}

// InitialN is the number of input particles
func (cs *ClusterSequence) InitialN() int {
	return cs.initialN
}

// briefJet carries the per-jet state of the nearest-neighbour search
type briefJet struct {
	rap, phi float64
	scale    float64
	jetIndex int

	nn     *briefJet
	nnDist float64
}

func (cs *ClusterSequence) newBriefJet(jetIndex int) *briefJet {
	j := cs.jets[jetIndex]
	return &briefJet{
		rap:      j.rap,
		phi:      j.phi,
		scale:    cs.def.jetScale(j),
		jetIndex: jetIndex,
		nnDist:   cs.r2,
	}
}

func (b *briefJet) dist(o *briefJet) float64 {
	dphi := b.phi - o.phi
	if dphi < 0 {
		dphi = -dphi
	}
	if dphi > math.Pi {
		dphi = twoPi - dphi
	}
	drap := b.rap - o.rap
	return dphi*dphi + drap*drap
}

// diJ is the smallest distance of b to either its nearest neighbour or the
// beam, before the 1/R^2 normalization.
func (b *briefJet) diJ() float64 {
	scale := b.scale
	if b.nn != nil && b.nn.scale < scale {
		scale = b.nn.scale
	}
	return b.nnDist * scale
}

func (cs *ClusterSequence) resetNN(b *briefJet, active []*briefJet) {
	b.nn = nil
	b.nnDist = cs.r2
	for _, o := range active {
		if o == b {
			continue
		}
		if d := b.dist(o); d < b.nnDist {
			b.nnDist = d
			b.nn = o
		}
	}
}

// cluster runs the O(N^2) nearest-neighbour generalized-kt clustering.
func (cs *ClusterSequence) cluster() {
	active := make([]*briefJet, cs.initialN)
	for i := range active {
		active[i] = cs.newBriefJet(i)
	}
	for i, a := range active {
		for _, b := range active[i+1:] {
			d := a.dist(b)
			if d < a.nnDist {
				a.nnDist = d
				a.nn = b
			}
			if d < b.nnDist {
				b.nnDist = d
				b.nn = a
			}
		}
	}

	remove := func(b *briefJet) {
		for i, o := range active {
			if o == b {
				last := len(active) - 1
				active[i] = active[last]
				active[last] = nil
				active = active[:last]
				return
			}
		}
	}

	for len(active) > 0 {
		best := active[0]
		bestDiJ := best.diJ()
		for _, b := range active[1:] {
			if d := b.diJ(); d < bestDiJ {
				best, bestDiJ = b, d
			}
		}
		dij := bestDiJ * cs.invR2

		jetA, jetB := best, best.nn
		if jetB != nil {
			newIndex := cs.recombine(jetA.jetIndex, jetB.jetIndex, dij)
			remove(jetB)

			fresh := cs.newBriefJet(newIndex)
			*jetA = *fresh
		} else {
			cs.mergeWithBeam(jetA.jetIndex, dij)
			remove(jetA)
		}

		for _, b := range active {
			if b.nn == jetA || (jetB != nil && b.nn == jetB) {
				cs.resetNN(b, active)
			}
			if jetB != nil && b != jetA {
				// jetA now holds the merged jet
				d := b.dist(jetA)
				if d < jetA.nnDist {
					jetA.nnDist = d
					jetA.nn = b
				}
				if d < b.nnDist {
					b.nnDist = d
					b.nn = jetA
				}
			}
		}
	}
}

func (cs *ClusterSequence) addStep(parent1, parent2, jetIndex int, dij float64) int {
	maxDij := dij
	if len(cs.history) > 0 && cs.history[len(cs.history)-1].maxDijSoFar > maxDij {
		maxDij = cs.history[len(cs.history)-1].maxDijSoFar
	}

	pos := len(cs.history)
	cs.history = append(cs.history, historyElement{
		parent1:     parent1,
		parent2:     parent2,
		child:       noChild,
		jetIndex:    jetIndex,
		dij:         dij,
		maxDijSoFar: maxDij,
	})

	cs.history[parent1].child = pos
	if parent2 >= 0 {
		cs.history[parent2].child = pos
	}
	return pos
}

func (cs *ClusterSequence) recombine(jetI, jetJ int, dij float64) int {
	merged := cs.jets[jetI].Plus(cs.jets[jetJ])
	newIndex := len(cs.jets)

	h1 := cs.jets[jetI].histPos - 1
	h2 := cs.jets[jetJ].histPos - 1
	if h1 > h2 {
		h1, h2 = h2, h1
	}
	merged.histPos = cs.addStep(h1, h2, newIndex, dij) + 1
	cs.jets = append(cs.jets, merged)
	return newIndex
}

func (cs *ClusterSequence) mergeWithBeam(jetI int, dij float64) {
	cs.addStep(cs.jets[jetI].histPos-1, beamParent, -1, dij)
}

// InclusiveJets returns every jet that was merged with the beam and has pt >= ptmin, in no particular order.
func (cs *ClusterSequence) InclusiveJets(ptmin float64) []PseudoJet {
	pt2min := ptmin * ptmin
	var jets []PseudoJet
	for i := len(cs.history) - 1; i >= 0; i-- {
		h := cs.history[i]
		if h.parent2 != beamParent {
			continue
		}
		j := cs.jets[cs.history[h.parent1].jetIndex]
		if j.kt2 >= pt2min {
			jets = append(jets, j)
		}
	}
	return jets
}

// ExclusiveJets returns the n jets present when the clustering was stopped at
// exactly n objects. It fails when n exceeds the number of input particles.
func (cs *ClusterSequence) ExclusiveJets(n int) ([]PseudoJet, error) {
	if n < 0 {
		return nil, errors.New("requested %d exclusive jets", n)
	}
	if n > cs.initialN {
		return nil, errors.New("requested %d exclusive jets, but there were only %d particles", n, cs.initialN)
	}
	return cs.exclusive(n), nil
}

// ExclusiveJetsUpTo is ExclusiveJets with n capped at the number of input particles.
func (cs *ClusterSequence) ExclusiveJetsUpTo(n int) []PseudoJet {
	if n > cs.initialN {
		n = cs.initialN
	}
	if n < 0 {
		n = 0
	}
	return cs.exclusive(n)
}

func (cs *ClusterSequence) exclusive(n int) []PseudoJet {
	stop := 2*cs.initialN - n

	jets := make([]PseudoJet, 0, n)
	for i := stop; i < len(cs.history); i++ {
		h := cs.history[i]
		if h.parent1 < stop {
			jets = append(jets, cs.jets[cs.history[h.parent1].jetIndex])
		}
		if h.parent2 >= 0 && h.parent2 < stop {
			jets = append(jets, cs.jets[cs.history[h.parent2].jetIndex])
		}
	}
	return jets
}

// ExclusiveDmerge returns the d_ij at which the event goes from n+1 to n jets, or 0 if n >= InitialN.
func (cs *ClusterSequence) ExclusiveDmerge(n int) float64 {
	if n >= cs.initialN || n < 0 {
		return 0
	}
	return cs.history[2*cs.initialN-n-1].dij
}

// Constituents returns the input particles that make up jet, which must come from this sequence.
func (cs *ClusterSequence) Constituents(jet PseudoJet) ([]PseudoJet, error) {
	pos := jet.histPos - 1
	if pos < 0 || pos >= len(cs.history) || cs.history[pos].jetIndex < 0 {
		return nil, errors.New("jet %v is not part of this cluster sequence", jet)
	}

	var out []PseudoJet
	cs.addConstituents(pos, &out)
	return out, nil
}

func (cs *ClusterSequence) addConstituents(pos int, out *[]PseudoJet) {
	h := cs.history[pos]
	if h.parent1 == initialParent {
		*out = append(*out, cs.jets[h.jetIndex])
		return
	}
	cs.addConstituents(h.parent1, out)
	if h.parent2 >= 0 {
		cs.addConstituents(h.parent2, out)
	}
}

// SortedByPt returns a copy of jets ordered by decreasing pt
func SortedByPt(jets []PseudoJet) []PseudoJet {
	out := append([]PseudoJet(nil), jets...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].kt2 > out[j].kt2
	})
	return out
}
