package fastjet

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

// massless builds a particle from pt, rapidity and azimuth
func massless(pt, y, phi float64) PseudoJet {
	return NewPseudoJet(pt*math.Cos(phi), pt*math.Sin(phi), pt*math.Sinh(y), pt*math.Cosh(y))
}

func twoPairs() []PseudoJet {
	return []PseudoJet{
		massless(10, 0, 0).WithUserIndex(0),
		massless(5, 0.1, 0.1).WithUserIndex(1),
		massless(8, 2, 3).WithUserIndex(2),
		massless(4, 2.1, 3.1).WithUserIndex(3),
	}
}

func userIndices(jets []PseudoJet) []int {
	var idx []int
	for _, j := range jets {
		idx = append(idx, j.UserIndex())
	}
	sort.Ints(idx)
	return idx
}

func TestPseudoJetKinematics(t *testing.T) {
	j := NewPseudoJet(3, 4, 0, 5)
	assert.InDelta(t, 5, j.Pt(), tol)
	assert.InDelta(t, 25, j.Pt2(), tol)
	assert.InDelta(t, 0, j.Rap(), tol)
	assert.InDelta(t, math.Atan2(4, 3), j.Phi(), tol)
	assert.InDelta(t, 0, j.M(), tol)
	assert.Equal(t, -1, j.UserIndex())

	j = NewPseudoJet(1, 0, 1, 2)
	assert.InDelta(t, 0.5*math.Log(3), j.Rap(), tol)
	assert.InDelta(t, math.Sqrt(2), j.M(), tol)

	p := massless(7, -1.3, 2)
	assert.InDelta(t, -1.3, p.Rap(), tol)
	assert.InDelta(t, 2, p.Phi(), tol)
	assert.InDelta(t, 7, p.Pt(), tol)
}

func TestPseudoJetPhiRange(t *testing.T) {
	j := NewPseudoJet(0, -1, 0, 1)
	assert.InDelta(t, 1.5*math.Pi, j.Phi(), tol)

	assert.Equal(t, 0.0, NewPseudoJet(0, 0, 1, 2).Phi())
}

func TestPseudoJetBeamRapidity(t *testing.T) {
	assert.Equal(t, MaxRap+5, NewPseudoJet(0, 0, 5, 5).Rap())
	assert.Equal(t, -(MaxRap + 5), NewPseudoJet(0, 0, -5, 5).Rap())
	assert.Equal(t, MaxRap, NewPseudoJet(0, 0, 0, 0).Rap())
	assert.True(t, NewPseudoJet(0, 0, 0, 0).IsZero())
}

func TestPseudoJetDistance(t *testing.T) {
	a := massless(1, 0, 0.1)
	b := massless(1, 0, 2*math.Pi-0.1)
	assert.InDelta(t, 0.2, a.DeltaPhi(b), tol)
	assert.InDelta(t, 0.2, a.DeltaR(b), tol)

	c := massless(1, 0.3, 0.5)
	assert.InDelta(t, 0.3*0.3+0.4*0.4, a.SquaredDistance(c), tol)
	assert.InDelta(t, a.SquaredDistance(c), c.SquaredDistance(a), tol)
}

func TestPlusAndSum(t *testing.T) {
	a := NewPseudoJet(1, 2, 3, 10).WithUserIndex(4)
	b := NewPseudoJet(-1, 1, -2, 5)
	s := a.Plus(b)
	assert.Equal(t, 0.0, s.Px())
	assert.Equal(t, 3.0, s.Py())
	assert.Equal(t, 1.0, s.Pz())
	assert.Equal(t, 15.0, s.E())
	assert.Equal(t, -1, s.UserIndex())

	assert.Equal(t, s.E(), Sum([]PseudoJet{a, b}).E())
}

func TestJetDefinition(t *testing.T) {
	_, err := NewJetDefinition(AntiKtAlgorithm, MaxAllowableR)
	require.NoError(t, err)

	_, err = NewJetDefinition(KtAlgorithm, 0)
	require.Error(t, err)
	_, err = NewJetDefinition(KtAlgorithm, MaxAllowableR+1)
	require.Error(t, err)
	_, err = NewJetDefinition(Algorithm(7), 0.4)
	require.Error(t, err)

	assert.Contains(t, JetDefinition{Algorithm: CambridgeAlgorithm, R: 0.8}.String(), "Cambridge/Aachen")
}

func TestAntiKtMaxRadiusMergesEverything(t *testing.T) {
	particles := twoPairs()
	def, err := NewJetDefinition(AntiKtAlgorithm, MaxAllowableR)
	require.NoError(t, err)

	cs, err := NewClusterSequence(particles, def)
	require.NoError(t, err)
	assert.Equal(t, 4, cs.InitialN())

	jets := cs.InclusiveJets(0)
	require.Len(t, jets, 1)

	sum := Sum(particles)
	assert.InDelta(t, sum.E(), jets[0].E(), tol)
	assert.InDelta(t, sum.Px(), jets[0].Px(), tol)
	assert.InDelta(t, sum.Pt(), jets[0].Pt(), tol)

	constituents, err := cs.Constituents(jets[0])
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, userIndices(constituents))
}

func TestAntiKtSmallRadius(t *testing.T) {
	particles := []PseudoJet{massless(4, 2, 3), massless(10, 0, 0), massless(1, 0.05, 0.05)}
	def, err := NewJetDefinition(AntiKtAlgorithm, 0.4)
	require.NoError(t, err)

	cs, err := NewClusterSequence(particles, def)
	require.NoError(t, err)

	jets := SortedByPt(cs.InclusiveJets(0))
	require.Len(t, jets, 2)
	assert.InDelta(t, particles[1].Plus(particles[2]).Pt(), jets[0].Pt(), tol)
	assert.InDelta(t, 4, jets[1].Pt(), tol)

	assert.Len(t, cs.InclusiveJets(5), 1)
}

func TestKtExclusiveJets(t *testing.T) {
	particles := twoPairs()
	def, err := NewJetDefinition(KtAlgorithm, MaxAllowableR)
	require.NoError(t, err)

	cs, err := NewClusterSequence(particles, def)
	require.NoError(t, err)

	two, err := cs.ExclusiveJets(2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	two = SortedByPt(two)
	assert.InDelta(t, particles[0].Plus(particles[1]).Pt(), two[0].Pt(), tol)
	assert.InDelta(t, particles[2].Plus(particles[3]).Pt(), two[1].Pt(), tol)

	three, err := cs.ExclusiveJets(3)
	require.NoError(t, err)
	require.Len(t, three, 3)
	var singles []PseudoJet
	for _, j := range three {
		if j.UserIndex() >= 0 {
			singles = append(singles, j)
		}
	}
	assert.Equal(t, []int{0, 1}, userIndices(singles))

	one, err := cs.ExclusiveJets(1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.InDelta(t, Sum(particles).E(), one[0].E(), tol)

	all, err := cs.ExclusiveJets(4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, userIndices(all))

	_, err = cs.ExclusiveJets(5)
	require.Error(t, err)
	assert.Len(t, cs.ExclusiveJetsUpTo(5), 4)
	assert.Empty(t, cs.ExclusiveJetsUpTo(0))
}

func TestExclusiveDmerge(t *testing.T) {
	particles := twoPairs()
	cs, err := NewClusterSequence(particles, JetDefinition{Algorithm: KtAlgorithm, R: MaxAllowableR})
	require.NoError(t, err)

	// the softer pair merges first: min(8^2, 4^2) * 0.02 / R^2
	assert.InDelta(t, 16*0.02/(MaxAllowableR*MaxAllowableR), cs.ExclusiveDmerge(3), 1e-15)
	assert.True(t, cs.ExclusiveDmerge(1) > cs.ExclusiveDmerge(2))
	assert.Equal(t, 0.0, cs.ExclusiveDmerge(4))
}

func TestCambridgeMergesClosestFirst(t *testing.T) {
	particles := []PseudoJet{
		massless(100, 0, 0).WithUserIndex(0),
		massless(1, 0, 0.05).WithUserIndex(1),
		massless(50, 0, 1).WithUserIndex(2),
	}
	cs, err := NewClusterSequence(particles, JetDefinition{Algorithm: CambridgeAlgorithm, R: MaxAllowableR})
	require.NoError(t, err)

	two, err := cs.ExclusiveJets(2)
	require.NoError(t, err)
	var singles []PseudoJet
	for _, j := range two {
		if j.UserIndex() >= 0 {
			singles = append(singles, j)
		}
	}
	assert.Equal(t, []int{2}, userIndices(singles))
}

func TestConstituentsRejectsForeignJet(t *testing.T) {
	cs, err := NewClusterSequence(twoPairs(), JetDefinition{Algorithm: KtAlgorithm, R: 1})
	require.NoError(t, err)

	_, err = cs.Constituents(massless(1, 0, 0))
	require.Error(t, err)
}

func TestEmptyInput(t *testing.T) {
	cs, err := NewClusterSequence(nil, JetDefinition{Algorithm: AntiKtAlgorithm, R: MaxAllowableR})
	require.NoError(t, err)
	assert.Empty(t, cs.InclusiveJets(0))
	assert.Empty(t, cs.ExclusiveJetsUpTo(3))
}

func TestSortedByPtCopies(t *testing.T) {
	in := []PseudoJet{massless(1, 0, 0), massless(3, 0, 0), massless(2, 0, 0)}
	out := SortedByPt(in)
	assert.InDelta(t, 3, out[0].Pt(), tol)
	assert.InDelta(t, 2, out[1].Pt(), tol)
	assert.InDelta(t, 1, out[2].Pt(), tol)
	assert.InDelta(t, 1, in[0].Pt(), tol)
}
