package nsubjettiness

import (
	"math"
	"testing"

	"github.com/kiteco/jetml/kite-golib/fastjet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func massless(pt, y, phi float64) fastjet.PseudoJet {
	return fastjet.NewPseudoJet(pt*math.Cos(phi), pt*math.Sin(phi), pt*math.Sinh(y), pt*math.Cosh(y))
}

func TestObservableList(t *testing.T) {
	obs, err := ObservableList(2)
	require.NoError(t, err)
	assert.Equal(t, []Observable{{N: 1, Beta: 1}, {N: 1, Beta: 2}}, obs)

	obs, err = ObservableList(4)
	require.NoError(t, err)
	assert.Equal(t, []Observable{
		{N: 1, Beta: 0.5}, {N: 1, Beta: 1}, {N: 1, Beta: 2},
		{N: 2, Beta: 0.5}, {N: 2, Beta: 1}, {N: 2, Beta: 2},
		{N: 3, Beta: 1}, {N: 3, Beta: 2},
	}, obs)
	assert.Equal(t, 3, MaxN(obs))

	for k := 2; k < 10; k++ {
		obs, err := ObservableList(k)
		require.NoError(t, err)
		assert.Len(t, obs, 3*(k-2)+2)
	}

	_, err = ObservableList(1)
	require.Error(t, err)
}

func TestObservableNames(t *testing.T) {
	assert.Equal(t, "n_subjettiness_N1_beta0.5", Observable{N: 1, Beta: 0.5}.Name())
	assert.Equal(t, "n_subjettiness_N3_beta2", Observable{N: 3, Beta: 2}.Name())
	assert.Equal(t, "N=2, β=1", Observable{N: 2, Beta: 1}.Label())
}

func TestUnnormalizedMeasure(t *testing.T) {
	_, err := NewUnnormalizedMeasure(0)
	require.Error(t, err)
	_, err = NewUnnormalizedMeasure(math.NaN())
	require.Error(t, err)

	m, err := NewUnnormalizedMeasure(2)
	require.NoError(t, err)

	inputs := []fastjet.PseudoJet{massless(3, 0, 0), massless(2, 0.3, 0.4)}
	axes := []fastjet.PseudoJet{massless(1, 0, 0)}
	// first particle sits on the axis, second is 0.5 away
	assert.InDelta(t, 2*0.25, m.Tau(inputs, axes), 1e-9)

	assert.Equal(t, 0.0, m.Tau(inputs, nil))
}

func TestTwoProngJet(t *testing.T) {
	constituents := []fastjet.PseudoJet{massless(1, 0, 0), massless(1, 0, 1)}
	jet := fastjet.Sum(constituents)
	pt := 2 * math.Cos(0.5)
	require.InDelta(t, pt, jet.Pt(), 1e-9)

	obs := []Observable{{N: 1, Beta: 0.5}, {N: 1, Beta: 1}, {N: 1, Beta: 2}, {N: 2, Beta: 1}, {N: 3, Beta: 2}}
	calc, err := NewCalculator(obs, KTAxes())
	require.NoError(t, err)

	values, err := calc.Compute(jet, constituents)
	require.NoError(t, err)
	require.Len(t, values, len(obs))

	// the single axis sits halfway between the prongs
	for i, beta := range []float64{0.5, 1, 2} {
		assert.InDelta(t, 2*math.Pow(0.5, beta)/pt, values[i], 1e-9, obs[i].Name())
	}
	// one axis per constituent
	assert.InDelta(t, 0, values[3], 1e-12)
	assert.InDelta(t, 0, values[4], 1e-12)
}

func TestCalculatorMatchesSingleN(t *testing.T) {
	constituents := []fastjet.PseudoJet{
		massless(10, 0, 0), massless(4, 0.2, 0.1), massless(6, -0.3, 0.5),
		massless(2, 0.4, -0.2), massless(1, 0.1, 0.3),
	}
	jet := fastjet.Sum(constituents)

	obs, err := ObservableList(4)
	require.NoError(t, err)
	calc, err := NewCalculator(obs, KTAxes())
	require.NoError(t, err)

	values, err := calc.Compute(jet, constituents)
	require.NoError(t, err)

	for i, o := range obs {
		m, err := NewUnnormalizedMeasure(o.Beta)
		require.NoError(t, err)
		tau, err := New(o.N, KTAxes(), m)
		require.NoError(t, err)

		expected, err := tau.Result(constituents)
		require.NoError(t, err)
		assert.InDelta(t, expected/jet.Pt(), values[i], 1e-12, o.Name())
	}

	// three axes cannot absorb five constituents
	assert.True(t, values[7] > 0)
}

func TestCalculatorErrors(t *testing.T) {
	_, err := NewCalculator(nil, KTAxes())
	require.Error(t, err)

	_, err = NewCalculator([]Observable{{N: 0, Beta: 1}}, KTAxes())
	require.Error(t, err)

	_, err = NewCalculator([]Observable{{N: 1, Beta: -1}}, KTAxes())
	require.Error(t, err)

	calc, err := NewCalculator([]Observable{{N: 1, Beta: 1}}, KTAxes())
	require.NoError(t, err)
	_, err = calc.Compute(fastjet.NewPseudoJet(0, 0, 1, 1), nil)
	require.Error(t, err)

	_, err = New(0, KTAxes(), UnnormalizedMeasure{Beta: 1})
	require.Error(t, err)
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "exclusive kt axes", KTAxes().Description())
	assert.Equal(t, "exclusive Cambridge/Aachen axes", CAAxes().Description())

	tau, err := New(2, KTAxes(), UnnormalizedMeasure{Beta: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "N-subjettiness with N = 2, exclusive kt axes, unnormalized measure (beta = 0.5)", tau.String())
}
