package histplot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillIgnoresOutOfRange(t *testing.T) {
	h := Fill([]float64{0.05, 0.1, 0.69, 0.7, 1.5, -0.1}, DefaultHistogramOptions)
	require.Len(t, h.Binning.Bins, 99)

	var inside int64
	for _, b := range h.Binning.Bins {
		inside += b.Entries()
	}
	assert.Equal(t, int64(3), inside)
}

func TestHistogramsWritesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("out", "Nsubjettiness.pdf")
	series := []Series{
		{Label: "N=1, β=1", Style: 0, Values: []float64{0.1, 0.2, 0.2, 0.3, 0.35}},
		{Label: "N=2, β=1", Style: 1, Values: []float64{0.05, 0.08, 0.1, 0.12}},
	}

	ok, err := Histograms(fs, path, series, DefaultHistogramOptions)
	require.NoError(t, err)
	require.True(t, ok)

	buf, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf, []byte("%PDF")))

	// nothing reaches the real filesystem
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestHistogramsPNG(t *testing.T) {
	fs := afero.NewMemMapFs()
	ok, err := Histograms(fs, "hist.png", []Series{{Label: "N=1, β=1", Values: []float64{0.1, 0.2}}}, DefaultHistogramOptions)
	require.NoError(t, err)
	require.True(t, ok)

	buf, err := afero.ReadFile(fs, "hist.png")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf, []byte("\x89PNG")))
}

func TestHistogramsSkipsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "empty.pdf"
	ok, err := Histograms(fs, path, []Series{{Label: "far", Values: []float64{3, 4}}}, DefaultHistogramOptions)
	require.NoError(t, err)
	assert.False(t, ok)

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.False(t, exists)

	opts := DefaultHistogramOptions
	opts.Bins = 0
	_, err = Histograms(fs, path, nil, opts)
	require.Error(t, err)
}

func TestLineChart(t *testing.T) {
	var buf bytes.Buffer
	ok, err := LineChart(&buf, "mean", "N", "<τ>", []Curve{
		{Name: "β=1", X: []float64{1, 2, 3}, Y: []float64{0.3, 0.2, 0.1}},
		{Name: "single", X: []float64{1}, Y: []float64{0.4}},
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	buf.Reset()
	ok, err = LineChart(&buf, "mean", "N", "<τ>", []Curve{{Name: "single", X: []float64{1}, Y: []float64{0.4}}})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, buf.Len())
}
