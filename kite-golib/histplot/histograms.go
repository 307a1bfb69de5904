// Package histplot draws distributions of per-jet observables: overlaid
// histograms through go-hep/hplot and summary line charts through go-chart.
package histplot

import (
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/kiteco/jetml/kite-golib/errors"
	"github.com/spf13/afero"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is one distribution to histogram
type Series struct {
	Label string
	// Style picks the dash pattern; series sharing a style share a pattern
	Style  int
	Values []float64
}

// HistogramOptions controls binning and layout
type HistogramOptions struct {
	Bins     int
	Min, Max float64
	XLabel   string
	LogY     bool
	// Alpha is the fill opacity in [0, 255]
	Alpha         uint8
	Width, Height vg.Length
}

// DefaultHistogramOptions bins tau_N^beta values
var DefaultHistogramOptions = HistogramOptions{
	Bins:   99,
	Min:    0,
	Max:    0.7,
	XLabel: "τ_N^β",
	LogY:   true,
	Alpha:  128,
	Width:  6 * vg.Inch,
	Height: 4.5 * vg.Inch,
}

// Fill bins values into a histogram; values outside [opts.Min, opts.Max) land
// in the under/overflow bins and are not drawn.
func Fill(values []float64, opts HistogramOptions) *hbook.H1D {
	h := hbook.NewH1D(opts.Bins, opts.Min, opts.Max)
	for _, v := range values {
		h.Fill(v, 1)
	}
	return h
}

func inRange(h *hbook.H1D) bool {
	for _, b := range h.Binning.Bins {
		if b.Entries() > 0 {
			return true
		}
	}
	return false
}

func fillColor(i int, alpha uint8) color.Color {
	r, g, b, _ := plotutil.Color(i).RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}

// Histograms draws the series as overlaid step-filled histograms and saves
// the figure to path on fs; the format follows the extension (pdf, png, svg, ...).
// It returns false when no series has an entry inside the plotted range, in
// which case nothing is written.
func Histograms(fs afero.Fs, path string, series []Series, opts HistogramOptions) (bool, error) {
	if opts.Bins <= 0 || !(opts.Max > opts.Min) {
		return false, errors.New("invalid binning: %d bins over [%g, %g]", opts.Bins, opts.Min, opts.Max)
	}

	p := hplot.New()
	p.X.Label.Text = opts.XLabel
	p.X.Min = opts.Min
	p.X.Max = opts.Max
	p.Legend.Top = true
	if opts.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	var drawn int
	for i, s := range series {
		h := Fill(s.Values, opts)
		if !inRange(h) {
			continue
		}

		hh := hplot.NewH1D(h, hplot.WithLogY(opts.LogY))
		hh.Infos.Style = hplot.HInfoNone
		hh.FillColor = fillColor(i, opts.Alpha)
		hh.LineStyle.Color = plotutil.Color(i)
		hh.LineStyle.Width = vg.Points(1.5)
		hh.LineStyle.Dashes = plotutil.Dashes(s.Style)

		p.Add(hh)
		p.Legend.Add(s.Label, hh)
		drawn++
	}
	if drawn == 0 {
		return false, nil
	}

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	wt, err := p.WriterTo(opts.Width, opts.Height, format)
	if err != nil {
		return false, errors.Wrapf(err, "could not render %s", path)
	}
	if err := save(fs, path, wt); err != nil {
		return false, err
	}
	return true, nil
}

func save(fs afero.Fs, path string, wt io.WriterTo) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}
	defer errors.Defer(&err, f.Close)

	if _, err := wt.WriteTo(f); err != nil {
		return errors.Wrapf(err, "could not save %s", path)
	}
	return nil
}
