package analysis

import (
	"path/filepath"

	"github.com/kiteco/jetml/kite-golib/errors"
	"github.com/kiteco/jetml/kite-golib/histplot"
	"github.com/kiteco/jetml/kite-golib/kitelog"
	"github.com/spf13/afero"
)

const (
	// MaxPlotK is the largest K for which the overlaid histograms stay readable
	MaxPlotK = 6
	// HistogramsFile is written in the output directory
	HistogramsFile = "Nsubjettiness.pdf"
	// MeanChartFile is written in the output directory
	MeanChartFile = "Nsubjettiness_mean.png"
)

// HistogramSeries returns one series per observable, dashed by N
func HistogramSeries(r *Result) []histplot.Series {
	var series []histplot.Series
	for i, o := range r.Observables {
		series = append(series, histplot.Series{
			Label:  o.Label(),
			Style:  o.N - 1,
			Values: r.Values[i],
		})
	}
	return series
}

// Plot draws the observable histograms and the mean chart into outputDir.
// Empty plots are skipped with a warning.
func Plot(fs afero.Fs, outputDir string, r *Result, s Summary, log *kitelog.Logger) error {
	path := filepath.Join(outputDir, HistogramsFile)
	drawn, err := histplot.Histograms(fs, path, HistogramSeries(r), histplot.DefaultHistogramOptions)
	if err != nil {
		return errors.Wrapf(err, "could not plot histograms")
	}
	if drawn {
		log.Infow("wrote histograms", "path", path)
	} else {
		log.Warnw("no observable values in histogram range, skipping", "path", path)
	}

	path = filepath.Join(outputDir, MeanChartFile)
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}

	drawn, err = histplot.LineChart(f, "Mean N-subjettiness", "N", "<τ_N^β>", MeanCurves(s))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "could not draw %s", path)
	}

	if !drawn {
		log.Warnw("too few points for a mean chart, skipping", "path", path)
		return fs.Remove(path)
	}
	log.Infow("wrote mean chart", "path", path)
	return nil
}
