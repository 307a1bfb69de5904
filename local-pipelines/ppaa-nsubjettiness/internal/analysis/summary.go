package analysis

import (
	"sort"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/kiteco/jetml/kite-golib/errors"
	"github.com/kiteco/jetml/kite-golib/histplot"
	"github.com/montanaflynn/stats"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v2"
)

// ObservableSummary describes the distribution of one observable
type ObservableSummary struct {
	Name   string  `yaml:"name" csv:"name"`
	N      int     `yaml:"N" csv:"N"`
	Beta   float64 `yaml:"beta" csv:"beta"`
	Mean   float64 `yaml:"mean" csv:"mean"`
	Median float64 `yaml:"median" csv:"median"`
	StdDev float64 `yaml:"stddev" csv:"stddev"`
	Min    float64 `yaml:"min" csv:"min"`
	Max    float64 `yaml:"max" csv:"max"`
	P90    float64 `yaml:"p90" csv:"p90"`
}

// Summary is written next to the feature file
type Summary struct {
	Jets        int                 `yaml:"jets"`
	Observables []ObservableSummary `yaml:"observables"`
}

// Summarize computes distribution statistics for every observable
func Summarize(r *Result) (Summary, error) {
	s := Summary{Jets: r.NumJets}
	if r.NumJets == 0 {
		return s, errors.New("no jets to summarize")
	}

	for i, o := range r.Observables {
		data := stats.Float64Data(r.Values[i])
		sum := ObservableSummary{Name: o.Name(), N: o.N, Beta: o.Beta}

		var err error
		for _, f := range []struct {
			dst *float64
			fn  func(stats.Float64Data) (float64, error)
		}{
			{&sum.Mean, stats.Mean},
			{&sum.Median, stats.Median},
			{&sum.StdDev, stats.StandardDeviation},
			{&sum.Min, stats.Min},
			{&sum.Max, stats.Max},
		} {
			if *f.dst, err = f.fn(data); err != nil {
				return s, errors.Wrapf(err, "%s", o.Name())
			}
		}
		if sum.P90, err = stats.Percentile(data, 90); err != nil {
			return s, errors.Wrapf(err, "%s", o.Name())
		}

		s.Observables = append(s.Observables, sum)
	}
	return s, nil
}

// WriteSummary writes s as YAML
func WriteSummary(fs afero.Fs, path string, s Summary) error {
	buf, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrapf(err, "could not marshal summary")
	}
	if err := afero.WriteFile(fs, path, buf, 0644); err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}
	return nil
}

// WriteSummaryCSV writes one row per observable
func WriteSummaryCSV(fs afero.Fs, path string, s Summary) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}
	defer errors.Defer(&err, f.Close)

	if err := gocsv.Marshal(&s.Observables, f); err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}
	return nil
}

// MeanCurves returns one curve per beta tracing the mean observable against N
func MeanCurves(s Summary) []histplot.Curve {
	byBeta := make(map[float64]*histplot.Curve)
	var betas []float64
	for _, o := range s.Observables {
		c, ok := byBeta[o.Beta]
		if !ok {
			c = &histplot.Curve{Name: "β=" + strconv.FormatFloat(o.Beta, 'g', -1, 64)}
			byBeta[o.Beta] = c
			betas = append(betas, o.Beta)
		}
		c.X = append(c.X, float64(o.N))
		c.Y = append(c.Y, o.Mean)
	}
	sort.Float64s(betas)

	var curves []histplot.Curve
	for _, b := range betas {
		curves = append(curves, *byBeta[b])
	}
	return curves
}
