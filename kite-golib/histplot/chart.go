package histplot

import (
	"io"

	"github.com/kiteco/jetml/kite-golib/errors"
	chart "github.com/wcharczuk/go-chart"
)

// Curve is one line of a summary chart
type Curve struct {
	Name string
	X, Y []float64
}

// LineChart renders curves as a PNG to w. Curves with fewer than two points
// cannot span an axis and are skipped; it returns false if none remain.
func LineChart(w io.Writer, title, xName, yName string, curves []Curve) (bool, error) {
	var series []chart.Series
	for i, c := range curves {
		if len(c.X) < 2 || len(c.X) != len(c.Y) {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    c.Name,
			XValues: c.X,
			YValues: c.Y,
			Style: chart.Style{
				Show:        true,
				StrokeColor: chart.GetAlternateColor(i),
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return false, nil
	}

	graph := chart.Chart{
		Title:      title,
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      xName,
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      yName,
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return false, errors.Wrapf(err, "could not render %s", title)
	}
	return true, nil
}
