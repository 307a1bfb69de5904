package analysis

import (
	"github.com/kiteco/jetml/kite-golib/fastjet"
	"github.com/kiteco/jetml/kite-golib/jetdata"
	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"
)

// ParticlesForJet converts the particle rows of one jet into pseudo-jets,
// skipping zero-padded rows. The user index is the row position in the jet.
func ParticlesForJet(rows []float64) []fastjet.PseudoJet {
	var particles []fastjet.PseudoJet
	for i := 0; i+jetdata.Components <= len(rows); i += jetdata.Components {
		r := rows[i : i+jetdata.Components]
		p := fastjet.NewPseudoJet(r[jetdata.Px], r[jetdata.Py], r[jetdata.Pz], r[jetdata.E])
		if p.IsZero() {
			continue
		}
		particles = append(particles, p.WithUserIndex(i/jetdata.Components))
	}
	return particles
}

// GroupJets converts every jet of the dataset into its particle collection.
func GroupJets(ds *jetdata.Dataset, progress bool) ([][]fastjet.PseudoJet, error) {
	jets := make([][]fastjet.PseudoJet, ds.NumJets)
	if !progress {
		for i := range jets {
			jets[i] = ParticlesForJet(ds.Jet(i))
		}
		return jets, nil
	}

	err := tqdm.With(iterators.Interval(0, ds.NumJets), "Converting particles to pseudo-jets", func(v interface{}) (brk bool) {
		i := v.(int)
		jets[i] = ParticlesForJet(ds.Jet(i))
		return
	})
	if err != nil {
		return nil, err
	}
	return jets, nil
}
