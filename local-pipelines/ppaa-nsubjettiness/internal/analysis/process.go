package analysis

import (
	"context"
	"runtime"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/kiteco/jetml/kite-golib/errors"
	"github.com/kiteco/jetml/kite-golib/fastjet"
	"github.com/kiteco/jetml/kite-golib/jetdata"
	"github.com/kiteco/jetml/kite-golib/kitelog"
	"github.com/kiteco/jetml/kite-golib/nsubjettiness"
	"github.com/kiteco/jetml/kite-golib/workerpool"
)

// jetsPerJob batches jets so that pool overhead stays small next to the clustering work
const jetsPerJob = 64

// Options for a Processor
type Options struct {
	// Workers is the number of goroutines computing observables; defaults to the number of CPUs
	Workers int
	// Progress shows a progress bar while grouping particles into jets
	Progress bool
	Logger   *kitelog.Logger
}

// Processor computes N-subjettiness observables for every jet of a dataset
type Processor struct {
	calc   *nsubjettiness.Calculator
	jetDef fastjet.JetDefinition
	opts   Options
}

// NewProcessor builds a processor for the given observables
func NewProcessor(observables []nsubjettiness.Observable, opts Options) (*Processor, error) {
	calc, err := nsubjettiness.NewCalculator(observables, nsubjettiness.KTAxes())
	if err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = kitelog.Nop()
	}

	return &Processor{
		calc:   calc,
		jetDef: fastjet.JetDefinition{Algorithm: fastjet.AntiKtAlgorithm, R: fastjet.MaxAllowableR},
		opts:   opts,
	}, nil
}

// Observables computed by the processor, in column order
func (p *Processor) Observables() []nsubjettiness.Observable {
	return p.calc.Observables()
}

// AnalyzeJet reclusters the particles of one jet with anti-kt at the maximal
// radius, takes the hardest jet and returns its normalized observables.
func (p *Processor) AnalyzeJet(particles []fastjet.PseudoJet) ([]float64, error) {
	if len(particles) == 0 {
		return nil, errors.New("no particles")
	}

	cs, err := fastjet.NewClusterSequence(particles, p.jetDef)
	if err != nil {
		return nil, err
	}
	jets := fastjet.SortedByPt(cs.InclusiveJets(0))
	if len(jets) == 0 {
		return nil, errors.New("clustering produced no jets")
	}

	constituents, err := cs.Constituents(jets[0])
	if err != nil {
		return nil, err
	}
	return p.calc.Compute(jets[0], constituents)
}

// Process computes the observables of every jet in ds. Any failing jet fails
// the whole run; the error lists the failing jets.
func (p *Processor) Process(ctx context.Context, ds *jetdata.Dataset) (*Result, error) {
	log := p.opts.Logger

	start := time.Now()
	jets, err := GroupJets(ds, p.opts.Progress)
	if err != nil {
		return nil, errors.Wrapf(err, "could not group particles into jets")
	}
	log.Durations.Since("group particles", start)

	observables := p.Observables()
	res := newResult(observables, len(jets))

	log.Infow("finding jets and computing N-subjettiness",
		"jets", humanize.Comma(int64(len(jets))),
		"observables", len(observables),
		"workers", p.opts.Workers)

	start = time.Now()
	pool := workerpool.New(p.opts.Workers)
	defer pool.Stop()

	var jobs []workerpool.Job
	for lo := 0; lo < len(jets); lo += jetsPerJob {
		lo, hi := lo, lo+jetsPerJob
		if hi > len(jets) {
			hi = len(jets)
		}
		jobs = append(jobs, func() error {
			var errs errors.Errors
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				values, err := p.AnalyzeJet(jets[i])
				if err != nil {
					errs = errors.Append(errs, errors.Wrapf(err, "jet %d", i))
					continue
				}
				res.set(i, values)
			}
			if errs == nil {
				return nil
			}
			return errs
		})
	}

	pool.Add(jobs)
	if err := pool.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		failed := 1
		if multi, ok := err.(errors.Errors); ok {
			failed = multi.Len()
		}
		log.Errorw("jets failed", "failed", failed, "jets", len(jets))
		return nil, errors.Wrapf(err, "could not compute observables")
	}
	log.Durations.Since("compute observables", start)

	log.Infow("done", "clustered jets", humanize.Comma(int64(res.NumJets)))
	return res, nil
}
