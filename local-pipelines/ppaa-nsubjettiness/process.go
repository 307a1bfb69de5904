package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/kiteco/jetml/kite-golib/cmdline"
	"github.com/kiteco/jetml/kite-golib/errors"
	"github.com/kiteco/jetml/kite-golib/h5data"
	"github.com/kiteco/jetml/kite-golib/kitelog"
	"github.com/kiteco/jetml/kite-golib/nsubjettiness"
	"github.com/kiteco/jetml/local-pipelines/ppaa-nsubjettiness/internal/analysis"
	"github.com/spf13/afero"
)

const (
	outputFile  = "nsubjettiness.h5"
	summaryFile = "summary.yaml"
	summaryCSV  = "summary.csv"
)

type processArgs struct {
	Config    string `arg:"-c,--config" help:"YAML config with n_train, n_val, n_test and K"`
	Input     string `arg:"-i,--input" help:"HDF5 file with the data and labels datasets"`
	OutputDir string `arg:"-o,--output-dir" help:"directory for the feature file, summary and plots"`
	Workers   int    `arg:"--workers" help:"number of goroutines computing observables"`
	NoPlot    bool   `arg:"--no-plot" help:"skip the histograms and the mean chart"`
	Quiet     bool   `arg:"-q,--quiet" help:"hide the progress bar"`
}

var processCmd = cmdline.Command{
	Name:     "process",
	Synopsis: "compute N-subjettiness observables for every jet of a dataset",
	Args: &processArgs{
		Config:    "./config/ml/ppAA.yaml",
		Input:     "./skim_blah.h5",
		OutputDir: "./TestOutput",
		Workers:   runtime.NumCPU(),
	},
}

// Validate implements cmdline.Validator
func (args *processArgs) Validate() error {
	if args.Workers < 1 {
		return errors.New("--workers must be at least 1, got %d", args.Workers)
	}
	if args.Config == "" || args.Input == "" || args.OutputDir == "" {
		return errors.New("--config, --input and --output-dir must not be empty")
	}
	return nil
}

func (args *processArgs) Handle() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log := kitelog.Basic
	defer log.Sync()
	defer log.Durations.Flush(log)

	fs := afero.NewOsFs()
	for _, path := range []string{args.Config, args.Input} {
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return errors.Wrapf(err, "could not stat %s", path)
		}
		if !exists {
			return errors.New("%s does not exist", path)
		}
	}

	start := time.Now()
	cfg, err := analysis.LoadConfig(fs, args.Config)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(args.OutputDir, os.ModePerm); err != nil {
		return errors.Wrapf(err, "could not create %s", args.OutputDir)
	}

	ds, err := h5data.ReadDataset(args.Input, cfg.TotalJets())
	if err != nil {
		return err
	}
	if ds.NumJets == 0 {
		return errors.New("%s contains no jets", args.Input)
	}
	log.Durations.Since("load", start)
	log.Infow("loaded dataset",
		"path", args.Input,
		"shape", ds.Shape(),
		"values", humanize.Comma(int64(len(ds.Particles))))
	if ds.NumJets < cfg.TotalJets() {
		log.Warnw("dataset holds fewer jets than requested",
			"requested", cfg.TotalJets(), "available", ds.NumJets)
	}

	observables, err := nsubjettiness.ObservableList(cfg.MaxK())
	if err != nil {
		return err
	}

	proc, err := analysis.NewProcessor(observables, analysis.Options{
		Workers:  args.Workers,
		Progress: !args.Quiet,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	res, err := proc.Process(ctx, ds)
	if err != nil {
		return err
	}

	start = time.Now()
	path := filepath.Join(args.OutputDir, outputFile)
	if err := h5data.WriteOutput(path, res.Output(ds)); err != nil {
		return err
	}
	log.Infow("wrote features", "path", path, "observables", len(observables))

	summary, err := analysis.Summarize(res)
	if err != nil {
		return err
	}
	if err := analysis.WriteSummary(fs, filepath.Join(args.OutputDir, summaryFile), summary); err != nil {
		return err
	}
	if err := analysis.WriteSummaryCSV(fs, filepath.Join(args.OutputDir, summaryCSV), summary); err != nil {
		return err
	}
	log.Durations.Since("write", start)

	switch {
	case args.NoPlot:
	case cfg.MaxK() > analysis.MaxPlotK:
		log.Infow("too many observables to plot", "K", cfg.MaxK(), "max", analysis.MaxPlotK)
	default:
		start = time.Now()
		if err := analysis.Plot(fs, args.OutputDir, res, summary, log); err != nil {
			return err
		}
		log.Durations.Since("plot", start)
	}

	return nil
}
