package main

import (
	"os"
	"path/filepath"

	"github.com/kiteco/jetml/kite-golib/cmdline"
	"github.com/kiteco/jetml/kite-golib/errors"
	"github.com/kiteco/jetml/kite-golib/h5data"
	"github.com/kiteco/jetml/kite-golib/kitelog"
	"github.com/kiteco/jetml/local-pipelines/ppaa-nsubjettiness/internal/analysis"
	"github.com/spf13/afero"
)

type plotArgs struct {
	Input     string `arg:"-i,--input" help:"feature file written by process"`
	OutputDir string `arg:"-o,--output-dir" help:"directory for the plots"`
}

var plotCmd = cmdline.Command{
	Name:     "plot",
	Synopsis: "redraw the plots from an existing feature file",
	Args: &plotArgs{
		Input:     filepath.Join("./TestOutput", outputFile),
		OutputDir: "./TestOutput",
	},
}

func (args *plotArgs) Handle() error {
	log := kitelog.Basic
	defer log.Sync()

	fs := afero.NewOsFs()
	exists, err := afero.Exists(fs, args.Input)
	if err != nil {
		return errors.Wrapf(err, "could not stat %s", args.Input)
	}
	if !exists {
		return errors.New("%s does not exist", args.Input)
	}

	out, err := h5data.ReadOutput(args.Input)
	if err != nil {
		return err
	}
	res := analysis.ResultFromOutput(out)

	summary, err := analysis.Summarize(res)
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(args.OutputDir, os.ModePerm); err != nil {
		return errors.Wrapf(err, "could not create %s", args.OutputDir)
	}
	return analysis.Plot(fs, args.OutputDir, res, summary, log)
}
