// Package h5data reads jet datasets from HDF5 files and writes N-subjettiness
// feature files.
//
// Input files hold a `data` dataset of shape (jets, particles, 4) with
// (E, px, py, pz) per particle and a `labels` dataset with one class per jet.
// Output files hold `y`, `X`, `X_Nsub`, `N_list` and `beta_list`.
package h5data

import (
	"github.com/kiteco/jetml/kite-golib/errors"
	"github.com/kiteco/jetml/kite-golib/jetdata"
	"gonum.org/v1/hdf5"
)

// Dataset names in input files
const (
	DataName   = "data"
	LabelsName = "labels"
)

// Dataset names in output files
const (
	YName        = "y"
	XName        = "X"
	XNsubName    = "X_Nsub"
	NListName    = "N_list"
	BetaListName = "beta_list"
)

// ReadDataset reads the first maxJets jets (all jets if maxJets <= 0 or larger
// than the file) of the data and labels datasets.
func ReadDataset(path string, maxJets int) (_ *jetdata.Dataset, err error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	defer errors.Defer(&err, f.Close)

	dims, err := datasetDims(f, DataName)
	if err != nil {
		return nil, err
	}
	if len(dims) != 3 || dims[2] != jetdata.Components {
		return nil, errors.New("%s: %s has shape %v, want (jets, particles, %d)", path, DataName, dims, jetdata.Components)
	}

	labelDims, err := datasetDims(f, LabelsName)
	if err != nil {
		return nil, err
	}
	if len(labelDims) != 1 {
		return nil, errors.New("%s: %s has shape %v, want (jets,)", path, LabelsName, labelDims)
	}

	numJets := int(dims[0])
	if int(labelDims[0]) < numJets {
		numJets = int(labelDims[0])
	}
	if maxJets > 0 && maxJets < numJets {
		numJets = maxJets
	}
	maxParticles := int(dims[1])

	particles := make([]float64, numJets*maxParticles*jetdata.Components)
	count := []uint{uint(numJets), uint(maxParticles), jetdata.Components}
	if err := readLeading(f, DataName, count, &particles); err != nil {
		return nil, err
	}

	labels := make([]int64, numJets)
	if err := readLeading(f, LabelsName, []uint{uint(numJets)}, &labels); err != nil {
		return nil, err
	}

	return jetdata.NewDataset(particles, labels, numJets, maxParticles)
}

func datasetDims(f *hdf5.File, name string) (_ []uint, err error) {
	ds, err := f.OpenDataset(name)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open dataset %s", name)
	}
	defer errors.Defer(&err, ds.Close)

	space := ds.Space()
	defer errors.Defer(&err, space.Close)

	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, errors.Wrapf(err, "could not read shape of %s", name)
	}
	return dims, nil
}

// readLeading reads the hyperslab starting at the origin with the given
// count into data, converting to data's element type.
func readLeading(f *hdf5.File, name string, count []uint, data interface{}) (err error) {
	for _, c := range count {
		if c == 0 {
			return nil
		}
	}

	ds, err := f.OpenDataset(name)
	if err != nil {
		return errors.Wrapf(err, "could not open dataset %s", name)
	}
	defer errors.Defer(&err, ds.Close)

	fileSpace := ds.Space()
	defer errors.Defer(&err, fileSpace.Close)

	offset := make([]uint, len(count))
	if err := fileSpace.SelectHyperslab(offset, nil, count, nil); err != nil {
		return errors.Wrapf(err, "could not select %v of %s", count, name)
	}

	memSpace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		return errors.Wrapf(err, "could not create memory space for %s", name)
	}
	defer errors.Defer(&err, memSpace.Close)

	if err := ds.ReadSubset(data, memSpace, fileSpace); err != nil {
		return errors.Wrapf(err, "could not read %s", name)
	}
	return nil
}

// WriteOutput writes the feature file, replacing any existing file at path.
func WriteOutput(path string, out *jetdata.Output) (err error) {
	if err := out.Validate(); err != nil {
		return err
	}

	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", path)
	}
	defer errors.Defer(&err, f.Close)

	numJets := uint(out.NumJets())
	if err := write(f, YName, hdf5.T_NATIVE_INT64, []uint{numJets}, &out.Labels); err != nil {
		return err
	}

	if out.Dataset != nil {
		dims := []uint{uint(out.Dataset.NumJets), uint(out.Dataset.MaxParticles), jetdata.Components}
		if err := write(f, XName, hdf5.T_NATIVE_DOUBLE, dims, &out.Dataset.Particles); err != nil {
			return err
		}
	}

	dims := []uint{numJets, uint(out.NumObservables())}
	if err := write(f, XNsubName, hdf5.T_NATIVE_DOUBLE, dims, &out.Features); err != nil {
		return err
	}
	if err := write(f, NListName, hdf5.T_NATIVE_INT64, []uint{uint(len(out.NList))}, &out.NList); err != nil {
		return err
	}
	return write(f, BetaListName, hdf5.T_NATIVE_DOUBLE, []uint{uint(len(out.BetaList))}, &out.BetaList)
}

func write(f *hdf5.File, name string, dtype *hdf5.Datatype, dims []uint, data interface{}) (err error) {
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return errors.Wrapf(err, "could not create dataspace for %s", name)
	}
	defer errors.Defer(&err, space.Close)

	ds, err := f.CreateDataset(name, dtype, space)
	if err != nil {
		return errors.Wrapf(err, "could not create dataset %s", name)
	}
	defer errors.Defer(&err, ds.Close)

	if isEmpty(dims) {
		return nil
	}
	if err := ds.Write(data); err != nil {
		return errors.Wrapf(err, "could not write %s", name)
	}
	return nil
}

func isEmpty(dims []uint) bool {
	for _, d := range dims {
		if d == 0 {
			return true
		}
	}
	return false
}

// ReadOutput reads a feature file written by WriteOutput. X is not loaded.
func ReadOutput(path string) (_ *jetdata.Output, err error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	defer errors.Defer(&err, f.Close)

	yDims, err := datasetDims(f, YName)
	if err != nil {
		return nil, err
	}
	featureDims, err := datasetDims(f, XNsubName)
	if err != nil {
		return nil, err
	}
	nDims, err := datasetDims(f, NListName)
	if err != nil {
		return nil, err
	}
	if len(yDims) != 1 || len(featureDims) != 2 || len(nDims) != 1 {
		return nil, errors.New("%s: unexpected shapes y=%v X_Nsub=%v N_list=%v", path, yDims, featureDims, nDims)
	}

	out := &jetdata.Output{
		Labels:   make([]int64, yDims[0]),
		Features: make([]float64, featureDims[0]*featureDims[1]),
		NList:    make([]int64, nDims[0]),
		BetaList: make([]float64, nDims[0]),
	}
	if err := readLeading(f, YName, yDims, &out.Labels); err != nil {
		return nil, err
	}
	if err := readLeading(f, XNsubName, featureDims, &out.Features); err != nil {
		return nil, err
	}
	if err := readLeading(f, NListName, nDims, &out.NList); err != nil {
		return nil, err
	}
	if err := readLeading(f, BetaListName, nDims, &out.BetaList); err != nil {
		return nil, err
	}

	if err := out.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return out, nil
}
