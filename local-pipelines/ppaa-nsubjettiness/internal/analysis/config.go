package analysis

import (
	"github.com/kiteco/jetml/kite-golib/errors"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v2"
)

// Config holds the analysis settings read from the YAML config. Keys used by
// other stages of the ML workflow (model settings etc.) are ignored.
type Config struct {
	NTrain int   `yaml:"n_train"`
	NVal   int   `yaml:"n_val"`
	NTest  int   `yaml:"n_test"`
	K      []int `yaml:"K"`
}

// LoadConfig reads and validates the config at path
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "could not read config %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(buf, &c); err != nil {
		return Config{}, errors.Wrapf(err, "could not parse config %s", path)
	}
	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return c, nil
}

// Validate checks the split sizes and axis counts
func (c Config) Validate() error {
	if c.NTrain < 0 || c.NVal < 0 || c.NTest < 0 {
		return errors.New("split sizes must be non-negative: n_train=%d n_val=%d n_test=%d", c.NTrain, c.NVal, c.NTest)
	}
	if c.TotalJets() == 0 {
		return errors.New("n_train + n_val + n_test must be positive")
	}
	if len(c.K) == 0 {
		return errors.New("K must list at least one axis count")
	}
	if c.MaxK() < 2 {
		return errors.New("max(K) must be at least 2, got %d", c.MaxK())
	}
	return nil
}

// TotalJets is the number of jets to load
func (c Config) TotalJets() int {
	return c.NTrain + c.NVal + c.NTest
}

// MaxK is the largest axis count in K
func (c Config) MaxK() int {
	var max int
	for i, k := range c.K {
		if i == 0 || k > max {
			max = k
		}
	}
	return max
}
