package syndnaquant

import (
	"fmt"
	"os"
	"sort"

	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"
)

// Config carries the biophysical constants and the syndna pool
// definitions. A pool maps each syndna feature ID to its individual
// concentration in ng/µL within the pool mixture.
type Config struct {
	RNABaseGPerMole     float64                       `yaml:"rna_base_g_per_mole"`
	DNABasepairGPerMole float64                       `yaml:"dna_basepair_g_per_mole"`
	SyndnaPools         map[string]map[string]float64 `yaml:"syndna_pools"`
}

// DefaultConfig returns the stock constants and the standard pool 1
// composition.
func DefaultConfig() *Config {
	return &Config{
		RNABaseGPerMole:     DefaultRNABaseGPerMole,
		DNABasepairGPerMole: DefaultDNABasepairGPerMole,
		SyndnaPools: map[string]map[string]float64{
			"1": {
				"p126": 1,
				"p136": 0.1,
				"p146": 0.01,
				"p156": 0.001,
				"p166": 0.0001,
				"p226": 0.0001,
				"p236": 0.001,
				"p246": 0.01,
				"p256": 0.1,
				"p266": 1,
			},
		},
	}
}

// LoadConfig reads a YAML config file. Fields left unset fall back to the
// defaults, so an override file may carry only the constants or only the
// pools.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, pfx.Err(err)
	}

	defaults := DefaultConfig()
	if cfg.RNABaseGPerMole == 0 {
		cfg.RNABaseGPerMole = defaults.RNABaseGPerMole
	}
	if cfg.DNABasepairGPerMole == 0 {
		cfg.DNABasepairGPerMole = defaults.DNABasepairGPerMole
	}
	if len(cfg.SyndnaPools) == 0 {
		cfg.SyndnaPools = defaults.SyndnaPools
	}

	return cfg, nil
}

// PoolConcentrations returns the per-syndna ng/µL of one pool. The error
// for an unknown pool names the pools the config does define.
func (c *Config) PoolConcentrations(pool string) (map[string]float64, error) {
	concs, exists := c.SyndnaPools[pool]
	if !exists {
		known := make([]string, 0, len(c.SyndnaPools))
		for k := range c.SyndnaPools {
			known = append(known, k)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("syndna pool %q is not in the config; known pools: %v", pool, known)
	}

	return concs, nil
}
