// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/keelstake/keel/builtin/staking/pool"
	"github.com/keelstake/keel/lvldb"
)

var validate = validator.New()

// Config is the off-ledger configuration of the cli.
type Config struct {
	DataDir        string        `yaml:"data-dir" validate:"required"`
	LevelDB        lvldb.Options `yaml:"leveldb"`
	LockingPeriods []uint64      `yaml:"locking-periods" validate:"dive,lte=31536000"`
	MetricsAddr    string        `yaml:"metrics-addr" validate:"omitempty,hostname_port"`
	NTPServer      string        `yaml:"ntp-server" validate:"omitempty,hostname"`
}

func defaultConfig() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		LevelDB: lvldb.Options{
			CacheSize:              16,
			OpenFilesCacheCapacity: 64,
		},
		LockingPeriods: append([]uint64(nil), pool.DefaultLockingPeriods...),
		MetricsAddr:    "localhost:2112",
	}
}

// loadConfig reads the config file at path over the defaults. An empty path
// yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "parse config")
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".keel")
	}
	return filepath.Join(os.TempDir(), ".keel")
}

func defaultKeyFile() string {
	return filepath.Join(defaultDataDir(), "id.json")
}
