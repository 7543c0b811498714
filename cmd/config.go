package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	DataDir           string
	ReportingCurrency string
}

// configTmp is the yaml shape of the config file.
type configTmp struct {
	DataDir           string `yaml:"data_dir"`
	ReportingCurrency string `yaml:"reporting_currency"`
}

// Get resolves the configuration: defaults, then the yaml config file if one
// exists, then command-line overrides.
func Get() (Config, error) {
	cfg := Config{
		DataDir:           defaultDataDir(),
		ReportingCurrency: "AUD",
	}

	path := *configFile
	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// no config file, defaults apply
	case err != nil:
		return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
	default:
		var tmp configTmp
		if err := yaml.Unmarshal(content, &tmp); err != nil {
			return Config{}, fmt.Errorf("cannot parse config %q: %w", path, err)
		}
		if tmp.DataDir != "" {
			cfg.DataDir = tmp.DataDir
		}
		if tmp.ReportingCurrency != "" {
			cfg.ReportingCurrency = tmp.ReportingCurrency
		}
	}

	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	return cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sharetrack"
	}
	return filepath.Join(home, ".sharetrack")
}
