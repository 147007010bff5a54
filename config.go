package main

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"

	c "git.cmcode.dev/cmcode/exchange-rate-tui/constants"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Attempts to load from a specific location, if possible.
//
// The first return value is the populated config, if one was found and
// parsed. The second return value is the path that successfully loaded the
// config (empty if it didn't succeed). The third return value is an error,
// if present.
//
// The "t" parameter is the map of translations.
func loadConfFrom(file string, t map[string]string) (Config, string, error) {
	conf := Config{}

	b, err := os.ReadFile(file)
	if err != nil {
		return conf, "", fmt.Errorf("%v %v: %w", t["ConfigFailedToLoadConfig"], file, err)
	}

	err = yaml.Unmarshal(b, &conf)
	if err != nil {
		return conf, "", fmt.Errorf("%v %v: %w", t["ConfigFailedToUnmarshalConfig"], file, err)
	}

	return conf, file, nil
}

func loadConfFromEmbed(file string, emb embed.FS, t map[string]string) (Config, string, error) {
	conf := Config{}

	b, err := emb.ReadFile(file)
	if err != nil {
		return conf, "", fmt.Errorf("%v %v: %w", t["ConfigFailedToLoadEmbeddedConfig"], file, err)
	}

	err = yaml.Unmarshal(b, &conf)
	if err != nil {
		return conf, "", fmt.Errorf("%v %v: %w", t["ConfigFailedToUnmarshalEmbeddedConfig"], file, err)
	}

	return conf, file, nil
}

func fileExists(name string) (bool, error) {
	_, err := os.Stat(name)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// Attempts to load from the "file" path provided - if not successful,
// attempts to load from xdg config, then xdg home, then the embedded
// example config.
//
// The returned string is the path that future saves should target; callers
// should keep it.
//
// The "t" parameter is the map of translations.
func loadConfig(file string, t map[string]string, exampleConf embed.FS) (Config, string, error) {
	if file == "" {
		file = c.DefaultConfig
	}

	var err error

	var exists bool

	var conf Config

	// create the XDG config dir for this application once upon startup
	xdgConfigDir := path.Join(xdg.ConfigHome, c.DefaultConfigParentDir)

	err = os.MkdirAll(xdgConfigDir, 0o755)
	if err != nil {
		return conf, file, fmt.Errorf("failed to make all directories %v: %w", xdgConfigDir, err)
	}

	exists, err = fileExists(file)
	if err != nil {
		return conf, file, fmt.Errorf("failed to check if file %v exists: %w", file, err)
	}

	if exists {
		conf, file, err = loadConfFrom(file, t)
		if err != nil {
			return conf, file, fmt.Errorf("failed to load config from existing config file %v: %w", file, err)
		}

		return conf, file, nil
	}

	xdgConfig := path.Join(xdgConfigDir, c.DefaultConfig)

	exists, err = fileExists(xdgConfig)
	if err != nil {
		return conf, file, fmt.Errorf("failed to check if file %v exists: %w", file, err)
	}

	if exists {
		conf, file, err = loadConfFrom(xdgConfig, t)
		if err != nil {
			return conf, file, fmt.Errorf("failed to load config from existing config file %v: %w", file, err)
		}

		return conf, file, nil
	}

	xdgHome := path.Join(xdg.Home, c.DefaultConfigParentDir, c.DefaultConfig)

	exists, err = fileExists(xdgHome)
	if err != nil {
		return conf, file, fmt.Errorf("failed to check if file %v exists: %w", file, err)
	}

	if exists {
		conf, file, err = loadConfFrom(xdgHome, t)
		if err != nil {
			return conf, file, fmt.Errorf("failed to load config from existing config file %v: %w", file, err)
		}

		return conf, file, nil
	}

	// no config anywhere; fall back to the embedded example, but set the
	// target write path to the xdg config location
	conf, _, err = loadConfFromEmbed("example.yml", exampleConf, t)
	if err != nil {
		return conf, file, fmt.Errorf("failed to load config from template config: %w", err)
	}

	return conf, xdgConfig, err
}

// processConfig applies defaults so the rest of the application never has to
// re-check for zero values. Use it after loadConfig.
func processConfig(conf *Config) {
	if conf.RatesURL == "" {
		conf.RatesURL = c.DefaultRatesURL
	}

	if conf.DefaultRateType == "" {
		conf.DefaultRateType = c.DefaultRateType
	}

	if conf.HistoryMax <= 0 {
		conf.HistoryMax = c.MaxHistory
	}

	if conf.Version == "" {
		conf.Version = c.ConfigVersion
	}

	if conf.Keybindings == nil {
		conf.Keybindings = make(map[string][]string)
	}
}
