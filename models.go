package main

// Config is the persisted application configuration. Everything in here has
// a sensible default applied by processConfig, so a missing config file is
// not an error.
type Config struct {
	// Keybindings maps a key name (as reported by tcell) to one or more
	// action names, merged on top of the defaults.
	Keybindings map[string][]string `yaml:"keybindings"`

	// RatesURL is the base URL the rate snapshot is fetched from at startup;
	// the /data/rates.json path is appended.
	RatesURL string `yaml:"ratesUrl"`

	// Language selects the translations table; empty falls back to $LANG and
	// then to the default language.
	Language string `yaml:"language"`

	Theme string `yaml:"theme"`

	// DefaultRateType is the rate table variant selected on startup.
	DefaultRateType string `yaml:"defaultRateType"`

	// HistoryMax caps the saved-calculation list.
	HistoryMax int `yaml:"historyMax"`

	// DisplayVersion is a purely cosmetic label shown in the metadata
	// readout; it never affects behavior.
	DisplayVersion string `yaml:"displayVersion"`

	Version string `yaml:"version"`
}
