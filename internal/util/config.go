package util

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Configuration carries interpreter settings. Zero values are usable; a TOML
// config file overrides them.
type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	RootPath string `toml:"root_path"` // directory searched for imported .mad files
	LogLevel string `toml:"log_level"` // debug, info, warn, error
	LogFile  string `toml:"log_file"`  // empty logs to stderr
	DebugAST bool   `toml:"debug_ast"` // write <script>.ast.json next to the script

	Units []UnitDef `toml:"units"`
}

// UnitDef declares a custom unit in the config file:
//
//	[[units]]
//	symbol = "furlong"
//	dimension = "length"
//	factor = 201.168
type UnitDef struct {
	Symbol    string  `toml:"symbol"`
	Dimension string  `toml:"dimension"`
	Factor    float64 `toml:"factor"`
	Composite string  `toml:"composite"`
}

// LoadConfiguration reads a TOML config file into cfg, leaving cfg untouched
// when path is empty or the file does not exist.
func LoadConfiguration(path string, cfg *Configuration) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}
