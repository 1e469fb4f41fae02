package config

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/timelapsetech/videocalc-db/internal/dirs"
)

// Viper keys.
const (
	KeyCatalog     = "catalog"
	KeyPresets     = "presets"
	KeyVerbose     = "verbose"
	KeyBinaryUnits = "binary_units"
	KeyDebounce    = "debounce"
)

// DefaultDebounce is the calculation debounce used by the interactive picker.
const DefaultDebounce = 150 * time.Millisecond

// Settings is the resolved configuration for one invocation.
type Settings struct {
	Catalog     string
	Presets     string
	Verbose     bool
	BinaryUnits bool
	Debounce    time.Duration
}

// Init wires Viper with config paths, env, defaults, and flag bindings.
// It is non-fatal: a missing config file is not an error.
func Init(root *cobra.Command) error {
	viper.SetDefault(KeyDebounce, DefaultDebounce)

	// Setup config search path
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	// Environment variables: VIDEOCALC_*
	viper.SetEnvPrefix("VIDEOCALC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Bind root persistent flags to Viper keys
	flags := root.PersistentFlags()
	_ = viper.BindPFlag(KeyCatalog, flags.Lookup("catalog"))
	_ = viper.BindPFlag(KeyPresets, flags.Lookup("presets"))
	_ = viper.BindPFlag(KeyVerbose, flags.Lookup("verbose"))
	_ = viper.BindPFlag(KeyBinaryUnits, flags.Lookup("binary-units"))
	_ = viper.BindPFlag(KeyDebounce, flags.Lookup("debounce"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// Load reads the current settings, filling the preset path from the state
// directory when unset.
func Load() Settings {
	s := Settings{
		Catalog:     strings.TrimSpace(viper.GetString(KeyCatalog)),
		Presets:     strings.TrimSpace(viper.GetString(KeyPresets)),
		Verbose:     viper.GetBool(KeyVerbose),
		BinaryUnits: viper.GetBool(KeyBinaryUnits),
		Debounce:    viper.GetDuration(KeyDebounce),
	}
	if s.Presets == "" {
		if p, err := dirs.PresetsFile(); err == nil {
			s.Presets = p
		}
	}
	if s.Debounce < 0 {
		s.Debounce = 0
	}
	return s
}
