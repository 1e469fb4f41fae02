package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "videocalc"}
	root.PersistentFlags().String("catalog", "", "")
	root.PersistentFlags().String("presets", "", "")
	root.PersistentFlags().Bool("verbose", false, "")
	root.PersistentFlags().Bool("binary-units", false, "")
	root.PersistentFlags().Duration("debounce", DefaultDebounce, "")
	return root
}

func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("HOME", dir)
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)
	if err := Init(newRoot()); err != nil {
		t.Fatal(err)
	}
	s := Load()
	if s.Catalog != "" || s.Verbose || s.BinaryUnits {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if s.Debounce != DefaultDebounce {
		t.Fatalf("debounce = %v, want %v", s.Debounce, DefaultDebounce)
	}
	if filepath.Base(s.Presets) != "presets.yaml" {
		t.Fatalf("presets = %q", s.Presets)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("VIDEOCALC_CATALOG", "/data/codecs.yaml")
	t.Setenv("VIDEOCALC_BINARY_UNITS", "true")
	t.Setenv("VIDEOCALC_DEBOUNCE", "0s")

	if err := Init(newRoot()); err != nil {
		t.Fatal(err)
	}
	s := Load()
	if s.Catalog != "/data/codecs.yaml" {
		t.Fatalf("catalog = %q", s.Catalog)
	}
	if !s.BinaryUnits {
		t.Fatal("binary units not picked up from env")
	}
	if s.Debounce != 0 {
		t.Fatalf("debounce = %v, want 0", s.Debounce)
	}
}

func TestFlagBeatsConfigFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config dir follows XDG only on linux")
	}
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "config", "videocalc")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := "catalog: /from/config.yaml\ndebounce: 300ms\nverbose: true\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRoot()
	if err := root.PersistentFlags().Set("catalog", "/from/flag.yaml"); err != nil {
		t.Fatal(err)
	}
	if err := Init(root); err != nil {
		t.Fatal(err)
	}
	s := Load()
	if s.Catalog != "/from/flag.yaml" {
		t.Fatalf("catalog = %q, want flag value", s.Catalog)
	}
	if s.Debounce != 300*time.Millisecond {
		t.Fatalf("debounce = %v, want 300ms from config", s.Debounce)
	}
	if !s.Verbose {
		t.Fatal("verbose from config file ignored")
	}
}
