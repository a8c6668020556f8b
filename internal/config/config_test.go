// ABOUTME: Tests for configuration precedence and validation
// ABOUTME: Uses temp config dirs and t.Setenv so the user's setup is untouched

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	fs.String("config-dir", "", "")
	fs.StringP("output", "o", "table", "")
	fs.Bool("no-persist", false, "")
	fs.Bool("debug", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("READS_CONFIG_DIR", t.TempDir())
	t.Setenv("READS_API_URL", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected default URL, got %s", cfg.APIURL)
	}
	if cfg.Output != "table" {
		t.Errorf("expected table output, got %s", cfg.Output)
	}
	if cfg.NoPersist {
		t.Error("expected persistence on by default")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: http://from-file:8000\nlog_level: debug\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("READS_CONFIG_DIR", dir)
	t.Setenv("READS_API_URL", "http://from-env:8000")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://from-env:8000" {
		t.Errorf("expected env URL, got %s", cfg.APIURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level from file, got %s", cfg.LogLevel)
	}
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	t.Setenv("READS_CONFIG_DIR", t.TempDir())
	t.Setenv("READS_API_URL", "http://from-env:8000")

	fs := newFlags()
	if err := fs.Parse([]string{"--api-url", "http://from-flag:8000", "-o", "JSON"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://from-flag:8000" {
		t.Errorf("expected flag URL, got %s", cfg.APIURL)
	}
	if cfg.Output != "json" {
		t.Errorf("expected normalized json output, got %s", cfg.Output)
	}
}

func TestLoad_UnsetFlagKeepsEnv(t *testing.T) {
	t.Setenv("READS_CONFIG_DIR", t.TempDir())
	t.Setenv("READS_API_URL", "http://from-env:8000")

	cfg, err := Load(newFlags())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIURL != "http://from-env:8000" {
		t.Errorf("expected env URL when flag unset, got %s", cfg.APIURL)
	}
}

func TestLoad_InvalidOutput(t *testing.T) {
	t.Setenv("READS_CONFIG_DIR", t.TempDir())
	t.Setenv("READS_OUTPUT", "xml")

	if _, err := Load(nil); err == nil {
		t.Error("expected error for unsupported output format")
	}
}

func TestLoad_BadConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("READS_CONFIG_DIR", dir)

	if _, err := Load(nil); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestSessionPath(t *testing.T) {
	cfg := &Config{ConfigDir: "/tmp/reads-test"}
	if got := cfg.SessionPath(); got != filepath.Join("/tmp/reads-test", "session.json") {
		t.Errorf("unexpected session path %s", got)
	}
}
