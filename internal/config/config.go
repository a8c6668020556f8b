// ABOUTME: Runtime configuration from flags, environment, .env, and config file
// ABOUTME: Precedence is flag > READS_* env > config.yaml > defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/readsmvp/reads-cli/internal/credstore"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "READS"

	// DefaultAPIURL is where a locally started backend listens
	DefaultAPIURL = "http://localhost:8000"

	configFileName = "config.yaml"
)

// Configuration keys
const (
	KeyAPIURL    = "api_url"
	KeyConfigDir = "config_dir"
	KeyLogLevel  = "log_level"
	KeyOutput    = "output"
	KeyNoPersist = "no_persist"
	KeyDebug     = "debug"
	KeyToken     = "token"
)

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"api-url":    KeyAPIURL,
	"config-dir": KeyConfigDir,
	"log-level":  KeyLogLevel,
	"output":     KeyOutput,
	"no-persist": KeyNoPersist,
	"debug":      KeyDebug,
}

// Output formats accepted by --output
var outputFormats = []string{"table", "json", "yaml", "text"}

// Config is the resolved runtime configuration
type Config struct {
	APIURL    string `mapstructure:"api_url"`
	ConfigDir string `mapstructure:"config_dir"`
	LogLevel  string `mapstructure:"log_level"`
	Output    string `mapstructure:"output"`
	NoPersist bool   `mapstructure:"no_persist"`
	Debug     bool   `mapstructure:"debug"`
	// Token, when set, is used for this run instead of the session file
	Token     string `mapstructure:"token"`
}

// Load resolves configuration. Flags in fs that were set take priority;
// fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if fs != nil {
		for name, key := range flagKeys {
			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := readConfigFile(v); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if err := validateOutput(cfg.Output); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIURL, DefaultAPIURL)
	v.SetDefault(KeyConfigDir, credstore.DefaultConfigDir())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyOutput, "table")
	v.SetDefault(KeyNoPersist, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyToken, "")
}

// readConfigFile merges config.yaml from the config dir when present
func readConfigFile(v *viper.Viper) error {
	dir := v.GetString(KeyConfigDir)
	if dir == "" {
		return nil
	}

	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config file %s: %w", path, err)
	}
	return nil
}

// loadDotEnv exports variables from a .env file. A missing file is fine.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("could not load %s: %w", path, err)
}

func validateOutput(format string) error {
	for _, f := range outputFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format %q (expected one of %s)", format, strings.Join(outputFormats, ", "))
}

// SessionPath is where the bearer token is stored
func (c *Config) SessionPath() string {
	return credstore.NewFileStore(c.ConfigDir).Path()
}

// TokenStore picks where the session lives for this run: an explicit token
// is used as-is, --no-persist keeps it in memory, otherwise the session file.
func (c *Config) TokenStore() credstore.Store {
	if c.Token != "" {
		return credstore.NewMemoryStore(c.Token)
	}
	if c.NoPersist {
		return credstore.NewMemoryStore("")
	}
	return credstore.NewFileStore(c.ConfigDir)
}
