// Package config loads runtime settings from defaults, an optional config file, a .env file,
// environment variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/models"
	"github.com/rickchristie/todoagent/session"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys. Flags bound by BindFlags use the same names with "_" replaced by "-".
const (
	KeyProvider    = "provider"
	KeyAPIKey      = "api_key"
	KeyBaseURL     = "base_url"
	KeyModel       = "model"
	KeyVariant     = "variant"
	KeyMaxSteps    = "max_steps"
	KeyTemperature = "temperature"
	KeyLogDir      = "log_dir"
	KeyVerbose     = "verbose"
)

// EnvPrefix prefixes environment overrides, e.g. TODOAGENT_MAX_STEPS.
const EnvPrefix = "TODOAGENT"

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// Config holds the settings of one run.
type Config struct {
	Provider    string  `mapstructure:"provider"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Variant     string  `mapstructure:"variant"`
	MaxSteps    int     `mapstructure:"max_steps"`
	Temperature float64 `mapstructure:"temperature"`
	LogDir      string  `mapstructure:"log_dir"`
	Verbose     bool    `mapstructure:"verbose"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Provider:    string(models.ProviderOpenAI),
		Model:       todoagent.DefaultModel,
		Variant:     string(session.VariantReAct),
		MaxSteps:    todoagent.DefaultMaxSteps,
		Temperature: -1,
		LogDir:      "logs",
	}
}

// Loader reads configuration. EnvFile and Environ are replaceable for tests.
type Loader struct {
	// ConfigFile is an optional YAML, TOML or JSON file. A missing explicit file is an error.
	ConfigFile string

	// EnvFile is a dotenv file. A missing file is ignored.
	EnvFile string

	// Flags, when set, override every other source for the flags the user changed.
	Flags *pflag.FlagSet

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// Load reads configuration from path (may be empty), ./.env, the environment and flags.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	return (&Loader{ConfigFile: path, EnvFile: DefaultEnvFile, Flags: flags}).Load()
}

// Load builds a Config. It does not validate it; call Validate before use.
func (l *Loader) Load() (*Config, error) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyProvider, d.Provider)
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyModel, d.Model)
	v.SetDefault(KeyVariant, d.Variant)
	v.SetDefault(KeyMaxSteps, d.MaxSteps)
	v.SetDefault(KeyTemperature, d.Temperature)
	v.SetDefault(KeyLogDir, d.LogDir)
	v.SetDefault(KeyVerbose, d.Verbose)

	if l.ConfigFile != "" {
		v.SetConfigFile(l.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", l.ConfigFile, err)
		}
	}

	dotenv, err := readEnvFile(l.EnvFile)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) string {
		if val := getenv(key); val != "" {
			return val
		}
		return dotenv[key]
	}

	// Environment values land in the config layer so flags still take precedence.
	overrides := map[string]any{}
	if val := lookup("OPENAI_BASE_URL"); val != "" && !v.InConfig(KeyBaseURL) {
		overrides[KeyBaseURL] = val
	}
	for _, key := range v.AllKeys() {
		if val := lookup(EnvPrefix + "_" + strings.ToUpper(key)); val != "" {
			overrides[key] = val
		}
	}
	if len(overrides) > 0 {
		if err := v.MergeConfigMap(overrides); err != nil {
			return nil, fmt.Errorf("apply environment: %w", err)
		}
	}

	if l.Flags != nil {
		var bindErr error
		l.Flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !isKey(key) || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return nil, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = lookup(credentialEnv(cfg.Provider))
	}
	return &cfg, nil
}

func isKey(key string) bool {
	switch key {
	case KeyProvider, KeyAPIKey, KeyBaseURL, KeyModel, KeyVariant,
		KeyMaxSteps, KeyTemperature, KeyLogDir, KeyVerbose:
		return true
	}
	return false
}

// credentialEnv names the environment variable holding the provider's API key.
func credentialEnv(provider string) string {
	if models.Provider(provider) == models.ProviderGitHub {
		return "GITHUB_TOKEN"
	}
	return "OPENAI_API_KEY"
}

// readEnvFile parses a dotenv file with viper. A missing file yields an empty map.
func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	out := make(map[string]string, len(v.AllKeys()))
	for _, key := range v.AllKeys() {
		// viper lowercases keys; environment names are upper case.
		out[strings.ToUpper(key)] = v.GetString(key)
	}
	return out, nil
}

// Validate checks the provider, credential, variant and step cap. A missing key wraps
// todoagent.ErrMissingCredential.
func (c *Config) Validate() error {
	switch models.Provider(c.Provider) {
	case models.ProviderOpenAI, models.ProviderGitHub:
	default:
		return fmt.Errorf("unknown provider %q: want %q or %q",
			c.Provider, models.ProviderOpenAI, models.ProviderGitHub)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: set %s", todoagent.ErrMissingCredential, credentialEnv(c.Provider))
	}
	if _, err := session.ParseVariant(c.Variant); err != nil {
		return err
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("max_steps must be at least 1, got %d", c.MaxSteps)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model must not be empty")
	}
	return nil
}

// ModelOptions returns the options for models.New.
func (c *Config) ModelOptions() models.Options {
	return models.Options{
		Provider: models.Provider(c.Provider),
		APIKey:   c.APIKey,
		Model:    c.Model,
		BaseURL:  c.BaseURL,
	}
}

// SessionSettings returns the session settings. Call Validate first.
func (c *Config) SessionSettings() session.Settings {
	variant, _ := session.ParseVariant(c.Variant)
	settings := session.DefaultSettings()
	settings.Variant = variant
	settings.MaxSteps = c.MaxSteps
	settings.Temperature = c.Temperature
	return settings
}
