package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rickchristie/todoagent"
	"github.com/rickchristie/todoagent/models"
	"github.com/rickchristie/todoagent/session"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func testFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("model", "", "")
	flags.String("variant", "", "")
	flags.Int("max-steps", 0, "")
	flags.Float64("temperature", -1, "")
	flags.String("log-dir", "", "")
	flags.Bool("verbose", false, "")
	flags.String("config", "", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoader_Load(t *testing.T) {
	type input struct {
		configFile string
		envFile    string
		env        map[string]string
		args       []string
	}

	type expected struct {
		config Config
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:  "defaults with key from environment",
			input: input{env: map[string]string{"OPENAI_API_KEY": "sk-env"}},
			expected: expected{config: Config{
				Provider:    "openai",
				APIKey:      "sk-env",
				Model:       todoagent.DefaultModel,
				Variant:     "react",
				MaxSteps:    6,
				Temperature: -1,
				LogDir:      "logs",
			}},
		},
		{
			name: "config file overrides defaults",
			input: input{
				configFile: "variant: toolcall\nmax_steps: 4\nmodel: gpt-4o\napi_key: sk-file\n",
				env:        map[string]string{"OPENAI_API_KEY": "sk-env"},
			},
			expected: expected{config: Config{
				Provider:    "openai",
				APIKey:      "sk-file",
				Model:       "gpt-4o",
				Variant:     "toolcall",
				MaxSteps:    4,
				Temperature: -1,
				LogDir:      "logs",
			}},
		},
		{
			name: "prefixed environment overrides config file",
			input: input{
				configFile: "max_steps: 4\nlog_dir: file-logs\n",
				env: map[string]string{
					"TODOAGENT_MAX_STEPS": "3",
					"OPENAI_API_KEY":      "sk-env",
					"OPENAI_BASE_URL":     "http://localhost:8080/v1",
				},
			},
			expected: expected{config: Config{
				Provider:    "openai",
				APIKey:      "sk-env",
				BaseURL:     "http://localhost:8080/v1",
				Model:       todoagent.DefaultModel,
				Variant:     "react",
				MaxSteps:    3,
				Temperature: -1,
				LogDir:      "file-logs",
			}},
		},
		{
			name: "flags override environment",
			input: input{
				env:  map[string]string{"TODOAGENT_MODEL": "gpt-4o", "OPENAI_API_KEY": "sk"},
				args: []string{"--model", "gpt-4.1", "--max-steps", "2", "--temperature", "0.5", "--verbose"},
			},
			expected: expected{config: Config{
				Provider:    "openai",
				APIKey:      "sk",
				Model:       "gpt-4.1",
				Variant:     "react",
				MaxSteps:    2,
				Temperature: 0.5,
				LogDir:      "logs",
				Verbose:     true,
			}},
		},
		{
			name: "unchanged flags keep other sources",
			input: input{
				configFile: "variant: toolcall\n",
				env:        map[string]string{"OPENAI_API_KEY": "sk"},
				args:       []string{},
			},
			expected: expected{config: Config{
				Provider:    "openai",
				APIKey:      "sk",
				Model:       todoagent.DefaultModel,
				Variant:     "toolcall",
				MaxSteps:    6,
				Temperature: -1,
				LogDir:      "logs",
			}},
		},
		{
			name: "dotenv supplies the key",
			input: input{
				envFile: "OPENAI_API_KEY=sk-dotenv\nTODOAGENT_VARIANT=toolcall\n",
			},
			expected: expected{config: Config{
				Provider:    "openai",
				APIKey:      "sk-dotenv",
				Model:       todoagent.DefaultModel,
				Variant:     "toolcall",
				MaxSteps:    6,
				Temperature: -1,
				LogDir:      "logs",
			}},
		},
		{
			name: "process environment beats dotenv",
			input: input{
				envFile: "OPENAI_API_KEY=sk-dotenv\n",
				env:     map[string]string{"OPENAI_API_KEY": "sk-process"},
			},
			expected: expected{config: Config{
				Provider:    "openai",
				APIKey:      "sk-process",
				Model:       todoagent.DefaultModel,
				Variant:     "react",
				MaxSteps:    6,
				Temperature: -1,
				LogDir:      "logs",
			}},
		},
		{
			name: "github provider reads GITHUB_TOKEN",
			input: input{
				env: map[string]string{
					"TODOAGENT_PROVIDER": "github",
					"GITHUB_TOKEN":       "ghp_x",
					"OPENAI_API_KEY":     "sk-unused",
				},
			},
			expected: expected{config: Config{
				Provider:    "github",
				APIKey:      "ghp_x",
				Model:       todoagent.DefaultModel,
				Variant:     "react",
				MaxSteps:    6,
				Temperature: -1,
				LogDir:      "logs",
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loader := &Loader{Getenv: envMap(tc.input.env)}
			if tc.input.configFile != "" {
				loader.ConfigFile = writeFile(t, "todoagent.yaml", tc.input.configFile)
			}
			if tc.input.envFile != "" {
				loader.EnvFile = writeFile(t, ".env", tc.input.envFile)
			} else {
				loader.EnvFile = filepath.Join(t.TempDir(), "missing.env")
			}
			if tc.input.args != nil {
				loader.Flags = testFlags(t, tc.input.args...)
			}

			cfg, err := loader.Load()
			require.NoError(t, err)
			assert.Equal(t, tc.expected.config, *cfg)
		})
	}
}

func TestLoader_Load_MissingConfigFile(t *testing.T) {
	loader := &Loader{
		ConfigFile: filepath.Join(t.TempDir(), "nope.yaml"),
		Getenv:     envMap(nil),
	}
	_, err := loader.Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := Defaults()
		cfg.APIKey = "sk"
		return cfg
	}

	tests := []struct {
		name           string
		mutate         func(c *Config)
		wantErr        bool
		wantMissingKey bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing key", mutate: func(c *Config) { c.APIKey = " " }, wantErr: true, wantMissingKey: true},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "azure" }, wantErr: true},
		{name: "unknown variant", mutate: func(c *Config) { c.Variant = "other" }, wantErr: true},
		{name: "zero steps", mutate: func(c *Config) { c.MaxSteps = 0 }, wantErr: true},
		{name: "empty model", mutate: func(c *Config) { c.Model = "" }, wantErr: true},
		{name: "graph alias", mutate: func(c *Config) { c.Variant = "graph" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.wantMissingKey, errors.Is(err, todoagent.ErrMissingCredential))
		})
	}
}

func TestConfig_Validate_GitHubHint(t *testing.T) {
	cfg := Defaults()
	cfg.Provider = string(models.ProviderGitHub)
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, todoagent.ErrMissingCredential)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestConfig_Conversions(t *testing.T) {
	cfg := Defaults()
	cfg.APIKey = "sk"
	cfg.BaseURL = "http://x"
	cfg.Variant = "graph"
	cfg.MaxSteps = 3
	cfg.Temperature = 0.4

	assert.Equal(t, models.Options{
		Provider: models.ProviderOpenAI,
		APIKey:   "sk",
		Model:    todoagent.DefaultModel,
		BaseURL:  "http://x",
	}, cfg.ModelOptions())

	settings := cfg.SessionSettings()
	assert.Equal(t, session.VariantToolCall, settings.Variant)
	assert.Equal(t, 3, settings.MaxSteps)
	assert.InDelta(t, 0.4, settings.Temperature, 1e-9)
}
