package models

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/openai"
)

// Provider selects the backend that serves chat completions.
type Provider string

const (
	// ProviderOpenAI talks to api.openai.com, or to any OpenAI-compatible server set with
	// Options.BaseURL.
	ProviderOpenAI Provider = "openai"
	// ProviderGitHub talks to the GitHub Models API.
	ProviderGitHub Provider = "github"
)

// Options configures New.
type Options struct {
	Provider Provider
	APIKey   string
	Model    string
	BaseURL  string
}

// New builds the Model described by opts.
func New(opts Options) (*LCGWrapper, error) {
	switch opts.Provider {
	case ProviderOpenAI, "":
		var extra []openai.Option
		if opts.BaseURL != "" {
			extra = append(extra, openai.WithBaseURL(opts.BaseURL))
		}
		return NewOpenAI(opts.Model, opts.APIKey, extra...)
	case ProviderGitHub:
		return NewGitHubModel(opts.Model, opts.APIKey)
	default:
		return nil, fmt.Errorf("unknown model provider %q", opts.Provider)
	}
}

// NewOpenAI creates a Model backed by the OpenAI chat completions API.
//
// Example:
//
//	model, err := models.NewOpenAI(todoagent.ModelOpenAIGPT41Mini, os.Getenv("OPENAI_API_KEY"))
func NewOpenAI(model string, token string, opts ...openai.Option) (*LCGWrapper, error) {
	if token == "" {
		return nil, fmt.Errorf("openai token is required")
	}

	baseOpts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(model),
	}

	llm, err := openai.New(append(baseOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return NewLCGWrapper(llm).WithModelName(model), nil
}
