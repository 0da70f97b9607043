package models

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/llms/openai"
)

// GitHubModelsBaseURL serves an OpenAI-compatible chat completions API for GitHub tokens.
const GitHubModelsBaseURL = "https://models.github.ai/inference"

// GitHub Models names carry the publisher.
const (
	GHModelGPT41     = "openai/gpt-4.1"
	GHModelGPT41Mini = "openai/gpt-4.1-mini"
	GHModelGPT4oMini = "openai/gpt-4o-mini"
)

const githubAPIVersion = "2022-11-28"

// apiVersionClient pins the GitHub REST API version on every request.
type apiVersionClient struct {
	next http.RoundTripper
}

func (c apiVersionClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-GitHub-Api-Version", githubAPIVersion)
	return c.next.RoundTrip(req)
}

// NewGitHubModel creates a Model served by GitHub Models. token is a personal access token
// with the models:read permission. A model name without a publisher, such as "gpt-4.1-mini",
// is taken to be an OpenAI model.
func NewGitHubModel(model, token string, opts ...openai.Option) (*LCGWrapper, error) {
	if token == "" {
		return nil, errors.New("github token is required (models:read)")
	}
	if !strings.Contains(model, "/") {
		model = "openai/" + model
	}

	llm, err := openai.New(append([]openai.Option{
		openai.WithBaseURL(GitHubModelsBaseURL),
		openai.WithToken(token),
		openai.WithModel(model),
		openai.WithHTTPClient(apiVersionClient{next: http.DefaultTransport}),
	}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create GitHub Models client: %w", err)
	}
	return NewLCGWrapper(llm).WithModelName(model), nil
}
