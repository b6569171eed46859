package reflection

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

// GeneratorConfig configures the OpenAI-backed generation capability.
type GeneratorConfig struct {
	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Temperature is the sampling temperature (default: 0.7).
	Temperature float64

	// RequestsPerMinute caps outbound generation calls. Zero disables
	// the limiter. This is a client-side cap, not a retry mechanism.
	RequestsPerMinute int
}

// DefaultGeneratorConfig returns the provider defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
	}
}

// OpenAIGenerator generates reflection text through the OpenAI chat API
// via langchaingo. The API key is held for the lifetime of the generator
// only; it is supplied per call by the façade and never persisted.
type OpenAIGenerator struct {
	llm         llms.Model
	temperature float64
	limiter     *rate.Limiter
}

// NewOpenAIGenerator creates a generator for the given per-call API key.
func NewOpenAIGenerator(apiKey string, cfg GeneratorConfig) (*OpenAIGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrGeneration)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeneratorConfig().Model
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultGeneratorConfig().Temperature
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", ErrGeneration, err)
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	return &OpenAIGenerator{
		llm:         llm,
		temperature: cfg.Temperature,
		limiter:     limiter,
	}, nil
}

// Generate invokes the chat model with the assembled prompt context and
// returns the fence-stripped reflection text.
func (g *OpenAIGenerator) Generate(ctx context.Context, pc PromptContext) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: rate limit wait: %v", ErrGeneration, err)
		}
	}

	resp, err := g.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemInstruction),
			llms.TextParts(llms.ChatMessageTypeHuman, buildUserContent(pc)),
		},
		llms.WithTemperature(g.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: provider returned no choices", ErrGeneration)
	}

	content := stripFences(resp.Choices[0].Content)
	if content == "" {
		return "", fmt.Errorf("%w: provider returned empty content", ErrGeneration)
	}
	return content, nil
}

// Ensure OpenAIGenerator implements Generator.
var _ Generator = (*OpenAIGenerator)(nil)
