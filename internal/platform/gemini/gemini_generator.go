package gemini

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/hero-flashcards/internal/config"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/generation"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"google.golang.org/genai"
)

//go:embed prompt.tmpl
var promptSource string

var promptTemplate = template.Must(template.New("trivia").Parse(promptSource))

// contentGenerator is the subset of the genai Models service the generator uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API.
type GeminiGenerator struct {
	logger  *slog.Logger
	config  config.LLMConfig
	models  contentGenerator
	backoff func(attempt int) time.Duration
}

var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a GeminiGenerator backed by a real genai client.
func NewGeminiGenerator(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if err := validateConfig(log, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %w", generation.ErrInvalidConfig, err)
	}

	return newGenerator(log, cfg, client.Models), nil
}

func validateConfig(log *slog.Logger, cfg config.LLMConfig) error {
	if log == nil {
		return errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

func newGenerator(log *slog.Logger, cfg config.LLMConfig, models contentGenerator) *GeminiGenerator {
	g := &GeminiGenerator{
		logger: log.With(slog.String("component", "gemini_generator")),
		config: cfg,
		models: models,
	}
	g.backoff = g.jitteredBackoff
	return g
}

// GenerateTrivia asks the model for the character's trivia.
func (g *GeminiGenerator) GenerateTrivia(ctx context.Context, name, description string) (domain.Trivia, error) {
	prompt, err := g.createPrompt(name, description)
	if err != nil {
		return domain.Trivia{}, err
	}

	response, err := g.callGeminiWithRetry(ctx, prompt)
	if err != nil {
		return domain.Trivia{}, err
	}

	return parseResponse(response)
}

// createPrompt renders the prompt template for one character.
func (g *GeminiGenerator) createPrompt(name, description string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, promptData{
		Name:        name,
		Description: strings.TrimSpace(description),
	}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// callGeminiWithRetry calls the model up to MaxRetries+1 times. Transport
// errors are retried with exponential backoff; blocked or malformed
// responses are returned immediately.
func (g *GeminiGenerator) callGeminiWithRetry(ctx context.Context, prompt string) (*ResponseSchema, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	genConfig := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	for attempt := 0; ; attempt++ {
		log.DebugContext(ctx, "making Gemini API call",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1))

		resp, err := g.models.GenerateContent(ctx, g.config.ModelName, genai.Text(prompt), genConfig)
		if err == nil {
			return decodeResponse(resp)
		}

		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", generation.ErrTransientFailure, ctx.Err())
		}

		log.WarnContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))

		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %w",
				generation.ErrTransientFailure, maxRetries, err)
		}

		select {
		case <-time.After(g.backoff(attempt)):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// jitteredBackoff returns baseDelay * 2^attempt * [0.5, 1.0).
func (g *GeminiGenerator) jitteredBackoff(attempt int) time.Duration {
	base := g.config.RetryDelaySeconds
	if base < 1 {
		base = 2
	}
	seconds := float64(base) * math.Pow(2, float64(attempt)) * (0.5 + rand.Float64()*0.5)
	return time.Duration(seconds * float64(time.Second))
}

func decodeResponse(resp *genai.GenerateContentResponse) (*ResponseSchema, error) {
	switch {
	case resp == nil:
		return nil, fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	case len(resp.Candidates) == 0:
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
		return nil, generation.ErrContentBlocked
	case resp.Candidates[0].Content == nil:
		return nil, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	var parsed ResponseSchema
	if err := json.Unmarshal([]byte(stripCodeFence(text.String())), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %w", generation.ErrInvalidResponse, err)
	}
	return &parsed, nil
}

// stripCodeFence removes a ```json fence some models wrap around JSON output.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseResponse validates the model output. All three answers are required.
func parseResponse(response *ResponseSchema) (domain.Trivia, error) {
	t := domain.Trivia{
		RealName:        strings.TrimSpace(response.RealName),
		Powers:          strings.TrimSpace(response.Powers),
		FirstAppearance: strings.TrimSpace(response.FirstAppearance),
	}
	if t.RealName == "" || t.Powers == "" || t.FirstAppearance == "" {
		return domain.Trivia{}, fmt.Errorf("%w: missing trivia fields", generation.ErrInvalidResponse)
	}
	return t, nil
}
