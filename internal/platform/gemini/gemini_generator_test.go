package gemini

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/hero-flashcards/internal/config"
	"github.com/phrazzld/hero-flashcards/internal/domain"
	"github.com/phrazzld/hero-flashcards/internal/generation"
	"github.com/phrazzld/hero-flashcards/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModels returns queued results in order and records the prompts it saw.
type fakeModels struct {
	mu      sync.Mutex
	results []fakeResult
	prompts []string
	models  []string
}

type fakeResult struct {
	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.models = append(f.models, model)
	var prompt strings.Builder
	for _, c := range contents {
		for _, p := range c.Parts {
			prompt.WriteString(p.Text)
		}
	}
	f.prompts = append(f.prompts, prompt.String())

	if cfg == nil || cfg.ResponseMIMEType != "application/json" {
		return nil, errors.New("expected JSON response config")
	}

	if len(f.results) == 0 {
		return nil, errors.New("no more results")
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.resp, r.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func testGenerator(t *testing.T, maxRetries int, results ...fakeResult) (*GeminiGenerator, *fakeModels) {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	fake := &fakeModels{results: results}
	g := newGenerator(log, config.LLMConfig{
		GeminiAPIKey:      "test-key",
		ModelName:         "gemini-test",
		MaxRetries:        maxRetries,
		RetryDelaySeconds: 1,
	}, fake)
	g.backoff = func(int) time.Duration { return 0 }
	return g, fake
}

const validJSON = `{"real_name":"Doreen Green","powers":"Squirrel communication, agility","first_appearance":"Marvel Super-Heroes #8 (1992)"}`

func TestGenerateTrivia_Success(t *testing.T) {
	t.Parallel()

	g, fake := testGenerator(t, 0, fakeResult{resp: textResponse(validJSON)})

	trivia, err := g.GenerateTrivia(context.Background(), "Squirrel Girl", "Unbeatable.")
	require.NoError(t, err)
	assert.Equal(t, domain.Trivia{
		RealName:        "Doreen Green",
		Powers:          "Squirrel communication, agility",
		FirstAppearance: "Marvel Super-Heroes #8 (1992)",
	}, trivia)

	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "Character: Squirrel Girl")
	assert.Contains(t, fake.prompts[0], "Description: Unbeatable.")
	assert.Equal(t, []string{"gemini-test"}, fake.models)
}

func TestGenerateTrivia_CodeFence(t *testing.T) {
	t.Parallel()

	g, _ := testGenerator(t, 0, fakeResult{resp: textResponse("```json\n" + validJSON + "\n```")})

	trivia, err := g.GenerateTrivia(context.Background(), "Squirrel Girl", "")
	require.NoError(t, err)
	assert.Equal(t, "Doreen Green", trivia.RealName)
}

func TestGenerateTrivia_RetriesTransientErrors(t *testing.T) {
	t.Parallel()

	g, fake := testGenerator(t, 2,
		fakeResult{err: errors.New("503 unavailable")},
		fakeResult{err: errors.New("503 unavailable")},
		fakeResult{resp: textResponse(validJSON)},
	)

	_, err := g.GenerateTrivia(context.Background(), "Squirrel Girl", "")
	require.NoError(t, err)
	assert.Len(t, fake.prompts, 3)
}

func TestGenerateTrivia_GivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	g, fake := testGenerator(t, 1,
		fakeResult{err: errors.New("503 unavailable")},
		fakeResult{err: errors.New("503 unavailable")},
		fakeResult{resp: textResponse(validJSON)},
	)

	_, err := g.GenerateTrivia(context.Background(), "Squirrel Girl", "")
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.Len(t, fake.prompts, 2)
}

func TestGenerateTrivia_PermanentErrors(t *testing.T) {
	t.Parallel()

	blocked := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	}

	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		wantErr error
	}{
		{"nil response", nil, generation.ErrInvalidResponse},
		{"no candidates", &genai.GenerateContentResponse{}, generation.ErrInvalidResponse},
		{"blocked", blocked, generation.ErrContentBlocked},
		{"empty content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, generation.ErrInvalidResponse},
		{"not json", textResponse("Doreen Green"), generation.ErrInvalidResponse},
		{"missing field", textResponse(`{"real_name":"Doreen Green","powers":""}`), generation.ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, fake := testGenerator(t, 3, fakeResult{resp: tt.resp})

			_, err := g.GenerateTrivia(context.Background(), "Squirrel Girl", "")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, fake.prompts, 1, "permanent errors are not retried")
		})
	}
}

func TestGenerateTrivia_EmptyName(t *testing.T) {
	t.Parallel()

	g, fake := testGenerator(t, 0)

	_, err := g.GenerateTrivia(context.Background(), "  ", "")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Empty(t, fake.prompts)
}

func TestGenerateTrivia_ContextCancelled(t *testing.T) {
	t.Parallel()

	g, _ := testGenerator(t, 3, fakeResult{err: context.Canceled})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateTrivia(ctx, "Squirrel Girl", "")
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJitteredBackoff(t *testing.T) {
	t.Parallel()

	g, _ := testGenerator(t, 0)
	g.config.RetryDelaySeconds = 2

	for attempt := 0; attempt < 3; attempt++ {
		full := time.Duration(2<<attempt) * time.Second
		d := g.jitteredBackoff(attempt)
		assert.GreaterOrEqual(t, d, full/2)
		assert.Less(t, d, full)
	}
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	log, _ := logger.GetTestLogger(t)

	assert.Error(t, validateConfig(nil, config.LLMConfig{GeminiAPIKey: "k", ModelName: "m"}))
	assert.ErrorIs(t, validateConfig(log, config.LLMConfig{ModelName: "m"}), generation.ErrInvalidConfig)
	assert.ErrorIs(t, validateConfig(log, config.LLMConfig{GeminiAPIKey: "k"}), generation.ErrInvalidConfig)
	assert.NoError(t, validateConfig(log, config.LLMConfig{GeminiAPIKey: "k", ModelName: "m"}))
}
