package gemini

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/phrazzld/numerology-api/internal/config"
	"github.com/phrazzld/numerology-api/internal/domain/numerology"
	"github.com/phrazzld/numerology-api/internal/generation"
)

// fakeModels replays a fixed sequence of responses.
type fakeModels struct {
	mu        sync.Mutex
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
	prompts   []string
	models    []string
}

func (f *fakeModels) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	_ *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	f.calls++
	f.models = append(f.models, model)
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompts = append(f.prompts, contents[0].Parts[0].Text)
	}

	var resp *genai.GenerateContentResponse
	var err error
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return resp, err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func testConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey: "test-key",
		ModelName:    "gemini-test",
		MaxRetries:   2,
	}
}

func testReport(t *testing.T) *numerology.Report {
	t.Helper()
	report, err := numerology.FullReport("15.03.1990", "Анна", time.Now())
	require.NoError(t, err)
	return report
}

func newTestInterpreter(t *testing.T, cfg config.LLMConfig, models contentGenerator) *GeminiInterpreter {
	t.Helper()
	g, err := newInterpreter(slog.New(slog.NewTextHandler(os.Stderr, nil)), cfg, models)
	require.NoError(t, err)
	return g
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.LLMConfig)
		valid  bool
	}{
		{name: "valid", mutate: func(*config.LLMConfig) {}, valid: true},
		{name: "missing key", mutate: func(c *config.LLMConfig) { c.GeminiAPIKey = "" }},
		{name: "missing model", mutate: func(c *config.LLMConfig) { c.ModelName = "" }},
		{name: "negative retries", mutate: func(c *config.LLMConfig) { c.MaxRetries = -1 }},
		{name: "negative delay", mutate: func(c *config.LLMConfig) { c.RetryDelaySeconds = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := validateConfig(cfg)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, generation.ErrInvalidConfig)
			}
		})
	}
}

func TestNewInterpreterRequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := newInterpreter(nil, testConfig(), &fakeModels{})
	assert.Error(t, err)

	_, err = newInterpreter(slog.Default(), testConfig(), nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestPromptTemplateOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("Reading for {{.BirthDate}}, life path {{.LifePath}}"), 0o600))

	cfg := testConfig()
	cfg.PromptTemplatePath = path
	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("ok")}}
	g := newTestInterpreter(t, cfg, models)

	_, err := g.Interpret(context.Background(), testReport(t))
	require.NoError(t, err)
	require.Len(t, models.prompts, 1)
	assert.Equal(t, "Reading for 15.03.1990, life path 1", models.prompts[0])

	cfg.PromptTemplatePath = filepath.Join(dir, "missing.tmpl")
	_, err = newInterpreter(slog.Default(), cfg, models)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	bad := filepath.Join(dir, "bad.tmpl")
	require.NoError(t, os.WriteFile(bad, []byte("{{.BirthDate"), 0o600))
	cfg.PromptTemplatePath = bad
	_, err = newInterpreter(slog.Default(), cfg, models)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestDefaultPromptRendersReport(t *testing.T) {
	t.Parallel()

	tmpl, err := loadPromptTemplate("")
	require.NoError(t, err)

	prompt, err := renderPrompt(tmpl, testReport(t))
	require.NoError(t, err)

	assert.Contains(t, prompt, "Birth date: 15.03.1990")
	assert.Contains(t, prompt, "Name: Анна")
	assert.Contains(t, prompt, "- Life path: 1")
	assert.Contains(t, prompt, "- Name number: 5")
	assert.Contains(t, prompt, "- 1 Sun (")
	assert.Contains(t, prompt, "): 3, strong")
	assert.Contains(t, prompt, "- 4 Rahu (")
	assert.Equal(t, 9, strings.Count(prompt, ", absent")+strings.Count(prompt, ", weak")+
		strings.Count(prompt, ", normal")+strings.Count(prompt, ", strong")+strings.Count(prompt, ", excessive"))
}

func TestDefaultPromptOmitsMissingName(t *testing.T) {
	t.Parallel()

	report, err := numerology.FullReport("20.07.1985", "", time.Now())
	require.NoError(t, err)
	tmpl, err := loadPromptTemplate("")
	require.NoError(t, err)

	prompt, err := renderPrompt(tmpl, report)
	require.NoError(t, err)
	assert.NotContains(t, prompt, "Name:")
	assert.NotContains(t, prompt, "Name number")
}

func TestInterpretSuccess(t *testing.T) {
	t.Parallel()

	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("  Your life path is 1.  ")}}
	g := newTestInterpreter(t, testConfig(), models)

	text, err := g.Interpret(context.Background(), testReport(t))
	require.NoError(t, err)
	assert.Equal(t, "Your life path is 1.", text)
	assert.Equal(t, 1, models.calls)
	assert.Equal(t, []string{"gemini-test"}, models.models)
}

func TestInterpretNilReport(t *testing.T) {
	t.Parallel()

	g := newTestInterpreter(t, testConfig(), &fakeModels{})
	_, err := g.Interpret(context.Background(), nil)
	assert.ErrorIs(t, err, generation.ErrEmptyReport)
}

func TestInterpretRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	models := &fakeModels{
		responses: []*genai.GenerateContentResponse{nil, nil, textResponse("third time lucky")},
		errs:      []error{errors.New("503 unavailable"), errors.New("503 unavailable")},
	}
	g := newTestInterpreter(t, testConfig(), models)

	text, err := g.Interpret(context.Background(), testReport(t))
	require.NoError(t, err)
	assert.Equal(t, "third time lucky", text)
	assert.Equal(t, 3, models.calls)
}

func TestInterpretGivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	boom := errors.New("503 unavailable")
	models := &fakeModels{errs: []error{boom, boom, boom, boom}}
	g := newTestInterpreter(t, testConfig(), models)

	_, err := g.Interpret(context.Background(), testReport(t))
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.Contains(t, err.Error(), "exceeded maximum retry attempts (2)")
	assert.Equal(t, 3, models.calls)
}

func TestInterpretPermanentErrors(t *testing.T) {
	t.Parallel()

	blocked := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	}

	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		expected error
	}{
		{name: "safety block", resp: blocked, expected: generation.ErrContentBlocked},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, expected: generation.ErrInvalidResponse},
		{name: "nil response", resp: nil, expected: generation.ErrInvalidResponse},
		{name: "blank text", resp: textResponse("   "), expected: generation.ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models := &fakeModels{responses: []*genai.GenerateContentResponse{tt.resp}}
			g := newTestInterpreter(t, testConfig(), models)

			_, err := g.Interpret(context.Background(), testReport(t))
			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, 1, models.calls, "permanent errors are not retried")
		})
	}
}

func TestInterpretCancelledDuringBackoff(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RetryDelaySeconds = 30
	models := &fakeModels{errs: []error{errors.New("503 unavailable")}}
	g := newTestInterpreter(t, cfg, models)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := g.Interpret(ctx, testReport(t))
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 1, models.calls)
}

func TestBackoffGrowsWithJitter(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RetryDelaySeconds = 1
	g := newTestInterpreter(t, cfg, &fakeModels{})

	for attempt := 0; attempt < 4; attempt++ {
		base := time.Second << attempt
		d := g.backoff(attempt)
		assert.GreaterOrEqual(t, d, base/2, "attempt %d", attempt)
		assert.Less(t, d, base, "attempt %d", attempt)
	}

	cfg.RetryDelaySeconds = 0
	g = newTestInterpreter(t, cfg, &fakeModels{})
	assert.Zero(t, g.backoff(3))
}
