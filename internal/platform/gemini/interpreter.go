package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"sync"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/numerology-api/internal/config"
	"github.com/phrazzld/numerology-api/internal/domain/numerology"
	"github.com/phrazzld/numerology-api/internal/generation"
	"github.com/phrazzld/numerology-api/internal/platform/logger"
)

// contentGenerator is the slice of the genai client this package uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiInterpreter implements generation.Interpreter using the Gemini API.
type GeminiInterpreter struct {
	logger         *slog.Logger
	models         contentGenerator
	model          string
	promptTemplate *template.Template
	maxRetries     int
	baseDelay      time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

var _ generation.Interpreter = (*GeminiInterpreter)(nil)

// NewGeminiInterpreter creates an interpreter backed by a new genai client.
func NewGeminiInterpreter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiInterpreter, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newInterpreter(logger, cfg, client.Models)
}

func newInterpreter(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) (*GeminiInterpreter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if models == nil {
		return nil, fmt.Errorf("%w: content generator cannot be nil", generation.ErrInvalidConfig)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	tmpl, err := loadPromptTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &GeminiInterpreter{
		logger:         logger.With(slog.String("component", "gemini_interpreter")),
		models:         models,
		model:          cfg.ModelName,
		promptTemplate: tmpl,
		maxRetries:     cfg.MaxRetries,
		baseDelay:      time.Duration(cfg.RetryDelaySeconds) * time.Second,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries cannot be negative", generation.ErrInvalidConfig)
	}
	if cfg.RetryDelaySeconds < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", generation.ErrInvalidConfig)
	}
	return nil
}

// Interpret implements generation.Interpreter.
func (g *GeminiInterpreter) Interpret(ctx context.Context, report *numerology.Report) (string, error) {
	if report == nil {
		return "", generation.ErrEmptyReport
	}

	prompt, err := renderPrompt(g.promptTemplate, report)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrInterpretationFailed, err)
	}

	return g.callWithRetry(ctx, prompt)
}

// callWithRetry sends prompt up to maxRetries+1 times. Between attempts it
// waits baseDelay × 2^attempt scaled by a jitter factor in [0.5, 1.0).
func (g *GeminiInterpreter) callWithRetry(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	for attempt := 0; ; attempt++ {
		log.DebugContext(ctx, "calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", g.maxRetries+1,
			"model", g.model)

		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err == nil {
			text, perr := responseText(resp)
			if perr != nil {
				log.WarnContext(ctx, "permanent error from Gemini API, not retrying", "error", perr)
				return "", perr
			}
			log.InfoContext(ctx, "Gemini API call successful", "attempt", attempt+1)
			return text, nil
		}

		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}

		log.WarnContext(ctx, "Gemini API call failed", "attempt", attempt+1, "error", err)

		if attempt >= g.maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, g.maxRetries, err)
		}

		delay := g.backoff(attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			log.WarnContext(ctx, "interpretation cancelled during retry delay", "attempt", attempt+1)
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

func (g *GeminiInterpreter) backoff(attempt int) time.Duration {
	if g.baseDelay <= 0 {
		return 0
	}
	g.rngMu.Lock()
	jitter := 0.5 + g.rng.Float64()*0.5
	g.rngMu.Unlock()
	return time.Duration(float64(g.baseDelay) * math.Pow(2, float64(attempt)) * jitter)
}

// responseText extracts the first candidate's text. Blocked, empty or
// candidate-less responses are permanent errors.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}
	return text, nil
}
