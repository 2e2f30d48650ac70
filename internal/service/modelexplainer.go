package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pulseboard/backend/internal/logger"
	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/pkg/ollama"
)

// availabilityTimeout bounds the startup/per-request reachability probe
const availabilityTimeout = 2 * time.Second

// ModelExplainer generates explanations by prompting a local model through
// the Ollama API. Its output is opaque text, trimmed of surrounding
// whitespace and passed through without further validation. Any failure is
// returned to the caller, who falls back to the deterministic explainer;
// failures are never retried here.
type ModelExplainer struct {
	client *ollama.Client
	log    logger.Logger
}

// NewModelExplainer creates a model-backed explainer
func NewModelExplainer(client *ollama.Client, log logger.Logger) *ModelExplainer {
	return &ModelExplainer{
		client: client,
		log:    log,
	}
}

// Available reports whether the model server is reachable right now
func (e *ModelExplainer) Available() bool {
	if e.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), availabilityTimeout)
	defer cancel()

	if err := e.client.Ping(ctx); err != nil {
		e.log.Debug("model server not reachable", logger.Err(err))
		return false
	}
	return true
}

func (e *ModelExplainer) Explain(ctx context.Context, m *models.UserMetrics) (string, error) {
	prompt := BuildExplanationPrompt(m)

	text, err := e.client.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("model generation failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}
