package translator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/signalpost/rosetta/internal/logger"
	"github.com/signalpost/rosetta/internal/model"
	"github.com/signalpost/rosetta/internal/tokenizer"
)

// Loader builds a Service from a model directory. The directory holds
// the checkpoint's tokenizer.json; the weights themselves live behind
// the configured backend.
type Loader struct {
	// TokenizerJSONPath overrides <dir>/tokenizer.json when set.
	TokenizerJSONPath string

	Model model.Config
}

func (l Loader) Load(ctx context.Context, dir string, log logger.Logger) (*Service, error) {
	tokPath := l.TokenizerJSONPath
	if tokPath == "" {
		if strings.TrimSpace(dir) == "" {
			return nil, fmt.Errorf("model directory is required")
		}
		tokPath = filepath.Join(dir, "tokenizer.json")
	}

	tok, err := tokenizer.Load(tokPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	m, err := model.New(ctx, l.Model)
	if err != nil {
		return nil, fmt.Errorf("init model backend: %w", err)
	}

	backend := l.Model.Backend
	if backend == "" {
		backend = model.BackendHTTP
	}
	log.Info("model ready",
		"tokenizer", tokPath,
		"backend", backend,
		"languages", len(tok.Languages()),
	)
	return New(m, tok, log), nil
}
