// Package model connects the service to a translation model running
// behind a remote backend. Backends speak a small JSON protocol with
// two operations: batch generation for translation and a raw forward
// pass for mask scoring.
package model

import (
	"context"
	"fmt"
	"time"

	"github.com/signalpost/rosetta/internal/tokenizer"
)

// Model is a loaded seq2seq translation model.
type Model interface {
	// Generate runs encoder-decoder generation over a batch and
	// returns one output id sequence per input row. forcedBOS is the
	// token id decoding is forced to start with, the target language
	// code for MBart-50 checkpoints.
	Generate(ctx context.Context, batch tokenizer.Batch, forcedBOS int) ([][]int, error)

	// Forward runs a single forward pass over one id sequence and
	// returns per-position logits over the vocabulary.
	Forward(ctx context.Context, ids []int) ([][]float32, error)

	Close() error
}

// Config selects and configures a model backend.
type Config struct {
	// Backend names the transport: "http" or "lambda".
	Backend string

	// BaseURL is the inference server address for the http backend.
	BaseURL string

	// FunctionName and Region select the function for the lambda backend.
	FunctionName string
	Region       string

	Timeout    time.Duration
	MaxRetries int

	// RPS caps outbound calls per second. Zero means no limit.
	RPS float64
}

const (
	BackendHTTP   = "http"
	BackendLambda = "lambda"

	defaultTimeout = 2 * time.Minute
)

// New builds the backend named by cfg.Backend. An empty name selects
// the http backend.
func New(ctx context.Context, cfg Config) (Model, error) {
	switch cfg.Backend {
	case BackendHTTP, "":
		return newHTTPModel(cfg)
	case BackendLambda:
		return newLambdaModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown model backend %q (valid: %s, %s)",
			cfg.Backend, BackendHTTP, BackendLambda)
	}
}
