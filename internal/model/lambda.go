package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/signalpost/rosetta/internal/tokenizer"
)

// lambdaInvoker is the slice of the Lambda client the backend needs.
type lambdaInvoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// lambdaModel invokes a deployed model function. The payload carries an
// "op" field so one function serves both operations.
type lambdaModel struct {
	client       lambdaInvoker
	functionName string
	limiter      *rate.Limiter
}

type lambdaResponse struct {
	OutputIDs [][]int     `json:"output_ids,omitempty"`
	Logits    [][]float32 `json:"logits,omitempty"`
	Error     string      `json:"error,omitempty"`
}

func newLambdaModel(ctx context.Context, cfg Config) (*lambdaModel, error) {
	if strings.TrimSpace(cfg.FunctionName) == "" {
		return nil, fmt.Errorf("lambda backend requires a function name")
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	m := &lambdaModel{
		client:       lambda.NewFromConfig(awsCfg),
		functionName: cfg.FunctionName,
	}
	if cfg.RPS > 0 {
		m.limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	return m, nil
}

func (m *lambdaModel) Generate(ctx context.Context, batch tokenizer.Batch, forcedBOS int) ([][]int, error) {
	payload, err := json.Marshal(struct {
		Op string `json:"op"`
		generateRequest
	}{
		Op: "generate",
		generateRequest: generateRequest{
			InputIDs:         batch.InputIDs,
			AttentionMask:    batch.AttentionMask,
			ForcedBOSTokenID: forcedBOS,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := m.invoke(ctx, payload)
	if err != nil {
		return nil, err
	}
	if len(resp.OutputIDs) != len(batch.InputIDs) {
		return nil, fmt.Errorf("backend returned %d sequences for %d inputs",
			len(resp.OutputIDs), len(batch.InputIDs))
	}
	return resp.OutputIDs, nil
}

func (m *lambdaModel) Forward(ctx context.Context, ids []int) ([][]float32, error) {
	payload, err := json.Marshal(struct {
		Op string `json:"op"`
		forwardRequest
	}{
		Op:             "forward",
		forwardRequest: forwardRequest{InputIDs: ids},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := m.invoke(ctx, payload)
	if err != nil {
		return nil, err
	}
	if len(resp.Logits) != len(ids) {
		return nil, fmt.Errorf("backend returned logits for %d positions, want %d",
			len(resp.Logits), len(ids))
	}
	return resp.Logits, nil
}

func (m *lambdaModel) Close() error { return nil }

func (m *lambdaModel) invoke(ctx context.Context, payload []byte) (*lambdaResponse, error) {
	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	out, err := m.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: &m.functionName,
		Payload:      payload,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", m.functionName, err)
	}
	if out.FunctionError != nil {
		return nil, fmt.Errorf("lambda error: %s", *out.FunctionError)
	}

	var resp lambdaResponse
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("model error: %s", resp.Error)
	}
	return &resp, nil
}
