package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/signalpost/rosetta/internal/tokenizer"
)

const retryBaseDelay = 200 * time.Millisecond

// httpModel talks to an inference server exposing /v1/generate and
// /v1/forward.
type httpModel struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	retries int
}

func newHTTPModel(cfg Config) (*httpModel, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("http backend requires a base url")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	m := &httpModel{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		retries: cfg.MaxRetries,
	}
	if cfg.RPS > 0 {
		m.limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	return m, nil
}

type generateRequest struct {
	InputIDs         [][]int `json:"input_ids"`
	AttentionMask    [][]int `json:"attention_mask"`
	ForcedBOSTokenID int     `json:"forced_bos_token_id"`
}

type generateResponse struct {
	OutputIDs [][]int `json:"output_ids"`
}

type forwardRequest struct {
	InputIDs []int `json:"input_ids"`
}

type forwardResponse struct {
	Logits [][]float32 `json:"logits"`
}

func (m *httpModel) Generate(ctx context.Context, batch tokenizer.Batch, forcedBOS int) ([][]int, error) {
	req := generateRequest{
		InputIDs:         batch.InputIDs,
		AttentionMask:    batch.AttentionMask,
		ForcedBOSTokenID: forcedBOS,
	}
	var resp generateResponse
	if err := m.post(ctx, "/v1/generate", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.OutputIDs) != len(batch.InputIDs) {
		return nil, fmt.Errorf("backend returned %d sequences for %d inputs",
			len(resp.OutputIDs), len(batch.InputIDs))
	}
	return resp.OutputIDs, nil
}

func (m *httpModel) Forward(ctx context.Context, ids []int) ([][]float32, error) {
	var resp forwardResponse
	if err := m.post(ctx, "/v1/forward", forwardRequest{InputIDs: ids}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Logits) != len(ids) {
		return nil, fmt.Errorf("backend returned logits for %d positions, want %d",
			len(resp.Logits), len(ids))
	}
	return resp.Logits, nil
}

func (m *httpModel) Close() error {
	m.client.CloseIdleConnections()
	return nil
}

func (m *httpModel) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= m.retries; attempt++ {
		if attempt > 0 {
			if err := sleepBackoff(ctx, attempt); err != nil {
				return err
			}
		}
		if m.limiter != nil {
			if err := m.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		lastErr = m.postOnce(ctx, path, payload, out)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (m *httpModel) postOnce(ctx context.Context, path string, payload []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.code)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.code, e.body)
}

// retryable reports whether a failed call is worth repeating. Client
// errors and cancelled contexts are final; transport failures and 5xx
// responses are transient.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	return true
}

func sleepBackoff(ctx context.Context, attempt int) error {
	t := time.NewTimer(retryBaseDelay << (attempt - 1))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
