package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/imleoo/aigc-check/internal/config"
	"github.com/imleoo/aigc-check/internal/models"
)

// EngineClient is the HTTP adapter to the upstream detection engine. It
// posts the raw request to the engine's /analyze endpoint and decodes the
// analysis payload it returns.
type EngineClient struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewEngineClient creates an engine adapter from configuration.
func NewEngineClient(cfg config.EngineConfig, logger *zap.Logger) *EngineClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 25 * time.Second
	}
	return &EngineClient{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("engine"),
	}
}

// Analyze submits the request to the engine and returns its analysis.
func (c *EngineClient) Analyze(ctx context.Context, req models.DetectionRequest) (*Analysis, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode engine request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build engine request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("engine request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("engine returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var analysis Analysis
	if err := json.Unmarshal(body, &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode engine response: %w", err)
	}

	c.logger.Debug("analysis completed",
		zap.Float64("score", analysis.Score.Total),
		zap.String("risk_level", string(analysis.RiskLevel)),
		zap.Duration("elapsed", time.Since(started)))
	return &analysis, nil
}
