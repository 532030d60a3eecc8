package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Client is the interface for talking to the simulation engine.
type Client interface {
	Simulate(ctx context.Context, req *SimulationRequest) (*SimulationResponse, error)
	Health(ctx context.Context) error
}

// Config holds the connection settings for the simulation engine.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new engine client based on the provided configuration.
func NewClient(cfg Config) Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &httpClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type httpClient struct {
	cfg    Config
	client *http.Client
}

func (c *httpClient) Simulate(ctx context.Context, simReq *SimulationRequest) (*SimulationResponse, error) {
	body, err := json.Marshal(simReq)
	if err != nil {
		return nil, fmt.Errorf("failed to encode simulation request: %w", err)
	}

	url := fmt.Sprintf("%s/simulate", c.cfg.BaseURL)
	log.Info().Int("runs", simReq.NSimulations).Int("horizon", simReq.TimeHorizon).Msg("Submitting simulation to engine")
	log.Debug().Str("url", url).Msg("Engine request details")

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("simulation engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusUnprocessableEntity, http.StatusBadRequest:
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			return nil, fmt.Errorf("engine rejected the stochastic spec (status %d): %s", resp.StatusCode, string(detail))
		case http.StatusServiceUnavailable, http.StatusTooManyRequests:
			return nil, fmt.Errorf("simulation engine is busy (status %d). Try again with a lower run count.", resp.StatusCode)
		default:
			return nil, fmt.Errorf("simulation engine returned status %d. Please check engine availability.", resp.StatusCode)
		}
	}

	var result SimulationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode engine response: %w", err)
	}

	log.Info().Dur("elapsed", time.Since(start)).Msg("Engine response received")
	return &result, nil
}

func (c *httpClient) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", c.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("simulation engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine health check returned status %d", resp.StatusCode)
	}
	return nil
}
