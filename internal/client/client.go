// Package client provides the HTTP client used by the admin CLI against the
// beta-admin endpoints. It handles authentication, response decoding, and
// error handling.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/config"
	"github.com/actifly/api/internal/constants"
	"github.com/actifly/api/internal/logger"
)

// Client talks to the beta-admin API using the configured endpoint and token.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new admin API client
func New(cfg *config.Config, log *slog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     log,
	}
}

// Stats fetches aggregate signup counts.
func (c *Client) Stats(ctx context.Context) (*api.AdminStatsResponse, error) {
	var resp api.AdminStatsResponse
	if err := c.getJSON(ctx, "stats", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List fetches the raw signup records.
func (c *Client) List(ctx context.Context) (*api.AdminListResponse, error) {
	var resp api.AdminListResponse
	if err := c.getJSON(ctx, "list", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Export fetches the CSV export document.
func (c *Client) Export(ctx context.Context) ([]byte, error) {
	body, _, err := c.do(ctx, "export")
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) adminURL(action string) (string, error) {
	adminURL, err := url.JoinPath(c.cfg.APIEndpoint, "/api/beta-admin")
	if err != nil {
		return "", fmt.Errorf("invalid API endpoint: %w", err)
	}
	return adminURL + "?" + constants.ActionQueryParam + "=" + url.QueryEscape(action), nil
}

func (c *Client) do(ctx context.Context, action string) ([]byte, int, error) {
	reqURL, err := c.adminURL(action)
	if err != nil {
		return nil, 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set(constants.AuthorizationHeader, constants.BearerPrefix+c.cfg.AdminToken)

	logArgs := []any{
		"operation", "HTTP.Request",
		"method", http.MethodGet,
		"url", reqURL,
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	c.logger.Debug("calling admin API", logArgs...)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("received admin API response",
		"status", resp.StatusCode,
		"bodySize", len(body))

	if resp.StatusCode >= http.StatusBadRequest {
		var errorResp api.ErrorResponse
		if err = json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return nil, resp.StatusCode,
				fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
		}
		return nil, resp.StatusCode, fmt.Errorf("[%d] %s", resp.StatusCode, errorResp.Error)
	}

	return body, resp.StatusCode, nil
}

func (c *Client) getJSON(ctx context.Context, action string, result any) error {
	body, _, err := c.do(ctx, action)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(body, result); err != nil {
		c.logger.Debug("response body", "body", string(body))
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
