package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/zeitls/ztl-cli/internal/domain/config"
	"github.com/zeitls/ztl-cli/internal/usecase"
	"golang.org/x/time/rate"
)

// Etherscan free tier allows five calls per second
const defaultRatePerSec = 5

// Client queries an Etherscan compatible API
type Client struct {
	apiURL  string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type sourceCode struct {
	SourceCode   string `json:"SourceCode"`
	ContractName string `json:"ContractName"`
}

// NewClient creates an explorer client for the selected network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(defaultRatePerSec), defaultRatePerSec),
		log:     log,
	}
	if cfg.Network != nil {
		c.apiURL = cfg.Network.ExplorerAPIURL
		c.apiKey = cfg.Network.ExplorerAPIKey
	}
	return c
}

// WithRate replaces the request limiter
func (c *Client) WithRate(perSec int) *Client {
	if perSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(perSec), perSec)
	}
	return c
}

// Enabled reports whether an API key and URL are configured
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.apiURL != ""
}

// IsVerified reports whether the explorer has source code for address
func (c *Client) IsVerified(ctx context.Context, address string) (bool, error) {
	if !c.Enabled() {
		return false, fmt.Errorf("explorer API is not configured")
	}

	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "getsourcecode")
	params.Set("address", address)
	params.Set("apikey", c.apiKey)

	var results []sourceCode
	if err := c.get(ctx, params, &results); err != nil {
		return false, err
	}
	if len(results) == 0 {
		return false, nil
	}

	verified := results[0].SourceCode != ""
	c.log.Debug("explorer source lookup", "address", address, "verified", verified, "name", results[0].ContractName)
	return verified, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("explorer request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read explorer response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("explorer returned HTTP %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("failed to decode explorer response: %w", err)
	}
	if parsed.Status != "1" {
		var reason string
		if json.Unmarshal(parsed.Result, &reason) != nil || reason == "" {
			reason = parsed.Message
		}
		return fmt.Errorf("explorer error: %s", reason)
	}

	if err := json.Unmarshal(parsed.Result, out); err != nil {
		return fmt.Errorf("failed to decode explorer result: %w", err)
	}
	return nil
}

// Ensure Client implements ExplorerClient
var _ usecase.ExplorerClient = (*Client)(nil)
