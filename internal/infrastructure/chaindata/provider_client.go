package chaindata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/domain/repositories"
)

// ProviderClient talks to the external chain-data indexer over HTTP. One
// request per (wallet, network) pair; retries and backoff are the
// provider's own concern, not handled here.
type ProviderClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewProviderClient creates a chain-data provider client
func NewProviderClient(baseURL, apiKey string, timeout time.Duration) repositories.ChainDataProvider {
	return &ProviderClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type tokensResponse struct {
	Tokens []entities.RawToken `json:"tokens"`
}

// FetchArtifactsForWallet fetches all raw tokens an address holds on one
// network.
func (c *ProviderClient) FetchArtifactsForWallet(ctx context.Context, address, network string) ([]entities.RawToken, error) {
	endpoint := fmt.Sprintf("%s/v1/wallets/%s/tokens?network=%s",
		c.baseURL, url.PathEscape(address), url.QueryEscape(network))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d for network %s", resp.StatusCode, network)
	}

	var body tokensResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	return body.Tokens, nil
}
