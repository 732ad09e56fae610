package chaindata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"artifact-vault.backend/internal/domain/entities"
	"artifact-vault.backend/internal/domain/repositories"
	"artifact-vault.backend/pkg/logger"
	"artifact-vault.backend/pkg/redis"
)

// DelegationClient looks up on-chain wallet delegations from the external
// registry, paginated.
type DelegationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDelegationClient creates a delegation registry client
func NewDelegationClient(baseURL string, timeout time.Duration) *DelegationClient {
	return &DelegationClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ResolveDelegations fetches one page of delegations for the address
func (c *DelegationClient) ResolveDelegations(ctx context.Context, address string, page, pageSize int) ([]entities.Delegation, error) {
	endpoint := fmt.Sprintf("%s/v1/delegations/%s?page=%d&pageSize=%d",
		c.baseURL, url.PathEscape(address), page, pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("delegation registry returned status %d", resp.StatusCode)
	}

	var out []entities.Delegation
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode delegation response: %w", err)
	}
	return out, nil
}

// CachedDelegationRegistry caches registry pages in redis with a TTL. A
// cache failure falls through to the registry; a registry failure is
// returned as-is.
type CachedDelegationRegistry struct {
	inner repositories.DelegationRegistry
	ttl   time.Duration
}

// NewCachedDelegationRegistry wraps a registry with the redis page cache
func NewCachedDelegationRegistry(inner repositories.DelegationRegistry, ttl time.Duration) *CachedDelegationRegistry {
	return &CachedDelegationRegistry{inner: inner, ttl: ttl}
}

// ResolveDelegations serves a cached page when present, otherwise queries
// the registry and stores the page.
func (c *CachedDelegationRegistry) ResolveDelegations(ctx context.Context, address string, page, pageSize int) ([]entities.Delegation, error) {
	key := fmt.Sprintf("delegations:%s:%d:%d", address, page, pageSize)

	if cached, err := redis.Get(ctx, key); err == nil {
		var out []entities.Delegation
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
	} else if !redis.IsNil(err) {
		logger.Warn(ctx, "delegation cache read failed", zap.Error(err))
	}

	out, err := c.inner.ResolveDelegations(ctx, address, page, pageSize)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(out); err == nil {
		if err := redis.Set(ctx, key, payload, c.ttl); err != nil {
			logger.Warn(ctx, "delegation cache write failed", zap.Error(err))
		}
	}
	return out, nil
}
