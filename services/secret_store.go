package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/rpc"
)

// SecretStore 平台密钥库接口
type SecretStore interface {
	GetContent(ctx context.Context, id string, refresh bool) (map[string]string, error)
}

type httpSecretStore struct {
	client rpc.HTTPClient
}

/**
 * Create secret store client against the platform secrets endpoint
 * @param {string} baseURL - Secret store base URL (e.g. "http://platform.local:8700")
 * @returns {SecretStore} Returns HTTP-backed secret store
 */
func NewSecretStore(baseURL string) SecretStore {
	cfg := &rpc.HTTPConfig{
		Network: "tcp",
		Timeout: 10 * time.Second,
		BaseURL: baseURL,
	}
	return &httpSecretStore{
		client: rpc.NewHTTPClient(cfg),
	}
}

/**
 * Fetch the key-value content of a secret
 * @param {string} id - Opaque secret reference
 * @param {bool} refresh - Forces the store to bypass any cached revision
 * @returns {map[string]string} Secret content
 * @returns {error} ErrSecretNotFound / ErrSecretAccessDenied on 404/403, plain error otherwise
 */
func (s *httpSecretStore) GetContent(ctx context.Context, id string, refresh bool) (map[string]string, error) {
	path := fmt.Sprintf("/v1/secrets/%s/content", id)
	resp, err := s.client.Get(path, map[string]interface{}{"refresh": refresh})
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrSecretNotFound, id)
	case http.StatusForbidden, http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %s", ErrSecretAccessDenied, id)
	default:
		return nil, fmt.Errorf("secret store returned %d: %s", resp.StatusCode, resp.Error)
	}

	var content map[string]string
	if err := json.Unmarshal(resp.Body, &content); err != nil {
		return nil, fmt.Errorf("decode secret content: %w", err)
	}
	logger.Debugf("Fetched secret %s (%d keys)", id, len(content))
	return content, nil
}
