package rpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"

	"staticreports-agent/internal/logger"
)

// httpClient HTTP客户端实现
type httpClient struct {
	config    *HTTPConfig
	client    *http.Client
	transport *http.Transport
	connected bool
	mu        sync.Mutex
}

/**
 * Create new HTTP client for daemon communication
 * @param {HTTPConfig} config - HTTP client configuration
 * @returns {HTTPClient} HTTP client interface
 * @description
 * - Creates HTTP client configured for unix socket or tcp communication
 * - Sets default configuration if none provided
 * - Connection is established lazily on first request
 */
func NewHTTPClient(config *HTTPConfig) HTTPClient {
	if config == nil {
		config = DefaultHTTPConfig()
	}

	client := &httpClient{
		config: config,
	}

	// 初始化transport，但不立即连接
	client.transport = &http.Transport{}

	client.client = &http.Client{
		Transport: client.transport,
		Timeout:   config.Timeout,
	}

	return client
}

/**
 * Send GET request to the daemon
 * @param {string} path - API endpoint path
 * @param {map[string]interface{}} params - Query parameters
 * @returns {*HTTPResponse} Response data
 * @returns {error} Error if request fails
 */
func (c *httpClient) Get(path string, params map[string]interface{}) (*HTTPResponse, error) {
	if err := c.ensureConnected(); err != nil {
		return nil, err
	}

	url, err := buildURL(c.config.BaseURL, path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	logger.Debugf("Sending GET request to %s", url)

	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return deserializeResponse(resp)
}

/**
 * Send POST request to the daemon
 * @param {string} path - API endpoint path
 * @param {interface{}} data - Request body data, serialized as JSON
 * @returns {*HTTPResponse} Response data
 * @returns {error} Error if request fails
 */
func (c *httpClient) Post(path string, data interface{}) (*HTTPResponse, error) {
	if err := c.ensureConnected(); err != nil {
		return nil, err
	}

	url, err := buildURL(c.config.BaseURL, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	body, err := serializeData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize data: %w", err)
	}

	logger.Debugf("Sending POST request to %s", url)

	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return deserializeResponse(resp)
}

// Close 关闭客户端连接
func (c *httpClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		c.client.CloseIdleConnections()
	}

	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}

	c.connected = false
	logger.Debugf("HTTP client connection closed")
	return nil
}

// IsConnected 检查客户端是否已连接
func (c *httpClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

/**
 * Ensure HTTP client transport is wired to the configured endpoint
 * @returns {error} Error if connection setup fails
 * @description
 * - unix network dials the socket path and fails early when the file is missing
 * - tcp network dials the configured host:port
 */
func (c *httpClient) ensureConnected() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	network := c.config.Network
	address := c.config.Address
	if network == "unix" {
		// 检查socket文件是否存在
		if _, err := os.Stat(address); os.IsNotExist(err) {
			return fmt.Errorf("socket file not found at %s", address)
		}
	}

	// 没有固定地址时按请求URL的host直连（tcp）
	if address != "" {
		c.transport.DialContext = func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, address)
		}
	}

	c.connected = true

	logger.Debugf("Connected to HTTP server at %s://%s", network, address)
	return nil
}
