package config

import (
	"net/url"
	"os"
)

/**
 * Proxy endpoints captured from the process environment
 * @property {string} HTTP - http proxy endpoint
 * @property {string} HTTPS - https proxy endpoint
 * @property {string} Rsync - authority part (host:port) of the http proxy
 * @description
 * - Captured once at construction and immutable afterwards
 * - The platform variants (JUJU_CHARM_HTTP_PROXY/JUJU_CHARM_HTTPS_PROXY)
 *   take precedence over the plain HTTP_PROXY/HTTPS_PROXY variables
 */
type ProxyConfig struct {
	HTTP  string
	HTTPS string
	Rsync string
}

// CaptureProxyConfig 从进程环境抓取代理配置快照
func CaptureProxyConfig() ProxyConfig {
	p := ProxyConfig{}
	httpProxy := os.Getenv("JUJU_CHARM_HTTP_PROXY")
	if httpProxy == "" {
		httpProxy = os.Getenv("HTTP_PROXY")
	}
	httpsProxy := os.Getenv("JUJU_CHARM_HTTPS_PROXY")
	if httpsProxy == "" {
		httpsProxy = os.Getenv("HTTPS_PROXY")
	}
	if httpProxy != "" {
		p.HTTP = httpProxy
		if u, err := url.Parse(httpProxy); err == nil {
			// rsync代理只要authority部分，不带scheme
			p.Rsync = u.Host
		}
	}
	if httpsProxy != "" {
		p.HTTPS = httpsProxy
	}
	return p
}

/**
 * Build environment variable assignments for spawned commands
 * @returns {[]string} Returns KEY=VALUE entries for each configured proxy kind
 */
func (p ProxyConfig) Environ() []string {
	var environ []string
	if p.HTTP != "" {
		environ = append(environ, "HTTP_PROXY="+p.HTTP)
	}
	if p.HTTPS != "" {
		environ = append(environ, "HTTPS_PROXY="+p.HTTPS)
	}
	if p.Rsync != "" {
		environ = append(environ, "RSYNC_PROXY="+p.Rsync)
	}
	return environ
}
