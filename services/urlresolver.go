package services

import (
	"fmt"
	"net/url"

	"staticreports-agent/internal/config"
	"staticreports-agent/internal/logger"
	"staticreports-agent/internal/utils"
)

/**
 * Compute the externally reachable base URL
 * @param {string} ingressURL - URL reported by the ingress layer, used verbatim when non-empty
 * @param {string} bindAddr - Address of the named network binding
 * @param {string} fqdn - Local fully qualified hostname, lowest priority
 * @param {int} port - Front-end port for the non-ingress forms
 * @returns {string} Highest-priority non-empty source wins
 */
func ResolveExternalURL(ingressURL, bindAddr, fqdn string, port int) string {
	if ingressURL != "" {
		return ingressURL
	}
	if bindAddr != "" {
		return fmt.Sprintf("http://%s:%d", bindAddr, port)
	}
	return fmt.Sprintf("http://%s:%d", fqdn, port)
}

/**
 * URL provider gathers the three URL sources fresh on every call
 * @description
 * - Ingress state and network bindings change between events, so nothing
 *   is memoized
 * - A syntactically invalid configured ingress URL is a configuration error
 */
type URLProvider struct {
	cfg *config.AppConfig
}

func NewURLProvider(cfg *config.AppConfig) *URLProvider {
	return &URLProvider{cfg: cfg}
}

func (p *URLProvider) Resolve() (string, error) {
	ingressURL := p.cfg.Agent.IngressURL
	if ingressURL != "" {
		u, err := url.Parse(ingressURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "", fmt.Errorf("invalid ingress url %q", ingressURL)
		}
	}
	bindAddr := utils.BindingAddress(p.cfg.Agent.Binding)
	fqdn := utils.HostFQDN()
	external := ResolveExternalURL(ingressURL, bindAddr, fqdn, config.FrontendPort)
	logger.Debugf("External url resolved to %s (ingress=%q binding=%q fqdn=%q)", external, ingressURL, bindAddr, fqdn)
	return external, nil
}
