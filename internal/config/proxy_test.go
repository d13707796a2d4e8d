package config

import (
	"reflect"
	"testing"
)

func clearProxyEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"JUJU_CHARM_HTTP_PROXY", "JUJU_CHARM_HTTPS_PROXY", "HTTP_PROXY", "HTTPS_PROXY"} {
		t.Setenv(key, "")
	}
}

func TestCaptureProxyConfigEmpty(t *testing.T) {
	clearProxyEnv(t)
	p := CaptureProxyConfig()
	if p.HTTP != "" || p.HTTPS != "" || p.Rsync != "" {
		t.Errorf("expected an empty snapshot, got %+v", p)
	}
	if environ := p.Environ(); len(environ) != 0 {
		t.Errorf("empty snapshot must yield no assignments, got %v", environ)
	}
}

func TestCaptureProxyConfigPlatformVariantWins(t *testing.T) {
	clearProxyEnv(t)
	t.Setenv("HTTP_PROXY", "http://plain.internal:8080")
	t.Setenv("JUJU_CHARM_HTTP_PROXY", "http://platform.internal:3128")

	p := CaptureProxyConfig()
	if p.HTTP != "http://platform.internal:3128" {
		t.Errorf("platform variant must win, got %q", p.HTTP)
	}
}

func TestCaptureProxyConfigPlainFallback(t *testing.T) {
	clearProxyEnv(t)
	t.Setenv("HTTP_PROXY", "http://plain.internal:8080")
	t.Setenv("HTTPS_PROXY", "http://plain.internal:8443")

	p := CaptureProxyConfig()
	if p.HTTP != "http://plain.internal:8080" || p.HTTPS != "http://plain.internal:8443" {
		t.Errorf("plain variables must be captured, got %+v", p)
	}
}

func TestCaptureProxyConfigRsyncAuthority(t *testing.T) {
	clearProxyEnv(t)
	t.Setenv("JUJU_CHARM_HTTP_PROXY", "http://proxy.internal:3128")

	p := CaptureProxyConfig()
	// rsync代理取http代理的authority部分
	if p.Rsync != "proxy.internal:3128" {
		t.Errorf("rsync proxy = %q, want the host:port of the http proxy", p.Rsync)
	}
}

func TestCaptureProxyConfigHTTPSOnlyNoRsync(t *testing.T) {
	clearProxyEnv(t)
	t.Setenv("JUJU_CHARM_HTTPS_PROXY", "http://proxy.internal:3129")

	p := CaptureProxyConfig()
	if p.Rsync != "" {
		t.Errorf("rsync proxy derives from the http proxy only, got %q", p.Rsync)
	}
	if p.HTTPS != "http://proxy.internal:3129" {
		t.Errorf("https proxy = %q", p.HTTPS)
	}
}

func TestProxyEnvironOrder(t *testing.T) {
	p := ProxyConfig{
		HTTP:  "http://proxy.internal:3128",
		HTTPS: "http://proxy.internal:3129",
		Rsync: "proxy.internal:3128",
	}
	want := []string{
		"HTTP_PROXY=http://proxy.internal:3128",
		"HTTPS_PROXY=http://proxy.internal:3129",
		"RSYNC_PROXY=proxy.internal:3128",
	}
	if got := p.Environ(); !reflect.DeepEqual(got, want) {
		t.Errorf("Environ() = %v, want %v", got, want)
	}
}
