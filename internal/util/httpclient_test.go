package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewProxyFunc_Explicit(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.local:8080", "http://secure-proxy.local:8443")

	req := httptest.NewRequest(http.MethodGet, "https://api.exa.ai/answer", nil)
	u, err := proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u.Host != "secure-proxy.local:8443" {
		t.Errorf("expected https proxy, got %s", u.Host)
	}

	req = httptest.NewRequest(http.MethodGet, "http://api.local/answer", nil)
	u, err = proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u.Host != "proxy.local:8080" {
		t.Errorf("expected http proxy, got %s", u.Host)
	}
}

func TestNewHTTPClient_Timeout(t *testing.T) {
	client := NewHTTPClient(7*time.Second, "", "")
	if client.Timeout != 7*time.Second {
		t.Errorf("expected 7s timeout, got %v", client.Timeout)
	}
	if _, ok := client.Transport.(*http.Transport); !ok {
		t.Errorf("expected *http.Transport, got %T", client.Transport)
	}
}
