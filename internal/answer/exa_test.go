package answer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExaProvider_Answer_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/answer" {
			t.Errorf("Expected path /answer, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key test-key, got %s", r.Header.Get("x-api-key"))
		}

		var req exaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Query != "is the sky blue?" || req.Stream || !req.Text {
			t.Errorf("Unexpected request body: %+v", req)
		}

		_, _ = w.Write([]byte(`{
			"answer": "TITLE: Sky\nSCORE: 5\nANALYSIS: Rayleigh scattering.",
			"citations": [
				{"id": "c1", "url": "https://en.wikipedia.org/wiki/Rayleigh_scattering", "title": "Rayleigh scattering", "text": "..."}
			],
			"costDollars": {"total": 0.005}
		}`))
	}))
	defer server.Close()

	provider, err := NewExaProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/", Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Answer(context.Background(), "is the sky blue?")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(resp.Citations) != 1 || resp.Citations[0].ID != "c1" {
		t.Errorf("Unexpected citations: %+v", resp.Citations)
	}
	if resp.CostDollars == nil || resp.CostDollars.Total != 0.005 {
		t.Errorf("Unexpected cost: %+v", resp.CostDollars)
	}
}

func TestExaProvider_Answer_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	provider, _ := NewExaProvider(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := provider.Answer(context.Background(), "q")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", statusErr.StatusCode)
	}
	if statusErr.Body != `{"error":"rate limited"}` {
		t.Errorf("Unexpected body: %s", statusErr.Body)
	}
}

func TestExaProvider_Answer_Malformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	provider, _ := NewExaProvider(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := provider.Answer(context.Background(), "q")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Expected ErrMalformedResponse, got %v", err)
	}
}

func TestExaProvider_Answer_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	provider, _ := NewExaProvider(Config{APIKey: "test-key", BaseURL: url})

	_, err := provider.Answer(context.Background(), "q")
	if err == nil {
		t.Fatal("Expected transport error, got nil")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("Transport failure must not look like a status error: %v", err)
	}
}

func TestNewExaProvider_MissingKey(t *testing.T) {
	if _, err := NewExaProvider(Config{}); err == nil {
		t.Error("Expected error for missing API key")
	}
}
