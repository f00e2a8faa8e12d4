package convert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestValidateConfig(t *testing.T) {
	t.Run("empty defaults to s2t", func(t *testing.T) {
		name, err := ValidateConfig("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if name != "s2t" {
			t.Errorf("expected s2t, got %s", name)
		}
	})

	t.Run("accepts all known configs", func(t *testing.T) {
		for _, c := range Configs {
			if _, err := ValidateConfig(c); err != nil {
				t.Errorf("ValidateConfig(%q) returned error: %v", c, err)
			}
		}
	})

	t.Run("rejects unknown config", func(t *testing.T) {
		if _, err := ValidateConfig("s2x"); err == nil {
			t.Error("expected error for unknown config")
		}
	})
}

func TestClient_Convert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/convert" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req convertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Config != "s2t" {
			t.Errorf("expected config s2t, got %s", req.Config)
		}
		if !req.Punctuation {
			t.Error("expected punctuation flag set")
		}
		json.NewEncoder(w).Encode(convertResponse{Text: "簡體"})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "s2t")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	got, err := client.Convert(context.Background(), "简体", true)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != "簡體" {
		t.Errorf("expected 簡體, got %s", got)
	}
}

func TestClient_Convert_EmptyInput(t *testing.T) {
	// No server: an empty conversion must not hit the network.
	client, err := NewClient("http://127.0.0.1:1", "s2t")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	got, err := client.Convert(context.Background(), "", false)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestClient_ZhoCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/check" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(checkResponse{Result: 2})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	got, err := client.ZhoCheck(context.Background(), "简体中文")
	if err != nil {
		t.Fatalf("ZhoCheck failed: %v", err)
	}
	if got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(convertResponse{Text: "好"})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "s2t", WithRetries(3), WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	got, err := client.Convert(context.Background(), "好", false)
	if err != nil {
		t.Fatalf("Convert failed after retries: %v", err)
	}
	if got != "好" {
		t.Errorf("expected 好, got %s", got)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad config", http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "s2t", WithRetries(5))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.Convert(context.Background(), "好", false); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 attempt for client error, got %d", calls.Load())
	}
}

func TestNewClient_RejectsBadConfig(t *testing.T) {
	if _, err := NewClient("http://localhost", "nope"); err == nil {
		t.Error("expected error for invalid conversion config")
	}
}
