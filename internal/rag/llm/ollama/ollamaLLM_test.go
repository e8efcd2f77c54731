package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerate_RequestShape(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"model":"gemma:2b-instruct","response":"Leaves are green.","done":true}`))
	}))
	defer server.Close()

	c := NewOllamaClient(server.URL+"/", "gemma:2b-instruct")
	answer, err := c.Generate(context.Background(), "Why are leaves green?", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Leaves are green." {
		t.Errorf("answer = %q", answer)
	}

	if got["model"] != "gemma:2b-instruct" || got["prompt"] != "Why are leaves green?" || got["stream"] != false {
		t.Errorf("unexpected body %v", got)
	}
	options, ok := got["options"].(map[string]any)
	if !ok {
		t.Fatalf("missing options in %v", got)
	}
	expected := map[string]float64{"temperature": 0.1, "num_predict": 500, "top_p": 0.8, "repeat_penalty": 1.1}
	for key, want := range expected {
		v, ok := options[key].(float64)
		if !ok || v < want-1e-6 || v > want+1e-6 {
			t.Errorf("option %s = %v; want %v", key, options[key], want)
		}
	}
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}, "status 500"},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}, "decoding response"},
		{"error field", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"model 'x' not found"}`))
		}, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewOllamaClient(server.URL, "x").Generate(context.Background(), "p", 10)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGenerate_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	if _, err := NewOllamaClient(url, "x").Generate(context.Background(), "p", 10); err == nil {
		t.Fatal("expected transport error")
	}
}
