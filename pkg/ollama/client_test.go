package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(generateResponse{Response: "  The user is very active.  "})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "llama3.2", 5*time.Second)

	text, err := client.Generate(context.Background(), "describe this user")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if gotPath != "/api/generate" {
		t.Errorf("path = %q, want /api/generate", gotPath)
	}
	if gotBody.Model != "llama3.2" {
		t.Errorf("model = %q, want llama3.2", gotBody.Model)
	}
	if gotBody.Stream {
		t.Error("stream should be false")
	}
	if gotBody.Prompt != "describe this user" {
		t.Errorf("prompt = %q", gotBody.Prompt)
	}
	// Raw text comes back untrimmed; trimming is the caller's concern
	if text != "  The user is very active.  " {
		t.Errorf("text = %q", text)
	}
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "llama3.2", 5*time.Second)

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "llama3.2", 5*time.Second)
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping error: %v", err)
	}
}

func TestPingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately closed: connection refused

	client := NewClient(srv.URL, "llama3.2", time.Second)
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestGenerateContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read; without it
		// the client disconnect is never noticed and r.Context() never fires.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "llama3.2", 30*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.Generate(ctx, "prompt"); err == nil {
		t.Fatal("expected error when context deadline passes")
	}
}
