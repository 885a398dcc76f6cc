package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func withServer(t *testing.T, h http.HandlerFunc) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	origURL, origTimeout, origToken := baseURL, timeout, token
	t.Cleanup(func() {
		baseURL, timeout, token = origURL, origTimeout, origToken
	})

	baseURL = srv.URL
	timeout = time.Second
	token = ""
}

func TestGetPrintsIndentedJSON(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/v1/carriers" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"carriers":[{"code":"CLARO"}]}`))
	})

	out := captureStdout(t, func() {
		get("/api/v1/carriers")
	})

	if !strings.Contains(out, "\"code\": \"CLARO\"") {
		t.Fatalf("expected indented json output, got %q", out)
	}
}

func TestPostSendsJSONBody(t *testing.T) {
	var received map[string]any
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.Write([]byte(`{}`))
	})

	captureStdout(t, func() {
		post("/api/v1/transfers", map[string]any{
			"source_account_id": "acc-1",
			"amount":            "25.00",
		})
	})

	if received["source_account_id"] != "acc-1" || received["amount"] != "25.00" {
		t.Fatalf("unexpected payload: %#v", received)
	}
}

func TestDoSendsBearerToken(t *testing.T) {
	var gotAuth string
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})
	token = "session-token"

	captureStdout(t, func() {
		get("/api/v1/transactions")
	})

	if gotAuth != "Bearer session-token" {
		t.Fatalf("expected bearer token header, got %q", gotAuth)
	}
}

func TestDoPrintsNonJSONBodyVerbatim(t *testing.T) {
	withServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text"))
	})

	out := captureStdout(t, func() {
		get("/ping")
	})

	if strings.TrimSpace(out) != "plain text" {
		t.Fatalf("expected raw body, got %q", out)
	}
}
