package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
)

// The suite talks to a running server and is skipped unless EQUIPO_E2E is
// set. EQUIPO_E2E_URL overrides the default address.
const defaultBaseURL = "http://localhost:8080"

func baseURL(t *testing.T) string {
	t.Helper()

	if os.Getenv("EQUIPO_E2E") == "" {
		t.Skip("set EQUIPO_E2E to run the end-to-end suite against a live server")
	}
	if url := os.Getenv("EQUIPO_E2E_URL"); url != "" {
		return url
	}
	return defaultBaseURL
}

// request sends one API call and decodes the JSON response into out.
func request(t *testing.T, method, path string, payload any, out any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, baseURL(t)+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("failed to parse response: %v\nRaw: %s", err, raw)
		}
	}
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}

func equipmentPath(id float64) string {
	return fmt.Sprintf("/api/equipment/%.0f", id)
}
