//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TestContext holds state between test steps
type TestContext struct {
	BaseURL          string
	ProviderURL      string
	PlatformDomain   string
	AdminToken       string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte

	// run keeps slugs and domains unique across scenarios sharing one server.
	run     string
	tenants map[string]string
}

// NewTestContext creates a new test context
func NewTestContext() *TestContext {
	return &TestContext{
		BaseURL:        getEnv("BASE_URL", "http://localhost:8080"),
		ProviderURL:    getEnv("PROVIDER_URL", "http://localhost:8082"),
		PlatformDomain: getEnv("PLATFORM_DOMAIN", "localhost"),
		AdminToken:     os.Getenv("ADMIN_API_TOKEN"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		run:     uuid.NewString()[:8],
		tenants: make(map[string]string),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Slug returns the scenario-unique slug for name.
func (tc *TestContext) Slug(name string) string {
	return name + "-" + tc.run
}

// Domain makes a feature-file domain unique per scenario by suffixing its
// first label: "acme.biz" becomes "acme-<run>.biz".
func (tc *TestContext) Domain(name string) string {
	prefix := ""
	if rest, ok := strings.CutPrefix(name, "www."); ok {
		prefix, name = "www.", rest
	}
	label, tld, ok := strings.Cut(name, ".")
	if !ok {
		return prefix + name
	}
	return prefix + strings.ToLower(label) + "-" + tc.run + "." + tld
}

// POST makes a POST request and stores the response
func (tc *TestContext) POST(path string, body any) error {
	return tc.Do(http.MethodPost, tc.BaseURL+path, "", body, nil)
}

// DELETE makes a DELETE request and stores the response
func (tc *TestContext) DELETE(path string) error {
	return tc.Do(http.MethodDelete, tc.BaseURL+path, "", nil, nil)
}

// GET makes a GET request and stores the response
func (tc *TestContext) GET(path string, headers map[string]string) error {
	return tc.Do(http.MethodGet, tc.BaseURL+path, "", nil, headers)
}

// GETWithHost sends a GET whose Host header differs from the dialed address.
func (tc *TestContext) GETWithHost(host, path string) error {
	return tc.Do(http.MethodGet, tc.BaseURL+path, host, nil, nil)
}

// Do sends a request and stores the response.
func (tc *TestContext) Do(method, url, host string, body any, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.AdminToken != "" {
		req.Header.Set("X-Admin-Token", tc.AdminToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if host != "" {
		req.Host = host
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

// GetResponseField extracts a field from the JSON response. Dotted names
// walk nested objects.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	for part := range strings.SplitSeq(field, ".") {
		obj, ok := data.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %s not found in response", field)
		}
		if data, ok = obj[part]; !ok {
			return nil, fmt.Errorf("field %s not found in response", field)
		}
	}

	return data, nil
}

// ResponseContains checks if the response body contains a field or text
func (tc *TestContext) ResponseContains(text string) bool {
	if strings.Contains(string(tc.LastResponseBody), text) {
		return true
	}
	_, err := tc.GetResponseField(text)
	return err == nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	if tc.LastResponse == nil {
		return 0
	}
	return tc.LastResponse.StatusCode
}
