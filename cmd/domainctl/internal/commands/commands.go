package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"whitelabel/pkg/platform/httputil"
)

type Globals struct {
	Server     string
	AdminToken string
	Debug      bool
	Version    string
	Out        io.Writer
}

func (g *Globals) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// client returns a resty client for the API at g.Server.
func (g *Globals) client() *resty.Client {
	c := resty.New().
		SetBaseURL(g.Server).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json").
		SetDebug(g.Debug)
	if g.AdminToken != "" {
		c.SetHeader("X-Admin-Token", g.AdminToken)
	}
	return c
}

// APIError is a non-2xx response carrying the service's error envelope.
type APIError struct {
	Status      int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("request failed: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Description)
}

// call sends method to path, decoding a 2xx body into result.
func (g *Globals) call(ctx context.Context, method, path string, body, result any) error {
	var apiErr httputil.ErrorResponse
	req := g.client().R().
		SetContext(ctx).
		SetError(&apiErr)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Code: apiErr.Error, Description: apiErr.Description}
	}
	return nil
}

func (g *Globals) print(v any) error {
	enc := json.NewEncoder(g.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
