// Package vercel is the domain provider client for Vercel's REST API.
package vercel

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"whitelabel/internal/provider"
)

const (
	ProviderID     = "vercel"
	DefaultBaseURL = "https://api.vercel.com"
	DefaultTimeout = 5 * time.Second
)

type Config struct {
	BaseURL   string
	Token     string
	ProjectID string
	TeamID    string
	Timeout   time.Duration
}

// Client calls the provider's project-domain and domain-config endpoints.
// All requests are scoped to TeamID when one is set.
type Client struct {
	http      *resty.Client
	projectID string
	teamID    string
	enabled   bool
}

type Option func(*resty.Client)

// WithTransport replaces the underlying round tripper (tests, proxies).
func WithTransport(rt http.RoundTripper) Option {
	return func(c *resty.Client) {
		c.SetTransport(rt)
	}
}

func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{
		http:      rc,
		projectID: cfg.ProjectID,
		teamID:    cfg.TeamID,
		enabled:   cfg.Token != "" && cfg.ProjectID != "",
	}
}

// Configured reports whether credentials are present. Unconfigured clients
// return provider.ErrNotConfigured from every call.
func (c *Client) Configured() bool {
	return c.enabled
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type addDomainRequest struct {
	Name string `json:"name"`
}

// AddDomain attaches host to the project. A conflict is resolved by looking
// the host up on our own project: present means it was already ours,
// absent means another project holds it.
func (c *Client) AddDomain(ctx context.Context, host string) (provider.Registration, error) {
	if !c.enabled {
		return "", provider.ErrNotConfigured
	}

	var apiErr apiError
	resp, err := c.request(ctx).
		SetPathParam("project", c.projectID).
		SetHeader("Content-Type", "application/json").
		SetBody(addDomainRequest{Name: host}).
		SetError(&apiErr).
		Post("/v10/projects/{project}/domains")
	if err != nil {
		return "", transportError(ctx, "add domain", err)
	}

	switch {
	case resp.IsSuccess():
		return provider.RegistrationCreated, nil
	case resp.StatusCode() == http.StatusConflict:
		if _, err := c.GetProjectDomain(ctx, host); err != nil {
			if provider.IsNotFound(err) {
				return "", fmt.Errorf("add domain %s: %w", host, provider.ErrDomainInUseElsewhere)
			}
			return "", err
		}
		return provider.RegistrationExisting, nil
	default:
		return "", statusError(resp.StatusCode(), "add domain", apiErr)
	}
}

// RemoveDomain detaches host from the project. A host that is not attached
// counts as removed.
func (c *Client) RemoveDomain(ctx context.Context, host string) error {
	if !c.enabled {
		return provider.ErrNotConfigured
	}

	var apiErr apiError
	resp, err := c.request(ctx).
		SetPathParams(map[string]string{"project": c.projectID, "domain": host}).
		SetError(&apiErr).
		Delete("/v9/projects/{project}/domains/{domain}")
	if err != nil {
		return transportError(ctx, "remove domain", err)
	}
	if resp.IsSuccess() || resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	return statusError(resp.StatusCode(), "remove domain", apiErr)
}

// GetProjectDomain fetches host as attached to our project, including the
// provider's verified flag.
func (c *Client) GetProjectDomain(ctx context.Context, host string) (*provider.ProjectDomain, error) {
	if !c.enabled {
		return nil, provider.ErrNotConfigured
	}

	var out provider.ProjectDomain
	var apiErr apiError
	resp, err := c.request(ctx).
		SetPathParams(map[string]string{"project": c.projectID, "domain": host}).
		SetResult(&out).
		SetError(&apiErr).
		Get("/v9/projects/{project}/domains/{domain}")
	if err != nil {
		return nil, transportError(ctx, "get project domain", err)
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode(), "get project domain", apiErr)
	}
	return &out, nil
}

// GetDomainConfig fetches the provider's recommended DNS records for host.
func (c *Client) GetDomainConfig(ctx context.Context, host string) (*provider.DomainConfig, error) {
	if !c.enabled {
		return nil, provider.ErrNotConfigured
	}

	var out provider.DomainConfig
	var apiErr apiError
	resp, err := c.request(ctx).
		SetPathParam("domain", host).
		SetResult(&out).
		SetError(&apiErr).
		Get("/v6/domains/{domain}/config")
	if err != nil {
		return nil, transportError(ctx, "get domain config", err)
	}
	if !resp.IsSuccess() {
		return nil, statusError(resp.StatusCode(), "get domain config", apiErr)
	}
	return &out, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.teamID != "" {
		req.SetQueryParam("teamId", c.teamID)
	}
	return req
}

func transportError(ctx context.Context, op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil || (errors.As(err, &netErr) && netErr.Timeout()) {
		return provider.NewProviderError(provider.ErrorTimeout, ProviderID, op+": request timeout", err)
	}
	return provider.NewProviderError(provider.ErrorProviderOutage, ProviderID, op+": request failed", err)
}

func statusError(status int, op string, apiErr apiError) error {
	msg := fmt.Sprintf("%s: status %d", op, status)
	if apiErr.Error.Code != "" {
		msg = fmt.Sprintf("%s (%s: %s)", msg, apiErr.Error.Code, apiErr.Error.Message)
	}

	var category provider.ErrorCategory
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		category = provider.ErrorAuthentication
	case status == http.StatusNotFound:
		category = provider.ErrorNotFound
	case status == http.StatusConflict:
		category = provider.ErrorConflict
	case status == http.StatusTooManyRequests:
		category = provider.ErrorRateLimited
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		category = provider.ErrorTimeout
	case status >= 500:
		category = provider.ErrorProviderOutage
	default:
		category = provider.ErrorBadData
	}

	pe := provider.NewProviderError(category, ProviderID, msg, nil)
	pe.StatusCode = status
	return pe
}
