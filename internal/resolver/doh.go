// Package resolver queries a public DNS-over-HTTPS resolver using the RFC 8484
// wire format.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/miekg/dns"
)

const (
	DefaultEndpoint = "https://cloudflare-dns.com/dns-query"
	DefaultTimeout  = 5 * time.Second

	mediaType = "application/dns-message"
)

// ErrLookupFailed wraps every transport, HTTP and DNS-level failure.
// NXDOMAIN and empty answers are not failures.
var ErrLookupFailed = errors.New("dns lookup failed")

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

type Client struct {
	http     *resty.Client
	endpoint string
}

func New(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("Accept", mediaType),
		endpoint: cfg.Endpoint,
	}
}

// LookupA returns the IPv4 addresses name resolves to.
func (c *Client) LookupA(ctx context.Context, name string) ([]string, error) {
	answers, err := c.Lookup(ctx, name, dns.TypeA)
	if err != nil {
		return nil, err
	}
	var ips []string
	for _, rr := range answers {
		if a, ok := rr.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	return ips, nil
}

// LookupCNAME returns CNAME targets for name, lowercased and without the
// trailing root dot.
func (c *Client) LookupCNAME(ctx context.Context, name string) ([]string, error) {
	answers, err := c.Lookup(ctx, name, dns.TypeCNAME)
	if err != nil {
		return nil, err
	}
	var targets []string
	for _, rr := range answers {
		if cname, ok := rr.(*dns.CNAME); ok {
			targets = append(targets, strings.TrimSuffix(strings.ToLower(cname.Target), "."))
		}
	}
	return targets, nil
}

// Lookup sends one query and returns the answer section.
func (c *Client) Lookup(ctx context.Context, name string, qtype uint16) ([]dns.RR, error) {
	query := new(dns.Msg)
	query.SetQuestion(dns.Fqdn(name), qtype)
	query.Id = 0

	packed, err := query.Pack()
	if err != nil {
		return nil, fmt.Errorf("%w: pack query for %s: %v", ErrLookupFailed, name, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", mediaType).
		SetBody(packed).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrLookupFailed, dns.TypeToString[qtype], name, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: resolver returned status %d", ErrLookupFailed, resp.StatusCode())
	}

	reply := new(dns.Msg)
	if err := reply.Unpack(resp.Body()); err != nil {
		return nil, fmt.Errorf("%w: unpack reply: %v", ErrLookupFailed, err)
	}

	switch reply.Rcode {
	case dns.RcodeSuccess:
		return reply.Answer, nil
	case dns.RcodeNameError:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: rcode %s", ErrLookupFailed, dns.RcodeToString[reply.Rcode])
	}
}
