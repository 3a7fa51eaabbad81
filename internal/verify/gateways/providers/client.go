package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sendgrid/rest"

	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/domain"
)

// DefaultTimeout bounds a single provider request.
const DefaultTimeout = 10 * time.Second

const (
	errAPIError          = "API error"
	errMalformedResponse = "malformed response: %v"
	errRequestTimeout    = "request timed out"
	errRequestFailed     = "request failed: %v"
)

// Provider adapts one third-party verification API. Implementations only
// describe the wire format; Client performs the call.
type Provider interface {
	// Name identifies the provider in results and logs.
	Name() domain.ProviderName
	// Request builds the GET request for address, authenticated with credential.
	Request(address, credential string) rest.Request
	// ErrorMessage extracts the provider's embedded error message from a
	// response body, or returns "" when there is none.
	ErrorMessage(body []byte) string
	// Decode parses a successful response body. Omitted fields keep their zero values.
	Decode(body []byte) (domain.ProviderResult, error)
}

// Client executes provider requests and folds every failure into a
// domain.ErrorResult. It never retries and keeps no state between calls.
type Client struct {
	rest      *rest.Client
	timeout   time.Duration
	providers map[domain.ProviderName]Provider
	logger    log.Logger
}

// Options configures NewClient.
type Options struct {
	// HTTPClient performs the requests; defaults to a plain http.Client.
	HTTPClient *http.Client
	// Timeout bounds every request, whatever the caller's deadline.
	Timeout   time.Duration
	Providers []Provider
	Logger    log.Logger
}

// NewClient creates a Client. VerifyAll consults the registered providers
// in domain.Providers order regardless of the order given here.
func NewClient(opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	registry := make(map[domain.ProviderName]Provider, len(opts.Providers))
	for _, p := range opts.Providers {
		registry[p.Name()] = p
	}
	return &Client{
		rest:      &rest.Client{HTTPClient: opts.HTTPClient},
		timeout:   opts.Timeout,
		providers: registry,
		logger:    opts.Logger,
	}
}

// Provider returns the registered provider named n.
func (c *Client) Provider(n domain.ProviderName) (Provider, bool) {
	p, ok := c.providers[n]
	return p, ok
}

// Verify performs one request against p. An empty credential short-circuits
// to a configuration error without touching the network.
func (c *Client) Verify(ctx context.Context, p Provider, address, credential string) domain.ProviderResult {
	name := p.Name()
	if credential == "" {
		return domain.NewErrorResult(name, domain.ErrorKindConfiguration, domain.ErrProviderNotConfigured.Error())
	}

	// An earlier caller deadline still wins.
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.rest.SendWithContext(ctx, p.Request(address, credential))
	if err != nil {
		msg := c.describe(ctx, err)
		c.logger.Warn(map[string]any{"provider": name, "error": msg}, "provider_request_failed")
		return domain.NewErrorResult(name, domain.ErrorKindTransport, msg)
	}
	c.logger.Debug(map[string]any{
		"provider": name,
		"status":   resp.StatusCode,
		"elapsed":  time.Since(started).String(),
	}, "provider_response")

	body := []byte(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := p.ErrorMessage(body)
		if msg == "" {
			msg = errAPIError
		}
		return domain.NewErrorResult(name, domain.ErrorKindApplication, msg)
	}
	if msg := p.ErrorMessage(body); msg != "" {
		return domain.NewErrorResult(name, domain.ErrorKindApplication, msg)
	}

	result, err := p.Decode(body)
	if err != nil {
		return domain.NewErrorResult(name, domain.ErrorKindTransport, fmt.Sprintf(errMalformedResponse, err))
	}
	return result
}

// VerifyAll queries every registered provider that has a credential in creds,
// in domain.Providers order. Providers without a credential are skipped.
func (c *Client) VerifyAll(ctx context.Context, address string, creds domain.Credentials) []domain.ProviderResult {
	results := make([]domain.ProviderResult, 0, len(c.providers))
	for _, name := range creds.Configured() {
		p, ok := c.providers[name]
		if !ok {
			continue
		}
		results = append(results, c.Verify(ctx, p, address, creds.Key(name)))
	}
	return results
}

// describe turns a transport error into a message that never includes the
// request URL, since it carries the credential as a query parameter.
func (c *Client) describe(ctx context.Context, err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errRequestTimeout
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}
	return fmt.Sprintf(errRequestFailed, err)
}
