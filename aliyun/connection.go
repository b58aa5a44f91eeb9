// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package aliyun

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/satori/go.uuid"
	"github.com/tidwall/gjson"

	"github.com/alictl/alictl/internal/log"
)

// PageSize is the page length requested for paginated queries.
const PageSize = 50

// Service describes one Aliyun API family: its regional endpoint and the
// fixed API version every request against it carries.
type Service struct {
	Name     string
	Endpoint string
	Version  string
}

// Supported services.
var (
	ServiceECS = Service{Name: "ecs", Endpoint: "https://ecs.aliyuncs.com", Version: "2014-05-26"}
	ServiceSLB = Service{Name: "slb", Endpoint: "https://slb.aliyuncs.com", Version: "2014-05-15"}
	ServiceDNS = Service{Name: "dns", Endpoint: "https://dns.aliyuncs.com", Version: "2015-01-09"}
)

// ServiceByName maps a service name to its descriptor.
func ServiceByName(name string) (Service, error) {
	switch name {
	case "ecs":
		return ServiceECS, nil
	case "slb":
		return ServiceSLB, nil
	case "dns":
		return ServiceDNS, nil
	}
	return Service{}, fmt.Errorf("unsupported service %q: %w", name, ErrInvalidArgument)
}

// Connection is a signed-request channel to one service in one region. It is
// stateless apart from its immutable configuration and is safe for
// concurrent use. Retries, TLS handling and cancellation belong to the
// injected HTTP client and the caller's context.
type Connection struct {
	region  string
	service Service
	creds   Credentials
	client  *http.Client
	format  Format
	now     func() time.Time
	nonce   func() string
}

// Option customizes a Connection.
type Option func(*connOptions)

type connOptions struct {
	creds    *Credentials
	provider CredentialsProvider
	client   *http.Client
	format   Format
	now      func() time.Time
	nonce    func() string
}

// WithCredentials pins an explicit access key pair.
func WithCredentials(creds Credentials) Option {
	return func(o *connOptions) { o.creds = &creds }
}

// WithCredentialsProvider resolves credentials from the given provider
// instead of the default environment/file chain.
func WithCredentialsProvider(p CredentialsProvider) Option {
	return func(o *connOptions) { o.provider = p }
}

// WithHTTPClient replaces the default pooled client. Transport policy
// (timeouts, retries, proxies) is owned by the caller.
func WithHTTPClient(c *http.Client) Option {
	return func(o *connOptions) { o.client = c }
}

// WithFormat selects the response encoding requested from the provider.
func WithFormat(f Format) Option {
	return func(o *connOptions) { o.format = f }
}

// WithClock injects the timestamp source. Tests use this to pin the
// TimeStamp envelope field.
func WithClock(now func() time.Time) Option {
	return func(o *connOptions) { o.now = now }
}

// WithNonceSource injects the SignatureNonce generator. Tests use this to
// make signed requests reproducible.
func WithNonceSource(nonce func() string) Option {
	return func(o *connOptions) { o.nonce = nonce }
}

// New builds a Connection to one service in one region. When no credentials
// are supplied, the default resolution chain is consulted (environment, user
// config file, system config file).
func New(region string, service Service, opts ...Option) (*Connection, error) {
	if region == "" {
		return nil, fmt.Errorf("region is required: %w", ErrInvalidArgument)
	}
	if service.Endpoint == "" || service.Version == "" {
		return nil, fmt.Errorf("service is required: %w", ErrInvalidArgument)
	}

	var o connOptions
	for _, opt := range opts {
		opt(&o)
	}

	creds := Credentials{}
	switch {
	case o.creds != nil:
		creds = *o.creds
	case o.provider != nil:
		var err error
		if creds, err = o.provider.Resolve(); err != nil {
			return nil, err
		}
	default:
		var err error
		if creds, err = FindCredentials(); err != nil {
			return nil, err
		}
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return nil, fmt.Errorf("credentials are required: %w", ErrInvalidArgument)
	}

	conn := &Connection{
		region:  region,
		service: service,
		creds:   creds,
		client:  o.client,
		format:  o.format,
		now:     o.now,
		nonce:   o.nonce,
	}
	if conn.client == nil {
		conn.client = cleanhttp.DefaultPooledClient()
	}
	if conn.format == "" {
		conn.format = FormatJSON
	}
	if conn.now == nil {
		conn.now = time.Now
	}
	if conn.nonce == nil {
		conn.nonce = func() string { return uuid.NewV4().String() }
	}

	log.Debugf("connection created: service=%s region=%s", service.Name, region)
	return conn, nil
}

// Region returns the region this connection is bound to.
func (c *Connection) Region() string { return c.region }

// Service returns the service descriptor this connection targets.
func (c *Connection) Service() Service { return c.service }

// Do signs and sends one request and returns the validated response body.
// params must include the Action key; every request gets a fresh nonce and
// timestamp, so two calls with identical params still produce distinct
// signatures.
func (c *Connection) Do(ctx context.Context, params Params) ([]byte, error) {
	if params["Action"] == "" {
		return nil, fmt.Errorf("action is required: %w", ErrInvalidArgument)
	}

	signed, err := BuildSignedQuery(c.region, c.creds, c.service.Version,
		params["Action"], params.clone(), c.now(), c.nonce())
	if err != nil {
		return nil, err
	}

	url := c.service.Endpoint + "/?" + encodeQuery(signed)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	log.Debugf("request: service=%s action=%s region=%s", c.service.Name, params["Action"], c.region)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Tracef("response: action=%s status=%d bytes=%d", params["Action"], resp.StatusCode, len(body))

	format := c.format
	if f, ok := params["Format"]; ok {
		format = Format(f)
	}
	return ParseResponse(body, format, resp.StatusCode)
}

// Get performs Do and decodes the JSON success body into out. out may be nil
// for actions whose response carries nothing beyond the request id.
func (c *Connection) Get(ctx context.Context, params Params, out any) error {
	body, err := c.Do(ctx, params)
	if err != nil {
		return err
	}
	return decodeInto(body, out)
}

// GetPaginated drives a paginated query, invoking each with every page body
// in order. Pagination follows the provider's TotalCount/PageNumber/PageSize
// convention; params must not already carry paging keys.
func (c *Connection) GetPaginated(ctx context.Context, params Params, each func([]byte) error) error {
	paged := params.clone()
	paged["PageSize"] = fmt.Sprintf("%d", PageSize)

	body, err := c.Do(ctx, paged)
	if err != nil {
		return err
	}
	if err := each(body); err != nil {
		return err
	}

	total := gjson.GetBytes(body, "TotalCount").Int()
	if total <= PageSize {
		return nil
	}

	pages := int((total + PageSize - 1) / PageSize)
	for page := 2; page <= pages; page++ {
		paged["PageNumber"] = fmt.Sprintf("%d", page)
		body, err := c.Do(ctx, paged)
		if err != nil {
			return err
		}
		if err := each(body); err != nil {
			return err
		}
	}
	return nil
}
