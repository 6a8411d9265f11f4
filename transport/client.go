package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// The literal error message the server sends when a session token has
// lapsed. Only this exact phrase on a 401 triggers re-authentication.
const tokenExpiredMessage = "Authentication token has expired"

// ReauthFunc re-establishes an expired session. It is invoked at most
// once per expiry, inside a single-flight critical section.
type ReauthFunc func(ctx context.Context) error

// Client issues authenticated requests against the management API. It
// resolves hypermedia URIs against the base address, enforces 2xx-or-fail
// semantics, and transparently renews the session token when the server
// reports it expired.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	codec      Codec
	session    *Session
	credential string
	reauth     ReauthFunc
	logger     zerolog.Logger

	// Deduplicates concurrent re-authentication so overlapping callers
	// observing an expired token share one logon handshake.
	renew singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCodec sets the body codec. The default is XMLCodec.
func WithCodec(codec Codec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// WithTokenHeader sets the header name carrying the session token.
func WithTokenHeader(name string) Option {
	return func(c *Client) {
		c.session = NewSession(name)
	}
}

// WithReauth replaces the re-authentication strategy. The default
// performs the full logon handshake.
func WithReauth(fn ReauthFunc) Option {
	return func(c *Client) {
		c.reauth = fn
	}
}

// NewClient creates a client for the API rooted at baseURL. credential is
// the pre-hashed username:password pair used during the logon handshake;
// build it with BasicCredential. No network traffic happens until Logon
// or the first request.
func NewClient(baseURL, credential string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base URL must be absolute: %s", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	c := &Client{
		base:       base,
		httpClient: cleanhttp.DefaultPooledClient(),
		codec:      XMLCodec{},
		session:    NewSession(DefaultTokenHeader),
		credential: credential,
		logger:     logger,
	}
	c.reauth = c.Logon

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Session exposes the client's session state.
func (c *Client) Session() *Session {
	return c.session
}

// Codec returns the configured body codec.
func (c *Client) Codec() Codec {
	return c.codec
}

// Response is a decoded-on-demand API response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte

	codec Codec
}

// Decode deserializes the response body into v using the client codec.
func (r *Response) Decode(v any) error {
	return r.codec.Decode(r.Body, v)
}

// Do sends one request and returns its response. body may be nil; a
// non-nil body is encoded with the client codec. Any status outside
// 200-299 is a StatusError. A 401 caused by an expired token is recovered
// exactly once by re-authenticating and replaying the request; every
// other failure propagates unchanged.
func (c *Client) Do(ctx context.Context, method, uri string, body any) (*Response, error) {
	target, err := c.resolveURI(uri)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if body != nil {
		payload, err = c.codec.Encode(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	token := c.session.Token()
	resp, err := c.roundTrip(ctx, method, target, payload, token, "")
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusUnauthorized && c.tokenExpired(resp) {
		if token == "" {
			// A 401 without a prior token is a configuration bug, not an
			// expired session.
			return nil, &ProtocolError{Reason: "unauthorized response on unauthenticated request", Err: ErrMissingToken}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.logger.Debug().Str("uri", target).Msg("session token expired, re-authenticating")
		if err := c.renewToken(ctx); err != nil {
			return nil, fmt.Errorf("re-authentication failed: %w", err)
		}

		// Replay once with the fresh token. A second 401 propagates.
		resp, err = c.roundTrip(ctx, method, target, payload, c.session.Token(), "")
		if err != nil {
			return nil, err
		}
	}

	if resp.Status < 200 || resp.Status > 299 {
		return nil, &StatusError{Code: resp.Status, URI: target, Body: string(resp.Body)}
	}
	return resp, nil
}

// roundTrip performs a single HTTP exchange with no retry and no status
// classification.
func (c *Client) roundTrip(ctx context.Context, method, target string, payload []byte, token, authorization string) (*Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", c.codec.ContentType())
	if payload != nil {
		req.Header.Set("Content-Type", c.codec.ContentType())
	}
	if token != "" {
		req.Header.Set(c.session.HeaderName(), token)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	c.logger.Trace().Str("method", method).Str("url", target).Msg("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   data,
		codec:  c.codec,
	}, nil
}

// resolveURI maps a relative or absolute URI onto the session base. An
// absolute URI under the base host is normalized instead of being sent
// verbatim; an absolute URI on a foreign host is refused so the session
// token never leaks to unrelated hosts.
func (c *Client) resolveURI(uri string) (string, error) {
	if uri == "" {
		return c.base.String(), nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", &ProtocolError{Reason: fmt.Sprintf("malformed URI %q", uri), Err: err}
	}
	if u.IsAbs() {
		if u.Scheme != c.base.Scheme || u.Host != c.base.Host {
			return "", &ProtocolError{Reason: fmt.Sprintf("refusing absolute URI on foreign host %q", u.Host)}
		}
		u.Scheme = ""
		u.Host = ""
	}
	return c.base.ResolveReference(u).String(), nil
}

// tokenExpired reports whether a 401 response carries the server's
// token-expiry message.
func (c *Client) tokenExpired(resp *Response) bool {
	var body errorBody
	if err := resp.Decode(&body); err != nil {
		return false
	}
	return body.Message == tokenExpiredMessage
}

// errorBody is the error payload the server attaches to failed requests.
type errorBody struct {
	Message string `xml:"Message" json:"message"`
}

// renewToken runs the configured re-authentication strategy inside a
// single-flight guard, so concurrent callers hitting an expired token
// share one handshake.
func (c *Client) renewToken(ctx context.Context) error {
	_, err, _ := c.renew.Do(c.session.HeaderName(), func() (any, error) {
		return nil, c.reauth(ctx)
	})
	return err
}

// Get issues a GET to uri and decodes the response body into T.
func Get[T any](ctx context.Context, c *Client, uri string) (T, error) {
	return request[T](ctx, c, http.MethodGet, uri, nil)
}

// Post issues a POST to uri and decodes the response body into T.
func Post[T any](ctx context.Context, c *Client, uri string, body any) (T, error) {
	return request[T](ctx, c, http.MethodPost, uri, body)
}

// Put issues a PUT to uri and decodes the response body into T.
func Put[T any](ctx context.Context, c *Client, uri string, body any) (T, error) {
	return request[T](ctx, c, http.MethodPut, uri, body)
}

func request[T any](ctx context.Context, c *Client, method, uri string, body any) (T, error) {
	var out T
	resp, err := c.Do(ctx, method, uri, body)
	if err != nil {
		return out, err
	}
	if len(resp.Body) == 0 {
		return out, nil
	}
	if err := resp.Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode response from %s: %w", uri, err)
	}
	return out, nil
}
