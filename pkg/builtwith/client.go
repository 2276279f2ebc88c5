package builtwith

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/builtwith/pkg/buildinfo"
	"github.com/matzehuels/builtwith/pkg/errors"
	"github.com/matzehuels/builtwith/pkg/observability"
)

const (
	// DefaultBaseURL is the service host template. {subdomain} is replaced
	// per endpoint ("api" for most, "ctu" for company lookups).
	DefaultBaseURL = "https://{subdomain}.builtwith.com"

	defaultSubdomain = "api"

	// maxErrorBody bounds how much of a non-2xx body is kept in a StatusError.
	maxErrorBody = 512
)

// Client provides access to the BuiltWith APIs.
//
// A Client is configured once by [New] and never changes afterwards. It holds
// no per-call state, so all methods are safe for concurrent use by multiple
// goroutines and concurrent calls are independent of each other.
type Client struct {
	apiKey  string
	format  Format
	baseURL string
	http    *http.Client
	logger  *log.Logger
	hooks   observability.Hooks
	decoder decoder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests. The default client
// has no timeout; bound calls with the context or with a client timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger for diagnostics (the txt format warning and
// report fallback warnings at warn level, per-request details at debug level).
// Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBaseURL overrides the service host. base may contain a {subdomain}
// placeholder; without one every endpoint is sent to the same host, which is
// what test servers want.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithHooks sets the observability hooks notified on every request.
func WithHooks(h observability.Hooks) Option {
	return func(c *Client) {
		c.hooks = observability.OrNoop(h)
	}
}

// New creates a Client for the given API key and response format.
//
// New fails with a CONFIGURATION error, before any network activity, if the
// key is empty or format is not one of [FormatXML], [FormatJSON], [FormatTXT].
// Selecting [FormatTXT] succeeds but logs a warning: only the lists endpoint
// answers meaningfully in text.
func New(apiKey string, format Format, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "api key is required")
	}
	if !format.Valid() {
		return nil, invalidFormat(string(format))
	}

	c := &Client{
		apiKey:  apiKey,
		format:  format,
		baseURL: DefaultBaseURL,
		http:    &http.Client{},
		logger:  log.Default(),
		hooks:   observability.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.decoder = newDecoder(format, c.logger, c.hooks)

	if format == FormatTXT {
		c.logger.Warn("response format txt is only supported by the lists endpoint; other endpoints will fail to parse")
	}
	return c, nil
}

// Format returns the response format the client requests.
func (c *Client) Format() Format { return c.format }

// URL builds the request URL for an endpoint path on the given subdomain
// ("" means "api"):
//
//	{base}/{path}/api.{format}?KEY={key}&{params}
//
// Only defined params are appended, in order. URL is a pure function of its
// arguments and the client's configuration.
func (c *Client) URL(path, subdomain string, params Params) string {
	if subdomain == "" {
		subdomain = defaultSubdomain
	}

	var b strings.Builder
	b.WriteString(strings.ReplaceAll(c.baseURL, "{subdomain}", subdomain))
	b.WriteByte('/')
	b.WriteString(strings.Trim(path, "/"))
	b.WriteString("/api.")
	b.WriteString(string(c.format))
	b.WriteString("?KEY=")
	b.WriteString(url.QueryEscape(c.apiKey))
	if q := params.Encode(); q != "" {
		b.WriteByte('&')
		b.WriteString(q)
	}
	return b.String()
}

// call builds the URL for ep, performs the GET and decodes the body.
func (c *Client) call(ctx context.Context, ep endpoint, params Params) (*Result, error) {
	rawURL := c.URL(ep.path, ep.subdomain, params)
	req := &request{
		endpoint: ep,
		url:      c.redact(rawURL),
		logger: c.logger.With(
			"endpoint", ep.name,
			"request_id", uuid.NewString(),
		),
	}

	req.logger.Debug("sending request", "url", req.url)
	body, err := c.fetch(ctx, req, rawURL)
	if err != nil {
		req.logger.Debug("request failed", "err", err)
		return nil, err
	}
	req.logger.Debug("received response", "bytes", len(body))

	return c.decoder.decode(ctx, req, body)
}

// fetch performs the GET and returns the full body of a 2xx response.
func (c *Client) fetch(ctx context.Context, req *request, rawURL string) ([]byte, error) {
	name := req.endpoint.name
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, c.redactErr(err), "%s: build request", name)
	}
	httpReq.Header.Set("User-Agent", buildinfo.UserAgent())

	c.hooks.OnRequest(ctx, name, httpReq.URL.Host, httpReq.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		err = c.redactErr(err)
		c.hooks.OnError(ctx, name, err)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "%s: request failed", name)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.hooks.OnResponse(ctx, name, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "%s: read response", name)
	}

	if err := checkStatus(resp.StatusCode, body); err != nil {
		return nil, errors.Wrap(errors.ErrCodeHTTPStatus, err, "%s: unexpected response", name)
	}
	return body, nil
}

func checkStatus(code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return &errors.StatusError{StatusCode: code, Body: excerpt(body, maxErrorBody)}
}

// redact hides the API key in a URL meant for logs or errors.
func (c *Client) redact(s string) string {
	return strings.ReplaceAll(s, "KEY="+url.QueryEscape(c.apiKey), "KEY=REDACTED")
}

// redactErr strips the API key from a *url.Error, which embeds the full
// request URL in its message.
func (c *Client) redactErr(err error) error {
	var ue *url.Error
	if stderrors.As(err, &ue) {
		ue.URL = c.redact(ue.URL)
	}
	return err
}

// excerpt trims body to at most n bytes without splitting a UTF-8 sequence.
func excerpt(body []byte, n int) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
