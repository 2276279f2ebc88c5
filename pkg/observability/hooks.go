// Package observability provides hooks for metrics and diagnostics.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers pass a [Hooks] implementation
// to the client at construction and receive events about API calls and
// response decoding.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Let the caller inject an implementation per client
//
// Hooks are injected rather than registered globally, so two clients in the
// same process (or two tests) never observe each other's events.
//
// # Usage
//
//	collector := prometheus.NewCollector(reg, "builtwith")
//	client, err := builtwith.New(key, builtwith.FormatJSON, builtwith.WithHooks(collector))
//
// A Prometheus backend lives in the [prometheus] subpackage.
//
// [prometheus]: github.com/matzehuels/builtwith/pkg/observability/prometheus
package observability

import (
	"context"
	"time"
)

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from outgoing API requests.
// The endpoint argument is the client method name (e.g. "domain", "lists").
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, endpoint, host, path string)

	// OnResponse records an HTTP response, including non-2xx ones.
	OnResponse(ctx context.Context, endpoint string, statusCode int, duration time.Duration)

	// OnError records a request that produced no response (network failure,
	// cancellation).
	OnError(ctx context.Context, endpoint string, err error)
}

// =============================================================================
// Decode Hooks
// =============================================================================

// DecodeHooks receives events from response decoding.
type DecodeHooks interface {
	// OnFallback records a report endpoint whose JSON body failed to parse and
	// was returned as raw text instead.
	OnFallback(ctx context.Context, endpoint string, err error)
}

// Hooks combines every event category the client emits.
type Hooks interface {
	HTTPHooks
	DecodeHooks
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, error)                 {}

// NoopDecodeHooks is a no-op implementation of DecodeHooks.
type NoopDecodeHooks struct{}

func (NoopDecodeHooks) OnFallback(context.Context, string, error) {}

// Noop implements Hooks and discards every event.
type Noop struct {
	NoopHTTPHooks
	NoopDecodeHooks
}

// OrNoop returns h, or [Noop] if h is nil.
func OrNoop(h Hooks) Hooks {
	if h == nil {
		return Noop{}
	}
	return h
}
