package prometheus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "test")

	assert.NotNil(t, c)

	// Nothing observed yet, so no series are gathered.
	n, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestNewCollector_DuplicatePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg, "dup")

	assert.Panics(t, func() { NewCollector(reg, "dup") })
}

func TestCollector_RequestLifecycle(t *testing.T) {
	ctx := context.Background()
	c := NewCollector(prometheus.NewRegistry(), "test")

	c.OnRequest(ctx, "domain", "api.builtwith.com", "/v14/api.json")
	assert.Equal(t, 1.0, testutil.ToFloat64(c.inFlight.WithLabelValues("domain")))

	c.OnResponse(ctx, "domain", 200, 150*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.inFlight.WithLabelValues("domain")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues("domain", "2xx")))

	c.OnRequest(ctx, "domain", "api.builtwith.com", "/v14/api.json")
	c.OnResponse(ctx, "domain", 503, time.Second)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues("domain", "5xx")))

	assert.Equal(t, 1, testutil.CollectAndCount(c.durationSeconds))
}

func TestCollector_OnError(t *testing.T) {
	ctx := context.Background()
	c := NewCollector(prometheus.NewRegistry(), "test")

	c.OnRequest(ctx, "free", "api.builtwith.com", "/free1/api.json")
	c.OnError(ctx, "free", errors.New("connection refused"))

	assert.Equal(t, 0.0, testutil.ToFloat64(c.inFlight.WithLabelValues("free")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errorsTotal.WithLabelValues("free")))
}

func TestCollector_OnFallback(t *testing.T) {
	ctx := context.Background()
	c := NewCollector(prometheus.NewRegistry(), "test")

	c.OnFallback(ctx, "lists", errors.New("invalid character"))
	c.OnFallback(ctx, "lists", errors.New("invalid character"))
	c.OnFallback(ctx, "trends", errors.New("invalid character"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.fallbacksTotal.WithLabelValues("lists")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fallbacksTotal.WithLabelValues("trends")))
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{404, "4xx"},
		{502, "5xx"},
		{0, "0"},
		{999, "999"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusClass(tt.code))
	}
}
