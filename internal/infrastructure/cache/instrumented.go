package cache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
)

var _ ports.Cache = (*Instrumented)(nil)

// Instrumented decora un adaptador de caché contando hits y misses.
type Instrumented struct {
	inner  ports.Cache
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewInstrumented construye el decorador.
func NewInstrumented(inner ports.Cache, hits, misses prometheus.Counter) *Instrumented {
	return &Instrumented{inner: inner, hits: hits, misses: misses}
}

func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := c.inner.Get(ctx, key)
	if ok {
		c.hits.Inc()
	} else {
		c.misses.Inc()
	}
	return v, ok
}

func (c *Instrumented) Put(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.inner.Put(ctx, key, value, ttl)
}

func (c *Instrumented) Invalidate(ctx context.Context, keys ...string) {
	c.inner.Invalidate(ctx, keys...)
}
