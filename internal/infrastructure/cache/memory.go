// Package cache contiene los adaptadores del puerto ports.Cache: un mapa en
// proceso con TTL (por defecto) y un adaptador Redis para despliegues con
// varias réplicas.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
)

var _ ports.Cache = (*Memory)(nil)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory caché en proceso protegida por mutex, con expiración perezosa: las
// entradas vencidas se descartan al leerlas.
type Memory struct {
	mu  sync.RWMutex
	m   map[string]memoryEntry
	now func() time.Time // inyectable para tests de expiración
}

// NewMemory construye la caché en memoria.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]memoryEntry), now: time.Now}
}

// NewMemoryWithClock construye la caché con un reloj propio (tests).
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{m: make(map[string]memoryEntry), now: now}
}

// Get devuelve el valor si existe y no expiró.
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Put guarda el valor con la TTL indicada.
func (c *Memory) Put(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	c.m[key] = memoryEntry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate elimina las claves indicadas.
func (c *Memory) Invalidate(_ context.Context, keys ...string) {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.m, k)
	}
	c.mu.Unlock()
}
