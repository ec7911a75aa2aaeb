// Package ports define puertos de la capa de aplicación hacia infraestructura
// que no pertenecen a un caso de uso concreto.
package ports

import (
	"context"
	"encoding/json"
	"time"
)

// Claves lógicas de la caché de vistas derivadas. Conjunto fijo y pequeño:
// cada operación de escritura invalida las claves cuyo valor depende de lo
// que acaba de mutar.
const (
	CacheKeyLogs         = "logs"
	CacheKeyProducts     = "products"
	CacheKeySummary      = "summary"
	CacheKeyCakeStatus   = "cake_status"
	CacheKeyLiveOps      = "live_ops"
	CacheKeyWeeklyReport = "weekly_report"
	CacheKeyUsers        = "users"
	CacheKeyClients      = "b2b_clients"
)

// DefaultTTL ventana de caducidad de la caché de lecturas. La TTL corta es una
// ventana de obsolescencia tolerada, no un mecanismo de corrección: la
// invalidación explícita en las escrituras es lo que mantiene la vista fresca.
const DefaultTTL = 10 * time.Second

// Cache puerto de caché clave/valor con expiración e invalidación en bloque.
// Los adaptadores son best-effort: un fallo de caché nunca rompe la petición
// (se degrada a recomputar).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration)
	Invalidate(ctx context.Context, keys ...string)
}

// Through envoltorio read-through: devuelve el valor cacheado si existe y no
// expiró; si no, ejecuta compute, guarda el resultado serializado con la TTL
// indicada y lo devuelve. Guardar bytes serializados garantiza que dos
// lecturas dentro de la ventana sean byte-idénticas.
//
// Sin caché negativa ni protección de estampida: dos misses concurrentes sobre
// la misma clave recomputan ambos (aceptable con esta relación lectura/escritura).
func Through(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() (any, error)) (json.RawMessage, error) {
	if cached, ok := c.Get(ctx, key); ok {
		return cached, nil
	}
	v, err := compute()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	c.Put(ctx, key, raw, ttl)
	return raw, nil
}
