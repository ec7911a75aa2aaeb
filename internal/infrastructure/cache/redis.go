package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
)

var _ ports.Cache = (*Redis)(nil)

// Redis adaptador del puerto Cache sobre Redis, para despliegues con varias
// réplicas donde la invalidación debe ser compartida. Los errores de Redis se
// registran y se tratan como miss: la caché nunca rompe la petición.
type Redis struct {
	client *redis.Client
	prefix string
	log    zerolog.Logger
}

// NewRedis conecta a Redis y verifica con Ping.
func NewRedis(addr, password string, db int, log zerolog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return &Redis{client: client, prefix: "traza:view:", log: log}, nil
}

// Close cierra la conexión.
func (c *Redis) Close() error {
	return c.client.Close()
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("redis get falló, se trata como miss")
		}
		return nil, false
	}
	return val, true
}

func (c *Redis) Put(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis set falló")
	}
}

func (c *Redis) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("redis del falló")
	}
}
