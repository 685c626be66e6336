package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotCache guarda resultados de disponibilidade por pouco tempo.
//
// Cada barbeiro tem um contador de versão; qualquer escrita que afete a
// agenda (booking, pausa, exceção, expediente) incrementa a versão e
// invalida tudo daquele barbeiro de uma vez, sem varrer chaves.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSlotCache retorna um cache desabilitado quando addr é vazio —
// os call sites não precisam tratar o caso separadamente.
func NewSlotCache(addr, password string, ttl time.Duration) *SlotCache {
	if addr == "" {
		return &SlotCache{}
	}
	return &SlotCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
		ttl: ttl,
	}
}

func (c *SlotCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *SlotCache) Get(ctx context.Context, barberID uint, date string, durationMin, gapMin int) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}

	payload, err := c.rdb.Get(ctx, c.key(ctx, barberID, date, durationMin, gapMin)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *SlotCache) Set(ctx context.Context, barberID uint, date string, durationMin, gapMin int, payload []byte) {
	if !c.Enabled() {
		return
	}
	// erro de cache nunca derruba a requisição
	c.rdb.Set(ctx, c.key(ctx, barberID, date, durationMin, gapMin), payload, c.ttl)
}

// Invalidate incrementa a versão do barbeiro; as chaves antigas expiram pelo TTL
func (c *SlotCache) Invalidate(ctx context.Context, barberID uint) {
	if !c.Enabled() {
		return
	}
	c.rdb.Incr(ctx, versionKey(barberID))
}

func (c *SlotCache) key(ctx context.Context, barberID uint, date string, durationMin, gapMin int) string {
	ver, err := c.rdb.Get(ctx, versionKey(barberID)).Int64()
	if err != nil {
		ver = 0
	}
	return fmt.Sprintf("slots:%d:%d:%s:%d:%d", barberID, ver, date, durationMin, gapMin)
}

func versionKey(barberID uint) string {
	return fmt.Sprintf("slots:ver:%d", barberID)
}
