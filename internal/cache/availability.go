package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/sharpcut-app/barber-marketplace/internal/domain/booking"
)

const availabilityTTL = 60 * time.Second

// AvailabilityCache guarda o resultado do cálculo de disponibilidade
// por (barbeiro, serviço, data). Qualquer mutação de agenda do
// barbeiro invalida o dia inteiro.
type AvailabilityCache struct {
	client *redis.Client
}

func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

func key(barberID, serviceID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s:%d", barberID, date, serviceID)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	barberID, serviceID uint,
	date string,
) (*domain.AvailabilityResult, bool) {

	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key(barberID, serviceID, date)).Result()
	if err != nil {
		return nil, false // redis.Nil ou indisponível: segue sem cache
	}

	var result domain.AvailabilityResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, false
	}

	return &result, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	barberID, serviceID uint,
	date string,
	result *domain.AvailabilityResult,
) {

	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return
	}

	_ = c.client.Set(ctx, key(barberID, serviceID, date), raw, availabilityTTL).Err()
}

// InvalidateDay derruba as entradas de todos os serviços do barbeiro
// naquela data.
func (c *AvailabilityCache) InvalidateDay(
	ctx context.Context,
	barberID uint,
	date string,
) {

	if c == nil || c.client == nil {
		return
	}

	pattern := fmt.Sprintf("availability:%d:%s:*", barberID, date)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}

	_ = c.client.Del(ctx, keys...).Err()
}

// InvalidateBarber derruba todas as entradas do barbeiro, qualquer
// data. Usado quando a grade semanal muda e afeta todos os dias.
func (c *AvailabilityCache) InvalidateBarber(ctx context.Context, barberID uint) {
	if c == nil || c.client == nil {
		return
	}

	pattern := fmt.Sprintf("availability:%d:*", barberID)
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}

	_ = c.client.Del(ctx, keys...).Err()
}
