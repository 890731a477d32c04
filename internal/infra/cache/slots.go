package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

const activeSlotsKey = "studio:slots:active"

// RedisSlotCache кэш списка активных слотов в Redis
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotCache создает кэш слотов
func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	return &RedisSlotCache{client: client, ttl: ttl}
}

// Get возвращает закэшированный список. ok=false, если записи нет.
func (c *RedisSlotCache) Get(ctx context.Context) ([]domain.ScheduledSlot, bool, error) {
	if c.client == nil {
		return nil, false, ErrNilClient
	}

	val, err := c.client.Get(ctx, activeSlotsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get slots: %v", ErrRedis, err)
	}

	var slots []domain.ScheduledSlot
	if err := json.Unmarshal(val, &slots); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return slots, true, nil
}

// Set сохраняет список на время ttl
func (c *RedisSlotCache) Set(ctx context.Context, slots []domain.ScheduledSlot) error {
	if c.client == nil {
		return ErrNilClient
	}

	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: marshal slots: %v", ErrDecode, err)
	}
	if err := c.client.Set(ctx, activeSlotsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set slots: %v", ErrRedis, err)
	}
	return nil
}

// Invalidate удаляет запись
func (c *RedisSlotCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return ErrNilClient
	}
	if err := c.client.Del(ctx, activeSlotsKey).Err(); err != nil {
		return fmt.Errorf("%w: delete slots: %v", ErrRedis, err)
	}
	return nil
}

// MemorySlotCache кэш слотов в памяти процесса, используется без Redis
type MemorySlotCache struct {
	mu        sync.RWMutex
	slots     []domain.ScheduledSlot
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewMemorySlotCache создает кэш в памяти
func NewMemorySlotCache(ttl time.Duration) *MemorySlotCache {
	return &MemorySlotCache{ttl: ttl, now: time.Now}
}

func (c *MemorySlotCache) Get(_ context.Context) ([]domain.ScheduledSlot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.slots == nil || !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}
	out := make([]domain.ScheduledSlot, len(c.slots))
	copy(out, c.slots)
	return out, true, nil
}

func (c *MemorySlotCache) Set(_ context.Context, slots []domain.ScheduledSlot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slots = make([]domain.ScheduledSlot, len(slots))
	copy(c.slots, slots)
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

func (c *MemorySlotCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.slots = nil
	return nil
}
