package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "studio:auth:revoked:"

// RedisDenylist отозванные токены (выход из аккаунта) в Redis.
// Запись живёт не дольше самого токена.
type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist создает denylist
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

// Revoke помечает токен отозванным до момента его истечения
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if d.client == nil {
		return ErrNilClient
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, revokedTokenPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%w: revoke token: %v", ErrRedis, err)
	}
	return nil
}

// IsRevoked проверяет, отозван ли токен
func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if d.client == nil {
		return false, ErrNilClient
	}
	n, err := d.client.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: check token: %v", ErrRedis, err)
	}
	return n > 0, nil
}

// MemoryDenylist denylist в памяти процесса
type MemoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryDenylist создает denylist в памяти
func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for id, exp := range d.revoked {
		if !now.Before(exp) {
			delete(d.revoked, id)
		}
	}
	if now.Before(expiresAt) {
		d.revoked[tokenID] = expiresAt
	}
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[tokenID]
	return ok && d.now().Before(exp), nil
}
