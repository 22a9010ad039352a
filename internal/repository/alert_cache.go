package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Krimson/stress-monitory/pkg/models"
)

// alertsCacheKey - единственный ключ кэша: список алертов глобальный
const alertsCacheKey = "alerts:list"

// ErrCacheMiss возвращается когда списка алертов нет в кэше
var ErrCacheMiss = errors.New("alerts cache miss")

// AlertCache кэширует read-path список алертов в Redis. Кэш сбрасывается
// при вставке нового алерта и в любом случае истекает по TTL.
type AlertCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAlertCache создает кэш списка алертов
func NewAlertCache(addr, password string, db int, ttl time.Duration) *AlertCache {
	return &AlertCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// CheckConnection проверяет подключение к Redis
func (c *AlertCache) CheckConnection(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает подключение к Redis
func (c *AlertCache) Close() error {
	return c.client.Close()
}

// Get возвращает закэшированный список алертов; ErrCacheMiss если кэш пуст
func (c *AlertCache) Get(ctx context.Context) ([]models.AlertRow, error) {
	data, err := c.client.Get(ctx, alertsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var alerts []models.AlertRow
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached alerts: %w", err)
	}

	return alerts, nil
}

// Set сохраняет список алертов в кэш с TTL
func (c *AlertCache) Set(ctx context.Context, alerts []models.AlertRow) error {
	data, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal alerts: %w", err)
	}

	if err := c.client.Set(ctx, alertsCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache alerts: %w", err)
	}

	return nil
}

// Invalidate сбрасывает кэш после записи нового алерта
func (c *AlertCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, alertsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate alerts cache: %w", err)
	}
	return nil
}
