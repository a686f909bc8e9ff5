package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const key = "salon:settings"

// Cache кэш настроек салона в Redis
// Нулевой клиент означает, что кэш выключен: Get всегда промах, Set/Invalidate ничего не делают
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache создает кэш настроек; client может быть nil
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// NewRedisClient подключается к Redis и проверяет соединение
// При недоступности сервера возвращает nil, и приложение работает без кэша
func NewRedisClient(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

func (c *Cache) enabled() bool {
	return c != nil && c.client != nil
}

// Get читает настройки из кэша
func (c *Cache) Get(ctx context.Context) (*domain.Settings, error) {
	if !c.enabled() {
		return nil, ErrCacheMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", ErrCache, err)
	}

	return decode(data)
}

// Set сохраняет настройки с TTL
func (c *Cache) Set(ctx context.Context, s *domain.Settings) error {
	if !c.enabled() {
		return nil
	}

	data, err := encode(s)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет настройки из кэша после изменения
func (c *Cache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrCache, err)
	}
	return nil
}

type cachedSettings struct {
	HeroTitle       string             `json:"hero_title"`
	HeroSubtitle    string             `json:"hero_subtitle"`
	HeroDescription string             `json:"hero_description"`
	HeroImageURL    string             `json:"hero_image_url"`
	AdminPhone      string             `json:"admin_phone"`
	TimeSlots       []types.TimeString `json:"time_slots"`
	WorkingDays     []int              `json:"working_days"`
	OpeningTime     types.TimeString   `json:"opening_time"`
	ClosingTime     types.TimeString   `json:"closing_time"`
}

func encode(s *domain.Settings) ([]byte, error) {
	data, err := json.Marshal(cachedSettings{
		HeroTitle:       s.HeroTitle,
		HeroSubtitle:    s.HeroSubtitle,
		HeroDescription: s.HeroDescription,
		HeroImageURL:    s.HeroImageURL,
		AdminPhone:      s.AdminPhone,
		TimeSlots:       s.TimeSlots,
		WorkingDays:     s.WorkingDays,
		OpeningTime:     s.OpeningTime,
		ClosingTime:     s.ClosingTime,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrCache, err)
	}
	return data, nil
}

func decode(data []byte) (*domain.Settings, error) {
	var cs cachedSettings
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCache, err)
	}

	return &domain.Settings{
		ID:              domain.SettingsID,
		HeroTitle:       cs.HeroTitle,
		HeroSubtitle:    cs.HeroSubtitle,
		HeroDescription: cs.HeroDescription,
		HeroImageURL:    cs.HeroImageURL,
		AdminPhone:      cs.AdminPhone,
		TimeSlots:       cs.TimeSlots,
		WorkingDays:     cs.WorkingDays,
		OpeningTime:     cs.OpeningTime,
		ClosingTime:     cs.ClosingTime,
	}, nil
}
