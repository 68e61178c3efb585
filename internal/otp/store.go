package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotConfigured = errors.New("otp store is not configured")

const codeTTL = 5 * time.Minute

// Store хранит коды подтверждения телефона в Redis с TTL.
// Коды переживают рестарт процесса, в отличие от хранения в памяти.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client, ttl: codeTTL}
}

// Issue генерирует шестизначный код для пользователя и сохраняет его с TTL
func (s *Store) Issue(ctx context.Context, telegramID int64) (string, error) {
	if s.client == nil {
		return "", ErrNotConfigured
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.client.Set(ctx, key(telegramID), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store otp code: %w", err)
	}
	return code, nil
}

// Verify проверяет код. При совпадении код удаляется — повторное
// использование невозможно. Истёкший или отсутствующий код — не совпадение.
func (s *Store) Verify(ctx context.Context, telegramID int64, code string) (bool, error) {
	if s.client == nil {
		return false, ErrNotConfigured
	}

	stored, err := s.client.Get(ctx, key(telegramID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load otp code: %w", err)
	}

	if stored != code {
		return false, nil
	}

	if err := s.client.Del(ctx, key(telegramID)).Err(); err != nil {
		return false, fmt.Errorf("clear otp code: %w", err)
	}
	return true, nil
}

func key(telegramID int64) string {
	return fmt.Sprintf("otp:%d", telegramID)
}
