package webhook

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store registra os IDs de eventos já processados.
// MarkSeen devolve true quando o ID ainda não havia sido visto dentro do ttl.
type Store interface {
	MarkSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error)
}

// MemoryStore guarda os IDs em memória; serve para uma única instância
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
	now  func() time.Time
}

// NewMemoryStore cria um store vazio
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seen: make(map[string]time.Time),
		now:  time.Now,
	}
}

// MarkSeen registra eventID e descarta os IDs expirados
func (s *MemoryStore) MarkSeen(_ context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, expires := range s.seen {
		if !now.Before(expires) {
			delete(s.seen, id)
		}
	}

	if _, ok := s.seen[eventID]; ok {
		return false, nil
	}
	s.seen[eventID] = now.Add(ttl)
	return true, nil
}

// RedisStore compartilha os IDs entre instâncias usando SET NX com TTL
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore cria um store sobre um cliente go-redis
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "membros:webhook"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(eventID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, eventID)
}

// MarkSeen grava a chave com SET NX; false indica que o evento já foi visto
func (s *RedisStore) MarkSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(eventID), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("erro ao registrar evento no redis: %w", err)
	}
	return ok, nil
}
