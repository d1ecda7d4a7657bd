package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"estoque/internal/pkg/cache"
	"estoque/internal/pkg/logger"
)

const documentCacheKey = "store:%s:%s"

// Cached aplica cache-aside (Redis) ao FetchOne de um backend vivo.
// Update e Delete invalidam a chave antes e depois de escrever. Falhas do cache nunca falham a chamada.
type Cached struct {
	next  Backend
	cache cache.Client
	ttl   time.Duration
	log   logger.Logger
}

// NewCached envolve next com o cache.
func NewCached(next Backend, cacheClient cache.Client, ttl time.Duration, log logger.Logger) *Cached {
	return &Cached{next: next, cache: cacheClient, ttl: ttl, log: log}
}

func cacheKey(c Collection, id string) string {
	return fmt.Sprintf(documentCacheKey, c, id)
}

func (s *Cached) FetchAll(ctx context.Context, c Collection) ([]json.RawMessage, error) {
	return s.next.FetchAll(ctx, c)
}

// FetchOne tenta o cache antes do backend e popula o cache no acerto do backend.
func (s *Cached) FetchOne(ctx context.Context, c Collection, id string) (json.RawMessage, error) {
	key := cacheKey(c, id)

	cached, err := s.cache.Get(ctx, key)
	if err == nil && json.Valid([]byte(cached)) {
		s.log.Debug("Cache HIT", map[string]interface{}{"key": key})
		return json.RawMessage(cached), nil
	}
	if err != nil && err != cache.ErrCacheMiss {
		s.log.Warn("Falha ao ler do cache Redis", map[string]interface{}{"key": key, "error": err.Error()})
	}

	doc, err := s.next.FetchOne(ctx, c, id)
	if err != nil {
		return nil, err
	}

	if setErr := s.cache.Set(ctx, key, []byte(doc), s.ttl); setErr != nil {
		s.log.Warn("Falha ao gravar no cache Redis", map[string]interface{}{"key": key, "error": setErr.Error()})
	}
	return doc, nil
}

func (s *Cached) FetchByField(ctx context.Context, c Collection, field, value string) ([]json.RawMessage, error) {
	return s.next.FetchByField(ctx, c, field, value)
}

func (s *Cached) Create(ctx context.Context, c Collection, doc json.RawMessage) (json.RawMessage, error) {
	return s.next.Create(ctx, c, doc)
}

// Update invalida a chave antes e depois da escrita: uma leitura concorrente
// que repopule o cache com o documento antigo no meio da escrita é descartada.
func (s *Cached) Update(ctx context.Context, c Collection, id string, doc json.RawMessage) (json.RawMessage, error) {
	s.invalidate(ctx, c, id)
	updated, err := s.next.Update(ctx, c, id, doc)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, c, id)
	return updated, nil
}

func (s *Cached) Delete(ctx context.Context, c Collection, id string) error {
	s.invalidate(ctx, c, id)
	if err := s.next.Delete(ctx, c, id); err != nil {
		return err
	}
	s.invalidate(ctx, c, id)
	return nil
}

func (s *Cached) invalidate(ctx context.Context, c Collection, id string) {
	key := cacheKey(c, id)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn("Falha ao invalidar cache Redis", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
