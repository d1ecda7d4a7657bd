package store

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
)

// Mode é o estado do seletor de armazenamento.
type Mode int32

const (
	ModeLive Mode = iota
	ModeMirror
)

func (m Mode) String() string {
	if m == ModeMirror {
		return "mirror"
	}
	return "live"
}

// Status é a visão do seletor exposta em /v1/store/status.
type Status struct {
	Mode       string     `json:"mode"`
	SwitchedAt *time.Time `json:"switched_at,omitempty"`
	Reason     string     `json:"reason,omitempty"`
}

// Selector escolhe entre o backend vivo e o espelho. A única transição é
// Live -> Mirror, tomada uma vez quando uma chamada viva devolve Unavailable;
// essa mesma chamada é então servida pelo espelho. Não há volta nem mescla de dados.
type Selector struct {
	live   Backend
	mirror Backend
	log    logger.Logger

	mode       atomic.Int32
	switchedAt atomic.Pointer[time.Time]
	reason     atomic.Value
}

// NewSelector cria o seletor no modo inicial informado. Sem backend vivo, o
// seletor começa (e permanece) no espelho.
func NewSelector(live, mirror Backend, initial Mode, log logger.Logger) *Selector {
	s := &Selector{live: live, mirror: mirror, log: log}
	if live == nil {
		initial = ModeMirror
	}
	s.mode.Store(int32(initial))
	return s
}

// Mode devolve o modo atual.
func (s *Selector) Mode() Mode {
	return Mode(s.mode.Load())
}

// Status devolve o modo atual e, se houve troca, quando e por quê.
func (s *Selector) Status() Status {
	st := Status{Mode: s.Mode().String()}
	if at := s.switchedAt.Load(); at != nil {
		st.SwitchedAt = at
	}
	if reason, ok := s.reason.Load().(string); ok {
		st.Reason = reason
	}
	return st
}

func (s *Selector) switchToMirror(op string, c Collection, cause error) {
	if !s.mode.CompareAndSwap(int32(ModeLive), int32(ModeMirror)) {
		return
	}
	now := time.Now().UTC()
	s.switchedAt.Store(&now)
	s.reason.Store(cause.Error())
	s.log.Warn("Armazenamento vivo indisponível; passando a usar o espelho em memória até o fim do processo.", map[string]interface{}{
		"operation":  op,
		"collection": string(c),
		"error":      cause.Error(),
	})
}

func run[T any](ctx context.Context, s *Selector, op string, c Collection, fn func(Backend) (T, error)) (T, error) {
	if s.Mode() == ModeMirror {
		return fn(s.mirror)
	}

	res, err := fn(s.live)
	if err == nil || !apperror.IsUnavailable(err) || CallerCanceled(ctx, err) {
		return res, err
	}

	s.switchToMirror(op, c, err)
	return fn(s.mirror)
}

func (s *Selector) FetchAll(ctx context.Context, c Collection) ([]json.RawMessage, error) {
	return run(ctx, s, "FetchAll", c, func(b Backend) ([]json.RawMessage, error) {
		return b.FetchAll(ctx, c)
	})
}

func (s *Selector) FetchOne(ctx context.Context, c Collection, id string) (json.RawMessage, error) {
	return run(ctx, s, "FetchOne", c, func(b Backend) (json.RawMessage, error) {
		return b.FetchOne(ctx, c, id)
	})
}

func (s *Selector) FetchByField(ctx context.Context, c Collection, field, value string) ([]json.RawMessage, error) {
	return run(ctx, s, "FetchByField", c, func(b Backend) ([]json.RawMessage, error) {
		return b.FetchByField(ctx, c, field, value)
	})
}

func (s *Selector) Create(ctx context.Context, c Collection, doc json.RawMessage) (json.RawMessage, error) {
	return run(ctx, s, "Create", c, func(b Backend) (json.RawMessage, error) {
		return b.Create(ctx, c, doc)
	})
}

func (s *Selector) Update(ctx context.Context, c Collection, id string, doc json.RawMessage) (json.RawMessage, error) {
	return run(ctx, s, "Update", c, func(b Backend) (json.RawMessage, error) {
		return b.Update(ctx, c, id, doc)
	})
}

func (s *Selector) Delete(ctx context.Context, c Collection, id string) error {
	_, err := run(ctx, s, "Delete", c, func(b Backend) (struct{}, error) {
		return struct{}{}, b.Delete(ctx, c, id)
	})
	return err
}
