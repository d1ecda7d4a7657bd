package store

import (
	"context"
	"encoding/json"
	"fmt"

	apperror "estoque/internal/errors"
)

// Repository é a visão tipada de uma coleção.
type Repository[T any] struct {
	backend    Backend
	collection Collection
}

// NewRepository cria o repositório tipado da coleção c.
func NewRepository[T any](backend Backend, c Collection) *Repository[T] {
	return &Repository[T]{backend: backend, collection: c}
}

// Collection devolve o nome da coleção.
func (r *Repository[T]) Collection() Collection {
	return r.collection
}

func (r *Repository[T]) decode(raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, apperror.NewInternalError(fmt.Sprintf("documento inválido em %s", r.collection), err)
	}
	return v, nil
}

func (r *Repository[T]) decodeAll(raws []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		v, err := r.decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	raws, err := r.backend.FetchAll(ctx, r.collection)
	if err != nil {
		return nil, err
	}
	return r.decodeAll(raws)
}

func (r *Repository[T]) FindByID(ctx context.Context, id string) (T, error) {
	raw, err := r.backend.FetchOne(ctx, r.collection, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return r.decode(raw)
}

// FindBy devolve os documentos cujo campo field é igual a value, na ordem de criação.
func (r *Repository[T]) FindBy(ctx context.Context, field, value string) ([]T, error) {
	raws, err := r.backend.FetchByField(ctx, r.collection, field, value)
	if err != nil {
		return nil, err
	}
	return r.decodeAll(raws)
}

func (r *Repository[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	doc, err := json.Marshal(v)
	if err != nil {
		return zero, apperror.NewInternalError("falha ao serializar documento", err)
	}
	raw, err := r.backend.Create(ctx, r.collection, doc)
	if err != nil {
		return zero, err
	}
	return r.decode(raw)
}

func (r *Repository[T]) Update(ctx context.Context, id string, v T) (T, error) {
	var zero T
	doc, err := json.Marshal(v)
	if err != nil {
		return zero, apperror.NewInternalError("falha ao serializar documento", err)
	}
	raw, err := r.backend.Update(ctx, r.collection, id, doc)
	if err != nil {
		return zero, err
	}
	return r.decode(raw)
}

func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.backend.Delete(ctx, r.collection, id)
}
