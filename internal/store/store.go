// Package store é o cliente de armazenamento de entidades: seis operações por
// coleção sobre documentos JSON, com um backend vivo e o espelho em memória
// como reserva.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection é o nome de uma coleção de documentos.
type Collection string

const (
	Products  Collection = "produtos"
	Brands    Collection = "marcas"
	Movements Collection = "movimentacoes"
	Users     Collection = "users"
)

// Collections lista todas as coleções conhecidas.
var Collections = []Collection{Products, Brands, Movements, Users}

// Backend é o contrato comum ao servidor de documentos, ao Postgres, ao
// espelho e aos decoradores. Erros: apperror.NotFoundError quando o documento
// não existe; apperror.UnavailableError quando o armazenamento não responde.
type Backend interface {
	FetchAll(ctx context.Context, c Collection) ([]json.RawMessage, error)
	FetchOne(ctx context.Context, c Collection, id string) (json.RawMessage, error)
	FetchByField(ctx context.Context, c Collection, field, value string) ([]json.RawMessage, error)
	Create(ctx context.Context, c Collection, doc json.RawMessage) (json.RawMessage, error)
	Update(ctx context.Context, c Collection, id string, doc json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, c Collection, id string) error
}

// CallerCanceled informa se err vem do cancelamento do contexto de quem chamou
// (cliente desconectado, por exemplo). Esse caso não é indisponibilidade do
// armazenamento; prazo esgotado continua sendo.
func CallerCanceled(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled)
}
