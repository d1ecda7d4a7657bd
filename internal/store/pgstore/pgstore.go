// Package pgstore é o backend vivo sobre PostgreSQL: cada documento é uma linha
// da tabela documents (coleção, id, corpo JSONB), ordenada pela sequência de criação.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/store"
)

// Store implementa store.Backend em PostgreSQL.
type Store struct {
	DB        *sql.DB
	DBTimeout time.Duration
	log       logger.Logger
}

// New cria o backend sobre uma conexão já aberta (ver database.NewPostgresDB).
func New(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *Store {
	return &Store{DB: db, DBTimeout: dbTimeout, log: log}
}

// classify traduz erros do driver: violação de unicidade vira DuplicateEntity,
// falhas de conexão viram Unavailable, demais erros do servidor viram DBError.
// ctx é o contexto de quem chamou: se ele foi cancelado, o erro (inclusive o
// 57014 que o driver devolve ao cancelar a consulta) não conta como indisponibilidade.
func (s *Store) classify(ctx context.Context, msg string, err error) error {
	if store.CallerCanceled(ctx, err) {
		return apperror.NewInternalError(msg+": requisição cancelada", err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "23505":
			return apperror.NewDuplicateEntityError(msg)
		case pqErr.Code.Class() == "08", pqErr.Code.Class() == "57":
			return apperror.NewUnavailableError(msg, err)
		}
		return apperror.NewDBError(msg, err)
	}
	s.log.Error("Falha de conexão com o PostgreSQL", err)
	return apperror.NewUnavailableError(msg, err)
}

func notFound(c store.Collection, id string) error {
	return apperror.NewNotFoundError(fmt.Sprintf("documento %s não existe em %s", id, c))
}

func (s *Store) query(ctx context.Context, msg, q string, args ...interface{}) ([]json.RawMessage, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	rows, err := s.DB.QueryContext(ctxTimeout, q, args...)
	if err != nil {
		return nil, s.classify(ctx, msg, err)
	}
	defer rows.Close()

	out := make([]json.RawMessage, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, s.classify(ctx, msg, err)
		}
		out = append(out, json.RawMessage(body))
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify(ctx, msg, err)
	}
	return out, nil
}

func (s *Store) FetchAll(ctx context.Context, c store.Collection) ([]json.RawMessage, error) {
	const q = `SELECT body FROM documents WHERE collection = $1 ORDER BY seq`
	return s.query(ctx, "falha ao listar documentos", q, string(c))
}

func (s *Store) FetchOne(ctx context.Context, c store.Collection, id string) (json.RawMessage, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	const q = `SELECT body FROM documents WHERE collection = $1 AND id = $2`

	var body []byte
	err := s.DB.QueryRowContext(ctxTimeout, q, string(c), id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, notFound(c, id)
	}
	if err != nil {
		return nil, s.classify(ctx, "falha ao buscar documento", err)
	}
	return body, nil
}

func (s *Store) FetchByField(ctx context.Context, c store.Collection, field, value string) ([]json.RawMessage, error) {
	const q = `SELECT body FROM documents WHERE collection = $1 AND body->>$2 = $3 ORDER BY seq`
	return s.query(ctx, "falha ao buscar documentos por campo", q, string(c), field, value)
}

// Create grava o documento, gerando um id quando ausente.
func (s *Store) Create(ctx context.Context, c store.Collection, doc json.RawMessage) (json.RawMessage, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, apperror.NewValidationError("documento JSON inválido")
	}

	id, _ := fields["id"].(string)
	if id == "" {
		id = uuid.New().String()
		fields["id"] = id
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, apperror.NewInternalError("falha ao serializar documento", err)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	const q = `INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb) RETURNING body`

	var created []byte
	if err := s.DB.QueryRowContext(ctxTimeout, q, string(c), id, string(body)).Scan(&created); err != nil {
		return nil, s.classify(ctx, fmt.Sprintf("falha ao inserir documento %s em %s", id, c), err)
	}

	s.log.Debug("Documento criado no PostgreSQL", map[string]interface{}{"collection": string(c), "id": id})
	return created, nil
}

// Update mescla raso o corpo recebido sobre o documento existente; o id não muda.
func (s *Store) Update(ctx context.Context, c store.Collection, id string, doc json.RawMessage) (json.RawMessage, error) {
	if !json.Valid(doc) {
		return nil, apperror.NewValidationError("documento JSON inválido")
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	const q = `
		UPDATE documents
		SET body = body || $3::jsonb || jsonb_build_object('id', id), updated_at = NOW()
		WHERE collection = $1 AND id = $2
		RETURNING body`

	var updated []byte
	err := s.DB.QueryRowContext(ctxTimeout, q, string(c), id, string(doc)).Scan(&updated)
	if err == sql.ErrNoRows {
		return nil, notFound(c, id)
	}
	if err != nil {
		return nil, s.classify(ctx, "falha ao atualizar documento", err)
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, c store.Collection, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	res, err := s.DB.ExecContext(ctxTimeout, `DELETE FROM documents WHERE collection = $1 AND id = $2`, string(c), id)
	if err != nil {
		return s.classify(ctx, "falha ao remover documento", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.classify(ctx, "falha ao remover documento", err)
	}
	if n == 0 {
		return notFound(c, id)
	}
	return nil
}
