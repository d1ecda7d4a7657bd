// Package httpstore é o backend vivo sobre um servidor de documentos JSON no
// estilo json-server: /{coleção}, /{coleção}/{id} e /{coleção}?campo=valor.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/store"
)

// Store implementa store.Backend via HTTP.
type Store struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

// New cria o cliente com o timeout de transporte informado.
func New(baseURL string, timeout time.Duration, log logger.Logger) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (s *Store) collectionURL(c store.Collection) string {
	return s.baseURL + "/" + url.PathEscape(string(c))
}

func (s *Store) documentURL(c store.Collection, id string) string {
	return s.collectionURL(c) + "/" + url.PathEscape(id)
}

// do executa a requisição e classifica a resposta: 404 vira NotFound; erro de
// transporte, timeout e 5xx viram Unavailable; cancelamento pelo chamador não.
func (s *Store) do(ctx context.Context, method, target string, body []byte, c store.Collection) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, apperror.NewInternalError("falha ao montar requisição ao armazenamento", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	s.log.Debug("Requisição ao armazenamento", map[string]interface{}{"method": method, "url": target})

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, s.transportError(ctx, fmt.Sprintf("%s %s", method, target), err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, s.transportError(ctx, "falha ao ler resposta do armazenamento", err)
	}

	s.log.Debug("Resposta do armazenamento", map[string]interface{}{
		"method":      method,
		"url":         target,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperror.NewNotFoundError(fmt.Sprintf("documento não encontrado em %s", c))
	case resp.StatusCode >= 500:
		return nil, apperror.NewUnavailableError(fmt.Sprintf("armazenamento respondeu %d", resp.StatusCode), nil)
	case resp.StatusCode >= 400:
		return nil, apperror.NewInternalError(fmt.Sprintf("armazenamento rejeitou a requisição (%d): %s", resp.StatusCode, strings.TrimSpace(string(payload))), nil)
	}
	return payload, nil
}

// transportError separa o cancelamento feito pelo chamador, que não diz nada
// sobre a saúde do servidor, das falhas de rede e timeouts.
func (s *Store) transportError(ctx context.Context, msg string, err error) error {
	if store.CallerCanceled(ctx, err) {
		s.log.Debug("Requisição ao armazenamento cancelada pelo chamador", map[string]interface{}{"request": msg})
		return apperror.NewInternalError("requisição ao armazenamento cancelada: "+msg, err)
	}
	s.log.Error("Erro de transporte ao acessar o armazenamento", err)
	return apperror.NewUnavailableError(msg, err)
}

func decodeList(payload []byte) ([]json.RawMessage, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, apperror.NewInternalError("resposta de lista inválida do armazenamento", err)
	}
	return list, nil
}

func (s *Store) FetchAll(ctx context.Context, c store.Collection) ([]json.RawMessage, error) {
	payload, err := s.do(ctx, http.MethodGet, s.collectionURL(c), nil, c)
	if err != nil {
		return nil, err
	}
	return decodeList(payload)
}

func (s *Store) FetchOne(ctx context.Context, c store.Collection, id string) (json.RawMessage, error) {
	payload, err := s.do(ctx, http.MethodGet, s.documentURL(c, id), nil, c)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *Store) FetchByField(ctx context.Context, c store.Collection, field, value string) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set(field, value)
	payload, err := s.do(ctx, http.MethodGet, s.collectionURL(c)+"?"+q.Encode(), nil, c)
	if err != nil {
		return nil, err
	}
	return decodeList(payload)
}

func (s *Store) Create(ctx context.Context, c store.Collection, doc json.RawMessage) (json.RawMessage, error) {
	payload, err := s.do(ctx, http.MethodPost, s.collectionURL(c), doc, c)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Update usa PUT: o servidor substitui o documento pelo corpo enviado.
func (s *Store) Update(ctx context.Context, c store.Collection, id string, doc json.RawMessage) (json.RawMessage, error) {
	payload, err := s.do(ctx, http.MethodPut, s.documentURL(c, id), doc, c)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *Store) Delete(ctx context.Context, c store.Collection, id string) error {
	_, err := s.do(ctx, http.MethodDelete, s.documentURL(c, id), nil, c)
	return err
}
