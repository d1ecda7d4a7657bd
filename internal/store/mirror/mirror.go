// Package mirror é o armazenamento em memória usado quando o backend vivo está
// indisponível. Começa com a carga estática embutida e não persiste nada entre
// reinícios.
package mirror

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/store"
)

//go:embed seed.json
var seedData []byte

type document map[string]interface{}

// Mirror implementa store.Backend em memória.
type Mirror struct {
	mu      sync.RWMutex
	data    map[store.Collection][]document
	latency time.Duration
	log     logger.Logger
}

// New cria o espelho com a carga estática embutida.
func New(latency time.Duration, log logger.Logger) (*Mirror, error) {
	return NewFromJSON(seedData, latency, log)
}

// NewFromJSON cria o espelho a partir de um objeto {coleção: [documentos]}.
func NewFromJSON(seed []byte, latency time.Duration, log logger.Logger) (*Mirror, error) {
	var raw map[store.Collection][]document
	dec := json.NewDecoder(bytes.NewReader(seed))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("falha ao carregar dados estáticos do espelho: %w", err)
	}

	m := &Mirror{
		data:    make(map[store.Collection][]document, len(store.Collections)),
		latency: latency,
		log:     log,
	}
	for _, c := range store.Collections {
		m.data[c] = raw[c]
	}
	return m, nil
}

func (m *Mirror) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return nil
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func notFound(c store.Collection) error {
	switch c {
	case store.Products:
		return apperror.NewNotFoundError("Produto não encontrado")
	case store.Brands:
		return apperror.NewNotFoundError("Marca não encontrada")
	case store.Movements:
		return apperror.NewNotFoundError("Movimentação não encontrada")
	case store.Users:
		return apperror.NewNotFoundError("Usuário não encontrado")
	}
	return apperror.NewNotFoundError(fmt.Sprintf("Documento não encontrado em %s", c))
}

// fieldString devolve o valor do campo na forma usada pela consulta por campo.
func fieldString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

func (m *Mirror) indexOf(c store.Collection, id string) int {
	for i, doc := range m.data[c] {
		if fieldString(doc["id"]) == id {
			return i
		}
	}
	return -1
}

func encode(doc document) (json.RawMessage, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, apperror.NewInternalError("falha ao serializar documento do espelho", err)
	}
	return b, nil
}

func decode(raw json.RawMessage) (document, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, apperror.NewValidationError("documento JSON inválido")
	}
	return doc, nil
}

func (m *Mirror) FetchAll(ctx context.Context, c store.Collection) ([]json.RawMessage, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]json.RawMessage, 0, len(m.data[c]))
	for _, doc := range m.data[c] {
		raw, err := encode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func (m *Mirror) FetchOne(ctx context.Context, c store.Collection, id string) (json.RawMessage, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(c, id)
	if i < 0 {
		return nil, notFound(c)
	}
	return encode(m.data[c][i])
}

func (m *Mirror) FetchByField(ctx context.Context, c store.Collection, field, value string) ([]json.RawMessage, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]json.RawMessage, 0)
	for _, doc := range m.data[c] {
		if fieldString(doc[field]) != value {
			continue
		}
		raw, err := encode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

// Create acrescenta o documento ao fim da coleção, gerando um id se ausente.
func (m *Mirror) Create(ctx context.Context, c store.Collection, raw json.RawMessage) (json.RawMessage, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	doc, err := decode(raw)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := fieldString(doc["id"])
	if id == "" {
		id = uuid.New().String()
		doc["id"] = id
	}
	if m.indexOf(c, id) >= 0 {
		return nil, apperror.NewDuplicateEntityError(fmt.Sprintf("id %s já existe em %s", id, c))
	}

	m.data[c] = append(m.data[c], doc)
	m.log.Debug("Documento criado no espelho", map[string]interface{}{"collection": string(c), "id": id})
	return encode(doc)
}

// Update mescla raso os campos recebidos sobre o documento existente. O id não muda.
func (m *Mirror) Update(ctx context.Context, c store.Collection, id string, raw json.RawMessage) (json.RawMessage, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	patch, err := decode(raw)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(c, id)
	if i < 0 {
		return nil, notFound(c)
	}

	merged := make(document, len(m.data[c][i])+len(patch))
	for k, v := range m.data[c][i] {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	merged["id"] = m.data[c][i]["id"]

	m.data[c][i] = merged
	return encode(merged)
}

func (m *Mirror) Delete(ctx context.Context, c store.Collection, id string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(c, id)
	if i < 0 {
		return notFound(c)
	}
	m.data[c] = append(m.data[c][:i:i], m.data[c][i+1:]...)
	return nil
}
