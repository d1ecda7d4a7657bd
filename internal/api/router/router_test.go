package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/api/brand"
	"estoque/internal/api/movement"
	"estoque/internal/api/product"
	"estoque/internal/api/system"
	"estoque/internal/api/user"
	"estoque/internal/domain"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/token"
	"estoque/internal/repository/brandrepo"
	"estoque/internal/repository/movementrepo"
	"estoque/internal/repository/productrepo"
	"estoque/internal/repository/userrepo"
	"estoque/internal/service/brandservice"
	"estoque/internal/service/ledgerservice"
	"estoque/internal/service/productservice"
	"estoque/internal/service/userservice"
	"estoque/internal/store"
	"estoque/internal/store/mirror"
)

// memoryRevocations substitui o Redis nos testes de rota.
type memoryRevocations struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (m *memoryRevocations) Revoke(ctx context.Context, tokenID string, expiresAt int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[tokenID] = true
	return nil
}

func (m *memoryRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ids[tokenID], nil
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	log := logger.NewNop()
	m, err := mirror.New(0, log)
	require.NoError(t, err)
	selector := store.NewSelector(nil, m, store.ModeMirror, log)

	products := productrepo.NewProductRepository(selector, log)
	brands := brandrepo.NewBrandRepository(selector, log)
	movements := movementrepo.NewMovementRepository(selector, log)
	users := userrepo.NewUserRepository(selector, log)

	tokens := token.NewService("segredo-de-teste", time.Hour)
	revocations := &memoryRevocations{ids: map[string]bool{}}
	ledger := ledgerservice.NewService(products, movements, log)

	handlers := Handlers{
		Product:  product.NewHandler(productservice.NewService(products, brands, log), ledger, log),
		Brand:    brand.NewHandler(brandservice.NewService(brands, log), log),
		Movement: movement.NewHandler(ledger, log),
		User:     user.NewHandler(userservice.NewService(users, tokens, revocations, log), log),
		System:   system.NewHandler(selector, log),
	}
	return NewRouter(handlers, Auth{Tokens: tokens, Revocations: revocations}, log)
}

func call(t *testing.T, srv http.Handler, method, target, tokenString, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if tokenString != "" {
		req.Header.Set("Authorization", "Bearer "+tokenString)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, srv http.Handler, email, password string) string {
	t.Helper()
	rec := call(t, srv, http.MethodPost, "/v1/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp domain.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func register(t *testing.T, srv http.Handler, email string) string {
	t.Helper()
	rec := call(t, srv, http.MethodPost, "/v1/register", "", `{"name":"Operador Novo","email":"`+email+`","password":"segredo1","role":"ADMIN"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp domain.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, domain.RoleOperator, resp.User.Role)
	return resp.Token
}

func TestPublicRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := call(t, srv, http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, srv, http.MethodGet, "/v1/produtos", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleGating(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin@estoque.com", "admin123")
	manager := login(t, srv, "gerente@estoque.com", "gerente123")
	operator := register(t, srv, "operador@estoque.com")

	tests := []struct {
		name       string
		token      string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"operador lista produtos", operator, http.MethodGet, "/v1/produtos", "", http.StatusOK},
		{"operador não edita produto", operator, http.MethodPut, "/v1/produtos/1", `{"descricao":"X"}`, http.StatusForbidden},
		{"gerente edita produto", manager, http.MethodPut, "/v1/produtos/1", `{"descricao":"Produto Principal Editado"}`, http.StatusOK},
		{"operador não remove marca", operator, http.MethodDelete, "/v1/marcas/866e", "", http.StatusForbidden},
		{"operador vê histórico da marca", operator, http.MethodGet, "/v1/marcas/40ed/historico", "", http.StatusOK},
		{"gerente não lista usuários", manager, http.MethodGet, "/v1/users", "", http.StatusForbidden},
		{"admin lista usuários", admin, http.MethodGet, "/v1/users", "", http.StatusOK},
		{"gerente não vê status do armazenamento", manager, http.MethodGet, "/v1/store/status", "", http.StatusForbidden},
		{"admin vê status do armazenamento", admin, http.MethodGet, "/v1/store/status", "", http.StatusOK},
		{"operador registra movimentação", operator, http.MethodPost, "/v1/movimentacoes", `{"ean":"7891234567890","tipo":"SAIDA","quantidade":3}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, srv, tt.method, tt.target, tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	srv := newTestServer(t)
	tok := login(t, srv, "admin@estoque.com", "admin123")

	rec := call(t, srv, http.MethodGet, "/v1/me", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var me domain.PublicUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "Administrador", me.RoleName)

	rec = call(t, srv, http.MethodPost, "/v1/logout", tok, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(t, srv, http.MethodGet, "/v1/me", tok, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductHistoryShowsLedgerDivergence(t *testing.T) {
	srv := newTestServer(t)
	tok := login(t, srv, "gerente@estoque.com", "gerente123")

	rec := call(t, srv, http.MethodGet, "/v1/produtos/1/historico", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var history domain.ProductHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Equal(t, 28, history.Product.CurrentStock)
	assert.Equal(t, 22, history.ComputedStock)
	assert.False(t, history.Consistent)
	assert.Len(t, history.Movements, 2)
}
