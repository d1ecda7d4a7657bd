package movement

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/domain"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/middleware"
	"estoque/internal/repository/movementrepo"
	"estoque/internal/repository/productrepo"
	"estoque/internal/service/ledgerservice"
	"estoque/internal/store/mirror"
)

const testEAN = "1234567890123"

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	log := logger.NewNop()
	m, err := mirror.New(0, log)
	require.NoError(t, err)

	svc := ledgerservice.NewService(productrepo.NewProductRepository(m, log), movementrepo.NewMovementRepository(m, log), log)
	h := NewHandler(svc, log)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/movimentacoes", h.RegisterMovementHandler)
	mux.HandleFunc("GET /v1/movimentacoes", h.ListMovementsHandler)
	return mux
}

func post(mux http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/movimentacoes", strings.NewReader(body))
	req = req.WithContext(middleware.WithSession(req.Context(), &domain.Session{Name: "Operador"}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func category(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Category
}

func TestRegisterMovementHandler(t *testing.T) {
	mux := newTestMux(t)

	rec := post(mux, `{"ean":"`+testEAN+`","tipo":"ENTRADA","quantidade":5,"observacoes":"  NF 123  "}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var result domain.MovementResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 15, result.Movement.PreviousStock)
	assert.Equal(t, 20, result.Movement.ResultingStock)
	assert.Equal(t, 20, result.Product.CurrentStock)
	assert.Equal(t, "Operador", result.Movement.User)
	require.NotNil(t, result.Movement.Note)
	assert.Equal(t, "NF 123", *result.Movement.Note)
}

func TestRegisterMovementHandler_Rejections(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantCategory string
	}{
		{"saída acima do estoque", `{"ean":"` + testEAN + `","tipo":"SAIDA","quantidade":100}`, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
		{"quantidade fracionária", `{"ean":"` + testEAN + `","tipo":"ENTRADA","quantidade":2.5}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"quantidade negativa", `{"ean":"` + testEAN + `","tipo":"ENTRADA","quantidade":-1}`, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"tipo desconhecido", `{"ean":"` + testEAN + `","tipo":"AJUSTE","quantidade":1}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"produto inexistente", `{"ean":"9999999999999","tipo":"ENTRADA","quantidade":1}`, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(newTestMux(t), tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCategory, category(t, rec))
		})
	}
}

func TestRegisterMovementHandler_MissingQuantityKeepsStock(t *testing.T) {
	mux := newTestMux(t)
	require.Equal(t, http.StatusCreated, post(mux, `{"ean":"`+testEAN+`","tipo":"ENTRADA","quantidade":7}`).Code)

	for _, body := range []string{
		`{"ean":"` + testEAN + `","tipo":"INVENTARIO"}`,
		`{"ean":"` + testEAN + `","tipo":"INVENTARIO","quantidade":null}`,
		`{"ean":"` + testEAN + `","tipo":"SAIDA"}`,
	} {
		rec := post(mux, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "VALIDATION_ERROR", category(t, rec), body)
	}

	rec := post(mux, `{"ean":"`+testEAN+`","tipo":"ENTRADA","quantidade":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var result domain.MovementResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 22, result.Movement.PreviousStock)
	assert.Equal(t, 23, result.Product.CurrentStock)
}

func TestListMovementsHandler_ByEAN(t *testing.T) {
	mux := newTestMux(t)
	require.Equal(t, http.StatusCreated, post(mux, `{"ean":"`+testEAN+`","tipo":"INVENTARIO","quantidade":0}`).Code)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/movimentacoes?ean="+testEAN, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var movements []domain.Movement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movements))
	require.Len(t, movements, 1)
	assert.Equal(t, domain.MovementInventoryCount, movements[0].Kind)
	assert.Equal(t, 0, movements[0].ResultingStock)
}
