package product

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/middleware"
)

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) CreateProduct(ctx context.Context, input domain.ProductInput) (domain.Product, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockProductService) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockProductService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductService) UpdateProduct(ctx context.Context, id string, upd domain.ProductUpdate, session *domain.Session) (domain.Product, bool, error) {
	args := m.Called(ctx, id, upd, session)
	return args.Get(0).(domain.Product), args.Bool(1), args.Error(2)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockHistoryService struct {
	mock.Mock
}

func (m *mockHistoryService) ProductHistory(ctx context.Context, productID string) (domain.ProductHistory, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.ProductHistory), args.Error(1)
}

func newMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/produtos", h.ListProductsHandler)
	mux.HandleFunc("POST /v1/produtos", h.CreateProductHandler)
	mux.HandleFunc("GET /v1/produtos/{id}", h.GetProductByIDHandler)
	mux.HandleFunc("PUT /v1/produtos/{id}", h.UpdateProductHandler)
	mux.HandleFunc("DELETE /v1/produtos/{id}", h.DeleteProductHandler)
	mux.HandleFunc("GET /v1/produtos/{id}/historico", h.ProductHistoryHandler)
	return mux
}

func TestListProductsHandler_LowStockQuery(t *testing.T) {
	svc := new(mockProductService)
	svc.On("ListProducts", mock.Anything, domain.ProductFilter{LowStockOnly: true}).Return([]domain.Product{{ID: "2"}}, nil)
	rec := httptest.NewRecorder()

	newMux(NewHandler(svc, new(mockHistoryService), logger.NewNop())).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/produtos?baixo_estoque=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 1)
	svc.AssertExpectations(t)
}

func TestListProductsHandler_SearchQuery(t *testing.T) {
	svc := new(mockProductService)
	svc.On("ListProducts", mock.Anything, domain.ProductFilter{Search: "freio"}).Return([]domain.Product{{ID: "1"}}, nil)
	rec := httptest.NewRecorder()

	newMux(NewHandler(svc, new(mockHistoryService), logger.NewNop())).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/produtos?q=freio", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreateProductHandler_ValidationBeforeService(t *testing.T) {
	svc := new(mockProductService)
	rec := httptest.NewRecorder()
	body := `{"ean":"123","descricao":"Pastilha","marca_id":"3b0f"}`

	newMux(NewHandler(svc, new(mockHistoryService), logger.NewNop())).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/produtos", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "13 dígitos")
	svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProductHandler_Duplicate(t *testing.T) {
	svc := new(mockProductService)
	svc.On("CreateProduct", mock.Anything, mock.Anything).Return(domain.Product{}, apperror.NewDuplicateEntityError("Já existe um produto com o EAN 7891234567890."))
	rec := httptest.NewRecorder()
	body := `{"ean":"7891234567890","descricao":"Pastilha","marca_id":"3b0f","estoque_minimo":2}`

	newMux(NewHandler(svc, new(mockHistoryService), logger.NewNop())).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/produtos", strings.NewReader(body)))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var errBody domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, "DUPLICATE_ENTITY", errBody.Category)
}

func TestUpdateProductHandler_PassesSession(t *testing.T) {
	svc := new(mockProductService)
	session := &domain.Session{UserID: "2", Name: "Gerente", Role: domain.RoleManager}
	svc.On("UpdateProduct", mock.Anything, "1", mock.Anything, session).Return(domain.Product{ID: "1", Description: "Nova"}, true, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/v1/produtos/1", strings.NewReader(`{"descricao":"Nova"}`))
	req = req.WithContext(middleware.WithSession(req.Context(), session))

	newMux(NewHandler(svc, new(mockHistoryService), logger.NewNop())).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp EditResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Changed)
	assert.Equal(t, "Nova", resp.Product.Description)
}

func TestDeleteProductHandler(t *testing.T) {
	svc := new(mockProductService)
	svc.On("DeleteProduct", mock.Anything, "1").Return(nil)
	rec := httptest.NewRecorder()

	newMux(NewHandler(svc, new(mockHistoryService), logger.NewNop())).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/produtos/1", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestProductHistoryHandler_NotFound(t *testing.T) {
	history := new(mockHistoryService)
	history.On("ProductHistory", mock.Anything, "x").Return(domain.ProductHistory{}, apperror.NewProductNotFoundError("Produto com ID x não existe."))
	rec := httptest.NewRecorder()

	newMux(NewHandler(new(mockProductService), history, logger.NewNop())).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/produtos/x/historico", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
