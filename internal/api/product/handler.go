package product

import (
	"context"
	"net/http"

	"estoque/internal/domain"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/middleware"
	"estoque/internal/pkg/response"
	"estoque/internal/pkg/validation"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, input domain.ProductInput) (domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id string, upd domain.ProductUpdate, session *domain.Session) (domain.Product, bool, error)
	DeleteProduct(ctx context.Context, id string) error
}

// HistoryService monta a visão de histórico a partir do livro de movimentações.
type HistoryService interface {
	ProductHistory(ctx context.Context, productID string) (domain.ProductHistory, error)
}

// EditResponse é a resposta da edição de produto.
type EditResponse struct {
	Product domain.Product `json:"produto"`
	Changed bool           `json:"alterado"`
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service   ProductService
	History   HistoryService
	Logger    logger.Logger
	validator *validation.Validator
}

// NewHandler cria uma nova instância do Handler, injetando os Serviços e o Logger.
func NewHandler(svc ProductService, history HistoryService, log logger.Logger) *Handler {
	return &Handler{
		Service:   svc,
		History:   history,
		Logger:    log,
		validator: validation.New(),
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	response.Write(w, r, h.Logger, data, err, successStatus)
}

// ListProductsHandler lida com a requisição GET /v1/produtos.
// @Summary Lista os produtos
// @Description Lista os produtos, com filtro opcional por EAN, por termo de busca e por estoque baixo (estoque_atual <= estoque_minimo).
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param ean query string false "EAN de 13 dígitos"
// @Param q query string false "Busca na descrição (sem diferenciar maiúsculas) ou no EAN"
// @Param baixo_estoque query bool false "Somente produtos com estoque baixo"
// @Success 200 {array} domain.Product
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Failure 503 {object} domain.ErrorResponse "Armazenamento indisponível"
// @Router /produtos [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ProductFilter{
		EAN:          query.Get("ean"),
		Search:       query.Get("q"),
		LowStockOnly: query.Get("baixo_estoque") == "true",
	}

	products, err := h.Service.ListProducts(r.Context(), filter)
	h.handleServiceResponse(w, r, products, err, http.StatusOK)
}

// CreateProductHandler lida com a requisição POST /v1/produtos.
// @Summary Cadastra um produto
// @Description Cria um produto com estoque inicial zero. O EAN deve ser único.
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param produto body domain.ProductInput true "Dados do produto"
// @Success 201 {object} domain.Product "Produto criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "EAN já cadastrado"
// @Router /produtos [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := response.Decode(r, &input); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}
	if err := h.validator.Struct(input); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	if session, ok := middleware.GetSessionFromContext(r.Context()); ok {
		h.Logger.Info("Cadastro de produto solicitado por", map[string]interface{}{
			"user_id": session.UserID,
			"role":    session.Role,
		})
	}

	product, err := h.Service.CreateProduct(r.Context(), input)
	h.handleServiceResponse(w, r, product, err, http.StatusCreated)
}

// GetProductByIDHandler lida com a requisição GET /v1/produtos/{id}.
// @Summary Busca um produto
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /produtos/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.GetProductByID(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, product, err, http.StatusOK)
}

// UpdateProductHandler lida com a requisição PUT /v1/produtos/{id}.
// @Summary Edita um produto
// @Description Aplica a edição e registra as diferenças no histórico. O estoque atual não é editável.
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param produto body domain.ProductUpdate true "Campos alterados"
// @Success 200 {object} EditResponse
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Papel sem permissão"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 409 {object} domain.ErrorResponse "EAN já cadastrado"
// @Router /produtos/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var upd domain.ProductUpdate
	if err := response.Decode(r, &upd); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}
	if err := h.validator.Struct(upd); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	product, changed, err := h.Service.UpdateProduct(r.Context(), r.PathValue("id"), upd, session)
	h.handleServiceResponse(w, r, EditResponse{Product: product, Changed: changed}, err, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /v1/produtos/{id}.
// @Summary Remove um produto
// @Tags produtos
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204 "Removido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /produtos/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteProduct(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// ProductHistoryHandler lida com a requisição GET /v1/produtos/{id}/historico.
// @Summary Histórico do produto
// @Description Devolve o produto, suas movimentações em ordem de criação e o estoque recalculado pelo livro.
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.ProductHistory
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /produtos/{id}/historico [get]
func (h *Handler) ProductHistoryHandler(w http.ResponseWriter, r *http.Request) {
	history, err := h.History.ProductHistory(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, history, err, http.StatusOK)
}
