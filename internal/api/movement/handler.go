package movement

import (
	"context"
	"net/http"

	"estoque/internal/domain"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/middleware"
	"estoque/internal/pkg/response"
	"estoque/internal/pkg/validation"
)

// LedgerService define o contrato que o Handler espera do livro de movimentações.
type LedgerService interface {
	RegisterMovement(ctx context.Context, req domain.MovementRequest, session *domain.Session) (domain.MovementResult, error)
	ListMovements(ctx context.Context, ean string) ([]domain.Movement, error)
}

// Handler agrupa os Handlers de movimentação.
type Handler struct {
	Service   LedgerService
	Logger    logger.Logger
	validator *validation.Validator
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc LedgerService, log logger.Logger) *Handler {
	return &Handler{
		Service:   svc,
		Logger:    log,
		validator: validation.New(),
	}
}

// RegisterMovementHandler lida com a requisição POST /v1/movimentacoes.
// @Summary Registra uma movimentação de estoque
// @Description ENTRADA soma, SAIDA subtrai (rejeitada se exceder o estoque) e INVENTARIO define o estoque contado. A movimentação é gravada antes do produto.
// @Tags movimentacoes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movimentacao body domain.MovementRequest true "Dados da movimentação"
// @Success 201 {object} domain.MovementResult "Movimentação registrada"
// @Failure 400 {object} domain.ErrorResponse "Quantidade ou payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 422 {object} domain.ErrorResponse "Estoque insuficiente"
// @Failure 500 {object} domain.ErrorResponse "Movimentação gravada sem atualizar o produto"
// @Router /movimentacoes [post]
func (h *Handler) RegisterMovementHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.MovementRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	result, err := h.Service.RegisterMovement(r.Context(), req, session)
	response.Write(w, r, h.Logger, result, err, http.StatusCreated)
}

// ListMovementsHandler lida com a requisição GET /v1/movimentacoes.
// @Summary Lista as movimentações
// @Description Sem filtro devolve o livro inteiro; com ean, apenas as do produto, em ordem de criação.
// @Tags movimentacoes
// @Produce json
// @Security BearerAuth
// @Param ean query string false "EAN de 13 dígitos"
// @Success 200 {array} domain.Movement
// @Router /movimentacoes [get]
func (h *Handler) ListMovementsHandler(w http.ResponseWriter, r *http.Request) {
	movements, err := h.Service.ListMovements(r.Context(), r.URL.Query().Get("ean"))
	response.Write(w, r, h.Logger, movements, err, http.StatusOK)
}
