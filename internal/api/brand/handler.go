package brand

import (
	"context"
	"net/http"

	"estoque/internal/domain"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/middleware"
	"estoque/internal/pkg/response"
	"estoque/internal/pkg/validation"
)

// BrandService define o contrato que o Handler espera da camada de Serviço.
type BrandService interface {
	CreateBrand(ctx context.Context, input domain.BrandInput) (domain.Brand, error)
	GetBrandByID(ctx context.Context, id string) (domain.Brand, error)
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	UpdateBrand(ctx context.Context, id string, input domain.BrandInput, session *domain.Session) (domain.Brand, bool, error)
	DeleteBrand(ctx context.Context, id string) error
	BrandHistory(ctx context.Context, id string) ([]domain.HistoryEntry, error)
}

// EditResponse é a resposta da edição de marca.
type EditResponse struct {
	Brand   domain.Brand `json:"marca"`
	Changed bool         `json:"alterado"`
}

// Handler agrupa todos os métodos de Handler de marcas.
type Handler struct {
	Service   BrandService
	Logger    logger.Logger
	validator *validation.Validator
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc BrandService, log logger.Logger) *Handler {
	return &Handler{
		Service:   svc,
		Logger:    log,
		validator: validation.New(),
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	response.Write(w, r, h.Logger, data, err, successStatus)
}

func (h *Handler) decodeInput(r *http.Request) (domain.BrandInput, error) {
	var input domain.BrandInput
	if err := response.Decode(r, &input); err != nil {
		return input, err
	}
	return input, h.validator.Struct(input)
}

// ListBrandsHandler lida com a requisição GET /v1/marcas.
// @Summary Lista as marcas
// @Tags marcas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Brand
// @Failure 503 {object} domain.ErrorResponse "Armazenamento indisponível"
// @Router /marcas [get]
func (h *Handler) ListBrandsHandler(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Service.ListBrands(r.Context())
	h.handleServiceResponse(w, r, brands, err, http.StatusOK)
}

// CreateBrandHandler lida com a requisição POST /v1/marcas.
// @Summary Cadastra uma marca
// @Tags marcas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param marca body domain.BrandInput true "Nome da marca"
// @Success 201 {object} domain.Brand "Marca criada com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Router /marcas [post]
func (h *Handler) CreateBrandHandler(w http.ResponseWriter, r *http.Request) {
	input, err := h.decodeInput(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	brand, err := h.Service.CreateBrand(r.Context(), input)
	h.handleServiceResponse(w, r, brand, err, http.StatusCreated)
}

// GetBrandByIDHandler lida com a requisição GET /v1/marcas/{id}.
// @Summary Busca uma marca
// @Tags marcas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da marca"
// @Success 200 {object} domain.Brand
// @Failure 404 {object} domain.ErrorResponse "Marca não encontrada"
// @Router /marcas/{id} [get]
func (h *Handler) GetBrandByIDHandler(w http.ResponseWriter, r *http.Request) {
	brand, err := h.Service.GetBrandByID(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, brand, err, http.StatusOK)
}

// UpdateBrandHandler lida com a requisição PUT /v1/marcas/{id}.
// @Summary Edita uma marca
// @Description Renomeia a marca e registra a alteração no histórico.
// @Tags marcas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da marca"
// @Param marca body domain.BrandInput true "Novo nome"
// @Success 200 {object} EditResponse
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 403 {object} domain.ErrorResponse "Papel sem permissão"
// @Failure 404 {object} domain.ErrorResponse "Marca não encontrada"
// @Router /marcas/{id} [put]
func (h *Handler) UpdateBrandHandler(w http.ResponseWriter, r *http.Request) {
	input, err := h.decodeInput(r)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	session, _ := middleware.GetSessionFromContext(r.Context())
	brand, changed, err := h.Service.UpdateBrand(r.Context(), r.PathValue("id"), input, session)
	h.handleServiceResponse(w, r, EditResponse{Brand: brand, Changed: changed}, err, http.StatusOK)
}

// DeleteBrandHandler lida com a requisição DELETE /v1/marcas/{id}.
// @Summary Remove uma marca
// @Tags marcas
// @Security BearerAuth
// @Param id path string true "ID da marca"
// @Success 204 "Removida"
// @Failure 404 {object} domain.ErrorResponse "Marca não encontrada"
// @Router /marcas/{id} [delete]
func (h *Handler) DeleteBrandHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteBrand(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// BrandHistoryHandler lida com a requisição GET /v1/marcas/{id}/historico.
// @Summary Histórico de edições da marca
// @Tags marcas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da marca"
// @Success 200 {array} domain.HistoryEntry
// @Failure 404 {object} domain.ErrorResponse "Marca não encontrada"
// @Router /marcas/{id}/historico [get]
func (h *Handler) BrandHistoryHandler(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.BrandHistory(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, history, err, http.StatusOK)
}
