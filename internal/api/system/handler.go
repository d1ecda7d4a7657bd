package system

import (
	"net/http"

	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/response"
	"estoque/internal/store"
)

// StoreStatus expõe o modo atual do seletor de armazenamento.
type StoreStatus interface {
	Status() store.Status
}

// Handler agrupa as rotas de operação do sistema.
type Handler struct {
	Store  StoreStatus
	Logger logger.Logger
}

// NewHandler cria o Handler de sistema.
func NewHandler(s StoreStatus, log logger.Logger) *Handler {
	return &Handler{Store: s, Logger: log}
}

// StoreStatusHandler lida com a requisição GET /v1/store/status.
// @Summary Modo do armazenamento
// @Description Informa se as chamadas vão ao armazenamento principal (live) ou ao espelho local (mirror), quando e por que houve a troca.
// @Tags sistema
// @Produce json
// @Security BearerAuth
// @Success 200 {object} store.Status
// @Failure 403 {object} domain.ErrorResponse "Somente administradores"
// @Router /store/status [get]
func (h *Handler) StoreStatusHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, h.Logger, http.StatusOK, h.Store.Status())
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
