package user

import (
	"context"
	"net/http"

	"estoque/internal/domain"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/middleware"
	"estoque/internal/pkg/response"
	"estoque/internal/pkg/validation"
)

// UserService define o contrato para as operações de conta e de administração de usuários.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.LoginResponse, error)
	CreateUser(ctx context.Context, registration domain.UserRegistration) (domain.PublicUser, error)
	Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
	Logout(ctx context.Context, session *domain.Session) error
	Me(ctx context.Context, session *domain.Session) (domain.PublicUser, error)
	ListUsers(ctx context.Context) ([]domain.PublicUser, error)
	GetUser(ctx context.Context, id string) (domain.PublicUser, error)
	UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (domain.PublicUser, error)
	DeleteUser(ctx context.Context, id string, session *domain.Session) error
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service   UserService
	Logger    logger.Logger
	validator *validation.Validator
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service:   svc,
		Logger:    log,
		validator: validation.New(),
	}
}

func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	response.Write(w, r, h.Logger, data, err, successStatus)
}

// decode lê e valida o payload.
func (h *Handler) decode(r *http.Request, dst interface{}) error {
	if err := response.Decode(r, dst); err != nil {
		return err
	}
	return h.validator.Struct(dst)
}

// RegisterUserHandler lida com a requisição POST /v1/register.
// @Summary Auto cadastro de usuário
// @Description Cria um usuário com papel OPERATOR, hasheia a senha e devolve o token da nova sessão.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Nome, email e senha"
// @Success 201 {object} domain.LoginResponse "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Router /register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := h.decode(r, &reg); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	resp, err := h.Service.Register(r.Context(), reg)
	h.handleServiceResponse(w, r, resp, err, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe email/senha, verifica a validade e emite um JSON Web Token.
// @Tags users
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} domain.LoginResponse "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var loginReq domain.LoginRequest
	if err := h.decode(r, &loginReq); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	resp, err := h.Service.Login(r.Context(), loginReq)
	h.handleServiceResponse(w, r, resp, err, http.StatusOK)
}

// LogoutHandler lida com a requisição POST /v1/logout.
// @Summary Encerra a sessão
// @Description Revoga o token atual até a sua expiração.
// @Tags users
// @Security BearerAuth
// @Success 204 "Sessão encerrada"
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Router /logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	err := h.Service.Logout(r.Context(), session)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// MeHandler lida com a requisição GET /v1/me.
// @Summary Usuário da sessão
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.PublicUser
// @Failure 401 {object} domain.ErrorResponse "Não autenticado"
// @Router /me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	user, err := h.Service.Me(r.Context(), session)
	h.handleServiceResponse(w, r, user, err, http.StatusOK)
}

// ListUsersHandler lida com a requisição GET /v1/users.
// @Summary Lista os usuários
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.PublicUser
// @Failure 403 {object} domain.ErrorResponse "Somente administradores"
// @Router /users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context())
	h.handleServiceResponse(w, r, users, err, http.StatusOK)
}

// CreateUserHandler lida com a requisição POST /v1/users.
// @Summary Cadastra um usuário com qualquer papel
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registration body domain.UserRegistration true "Dados do usuário"
// @Success 201 {object} domain.PublicUser
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Router /users [post]
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := h.decode(r, &reg); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	user, err := h.Service.CreateUser(r.Context(), reg)
	h.handleServiceResponse(w, r, user, err, http.StatusCreated)
}

// GetUserHandler lida com a requisição GET /v1/users/{id}.
// @Summary Busca um usuário
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Success 200 {object} domain.PublicUser
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id} [get]
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUser(r.Context(), r.PathValue("id"))
	h.handleServiceResponse(w, r, user, err, http.StatusOK)
}

// UpdateUserHandler lida com a requisição PUT /v1/users/{id}.
// @Summary Edita um usuário
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Param user body domain.UserUpdate true "Campos alterados"
// @Success 200 {object} domain.PublicUser
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Router /users/{id} [put]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var upd domain.UserUpdate
	if err := h.decode(r, &upd); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	user, err := h.Service.UpdateUser(r.Context(), r.PathValue("id"), upd)
	h.handleServiceResponse(w, r, user, err, http.StatusOK)
}

// DeleteUserHandler lida com a requisição DELETE /v1/users/{id}.
// @Summary Remove um usuário
// @Tags users
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Success 204 "Removido"
// @Failure 400 {object} domain.ErrorResponse "Tentativa de remover o próprio usuário"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/{id} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	err := h.Service.DeleteUser(r.Context(), r.PathValue("id"), session)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}
