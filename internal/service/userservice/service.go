package userservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/dateutil"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/token"
	"estoque/internal/pkg/validation"
)

// UserRepository define o contrato de persistência de usuários.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

// TokenService é o contrato da camada de token (internal/pkg/token)
type TokenService interface {
	GenerateToken(user domain.User) (string, *token.CustomClaims, error)
}

// Revoker encerra tokens no logout.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt int64) error
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo  UserRepository
	TokenSvc  TokenService
	Revoker   Revoker
	validator *validation.Validator
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc TokenService, revoker Revoker, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo:  repo,
		TokenSvc:  tokenSvc,
		Revoker:   revoker,
		validator: validation.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock troca o relógio usado em createdAt.
func (s *UserService) WithClock(now func() time.Time) *UserService {
	s.now = now
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ensureEmailFree devolve DuplicateEntity se outro usuário já usa o email.
func (s *UserService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return apperror.NewDuplicateEntityError(fmt.Sprintf("O email '%s' já está em uso.", email))
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}
	return string(hashed), nil
}

func (s *UserService) create(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	registration.Name = strings.TrimSpace(registration.Name)
	registration.Email = normalizeEmail(registration.Email)
	if registration.Role == "" {
		registration.Role = domain.RoleOperator
	}

	if err := s.validator.Struct(registration); err != nil {
		return domain.User{}, err
	}
	if err := s.ensureEmailFree(ctx, registration.Email, ""); err != nil {
		return domain.User{}, err
	}

	hashed, err := hashPassword(registration.Password)
	if err != nil {
		return domain.User{}, err
	}

	newUser := domain.User{
		ID:        uuid.New().String(),
		Name:      registration.Name,
		Email:     registration.Email,
		Password:  hashed,
		Role:      registration.Role,
		CreatedAt: dateutil.FormatDateBR(s.now()),
	}

	return s.UserRepo.Save(ctx, newUser)
}

// Register é o auto cadastro público: o papel é sempre OPERATOR e o usuário
// sai autenticado.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.LoginResponse, error) {
	registration.Role = domain.RoleOperator

	user, err := s.create(ctx, registration)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	s.logger.Info("Novo usuário registrado.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return s.issue(user)
}

// CreateUser é o cadastro administrativo, com qualquer papel.
func (s *UserService) CreateUser(ctx context.Context, registration domain.UserRegistration) (domain.PublicUser, error) {
	user, err := s.create(ctx, registration)
	if err != nil {
		return domain.PublicUser{}, err
	}

	s.logger.Info("Usuário criado por administrador.", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return user.Public(), nil
}

// Login autentica um usuário, verifica a senha e gera um JWT.
// Senhas que não são hash bcrypt (usuários legados) são comparadas em texto puro.
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return domain.LoginResponse{}, apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira 401 para não revelar quais emails existem.
		if apperror.IsNotFound(err) {
			return domain.LoginResponse{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.LoginResponse{}, err
	}

	if !passwordMatches(user, req.Password) {
		s.logger.Warn("Tentativa de login com senha incorreta.", map[string]interface{}{"email": user.Email})
		return domain.LoginResponse{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	resp, err := s.issue(user)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"user_id": user.ID})
	return resp, nil
}

func passwordMatches(user domain.User, password string) bool {
	if user.HasHashedPassword() {
		return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
	}
	return user.Password == password
}

func (s *UserService) issue(user domain.User) (domain.LoginResponse, error) {
	tokenString, _, err := s.TokenSvc.GenerateToken(user)
	if err != nil {
		return domain.LoginResponse{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	return domain.LoginResponse{Token: tokenString, User: user.Public()}, nil
}

// Logout revoga o token da sessão até a sua expiração.
func (s *UserService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return apperror.NewUnauthorizedError("Sessão não encontrada.")
	}
	if err := s.Revoker.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return apperror.NewInternalError("Não foi possível encerrar a sessão.", err)
	}
	s.logger.Info("Logout realizado.", map[string]interface{}{"user_id": session.UserID})
	return nil
}

// Me relê o usuário da sessão no armazenamento.
func (s *UserService) Me(ctx context.Context, session *domain.Session) (domain.PublicUser, error) {
	if session == nil {
		return domain.PublicUser{}, apperror.NewUnauthorizedError("Sessão não encontrada.")
	}
	user, err := s.UserRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return domain.PublicUser{}, apperror.NewUnauthorizedError("Usuário da sessão não existe mais.")
		}
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}

// ListUsers lista os usuários sem senha.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// GetUser busca um usuário pelo id.
func (s *UserService) GetUser(ctx context.Context, id string) (domain.PublicUser, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}

// UpdateUser edita nome, email, papel e, se informada, a senha.
func (s *UserService) UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (domain.PublicUser, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Email = normalizeEmail(upd.Email)
	if err := s.validator.Struct(upd); err != nil {
		return domain.PublicUser{}, err
	}

	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}

	if upd.Email != "" && upd.Email != user.Email {
		if err := s.ensureEmailFree(ctx, upd.Email, user.ID); err != nil {
			return domain.PublicUser{}, err
		}
		user.Email = upd.Email
	}
	if upd.Name != "" {
		user.Name = upd.Name
	}
	if upd.Role != "" {
		user.Role = upd.Role
	}
	if upd.Password != "" {
		hashed, err := hashPassword(upd.Password)
		if err != nil {
			return domain.PublicUser{}, err
		}
		user.Password = hashed
	}

	saved, err := s.UserRepo.Update(ctx, user)
	if err != nil {
		return domain.PublicUser{}, err
	}

	s.logger.Info("Usuário atualizado.", map[string]interface{}{"user_id": id})
	return saved.Public(), nil
}

// DeleteUser remove o usuário. Um administrador não pode remover a si mesmo.
func (s *UserService) DeleteUser(ctx context.Context, id string, session *domain.Session) error {
	if session != nil && session.UserID == id {
		return apperror.NewValidationError("Não é possível excluir o próprio usuário.")
	}
	return s.UserRepo.Delete(ctx, id)
}
