package domain

import "strings"

// UserRole é o papel do usuário no sistema.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleManager  UserRole = "MANAGER"
	RoleOperator UserRole = "OPERATOR"
)

// Valid informa se o papel pertence ao enum conhecido.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleOperator:
		return true
	}
	return false
}

// DisplayName é o rótulo do papel exibido ao usuário.
func (r UserRole) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleManager:
		return "Gerente"
	case RoleOperator:
		return "Operador"
	}
	return string(r)
}

// User representa um usuário (coleção "users").
// Password guarda o hash bcrypt, ou texto puro nos usuários legados da carga inicial.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Role      UserRole `json:"role"`
	CreatedAt string   `json:"createdAt"` // DD/MM/YYYY
}

// PublicUser é a forma do usuário devolvida pela API, sem a senha.
type PublicUser struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	RoleName  string   `json:"roleName"`
	CreatedAt string   `json:"createdAt"`
}

// Public remove a senha.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		RoleName:  u.Role.DisplayName(),
		CreatedAt: u.CreatedAt,
	}
}

// HasHashedPassword indica se a senha armazenada é um hash bcrypt.
func (u User) HasHashedPassword() bool {
	return strings.HasPrefix(u.Password, "$2")
}

// UserRegistration é o payload de cadastro (auto cadastro ou administrativo).
type UserRegistration struct {
	Name     string   `json:"name" validate:"required,max=120" example:"Maria"`
	Email    string   `json:"email" validate:"required,email" example:"maria@estoque.com"`
	Password string   `json:"password" validate:"required,min=6" example:"segredo1"`
	Role     UserRole `json:"role,omitempty" validate:"omitempty,oneof=ADMIN MANAGER OPERATOR" example:"OPERATOR"`
}

// UserUpdate é o payload de edição de usuário. Campos vazios não são alterados.
type UserUpdate struct {
	Name     string   `json:"name,omitempty" validate:"omitempty,max=120"`
	Email    string   `json:"email,omitempty" validate:"omitempty,email"`
	Password string   `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     UserRole `json:"role,omitempty" validate:"omitempty,oneof=ADMIN MANAGER OPERATOR"`
}

// LoginRequest é o payload de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"admin@estoque.com"`
	Password string `json:"password" validate:"required" example:"admin123"`
}

// LoginResponse devolve o token e o usuário autenticado.
type LoginResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// SystemUserName é o nome gravado quando não há usuário identificado.
const SystemUserName = "Sistema"

// Session é o usuário autenticado da requisição, derivado do token.
type Session struct {
	UserID    string
	Name      string
	Email     string
	Role      UserRole
	TokenID   string
	ExpiresAt int64
}

// DisplayName devolve o nome gravado em histórico e movimentações.
func (s *Session) DisplayName() string {
	if s == nil || s.Name == "" {
		return SystemUserName
	}
	return s.Name
}

// CanAccess é a única verificação de capacidade do sistema.
// Um conjunto vazio de papéis libera qualquer usuário autenticado.
func CanAccess(session *Session, requiredRoles []UserRole) bool {
	if session == nil {
		return false
	}
	if len(requiredRoles) == 0 {
		return true
	}
	for _, role := range requiredRoles {
		if session.Role == role {
			return true
		}
	}
	return false
}
