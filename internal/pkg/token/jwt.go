package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"estoque/internal/domain"
	"estoque/internal/pkg/cache"
)

// TokenService define o contrato para manipulação de JWTs.
type TokenService interface {
	GenerateToken(user domain.User) (string, *CustomClaims, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// CustomClaims define as informações específicas que queremos armazenar no JWT.
// É obrigatório incorporar jwt.RegisteredClaims.
type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Session converte as claims na sessão da requisição.
func (c *CustomClaims) Session() *domain.Session {
	s := &domain.Session{
		UserID:  c.UserID,
		Name:    c.Name,
		Email:   c.Email,
		Role:    domain.UserRole(c.Role),
		TokenID: c.ID,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Unix()
	}
	return s
}

// Service implementa a interface TokenService
type Service struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

// NewService cria uma nova instância do serviço Token.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
}

// GenerateToken cria um novo JWT assinado com os dados do usuário e um jti único.
func (s *Service) GenerateToken(user domain.User) (string, *CustomClaims, error) {
	now := s.now()
	claims := &CustomClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "Estoque-API",
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", nil, fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return tokenString, claims, nil
}

// ValidateToken valida o token string e retorna as claims se for válido.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token não é válido")
	}

	return claims, nil
}

// Denylist guarda no Redis os jti de tokens encerrados por logout até a expiração natural.
type Denylist struct {
	client cache.Client
	now    func() time.Time
}

// NewDenylist cria a lista de tokens revogados.
func NewDenylist(client cache.Client) *Denylist {
	return &Denylist{client: client, now: time.Now}
}

func denylistKey(tokenID string) string {
	return "revoked-token:" + tokenID
}

// Revoke marca o token como encerrado. Tokens já expirados não são gravados.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, expiresAt int64) error {
	if tokenID == "" {
		return errors.New("token sem identificador")
	}
	ttl := time.Unix(expiresAt, 0).Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistKey(tokenID), 1, ttl)
}

// IsRevoked informa se o token foi encerrado.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return d.client.Exists(ctx, denylistKey(tokenID))
}
