package middleware

import (
	"context"
	"net/http"
	"strings"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/response"
	"estoque/internal/pkg/token"
)

// ContextKey é o tipo das chaves que o pacote grava no contexto.
// Context Keys devem ser não-exportadas e de um tipo único.
type ContextKey int

const (
	SessionKey ContextKey = iota
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// RevocationChecker consulta a lista de tokens encerrados por logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// NewAuthMiddleware cria uma função de middleware que valida o JWT e anexa a
// domain.Session ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService, revocations RevocationChecker, log logger.Logger) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) == len("Bearer ") {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			revoked, err := revocations.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				// Sem Redis a revogação não pode ser consultada; o token segue válido até expirar.
				log.Warn("Falha ao consultar tokens revogados.", map[string]interface{}{"error": err.Error()})
			} else if revoked {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Sessão encerrada. Faça login novamente."))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), claims.Session())))
		}
	}
}

// WithSession devolve um contexto carregando a sessão.
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSessionFromContext é uma função utilitária para extrair a sessão no handler.
func GetSessionFromContext(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*domain.Session)
	return session, ok && session != nil
}

// PermissionMiddleware libera a rota para os papéis informados. Sem papéis,
// qualquer usuário autenticado passa.
func PermissionMiddleware(log logger.Logger, requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			if !ok {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			if !domain.CanAccess(session, requiredRoles) {
				log.Warn("Acesso negado por papel.", map[string]interface{}{
					"user_id": session.UserID,
					"role":    session.Role,
					"path":    r.URL.Path,
				})
				response.Error(w, r, log, apperror.NewForbiddenError("Você não tem a permissão necessária."))
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}
