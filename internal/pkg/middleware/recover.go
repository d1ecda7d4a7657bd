package middleware

import (
	"fmt"
	"net/http"

	"estoque/internal/domain"
	"estoque/internal/pkg/logger"
	"estoque/internal/pkg/response"
)

// Recoverer transforma um pânico em 500 com a mensagem genérica de recuperação.
func Recoverer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error(fmt.Sprintf("Pânico recuperado em %s %s", r.Method, r.URL.Path), fmt.Errorf("%v", rec))
					response.JSON(w, log, http.StatusInternalServerError, domain.ErrorResponse{
						Code:     http.StatusInternalServerError,
						Category: "INTERNAL_ERROR",
						Message:  domain.RecoveryMessage,
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
