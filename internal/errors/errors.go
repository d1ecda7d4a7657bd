package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do Estoque.
// Ela permite que o Handler acesse a Categoria e o status HTTP do erro.
type AppError interface {
	Error() string
	Category() string
	HTTPStatus() int
	Unwrap() error
}

// --- Erros de Domínio ---

// ValidationError representa falhas de validação de dados de entrada (campo obrigatório ausente etc.).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// NewProductNotFoundError é o NotFound específico do livro de movimentações.
func NewProductNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// DuplicateEntityError representa um registro que já existe (EAN ou email repetido).
type DuplicateEntityError struct {
	Msg string
}

func (e *DuplicateEntityError) Error() string    { return fmt.Sprintf("Registro duplicado: %s", e.Msg) }
func (e *DuplicateEntityError) Category() string { return "DUPLICATE_ENTITY" }
func (e *DuplicateEntityError) HTTPStatus() int  { return http.StatusConflict }
func (e *DuplicateEntityError) Unwrap() error    { return nil }

// NewDuplicateEntityError cria um erro de entidade duplicada.
func NewDuplicateEntityError(msg string) AppError {
	return &DuplicateEntityError{Msg: msg}
}

// InsufficientStockError é retornado quando uma SAÍDA excede o estoque atual.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Estoque insuficiente. Disponível: %d, Solicitado: %d", e.Available, e.Requested)
}
func (e *InsufficientStockError) Category() string { return "INSUFFICIENT_STOCK" }
func (e *InsufficientStockError) HTTPStatus() int  { return http.StatusUnprocessableEntity }
func (e *InsufficientStockError) Unwrap() error    { return nil }

// NewInsufficientStockError cria um erro de estoque insuficiente.
func NewInsufficientStockError(available, requested int) AppError {
	return &InsufficientStockError{Available: available, Requested: requested}
}

// InvalidQuantityError representa uma quantidade negativa ou não inteira.
type InvalidQuantityError struct {
	Msg string
}

func (e *InvalidQuantityError) Error() string    { return fmt.Sprintf("Quantidade inválida: %s", e.Msg) }
func (e *InvalidQuantityError) Category() string { return "INVALID_QUANTITY" }
func (e *InvalidQuantityError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *InvalidQuantityError) Unwrap() error    { return nil }

// NewInvalidQuantityError cria um erro de quantidade inválida.
func NewInvalidQuantityError(msg string) AppError {
	return &InvalidQuantityError{Msg: msg}
}

// UnauthorizedError representa credenciais ausentes ou inválidas.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um erro 401.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um usuário autenticado sem o papel exigido.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden }
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um erro 403.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// --- Erros de Infraestrutura (Encapsulamento) ---

// UnavailableError indica que o armazenamento de documentos está inacessível
// (transporte, timeout ou 5xx). É o gatilho da troca para o espelho.
type UnavailableError struct {
	Msg string
	Err error
}

func (e *UnavailableError) Error() string    { return fmt.Sprintf("Serviço indisponível: %s", e.Msg) }
func (e *UnavailableError) Category() string { return "UNAVAILABLE" }
func (e *UnavailableError) HTTPStatus() int  { return http.StatusServiceUnavailable }
func (e *UnavailableError) Unwrap() error    { return e.Err }

// NewUnavailableError cria um erro de armazenamento indisponível.
func NewUnavailableError(msg string, err error) AppError {
	return &UnavailableError{Msg: msg, Err: err}
}

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor.
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// PartialWriteError indica que a movimentação foi gravada mas a atualização do
// produto falhou. O estado não é revertido.
type PartialWriteError struct {
	MovementID string
	Err        error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("Movimentação %s registrada, mas o estoque do produto não foi atualizado", e.MovementID)
}
func (e *PartialWriteError) Category() string { return "PARTIAL_WRITE" }
func (e *PartialWriteError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *PartialWriteError) Unwrap() error    { return e.Err }

// NewPartialWriteError cria um erro de escrita parcial.
func NewPartialWriteError(movementID string, err error) AppError {
	return &PartialWriteError{MovementID: movementID, Err: err}
}

// --- Helpers ---

// IsUnavailable informa se algum erro da cadeia é um UnavailableError.
func IsUnavailable(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable)
}

// IsNotFound informa se algum erro da cadeia é um NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
// Percorre a cadeia de Unwrap, então erros embrulhados com %w mantêm a categoria.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
