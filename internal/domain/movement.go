package domain

import (
	apperror "estoque/internal/errors"
)

// MovementKind é o tipo de movimentação de estoque.
type MovementKind string

const (
	MovementEntry          MovementKind = "ENTRADA"
	MovementExit           MovementKind = "SAIDA"
	MovementInventoryCount MovementKind = "INVENTARIO"
)

// Valid informa se o tipo é um dos três aceitos pelo livro.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementEntry, MovementExit, MovementInventoryCount:
		return true
	}
	return false
}

// Movement é um lançamento imutável do livro de movimentações (coleção "movimentacoes").
type Movement struct {
	ID                 string       `json:"id"`
	EAN                string       `json:"ean"`
	Kind               MovementKind `json:"tipo"`
	Quantity           int          `json:"quantidade"`
	PreviousStock      int          `json:"estoque_anterior"`
	ResultingStock     int          `json:"estoque_novo"`
	Date               string       `json:"data"` // ISO-8601
	User               string       `json:"usuario"`
	Note               *string      `json:"observacoes"`
	ProductDescription string       `json:"produto_descricao"`
}

// ComputeResulting calcula o estoque resultante de uma movimentação sem efeitos colaterais.
// SAIDA acima do estoque atual é rejeitada; não há piso em zero.
func ComputeResulting(kind MovementKind, current, quantity int) (int, error) {
	if quantity < 0 {
		return 0, apperror.NewInvalidQuantityError("a quantidade não pode ser negativa")
	}

	switch kind {
	case MovementEntry:
		return current + quantity, nil
	case MovementExit:
		if quantity > current {
			return 0, apperror.NewInsufficientStockError(current, quantity)
		}
		return current - quantity, nil
	case MovementInventoryCount:
		return quantity, nil
	default:
		return 0, apperror.NewValidationError("Tipo de movimentação inválido: " + string(kind))
	}
}

// Fold aplica as movimentações em ordem a partir de estoque zero.
// Movimentações rejeitadas não entram no livro, então não há erro a tratar aqui.
func Fold(movements []Movement) int {
	stock := 0
	for _, m := range movements {
		switch m.Kind {
		case MovementEntry:
			stock += m.Quantity
		case MovementExit:
			stock -= m.Quantity
		case MovementInventoryCount:
			stock = m.Quantity
		}
	}
	return stock
}

// MovementRequest é o payload de registro de movimentação.
type MovementRequest struct {
	EAN      string       `json:"ean" validate:"required,ean13" example:"7891234567890"`
	Kind     MovementKind `json:"tipo" validate:"required,oneof=ENTRADA SAIDA INVENTARIO" example:"ENTRADA"`
	Quantity *int         `json:"quantidade" validate:"required" example:"5"`
	Note     string       `json:"observacoes" validate:"max=500" example:"Recebimento do fornecedor"`
}

// QuantityOf devolve a quantidade no formato de MovementRequest. Ausente (nil)
// é diferente de zero: INVENTARIO com zero zera o estoque, sem quantidade é rejeitado.
func QuantityOf(n int) *int {
	return &n
}

// MovementResult é o resultado de uma movimentação aplicada: o lançamento
// gravado e o produto com o novo estoque.
type MovementResult struct {
	Movement Movement `json:"movimentacao"`
	Product  Product  `json:"produto"`
}
