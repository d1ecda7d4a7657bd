package domain

import "strings"

// Product representa um item do cadastro de produtos (coleção "produtos").
// Os nomes JSON são o contrato com o armazenamento de documentos.
type Product struct {
	ID             string         `json:"id"`
	EAN            string         `json:"ean"`
	Description    string         `json:"descricao"`
	BrandID        string         `json:"marca_id"`
	MinStock       int            `json:"estoque_minimo"`
	CurrentStock   int            `json:"estoque_atual"`
	RegisteredAt   string         `json:"data_cadastro"`                 // DD/MM/YYYY
	LastMovementAt string         `json:"ultima_movimentacao,omitempty"` // ISO-8601
	Active         bool           `json:"ativo"`
	History        []HistoryEntry `json:"historico,omitempty"`
}

// ProductTrackedFields lista os campos cuja alteração entra no histórico.
// estoque_atual fica de fora: só as movimentações o alteram.
var ProductTrackedFields = []string{"ean", "descricao", "marca_id", "estoque_minimo", "ativo"}

// TrackedValues devolve os valores atuais dos campos rastreados, indexados pelo nome JSON.
func (p Product) TrackedValues() map[string]interface{} {
	return map[string]interface{}{
		"ean":            p.EAN,
		"descricao":      p.Description,
		"marca_id":       p.BrandID,
		"estoque_minimo": p.MinStock,
		"ativo":          p.Active,
	}
}

// LowStock indica se o estoque atual atingiu o mínimo configurado.
func (p Product) LowStock() bool {
	return p.CurrentStock <= p.MinStock
}

// Matches informa se o termo aparece na descrição (sem diferenciar maiúsculas)
// ou no EAN. Termo vazio casa com tudo.
func (p Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Description), strings.ToLower(term)) ||
		strings.Contains(p.EAN, term)
}

// ProductInput é o payload de cadastro de produto.
type ProductInput struct {
	EAN         string `json:"ean" validate:"required,ean13" example:"7891234567890"`
	Description string `json:"descricao" validate:"required,max=200" example:"Pastilha de freio dianteira"`
	BrandID     string `json:"marca_id" validate:"required" example:"3b0f"`
	MinStock    int    `json:"estoque_minimo" validate:"gte=0" example:"10"`
}

// ProductUpdate é o payload de edição. Campos ausentes não são alterados.
type ProductUpdate struct {
	EAN         *string `json:"ean,omitempty" validate:"omitempty,ean13"`
	Description *string `json:"descricao,omitempty" validate:"omitempty,min=1,max=200"`
	BrandID     *string `json:"marca_id,omitempty" validate:"omitempty,min=1"`
	MinStock    *int    `json:"estoque_minimo,omitempty" validate:"omitempty,gte=0"`
	Active      *bool   `json:"ativo,omitempty"`
}

// Values devolve apenas os campos presentes na edição, indexados pelo nome JSON.
func (u ProductUpdate) Values() map[string]interface{} {
	values := make(map[string]interface{})
	if u.EAN != nil {
		values["ean"] = *u.EAN
	}
	if u.Description != nil {
		values["descricao"] = *u.Description
	}
	if u.BrandID != nil {
		values["marca_id"] = *u.BrandID
	}
	if u.MinStock != nil {
		values["estoque_minimo"] = *u.MinStock
	}
	if u.Active != nil {
		values["ativo"] = *u.Active
	}
	return values
}

// Apply copia para o produto os campos presentes na edição.
func (u ProductUpdate) Apply(p Product) Product {
	if u.EAN != nil {
		p.EAN = *u.EAN
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.BrandID != nil {
		p.BrandID = *u.BrandID
	}
	if u.MinStock != nil {
		p.MinStock = *u.MinStock
	}
	if u.Active != nil {
		p.Active = *u.Active
	}
	return p
}

// ProductFilter define os filtros de listagem.
type ProductFilter struct {
	EAN          string
	Search       string
	LowStockOnly bool
}

// ProductHistory é a visão de histórico: o produto, suas movimentações e o
// estoque recalculado a partir do livro de movimentações.
type ProductHistory struct {
	Product       Product    `json:"produto"`
	Movements     []Movement `json:"movimentacoes"`
	ComputedStock int        `json:"estoque_calculado"`
	Consistent    bool       `json:"consistente"`
}

// IsValidEAN verifica se o código tem exatamente 13 dígitos.
func IsValidEAN(ean string) bool {
	if len(ean) != 13 {
		return false
	}
	for _, c := range ean {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
