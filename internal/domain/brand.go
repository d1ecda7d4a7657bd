package domain

// Brand representa uma marca (coleção "marcas").
type Brand struct {
	ID           string         `json:"id"`
	Name         string         `json:"nome"`
	RegisteredAt string         `json:"data_cadastro"` // DD/MM/YYYY
	History      []HistoryEntry `json:"historico,omitempty"`
}

// BrandTrackedFields lista os campos de marca registrados no histórico.
var BrandTrackedFields = []string{"nome"}

// TrackedValues devolve os valores atuais dos campos rastreados.
func (b Brand) TrackedValues() map[string]interface{} {
	return map[string]interface{}{"nome": b.Name}
}

// BrandInput é o payload de cadastro e edição de marca.
type BrandInput struct {
	Name string `json:"nome" validate:"required,max=120" example:"Cobreq"`
}
