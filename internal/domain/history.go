package domain

// FieldChange guarda o par [valor antigo, valor novo] de um campo alterado.
type FieldChange [2]interface{}

// HistoryEntry é um registro de edição. Nunca é gravado com alteracoes vazio.
type HistoryEntry struct {
	Date    string                 `json:"data"` // ISO-8601
	User    string                 `json:"usuario"`
	Changes map[string]FieldChange `json:"alteracoes"`
}
