package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"422"`
	Category string `json:"category" example:"INSUFFICIENT_STOCK"`
	Message  string `json:"message" example:"Estoque insuficiente. Disponível: 5, Solicitado: 10"`
}

// RecoveryMessage é a mensagem devolvida quando um pânico é recuperado.
const RecoveryMessage = "Ocorreu um erro inesperado. Recarregue a página."
