// Package dateutil formata datas nos dois padrões usados pelos documentos:
// DD/MM/YYYY nos campos de cadastro e ISO-8601 em UTC com milissegundos nos
// campos de movimentação e histórico.
package dateutil

import (
	"fmt"
	"time"
)

const (
	brDateLayout     = "02/01/2006"
	brDateTimeLayout = "02/01/2006 15:04"
	isoLayout        = "2006-01-02T15:04:05.000Z"
	isoDateLayout    = "2006-01-02"
)

// FormatISO formata t em UTC como 2025-08-29T14:23:47.938Z.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// FormatDateBR formata t como DD/MM/YYYY.
func FormatDateBR(t time.Time) string {
	return t.Format(brDateLayout)
}

// FormatDateTimeBR formata t como DD/MM/YYYY HH:MM.
func FormatDateTimeBR(t time.Time) string {
	return t.Format(brDateTimeLayout)
}

// ParseISO aceita o formato com milissegundos e o RFC3339 comum.
func ParseISO(s string) (time.Time, error) {
	if t, err := time.Parse(isoLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// ConvertBRtoISO converte DD/MM/YYYY em YYYY-MM-DD. Entrada vazia devolve vazio.
func ConvertBRtoISO(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(brDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("data inválida %q: %w", s, err)
	}
	return t.Format(isoDateLayout), nil
}

// ConvertISOtoBR converte YYYY-MM-DD (ou um timestamp ISO completo) em DD/MM/YYYY.
func ConvertISOtoBR(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		if t, err = ParseISO(s); err != nil {
			return "", fmt.Errorf("data inválida %q: %w", s, err)
		}
	}
	return t.Format(brDateLayout), nil
}
