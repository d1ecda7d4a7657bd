// Package historyservice calcula as alterações de uma edição e monta a entrada
// de histórico correspondente. Não conhece armazenamento: quem chama anexa a
// entrada ao histórico da entidade e grava.
package historyservice

import (
	"reflect"
	"time"

	"estoque/internal/domain"
	"estoque/internal/pkg/dateutil"
)

// Diff compara os campos rastreados presentes em edited com os valores de
// original. Campos ausentes de edited não entram na comparação. Valores de
// tipos diferentes (1 e "1") contam como alteração; mapas e listas são
// comparados pelo conteúdo.
func Diff(original, edited map[string]interface{}, tracked []string) map[string]domain.FieldChange {
	changes := make(map[string]domain.FieldChange)
	for _, field := range tracked {
		newValue, present := edited[field]
		if !present {
			continue
		}
		oldValue := original[field]
		if !reflect.DeepEqual(oldValue, newValue) {
			changes[field] = domain.FieldChange{oldValue, newValue}
		}
	}
	return changes
}

// RecordEdit devolve a entrada de histórico da edição e true, ou false quando
// nenhum campo rastreado mudou (nesse caso nada deve ser gravado).
func RecordEdit(original, edited map[string]interface{}, tracked []string, session *domain.Session, now time.Time) (domain.HistoryEntry, bool) {
	changes := Diff(original, edited, tracked)
	if len(changes) == 0 {
		return domain.HistoryEntry{}, false
	}

	return domain.HistoryEntry{
		Date:    dateutil.FormatISO(now),
		User:    session.DisplayName(),
		Changes: changes,
	}, true
}

// Append devolve um novo histórico com entry no fim. O slice recebido não é alterado.
func Append(history []domain.HistoryEntry, entry domain.HistoryEntry) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(history), len(history)+1)
	copy(out, history)
	return append(out, entry)
}
