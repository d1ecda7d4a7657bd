package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
)

func TestComputeResulting(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.MovementKind
		current  int
		quantity int
		want     int
	}{
		{"entrada soma", domain.MovementEntry, 10, 20, 30},
		{"saida subtrai", domain.MovementExit, 30, 25, 5},
		{"saida de todo o estoque", domain.MovementExit, 5, 5, 0},
		{"inventario substitui", domain.MovementInventoryCount, 5, 12, 12},
		{"inventario zero zera", domain.MovementInventoryCount, 42, 0, 0},
		{"entrada zero mantem", domain.MovementEntry, 7, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ComputeResulting(tt.kind, tt.current, tt.quantity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeResulting_ExitAboveStock(t *testing.T) {
	_, err := domain.ComputeResulting(domain.MovementExit, 5, 10)

	require.Error(t, err)
	assert.IsType(t, &apperror.InsufficientStockError{}, err)
	assert.Contains(t, err.Error(), "Disponível: 5, Solicitado: 10")
}

func TestComputeResulting_NegativeQuantity(t *testing.T) {
	_, err := domain.ComputeResulting(domain.MovementEntry, 5, -1)
	assert.IsType(t, &apperror.InvalidQuantityError{}, err)
}

func TestComputeResulting_UnknownKind(t *testing.T) {
	_, err := domain.ComputeResulting(domain.MovementKind("TRANSFERENCIA"), 5, 1)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestFold_MatchesSequentialApplication(t *testing.T) {
	steps := []struct {
		kind     domain.MovementKind
		quantity int
	}{
		{domain.MovementEntry, 10},
		{domain.MovementEntry, 20},
		{domain.MovementExit, 25},
		{domain.MovementExit, 10}, // rejeitada: estoque 5
		{domain.MovementInventoryCount, 0},
		{domain.MovementEntry, 3},
	}

	var ledger []domain.Movement
	stock := 0
	for _, s := range steps {
		next, err := domain.ComputeResulting(s.kind, stock, s.quantity)
		if err != nil {
			continue
		}
		ledger = append(ledger, domain.Movement{Kind: s.kind, Quantity: s.quantity, PreviousStock: stock, ResultingStock: next})
		stock = next
	}

	assert.Len(t, ledger, 5)
	assert.Equal(t, 3, stock)
	assert.Equal(t, stock, domain.Fold(ledger))
	assert.Equal(t, ledger[len(ledger)-1].ResultingStock, domain.Fold(ledger))
}

func TestFold_Empty(t *testing.T) {
	assert.Equal(t, 0, domain.Fold(nil))
}
