package ledgerservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/repository/movementrepo"
	"estoque/internal/repository/productrepo"
	"estoque/internal/service/ledgerservice"
	"estoque/internal/store/mirror"
)

func TestLedgerScenario_OnMirror(t *testing.T) {
	log := logger.NewNop()
	m, err := mirror.New(0, log)
	require.NoError(t, err)

	products := productrepo.NewProductRepository(m, log)
	movements := movementrepo.NewMovementRepository(m, log)
	svc := ledgerservice.NewService(products, movements, log)
	ctx := context.Background()
	session := &domain.Session{Name: "Operador"}

	const ean = "5555555555555"
	_, err = products.Create(ctx, domain.Product{ID: "p-cenario", EAN: ean, Description: "Cenário", BrandID: "3b0f", Active: true})
	require.NoError(t, err)

	steps := []struct {
		kind     domain.MovementKind
		quantity int
		want     int
		rejected bool
	}{
		{domain.MovementEntry, 10, 10, false},
		{domain.MovementEntry, 20, 30, false},
		{domain.MovementExit, 25, 5, false},
		{domain.MovementExit, 10, 5, true},
		{domain.MovementInventoryCount, 0, 0, false},
	}

	for _, step := range steps {
		res, err := svc.RegisterMovement(ctx, domain.MovementRequest{EAN: ean, Kind: step.kind, Quantity: domain.QuantityOf(step.quantity)}, session)
		if step.rejected {
			assert.IsType(t, &apperror.InsufficientStockError{}, err)
		} else {
			require.NoError(t, err)
			assert.Equal(t, step.want, res.Product.CurrentStock)
		}

		current, err := products.FindByID(ctx, "p-cenario")
		require.NoError(t, err)
		assert.Equal(t, step.want, current.CurrentStock)
	}

	ledger, err := svc.ListMovements(ctx, ean)
	require.NoError(t, err)
	require.Len(t, ledger, 4, "a saída rejeitada não entra no livro")
	assert.Equal(t, []int{0, 10, 30, 5}, []int{ledger[0].PreviousStock, ledger[1].PreviousStock, ledger[2].PreviousStock, ledger[3].PreviousStock})
	assert.Equal(t, domain.MovementInventoryCount, ledger[3].Kind)

	history, err := svc.ProductHistory(ctx, "p-cenario")
	require.NoError(t, err)
	assert.Equal(t, 0, history.ComputedStock)
	assert.True(t, history.Consistent)

	// Releitura não altera o livro.
	again, err := svc.ListMovements(ctx, ean)
	require.NoError(t, err)
	assert.Equal(t, ledger, again)
}
