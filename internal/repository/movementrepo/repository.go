package movementrepo

import (
	"context"

	"estoque/internal/domain"
	"estoque/internal/pkg/logger"
	"estoque/internal/store"
)

// MovementRepository acessa o livro de movimentações. Só há inclusão e leitura:
// lançamentos gravados nunca são alterados nem removidos.
type MovementRepository struct {
	docs   *store.Repository[domain.Movement]
	logger logger.Logger
}

// NewMovementRepository cria o repositório de movimentações.
func NewMovementRepository(backend store.Backend, logger logger.Logger) *MovementRepository {
	return &MovementRepository{
		docs:   store.NewRepository[domain.Movement](backend, store.Movements),
		logger: logger,
	}
}

// Create acrescenta um lançamento ao livro.
func (r *MovementRepository) Create(ctx context.Context, movement domain.Movement) (domain.Movement, error) {
	created, err := r.docs.Create(ctx, movement)
	if err != nil {
		r.logger.Error("Falha ao gravar movimentação.", err)
		return domain.Movement{}, err
	}

	r.logger.Info("Movimentação gravada.", map[string]interface{}{
		"movement_id": created.ID,
		"ean":         created.EAN,
		"tipo":        string(created.Kind),
		"quantidade":  created.Quantity,
		"anterior":    created.PreviousStock,
		"novo":        created.ResultingStock,
	})
	return created, nil
}

// FindAll lista todos os lançamentos na ordem de criação.
func (r *MovementRepository) FindAll(ctx context.Context) ([]domain.Movement, error) {
	return r.docs.FindAll(ctx)
}

// FindByEAN lista os lançamentos de um EAN na ordem de criação.
func (r *MovementRepository) FindByEAN(ctx context.Context, ean string) ([]domain.Movement, error) {
	r.logger.Debug("Buscando movimentações por EAN.", map[string]interface{}{"ean": ean})
	return r.docs.FindBy(ctx, "ean", ean)
}
