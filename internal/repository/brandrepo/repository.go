package brandrepo

import (
	"context"
	"fmt"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/store"
)

// BrandRepository acessa a coleção "marcas".
type BrandRepository struct {
	docs   *store.Repository[domain.Brand]
	logger logger.Logger
}

// NewBrandRepository cria o repositório de marcas.
func NewBrandRepository(backend store.Backend, logger logger.Logger) *BrandRepository {
	return &BrandRepository{
		docs:   store.NewRepository[domain.Brand](backend, store.Brands),
		logger: logger,
	}
}

func (r *BrandRepository) Create(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	r.logger.Debug("Gravando marca no repositório.", map[string]interface{}{"nome": brand.Name})

	created, err := r.docs.Create(ctx, brand)
	if err != nil {
		r.logger.Error("Falha ao gravar marca.", err)
		return domain.Brand{}, err
	}
	return created, nil
}

func (r *BrandRepository) FindByID(ctx context.Context, id string) (domain.Brand, error) {
	brand, err := r.docs.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return domain.Brand{}, apperror.NewNotFoundError(fmt.Sprintf("Marca com ID %s não existe.", id))
		}
		return domain.Brand{}, err
	}
	return brand, nil
}

func (r *BrandRepository) FindAll(ctx context.Context) ([]domain.Brand, error) {
	return r.docs.FindAll(ctx)
}

func (r *BrandRepository) Update(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	updated, err := r.docs.Update(ctx, brand.ID, brand)
	if err != nil {
		r.logger.Error("Falha ao atualizar marca.", err)
		return domain.Brand{}, err
	}
	return updated, nil
}

func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	if err := r.docs.Delete(ctx, id); err != nil {
		return err
	}
	r.logger.Info("Marca removida.", map[string]interface{}{"brand_id": id})
	return nil
}
