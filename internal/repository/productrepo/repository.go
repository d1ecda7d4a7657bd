package productrepo

import (
	"context"
	"fmt"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/store"
)

// ProductRepository acessa a coleção "produtos" pelo cliente de armazenamento.
type ProductRepository struct {
	docs   *store.Repository[domain.Product]
	logger logger.Logger
}

// NewProductRepository cria o repositório sobre o backend selecionado (vivo ou espelho).
func NewProductRepository(backend store.Backend, logger logger.Logger) *ProductRepository {
	return &ProductRepository{
		docs:   store.NewRepository[domain.Product](backend, store.Products),
		logger: logger,
	}
}

// Create grava um novo produto.
func (r *ProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	r.logger.Debug("Gravando produto no repositório.", map[string]interface{}{"ean": product.EAN})

	created, err := r.docs.Create(ctx, product)
	if err != nil {
		r.logger.Error("Falha ao gravar produto.", err)
		return domain.Product{}, err
	}

	r.logger.Info("Produto gravado com sucesso.", map[string]interface{}{"product_id": created.ID, "ean": created.EAN})
	return created, nil
}

// FindByID busca um produto pelo id.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	product, err := r.docs.FindByID(ctx, id)
	if err != nil {
		if apperror.IsNotFound(err) {
			return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe.", id))
		}
		return domain.Product{}, err
	}
	return product, nil
}

// FindByEAN devolve o produto com o EAN informado, ou nil se não houver.
func (r *ProductRepository) FindByEAN(ctx context.Context, ean string) (*domain.Product, error) {
	products, err := r.docs.FindBy(ctx, "ean", ean)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		r.logger.Debug("Nenhum produto com o EAN informado.", map[string]interface{}{"ean": ean})
		return nil, nil
	}
	return &products[0], nil
}

// FindAll lista os produtos na ordem de cadastro.
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.docs.FindAll(ctx)
}

// Update grava o produto inteiro sobre o documento existente.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := r.docs.Update(ctx, product.ID, product)
	if err != nil {
		r.logger.Error("Falha ao atualizar produto.", err)
		return domain.Product{}, err
	}
	return updated, nil
}

// Delete remove o produto.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.docs.Delete(ctx, id); err != nil {
		return err
	}
	r.logger.Info("Produto removido.", map[string]interface{}{"product_id": id})
	return nil
}
