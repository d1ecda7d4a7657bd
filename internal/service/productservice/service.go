package productservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/dateutil"
	"estoque/internal/pkg/logger"
	"estoque/internal/service/historyservice"
)

// ProductRepository define o contrato que este Serviço espera da camada de Persistência.
type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindByEAN(ctx context.Context, ean string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// BrandRepository é usado para conferir a marca informada no produto.
type BrandRepository interface {
	FindByID(ctx context.Context, id string) (domain.Brand, error)
}

// Service implementa o cadastro de produtos.
type Service struct {
	repo   ProductRepository
	brands BrandRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, brands BrandRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, brands: brands, logger: logger, now: time.Now}
}

// WithClock troca o relógio usado em data_cadastro e no histórico.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) ensureBrand(ctx context.Context, brandID string) error {
	if _, err := s.brands.FindByID(ctx, brandID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidationError(fmt.Sprintf("Marca %s não cadastrada.", brandID))
		}
		return err
	}
	return nil
}

// ensureUniqueEAN verifica o EAN antes da gravação. Duas gravações simultâneas
// com o mesmo EAN ainda podem passar as duas.
func (s *Service) ensureUniqueEAN(ctx context.Context, ean, selfID string) error {
	existing, err := s.repo.FindByEAN(ctx, ean)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return apperror.NewDuplicateEntityError(fmt.Sprintf("Já existe um produto com o EAN %s.", ean))
	}
	return nil
}

// CreateProduct cadastra um produto. O estoque inicial é sempre zero.
func (s *Service) CreateProduct(ctx context.Context, input domain.ProductInput) (domain.Product, error) {
	s.logger.Debug("Iniciando cadastro de produto no serviço.", map[string]interface{}{"ean": input.EAN})

	input.Description = strings.TrimSpace(input.Description)
	if !domain.IsValidEAN(input.EAN) {
		return domain.Product{}, apperror.NewValidationError("O EAN deve conter exatamente 13 dígitos.")
	}
	if input.Description == "" || input.BrandID == "" {
		return domain.Product{}, apperror.NewValidationError("Descrição e marca são obrigatórias para o produto.")
	}
	if input.MinStock < 0 {
		return domain.Product{}, apperror.NewValidationError("O estoque mínimo não pode ser negativo.")
	}

	if err := s.ensureBrand(ctx, input.BrandID); err != nil {
		return domain.Product{}, err
	}
	if err := s.ensureUniqueEAN(ctx, input.EAN, ""); err != nil {
		return domain.Product{}, err
	}

	product := domain.Product{
		ID:           uuid.New().String(),
		EAN:          input.EAN,
		Description:  input.Description,
		BrandID:      input.BrandID,
		MinStock:     input.MinStock,
		CurrentStock: 0,
		RegisteredAt: dateutil.FormatDateBR(s.now()),
		Active:       true,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("falha ao salvar produto no repositório: %w", err)
	}

	s.logger.Info("Produto cadastrado com sucesso.", map[string]interface{}{"id": created.ID, "ean": created.EAN})
	return created, nil
}

// GetProductByID busca um produto pelo id.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, apperror.NewValidationError("ID do produto é obrigatório.")
	}
	return s.repo.FindByID(ctx, id)
}

// ListProducts lista os produtos, opcionalmente filtrando por EAN exato, por
// termo de busca (descrição ou EAN) e por estoque baixo.
func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var products []domain.Product

	if filter.EAN != "" {
		p, err := s.repo.FindByEAN(ctx, filter.EAN)
		if err != nil {
			return nil, err
		}
		products = []domain.Product{}
		if p != nil {
			products = append(products, *p)
		}
	} else {
		all, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		products = all
	}

	search := strings.TrimSpace(filter.Search)
	if search == "" && !filter.LowStockOnly {
		return products, nil
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter.LowStockOnly && !p.LowStock() {
			continue
		}
		if !p.Matches(search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// UpdateProduct aplica a edição e grava uma entrada no histórico. O estoque atual
// nunca é alterado aqui. Devolve changed=false, sem gravar, se nada mudou.
func (s *Service) UpdateProduct(ctx context.Context, id string, upd domain.ProductUpdate, session *domain.Session) (domain.Product, bool, error) {
	original, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, false, err
	}

	if upd.EAN != nil && *upd.EAN != original.EAN {
		if !domain.IsValidEAN(*upd.EAN) {
			return domain.Product{}, false, apperror.NewValidationError("O EAN deve conter exatamente 13 dígitos.")
		}
		if err := s.ensureUniqueEAN(ctx, *upd.EAN, original.ID); err != nil {
			return domain.Product{}, false, err
		}
	}
	if upd.Description != nil {
		trimmed := strings.TrimSpace(*upd.Description)
		if trimmed == "" {
			return domain.Product{}, false, apperror.NewValidationError("A descrição não pode ser vazia.")
		}
		upd.Description = &trimmed
	}
	if upd.MinStock != nil && *upd.MinStock < 0 {
		return domain.Product{}, false, apperror.NewValidationError("O estoque mínimo não pode ser negativo.")
	}
	if upd.BrandID != nil && *upd.BrandID != original.BrandID {
		if err := s.ensureBrand(ctx, *upd.BrandID); err != nil {
			return domain.Product{}, false, err
		}
	}

	entry, changed := historyservice.RecordEdit(original.TrackedValues(), upd.Values(), domain.ProductTrackedFields, session, s.now())
	if !changed {
		s.logger.Debug("Edição de produto sem alterações.", map[string]interface{}{"id": id})
		return original, false, nil
	}

	edited := upd.Apply(original)
	edited.CurrentStock = original.CurrentStock
	edited.History = historyservice.Append(original.History, entry)

	saved, err := s.repo.Update(ctx, edited)
	if err != nil {
		return domain.Product{}, false, err
	}

	s.logger.Info("Produto atualizado.", map[string]interface{}{"id": id, "usuario": entry.User, "campos": len(entry.Changes)})
	return saved, true, nil
}

// DeleteProduct remove o produto. As movimentações do EAN permanecem no livro.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Produto removido.", map[string]interface{}{"id": id})
	return nil
}
