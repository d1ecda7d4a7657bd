package ledgerservice

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
)

// ProductRepository define o que o livro precisa da coleção de produtos.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindByEAN(ctx context.Context, ean string) (*domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
}

// MovementRepository define o que o livro precisa da coleção de movimentações.
type MovementRepository interface {
	Create(ctx context.Context, movement domain.Movement) (domain.Movement, error)
	FindAll(ctx context.Context) ([]domain.Movement, error)
	FindByEAN(ctx context.Context, ean string) ([]domain.Movement, error)
}

// Service é o livro de movimentações de estoque.
type Service struct {
	products  ProductRepository
	movements MovementRepository
	logger    logger.Logger
	now       func() time.Time
}

// NewService cria o serviço do livro de movimentações.
func NewService(products ProductRepository, movements MovementRepository, logger logger.Logger) *Service {
	return &Service{
		products:  products,
		movements: movements,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock troca o relógio usado nas datas gravadas.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ApplyMovement valida a movimentação contra o produto informado e grava, nesta
// ordem, o lançamento e o produto com o novo estoque. Nada é gravado se a
// validação falhar. Se a atualização do produto falhar depois do lançamento
// gravado, devolve PartialWriteError e não desfaz o lançamento.
func (s *Service) ApplyMovement(ctx context.Context, product *domain.Product, kind domain.MovementKind, quantity int, session *domain.Session, note string) (domain.MovementResult, error) {
	if product == nil {
		return domain.MovementResult{}, apperror.NewProductNotFoundError("Produto não encontrado para a movimentação.")
	}

	current := product.CurrentStock
	resulting, err := domain.ComputeResulting(kind, current, quantity)
	if err != nil {
		s.logger.Debug("Movimentação rejeitada.", map[string]interface{}{
			"ean":        product.EAN,
			"tipo":       string(kind),
			"quantidade": quantity,
			"estoque":    current,
			"motivo":     err.Error(),
		})
		return domain.MovementResult{}, err
	}

	now := dateutil.FormatISO(s.now())

	movement := domain.Movement{
		ID:                 uuid.New().String(),
		EAN:                product.EAN,
		Kind:               kind,
		Quantity:           quantity,
		PreviousStock:      current,
		ResultingStock:     resulting,
		Date:               now,
		User:               session.DisplayName(),
		ProductDescription: product.Description,
	}
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		movement.Note = &trimmed
	}

	recorded, err := s.movements.Create(ctx, movement)
	if err != nil {
		return domain.MovementResult{}, fmt.Errorf("falha ao gravar movimentação: %w", err)
	}

	updated := *product
	updated.CurrentStock = resulting
	updated.LastMovementAt = now

	saved, err := s.products.Update(ctx, updated)
	if err != nil {
		s.logger.Error("Movimentação gravada sem atualização do produto; estoque divergente.", err)
		return domain.MovementResult{Movement: recorded, Product: *product}, apperror.NewPartialWriteError(recorded.ID, err)
	}

	return domain.MovementResult{Movement: recorded, Product: saved}, nil
}

// RegisterMovement é a operação de balcão: valida o pedido, busca o produto
// atual pelo EAN e aplica a movimentação. ENTRADA e SAIDA exigem quantidade >= 1;
// INVENTARIO aceita zero, mas a quantidade precisa ser informada.
func (s *Service) RegisterMovement(ctx context.Context, req domain.MovementRequest, session *domain.Session) (domain.MovementResult, error) {
	if !domain.IsValidEAN(req.EAN) {
		return domain.MovementResult{}, apperror.NewValidationError("O EAN deve conter exatamente 13 dígitos.")
	}
	if !req.Kind.Valid() {
		return domain.MovementResult{}, apperror.NewValidationError("Tipo de movimentação inválido: " + string(req.Kind))
	}
	if req.Quantity == nil {
		return domain.MovementResult{}, apperror.NewValidationError("O campo quantidade é obrigatório.")
	}
	quantity := *req.Quantity
	if quantity < 0 {
		return domain.MovementResult{}, apperror.NewInvalidQuantityError("a quantidade não pode ser negativa")
	}
	if req.Kind != domain.MovementInventoryCount && quantity < 1 {
		return domain.MovementResult{}, apperror.NewInvalidQuantityError("entradas e saídas exigem quantidade maior que zero")
	}

	product, err := s.products.FindByEAN(ctx, req.EAN)
	if err != nil {
		return domain.MovementResult{}, err
	}
	if product == nil {
		return domain.MovementResult{}, apperror.NewProductNotFoundError(fmt.Sprintf("Nenhum produto com EAN %s.", req.EAN))
	}

	return s.ApplyMovement(ctx, product, req.Kind, quantity, session, req.Note)
}

// ListMovements devolve o livro inteiro, ou apenas um EAN, na ordem de criação.
func (s *Service) ListMovements(ctx context.Context, ean string) ([]domain.Movement, error) {
	if ean != "" {
		return s.movements.FindByEAN(ctx, ean)
	}
	return s.movements.FindAll(ctx)
}

// ProductHistory devolve o produto, suas movimentações e o estoque recalculado
// pelo livro. Divergências são expostas, não corrigidas.
func (s *Service) ProductHistory(ctx context.Context, productID string) (domain.ProductHistory, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return domain.ProductHistory{}, err
	}

	movements, err := s.movements.FindByEAN(ctx, product.EAN)
	if err != nil {
		return domain.ProductHistory{}, err
	}

	computed := domain.Fold(movements)
	if computed != product.CurrentStock {
		s.logger.Warn("Estoque do produto diverge do livro de movimentações.", map[string]interface{}{
			"product_id":        product.ID,
			"estoque_atual":     product.CurrentStock,
			"estoque_calculado": computed,
		})
	}

	return domain.ProductHistory{
		Product:       product,
		Movements:     movements,
		ComputedStock: computed,
		Consistent:    computed == product.CurrentStock,
	}, nil
}
