package brandservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/dateutil"
	"estoque/internal/pkg/logger"
	"estoque/internal/service/historyservice"
)

// BrandRepository define o contrato que o Serviço de Marcas espera da camada de Persistência.
type BrandRepository interface {
	Create(ctx context.Context, brand domain.Brand) (domain.Brand, error)
	FindByID(ctx context.Context, id string) (domain.Brand, error)
	FindAll(ctx context.Context) ([]domain.Brand, error)
	Update(ctx context.Context, brand domain.Brand) (domain.Brand, error)
	Delete(ctx context.Context, id string) error
}

// Service implementa o cadastro de marcas.
type Service struct {
	repo   BrandRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Marcas.
func NewService(repo BrandRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithClock troca o relógio usado em data_cadastro e no histórico.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) validateBrandName(name string) error {
	if name == "" {
		return apperror.NewValidationError("O nome da marca não pode ser vazio.")
	}
	if len(name) > 120 {
		return apperror.NewValidationError("O nome da marca deve ter no máximo 120 caracteres.")
	}
	return nil
}

// CreateBrand cadastra uma marca.
func (s *Service) CreateBrand(ctx context.Context, input domain.BrandInput) (domain.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.validateBrandName(name); err != nil {
		s.logger.Warn("Falha na validação do nome da marca.", map[string]interface{}{"nome": input.Name, "error": err.Error()})
		return domain.Brand{}, err
	}

	brand := domain.Brand{
		ID:           uuid.New().String(),
		Name:         name,
		RegisteredAt: dateutil.FormatDateBR(s.now()),
	}

	created, err := s.repo.Create(ctx, brand)
	if err != nil {
		return domain.Brand{}, err
	}

	s.logger.Info("Marca criada com sucesso.", map[string]interface{}{"id": created.ID, "nome": created.Name})
	return created, nil
}

// GetBrandByID busca uma marca pelo id.
func (s *Service) GetBrandByID(ctx context.Context, id string) (domain.Brand, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Brand{}, apperror.NewValidationError("ID da marca é obrigatório.")
	}
	return s.repo.FindByID(ctx, id)
}

// ListBrands lista as marcas na ordem de cadastro.
func (s *Service) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return s.repo.FindAll(ctx)
}

// UpdateBrand renomeia a marca e registra a alteração no histórico.
// Devolve changed=false, sem gravar, se o nome não mudou.
func (s *Service) UpdateBrand(ctx context.Context, id string, input domain.BrandInput, session *domain.Session) (domain.Brand, bool, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.validateBrandName(name); err != nil {
		return domain.Brand{}, false, err
	}

	original, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Brand{}, false, err
	}

	edited := original
	edited.Name = name

	entry, changed := historyservice.RecordEdit(original.TrackedValues(), edited.TrackedValues(), domain.BrandTrackedFields, session, s.now())
	if !changed {
		return original, false, nil
	}
	edited.History = historyservice.Append(original.History, entry)

	saved, err := s.repo.Update(ctx, edited)
	if err != nil {
		return domain.Brand{}, false, err
	}

	s.logger.Info("Marca atualizada.", map[string]interface{}{"id": id, "usuario": entry.User})
	return saved, true, nil
}

// DeleteBrand remove a marca.
func (s *Service) DeleteBrand(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Marca removida.", map[string]interface{}{"id": id})
	return nil
}

// BrandHistory devolve o histórico de edições da marca, do mais antigo ao mais recente.
func (s *Service) BrandHistory(ctx context.Context, id string) ([]domain.HistoryEntry, error) {
	brand, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand.History == nil {
		return []domain.HistoryEntry{}, nil
	}
	return brand.History, nil
}
