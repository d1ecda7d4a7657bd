package ledgerservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/service/ledgerservice"
)

// MockProductRepository é uma implementação mock de ledgerservice.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByEAN(ctx context.Context, ean string) (*domain.Product, error) {
	args := m.Called(ctx, ean)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	if fn, ok := args.Get(0).(func(context.Context, domain.Product) domain.Product); ok {
		return fn(ctx, product), args.Error(1)
	}
	return args.Get(0).(domain.Product), args.Error(1)
}

// MockMovementRepository é uma implementação mock de ledgerservice.MovementRepository.
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Create(ctx context.Context, movement domain.Movement) (domain.Movement, error) {
	args := m.Called(ctx, movement)
	if fn, ok := args.Get(0).(func(context.Context, domain.Movement) domain.Movement); ok {
		return fn(ctx, movement), args.Error(1)
	}
	return args.Get(0).(domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindAll(ctx context.Context) ([]domain.Movement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindByEAN(ctx context.Context, ean string) ([]domain.Movement, error) {
	args := m.Called(ctx, ean)
	return args.Get(0).([]domain.Movement), args.Error(1)
}

var fixedNow = time.Date(2025, 8, 29, 14, 23, 47, 938_000_000, time.UTC)

func newService(products *MockProductRepository, movements *MockMovementRepository) *ledgerservice.Service {
	return ledgerservice.NewService(products, movements, logger.NewNop()).WithClock(func() time.Time { return fixedNow })
}

func sampleProduct(stock int) *domain.Product {
	return &domain.Product{ID: "1", EAN: "7891234567890", Description: "Produto Principal", CurrentStock: stock, MinStock: 10, Active: true}
}

// echoCreate devolve o próprio lançamento recebido.
func echoCreate(movements *MockMovementRepository) {
	movements.On("Create", mock.Anything, mock.AnythingOfType("domain.Movement")).
		Return(func(_ context.Context, m domain.Movement) domain.Movement { return m }, nil)
}

func echoUpdate(products *MockProductRepository) {
	products.On("Update", mock.Anything, mock.AnythingOfType("domain.Product")).
		Return(func(_ context.Context, p domain.Product) domain.Product { return p }, nil)
}

func TestApplyMovement_Entry(t *testing.T) {
	products, movements := new(MockProductRepository), new(MockMovementRepository)
	echoCreate(movements)
	echoUpdate(products)
	svc := newService(products, movements)

	res, err := svc.ApplyMovement(context.Background(), sampleProduct(10), domain.MovementEntry, 20, &domain.Session{Name: "Admin"}, "  Recebimento  ")

	require.NoError(t, err)
	assert.Equal(t, 10, res.Movement.PreviousStock)
	assert.Equal(t, 30, res.Movement.ResultingStock)
	assert.Equal(t, "Admin", res.Movement.User)
	require.NotNil(t, res.Movement.Note)
	assert.Equal(t, "Recebimento", *res.Movement.Note)
	assert.Equal(t, "Produto Principal", res.Movement.ProductDescription)
	assert.Equal(t, "2025-08-29T14:23:47.938Z", res.Movement.Date)
	assert.Equal(t, 30, res.Product.CurrentStock)
	assert.Equal(t, res.Movement.Date, res.Product.LastMovementAt)
}

func TestApplyMovement_WriteOrder(t *testing.T) {
	products, movements := new(MockProductRepository), new(MockMovementRepository)
	var order []string
	movements.On("Create", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { order = append(order, "movimentacao") }).
		Return(domain.Movement{ID: "m1"}, nil)
	products.On("Update", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { order = append(order, "produto") }).
		Return(domain.Product{}, nil)
	svc := newService(products, movements)

	_, err := svc.ApplyMovement(context.Background(), sampleProduct(1), domain.MovementExit, 1, nil, "")

	require.NoError(t, err)
	assert.Equal(t, []string{"movimentacao", "produto"}, order)
}

func TestApplyMovement_EmptyNoteIsNull(t *testing.T) {
	products, movements := new(MockProductRepository), new(MockMovementRepository)
	echoCreate(movements)
	echoUpdate(products)
	svc := newService(products, movements)

	res, err := svc.ApplyMovement(context.Background(), sampleProduct(1), domain.MovementEntry, 1, nil, "   ")

	require.NoError(t, err)
	assert.Nil(t, res.Movement.Note)
	assert.Equal(t, "Sistema", res.Movement.User)
}

func TestApplyMovement_ExitAboveStock_NoWrites(t *testing.T) {
	products, movements := new(MockProductRepository), new(MockMovementRepository)
	svc := newService(products, movements)

	_, err := svc.ApplyMovement(context.Background(), sampleProduct(5), domain.MovementExit, 10, nil, "")

	require.Error(t, err)
	assert.IsType(t, &apperror.InsufficientStockError{}, err)
	movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApplyMovement_NilProduct(t *testing.T) {
	svc := newService(new(MockProductRepository), new(MockMovementRepository))

	_, err := svc.ApplyMovement(context.Background(), nil, domain.MovementEntry, 1, nil, "")

	assert.True(t, apperror.IsNotFound(err))
}

func TestApplyMovement_InventoryZero(t *testing.T) {
	products, movements := new(MockProductRepository), new(MockMovementRepository)
	echoCreate(movements)
	echoUpdate(products)
	svc := newService(products, movements)

	res, err := svc.ApplyMovement(context.Background(), sampleProduct(42), domain.MovementInventoryCount, 0, nil, "")

	require.NoError(t, err)
	assert.Equal(t, 0, res.Product.CurrentStock)
	assert.Equal(t, 42, res.Movement.PreviousStock)
}

func TestApplyMovement_PartialWrite(t *testing.T) {
	products, movements := new(MockProductRepository), new(MockMovementRepository)
	movements.On("Create", mock.Anything, mock.Anything).Return(domain.Movement{ID: "mov-1", ResultingStock: 11}, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(domain.Product{}, apperror.NewUnavailableError("queda", nil))
	svc := newService(products, movements)

	res, err := svc.ApplyMovement(context.Background(), sampleProduct(10), domain.MovementEntry, 1, nil, "")

	require.Error(t, err)
	var partial *apperror.PartialWriteError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, "mov-1", partial.MovementID)
	assert.Equal(t, "mov-1", res.Movement.ID)
	assert.Equal(t, 10, res.Product.CurrentStock, "produto devolvido é o anterior")
}

func TestRegisterMovement_Validation(t *testing.T) {
	svc := newService(new(MockProductRepository), new(MockMovementRepository))
	ctx := context.Background()

	_, err := svc.RegisterMovement(ctx, domain.MovementRequest{EAN: "123", Kind: domain.MovementEntry, Quantity: domain.QuantityOf(1)}, nil)
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = svc.RegisterMovement(ctx, domain.MovementRequest{EAN: "7891234567890", Kind: domain.MovementEntry, Quantity: domain.QuantityOf(0)}, nil)
	assert.IsType(t, &apperror.InvalidQuantityError{}, err)

	_, err = svc.RegisterMovement(ctx, domain.MovementRequest{EAN: "7891234567890", Kind: domain.MovementExit, Quantity: domain.QuantityOf(-2)}, nil)
	assert.IsType(t, &apperror.InvalidQuantityError{}, err)

	_, err = svc.RegisterMovement(ctx, domain.MovementRequest{EAN: "7891234567890", Kind: "AJUSTE", Quantity: domain.QuantityOf(1)}, nil)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestRegisterMovement_MissingQuantityNeverWrites(t *testing.T) {
	products, movements := new(MockProductRepository), new(MockMovementRepository)
	svc := newService(products, movements)

	_, err := svc.RegisterMovement(context.Background(), domain.MovementRequest{EAN: "7891234567890", Kind: domain.MovementInventoryCount}, nil)

	assert.IsType(t, &apperror.ValidationError{}, err)
	products.AssertNotCalled(t, "FindByEAN", mock.Anything, mock.Anything)
	movements.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterMovement_UnknownEAN(t *testing.T) {
	products := new(MockProductRepository)
	products.On("FindByEAN", mock.Anything, "0000000000000").Return(nil, nil)
	svc := newService(products, new(MockMovementRepository))

	_, err := svc.RegisterMovement(context.Background(), domain.MovementRequest{EAN: "0000000000000", Kind: domain.MovementEntry, Quantity: domain.QuantityOf(1)}, nil)

	assert.True(t, apperror.IsNotFound(err))
}

func TestRegisterMovement_InventoryZeroAllowed(t *testing.T) {
	products, movements := new(MockProductRepository), new(MockMovementRepository)
	products.On("FindByEAN", mock.Anything, "7891234567890").Return(sampleProduct(8), nil)
	echoCreate(movements)
	echoUpdate(products)
	svc := newService(products, movements)

	res, err := svc.RegisterMovement(context.Background(), domain.MovementRequest{EAN: "7891234567890", Kind: domain.MovementInventoryCount, Quantity: domain.QuantityOf(0)}, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Product.CurrentStock)
}

func TestProductHistory_ExposesDivergence(t *testing.T) {
	products, movements := new(MockProductRepository), new(MockMovementRepository)
	products.On("FindByID", mock.Anything, "1").Return(*sampleProduct(28), nil)
	movements.On("FindByEAN", mock.Anything, "7891234567890").Return([]domain.Movement{
		{Kind: domain.MovementEntry, Quantity: 25},
		{Kind: domain.MovementExit, Quantity: 3},
	}, nil)
	svc := newService(products, movements)

	h, err := svc.ProductHistory(context.Background(), "1")

	require.NoError(t, err)
	assert.Equal(t, 22, h.ComputedStock)
	assert.Equal(t, 28, h.Product.CurrentStock)
	assert.False(t, h.Consistent)
	assert.Len(t, h.Movements, 2)
}
