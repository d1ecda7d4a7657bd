package mirror_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estoque/internal/domain"
	apperror "estoque/internal/errors"
	"estoque/internal/pkg/logger"
	"estoque/internal/store"
	"estoque/internal/store/mirror"
)

func newMirror(t *testing.T) *mirror.Mirror {
	t.Helper()
	m, err := mirror.New(0, logger.NewNop())
	require.NoError(t, err)
	return m
}

func TestSeedIsLoaded(t *testing.T) {
	m := newMirror(t)
	ctx := context.Background()

	brands, err := store.NewRepository[domain.Brand](m, store.Brands).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 5)
	assert.Equal(t, "Teste", brands[0].Name)
	require.Len(t, brands[0].History, 1)
	assert.Equal(t, domain.FieldChange{"Teste 1", "Teste"}, brands[0].History[0].Changes["nome"])

	product, err := store.NewRepository[domain.Product](m, store.Products).FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "7891234567890", product.EAN)
	assert.Equal(t, 28, product.CurrentStock)

	users, err := store.NewRepository[domain.User](m, store.Users).FindBy(ctx, "email", "admin@estoque.com")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
}

func TestFetchByField_CreationOrder(t *testing.T) {
	m := newMirror(t)
	ctx := context.Background()
	repo := store.NewRepository[domain.Movement](m, store.Movements)

	_, err := repo.Create(ctx, domain.Movement{EAN: "7891234567890", Kind: domain.MovementEntry, Quantity: 1, PreviousStock: 22, ResultingStock: 23})
	require.NoError(t, err)

	movs, err := repo.FindBy(ctx, "ean", "7891234567890")
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, "1", movs[0].ID)
	assert.Equal(t, "2", movs[1].ID)
	assert.NotEmpty(t, movs[2].ID, "id gerado na criação")
	assert.Equal(t, 23, movs[2].ResultingStock)

	none, err := repo.FindBy(ctx, "ean", "0000000000000")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdate_ShallowMerge(t *testing.T) {
	m := newMirror(t)
	ctx := context.Background()

	raw, err := m.Update(ctx, store.Products, "1", json.RawMessage(`{"estoque_atual": 30, "id": "outro"}`))
	require.NoError(t, err)

	var p domain.Product
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, 30, p.CurrentStock)
	assert.Equal(t, "Produto Principal", p.Description, "campos ausentes são preservados")
}

func TestNotFound(t *testing.T) {
	m := newMirror(t)
	ctx := context.Background()

	_, err := m.FetchOne(ctx, store.Products, "nao-existe")
	assert.IsType(t, &apperror.NotFoundError{}, err)
	assert.Contains(t, err.Error(), "Produto não encontrado")

	_, err = m.Update(ctx, store.Brands, "nao-existe", json.RawMessage(`{}`))
	assert.Contains(t, err.Error(), "Marca não encontrada")

	err = m.Delete(ctx, store.Users, "nao-existe")
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	m := newMirror(t)
	ctx := context.Background()

	require.NoError(t, m.Delete(ctx, store.Brands, "3b0f"))

	all, err := m.FetchAll(ctx, store.Brands)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestLatencyRespectsContext(t *testing.T) {
	m, err := mirror.New(time.Second, logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = m.FetchAll(ctx, store.Products)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConcurrentCreates(t *testing.T) {
	m := newMirror(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Create(ctx, store.Brands, json.RawMessage(`{"nome":"Concorrente"}`))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := m.FetchAll(ctx, store.Brands)
	require.NoError(t, err)
	assert.Len(t, all, 25)
}
