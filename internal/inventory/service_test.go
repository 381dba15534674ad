package inventory

import (
	"context"
	"testing"

	"github.com/angelmondragon/shopfloor/pkg/db"
	"github.com/angelmondragon/shopfloor/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/shopfloor/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := dbtest.Open(t)
	svc, err := NewService(NewRepository(client.DB()), client, nil)
	require.NoError(t, err)
	return svc, client
}

func validInput() ItemInput {
	return ItemInput{
		Type:     "Hoodie",
		Color:    "Gray",
		Size:     "XL",
		Quantity: 10,
		Price:    decimal.RequireFromString("39.99"),
	}
}

func TestServiceCreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Hoodie", created.Type)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("39.99")))

	input := validInput()
	input.Quantity = 3
	input.Color = "  Navy "
	updated, err := svc.Update(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, "Navy", updated.Color)
	assert.True(t, updated.LowStock)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceMissingIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Update(ctx, uuid.New(), validInput())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	err = svc.Delete(ctx, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	cases := map[string]func(*ItemInput){
		"short type":     func(in *ItemInput) { in.Type = "T" },
		"short color":    func(in *ItemInput) { in.Color = " R " },
		"empty size":     func(in *ItemInput) { in.Size = "   " },
		"negative qty":   func(in *ItemInput) { in.Quantity = -1 },
		"negative price": func(in *ItemInput) { in.Price = decimal.RequireFromString("-0.01") },
		"huge price":     func(in *ItemInput) { in.Price = decimal.RequireFromString("10000000000") },
		"rounds over":    func(in *ItemInput) { in.Price = decimal.RequireFromString("9999999999.996") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validInput()
			mutate(&input)
			_, err := svc.Create(ctx, input)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
		})
	}

	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestServiceAcceptsLargestPrice(t *testing.T) {
	svc, _ := newTestService(t)

	input := validInput()
	input.Price = decimal.RequireFromString("9999999999.99")
	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
}

func TestServiceZeroQuantityAndPriceAllowed(t *testing.T) {
	svc, _ := newTestService(t)

	input := validInput()
	input.Quantity = 0
	input.Price = decimal.Zero
	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 0, created.Quantity)
}

func TestServiceSeedSamplesOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	n, err := svc.SeedSamples(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = svc.SeedSamples(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 6)

	opts, err := svc.Options(ctx, Selection{Type: "Jacket", Color: "Brown", Size: "M"})
	require.NoError(t, err)
	assert.Equal(t, 5, opts.MaxQuantity)
	require.NotNil(t, opts.UnitPrice)
	assert.True(t, opts.UnitPrice.Equal(decimal.RequireFromString("89.99")))
}

func TestRepositoryDecrementStockGuard(t *testing.T) {
	ctx := context.Background()
	svc, client := newTestService(t)
	repo := NewRepository(client.DB())

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	ok, err := repo.DecrementStock(ctx, created.ID, 11)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DecrementStock(ctx, created.ID, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	item, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
}
