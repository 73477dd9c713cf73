package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/storeline/internal/models"
	"github.com/mkravets/storeline/internal/transport"
)

func TestCartAddAndTotals(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()
	ctx := context.Background()

	a := env.seedProduct("Desk Lamp", "desk-lamp", "100.00", 10)
	b := env.seedProduct("Mouse Pad", "mouse-pad", "50.00", 10)

	require.NoError(t, svc.Add(ctx, env.User, transport.AddCartItemRequest{ProductID: a.ID, Quantity: 2}))
	require.NoError(t, svc.Add(ctx, env.User, transport.AddCartItemRequest{ProductID: b.ID, Quantity: 1}))

	view, err := svc.GetCart(ctx, env.User)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	require.Equal(t, "250.00", view.Subtotal)
	require.Equal(t, "250.00", view.Total)
	require.Equal(t, "USD", view.Currency)

	require.NoError(t, svc.Remove(ctx, env.User, transport.RemoveCartItemRequest{ProductID: a.ID}))

	view, err = svc.GetCart(ctx, env.User)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, "50.00", view.Total)
}

func TestCartAddMergesSameProduct(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()
	ctx := context.Background()

	p := env.seedProduct("Desk Lamp", "desk-lamp", "10.00", 10)

	require.NoError(t, svc.Add(ctx, env.User, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, svc.Add(ctx, env.User, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 3}))

	view, err := svc.GetCart(ctx, env.User)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 5, view.Items[0].Quantity)
	require.Equal(t, "50.00", view.Items[0].LineTotal)
	require.Equal(t, "50.00", view.Total)
}

func TestCartAddQuantityFloorsToOne(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()
	ctx := context.Background()

	p := env.seedProduct("Desk Lamp", "desk-lamp", "10.00", 10)

	require.NoError(t, svc.Add(ctx, env.User, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 0}))

	view, err := svc.GetCart(ctx, env.User)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 1, view.Items[0].Quantity)
}

func TestCartAddUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()

	err := svc.Add(context.Background(), env.User, transport.AddCartItemRequest{ProductID: uuid.New(), Quantity: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartAddInactiveProduct(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()

	p := env.seedInactiveProduct("Retired Lamp", "retired-lamp", "10.00")

	err := svc.Add(context.Background(), env.User, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartAddOutOfStock(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()

	p := env.seedProduct("Desk Lamp", "desk-lamp", "10.00", 0)

	err := svc.Add(context.Background(), env.User, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 1})
	require.ErrorIs(t, err, ErrOutOfStock)
}

func TestCartUpdateClampsToStock(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()
	ctx := context.Background()

	p := env.seedProduct("Desk Lamp", "desk-lamp", "10.00", 3)

	require.NoError(t, svc.Add(ctx, env.User, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 1}))
	require.NoError(t, svc.Update(ctx, env.User, transport.UpdateCartItemRequest{ProductID: p.ID, Quantity: 99}))

	view, err := svc.GetCart(ctx, env.User)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 3, view.Items[0].Quantity)
	require.Equal(t, "30.00", view.Total)
}

func TestCartUpdateZeroRemovesLine(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()
	ctx := context.Background()

	p := env.seedProduct("Desk Lamp", "desk-lamp", "10.00", 10)

	require.NoError(t, svc.Add(ctx, env.User, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, svc.Update(ctx, env.User, transport.UpdateCartItemRequest{ProductID: p.ID, Quantity: 0}))

	view, err := svc.GetCart(ctx, env.User)
	require.NoError(t, err)
	require.Empty(t, view.Items)
	require.Equal(t, "0.00", view.Total)

	// Negative quantity behaves the same and stays idempotent.
	require.NoError(t, svc.Update(ctx, env.User, transport.UpdateCartItemRequest{ProductID: p.ID, Quantity: -5}))

	view, err = svc.GetCart(ctx, env.User)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestCartRemoveAbsentLineIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, env.User, transport.RemoveCartItemRequest{ProductID: uuid.New()}))

	view, err := svc.GetCart(ctx, env.User)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestCartTotalsLawAfterEveryMutation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()
	ctx := context.Background()

	a := env.seedProduct("Desk Lamp", "desk-lamp", "19.99", 10)
	b := env.seedProduct("Mouse Pad", "mouse-pad", "7.50", 10)

	checkLaw := func() {
		t.Helper()
		var cart models.Cart
		require.NoError(t, env.DB.Where("user_id = ?", env.User).First(&cart).Error)
		law := cart.Subtotal.Sub(cart.Discount).Add(cart.Tax).Add(cart.Shipping)
		require.True(t, cart.Total.Equal(law), "total %s != %s", cart.Total, law)
	}

	require.NoError(t, svc.Add(ctx, env.User, transport.AddCartItemRequest{ProductID: a.ID, Quantity: 3}))
	checkLaw()
	require.NoError(t, svc.Add(ctx, env.User, transport.AddCartItemRequest{ProductID: b.ID, Quantity: 2}))
	checkLaw()
	require.NoError(t, svc.Update(ctx, env.User, transport.UpdateCartItemRequest{ProductID: a.ID, Quantity: 1}))
	checkLaw()
	require.NoError(t, svc.Remove(ctx, env.User, transport.RemoveCartItemRequest{ProductID: b.ID}))
	checkLaw()
}

func TestCartSnapshotSurvivesPriceChange(t *testing.T) {
	env := newTestEnv(t)
	svc := env.cartService()
	ctx := context.Background()

	p := env.seedProduct("Desk Lamp", "desk-lamp", "10.00", 10)

	require.NoError(t, svc.Add(ctx, env.User, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 1}))

	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", p.ID).
		Update("price", "99.99").Error)

	view, err := svc.GetCart(ctx, env.User)
	require.NoError(t, err)
	require.Equal(t, "10.00", view.Items[0].UnitPrice)
	require.Equal(t, "10.00", view.Total)
}
