package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestWishlistAddTwiceKeepsOneEntry(t *testing.T) {
	env := newTestEnv(t)
	svc := env.wishlistService()
	ctx := context.Background()

	p := env.seedProduct("Desk Lamp", "desk-lamp", "10.00", 10)

	require.NoError(t, svc.Add(ctx, env.User, p.ID))
	require.NoError(t, svc.Add(ctx, env.User, p.ID))

	view, err := svc.Get(ctx, env.User)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{p.ID}, view.Products)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	svc := env.wishlistService()

	err := svc.Add(context.Background(), env.User, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistAddInactiveProduct(t *testing.T) {
	env := newTestEnv(t)
	svc := env.wishlistService()

	p := env.seedInactiveProduct("Retired Lamp", "retired-lamp", "10.00")

	err := svc.Add(context.Background(), env.User, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistRemoveAbsentIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	svc := env.wishlistService()
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, env.User, uuid.New()))

	p := env.seedProduct("Desk Lamp", "desk-lamp", "10.00", 10)
	require.NoError(t, svc.Add(ctx, env.User, p.ID))
	require.NoError(t, svc.Remove(ctx, env.User, p.ID))
	require.NoError(t, svc.Remove(ctx, env.User, p.ID))

	view, err := svc.Get(ctx, env.User)
	require.NoError(t, err)
	require.Empty(t, view.Products)
}
