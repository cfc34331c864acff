package dao

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertOrder(t *testing.T) {
	db := requireDB(t)
	dao := NewStoreDAO(db)
	ctx := context.Background()

	t.Run("two orders racing for the last unit", func(t *testing.T) {
		const orgID = 9101

		product, err := dao.InsertProduct(ctx, Product{
			OrganizationID: orgID,
			Name:           "Club hoodie",
			Price:          25,
			Stock:          1,
		})
		require.NoError(t, err)

		errs := make(chan error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, orderErr := dao.InsertOrder(ctx, Order{
					OrganizationID: orgID,
					MemberUUID:     "mem-race",
				}, []OrderItem{{ProductID: product.ID, Quantity: 1}})
				errs <- orderErr
			}()
		}
		wg.Wait()
		close(errs)

		var succeeded, rejected int
		for orderErr := range errs {
			switch {
			case orderErr == nil:
				succeeded++
			default:
				require.ErrorIs(t, orderErr, ErrInsufficientStock)
				rejected++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, rejected)

		remaining, err := dao.FindProductByID(ctx, product.ID, orgID)
		require.NoError(t, err)
		assert.Equal(t, 0, remaining.Stock)
	})

	t.Run("a failing item rolls the whole order back", func(t *testing.T) {
		const orgID = 9102

		plenty, err := dao.InsertProduct(ctx, Product{
			OrganizationID: orgID, Name: "Sticker", Price: 1, Stock: 5,
		})
		require.NoError(t, err)
		scarce, err := dao.InsertProduct(ctx, Product{
			OrganizationID: orgID, Name: "Trophy", Price: 40, Stock: 1,
		})
		require.NoError(t, err)

		_, err = dao.InsertOrder(ctx, Order{OrganizationID: orgID, MemberUUID: "mem-rb"}, []OrderItem{
			{ProductID: plenty.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 3},
		})
		require.ErrorIs(t, err, ErrInsufficientStock)

		got, err := dao.FindProductByID(ctx, plenty.ID, orgID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Stock, "decrement of the first item must roll back")

		orders, err := dao.FindOrdersByOrg(ctx, orgID)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("snapshots the price at order time", func(t *testing.T) {
		const orgID = 9103

		product, err := dao.InsertProduct(ctx, Product{
			OrganizationID: orgID, Name: "Mug", Price: 2.5, Stock: 10,
		})
		require.NoError(t, err)

		order, err := dao.InsertOrder(ctx, Order{OrganizationID: orgID, MemberUUID: "mem-snap"}, []OrderItem{
			{ProductID: product.ID, Quantity: 2},
		})
		require.NoError(t, err)
		assert.InDelta(t, 5.0, order.TotalAmount, 1e-9)

		product.Price = 99
		_, err = dao.UpdateProduct(ctx, product)
		require.NoError(t, err)

		stored, err := dao.FindOrderByID(ctx, order.ID, orgID)
		require.NoError(t, err)
		require.Len(t, stored.Items, 1)
		assert.InDelta(t, 2.5, stored.Items[0].PriceAtTime, 1e-9)
	})
}
