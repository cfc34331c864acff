package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository"
)

type mockStoreRepo struct {
	products map[uint]domain.Product
	orders   map[uint]domain.Order

	createOrderErr error
	createdOrders  []domain.Order
	statusUpdates  []domain.OrderStatus
}

func newMockStoreRepo() *mockStoreRepo {
	return &mockStoreRepo{
		products: make(map[uint]domain.Product),
		orders:   make(map[uint]domain.Order),
	}
}

func (m *mockStoreRepo) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	product.ID = uint(len(m.products) + 1)
	m.products[product.ID] = product
	return product, nil
}

func (m *mockStoreRepo) GetProduct(_ context.Context, id, _ uint) (domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return domain.Product{}, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockStoreRepo) ListProducts(_ context.Context, _ uint) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(m.products))
	for _, product := range m.products {
		products = append(products, product)
	}
	return products, nil
}

func (m *mockStoreRepo) UpdateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	m.products[product.ID] = product
	return product, nil
}

func (m *mockStoreRepo) DeleteProduct(_ context.Context, id, _ uint) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockStoreRepo) GetOrder(_ context.Context, id, _ uint) (domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockStoreRepo) ListOrders(_ context.Context, _ uint) ([]domain.Order, error) {
	orders := make([]domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (m *mockStoreRepo) CreateOrder(_ context.Context, order domain.Order, _ []domain.OrderItem) (domain.Order, error) {
	if m.createOrderErr != nil {
		return domain.Order{}, m.createOrderErr
	}
	order.ID = uint(len(m.createdOrders) + 1)
	m.createdOrders = append(m.createdOrders, order)
	return order, nil
}

func (m *mockStoreRepo) UpdateOrderStatus(_ context.Context, id, _ uint, status domain.OrderStatus) error {
	if _, ok := m.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockStoreRepo) DeleteOrder(_ context.Context, id, _ uint) error {
	if _, ok := m.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

func storeFixture() (*StoreService, *mockStoreRepo) {
	orgRepo := &mockOrgRepo{orgs: map[string]domain.Organization{
		"chess": {ID: 3, Prefix: "chess"},
	}}
	repo := newMockStoreRepo()
	return NewStoreService(repo, orgRepo), repo
}

func TestCreateOrder(t *testing.T) {
	items := []domain.OrderItem{{ProductID: 1, Quantity: 2}}

	t.Run("pending order scoped to the organization", func(t *testing.T) {
		svc, repo := storeFixture()

		created, err := svc.CreateOrder(context.Background(), "chess", "mem-9", items)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderPending, created.Status)
		assert.Equal(t, uint(3), created.OrganizationID)
		assert.Equal(t, "mem-9", created.MemberUUID)
		require.Len(t, repo.createdOrders, 1)
	})

	t.Run("empty order", func(t *testing.T) {
		svc, repo := storeFixture()

		_, err := svc.CreateOrder(context.Background(), "chess", "mem-9", nil)
		assert.ErrorIs(t, err, ErrEmptyOrder)
		assert.Empty(t, repo.createdOrders)
	})

	t.Run("zero quantity item", func(t *testing.T) {
		svc, repo := storeFixture()

		_, err := svc.CreateOrder(context.Background(), "chess", "mem-9", []domain.OrderItem{
			{ProductID: 1, Quantity: 0},
		})
		assert.ErrorIs(t, err, ErrEmptyOrder)
		assert.Empty(t, repo.createdOrders)
	})

	t.Run("insufficient stock surfaces unchanged", func(t *testing.T) {
		svc, repo := storeFixture()
		repo.createOrderErr = repository.ErrInsufficientStock

		_, err := svc.CreateOrder(context.Background(), "chess", "mem-9", items)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("unknown organization", func(t *testing.T) {
		svc, _ := storeFixture()

		_, err := svc.CreateOrder(context.Background(), "nope", "mem-9", items)
		assert.ErrorIs(t, err, ErrOrgNotFound)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("accepts known statuses", func(t *testing.T) {
		svc, repo := storeFixture()
		repo.orders[5] = domain.Order{ID: 5, OrganizationID: 3}

		for _, status := range []domain.OrderStatus{domain.OrderPending, domain.OrderCompleted, domain.OrderCancelled} {
			require.NoError(t, svc.UpdateOrderStatus(context.Background(), "chess", 5, status))
		}
		assert.Len(t, repo.statusUpdates, 3)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		svc, repo := storeFixture()
		repo.orders[5] = domain.Order{ID: 5, OrganizationID: 3}

		err := svc.UpdateOrderStatus(context.Background(), "chess", 5, domain.OrderStatus("shipped"))
		assert.ErrorIs(t, err, ErrInvalidOrderStatus)
		assert.Empty(t, repo.statusUpdates)
	})

	t.Run("unknown order", func(t *testing.T) {
		svc, _ := storeFixture()

		err := svc.UpdateOrderStatus(context.Background(), "chess", 99, domain.OrderCompleted)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestUpdateProduct(t *testing.T) {
	svc, repo := storeFixture()
	repo.products[1] = domain.Product{ID: 1, OrganizationID: 3, Name: "Mug", Price: 8, Stock: 12}

	updated, err := svc.UpdateProduct(context.Background(), "chess", domain.Product{
		ID:    1,
		Name:  "Club Mug",
		Price: 9.5,
		Stock: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Club Mug", updated.Name)
	assert.Equal(t, 9.5, updated.Price)
	// scoping fields survive the merge
	assert.Equal(t, uint(3), updated.OrganizationID)
}

func TestGetProductUnknown(t *testing.T) {
	svc, _ := storeFixture()

	_, err := svc.GetProduct(context.Background(), "chess", 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
