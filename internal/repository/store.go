package repository

import (
	"context"
	"fmt"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository/dao"
)

var (
	ErrProductNotFound   = dao.ErrProductNotFound
	ErrOrderNotFound     = dao.ErrOrderNotFound
	ErrInsufficientStock = dao.ErrInsufficientStock
)

type StoreDAO interface {
	InsertProduct(ctx context.Context, product dao.Product) (dao.Product, error)
	FindProductByID(ctx context.Context, id, orgID uint) (dao.Product, error)
	FindProductsByOrg(ctx context.Context, orgID uint) ([]dao.Product, error)
	UpdateProduct(ctx context.Context, product dao.Product) (dao.Product, error)
	DeleteProduct(ctx context.Context, id, orgID uint) error
	FindOrderByID(ctx context.Context, id, orgID uint) (dao.Order, error)
	FindOrdersByOrg(ctx context.Context, orgID uint) ([]dao.Order, error)
	InsertOrder(ctx context.Context, order dao.Order, items []dao.OrderItem) (dao.Order, error)
	UpdateOrderStatus(ctx context.Context, id, orgID uint, status string) error
	DeleteOrder(ctx context.Context, id, orgID uint) error
}

type StoreRepository struct {
	dao StoreDAO
}

func NewStoreRepository(dao StoreDAO) *StoreRepository {
	return &StoreRepository{
		dao: dao,
	}
}

func (r *StoreRepository) productDomainToDao(p domain.Product) dao.Product {
	var category *string
	if p.Category != "" {
		category = &p.Category
	}

	return dao.Product{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Stock:          p.Stock,
		ImageURL:       p.ImageURL,
		Category:       category,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (r *StoreRepository) productDaoToDomain(p dao.Product) domain.Product {
	product := domain.Product{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Stock:          p.Stock,
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.Category != nil {
		product.Category = *p.Category
	}

	return product
}

func (r *StoreRepository) orderDaoToDomain(o dao.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = domain.OrderItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
		}
	}

	return domain.Order{
		ID:             o.ID,
		OrganizationID: o.OrganizationID,
		MemberUUID:     o.MemberUUID,
		TotalAmount:    o.TotalAmount,
		Status:         domain.OrderStatus(o.Status),
		Items:          items,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (r *StoreRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := r.dao.InsertProduct(ctx, r.productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.InsertProduct -> %w", err)
	}

	return r.productDaoToDomain(created), nil
}

func (r *StoreRepository) GetProduct(ctx context.Context, id, orgID uint) (domain.Product, error) {
	product, err := r.dao.FindProductByID(ctx, id, orgID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.FindProductByID -> %w", err)
	}

	return r.productDaoToDomain(product), nil
}

func (r *StoreRepository) ListProducts(ctx context.Context, orgID uint) ([]domain.Product, error) {
	productDAOs, err := r.dao.FindProductsByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindProductsByOrg -> %w", err)
	}

	products := make([]domain.Product, len(productDAOs))
	for i, p := range productDAOs {
		products[i] = r.productDaoToDomain(p)
	}

	return products, nil
}

func (r *StoreRepository) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := r.dao.UpdateProduct(ctx, r.productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.UpdateProduct -> %w", err)
	}

	return r.productDaoToDomain(updated), nil
}

func (r *StoreRepository) DeleteProduct(ctx context.Context, id, orgID uint) error {
	if err := r.dao.DeleteProduct(ctx, id, orgID); err != nil {
		return fmt.Errorf("r.dao.DeleteProduct -> %w", err)
	}

	return nil
}

func (r *StoreRepository) GetOrder(ctx context.Context, id, orgID uint) (domain.Order, error) {
	order, err := r.dao.FindOrderByID(ctx, id, orgID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindOrderByID -> %w", err)
	}

	return r.orderDaoToDomain(order), nil
}

func (r *StoreRepository) ListOrders(ctx context.Context, orgID uint) ([]domain.Order, error) {
	orderDAOs, err := r.dao.FindOrdersByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOrdersByOrg -> %w", err)
	}

	orders := make([]domain.Order, len(orderDAOs))
	for i, o := range orderDAOs {
		orders[i] = r.orderDaoToDomain(o)
	}

	return orders, nil
}

// CreateOrder persists the order and decrements stock in one transaction.
// Item prices and the order total are set by the storage layer from the
// product prices at purchase time.
func (r *StoreRepository) CreateOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) (domain.Order, error) {
	orderDAO := dao.Order{
		OrganizationID: order.OrganizationID,
		MemberUUID:     order.MemberUUID,
		Status:         string(domain.OrderPending),
	}

	itemDAOs := make([]dao.OrderItem, len(items))
	for i, item := range items {
		itemDAOs[i] = dao.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	created, err := r.dao.InsertOrder(ctx, orderDAO, itemDAOs)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.InsertOrder -> %w", err)
	}

	return r.orderDaoToDomain(created), nil
}

func (r *StoreRepository) UpdateOrderStatus(ctx context.Context, id, orgID uint, status domain.OrderStatus) error {
	if err := r.dao.UpdateOrderStatus(ctx, id, orgID, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateOrderStatus -> %w", err)
	}

	return nil
}

func (r *StoreRepository) DeleteOrder(ctx context.Context, id, orgID uint) error {
	if err := r.dao.DeleteOrder(ctx, id, orgID); err != nil {
		return fmt.Errorf("r.dao.DeleteOrder -> %w", err)
	}

	return nil
}
