package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubsync/orghub/internal/domain"
	"github.com/clubsync/orghub/internal/repository"
)

var (
	ErrProductNotFound    = repository.ErrProductNotFound
	ErrOrderNotFound      = repository.ErrOrderNotFound
	ErrInsufficientStock  = repository.ErrInsufficientStock
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type StoreRepository interface {
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	GetProduct(ctx context.Context, id, orgID uint) (domain.Product, error)
	ListProducts(ctx context.Context, orgID uint) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id, orgID uint) error
	GetOrder(ctx context.Context, id, orgID uint) (domain.Order, error)
	ListOrders(ctx context.Context, orgID uint) ([]domain.Order, error)
	CreateOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id, orgID uint, status domain.OrderStatus) error
	DeleteOrder(ctx context.Context, id, orgID uint) error
}

type StoreOrganizationRepository interface {
	GetByPrefix(ctx context.Context, prefix string) (domain.Organization, error)
}

type StoreService struct {
	repo    StoreRepository
	orgRepo StoreOrganizationRepository
}

func NewStoreService(repo StoreRepository, orgRepo StoreOrganizationRepository) *StoreService {
	return &StoreService{
		repo:    repo,
		orgRepo: orgRepo,
	}
}

func (s *StoreService) CreateProduct(ctx context.Context, orgPrefix string, product domain.Product) (domain.Product, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	product.OrganizationID = org.ID

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.CreateProduct -> %w", err)
	}

	return created, nil
}

func (s *StoreService) GetProduct(ctx context.Context, orgPrefix string, id uint) (domain.Product, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	product, err := s.repo.GetProduct(ctx, id, org.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.GetProduct -> %w", err)
	}

	return product, nil
}

func (s *StoreService) ListProducts(ctx context.Context, orgPrefix string) ([]domain.Product, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return nil, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	products, err := s.repo.ListProducts(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListProducts -> %w", err)
	}

	return products, nil
}

func (s *StoreService) UpdateProduct(ctx context.Context, orgPrefix string, product domain.Product) (domain.Product, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	existing, err := s.repo.GetProduct(ctx, product.ID, org.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.GetProduct -> %w", err)
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Stock = product.Stock
	existing.ImageURL = product.ImageURL
	existing.Category = product.Category

	updated, err := s.repo.UpdateProduct(ctx, existing)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.UpdateProduct -> %w", err)
	}

	return updated, nil
}

func (s *StoreService) DeleteProduct(ctx context.Context, orgPrefix string, id uint) error {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	if err = s.repo.DeleteProduct(ctx, id, org.ID); err != nil {
		return fmt.Errorf("s.repo.DeleteProduct -> %w", err)
	}

	return nil
}

// CreateOrder places an order for the calling member. Stock checks, price
// snapshots and the total are handled atomically by the storage layer;
// a failed item rolls back the whole order and surfaces
// ErrInsufficientStock.
func (s *StoreService) CreateOrder(ctx context.Context, orgPrefix, memberUUID string, items []domain.OrderItem) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return domain.Order{}, ErrEmptyOrder
		}
	}

	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	order := domain.Order{
		OrganizationID: org.ID,
		MemberUUID:     memberUUID,
		Status:         domain.OrderPending,
	}

	created, err := s.repo.CreateOrder(ctx, order, items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.CreateOrder -> %w", err)
	}

	return created, nil
}

func (s *StoreService) GetOrder(ctx context.Context, orgPrefix string, id uint) (domain.Order, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	order, err := s.repo.GetOrder(ctx, id, org.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.GetOrder -> %w", err)
	}

	return order, nil
}

func (s *StoreService) ListOrders(ctx context.Context, orgPrefix string) ([]domain.Order, error) {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return nil, fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	orders, err := s.repo.ListOrders(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListOrders -> %w", err)
	}

	return orders, nil
}

func (s *StoreService) UpdateOrderStatus(ctx context.Context, orgPrefix string, id uint, status domain.OrderStatus) error {
	switch status {
	case domain.OrderPending, domain.OrderCompleted, domain.OrderCancelled:
	default:
		return ErrInvalidOrderStatus
	}

	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	if err = s.repo.UpdateOrderStatus(ctx, id, org.ID, status); err != nil {
		return fmt.Errorf("s.repo.UpdateOrderStatus -> %w", err)
	}

	return nil
}

func (s *StoreService) DeleteOrder(ctx context.Context, orgPrefix string, id uint) error {
	org, err := s.orgRepo.GetByPrefix(ctx, orgPrefix)
	if err != nil {
		return fmt.Errorf("s.orgRepo.GetByPrefix -> %w", err)
	}

	if err = s.repo.DeleteOrder(ctx, id, org.ID); err != nil {
		return fmt.Errorf("s.repo.DeleteOrder -> %w", err)
	}

	return nil
}
