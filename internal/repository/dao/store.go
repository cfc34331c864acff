package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type Product struct {
	ID             uint `gorm:"primaryKey"`
	OrganizationID uint `gorm:"not null;index"`

	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	Price       float64 `gorm:"not null"`
	Stock       int     `gorm:"not null"`
	ImageURL    string  `gorm:"size:255"`
	Category    *string `gorm:"size:50;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	ID             uint `gorm:"primaryKey"`
	OrganizationID uint `gorm:"not null;index"`

	MemberUUID  string  `gorm:"size:50;not null"`
	TotalAmount float64 `gorm:"not null"`
	Status      string  `gorm:"size:20;default:pending"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey"`
	OrderID     uint    `gorm:"not null;index"`
	ProductID   uint    `gorm:"not null"`
	Quantity    int     `gorm:"not null"`
	PriceAtTime float64 `gorm:"not null"`
}

type StoreDAO struct {
	db *gorm.DB
}

func NewStoreDAO(db *gorm.DB) *StoreDAO {
	return &StoreDAO{
		db: db,
	}
}

func (d *StoreDAO) InsertProduct(ctx context.Context, product Product) (Product, error) {
	result := d.db.WithContext(ctx).Create(&product)
	if result.Error != nil {
		return Product{}, result.Error
	}

	return product, nil
}

func (d *StoreDAO) FindProductByID(ctx context.Context, id, orgID uint) (Product, error) {
	var product Product

	result := d.db.WithContext(ctx).First(&product, "id = ? AND organization_id = ?", id, orgID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Product{}, ErrProductNotFound
		}

		return Product{}, result.Error
	}

	return product, nil
}

func (d *StoreDAO) FindProductsByOrg(ctx context.Context, orgID uint) ([]Product, error) {
	var products []Product

	result := d.db.WithContext(ctx).Where("organization_id = ?", orgID).Order("id").Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

func (d *StoreDAO) UpdateProduct(ctx context.Context, product Product) (Product, error) {
	result := d.db.WithContext(ctx).Save(&product)
	if result.Error != nil {
		return Product{}, result.Error
	}

	return product, nil
}

func (d *StoreDAO) DeleteProduct(ctx context.Context, id, orgID uint) error {
	result := d.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		Delete(&Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (d *StoreDAO) FindOrderByID(ctx context.Context, id, orgID uint) (Order, error) {
	var order Order

	result := d.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ? AND organization_id = ?", id, orgID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, result.Error
	}

	return order, nil
}

func (d *StoreDAO) FindOrdersByOrg(ctx context.Context, orgID uint) ([]Order, error) {
	var orders []Order

	result := d.db.WithContext(ctx).
		Preload("Items").
		Where("organization_id = ?", orgID).
		Order("id DESC").
		Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}

// InsertOrder creates an order atomically. For every item it performs a
// guarded check-and-decrement on the product row and snapshots the price
// inside the same transaction; any failure rolls the whole order back.
// Concurrent orders racing for the same stock serialize on the row update,
// so the resulting quantity can never go negative.
func (d *StoreDAO) InsertOrder(ctx context.Context, order Order, items []OrderItem) (Order, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64
		for i := range items {
			var product Product
			if err := tx.First(&product, "id = ? AND organization_id = ?", items[i].ProductID, order.OrganizationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			decrement := tx.Model(&Product{}).
				Where("id = ? AND stock >= ?", items[i].ProductID, items[i].Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", items[i].Quantity))
			if decrement.Error != nil {
				return decrement.Error
			}
			if decrement.RowsAffected == 0 {
				return ErrInsufficientStock
			}

			items[i].PriceAtTime = product.Price
			total += product.Price * float64(items[i].Quantity)
		}

		order.TotalAmount = total
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		order.Items = items
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	return order, nil
}

func (d *StoreDAO) UpdateOrderStatus(ctx context.Context, id, orgID uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (d *StoreDAO) DeleteOrder(ctx context.Context, id, orgID uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND organization_id = ?", id, orgID).Delete(&Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOrderNotFound
		}

		return tx.Where("order_id = ?", id).Delete(&OrderItem{}).Error
	})

	return err
}
