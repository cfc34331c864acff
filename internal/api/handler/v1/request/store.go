package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
}

func (req *ProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.Stock, validation.Min(0)),
		validation.Field(&req.ImageURL, is.URL),
		validation.Field(&req.Category, validation.Length(0, 50)),
	)
}

type OrderItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

func (req *CreateOrderRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Items, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return err
	}

	for _, item := range req.Items {
		if err := validation.ValidateStruct(
			&item,
			validation.Field(&item.ProductID, validation.Required),
			validation.Field(&item.Quantity, validation.Required, validation.Min(1)),
		); err != nil {
			return err
		}
	}

	return nil
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("pending", "completed", "cancelled")),
	)
}
