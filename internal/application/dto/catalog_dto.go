package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body de POST /api/products.
type CreateProductRequest struct {
	Label             string          `json:"label" validate:"required,min=2,max=200"`
	Barcode           string          `json:"barcode,omitempty" validate:"omitempty,max=64"`
	CategoryID        string          `json:"category_id" validate:"required,uuid4"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
}

// UpdateProductRequest body de PUT /api/products/:id.
type UpdateProductRequest struct {
	Label             string          `json:"label" validate:"required,min=2,max=200"`
	Barcode           string          `json:"barcode,omitempty" validate:"omitempty,max=64"`
	CategoryID        string          `json:"category_id" validate:"required,uuid4"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
}

// ProductDTO produit dans les réponses. Le CMUP exposé est le cache miroir du
// grand livre, jamais une valeur saisie.
type ProductDTO struct {
	ID                string          `json:"id"`
	Label             string          `json:"label"`
	Barcode           string          `json:"barcode,omitempty"`
	CategoryID        string          `json:"category_id"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	WeightedAvgCost   decimal.Decimal `json:"weighted_avg_cost"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
}

// CreateCategoryRequest body de POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// PartyRequest body commun fournisseurs/clients.
type PartyRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address string `json:"address,omitempty" validate:"omitempty,max=300"`
}
