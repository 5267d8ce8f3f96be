package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceptionLineRequest ligne d'une réception à créer.
type ReceptionLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreateReceptionRequest body de POST /api/receptions.
type CreateReceptionRequest struct {
	SupplierID string                 `json:"supplier_id" validate:"required,uuid4"`
	Reference  string                 `json:"reference" validate:"required,max=64"`
	ReceivedAt *time.Time             `json:"received_at,omitempty"`
	Lines      []ReceptionLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleLineRequest ligne d'une vente à créer.
type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreateSaleRequest body de POST /api/sales.
type CreateSaleRequest struct {
	ClientID  string            `json:"client_id" validate:"required,uuid4"`
	Reference string            `json:"reference" validate:"required,max=64"`
	SoldAt    *time.Time        `json:"sold_at,omitempty"`
	Lines     []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// FlowStatusDTO réponse de confirmation/validation d'un flux.
type FlowStatusDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
