package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordEntryRequest body de POST /api/stock/entries.
type RecordEntryRequest struct {
	ProductID  string           `json:"product_id" validate:"required,uuid4"`
	Quantity   decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost   *decimal.Decimal `json:"unit_cost" validate:"required"`
	SupplierID *string          `json:"supplier_id,omitempty" validate:"omitempty,uuid4"`
	Reference  string           `json:"reference,omitempty"`
	At         *time.Time       `json:"at,omitempty"` // date métier; défaut: maintenant
}

// RecordExitRequest body de POST /api/stock/exits.
// AllowNegative autorise un solde négatif pour les corrections antidatées;
// par défaut une sortie supérieure au disponible est rejetée.
type RecordExitRequest struct {
	ProductID     string          `json:"product_id" validate:"required,uuid4"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
	ClientID      *string         `json:"client_id,omitempty" validate:"omitempty,uuid4"`
	Reference     string          `json:"reference,omitempty"`
	At            *time.Time      `json:"at,omitempty"`
	AllowNegative bool            `json:"allow_negative,omitempty"`
}

// MovementDTO un mouvement du grand livre dans les réponses.
type MovementDTO struct {
	ID                   string          `json:"id"`
	ProductID            string          `json:"product_id"`
	CategoryID           string          `json:"category_id"`
	Type                 string          `json:"type"`
	QuantityIn           decimal.Decimal `json:"quantity_in"`
	QuantityOut          decimal.Decimal `json:"quantity_out"`
	QuantityOnHandAfter  decimal.Decimal `json:"quantity_on_hand_after"`
	UnitCostIn           decimal.Decimal `json:"unit_cost_in"`
	WeightedAvgCostAfter decimal.Decimal `json:"weighted_avg_cost_after"`
	SupplierID           *string         `json:"supplier_id,omitempty"`
	ClientID             *string         `json:"client_id,omitempty"`
	Reference            string          `json:"reference,omitempty"`
	At                   time.Time       `json:"at"`
}

// ListMovementsRequest query de GET /api/stock/movements.
type ListMovementsRequest struct {
	ProductID string     `query:"product_id" validate:"required,uuid4"`
	From      *time.Time `query:"from"`
	To        *time.Time `query:"to"`
	PageRequest
}

// StockStateDTO état courant d'un produit (solde + CMUP).
type StockStateDTO struct {
	ProductID       string          `json:"product_id"`
	QuantityOnHand  decimal.Decimal `json:"quantity_on_hand"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
}

// ReorderPointDTO réponse de GET /api/stock/products/:id/reorder-point.
type ReorderPointDTO struct {
	ProductID          string          `json:"product_id"`
	LeadTimeDays       int             `json:"lead_time_days"`
	AverageDailyDemand decimal.Decimal `json:"average_daily_demand"`
	ReorderPoint       int64           `json:"reorder_point"`
}
