package dto

import "github.com/shopspring/decimal"

// ValuationSnapshotDTO valorisation d'un produit: quantité, CMUP, valeur et
// statut de stock. Calculé à la demande depuis le dernier mouvement.
type ValuationSnapshotDTO struct {
	ProductID       string          `json:"product_id"`
	Label           string          `json:"label"`
	QuantityOnHand  decimal.Decimal `json:"quantity_on_hand"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
	StockValue      decimal.Decimal `json:"stock_value"`
	Status          string          `json:"status"` // DISPONIBLE, STOCK_BAS, RUPTURE
}

// TotalInventoryValueDTO réponse de GET /api/inventory/value.
type TotalInventoryValueDTO struct {
	Total     decimal.Decimal          `json:"total"`
	Breakdown []InventoryBreakdownItem `json:"breakdown"`
}

// InventoryBreakdownItem détail par produit de la valeur totale.
type InventoryBreakdownItem struct {
	ProductID       string          `json:"product_id"`
	Label           string          `json:"label"`
	Quantity        decimal.Decimal `json:"quantity"`
	WeightedAvgCost decimal.Decimal `json:"weighted_avg_cost"`
	Value           decimal.Decimal `json:"value"`
}

// InventoryValueAtDateDTO réponse de GET /api/inventory/value/history.
type InventoryValueAtDateDTO struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyPointDTO un point de la série mensuelle achats/ventes/marge.
type MonthlyPointDTO struct {
	Period    string          `json:"period"` // "2026-01"
	Purchases decimal.Decimal `json:"purchases"`
	Sales     decimal.Decimal `json:"sales"`
	Margin    decimal.Decimal `json:"margin"`
}

// CategoryValueDTO valeur de stock d'une catégorie.
type CategoryValueDTO struct {
	CategoryID string          `json:"category_id"`
	Category   string          `json:"category"`
	Value      decimal.Decimal `json:"value"`
}

// InventoryAnalyticsDTO réponse de GET /api/inventory/analytics.
type InventoryAnalyticsDTO struct {
	MonthlySeries        []MonthlyPointDTO  `json:"monthly_series"`
	CategoryDistribution []CategoryValueDTO `json:"category_distribution"`
}

// ComparisonDTO un indicateur comparé mois courant vs mois précédent.
// EvolutionPct = (current - previous) / previous * 100, 0 si previous = 0,
// arrondi à 1 décimale.
type ComparisonDTO struct {
	Current      decimal.Decimal `json:"current"`
	Previous     decimal.Decimal `json:"previous"`
	EvolutionPct decimal.Decimal `json:"evolution_pct"`
}

// MonthlyComparisonDTO réponse de GET /api/reports/monthly-comparison.
type MonthlyComparisonDTO struct {
	Sales       ComparisonDTO `json:"sales"`
	Receipts    ComparisonDTO `json:"receipts"`
	GrossMargin ComparisonDTO `json:"gross_margin"`
	StockValue  ComparisonDTO `json:"stock_value"`
}
