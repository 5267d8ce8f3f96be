package dto

import "github.com/shopspring/decimal"

// MarginReportDTO marge brute d'une période.
// Montants arrondis à l'unité pour l'affichage; pourcentage à 1 décimale.
type MarginReportDTO struct {
	SalesTotal    decimal.Decimal `json:"sales_total"`
	ReceiptsTotal decimal.Decimal `json:"receipts_total"`
	GrossMargin   decimal.Decimal `json:"gross_margin"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
}

// CategoryMarginDTO marge d'une catégorie sur l'intervalle demandé.
type CategoryMarginDTO struct {
	CategoryID string          `json:"category_id"`
	Category   string          `json:"category"`
	Revenue    decimal.Decimal `json:"revenue"`
	Cost       decimal.Decimal `json:"cost"`
	Profit     decimal.Decimal `json:"profit"`
	MarginPct  decimal.Decimal `json:"margin_pct"`
}

// TopProductDTO produit classé par profit décroissant.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Label     string          `json:"label"`
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
}
