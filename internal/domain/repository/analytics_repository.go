package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryMarginResult résultat brut de la requête de marge par catégorie.
// La base le produit; le cas d'usage le convertit en DTO.
type CategoryMarginResult struct {
	CategoryID   string
	CategoryName string
	Revenue      decimal.Decimal // chiffre d'affaires des ventes validées
	Cost         decimal.Decimal // COGS: quantité × CMUP au moment de la sortie
	Profit       decimal.Decimal // Revenue - Cost
}

// ProductProfitResult résultat brut du classement des produits par profit.
type ProductProfitResult struct {
	ProductID string
	Label     string
	Revenue   decimal.Decimal
	Cost      decimal.Decimal
	Profit    decimal.Decimal
}

// MonthlyFlowResult agrégat mensuel des flux achats/ventes.
type MonthlyFlowResult struct {
	Period    string // "2026-01"
	Purchases decimal.Decimal
	Sales     decimal.Decimal
}

// CategoryValueResult valeur de stock agrégée par catégorie.
type CategoryValueResult struct {
	CategoryID   string
	CategoryName string
	Value        decimal.Decimal
}

// AnalyticsRepository définit les requêtes de lecture pour la façade de
// reporting. Les implémentations sont read-only.
type AnalyticsRepository interface {
	// GetSalesTotal renvoie le chiffre d'affaires des ventes validées du
	// période (COALESCE à zéro si aucune vente).
	GetSalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// GetReceiptsTotal renvoie le montant des réceptions confirmées du période.
	GetReceiptsTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// GetMarginByCategory renvoie revenu, coût et profit par catégorie sur
	// l'intervalle, ordonnés par profit décroissant.
	GetMarginByCategory(ctx context.Context, from, to time.Time) ([]CategoryMarginResult, error)

	// GetTopProfitProducts renvoie les `limit` produits au meilleur profit
	// (profit décroissant, égalité départagée par id produit croissant).
	GetTopProfitProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductProfitResult, error)

	// GetMonthlyFlows renvoie la série mensuelle achats/ventes de l'intervalle.
	GetMonthlyFlows(ctx context.Context, from, to time.Time) ([]MonthlyFlowResult, error)

	// GetCategoryDistribution renvoie la valeur de stock courante par
	// catégorie (dernier mouvement par produit, quantités positives).
	GetCategoryDistribution(ctx context.Context) ([]CategoryValueResult, error)
}
