package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'une réception de marchandises.
const (
	ReceptionStatusPending   = "EN_ATTENTE"
	ReceptionStatusConfirmed = "CONFIRMEE"
)

// Reception représente une réception de marchandises contre une commande
// fournisseur. Sa confirmation est l'un des deux points d'écriture du grand
// livre de stock (une ENTREE par ligne).
type Reception struct {
	ID         string
	SupplierID string
	Reference  string // numéro de bon de réception, sert de clé d'idempotence
	Status     string
	ReceivedAt time.Time
	Lines      []ReceptionLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReceptionLine est une ligne de réception (produit, quantité, prix d'achat).
type ReceptionLine struct {
	ID          string
	ReceptionID string
	ProductID   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}
