package entity

import "time"

// Supplier représente un fournisseur (contrepartie d'une entrée de stock).
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
