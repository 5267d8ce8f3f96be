package entity

import "time"

// Client représente un client (contrepartie d'une sortie de stock).
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
