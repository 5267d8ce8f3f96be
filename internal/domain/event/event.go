package event

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DomainEvent est un fait métier émis par le cœur et consommé par les abonnés
// (alerting, reporting) sans couplage direct.
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// Publisher publie des événements de domaine. Le cœur ne connaît que ce port;
// le bus in-process vit dans l'infrastructure.
type Publisher interface {
	Publish(ctx context.Context, events ...DomainEvent)
}

// Handler traite un événement de domaine.
type Handler interface {
	Handle(ctx context.Context, e DomainEvent) error
	EventTypes() []string
}

// LowStockTopic type d'événement de stock bas.
const LowStockTopic = "stock.low_stock_detected"

// LowStockDetected est émis quand un mouvement fait passer la quantité en main
// d'un produit sous son seuil d'alerte.
type LowStockDetected struct {
	ProductID string
	OnHand    decimal.Decimal
	Threshold decimal.Decimal
	At        time.Time
}

func (e LowStockDetected) EventType() string     { return LowStockTopic }
func (e LowStockDetected) OccurredAt() time.Time { return e.At }
