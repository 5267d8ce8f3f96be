package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	domevent "github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/event"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/infrastructure/event"
)

type recordingHandler struct {
	types    []string
	received []domevent.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) Handle(_ context.Context, e domevent.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.received = append(h.received, e)
	return h.err
}

func lowStock() domevent.LowStockDetected {
	return domevent.LowStockDetected{
		ProductID: "p1",
		OnHand:    decimal.NewFromInt(3),
		Threshold: decimal.NewFromInt(10),
		At:        time.Now(),
	}
}

func TestBus_PublieParType(t *testing.T) {
	bus := event.NewBus()
	abonne := &recordingHandler{types: []string{domevent.LowStockTopic}}
	autre := &recordingHandler{types: []string{"stock.autre"}}
	bus.Subscribe(abonne)
	bus.Subscribe(autre)

	bus.Publish(context.Background(), lowStock())

	assert.Len(t, abonne.received, 1)
	assert.Empty(t, autre.received, "un abonné ne reçoit que ses types")
}

// TestBus_IsoleLesDefaillants un handler qui panique ou échoue n'empêche pas
// les autres de recevoir l'événement.
func TestBus_IsoleLesDefaillants(t *testing.T) {
	bus := event.NewBus()
	casse := &recordingHandler{types: []string{domevent.LowStockTopic}, panics: true}
	enErreur := &recordingHandler{types: []string{domevent.LowStockTopic}, err: errors.New("saturé")}
	sain := &recordingHandler{types: []string{domevent.LowStockTopic}}
	bus.Subscribe(casse)
	bus.Subscribe(enErreur)
	bus.Subscribe(sain)

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), lowStock())
	})
	assert.Len(t, sain.received, 1)
	assert.Len(t, enErreur.received, 1)
}

func TestBus_SansAbonne(t *testing.T) {
	bus := event.NewBus()
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), lowStock())
	})
}
