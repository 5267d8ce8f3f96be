// Package event fournit le bus d'événements in-process: publication synchrone
// vers les abonnés enregistrés, isolation des handlers défaillants.
package event

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/event"
)

var _ event.Publisher = (*Bus)(nil)

// Bus bus in-process. Publish est synchrone: un handler lent ralentit
// l'appelant, un handler défaillant est logué et n'affecte ni les autres
// handlers ni l'écriture déjà commitée.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]event.Handler
}

// NewBus construit un bus vide.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]event.Handler)}
}

// Subscribe enregistre un handler pour les types d'événements qu'il déclare.
func (b *Bus) Subscribe(h event.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range h.EventTypes() {
		b.handlers[t] = append(b.handlers[t], h)
	}
}

// Publish distribue chaque événement à ses abonnés. Jamais d'erreur remontée:
// la publication a lieu après commit, l'écriture est déjà durable.
func (b *Bus) Publish(ctx context.Context, events ...event.DomainEvent) {
	for _, e := range events {
		b.mu.RLock()
		handlers := b.handlers[e.EventType()]
		b.mu.RUnlock()
		for _, h := range handlers {
			b.dispatch(ctx, h, e)
		}
	}
}

// dispatch isole un handler: une panique ou une erreur est loguée sans
// interrompre les autres abonnés.
func (b *Bus) dispatch(ctx context.Context, h event.Handler, e event.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("event_type", e.EventType()).Interface("panic", r).
				Msg("panique d'un handler d'événement")
		}
	}()
	if err := h.Handle(ctx, e); err != nil {
		log.Error().Str("event_type", e.EventType()).Err(err).
			Msg("échec d'un handler d'événement")
	}
}
