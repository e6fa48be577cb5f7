package event

import (
	log "github.com/sirupsen/logrus"

	"sales/pkg/common/domain"
)

var _ domain.EventDispatcher = &Dispatcher{}

// Dispatcher logs every event and forwards it to each subscriber in order.
// The first subscriber error is returned after all subscribers ran.
type Dispatcher struct {
	subscribers []domain.EventDispatcher
}

func NewDispatcher(subscribers ...domain.EventDispatcher) *Dispatcher {
	return &Dispatcher{subscribers: subscribers}
}

func (d *Dispatcher) Dispatch(event domain.Event) error {
	log.WithField("event", event.Type()).Debug("dispatching event")

	var firstErr error
	for _, subscriber := range d.subscribers {
		if err := subscriber.Dispatch(event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
