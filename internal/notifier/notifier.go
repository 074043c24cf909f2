package notifier

import (
	"github.com/kojima2223-star/Fumotoppara/internal/availability"
)

// Notifier defines the interface for delivering an availability notification
type Notifier interface {
	// Notify delivers a notification for the given observation
	Notify(obs *availability.Observation) error
}
