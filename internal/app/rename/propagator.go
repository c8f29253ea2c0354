/*
Package rename keeps historical messages consistent after an identity rename.

Messages reference their participants by display string rather than by
numeric key, so when an identity's email or nickname changes, every stored
message still carrying the old string must be rewritten. Each changed
identifier gets its own independent pass; a crash mid-propagation leaves a
partial rewrite with no resumption mechanism. That is a documented property
of the design, not a bug to paper over here.
*/
package rename

import (
	"context"

	"chatapp/internal/pkg/logx"
)

// MessageStore is the retagging surface the propagator needs.
type MessageStore interface {
	RetagSender(ctx context.Context, old, new string) (int64, error)
	RetagReceiver(ctx context.Context, old, new string) (int64, error)
}

// Propagator rewrites participant references on stored messages.
type Propagator struct {
	messages MessageStore
}

// NewPropagator builds a propagator over the given store.
func NewPropagator(messages MessageStore) *Propagator {
	return &Propagator{messages: messages}
}

// Propagate rewrites every message referencing oldValue as sender or as
// receiver to newValue and returns the total number of messages touched.
// The sender and receiver scans are independent: a failure in the second
// does not roll back the first.
func (p *Propagator) Propagate(ctx context.Context, oldValue, newValue string) (int64, error) {
	sent, err := p.messages.RetagSender(ctx, oldValue, newValue)
	if err != nil {
		return sent, err
	}

	received, err := p.messages.RetagReceiver(ctx, oldValue, newValue)
	if err != nil {
		return sent + received, err
	}

	logx.Info("Propagated identity rename over message history",
		"old", oldValue,
		"rewritten", sent+received,
	)

	return sent + received, nil
}
