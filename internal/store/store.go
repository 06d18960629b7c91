package store

import (
	"context"
	"errors"

	"github.com/avdeev99/travelbot/internal/domain"
)

// ErrNotFound is returned by Get when a slot holds no state.
var ErrNotFound = errors.New("state not found")

// DefaultSlot is the fallback slot for events carrying no conversation id.
const DefaultSlot = "local"

// Store holds one booking State per slot. Slots are keyed by conversation so
// concurrent conversations never share a ticket. Writers read the full
// value, compute a new one and Set it back; there is no field-level update.
type Store interface {
	Get(ctx context.Context, slot string) (*domain.State, error)
	Set(ctx context.Context, slot string, state *domain.State) error
	// Init stores state only if the slot is empty. Returns true when the
	// write happened, false when existing state was preserved.
	Init(ctx context.Context, slot string, state *domain.State) (bool, error)
}
