package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/ticketdesk/internal/platform/errors"
)

var (
	// ErrNotFound indicates a requested slot or record is absent.
	ErrNotFound = errors.New(errors.CodeNotFound, "record not found")
	// ErrCorrupt indicates a slot holds a payload that cannot be decoded.
	ErrCorrupt = errors.New(errors.CodeStorageCorrupt, "stored payload is corrupt")
)

// Slot keys used by ticketdesk.
const (
	SessionKey         = "ticketapp_session"
	TicketsKey         = "ticketapp_tickets"
	SessionSequenceKey = "ticketapp_session_seq"
	TicketSequenceKey  = "ticketapp_ticket_seq"
)

// SlotStore persists opaque values under string keys.
type SlotStore interface {
	// GetSlot returns the value under key, or ErrNotFound.
	GetSlot(ctx context.Context, key string) ([]byte, error)
	// PutSlot replaces the value under key.
	PutSlot(ctx context.Context, key string, value []byte) error
	// DeleteSlot removes key. Deleting an absent key is not an error.
	DeleteSlot(ctx context.Context, key string) error
}

// ValidateKey rejects blank keys before they reach a backend.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("slot key is required")
	}
	return nil
}

// IsNotFound reports whether err marks an absent slot or record.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// Corrupt wraps a decode failure for the given slot as ErrCorrupt.
func Corrupt(key string, cause error) error {
	return errors.Wrap(errors.CodeStorageCorrupt, "decode slot "+key, cause).With("Key", key)
}

// ReadJSON decodes the slot under key into target. It reports false with a nil
// error when the slot is absent.
func ReadJSON(ctx context.Context, slots SlotStore, key string, target any) (bool, error) {
	raw, err := slots.GetSlot(ctx, key)
	if stderrors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get slot %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false, Corrupt(key, err)
	}
	return true, nil
}

// WriteJSON encodes value and replaces the slot under key.
func WriteJSON(ctx context.Context, slots SlotStore, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", key, err)
	}
	if err := slots.PutSlot(ctx, key, raw); err != nil {
		return fmt.Errorf("put slot %s: %w", key, err)
	}
	return nil
}

// NextSequence advances the integer slot under key and returns the new value.
// The result is always greater than floor, so a sequence created after records
// already exist never reissues their ids. Callers serialize access.
func NextSequence(ctx context.Context, slots SlotStore, key string, floor int64) (int64, error) {
	current := int64(0)
	raw, err := slots.GetSlot(ctx, key)
	switch {
	case stderrors.Is(err, ErrNotFound):
	case err != nil:
		return 0, fmt.Errorf("get slot %s: %w", key, err)
	default:
		current, err = strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			return 0, Corrupt(key, err)
		}
	}
	next := max(current, floor) + 1
	if err := slots.PutSlot(ctx, key, []byte(strconv.FormatInt(next, 10))); err != nil {
		return 0, fmt.Errorf("put slot %s: %w", key, err)
	}
	return next, nil
}
