// Package session keeps the signed-in session and authenticates the demo
// account.
package session

import (
	"context"
	"fmt"

	"github.com/louisbranch/ticketdesk/internal/platform/requestctx"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage"
)

// Session is the signed-in identity persisted under the session slot.
type Session struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// Principal returns the request identity for s.
func (s Session) Principal() requestctx.Principal {
	return requestctx.Principal{UserID: s.ID, Email: s.Email, Name: s.Name}
}

// Store reads and writes the single session slot.
type Store struct {
	slots storage.SlotStore
}

// NewStore builds a session store over slots.
func NewStore(slots storage.SlotStore) *Store {
	return &Store{slots: slots}
}

// Save replaces the stored session.
func (s *Store) Save(ctx context.Context, session Session) error {
	if err := storage.WriteJSON(ctx, s.slots, storage.SessionKey, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Read returns the stored session, storage.ErrNotFound when there is none, or
// storage.ErrCorrupt when the slot cannot be decoded.
func (s *Store) Read(ctx context.Context) (Session, error) {
	var session Session
	found, err := storage.ReadJSON(ctx, s.slots, storage.SessionKey, &session)
	if err != nil {
		return Session{}, err
	}
	if !found {
		return Session{}, storage.ErrNotFound
	}
	return session, nil
}

// Clear removes the stored session. Clearing an empty slot succeeds.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.slots.DeleteSlot(ctx, storage.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Present reports whether a readable session is stored. A corrupt slot reports
// false together with the decode error.
func (s *Store) Present(ctx context.Context) (bool, error) {
	_, err := s.Read(ctx)
	switch {
	case err == nil:
		return true, nil
	case storage.IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}
