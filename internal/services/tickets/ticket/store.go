package ticket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage"
)

// Store persists the ticket collection as one ordered JSON array slot.
type Store struct {
	mu    sync.Mutex
	slots storage.SlotStore
	now   func() time.Time
}

// NewStore builds a ticket store over slots. A nil clock uses time.Now.
func NewStore(slots storage.SlotStore, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{slots: slots, now: now}
}

// List returns every ticket in stored order.
func (s *Store) List(ctx context.Context) ([]Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// ListByStatus returns the tickets in the given status, in stored order.
func (s *Store) ListByStatus(ctx context.Context, status Status) ([]Ticket, error) {
	if err := ValidateStatus(status); err != nil {
		return nil, err
	}
	tickets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Create validates input, assigns an id and timestamps, and appends the ticket.
func (s *Store) Create(ctx context.Context, input CreateInput) (Ticket, error) {
	input, err := NormalizeCreateInput(input)
	if err != nil {
		return Ticket{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load(ctx)
	if err != nil {
		return Ticket{}, err
	}
	id, err := storage.NextSequence(ctx, s.slots, storage.TicketSequenceKey, maxID(tickets))
	if err != nil {
		return Ticket{}, fmt.Errorf("next ticket id: %w", err)
	}

	now := s.timestamp()
	created := Ticket{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.save(ctx, append(tickets, created)); err != nil {
		return Ticket{}, err
	}
	return created, nil
}

// Get returns the ticket with id, or storage.ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load(ctx)
	if err != nil {
		return Ticket{}, err
	}
	for _, t := range tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return Ticket{}, storage.ErrNotFound
}

// Update applies patch to the ticket with id and refreshes UpdatedAt.
// Nothing is written when the ticket is absent or the patch is invalid.
func (s *Store) Update(ctx context.Context, id int64, patch Patch) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load(ctx)
	if err != nil {
		return Ticket{}, err
	}
	for i, t := range tickets {
		if t.ID != id {
			continue
		}
		updated, err := patch.Apply(t)
		if err != nil {
			return Ticket{}, err
		}
		updated.UpdatedAt = s.timestamp()
		tickets[i] = updated
		if err := s.save(ctx, tickets); err != nil {
			return Ticket{}, err
		}
		return updated, nil
	}
	return Ticket{}, storage.ErrNotFound
}

// Delete removes every ticket with id. Deleting an absent id succeeds.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := tickets[:0]
	for _, t := range tickets {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return s.save(ctx, kept)
}

// Stats counts the stored tickets per status.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	tickets, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	return CountByStatus(tickets), nil
}

// SeedIfEmpty stores the example tickets when the collection is empty and
// reports whether it did.
func (s *Store) SeedIfEmpty(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if len(tickets) > 0 {
		return false, nil
	}
	if err := s.save(ctx, SeedTickets(s.timestamp())); err != nil {
		return false, err
	}
	return true, nil
}

// SeedTickets returns the example tickets, stamped with now.
func SeedTickets(now time.Time) []Ticket {
	seed := []Ticket{
		{
			ID:          1,
			Title:       "Website not loading",
			Description: "The main website is showing a 500 error",
			Status:      StatusOpen,
			Priority:    PriorityHigh,
		},
		{
			ID:          2,
			Title:       "Login button not working",
			Description: "Users cannot click the login button on mobile",
			Status:      StatusInProgress,
			Priority:    PriorityMedium,
		},
		{
			ID:          3,
			Title:       "Payment gateway integration",
			Description: "Need to integrate Stripe payment gateway",
			Status:      StatusClosed,
			Priority:    PriorityLow,
		},
	}
	for i := range seed {
		seed[i].CreatedAt = now
		seed[i].UpdatedAt = now
	}
	return seed
}

// timestamp returns the clock truncated to the persisted precision, so a
// returned ticket equals the one read back later.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Store) load(ctx context.Context) ([]Ticket, error) {
	var records []record
	found, err := storage.ReadJSON(ctx, s.slots, storage.TicketsKey, &records)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Ticket{}, nil
	}
	tickets := make([]Ticket, 0, len(records))
	for _, r := range records {
		t, err := recordToDomain(r)
		if err != nil {
			return nil, storage.Corrupt(storage.TicketsKey, err)
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (s *Store) save(ctx context.Context, tickets []Ticket) error {
	records := make([]record, 0, len(tickets))
	for _, t := range tickets {
		records = append(records, toRecord(t))
	}
	return storage.WriteJSON(ctx, s.slots, storage.TicketsKey, records)
}

func maxID(tickets []Ticket) int64 {
	var highest int64
	for _, t := range tickets {
		highest = max(highest, t.ID)
	}
	return highest
}
