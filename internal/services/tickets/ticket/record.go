package ticket

import (
	"fmt"
	"time"
)

// timestampLayout is fixed-width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// record is the JSON shape of one ticket inside the tickets slot.
type record struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// FormatTimestamp renders value in the persisted timestamp layout.
func FormatTimestamp(value time.Time) string {
	return value.UTC().Format(timestampLayout)
}

func parseTimestamp(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func toRecord(t Ticket) record {
	return record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   FormatTimestamp(t.CreatedAt),
		UpdatedAt:   FormatTimestamp(t.UpdatedAt),
	}
}

func recordToDomain(r record) (Ticket, error) {
	status := Status(r.Status)
	if !status.Valid() {
		return Ticket{}, fmt.Errorf("ticket %d: unknown status %q", r.ID, r.Status)
	}
	priority := Priority(r.Priority)
	if !priority.Valid() {
		return Ticket{}, fmt.Errorf("ticket %d: unknown priority %q", r.ID, r.Priority)
	}
	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return Ticket{}, fmt.Errorf("ticket %d: created at: %w", r.ID, err)
	}
	updatedAt, err := parseTimestamp(r.UpdatedAt)
	if err != nil {
		return Ticket{}, fmt.Errorf("ticket %d: updated at: %w", r.ID, err)
	}
	return Ticket{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      status,
		Priority:    priority,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}
