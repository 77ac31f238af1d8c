// Package ticket models support tickets and the store that persists them.
package ticket

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/ticketdesk/internal/platform/errors"
)

// Status is the workflow state of a ticket.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusClosed}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Priority ranks a ticket. The empty priority means unset.
type Priority string

const (
	PriorityUnset  Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is unset or one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUnset, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ErrEmptyTitle indicates a missing ticket title.
var ErrEmptyTitle = apperrors.New(apperrors.CodeTicketTitleEmpty, "title is required")

// Ticket is one unit of support work.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateInput describes a new ticket.
type CreateInput struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
}

// Patch lists the fields an update replaces; nil fields are kept.
type Patch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
}

// Stats counts tickets per status.
type Stats struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Closed     int `json:"closed"`
}

// NormalizeCreateInput trims and validates input before it becomes a ticket.
func NormalizeCreateInput(input CreateInput) (CreateInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return CreateInput{}, ErrEmptyTitle
	}
	if err := ValidateStatus(input.Status); err != nil {
		return CreateInput{}, err
	}
	if err := ValidatePriority(input.Priority); err != nil {
		return CreateInput{}, err
	}
	return input, nil
}

// ValidateStatus rejects statuses outside the known set.
func ValidateStatus(status Status) error {
	if !status.Valid() {
		return apperrors.New(apperrors.CodeTicketInvalidStatus, "invalid status "+strconv.Quote(string(status))).With("Status", string(status))
	}
	return nil
}

// ValidatePriority rejects priorities outside the known set.
func ValidatePriority(priority Priority) error {
	if !priority.Valid() {
		return apperrors.New(apperrors.CodeTicketInvalidPriority, "invalid priority "+strconv.Quote(string(priority))).With("Priority", string(priority))
	}
	return nil
}

// Apply merges patch over t. It does not touch ID, CreatedAt or UpdatedAt.
func (p Patch) Apply(t Ticket) (Ticket, error) {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return Ticket{}, ErrEmptyTitle
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		if err := ValidateStatus(*p.Status); err != nil {
			return Ticket{}, err
		}
		t.Status = *p.Status
	}
	if p.Priority != nil {
		if err := ValidatePriority(*p.Priority); err != nil {
			return Ticket{}, err
		}
		t.Priority = *p.Priority
	}
	return t, nil
}

// CountByStatus tallies tickets in one pass.
func CountByStatus(tickets []Ticket) Stats {
	stats := Stats{Total: len(tickets)}
	for _, t := range tickets {
		switch t.Status {
		case StatusOpen:
			stats.Open++
		case StatusInProgress:
			stats.InProgress++
		case StatusClosed:
			stats.Closed++
		}
	}
	return stats
}
