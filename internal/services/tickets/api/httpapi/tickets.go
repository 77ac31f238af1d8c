package httpapi

import (
	"net/http"
	"strconv"

	apperrors "github.com/louisbranch/ticketdesk/internal/platform/errors"
	"github.com/louisbranch/ticketdesk/internal/platform/requestctx"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/ticket"
)

type ticketResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type createTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

type updateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type dashboardResponse struct {
	User  userResponse `json:"user"`
	Stats ticket.Stats `json:"stats"`
}

func toTicketResponse(t ticket.Ticket) ticketResponse {
	return ticketResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   ticket.FormatTimestamp(t.CreatedAt),
		UpdatedAt:   ticket.FormatTimestamp(t.UpdatedAt),
	}
}

func (h *Handler) handleListTickets(w http.ResponseWriter, r *http.Request) {
	var (
		tickets []ticket.Ticket
		err     error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		tickets, err = h.tickets.ListByStatus(r.Context(), ticket.Status(status))
	} else {
		tickets, err = h.tickets.List(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, toTicketResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.tickets.Create(r.Context(), ticket.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      ticket.Status(req.Status),
		Priority:    ticket.Priority(req.Priority),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTicketResponse(created))
}

func (h *Handler) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := pathTicketID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	found, err := h.tickets.Get(r.Context(), ticketID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(found))
}

func (h *Handler) handleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := pathTicketID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateTicketRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	patch := ticket.Patch{Title: req.Title, Description: req.Description}
	if req.Status != nil {
		status := ticket.Status(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := ticket.Priority(*req.Priority)
		patch.Priority = &priority
	}
	updated, err := h.tickets.Update(r.Context(), ticketID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(updated))
}

func (h *Handler) handleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, err := pathTicketID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.tickets.Delete(r.Context(), ticketID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tickets.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	principal, ok := requestctx.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.New(apperrors.CodeUnauthenticated, "missing principal"))
		return
	}
	stats, err := h.tickets.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		User:  userResponse{ID: principal.UserID, Email: principal.Email, Name: principal.Name},
		Stats: stats,
	})
}

func pathTicketID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	ticketID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ticketID <= 0 {
		return 0, apperrors.New(apperrors.CodeTicketInvalidID, "invalid ticket id").With("ID", raw)
	}
	return ticketID, nil
}
