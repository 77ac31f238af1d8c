package httpapi

import (
	"net/http"

	"github.com/louisbranch/ticketdesk/internal/services/tickets/session"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/ticket"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the ticketdesk JSON API.
type Handler struct {
	auth    *session.Authenticator
	tickets *ticket.Store
}

// NewHandler builds the API handler.
func NewHandler(auth *session.Authenticator, tickets *ticket.Store) *Handler {
	return &Handler{auth: auth, tickets: tickets}
}

// Routes registers every endpoint on a fresh mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /up", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
	mux.HandleFunc("POST /api/auth/signup", h.handleSignup)
	mux.Handle("POST /api/auth/logout", h.requireSession(http.HandlerFunc(h.handleLogout)))
	mux.Handle("GET /api/auth/session", h.requireSession(http.HandlerFunc(h.handleSession)))

	mux.Handle("GET /api/tickets", h.requireSession(http.HandlerFunc(h.handleListTickets)))
	mux.Handle("POST /api/tickets", h.requireSession(http.HandlerFunc(h.handleCreateTicket)))
	mux.Handle("GET /api/tickets/stats", h.requireSession(http.HandlerFunc(h.handleStats)))
	mux.Handle("GET /api/tickets/{id}", h.requireSession(http.HandlerFunc(h.handleGetTicket)))
	mux.Handle("PATCH /api/tickets/{id}", h.requireSession(http.HandlerFunc(h.handleUpdateTicket)))
	mux.Handle("PUT /api/tickets/{id}", h.requireSession(http.HandlerFunc(h.handleUpdateTicket)))
	mux.Handle("DELETE /api/tickets/{id}", h.requireSession(http.HandlerFunc(h.handleDeleteTicket)))
	mux.Handle("GET /api/dashboard", h.requireSession(http.HandlerFunc(h.handleDashboard)))

	return mux
}
