package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/ticketdesk/internal/platform/errors"
	"github.com/louisbranch/ticketdesk/internal/platform/errors/i18n"
	"go.opentelemetry.io/otel/trace"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

// writeError renders err with a message localized for the request. Nothing
// is written once the client has gone away.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		return
	}
	code := apperrors.CodeOf(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logServerError(r, err)
	}
	locale := i18n.MatchLocale(r.Header.Get("Accept-Language"))
	message := i18n.GetCatalog(locale).Format(string(code), apperrors.MetadataOf(err))
	writeJSON(w, status, errorResponse{Error: string(code), Message: message})
}

// logServerError records an unexpected failure, tagged with the trace id
// when the request is being traced.
func logServerError(r *http.Request, err error) {
	if spanCtx := trace.SpanContextFromContext(r.Context()); spanCtx.HasTraceID() {
		log.Printf("%s %s trace=%s: %v", r.Method, r.URL.Path, spanCtx.TraceID(), err)
		return
	}
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
}

// decodeJSON reads a bounded JSON body into target.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.Wrap(apperrors.CodeRequestTooLarge, "read request body", err)
		}
		return apperrors.Wrap(apperrors.CodeInvalidRequest, "decode request body", err)
	}
	return nil
}
