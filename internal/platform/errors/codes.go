// Package errors provides structured error handling with i18n support.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidRequest marks a request body or parameter that cannot be decoded.
	CodeInvalidRequest Code = "INVALID_REQUEST"

	// CodeRequestTooLarge marks a request body over the accepted size.
	CodeRequestTooLarge Code = "REQUEST_TOO_LARGE"

	// Auth errors
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeInvalidSignupData  Code = "INVALID_SIGNUP_DATA"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"

	// Ticket errors
	CodeTicketTitleEmpty      Code = "TICKET_TITLE_EMPTY"
	CodeTicketInvalidStatus   Code = "TICKET_INVALID_STATUS"
	CodeTicketInvalidPriority Code = "TICKET_INVALID_PRIORITY"
	CodeTicketInvalidID       Code = "TICKET_INVALID_ID"

	// Storage errors
	CodeNotFound       Code = "NOT_FOUND"
	CodeStorageCorrupt Code = "STORAGE_CORRUPT"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInvalidRequest,
		CodeInvalidSignupData,
		CodeTicketTitleEmpty,
		CodeTicketInvalidStatus,
		CodeTicketInvalidPriority,
		CodeTicketInvalidID:
		return codes.InvalidArgument

	case CodeInvalidCredentials,
		CodeUnauthenticated:
		return codes.Unauthenticated

	case CodeNotFound:
		return codes.NotFound

	case CodeRequestTooLarge:
		return codes.ResourceExhausted

	// DataLoss - persisted payload can no longer be decoded
	case CodeStorageCorrupt:
		return codes.DataLoss

	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.NotFound:
		return http.StatusNotFound
	case codes.ResourceExhausted:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
