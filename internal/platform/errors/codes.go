package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeAuthExpired indicates the stored token was rejected by the identity
	// endpoint. The session must be cleared and the visitor sent to login.
	CodeAuthExpired Code = "AUTH_EXPIRED"

	// CodeAuthMissing indicates no session exists. Gate only; nothing to clear.
	CodeAuthMissing Code = "AUTH_MISSING"

	// CodeNetworkTransient indicates a failed or malformed exchange with a
	// collaborator. Swallowed on passive probes, shown inline on user actions.
	CodeNetworkTransient Code = "NETWORK_TRANSIENT"

	// CodeValidationRejected indicates the server refused the request payload.
	CodeValidationRejected Code = "VALIDATION_REJECTED"

	// CodeStorage indicates a durable key-value store fault.
	CodeStorage Code = "STORAGE"
)

// HTTPStatus maps a code to the status the web surface responds with when the
// error reaches a page render instead of a redirect.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeAuthExpired, CodeAuthMissing:
		return http.StatusUnauthorized
	case CodeValidationRejected:
		return http.StatusUnprocessableEntity
	case CodeNetworkTransient:
		return http.StatusBadGateway
	case CodeStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
