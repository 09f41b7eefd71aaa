package api

import (
	"encoding/json"
	"net/http"
)

// Error names carried in the envelope's errorName field. Clients branch
// on these rather than parsing human-readable messages.
const (
	ErrNameValidation         = "ValidationError"
	ErrNameConflict           = "ConflictError"
	ErrNameInvalidCredentials = "InvalidCredentialsError"
	ErrNameUnauthenticated    = "UnauthenticatedError"
	ErrNameForbidden          = "ForbiddenError"
	ErrNameInternal           = "InternalError"
)

// Envelope is the uniform wrapper for every API response, success or
// failure. It is constructed once per request and never mutated after
// construction.
type Envelope struct {
	Data       any            `json:"data"`
	DataList   any            `json:"dataList"`
	HTTPStatus string         `json:"httpStatus"`
	Message    string         `json:"message"`
	Meta       map[string]any `json:"meta"`
	Success    bool           `json:"success"`
	ErrorName  string         `json:"errorName,omitempty"`
}

// writeEnvelope writes an envelope as JSON with the given HTTP status code.
func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	if env.Meta == nil {
		env.Meta = map[string]any{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	json.NewEncoder(w).Encode(env)
}

// writeSuccess writes a success envelope with an optional meta payload.
func writeSuccess(w http.ResponseWriter, status int, message string, meta map[string]any) {
	writeEnvelope(w, status, Envelope{
		Success:    true,
		HTTPStatus: http.StatusText(status),
		Message:    message,
		Meta:       meta,
	})
}

// writeFailure writes a failure envelope with the given error name.
func writeFailure(w http.ResponseWriter, status int, errorName, message string) {
	writeEnvelope(w, status, Envelope{
		Success:    false,
		HTTPStatus: http.StatusText(status),
		Message:    message,
		ErrorName:  errorName,
	})
}

// writeValidationError writes a 422 response for missing or malformed input.
func writeValidationError(w http.ResponseWriter, message string) {
	writeFailure(w, http.StatusUnprocessableEntity, ErrNameValidation, message)
}

// writeConflict writes a 409 response for duplicate resources.
func writeConflict(w http.ResponseWriter, message string) {
	writeFailure(w, http.StatusConflict, ErrNameConflict, message)
}

// writeInvalidCredentials writes a 401 response for failed logins.
// The same message covers unknown email and wrong password so the
// response never reveals which credential was wrong.
func writeInvalidCredentials(w http.ResponseWriter) {
	writeFailure(w, http.StatusUnauthorized, ErrNameInvalidCredentials, "Email or password is invalid")
}

// writeUnauthenticated writes a 401 response for missing or invalid tokens.
func writeUnauthenticated(w http.ResponseWriter, message string) {
	writeFailure(w, http.StatusUnauthorized, ErrNameUnauthenticated, message)
}

// writeForbidden writes a 403 response for authenticated users whose
// role does not permit the route.
func writeForbidden(w http.ResponseWriter) {
	writeFailure(w, http.StatusForbidden, ErrNameForbidden, "Access denied")
}

// writeInternalError writes a 500 response. The message is generic;
// details stay in the server log.
func writeInternalError(w http.ResponseWriter) {
	writeFailure(w, http.StatusInternalServerError, ErrNameInternal, "Internal server error")
}
