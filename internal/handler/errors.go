package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/postbot/backend/internal/domain"
)

// ErrorDetail is the machine-readable code and human-readable message of an
// error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. malformed body, bad path parameter).
func requestBody(message string) ErrorResponse {
	return errorBody("validation_error", message)
}

// writeError maps a service error onto a status code and error body.
// notFound is the message used for domain.ErrNotFound because the handler is
// the layer that knows what was being looked up. An unknown session always
// reads "session not found".
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err, domain.ErrValidation)))
	case errors.Is(err, domain.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "session not found"))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not_found", notFound))
	case errors.Is(err, domain.ErrSubmissionInProgress):
		writeJSON(w, http.StatusConflict, errorBody("submission_in_progress", "a submission is already in progress"))
	case errors.Is(err, domain.ErrSubmissionTimeout):
		writeJSON(w, http.StatusGatewayTimeout, errorBody("submission_timeout", domain.ErrSubmissionTimeout.Error()))
	default:
		s.log.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}

// unwrapMessage extracts the human-readable part after a wrapped sentinel.
// e.g. "service.FormService.Generate: validation error: select at least one platform"
// → "select at least one platform". Falls back to the sentinel text itself.
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error()
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return msg
	}
	rest := strings.TrimPrefix(msg[i+len(marker):], ": ")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return marker
	}
	return rest
}

// writeJSON encodes body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
