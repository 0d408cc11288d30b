package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/postbot/backend/internal/domain"
)

// sessionID binds the {sessionId} path parameter the same way generated
// oapi-codegen wrappers do.
func sessionID(r *http.Request) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "sessionId", chi.URLParam(r, "sessionId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return openapi_types.UUID{}, fmt.Errorf("invalid sessionId: %w", err)
	}
	return id, nil
}

// platformParam binds and parses the {platform} path parameter.
func platformParam(r *http.Request) (domain.Platform, error) {
	var name string
	err := runtime.BindStyledParameterWithOptions("simple", "platform", chi.URLParam(r, "platform"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("invalid platform: %w", err)
	}
	return domain.ParsePlatform(name)
}

// decodeBody decodes a JSON request body into dst. Returns false after
// writing the error response itself.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("body_too_large", "request body too large"))
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be valid JSON"))
	return false
}

// withSession binds the session ID or writes a 422.
func withSession(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	id, err := sessionID(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return openapi_types.UUID{}, false
	}
	return id, true
}

// withSessionAndPlatform binds both path parameters or writes a 422.
func withSessionAndPlatform(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, domain.Platform, bool) {
	id, ok := withSession(w, r)
	if !ok {
		return id, "", false
	}
	p, err := platformParam(r)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(unwrapMessage(err, domain.ErrValidation)))
		return id, "", false
	}
	return id, p, true
}
