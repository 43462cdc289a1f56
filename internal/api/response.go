package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"sovereign/internal/auth"
	"sovereign/internal/calc"
	"sovereign/internal/portal"
	"sovereign/internal/portfolio"
	"sovereign/internal/utils"
)

// JSONResponse writes a JSON response.
func JSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorBody struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse maps err to a status and a body that does not echo
// internal detail.
func ErrorResponse(w http.ResponseWriter, err error) {
	if ce, ok := utils.AsCustom(err); ok {
		JSONResponse(w, ce.Status, errorBody{Error: ce.Code, Field: ce.Field, Message: ce.Message})
		return
	}
	var ie *calc.InputError
	switch {
	case errors.As(err, &ie):
		JSONResponse(w, http.StatusBadRequest, errorBody{Error: "invalid_input", Field: ie.Field, Message: ie.Reason})
	case errors.Is(err, auth.ErrInvalidInput), errors.Is(err, calc.ErrInvalidInput):
		JSONResponse(w, http.StatusBadRequest, errorBody{Error: "invalid_input"})
	case errors.Is(err, portal.ErrNotFound), errors.Is(err, portfolio.ErrNotFound):
		JSONResponse(w, http.StatusNotFound, errorBody{Error: "not_found"})
	default:
		JSONResponse(w, http.StatusInternalServerError, errorBody{Error: "internal_error"})
	}
}

// decodeJSON reads a single JSON object from the body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return utils.BadRequest("body", "request body is required", nil)
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(v); err != nil {
		return utils.BadRequest("body", "malformed JSON", err)
	}
	return nil
}
