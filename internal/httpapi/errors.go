package httpapi

import (
	"encoding/json"
	"net/http"
)

// APIError is the envelope every non-2xx JSON response uses.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		Param     string `json:"param,omitempty"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeAPIError(w, r, status, code, message, "")
}

// badParam answers 400 naming the offending query parameter.
func badParam(w http.ResponseWriter, r *http.Request, param, message string) {
	writeAPIError(w, r, http.StatusBadRequest, "bad_request", message, param)
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code, message, param string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.Param = param
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}
