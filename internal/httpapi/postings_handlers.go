package httpapi

import (
	"net/http"
	"strings"

	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/registry"
)

type PostingsHandler struct {
	Store registry.Store
}

// List serves GET /postings?status=&tag=&level=&company=&q=&limit=
func (h PostingsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := intParam(r, "limit", 0)
	if !ok {
		badParam(w, r, "limit", "limit must be a non-negative integer")
		return
	}
	status := strings.TrimSpace(q.Get("status"))
	if status != "" && !strings.EqualFold(status, string(domain.StatusOpen)) && !strings.EqualFold(status, string(domain.StatusClosed)) {
		badParam(w, r, "status", "status must be Open or Closed")
		return
	}

	items, err := h.Store.List(r.Context(), registry.Filter{
		Status:  status,
		Tag:     strings.TrimSpace(q.Get("tag")),
		Level:   strings.TrimSpace(q.Get("level")),
		Company: strings.TrimSpace(q.Get("company")),
		Query:   strings.TrimSpace(q.Get("q")),
		Limit:   limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if items == nil {
		items = []domain.Entry{}
	}
	WriteJSON(w, http.StatusOK, PostingsResponse{Count: len(items), Items: items})
}
