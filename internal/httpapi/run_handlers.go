package httpapi

import (
	"context"
	"net/http"

	"internhunt-engine/internal/registry"
)

type RunHandler struct {
	Runner  RunController
	Store   registry.Store
	BaseCtx context.Context
}

func (h RunHandler) Status(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Runner.Status())
}

// Run starts one pipeline run in the background unless one is going.
func (h RunHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := h.BaseCtx
	if ctx == nil {
		ctx = context.Background()
	}
	if !h.Runner.Trigger(ctx) {
		WriteJSON(w, http.StatusOK, RunResponse{OK: false, Msg: "already running"})
		return
	}
	WriteJSON(w, http.StatusAccepted, RunResponse{OK: true, Started: true})
}

// History lists recent runs when the store keeps them.
func (h RunHandler) History(w http.ResponseWriter, r *http.Request) {
	rr, ok := h.Store.(registry.RunRecorder)
	if !ok {
		WriteError(w, r, http.StatusNotImplemented, "not_supported", "run history needs registry.driver: sqlite")
		return
	}
	limit, ok := intParam(r, "limit", 20)
	if !ok {
		badParam(w, r, "limit", "limit must be a non-negative integer")
		return
	}
	runs, err := rr.Runs(r.Context(), limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if runs == nil {
		runs = []registry.RunRecord{}
	}
	WriteJSON(w, http.StatusOK, runs)
}
