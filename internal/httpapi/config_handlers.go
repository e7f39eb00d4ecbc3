package httpapi

import (
	"net/http"
	"path/filepath"
	"sync/atomic"

	"internhunt-engine/internal/config"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cur, ok := h.CfgVal.Load().(config.Config)
	if !ok {
		WriteError(w, r, http.StatusServiceUnavailable, "no_config", "config not loaded")
		return
	}
	WriteJSON(w, http.StatusOK, cur)
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	abs, _ := filepath.Abs(h.UserCfgPath)
	WriteJSON(w, http.StatusOK, map[string]any{"path": abs})
}

// Validate re-runs validation on the live config and reports warnings.
func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	cur, ok := h.CfgVal.Load().(config.Config)
	if !ok {
		WriteError(w, r, http.StatusServiceUnavailable, "no_config", "config not loaded")
		return
	}
	_, vr := config.NormalizeAndValidate(cur)
	WriteJSON(w, http.StatusOK, vr)
}
