package httpapi

import "net/http"

// NewMux wires every route. Handler wraps it with the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Postings
	ph := PostingsHandler{Store: d.Store}
	mux.HandleFunc("/postings", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.List,
	}))

	// Config (read-only)
	ch := ConfigHandler{CfgVal: d.CfgVal, UserCfgPath: d.UserCfgPath}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Runs
	rh := RunHandler{Runner: d.Runner, Store: d.Store, BaseCtx: d.BaseCtx}
	mux.HandleFunc("/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Run,
	}))
	mux.HandleFunc("/run/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Status,
	}))
	mux.HandleFunc("/runs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.History,
	}))

	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: EventsHandler{Hub: d.Hub}.ServeSSE,
	}))

	return mux
}

// Handler is NewMux behind RequestID, Recover and AccessLog.
func Handler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, Recover, AccessLog)
}
