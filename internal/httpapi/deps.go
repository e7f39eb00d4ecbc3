package httpapi

import (
	"context"
	"sync/atomic"

	"internhunt-engine/internal/events"
	"internhunt-engine/internal/registry"
	"internhunt-engine/internal/scrape/types"
)

// RunController is the slice of poll.Runner the API drives.
type RunController interface {
	Trigger(ctx context.Context) bool
	Status() types.ScrapeStatus
}

type Deps struct {
	Store registry.Store

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	UserCfgPath string

	Runner RunController

	// Hub may be nil; /events then answers 503.
	Hub *events.Hub

	// Background runs outlive the request; they stop with this context.
	BaseCtx context.Context
}
