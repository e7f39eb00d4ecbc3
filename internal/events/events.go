// Package events fans run lifecycle notifications out to SSE subscribers.
package events

import (
	"encoding/json"
	"time"
)

const (
	TypePing        = "ping"
	TypeRunStarted  = "run_started"
	TypeRunFinished = "run_finished"
	TypeRunFailed   = "run_failed"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	RunID     string          `json:"run_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent returns the JSON line for one event. data is marshalled as-is.
func MakeEvent(reqID, typ, runID string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		RunID:     runID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
