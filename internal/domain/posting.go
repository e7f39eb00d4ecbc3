package domain

import (
	"strings"
	"time"
)

type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

type Level string

const (
	LevelUndergraduate Level = "Undergraduate"
	LevelGraduate      Level = "Graduate"
)

const (
	UnknownCompany  = "Unknown"
	RollingDeadline = "Rolling/unspecified"
	GeneralTag      = "general"
)

// Posting is the canonical shape every source record is normalized into.
// Field names and enum values are consumed by the renderer and the HTTP API.
type Posting struct {
	Company  string   `json:"company"`
	Role     string   `json:"role"`
	Location string   `json:"location,omitempty"`
	Country  string   `json:"country"`
	Deadline string   `json:"deadline"`
	Status   Status   `json:"status"`
	Tags     []string `json:"tags"`
	URL      string   `json:"url"`
	Level    Level    `json:"level"`
	Source   string   `json:"source,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// Entry is a Posting as kept in the registry, keyed by URL.
type Entry struct {
	Posting
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasTag reports whether any of the entry's tags equals one of want (case-insensitive).
func (p Posting) HasTag(want ...string) bool {
	for _, t := range p.Tags {
		for _, w := range want {
			if strings.EqualFold(t, w) {
				return true
			}
		}
	}
	return false
}
