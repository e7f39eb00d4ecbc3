package classify

import (
	"strings"

	"internhunt-engine/internal/domain"
)

var DefaultGraduateMarkers = []string{
	"new grad program", "new graduate program", "graduate", "eit",
	"master's", "masters", "phd", "articling",
}

// Leveler maps a title and its tags to an academic level.
type Leveler struct {
	grad *RoleMatcher
}

func NewLeveler(markers []string) *Leveler {
	if len(markers) == 0 {
		markers = DefaultGraduateMarkers
	}
	return &Leveler{grad: &RoleMatcher{re: compileMarkers(markers)}}
}

// Infer returns Graduate when a graduate marker appears as a whole word in the
// title or tags and Undergraduate otherwise, including when nothing matches.
func (l *Leveler) Infer(title string, tags []string) domain.Level {
	blob := fold(title + " " + strings.Join(tags, " "))
	if l.grad.Match(blob) {
		return domain.LevelGraduate
	}
	return domain.LevelUndergraduate
}

var defaultLeveler = NewLeveler(nil)

func InferLevel(title string, tags []string) domain.Level {
	return defaultLeveler.Infer(title, tags)
}
