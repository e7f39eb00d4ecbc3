package manual

import (
	"context"
	"testing"

	"internhunt-engine/internal/config"
	"internhunt-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchServesConfigEntries(t *testing.T) {
	s := New([]config.ManualEntry{{
		Company:   "Supreme Court of Canada",
		TitleHint: "Law Clerk Program",
		URL:       "https://www.scc-csc.ca/empl/lc-aj-eng.aspx",
		Location:  "Ottawa, ON",
		Tags:      []string{"law"},
	}})

	res, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)

	r := res.Records[0]
	assert.Equal(t, domain.SourceManual, r.Kind)
	assert.Equal(t, "Law Clerk Program", r.Fields["title_hint"])
	assert.Equal(t, []any{"law"}, r.Fields["tags"])
}
