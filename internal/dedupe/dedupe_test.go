package dedupe

import (
	"testing"

	"internhunt-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostingsLaterWins(t *testing.T) {
	in := []domain.Posting{
		{Company: "Acme", Role: "Software Intern", URL: "https://x/1", Location: "toronto, on"},
		{Company: "Beta", Role: "Data Intern", URL: "https://x/2"},
		{Company: "ACME", Role: "software intern", URL: "https://X/1", Location: "Toronto, ON"},
	}
	out := Postings(in)
	require.Len(t, out, 2)
	assert.Equal(t, "Toronto, ON", out[0].Location)
	assert.Equal(t, "ACME", out[0].Company)
	assert.Equal(t, "Beta", out[1].Company)
}

func TestPostingsIdempotent(t *testing.T) {
	in := []domain.Posting{
		{Company: "Acme", Role: "Intern", URL: "https://x/1"},
		{Company: "Acme", Role: "Intern", URL: "https://x/1", Notes: "manual"},
		{Company: "Acme", Role: "Co-op", URL: "https://x/1"},
	}
	once := Postings(in)
	assert.Equal(t, once, Postings(once))
	assert.Len(t, once, 2)
	assert.Equal(t, "manual", once[0].Notes)
}

func TestPostingsEmpty(t *testing.T) {
	assert.Empty(t, Postings(nil))
}
