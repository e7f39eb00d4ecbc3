package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"internhunt-engine/internal/config"
	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func sampleRegistry() *registry.Registry {
	r := registry.New()
	r.Items["https://x/1"] = domain.Entry{
		Posting: domain.Posting{
			Company: "Acme", Role: "Software Intern", Location: "Toronto, ON", Country: "Canada",
			Deadline: domain.RollingDeadline, Status: domain.StatusOpen, Tags: []string{"software"},
			URL: "https://x/1", Level: domain.LevelUndergraduate,
		},
		CreatedAt: now.Add(-48 * time.Hour),
		UpdatedAt: now.Add(-time.Hour),
	}
	r.Items["https://x/2"] = domain.Entry{
		Posting: domain.Posting{
			Company: "Old | Co", Role: "Embedded Co-op", Country: "Canada",
			Deadline: "2026-01-01", Status: domain.StatusClosed, Tags: []string{"hardware-embedded"},
			URL: "https://x/2", Level: domain.LevelUndergraduate,
		},
		CreatedAt: now.Add(-60 * 24 * time.Hour),
		UpdatedAt: now.Add(-30 * 24 * time.Hour),
	}
	return r
}

func TestREADME(t *testing.T) {
	var buf bytes.Buffer
	opps := []config.Opportunity{{Name: "Ontario Public Service", URL: "https://ops.example", Notes: "co-op portal"}}
	require.NoError(t, README(&buf, sampleRegistry(), opps, now))
	out := buf.String()

	assert.Contains(t, out, "_Last generated: 2026-10-19 09:00 UTC. 1 open of 2 tracked._")
	assert.Contains(t, out, "| Acme | Software Intern | Toronto, ON | Undergraduate | Rolling/unspecified | Open | [Apply](https://x/1) |")
	assert.Contains(t, out, `| Old \| Co | Embedded Co-op | — |`)
	assert.Contains(t, out, "- **Acme**: [Software Intern](https://x/1) (Toronto, ON)")
	assert.NotContains(t, out, "- **Old")
	assert.Contains(t, out, "## Mechanical\n\n| _No entries yet._ |")
	assert.Contains(t, out, "- [Ontario Public Service](https://ops.example): co-op portal")

	// hardware-embedded lands in both hardware buckets
	assert.Equal(t, 2, strings.Count(out, "[Apply](https://x/2)"))
}

func TestREADMEEmptyRegistry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, README(&buf, registry.New(), nil, now))
	assert.Contains(t, buf.String(), "_Nothing new in the last 7 days._")
	assert.Equal(t, len(buckets), strings.Count(buf.String(), "_No entries yet._"))
	assert.NotContains(t, buf.String(), "Other opportunities")
}

func TestCustomTemplate(t *testing.T) {
	r, err := New(`{{ .Total }} tracked`)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.README(&buf, sampleRegistry(), nil, now))
	assert.Equal(t, "2 tracked", buf.String())

	_, err = New(`{{ .Broken`)
	assert.Error(t, err)
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")

	wrote, err := WriteIfChanged(path, []byte("hello\n"))
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = WriteIfChanged(path, []byte("hello\n\n"))
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = WriteIfChanged(path, []byte("bye\n"))
	require.NoError(t, err)
	assert.True(t, wrote)
	b, _ := os.ReadFile(path)
	assert.Equal(t, "bye\n", string(b))
}
