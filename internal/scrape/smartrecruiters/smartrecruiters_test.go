package smartrecruiters

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"internhunt-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPaginates(t *testing.T) {
	var offsets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/BoschGroup/postings", r.URL.Path)
		off := r.URL.Query().Get("offset")
		offsets = append(offsets, off)

		n := 100
		if off == "100" {
			n = 3
		}
		items := make([]string, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, fmt.Sprintf(`{"id":"%s-%d","name":"Intern %d"}`, off, i, i))
		}
		_, _ = fmt.Fprintf(w, `{"content":[%s],"totalFound":103}`, strings.Join(items, ","))
	}))
	defer srv.Close()

	s := New(Config{Boards: []domain.Board{{Name: "Bosch", Board: "BoschGroup"}}, APIBase: srv.URL}, nil)
	res, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "100"}, offsets)
	assert.Len(t, res.Records, 103)
	assert.Equal(t, "BoschGroup", res.Records[0].Board)
}
