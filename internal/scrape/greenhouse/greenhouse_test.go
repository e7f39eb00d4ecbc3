package greenhouse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"internhunt-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDecodesJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/boards/acme/jobs", r.URL.Path)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs":[
			{"title":"Software Engineering Intern","absolute_url":"https://boards.greenhouse.io/acme/jobs/1","location":{"name":"Toronto, ON"}},
			{"title":"Senior Engineer","absolute_url":"https://boards.greenhouse.io/acme/jobs/2","location":{"name":"Remote"}}
		]}`))
	}))
	defer srv.Close()

	s := New(Config{Boards: []domain.Board{{Name: "Acme", Board: srv.URL + "/v1/boards/acme"}}}, nil)
	s.cfg.UserAgent = "test-agent"

	res, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "greenhouse", res.Source)
	assert.Empty(t, res.Failed)
	require.Len(t, res.Records, 2)

	r := res.Records[0]
	assert.Equal(t, domain.SourceGreenhouse, r.Kind)
	assert.Equal(t, "Acme", r.Company)
	assert.Equal(t, "Software Engineering Intern", r.Fields["title"])
}

func TestFetchSkipsFailingBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down/jobs" {
			http.Error(w, "nope", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"jobs":[{"title":"Co-op Student","absolute_url":"https://x/1"}]}`))
	}))
	defer srv.Close()

	s := New(Config{Boards: []domain.Board{
		{Name: "Down", Board: srv.URL + "/down"},
		{Name: "Up", Board: srv.URL + "/up"},
	}}, nil)

	res, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"greenhouse:Down"}, res.Failed)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Up", res.Records[0].Company)
}

func TestJobsURL(t *testing.T) {
	u, err := jobsURL("wealthsimple")
	require.NoError(t, err)
	assert.Equal(t, "https://boards-api.greenhouse.io/v1/boards/wealthsimple/jobs", u)

	_, err = jobsURL(" ")
	assert.Error(t, err)
}
