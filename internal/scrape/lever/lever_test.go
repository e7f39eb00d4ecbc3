package lever

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"internhunt-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostingsURL(t *testing.T) {
	u, err := postingsURL("waveapps")
	require.NoError(t, err)
	assert.Equal(t, "https://api.lever.co/v0/postings/waveapps?mode=json", u)

	u, err = postingsURL("https://api.lever.co/v0/postings/waveapps/")
	require.NoError(t, err)
	assert.Equal(t, "https://api.lever.co/v0/postings/waveapps.json", u)
}

func TestFetchDecodesArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wave.json", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"text":"Data Intern","hostedUrl":"https://jobs.lever.co/wave/1","categories":{"location":"Toronto, ON","team":"Data"}}
		]`))
	}))
	defer srv.Close()

	s := New(Config{Boards: []domain.Board{{Name: "Wave", Board: srv.URL + "/wave"}}}, nil)
	res, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, domain.SourceLever, res.Records[0].Kind)
	assert.Equal(t, "Data Intern", res.Records[0].Fields["text"])
}
