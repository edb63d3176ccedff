package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/chemseek/pkg/catalog"
)

func TestSearchParsesCandidates(t *testing.T) {
	var gotQuery, gotLimit, gotMinSim string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		gotMinSim = r.URL.Query().Get("min_sim")
		w.Write([]byte(`{
			"success": true,
			"results": [
				{"id": "asp-100", "name": "Aspirin", "image_url": "https://img/a.webp", "similarity": 0.97},
				{"id": "x", "name": "Scoreless"},
				{"id": "broken"},
				{"name": "Imageless", "similarity": 0.71}
			]
		}`))
	}))
	defer ts.Close()

	c := New(ts.URL, WithAttempts(1))
	results, err := c.Search(context.Background(), "asp", catalog.Options{Limit: 5, MinSimilarity: 0.7})
	require.NoError(t, err)

	assert.Equal(t, "asp", gotQuery)
	assert.Equal(t, "5", gotLimit)
	assert.Equal(t, "0.7", gotMinSim)

	// The nameless entry is dropped, everything else is tolerated.
	require.Len(t, results, 3)
	assert.Equal(t, "Aspirin", results[0].Name)
	require.NotNil(t, results[0].Similarity)
	assert.InDelta(t, 0.97, *results[0].Similarity, 1e-9)
	assert.Nil(t, results[1].Similarity)
	assert.Empty(t, results[2].ImageURL)
}

func TestSearchUpstreamFailureFlag(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "index offline"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, WithAttempts(1))
	_, err := c.Search(context.Background(), "asp", catalog.Options{})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestSearchTransportErrorAfterRetries(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := New(ts.URL, WithAttempts(2))
	_, err := c.Search(context.Background(), "asp", catalog.Options{})
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestSearchRecoversOnRetry(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"success": true, "results": [{"name": "Aspirin"}]}`))
	}))
	defer ts.Close()

	c := New(ts.URL, WithAttempts(3))
	results, err := c.Search(context.Background(), "asp", catalog.Options{})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestDetailFetchesProduct(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/products/Aspirin", r.URL.Path)
		w.Write([]byte(`{"success": true, "product": {"id": "asp-100", "name": "Aspirin", "summary": "NSAID", "popularity": 900}}`))
	}))
	defer ts.Close()

	c := New(ts.URL, WithAttempts(1))
	product, err := c.Detail(context.Background(), "Aspirin")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", product.Name)
	assert.Equal(t, "NSAID", product.Summary)
	assert.Equal(t, 900, product.Popularity)
}

func TestDetailNotFoundIsNotRetried(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(ts.URL, WithAttempts(3))
	_, err := c.Detail(context.Background(), "nope")
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
	assert.Equal(t, 1, attempts)
}
