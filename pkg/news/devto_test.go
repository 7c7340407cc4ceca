package news

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestFetch(t *testing.T) {
	payload := []map[string]interface{}{
		{
			"title":        "Understanding Go Generics",
			"description":  "A walkthrough of type parameters and constraints in Go 1.18+.",
			"published_at": "2026-02-26T12:00:00Z",
			"tag_list":     []string{"go", "generics"},
			"user": map[string]interface{}{
				"name": "Jordan Doe",
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewDevtoClient()
	client.baseURL = srv.URL

	articles, err := client.Fetch(10)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "Understanding Go Generics", articles[0].Title)
	assert.Equal(t, "Jordan Doe", articles[0].Author)
	assert.Equal(t, []string{"go", "generics"}, articles[0].Tags)
	assert.Equal(t, "2026-02-26T12:00:00Z", articles[0].PublishedAt)
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewDevtoClient()
	client.baseURL = srv.URL

	_, err := client.Fetch(10)
	assert.NotEqual(t, nil, err)
}
