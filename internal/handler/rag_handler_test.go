package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"technews/internal/rag"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeRagService struct {
	searchRes  *rag.SearchResponse
	searchErr  error
	historyRes *rag.HistoryResponse
	historyErr error
	embedding  []float32
	embedErr   error
	storeErr   error
	storedID   int64
}

func (f *fakeRagService) Search(ctx context.Context, query string, topK int) (*rag.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, rag.ErrEmptyQuery
	}
	return f.searchRes, f.searchErr
}

func (f *fakeRagService) GenerateHistory(ctx context.Context, query string) (*rag.HistoryResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, rag.ErrEmptyQuery
	}
	return f.historyRes, f.historyErr
}

func (f *fakeRagService) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return f.embedding, f.embedErr
}

func (f *fakeRagService) StoreEmbedding(articleID int64, embedding []float32, meta rag.IndexMetadata) error {
	f.storedID = articleID
	return f.storeErr
}

func newRagRouter(service RagService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRagHandler(service)
	r.POST("/embed", h.Embed)
	r.POST("/search", h.Search)
	r.POST("/history", h.History)
	return r
}

func TestSearch_MissingQuery(t *testing.T) {
	r := newRagRouter(&fakeRagService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/search", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch_ReturnsResults(t *testing.T) {
	service := &fakeRagService{
		searchRes: &rag.SearchResponse{
			Query:   "AI",
			Results: []rag.SearchResult{{ID: 1, Title: "Hit", Score: 0.9}},
			Count:   1,
		},
	}
	r := newRagRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/search", strings.NewReader(`{"query":"AI","topK":5}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res rag.SearchResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "Hit", res.Results[0].Title)
}

func TestSearch_UpstreamFailureIsGeneric(t *testing.T) {
	service := &fakeRagService{searchErr: errors.New("openai: 503 model overloaded")}
	r := newRagRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/search", strings.NewReader(`{"query":"AI"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Search failed", res["error"])
}

func TestHistory_MissingQuery(t *testing.T) {
	r := newRagRouter(&fakeRagService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/history", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory_ReturnsResponse(t *testing.T) {
	service := &fakeRagService{
		historyRes: &rag.HistoryResponse{
			Summary:  "A short history.",
			Timeline: []rag.TimelineEvent{{Date: "Jan 15, 2024", Event: "Launch"}},
			Sources:  []rag.Source{{ID: 1, Title: "Launch", Link: "/articles/1", Tags: []string{}}},
		},
	}
	r := newRagRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/history", strings.NewReader(`{"query":"AI"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res rag.HistoryResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "A short history.", res.Summary)
	assert.Equal(t, 1, len(res.Timeline))
	assert.Equal(t, 1, len(res.Sources))
}

func TestHistory_UpstreamFailure(t *testing.T) {
	service := &fakeRagService{historyErr: errors.New("embedder down")}
	r := newRagRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/history", strings.NewReader(`{"query":"AI"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestEmbed_MissingText(t *testing.T) {
	r := newRagRouter(&fakeRagService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/embed", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmbed_ReturnsDimensions(t *testing.T) {
	service := &fakeRagService{embedding: []float32{0.1, 0.2, 0.3}}
	r := newRagRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/embed", strings.NewReader(`{"text":"some article text"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res EmbedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 3, res.Dimensions)
	assert.Equal(t, (*int64)(nil), res.ArticleID)
	assert.Equal(t, int64(0), service.storedID)
}

func TestEmbed_StoresWhenArticleIDGiven(t *testing.T) {
	service := &fakeRagService{embedding: []float32{0.1}}
	r := newRagRouter(service)

	body := `{"text":"some article text","article_id":5,"title":"Stored","tags":["go"]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/embed", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), service.storedID)

	var res EmbedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, int64(5), *res.ArticleID)
}

func TestEmbed_StoreFailureStillReturnsEmbedding(t *testing.T) {
	service := &fakeRagService{embedding: []float32{0.1}, storeErr: errors.New("index down")}
	r := newRagRouter(service)

	body := `{"text":"some article text","article_id":5}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/embed", strings.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res EmbedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Dimensions)
}

func TestEmbed_EmbedderFailure(t *testing.T) {
	service := &fakeRagService{embedErr: errors.New("embedder down")}
	r := newRagRouter(service)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/embed", strings.NewReader(`{"text":"some article text"}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
