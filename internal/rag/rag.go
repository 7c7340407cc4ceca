package rag

import (
	"errors"

	"technews/internal/model"
	"technews/pkg/llm"
)

var (
	ErrEmptyQuery = errors.New("query is required")
	ErrEmptyText  = errors.New("text is required")
)

type ArticleStore interface {
	GetByIDs(ids []int64) ([]model.Article, error)
}

type VectorStore interface {
	Upsert(entry *model.VectorEntry) error
	Query(embedding []float32, topK int) ([]model.VectorMatch, error)
}

// Service runs the retrieval pipelines. It holds no per-request state;
// concurrent requests share only the connection handles behind the stores.
type Service struct {
	articles   ArticleStore
	vectors    VectorStore
	embedder   llm.Embedder
	summarizer llm.Summarizer
}

func NewService(articles ArticleStore, vectors VectorStore, embedder llm.Embedder, summarizer llm.Summarizer) *Service {
	return &Service{
		articles:   articles,
		vectors:    vectors,
		embedder:   embedder,
		summarizer: summarizer,
	}
}

// distinctArticleIDs keeps the first occurrence of each id, preserving the
// relevance order the index returned.
func distinctArticleIDs(matches []model.VectorMatch) []int64 {
	seen := make(map[int64]bool, len(matches))
	var ids []int64
	for _, m := range matches {
		if m.ArticleID == 0 || seen[m.ArticleID] {
			continue
		}
		seen[m.ArticleID] = true
		ids = append(ids, m.ArticleID)
	}
	return ids
}
