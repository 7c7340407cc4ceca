package rag

import (
	"context"
	"sort"

	"technews/internal/model"
)

type fakeArticleStore struct {
	articles []model.Article
	err      error
	gotIDs   []int64
}

// GetByIDs mimics the repository: only existing rows come back, ordered
// ascending by publish date.
func (f *fakeArticleStore) GetByIDs(ids []int64) ([]model.Article, error) {
	f.gotIDs = ids
	if f.err != nil {
		return nil, f.err
	}

	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var result []model.Article
	for _, a := range f.articles {
		if wanted[a.ID] {
			result = append(result, a)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].PublishedAt < result[j].PublishedAt
	})

	return result, nil
}

type fakeVectorStore struct {
	matches   []model.VectorMatch
	queryErr  error
	upsertErr error
	upserts   []model.VectorEntry
	gotTopK   int
}

func (f *fakeVectorStore) Upsert(entry *model.VectorEntry) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, *entry)
	return nil
}

func (f *fakeVectorStore) Query(embedding []float32, topK int) ([]model.VectorMatch, error) {
	f.gotTopK = topK
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.matches, nil
}

type fakeEmbedder struct {
	embedding []float32
	err       error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.embedding, nil
}

type fakeSummarizer struct {
	text string
	err  error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, system string, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newTestService(articles *fakeArticleStore, vectors *fakeVectorStore, embedder *fakeEmbedder, summarizer *fakeSummarizer) *Service {
	if articles == nil {
		articles = &fakeArticleStore{}
	}
	if vectors == nil {
		vectors = &fakeVectorStore{}
	}
	if embedder == nil {
		embedder = &fakeEmbedder{embedding: []float32{0.1, 0.2, 0.3}}
	}
	if summarizer == nil {
		summarizer = &fakeSummarizer{text: "A summary."}
	}
	return NewService(articles, vectors, embedder, summarizer)
}
