package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"technews/internal/model"
)

const (
	defaultSearchTopK = 10
	// maxSearchTopK bounds the row resolution that follows the vector query,
	// whatever the caller asked for.
	maxSearchTopK = 20

	snippetLength = 200
)

type SearchResult struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Author      string   `json:"author,omitempty"`
	PublishedAt string   `json:"published_at"`
	Tags        []string `json:"tags"`
	Score       float64  `json:"score"`
	Link        string   `json:"link"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
}

// Search embeds the query, retrieves the nearest topK entries, resolves them
// against the article store and returns surviving matches sorted by
// descending score. Matches whose article has since been deleted are dropped,
// so Count reflects survivors, not raw index matches.
func (s *Service) Search(ctx context.Context, query string, topK int) (*SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	if topK <= 0 {
		topK = defaultSearchTopK
	}
	if topK > maxSearchTopK {
		topK = maxSearchTopK
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := s.vectors.Query(embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("query vector index: %w", err)
	}

	empty := &SearchResponse{Query: query, Results: []SearchResult{}, Count: 0}

	if len(matches) == 0 {
		return empty, nil
	}

	ids := distinctArticleIDs(matches)
	if len(ids) == 0 {
		return empty, nil
	}

	articles, err := s.articles.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("resolve articles: %w", err)
	}

	byID := make(map[int64]model.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}

	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		article, ok := byID[m.ArticleID]
		if !ok {
			continue
		}

		results = append(results, SearchResult{
			ID:          article.ID,
			Title:       article.Title,
			Content:     snippet(article.Content, snippetLength),
			Author:      article.Author,
			PublishedAt: article.PublishedAt,
			Tags:        article.Tags,
			Score:       m.Score,
			Link:        fmt.Sprintf("/articles/%d", article.ID),
		})
	}

	// The index order is not trustworthy after dropping stale matches.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return &SearchResponse{
		Query:   query,
		Results: results,
		Count:   len(results),
	}, nil
}

func snippet(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}
