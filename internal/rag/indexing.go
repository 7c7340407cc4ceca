package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"technews/internal/model"
)

// IndexMetadata is the denormalized article metadata written alongside a
// vector entry.
type IndexMetadata struct {
	Title       string
	Tags        []string
	PublishedAt string
}

// EmbedText maps text to its embedding vector without touching the index.
func (s *Service) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}

	return embedding, nil
}

// StoreEmbedding upserts the index entry for an article, replacing any prior
// entry for the same id.
func (s *Service) StoreEmbedding(articleID int64, embedding []float32, meta IndexMetadata) error {
	publishedAt := meta.PublishedAt
	if publishedAt == "" {
		publishedAt = time.Now().UTC().Format(time.RFC3339)
	}

	entry := &model.VectorEntry{
		VectorID:    model.VectorID(articleID),
		ArticleID:   articleID,
		Title:       meta.Title,
		Tags:        meta.Tags,
		PublishedAt: publishedAt,
		Embedding:   embedding,
	}

	if err := s.vectors.Upsert(entry); err != nil {
		return fmt.Errorf("store embedding: %w", err)
	}

	return nil
}

// IndexArticle embeds an article's content and upserts its index entry.
// Re-running with the same content replaces the entry in place. Callers at
// the article create/update boundary treat a failure here as best-effort:
// the article row is already committed and must not be rolled back.
func (s *Service) IndexArticle(ctx context.Context, articleID int64, text string, meta IndexMetadata) (int, error) {
	embedding, err := s.EmbedText(ctx, text)
	if err != nil {
		return 0, err
	}

	if err := s.StoreEmbedding(articleID, embedding, meta); err != nil {
		return 0, err
	}

	return len(embedding), nil
}
