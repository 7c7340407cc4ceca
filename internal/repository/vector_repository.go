package repository

import (
	"database/sql"

	"technews/internal/model"

	"github.com/pgvector/pgvector-go"
)

// VectorRepository stores article embeddings in pgvector and answers
// nearest-neighbor queries by cosine distance. Scores are 1 - distance, so
// higher means more similar.
type VectorRepository struct {
	db *sql.DB
}

func NewVectorRepository(db *sql.DB) *VectorRepository {
	return &VectorRepository{db: db}
}

func (r *VectorRepository) Upsert(entry *model.VectorEntry) error {
	_, err := r.db.Exec(`
		INSERT INTO article_embeddings(vector_id, article_id, title, tags, published_at, embedding)
		VALUES($1, $2, $3, $4, $5, $6)
		ON CONFLICT (vector_id) DO UPDATE
		SET article_id = EXCLUDED.article_id,
			title = EXCLUDED.title,
			tags = EXCLUDED.tags,
			published_at = EXCLUDED.published_at,
			embedding = EXCLUDED.embedding
	`, entry.VectorID, entry.ArticleID, entry.Title, model.EncodeTags(entry.Tags),
		entry.PublishedAt, pgvector.NewVector(entry.Embedding))
	return err
}

func (r *VectorRepository) Query(embedding []float32, topK int) ([]model.VectorMatch, error) {
	rows, err := r.db.Query(`
		SELECT article_id, 1 - (embedding <=> $1) AS score
		FROM article_embeddings
		ORDER BY embedding <=> $1
		LIMIT $2
	`, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.VectorMatch
	for rows.Next() {
		var m model.VectorMatch
		if err := rows.Scan(&m.ArticleID, &m.Score); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}
