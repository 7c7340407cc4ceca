package repository

import (
	"database/sql"
	"time"

	"technews/internal/model"

	"github.com/lib/pq"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ArticleUpdate carries a partial update. Nil fields are left unchanged.
type ArticleUpdate struct {
	Title       *string
	Content     *string
	Tags        []string
	Author      *string
	PublishedAt *string
}

func (r *ArticleRepository) Create(article *model.Article) error {
	if article.PublishedAt == "" {
		article.PublishedAt = time.Now().UTC().Format(time.RFC3339)
	}

	return r.db.QueryRow(`
		INSERT INTO articles(title, content, tags, author, published_at)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, article.Title, article.Content, model.EncodeTags(article.Tags),
		nullIfEmpty(article.Author), article.PublishedAt,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

func (r *ArticleRepository) GetAll() ([]model.Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, content, tags, author, published_at, created_at, updated_at
		FROM articles
		ORDER BY published_at DESC, created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticles(rows)
}

func (r *ArticleRepository) GetByID(id int64) (*model.Article, error) {
	var a model.Article
	var tags, author sql.NullString

	err := r.db.QueryRow(`
		SELECT id, title, content, tags, author, published_at, created_at, updated_at
		FROM articles
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Title, &a.Content, &tags, &author, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	a.Tags = model.DecodeTags(tags.String)
	a.Author = author.String
	return &a, nil
}

// GetByIDs fetches the given articles in one query, ordered ascending by
// publish date. Ids with no row are silently absent from the result.
func (r *ArticleRepository) GetByIDs(ids []int64) ([]model.Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(`
		SELECT id, title, content, tags, author, published_at, created_at, updated_at
		FROM articles
		WHERE id = ANY($1)
		ORDER BY published_at ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanArticles(rows)
}

func (r *ArticleRepository) Update(id int64, update ArticleUpdate) (*model.Article, error) {
	var tags *string
	if update.Tags != nil {
		encoded := model.EncodeTags(update.Tags)
		tags = &encoded
	}

	var a model.Article
	var storedTags, author sql.NullString

	err := r.db.QueryRow(`
		UPDATE articles
		SET title = COALESCE($1, title),
			content = COALESCE($2, content),
			tags = COALESCE($3, tags),
			author = COALESCE($4, author),
			published_at = COALESCE($5, published_at),
			updated_at = now()
		WHERE id = $6
		RETURNING id, title, content, tags, author, published_at, created_at, updated_at
	`, update.Title, update.Content, tags, update.Author, update.PublishedAt, id,
	).Scan(&a.ID, &a.Title, &a.Content, &storedTags, &author, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	a.Tags = model.DecodeTags(storedTags.String)
	a.Author = author.String
	return &a, nil
}

func (r *ArticleRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec(`
		DELETE FROM articles WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *ArticleRepository) Count() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM articles
	`).Scan(&total)
	return total, err
}

func scanArticles(rows *sql.Rows) ([]model.Article, error) {
	var articles []model.Article
	for rows.Next() {
		var a model.Article
		var tags, author sql.NullString
		err := rows.Scan(&a.ID, &a.Title, &a.Content, &tags, &author, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, err
		}
		a.Tags = model.DecodeTags(tags.String)
		a.Author = author.String
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
