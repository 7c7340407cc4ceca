package model

import (
	"fmt"
	"time"
)

type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author,omitempty"`
	PublishedAt string    `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VectorEntry is the denormalized index record for one article. It carries
// just enough metadata to rank matches; the articles table stays the source
// of truth for everything it duplicates.
type VectorEntry struct {
	VectorID    string
	ArticleID   int64
	Title       string
	Tags        []string
	PublishedAt string
	Embedding   []float32
}

type VectorMatch struct {
	ArticleID int64
	Score     float64
}

// VectorID maps an article id to its index entry id. The relation between an
// article and its vector entry is this function, not a stored foreign key,
// so index entries for deleted articles simply dangle until filtered on read.
func VectorID(articleID int64) string {
	return fmt.Sprintf("article_%d", articleID)
}
