package handler

import "encoding/json"

type CreateArticleRequest struct {
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Tags        json.RawMessage `json:"tags"`
	Author      string          `json:"author"`
	PublishedAt string          `json:"published_at"`
}

type UpdateArticleRequest struct {
	Title       *string         `json:"title"`
	Content     *string         `json:"content"`
	Tags        json.RawMessage `json:"tags"`
	Author      *string         `json:"author"`
	PublishedAt *string         `json:"published_at"`
}

type DeleteArticleResponse struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
}

type EmbedRequest struct {
	Text        string          `json:"text"`
	ArticleID   int64           `json:"article_id"`
	Title       string          `json:"title"`
	Tags        json.RawMessage `json:"tags"`
	PublishedAt string          `json:"published_at"`
}

type EmbedResponse struct {
	Embedding  []float32 `json:"embedding"`
	ArticleID  *int64    `json:"article_id"`
	Dimensions int       `json:"dimensions"`
}

type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"topK"`
}

type HistoryRequest struct {
	Query     string `json:"query"`
	ArticleID int64  `json:"article_id"`
}
