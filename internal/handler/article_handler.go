package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"technews/internal/model"
	"technews/internal/rag"
	"technews/internal/repository"

	"github.com/gin-gonic/gin"
)

type ArticleStore interface {
	GetAll() ([]model.Article, error)
	GetByID(id int64) (*model.Article, error)
	Create(article *model.Article) error
	Update(id int64, update repository.ArticleUpdate) (*model.Article, error)
	Delete(id int64) (bool, error)
	Count() (int, error)
}

// Indexer keeps the vector index in step with article writes. Index failures
// never fail the enclosing write; the article row is the source of truth.
type Indexer interface {
	IndexArticle(ctx context.Context, articleID int64, text string, meta rag.IndexMetadata) (int, error)
}

type ArticleHandler struct {
	repository ArticleStore
	indexer    Indexer
}

func NewArticleHandler(repository ArticleStore, indexer Indexer) *ArticleHandler {
	return &ArticleHandler{repository: repository, indexer: indexer}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	articles, err := h.repository.GetAll()
	if err != nil {
		slog.Error("error fetching articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if articles == nil {
		articles = []model.Article{}
	}

	c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Title == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and content are required"})
		return
	}

	article := model.Article{
		Title:       req.Title,
		Content:     req.Content,
		Tags:        model.NormalizeTags(req.Tags),
		Author:      req.Author,
		PublishedAt: req.PublishedAt,
	}

	if err := h.repository.Create(&article); err != nil {
		slog.Error("error creating article", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	h.indexBestEffort(c.Request.Context(), &article)

	c.JSON(http.StatusCreated, article)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.repository.GetByID(id)
	if err != nil {
		slog.Error("error fetching article", "error", err, "article_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	update := repository.ArticleUpdate{
		Title:       req.Title,
		Content:     req.Content,
		Author:      req.Author,
		PublishedAt: req.PublishedAt,
	}
	if len(req.Tags) > 0 && string(req.Tags) != "null" {
		update.Tags = model.NormalizeTags(req.Tags)
	}

	article, err := h.repository.Update(id, update)
	if err != nil {
		slog.Error("error updating article", "error", err, "article_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	// Only a content change invalidates the stored vector.
	if req.Content != nil {
		h.indexBestEffort(c.Request.Context(), article)
	}

	c.JSON(http.StatusOK, article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	deleted, err := h.repository.Delete(id)
	if err != nil {
		slog.Error("error deleting article", "error", err, "article_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	// The vector entry is left dangling on purpose; search and history drop
	// matches that no longer resolve to a row.
	c.JSON(http.StatusOK, DeleteArticleResponse{Success: true, Deleted: true})
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.Count()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func (h *ArticleHandler) indexBestEffort(ctx context.Context, article *model.Article) {
	if h.indexer == nil {
		return
	}

	meta := rag.IndexMetadata{
		Title:       article.Title,
		Tags:        article.Tags,
		PublishedAt: article.PublishedAt,
	}

	if _, err := h.indexer.IndexArticle(ctx, article.ID, article.Content, meta); err != nil {
		slog.Error("error indexing article", "error", err, "article_id", article.ID)
	}
}

func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		slog.Error("invalid article id", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return 0, false
	}
	return id, true
}
