package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"technews/internal/model"
	"technews/internal/rag"

	"github.com/gin-gonic/gin"
)

type RagService interface {
	Search(ctx context.Context, query string, topK int) (*rag.SearchResponse, error)
	GenerateHistory(ctx context.Context, query string) (*rag.HistoryResponse, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
	StoreEmbedding(articleID int64, embedding []float32, meta rag.IndexMetadata) error
}

type RagHandler struct {
	service RagService
}

func NewRagHandler(service RagService) *RagHandler {
	return &RagHandler{service: service}
}

func (h *RagHandler) Embed(c *gin.Context) {
	var req EmbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	embedding, err := h.service.EmbedText(c.Request.Context(), req.Text)
	if err != nil {
		slog.Error("error generating embedding", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate embedding"})
		return
	}

	res := EmbedResponse{
		Embedding:  embedding,
		Dimensions: len(embedding),
	}

	if req.ArticleID != 0 {
		meta := rag.IndexMetadata{
			Title:       req.Title,
			Tags:        model.NormalizeTags(req.Tags),
			PublishedAt: req.PublishedAt,
		}

		// Storage is best-effort: the embedding is returned either way.
		if err := h.service.StoreEmbedding(req.ArticleID, embedding, meta); err != nil {
			slog.Error("error storing embedding", "error", err, "article_id", req.ArticleID)
		}

		res.ArticleID = &req.ArticleID
	}

	c.JSON(http.StatusOK, res)
}

func (h *RagHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.service.Search(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		if errors.Is(err, rag.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}
		slog.Error("error running search", "error", err, "query", req.Query)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *RagHandler) History(c *gin.Context) {
	var req HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	res, err := h.service.GenerateHistory(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, rag.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}
		slog.Error("error generating history", "error", err, "query", req.Query)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate history"})
		return
	}

	c.JSON(http.StatusOK, res)
}
