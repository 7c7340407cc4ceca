package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"technews/db"
	"technews/internal/rag"
	"technews/internal/repository"
	"technews/pkg/llm"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	reindex := flag.Bool("reindex", false, "re-embed every stored article and exit")
	flag.Parse()

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	articleRepo := repository.NewArticleRepository(db.DB)
	vectorRepo := repository.NewVectorRepository(db.DB)

	openAIClient := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
	ragService := rag.NewService(articleRepo, vectorRepo, openAIClient, openAIClient)

	if *reindex {
		runReindex(articleRepo, ragService)
		return
	}

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	runWorker(articleRepo, ragService)
}

// runWorker drains the embed queue. Failed jobs go to the dead-letter queue
// instead of being retried in place.
func runWorker(articleRepo *repository.ArticleRepository, ragService *rag.Service) {
	for {
		id, err := db.PopFromQueue(db.EmbedQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		articleId, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			slog.Error("invalid article id in queue", "id", id, "error", err)
			continue
		}

		article, err := articleRepo.GetByID(articleId)
		if err != nil {
			slog.Error("error getting article from DB", "error", err, "article_id", articleId)
			continue
		}

		if article == nil {
			slog.Warn("article not found in DB", "article_id", articleId)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		dims, err := ragService.IndexArticle(ctx, article.ID, article.Content, rag.IndexMetadata{
			Title:       article.Title,
			Tags:        article.Tags,
			PublishedAt: article.PublishedAt,
		})
		cancel()

		if err != nil {
			slog.Error("error indexing article", "error", err, "article_id", articleId)
			db.PushToQueue(db.DeadLetterKey, id)
			time.Sleep(5 * time.Second)
			continue
		}

		slog.Info("article indexed", "article_id", article.ID, "dimensions", dims)
	}
}

func runReindex(articleRepo *repository.ArticleRepository, ragService *rag.Service) {
	articles, err := articleRepo.GetAll()
	if err != nil {
		log.Fatalf("error fetching articles: %v", err)
	}

	var indexed, failed int

	for _, article := range articles {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		_, err := ragService.IndexArticle(ctx, article.ID, article.Content, rag.IndexMetadata{
			Title:       article.Title,
			Tags:        article.Tags,
			PublishedAt: article.PublishedAt,
		})
		cancel()

		if err != nil {
			slog.Error("error indexing article", "error", err, "article_id", article.ID)
			failed++
			continue
		}
		indexed++
	}

	slog.Info("reindex finished", "indexed", indexed, "failed", failed, "total", len(articles))
}
