package main

import (
	"log"
	"log/slog"
	"os"

	"technews/db"
	"technews/internal/handler"
	"technews/internal/rag"
	"technews/internal/repository"
	"technews/pkg/llm"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	articleRepo := repository.NewArticleRepository(db.DB)
	vectorRepo := repository.NewVectorRepository(db.DB)

	openAIClient := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))

	// OpenAI always provides embeddings; Anthropic takes over summarization
	// when a key is configured.
	var summarizer llm.Summarizer = openAIClient
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		summarizer = llm.NewAnthropicClient(key)
	}

	ragService := rag.NewService(articleRepo, vectorRepo, openAIClient, summarizer)

	articleHandler := handler.NewArticleHandler(articleRepo, ragService)
	ragHandler := handler.NewRagHandler(ragService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	r.GET("/articles", articleHandler.GetArticles)
	r.POST("/articles", articleHandler.CreateArticle)
	r.GET("/articles/:id", articleHandler.GetArticle)
	r.PUT("/articles/:id", articleHandler.UpdateArticle)
	r.DELETE("/articles/:id", articleHandler.DeleteArticle)
	r.POST("/embed", ragHandler.Embed)
	r.POST("/search", ragHandler.Search)
	r.POST("/history", ragHandler.History)
	r.GET("/health", articleHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
