package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"

	"technews/db"
	"technews/internal/model"
	"technews/internal/repository"
	"technews/pkg/news"

	"github.com/joho/godotenv"
)

// Articles shorter than this are skipped; the store expects producers to
// enforce a minimum content length.
const minContentLength = 50

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	repo := repository.NewArticleRepository(db.DB)

	clients := []news.NewsClient{
		news.NewDevtoClient(),
	}

	for _, client := range clients {
		source := client.Name()

		fetched, err := client.Fetch(50)
		if err != nil {
			slog.Error("error fetching articles", "source", source, "error", err)
			continue
		}

		var saved, skipped, errors int

		for _, a := range fetched {
			if len(a.Content) < minContentLength {
				skipped++
				continue
			}

			article := model.Article{
				Title:       a.Title,
				Content:     a.Content,
				Tags:        a.Tags,
				Author:      a.Author,
				PublishedAt: a.PublishedAt,
			}

			if err := repo.Create(&article); err != nil {
				slog.Error("error saving article", "source", source, "error", err)
				errors++
				continue
			}

			if err := db.PushToQueue(db.EmbedQueueKey, strconv.FormatInt(article.ID, 10)); err != nil {
				slog.Error("error queueing article for embedding", "error", err, "article_id", article.ID)
			}

			saved++
		}

		slog.Info("fetch finished", "source", source, "saved", saved, "skipped", skipped, "errors", errors)
	}
}
