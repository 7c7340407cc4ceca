package news

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type DevtoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewDevtoClient() *DevtoClient {
	return &DevtoClient{
		baseURL:    "https://dev.to/api",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *DevtoClient) Name() string {
	return "dev.to"
}

func (c *DevtoClient) Fetch(limit int) ([]Article, error) {
	url := fmt.Sprintf("%s/articles?per_page=%d", c.baseURL, limit)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("devto fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("devto fetch: unexpected status %d", resp.StatusCode)
	}

	var raw []devtoArticle
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("devto decode: %w", err)
	}

	articles := make([]Article, 0, len(raw))
	for _, item := range raw {
		articles = append(articles, Article{
			Title:       item.Title,
			Content:     item.Description,
			Author:      item.User.Name,
			PublishedAt: item.PublishedAt,
			Tags:        item.TagList,
		})
	}

	return articles, nil
}

type devtoArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt string    `json:"published_at"`
	TagList     []string  `json:"tag_list"`
	User        devtoUser `json:"user"`
}

type devtoUser struct {
	Name string `json:"name"`
}
