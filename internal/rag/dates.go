package rag

import (
	"sort"
	"time"

	"technews/internal/model"
)

var publishedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parsePublishedAt(s string) (time.Time, bool) {
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatPublishedAt(s string) string {
	t, ok := parsePublishedAt(s)
	if !ok {
		return "Unknown date"
	}
	return t.Format("Jan 2, 2006")
}

// sortArticlesByDate orders ascending by publish date. Articles with a
// missing or unparsable date sort first as the zero time.
func sortArticlesByDate(articles []model.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		ti, _ := parsePublishedAt(articles[i].PublishedAt)
		tj, _ := parsePublishedAt(articles[j].PublishedAt)
		return ti.Before(tj)
	})
}
