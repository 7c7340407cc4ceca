package rag

import (
	"context"
	"fmt"
	"strings"

	"technews/internal/model"
)

const (
	// historyTopK is fixed: the history narrative needs a denser evidence set
	// than a single-result search, and callers don't get to shrink it.
	historyTopK = 10

	maxTimelineEvents     = 10
	evidenceExcerptLength = 500
	maxEventLength        = 80

	noArticlesSummary = "No relevant articles found for this topic."
)

const historianPersona = "You are a tech news historian. Write concise, factual summaries based only on the provided articles."

type TimelineEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

type Source struct {
	ID    int64    `json:"id"`
	Title string   `json:"title"`
	Date  string   `json:"date"`
	Link  string   `json:"link"`
	Tags  []string `json:"tags"`
}

type HistoryResponse struct {
	Summary  string          `json:"summary"`
	Timeline []TimelineEvent `json:"timeline"`
	Sources  []Source        `json:"sources"`
}

// synthesisOutcome distinguishes a summarizer call that errored from one that
// succeeded but produced nothing; each degrades to its own local template.
type synthesisOutcome int

const (
	synthesisOK synthesisOutcome = iota
	synthesisFailed
	synthesisEmpty
)

// GenerateHistory turns a topic query into a grounded narrative, a
// chronological timeline and the contributing sources.
//
// The pipeline is strictly sequential: embed the query, retrieve candidates,
// resolve rows, synthesize, assemble. The first two stages are unrecoverable;
// an empty candidate or row set short-circuits to a fixed empty response; a
// synthesis failure degrades to a locally built summary and never fails the
// request.
func (s *Service) GenerateHistory(ctx context.Context, query string) (*HistoryResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := s.vectors.Query(embedding, historyTopK)
	if err != nil {
		return nil, fmt.Errorf("query vector index: %w", err)
	}

	if len(matches) == 0 {
		return emptyHistoryResponse(), nil
	}

	ids := distinctArticleIDs(matches)
	if len(ids) == 0 {
		return emptyHistoryResponse(), nil
	}

	articles, err := s.articles.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("resolve articles: %w", err)
	}

	if len(articles) == 0 {
		return emptyHistoryResponse(), nil
	}

	sortArticlesByDate(articles)

	var summary string
	text, outcome := s.synthesize(ctx, query, articles)
	switch outcome {
	case synthesisOK:
		summary = text
	case synthesisFailed:
		summary = fallbackTitlesSummary(articles)
	case synthesisEmpty:
		summary = fallbackDateSpanSummary(articles)
	}

	return &HistoryResponse{
		Summary:  summary,
		Timeline: buildTimeline(articles),
		Sources:  buildSources(articles),
	}, nil
}

func (s *Service) synthesize(ctx context.Context, query string, articles []model.Article) (string, synthesisOutcome) {
	prompt := buildHistoryPrompt(query, articles)

	text, err := s.summarizer.Summarize(ctx, historianPersona, prompt)
	if err != nil {
		return "", synthesisFailed
	}

	if strings.TrimSpace(text) == "" {
		return "", synthesisEmpty
	}

	return strings.TrimSpace(text), synthesisOK
}

func buildHistoryPrompt(query string, articles []model.Article) string {
	blocks := make([]string, 0, len(articles))
	for i, a := range articles {
		blocks = append(blocks, fmt.Sprintf("[%d] Date: %s\nTitle: %s\nContent: %s...",
			i+1, formatPublishedAt(a.PublishedAt), a.Title, snippet(a.Content, evidenceExcerptLength)))
	}

	return fmt.Sprintf(`You are a tech news historian. Based on the following articles about %q, write a concise historical summary (3-6 sentences) that explains the key developments and context. Only use information from the provided articles - do not make up facts.

Articles:
%s

Write a concise historical summary:`, query, strings.Join(blocks, "\n\n"))
}

// fallbackTitlesSummary covers a summarizer call that failed outright: no
// model output exists, so the summary names the evidence instead.
func fallbackTitlesSummary(articles []model.Article) string {
	titles := make([]string, 0, 3)
	for _, a := range articles {
		titles = append(titles, a.Title)
		if len(titles) == 3 {
			break
		}
	}

	return fmt.Sprintf("This topic has been covered in %d article(s). Key developments include: %s.",
		len(articles), strings.Join(titles, ", "))
}

// fallbackDateSpanSummary covers a call that returned an empty completion:
// the summary states the period the evidence spans.
func fallbackDateSpanSummary(articles []model.Article) string {
	first := formatPublishedAt(articles[0].PublishedAt)
	last := formatPublishedAt(articles[len(articles)-1].PublishedAt)

	return fmt.Sprintf("This topic has been covered in %d article(s) spanning from %s to %s.",
		len(articles), first, last)
}

func buildTimeline(articles []model.Article) []TimelineEvent {
	timeline := make([]TimelineEvent, 0, maxTimelineEvents)
	for _, a := range articles {
		if len(timeline) == maxTimelineEvents {
			break
		}

		event := a.Title
		if runes := []rune(event); len(runes) > maxEventLength {
			event = string(runes[:maxEventLength-3]) + "..."
		}

		timeline = append(timeline, TimelineEvent{
			Date:  formatPublishedAt(a.PublishedAt),
			Event: event,
		})
	}
	return timeline
}

// buildSources lists every resolved article, not just the ones that made the
// timeline cut.
func buildSources(articles []model.Article) []Source {
	sources := make([]Source, 0, len(articles))
	for _, a := range articles {
		tags := a.Tags
		if tags == nil {
			tags = []string{}
		}

		sources = append(sources, Source{
			ID:    a.ID,
			Title: a.Title,
			Date:  formatPublishedAt(a.PublishedAt),
			Link:  fmt.Sprintf("/articles/%d", a.ID),
			Tags:  tags,
		})
	}
	return sources
}

func emptyHistoryResponse() *HistoryResponse {
	return &HistoryResponse{
		Summary:  noArticlesSummary,
		Timeline: []TimelineEvent{},
		Sources:  []Source{},
	}
}
