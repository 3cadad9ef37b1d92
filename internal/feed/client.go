// Package feed fetches research headlines from an RSS/Atom search endpoint.
// It is best effort: callers that only display articles should use Articles,
// which degrades to an empty sequence on any failure.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"
	"github.com/nicolaskremer1/immortalis-blueprint/internal/model"
)

const (
	DefaultBaseURL = "https://pubmed.ncbi.nlm.nih.gov"
	DefaultQuery   = "(longevity OR aging OR healthspan)"
	defaultLimit   = 10
	searchPath     = "/rss/search/"
)

type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hc := resty.New().
		SetBaseURL(base).
		SetTimeout(12*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8").
		SetHeader("User-Agent", "immortalis/1.0")
	return &Client{http: hc, logger: logger}
}

// Search returns at most limit articles, freshest first as served by the feed.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]model.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = DefaultQuery
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"term":  query,
			"limit": strconv.Itoa(limit),
			"sort":  "date",
		}).
		Get(searchPath)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w: %w", apperrors.ErrFeedUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch feed: %w: status %d", apperrors.ErrFeedUnavailable, resp.StatusCode())
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w: %w", apperrors.ErrFeedUnavailable, err)
	}

	out := make([]model.Article, 0, limit)
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		if len(out) == limit {
			break
		}
		summary := strings.TrimSpace(item.Description)
		if summary == "" {
			summary = strings.TrimSpace(item.Content)
		}
		out = append(out, model.Article{
			Title:     strings.TrimSpace(item.Title),
			Link:      strings.TrimSpace(item.Link),
			Published: strings.TrimSpace(item.Published),
			Summary:   summary,
		})
	}
	return out, nil
}

// Articles is a lazy, single-use view over Search. Nothing is fetched until
// the sequence is ranged over, a second range yields nothing, and failures
// are logged and produce an empty sequence.
func (c *Client) Articles(ctx context.Context, query string, limit int) iter.Seq[model.Article] {
	var used atomic.Bool
	return func(yield func(model.Article) bool) {
		if used.Swap(true) {
			return
		}
		items, err := c.Search(ctx, query, limit)
		if err != nil {
			c.logger.Warn("feed unavailable", zap.String("query", query), zap.Error(err))
			return
		}
		for _, a := range items {
			if !yield(a) {
				return
			}
		}
	}
}
