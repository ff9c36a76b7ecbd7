package feed

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/Panashe816/viral-news-backend/internal/category"
	"github.com/Panashe816/viral-news-backend/internal/model"
)

// Limit bounds. Storage is never asked for more rows than the hard caps
// regardless of what the client sends.
const (
	DefaultListLimit = 200
	MaxListLimit     = 500

	DefaultHomepageLimit = 30
	MaxHomepageLimit     = 80

	// MaxHomepageOffset caps how deep homepage pagination reaches. The
	// homepage cache keys on the page shape, so offsets must come from a
	// bounded set or each distinct offset would mint a fresh cache entry.
	MaxHomepageOffset = 800
)

type ArticleStore interface {
	List(ctx context.Context, limit, offset int) ([]model.Article, error)
	ByID(ctx context.Context, id int64) (model.Article, error)
}

// Service loads article pages from storage in feed order and serializes
// them for transport.
type Service struct {
	articles ArticleStore
}

func NewService(articles ArticleStore) *Service {
	return &Service{articles: articles}
}

// ClampLimit resolves a requested page size: non-positive means the
// default, anything above max is capped.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// ClampOffset bounds a requested page start to [0, max].
func ClampOffset(offset, max int) int {
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}

// List returns a page of Full-variant articles in feed order. A non-empty
// rawCategory keeps only articles whose normalized category matches the
// normalized filter; stored labels are not canonical, so the comparison
// happens after normalization, never against raw column text.
func (s *Service) List(ctx context.Context, rawCategory string, limit, offset int) ([]Serialized, error) {
	limit = ClampLimit(limit, DefaultListLimit, MaxListLimit)

	articles, err := s.articles.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	serialized := lo.Map(articles, func(a model.Article, _ int) Serialized {
		return Serialize(a, Full)
	})

	if rawCategory == "" {
		return serialized, nil
	}

	want := category.Normalize(rawCategory)
	return lo.Filter(serialized, func(s Serialized, _ int) bool {
		return s.Category == want
	}), nil
}

// ByID returns one Full-variant article or model.ErrArticleNotFound.
func (s *Service) ByID(ctx context.Context, id int64) (Serialized, error) {
	a, err := s.articles.ByID(ctx, id)
	if err != nil {
		return Serialized{}, err
	}
	return Serialize(a, Full), nil
}

// Homepage returns the aggregated homepage payload for one page shape.
func (s *Service) Homepage(ctx context.Context, limit, offset int) (Payload, error) {
	limit = ClampLimit(limit, DefaultHomepageLimit, MaxHomepageLimit)
	offset = ClampOffset(offset, MaxHomepageOffset)

	articles, err := s.articles.List(ctx, limit, offset)
	if err != nil {
		return Payload{}, fmt.Errorf("loading homepage articles: %w", err)
	}

	serialized := lo.Map(articles, func(a model.Article, _ int) Serialized {
		return Serialize(a, Homepage)
	})

	return Aggregate(serialized, limit, offset), nil
}
