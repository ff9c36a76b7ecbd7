package feed

import (
	"time"

	"github.com/Panashe816/viral-news-backend/internal/category"
	"github.com/Panashe816/viral-news-backend/internal/model"
)

// Variant selects how much of an article a projection carries.
type Variant int

const (
	// Full includes the article body.
	Full Variant = iota
	// Homepage omits the body to bound list payload size.
	Homepage
)

// Serialized is the transport projection of an article. Optional columns
// and the content field marshal as null / absent, matching what the
// frontend expects.
type Serialized struct {
	ID              int64   `json:"id"`
	HeadlineID      int64   `json:"headline_id"`
	Title           string  `json:"title"`
	Summary         *string `json:"summary"`
	Content         *string `json:"content,omitempty"`
	URL             *string `json:"url"`
	Source          *string `json:"source"`
	ImageURL        *string `json:"image_url"`
	Category        string  `json:"category"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
	PublishedAt     *string `json:"published_at"`
	CreatedAt       *string `json:"created_at"`
	SourceTable     string  `json:"source_table"`
}

// Serialize projects an article for transport. The category is always the
// normalized one, and published_at falls back to created_at so the frontend
// never loses unscheduled items.
func Serialize(a model.Article, v Variant) Serialized {
	s := Serialized{
		ID:              a.ID,
		HeadlineID:      a.HeadlineID,
		Title:           a.Title,
		Summary:         nullable(a.Summary),
		URL:             nullable(a.URL),
		Source:          nullable(a.Source),
		ImageURL:        nullable(a.ImageURL),
		Category:        category.Normalize(a.Category),
		MetaTitle:       nullable(a.MetaTitle),
		MetaDescription: nullable(a.MetaDescription),
		PublishedAt:     isoTime(a.EffectivePublishedAt()),
		CreatedAt:       isoTime(a.CreatedAt),
		SourceTable:     "highlighted_articles",
	}
	if v == Full {
		content := a.Content
		s.Content = &content
	}
	return s
}

// isoTime renders an ISO-8601 string, or null for a zero time. A zero
// created_at is a data-integrity anomaly, not a reason to fail the request.
func isoTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
