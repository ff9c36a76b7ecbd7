package model

import (
	"errors"
	"time"
)

var ErrArticleNotFound = errors.New("article not found")

// Article is a row of the highlighted_articles table, the single feed source.
type Article struct {
	ID              int64
	HeadlineID      int64
	Title           string
	Summary         string
	Content         string
	URL             string
	Source          string
	ImageURL        string
	Category        string // raw label, not guaranteed canonical
	MetaTitle       string
	MetaDescription string
	PublishedAt     *time.Time // nil until published
	CreatedAt       time.Time
}

// EffectivePublishedAt is the timestamp used for ordering and display:
// published_at when set, created_at otherwise.
func (a Article) EffectivePublishedAt() time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}
