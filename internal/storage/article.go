package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/Panashe816/viral-news-backend/internal/model"
)

type ArticlePostgresStorage struct {
	db *sqlx.DB
}

type dbArticle struct {
	ID              int64          `db:"id"`
	HeadlineID      int64          `db:"headline_id"`
	Title           string         `db:"title"`
	Summary         sql.NullString `db:"summary"`
	Content         string         `db:"content"`
	URL             sql.NullString `db:"url"`
	Source          sql.NullString `db:"source"`
	ImageURL        sql.NullString `db:"image_url"`
	Category        string         `db:"category"`
	MetaTitle       sql.NullString `db:"meta_title"`
	MetaDescription sql.NullString `db:"meta_description"`
	PublishedAt     sql.NullTime   `db:"published_at"`
	CreatedAt       time.Time      `db:"created_at"`
}

func NewArticleStorage(db *sqlx.DB) *ArticlePostgresStorage {
	return &ArticlePostgresStorage{
		db: db,
	}
}

// Ensure creates the highlighted_articles table and its indexes if absent,
// including the composite index backing the feed ordering.
func (s *ArticlePostgresStorage) Ensure(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS highlighted_articles (
			id               BIGSERIAL PRIMARY KEY,
			headline_id      BIGINT NOT NULL,
			title            TEXT NOT NULL,
			summary          TEXT,
			content          TEXT NOT NULL,
			url              TEXT,
			source           TEXT,
			image_url        TEXT,
			category         TEXT NOT NULL,
			meta_title       TEXT,
			meta_description TEXT,
			published_at     TIMESTAMP,
			created_at       TIMESTAMP NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_highlighted_headline ON highlighted_articles (headline_id);
		CREATE INDEX IF NOT EXISTS idx_highlighted_category ON highlighted_articles (category);
		CREATE INDEX IF NOT EXISTS idx_highlighted_pub_created_id
			ON highlighted_articles (published_at, created_at, id);
	`)
	if err != nil {
		return fmt.Errorf("ensuring highlighted_articles schema: %w", err)
	}
	return nil
}

// List returns one page of articles in feed order: published_at descending
// with NULLs last, then created_at and id descending so pagination stays
// deterministic when timestamps collide.
func (s *ArticlePostgresStorage) List(ctx context.Context, limit, offset int) ([]model.Article, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var articles []dbArticle

	if err := conn.SelectContext(
		ctx,
		&articles,
		`SELECT * FROM highlighted_articles
			ORDER BY published_at DESC NULLS LAST, created_at DESC, id DESC
			LIMIT $1 OFFSET $2`,
		limit,
		offset,
	); err != nil {
		return nil, err
	}

	return lo.Map(articles, func(a dbArticle, _ int) model.Article {
		return toModel(a)
	}), nil
}

// ByID returns a single article or model.ErrArticleNotFound.
func (s *ArticlePostgresStorage) ByID(ctx context.Context, id int64) (model.Article, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return model.Article{}, err
	}
	defer conn.Close()

	var article dbArticle

	if err := conn.GetContext(
		ctx,
		&article,
		`SELECT * FROM highlighted_articles WHERE id = $1`,
		id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Article{}, model.ErrArticleNotFound
		}
		return model.Article{}, err
	}

	return toModel(article), nil
}

// PublishPending stamps published_at on every not-yet-published row in one
// transaction and returns how many rows were promoted.
func (s *ArticlePostgresStorage) PublishPending(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(
		ctx,
		`UPDATE highlighted_articles SET published_at = $1 WHERE published_at IS NULL`,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return count, nil
}

func toModel(a dbArticle) model.Article {
	m := model.Article{
		ID:              a.ID,
		HeadlineID:      a.HeadlineID,
		Title:           a.Title,
		Summary:         a.Summary.String,
		Content:         a.Content,
		URL:             a.URL.String,
		Source:          a.Source.String,
		ImageURL:        a.ImageURL.String,
		Category:        a.Category,
		MetaTitle:       a.MetaTitle.String,
		MetaDescription: a.MetaDescription.String,
		CreatedAt:       a.CreatedAt,
	}
	if a.PublishedAt.Valid {
		pub := a.PublishedAt.Time
		m.PublishedAt = &pub
	}
	return m
}
