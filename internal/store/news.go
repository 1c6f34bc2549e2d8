// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/halcyonsec/siteapi/internal/model"
)

// NewsStore persists news/blog articles. Slug uniqueness is enforced by the
// UNIQUE index; a violation is reported as ErrConflict and the existing
// record is left unmodified.
type NewsStore struct {
	db *sql.DB
}

// NewNewsStore creates a news store over the shared database handle.
func NewNewsStore(db *sql.DB) *NewsStore {
	return &NewsStore{db: db}
}

// CreateNewsParams holds the fields required to create an article.
type CreateNewsParams struct {
	Title         string
	Slug          string
	Category      string
	Excerpt       string
	Content       string
	FeaturedImage string
	PostType      string
	VideoURL      string
	AudioURL      string
	GalleryImages []string
	SliderImages  []string
	QuoteText     string
	QuoteAuthor   string
	Author        string
	PublishDate   time.Time
	Tags          []string
	IsFeatured    bool
	IsPopularFeed bool
	Status        string
}

// UpdateNewsParams holds the optional fields for a partial update.
// Only non-nil fields are overwritten.
type UpdateNewsParams struct {
	Title         *string
	Slug          *string
	Category      *string
	Excerpt       *string
	Content       *string
	FeaturedImage *string
	PostType      *string
	VideoURL      *string
	AudioURL      *string
	GalleryImages *[]string
	SliderImages  *[]string
	QuoteText     *string
	QuoteAuthor   *string
	Author        *string
	PublishDate   *time.Time
	Tags          *[]string
	IsFeatured    *bool
	IsPopularFeed *bool
	Status        *string
}

// ListNewsParams selects and pages articles. Zero values mean "no filter".
type ListNewsParams struct {
	Status   string // "" = any status (admin listing)
	Category string
	Tag      string
	Featured bool // only articles flagged is_featured
	Popular  bool // only articles flagged is_popular_feed
	Limit    int
	Offset   int
}

const newsColumns = `id, title, slug, category, excerpt, content, featured_image, post_type,
	video_url, audio_url, gallery_images, slider_images, quote_text, quote_author,
	author, publish_date, tags, is_featured, is_popular_feed, status, created_at, updated_at`

func scanNews(scan func(dest ...any) error) (model.NewsArticle, error) {
	var n model.NewsArticle
	var gallery, slider, tags string
	err := scan(
		&n.ID, &n.Title, &n.Slug, &n.Category, &n.Excerpt, &n.Content, &n.FeaturedImage, &n.PostType,
		&n.VideoURL, &n.AudioURL, &gallery, &slider, &n.QuoteText, &n.QuoteAuthor,
		&n.Author, &n.PublishDate, &tags, &n.IsFeatured, &n.IsPopularFeed, &n.Status, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return model.NewsArticle{}, translateErr(err)
	}

	for _, col := range []struct {
		raw  string
		dest *[]string
	}{
		{gallery, &n.GalleryImages},
		{slider, &n.SliderImages},
		{tags, &n.Tags},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dest); err != nil {
			return model.NewsArticle{}, fmt.Errorf("decoding list column: %w", err)
		}
	}

	return n, nil
}

// Create persists a new article. Returns ErrConflict for a duplicate slug.
func (s *NewsStore) Create(ctx context.Context, params CreateNewsParams) (model.NewsArticle, error) {
	gallery, err := encodeStringList(params.GalleryImages)
	if err != nil {
		return model.NewsArticle{}, err
	}
	slider, err := encodeStringList(params.SliderImages)
	if err != nil {
		return model.NewsArticle{}, err
	}
	tags, err := encodeStringList(params.Tags)
	if err != nil {
		return model.NewsArticle{}, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO news (title, slug, category, excerpt, content, featured_image, post_type,
			video_url, audio_url, gallery_images, slider_images, quote_text, quote_author,
			author, publish_date, tags, is_featured, is_popular_feed, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		params.Title, params.Slug, params.Category, params.Excerpt, params.Content, params.FeaturedImage, params.PostType,
		params.VideoURL, params.AudioURL, gallery, slider, params.QuoteText, params.QuoteAuthor,
		params.Author, params.PublishDate.UTC(), tags, params.IsFeatured, params.IsPopularFeed, params.Status, now, now,
	)
	if err != nil {
		return model.NewsArticle{}, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.NewsArticle{}, err
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches an article by id regardless of status.
func (s *NewsStore) GetByID(ctx context.Context, id int64) (model.NewsArticle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = ?`, id)
	return scanNews(row.Scan)
}

// GetBySlug fetches an article by slug. When publishedOnly is set, drafts
// are invisible and report ErrNotFound.
func (s *NewsStore) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (model.NewsArticle, error) {
	query := `SELECT ` + newsColumns + ` FROM news WHERE slug = ?`
	args := []any{slug}
	if publishedOnly {
		query += ` AND status = ?`
		args = append(args, model.NewsStatusPublished)
	}
	row := s.db.QueryRowContext(ctx, query, args...)
	return scanNews(row.Scan)
}

// List returns articles matching the filters, newest-first by publish date,
// along with the total count for the same filters.
func (s *NewsStore) List(ctx context.Context, params ListNewsParams) ([]model.NewsArticle, int64, error) {
	where, args := buildNewsFilter(params)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+newsColumns+` FROM news`+where+
			` ORDER BY publish_date DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, params.Limit, params.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles := make([]model.NewsArticle, 0)
	for rows.Next() {
		n, err := scanNews(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func buildNewsFilter(params ListNewsParams) (string, []any) {
	var conds []string
	var args []any

	if params.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, params.Status)
	}
	if params.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, params.Category)
	}
	if params.Tag != "" {
		// Tags are stored as a JSON array; match any element.
		conds = append(conds, "EXISTS (SELECT 1 FROM json_each(news.tags) WHERE json_each.value = ?)")
		args = append(args, params.Tag)
	}
	if params.Featured {
		conds = append(conds, "is_featured = 1")
	}
	if params.Popular {
		conds = append(conds, "is_popular_feed = 1")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Update overwrites only the supplied fields and stamps updated_at.
// Returns ErrNotFound for an unknown id and ErrConflict when a new slug
// collides with another article.
func (s *NewsStore) Update(ctx context.Context, id int64, params UpdateNewsParams) (model.NewsArticle, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return model.NewsArticle{}, err
	}

	applyString := func(dest *string, src *string) {
		if src != nil {
			*dest = *src
		}
	}
	applyString(&existing.Title, params.Title)
	applyString(&existing.Slug, params.Slug)
	applyString(&existing.Category, params.Category)
	applyString(&existing.Excerpt, params.Excerpt)
	applyString(&existing.Content, params.Content)
	applyString(&existing.FeaturedImage, params.FeaturedImage)
	applyString(&existing.PostType, params.PostType)
	applyString(&existing.VideoURL, params.VideoURL)
	applyString(&existing.AudioURL, params.AudioURL)
	applyString(&existing.QuoteText, params.QuoteText)
	applyString(&existing.QuoteAuthor, params.QuoteAuthor)
	applyString(&existing.Author, params.Author)
	applyString(&existing.Status, params.Status)
	if params.GalleryImages != nil {
		existing.GalleryImages = *params.GalleryImages
	}
	if params.SliderImages != nil {
		existing.SliderImages = *params.SliderImages
	}
	if params.PublishDate != nil {
		existing.PublishDate = *params.PublishDate
	}
	if params.Tags != nil {
		existing.Tags = *params.Tags
	}
	if params.IsFeatured != nil {
		existing.IsFeatured = *params.IsFeatured
	}
	if params.IsPopularFeed != nil {
		existing.IsPopularFeed = *params.IsPopularFeed
	}

	gallery, err := encodeStringList(existing.GalleryImages)
	if err != nil {
		return model.NewsArticle{}, err
	}
	slider, err := encodeStringList(existing.SliderImages)
	if err != nil {
		return model.NewsArticle{}, err
	}
	tags, err := encodeStringList(existing.Tags)
	if err != nil {
		return model.NewsArticle{}, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE news SET title = ?, slug = ?, category = ?, excerpt = ?, content = ?, featured_image = ?,
			post_type = ?, video_url = ?, audio_url = ?, gallery_images = ?, slider_images = ?,
			quote_text = ?, quote_author = ?, author = ?, publish_date = ?, tags = ?,
			is_featured = ?, is_popular_feed = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		existing.Title, existing.Slug, existing.Category, existing.Excerpt, existing.Content, existing.FeaturedImage,
		existing.PostType, existing.VideoURL, existing.AudioURL, gallery, slider,
		existing.QuoteText, existing.QuoteAuthor, existing.Author, existing.PublishDate.UTC(), tags,
		existing.IsFeatured, existing.IsPopularFeed, existing.Status, now, id,
	)
	if err != nil {
		return model.NewsArticle{}, translateErr(err)
	}

	existing.UpdatedAt = now
	return existing, nil
}

// Delete removes an article. Returns false when the id was not found.
func (s *NewsStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Categories returns the distinct non-empty categories across all articles.
func (s *NewsStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM news WHERE category != '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStrings(rows)
}

// Tags returns the distinct tags across all articles, unnested from the
// JSON tag arrays.
func (s *NewsStore) Tags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT json_each.value FROM news, json_each(news.tags) ORDER BY json_each.value`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStrings(rows)
}

func collectStrings(rows *sql.Rows) ([]string, error) {
	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
