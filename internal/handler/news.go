// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"github.com/halcyonsec/siteapi/internal/cache"
	"github.com/halcyonsec/siteapi/internal/model"
	"github.com/halcyonsec/siteapi/internal/store"
	"github.com/halcyonsec/siteapi/internal/util"
)

// NewsHandler handles news/blog article endpoints.
type NewsHandler struct {
	news      *store.NewsStore
	taxonomy  *cache.Taxonomy
	sanitizer *bluemonday.Policy
}

// NewNewsHandler creates a new news handler. Article content and excerpts
// are sanitized with the UGC policy before they reach the store.
func NewNewsHandler(news *store.NewsStore, taxonomy *cache.Taxonomy) *NewsHandler {
	return &NewsHandler{
		news:      news,
		taxonomy:  taxonomy,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

type createNewsRequest struct {
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Category      string     `json:"category"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	FeaturedImage string     `json:"featuredImage"`
	PostType      string     `json:"postType"`
	VideoURL      string     `json:"videoUrl"`
	AudioURL      string     `json:"audioUrl"`
	GalleryImages []string   `json:"galleryImages"`
	SliderImages  []string   `json:"sliderImages"`
	QuoteText     string     `json:"quoteText"`
	QuoteAuthor   string     `json:"quoteAuthor"`
	Author        string     `json:"author"`
	PublishDate   *time.Time `json:"publishDate"`
	Tags          []string   `json:"tags"`
	IsFeatured    bool       `json:"isFeatured"`
	IsPopularFeed bool       `json:"isPopularFeed"`
	Status        string     `json:"status"`
}

type updateNewsRequest struct {
	Title         *string    `json:"title"`
	Slug          *string    `json:"slug"`
	Category      *string    `json:"category"`
	Excerpt       *string    `json:"excerpt"`
	Content       *string    `json:"content"`
	FeaturedImage *string    `json:"featuredImage"`
	PostType      *string    `json:"postType"`
	VideoURL      *string    `json:"videoUrl"`
	AudioURL      *string    `json:"audioUrl"`
	GalleryImages *[]string  `json:"galleryImages"`
	SliderImages  *[]string  `json:"sliderImages"`
	QuoteText     *string    `json:"quoteText"`
	QuoteAuthor   *string    `json:"quoteAuthor"`
	Author        *string    `json:"author"`
	PublishDate   *time.Time `json:"publishDate"`
	Tags          *[]string  `json:"tags"`
	IsFeatured    *bool      `json:"isFeatured"`
	IsPopularFeed *bool      `json:"isPopularFeed"`
	Status        *string    `json:"status"`
}

// AdminList handles GET /api/admin/news. The type query parameter switches
// to the taxonomy sub-queries; status filters the article listing.
func (h *NewsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("type") {
	case "":
	case "categories":
		h.writeTaxonomy(w, r, h.taxonomy.Categories, h.news.Categories)
		return
	case "tags":
		h.writeTaxonomy(w, r, h.taxonomy.Tags, h.news.Tags)
		return
	default:
		WriteBadRequest(w, "Unknown type; expected categories or tags", nil)
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !model.IsValidNewsStatus(status) {
		WriteBadRequest(w, "Invalid status; expected draft or published", nil)
		return
	}

	page, limit, offset := Pagination(r)
	articles, total, err := h.news.List(r.Context(), store.ListNewsParams{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		slog.Error("failed to list news", "error", err)
		WriteInternalError(w, "Failed to list news")
		return
	}

	WritePaginated(w, articles, total, page, limit)
}

func (h *NewsHandler) writeTaxonomy(
	w http.ResponseWriter,
	r *http.Request,
	cached func(context.Context, func() ([]string, error)) ([]string, error),
	load func(context.Context) ([]string, error),
) {
	ctx := r.Context()
	values, err := cached(ctx, func() ([]string, error) { return load(ctx) })
	if err != nil {
		slog.Error("failed to load taxonomy", "error", err)
		WriteInternalError(w, "Failed to load taxonomy")
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]string{"items": values})
}

// PublicList handles GET /api/news: published articles only, optionally
// filtered by category, tag, featured or popular flags.
func (h *NewsHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit, offset := Pagination(r)

	articles, total, err := h.news.List(r.Context(), store.ListNewsParams{
		Status:   model.NewsStatusPublished,
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		Featured: q.Get("featured") == "true",
		Popular:  q.Get("popular") == "true",
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		slog.Error("failed to list news", "error", err)
		WriteInternalError(w, "Failed to list news")
		return
	}

	WritePaginated(w, articles, total, page, limit)
}

// Get handles GET /api/admin/news/{id}.
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid article ID", nil)
		return
	}

	article, err := h.news.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Article not found")
			return
		}
		slog.Error("failed to get article", "error", err, "news_id", id)
		WriteInternalError(w, "Failed to retrieve article")
		return
	}

	WriteJSON(w, http.StatusOK, article)
}

// GetBySlug handles GET /api/news/{slug}. Unknown slugs fall back to the
// built-in launch articles before reporting 404.
func (h *NewsHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.news.GetBySlug(r.Context(), slug, true)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			if builtin, ok := builtinArticle(slug); ok {
				WriteJSON(w, http.StatusOK, builtin)
				return
			}
			WriteNotFound(w, "Article not found")
			return
		}
		slog.Error("failed to get article", "error", err, "slug", slug)
		WriteInternalError(w, "Failed to retrieve article")
		return
	}

	WriteJSON(w, http.StatusOK, article)
}

// Create handles POST /api/admin/news. A missing slug is generated from the
// title; a duplicate slug is a conflict and leaves the existing row intact.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNewsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	details := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		details["title"] = "Title is required"
	}

	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(req.Slug) {
		details["slug"] = "Slug may contain only lowercase letters, numbers and hyphens"
	}

	if req.PostType == "" {
		req.PostType = model.PostTypeStandard
	}
	if !model.IsValidPostType(req.PostType) {
		details["postType"] = "Unknown post type"
	}

	if req.Status == "" {
		req.Status = model.NewsStatusDraft
	}
	if !model.IsValidNewsStatus(req.Status) {
		details["status"] = "Status must be draft or published"
	}

	if len(details) > 0 {
		WriteBadRequest(w, "Validation failed", details)
		return
	}

	publishDate := time.Now().UTC()
	if req.PublishDate != nil {
		publishDate = req.PublishDate.UTC()
	}

	article, err := h.news.Create(r.Context(), store.CreateNewsParams{
		Title:         req.Title,
		Slug:          req.Slug,
		Category:      req.Category,
		Excerpt:       h.sanitizer.Sanitize(req.Excerpt),
		Content:       h.sanitizer.Sanitize(req.Content),
		FeaturedImage: req.FeaturedImage,
		PostType:      req.PostType,
		VideoURL:      req.VideoURL,
		AudioURL:      req.AudioURL,
		GalleryImages: req.GalleryImages,
		SliderImages:  req.SliderImages,
		QuoteText:     req.QuoteText,
		QuoteAuthor:   req.QuoteAuthor,
		Author:        req.Author,
		PublishDate:   publishDate,
		Tags:          req.Tags,
		IsFeatured:    req.IsFeatured,
		IsPopularFeed: req.IsPopularFeed,
		Status:        req.Status,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			WriteConflict(w, "An article with this slug already exists")
			return
		}
		slog.Error("failed to create article", "error", err)
		WriteInternalError(w, "Failed to create article")
		return
	}

	h.taxonomy.Invalidate(r.Context())
	slog.Info("article created", "news_id", article.ID, "slug", article.Slug)
	WriteCreated(w, article)
}

// Update handles PUT /api/admin/news/{id}. Publishing is one-way: a
// published article cannot go back to draft.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid article ID", nil)
		return
	}

	var req updateNewsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	details := map[string]string{}
	if req.Slug != nil && !util.IsValidSlug(*req.Slug) {
		details["slug"] = "Slug may contain only lowercase letters, numbers and hyphens"
	}
	if req.PostType != nil && !model.IsValidPostType(*req.PostType) {
		details["postType"] = "Unknown post type"
	}
	if req.Status != nil && !model.IsValidNewsStatus(*req.Status) {
		details["status"] = "Status must be draft or published"
	}
	if len(details) > 0 {
		WriteBadRequest(w, "Validation failed", details)
		return
	}

	existing, err := h.news.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Article not found")
			return
		}
		slog.Error("failed to get article", "error", err, "news_id", id)
		WriteInternalError(w, "Failed to retrieve article")
		return
	}

	if req.Status != nil && existing.IsPublished() && *req.Status == model.NewsStatusDraft {
		WriteBadRequest(w, "A published article cannot be reverted to draft", nil)
		return
	}

	if req.Excerpt != nil {
		sanitized := h.sanitizer.Sanitize(*req.Excerpt)
		req.Excerpt = &sanitized
	}
	if req.Content != nil {
		sanitized := h.sanitizer.Sanitize(*req.Content)
		req.Content = &sanitized
	}

	article, err := h.news.Update(r.Context(), id, store.UpdateNewsParams{
		Title:         req.Title,
		Slug:          req.Slug,
		Category:      req.Category,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		PostType:      req.PostType,
		VideoURL:      req.VideoURL,
		AudioURL:      req.AudioURL,
		GalleryImages: req.GalleryImages,
		SliderImages:  req.SliderImages,
		QuoteText:     req.QuoteText,
		QuoteAuthor:   req.QuoteAuthor,
		Author:        req.Author,
		PublishDate:   req.PublishDate,
		Tags:          req.Tags,
		IsFeatured:    req.IsFeatured,
		IsPopularFeed: req.IsPopularFeed,
		Status:        req.Status,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			WriteConflict(w, "An article with this slug already exists")
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Article not found")
			return
		}
		slog.Error("failed to update article", "error", err, "news_id", id)
		WriteInternalError(w, "Failed to update article")
		return
	}

	h.taxonomy.Invalidate(r.Context())
	slog.Info("article updated", "news_id", id)
	WriteJSON(w, http.StatusOK, article)
}

// Delete handles DELETE /api/admin/news/{id}.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid article ID", nil)
		return
	}

	removed, err := h.news.Delete(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete article", "error", err, "news_id", id)
		WriteInternalError(w, "Failed to delete article")
		return
	}
	if !removed {
		WriteNotFound(w, "Article not found")
		return
	}

	h.taxonomy.Invalidate(r.Context())
	slog.Info("article deleted", "news_id", id)
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Article deleted"})
}
