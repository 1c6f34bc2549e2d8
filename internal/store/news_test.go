// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonsec/siteapi/internal/model"
)

func newsParams(slug string) CreateNewsParams {
	return CreateNewsParams{
		Title:       "Title for " + slug,
		Slug:        slug,
		Category:    "industry",
		Excerpt:     "An excerpt.",
		Content:     "<p>Body</p>",
		PostType:    model.PostTypeStandard,
		Author:      "Editorial",
		PublishDate: time.Now().UTC(),
		Tags:        []string{"security"},
		Status:      model.NewsStatusPublished,
	}
}

func createTestNews(t *testing.T, news *NewsStore, params CreateNewsParams) model.NewsArticle {
	t.Helper()
	n, err := news.Create(context.Background(), params)
	require.NoError(t, err)
	return n
}

func TestNewsStore_Create(t *testing.T) {
	db := testDB(t)
	news := NewNewsStore(db)

	n := createTestNews(t, news, newsParams("first-post"))
	assert.NotZero(t, n.ID)
	assert.Equal(t, "first-post", n.Slug)
	assert.Equal(t, []string{"security"}, n.Tags)
	assert.True(t, n.IsPublished())
}

func TestNewsStore_Create_DuplicateSlug(t *testing.T) {
	db := testDB(t)
	news := NewNewsStore(db)
	ctx := context.Background()

	original := createTestNews(t, news, newsParams("taken"))

	dup := newsParams("taken")
	dup.Title = "Different title"
	_, err := news.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrConflict)

	// Existing record is left unmodified.
	got, err := news.GetBySlug(ctx, "taken", false)
	require.NoError(t, err)
	assert.Equal(t, original.Title, got.Title)
}

func TestNewsStore_GetBySlug_PublishedOnly(t *testing.T) {
	db := testDB(t)
	news := NewNewsStore(db)
	ctx := context.Background()

	draft := newsParams("hidden-draft")
	draft.Status = model.NewsStatusDraft
	createTestNews(t, news, draft)

	_, err := news.GetBySlug(ctx, "hidden-draft", true)
	assert.ErrorIs(t, err, ErrNotFound, "drafts are invisible to public reads")

	got, err := news.GetBySlug(ctx, "hidden-draft", false)
	require.NoError(t, err)
	assert.Equal(t, model.NewsStatusDraft, got.Status)
}

func TestNewsStore_List_Filters(t *testing.T) {
	db := testDB(t)
	news := NewNewsStore(db)
	ctx := context.Background()

	published := newsParams("pub")
	createTestNews(t, news, published)

	draft := newsParams("dra")
	draft.Status = model.NewsStatusDraft
	draft.Category = "company"
	draft.Tags = []string{"announcement"}
	createTestNews(t, news, draft)

	featured := newsParams("feat")
	featured.IsFeatured = true
	createTestNews(t, news, featured)

	// Status filter (public listing).
	items, total, err := news.List(ctx, ListNewsParams{Status: model.NewsStatusPublished, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	// No filter sees drafts (admin listing).
	_, total, err = news.List(ctx, ListNewsParams{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// Category filter.
	items, _, err = news.List(ctx, ListNewsParams{Category: "company", Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "dra", items[0].Slug)

	// Tag filter matches inside the JSON array.
	items, _, err = news.List(ctx, ListNewsParams{Tag: "announcement", Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "dra", items[0].Slug)

	// Featured filter.
	items, _, err = news.List(ctx, ListNewsParams{Featured: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "feat", items[0].Slug)
}

func TestNewsStore_List_NewestFirst(t *testing.T) {
	db := testDB(t)
	news := NewNewsStore(db)

	older := newsParams("older")
	older.PublishDate = time.Now().UTC().Add(-48 * time.Hour)
	createTestNews(t, news, older)

	newer := newsParams("newer")
	newer.PublishDate = time.Now().UTC()
	createTestNews(t, news, newer)

	items, _, err := news.List(context.Background(), ListNewsParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "newer", items[0].Slug)
	assert.Equal(t, "older", items[1].Slug)
}

func TestNewsStore_Update_Partial(t *testing.T) {
	db := testDB(t)
	news := NewNewsStore(db)
	ctx := context.Background()

	n := createTestNews(t, news, newsParams("update-me"))

	status := model.NewsStatusDraft
	updated, err := news.Update(ctx, n.ID, UpdateNewsParams{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.NewsStatusDraft, updated.Status)
	assert.Equal(t, n.Title, updated.Title, "unsupplied fields must be preserved")
	assert.Equal(t, n.Tags, updated.Tags)
}

func TestNewsStore_Update_SlugConflict(t *testing.T) {
	db := testDB(t)
	news := NewNewsStore(db)
	ctx := context.Background()

	createTestNews(t, news, newsParams("existing"))
	n := createTestNews(t, news, newsParams("movable"))

	slug := "existing"
	_, err := news.Update(ctx, n.ID, UpdateNewsParams{Slug: &slug})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestNewsStore_Update_SameSlugNoConflict(t *testing.T) {
	db := testDB(t)
	news := NewNewsStore(db)
	ctx := context.Background()

	n := createTestNews(t, news, newsParams("self"))

	slug := "self"
	title := "New title"
	_, err := news.Update(ctx, n.ID, UpdateNewsParams{Slug: &slug, Title: &title})
	assert.NoError(t, err, "keeping the same slug must not conflict with itself")
}

func TestNewsStore_Delete(t *testing.T) {
	db := testDB(t)
	news := NewNewsStore(db)
	ctx := context.Background()

	n := createTestNews(t, news, newsParams("gone"))

	removed, err := news.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = news.Delete(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestNewsStore_CategoriesAndTags(t *testing.T) {
	db := testDB(t)
	news := NewNewsStore(db)
	ctx := context.Background()

	a := newsParams("a")
	a.Category = "industry"
	a.Tags = []string{"security", "guards"}
	createTestNews(t, news, a)

	b := newsParams("b")
	b.Category = "company"
	b.Tags = []string{"security", "news"}
	createTestNews(t, news, b)

	categories, err := news.Categories(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"industry", "company"}, categories)

	tags, err := news.Tags(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"security", "guards", "news"}, tags)
}
