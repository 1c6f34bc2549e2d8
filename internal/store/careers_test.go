// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonsec/siteapi/internal/model"
)

func createTestCareer(t *testing.T, careers *CareerStore, title string) model.Career {
	t.Helper()
	c, err := careers.Create(context.Background(), CreateCareerParams{
		Title:        title,
		Location:     "Remote",
		Type:         "Full-time",
		Description:  "Guard things.",
		Requirements: []string{"3+ years experience", "valid license"},
	})
	require.NoError(t, err)
	return c
}

func TestCareerStore_Create(t *testing.T) {
	db := testDB(t)
	careers := NewCareerStore(db)

	c := createTestCareer(t, careers, "Security Consultant")
	assert.NotZero(t, c.ID)
	assert.Equal(t, []string{"3+ years experience", "valid license"}, c.Requirements)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCareerStore_Create_EmptyRequirements(t *testing.T) {
	db := testDB(t)
	careers := NewCareerStore(db)

	c, err := careers.Create(context.Background(), CreateCareerParams{
		Title: "Analyst", Location: "HQ", Type: "Part-time", Description: "Analyze.",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{}, c.Requirements)
}

func TestCareerStore_List_Pagination(t *testing.T) {
	db := testDB(t)
	careers := NewCareerStore(db)

	const n = 7
	for i := 0; i < n; i++ {
		createTestCareer(t, careers, fmt.Sprintf("Role %d", i))
	}

	// Collect all pages of size 3 and check each record appears exactly once.
	seen := make(map[int64]bool)
	for page := 1; page <= 3; page++ {
		items, total, err := careers.List(context.Background(), 3, (page-1)*3)
		require.NoError(t, err)
		assert.Equal(t, int64(n), total)
		for _, c := range items {
			assert.False(t, seen[c.ID], "career %d returned twice", c.ID)
			seen[c.ID] = true
		}
	}
	assert.Len(t, seen, n)
}

func TestCareerStore_List_NewestFirst(t *testing.T) {
	db := testDB(t)
	careers := NewCareerStore(db)

	first := createTestCareer(t, careers, "Oldest")
	second := createTestCareer(t, careers, "Newest")

	items, _, err := careers.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestCareerStore_Update_Partial(t *testing.T) {
	db := testDB(t)
	careers := NewCareerStore(db)

	c := createTestCareer(t, careers, "Original Title")

	newLocation := "On-site"
	updated, err := careers.Update(context.Background(), c.ID, UpdateCareerParams{
		Location: &newLocation,
	})
	require.NoError(t, err)
	assert.Equal(t, "Original Title", updated.Title, "unsupplied fields must be preserved")
	assert.Equal(t, "On-site", updated.Location)
	assert.Equal(t, c.Requirements, updated.Requirements)
}

func TestCareerStore_Update_NotFound(t *testing.T) {
	db := testDB(t)
	careers := NewCareerStore(db)

	title := "x"
	_, err := careers.Update(context.Background(), 9999, UpdateCareerParams{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCareerStore_Delete(t *testing.T) {
	db := testDB(t)
	careers := NewCareerStore(db)

	c := createTestCareer(t, careers, "Doomed")

	removed, err := careers.Delete(context.Background(), c.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = careers.Delete(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, removed, "deleting a missing id reports not found, not an error")
}
