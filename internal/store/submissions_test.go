// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonsec/siteapi/internal/model"
)

func createTestSubmission(t *testing.T, subs *SubmissionStore, source string) model.FormSubmission {
	t.Helper()
	f, err := subs.Create(context.Background(), CreateSubmissionParams{
		FormSource:    source,
		Name:          "A",
		Email:         "a@b.com",
		AgreedToTerms: true,
	})
	require.NoError(t, err)
	return f
}

func TestSubmissionStore_Create(t *testing.T) {
	db := testDB(t)
	subs := NewSubmissionStore(db)

	f := createTestSubmission(t, subs, model.FormSourceContactPage)
	assert.NotZero(t, f.ID)
	assert.True(t, f.AgreedToTerms)
	assert.False(t, f.CreatedAt.IsZero())

	got, err := subs.GetByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FormSourceContactPage, got.FormSource)
}

func TestSubmissionStore_List_SourceFilter(t *testing.T) {
	db := testDB(t)
	subs := NewSubmissionStore(db)
	ctx := context.Background()

	createTestSubmission(t, subs, model.FormSourceContactPage)
	createTestSubmission(t, subs, model.FormSourceContactPage)
	createTestSubmission(t, subs, model.FormSourceHeroConsultation)

	items, total, err := subs.List(ctx, model.FormSourceContactPage, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, total, err = subs.List(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 3)
}

func TestSubmissionStore_Delete(t *testing.T) {
	db := testDB(t)
	subs := NewSubmissionStore(db)
	ctx := context.Background()

	f := createTestSubmission(t, subs, model.FormSourceCareerApplication)

	removed, err := subs.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = subs.Delete(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSubmissionStore_Stats(t *testing.T) {
	db := testDB(t)
	subs := NewSubmissionStore(db)

	for i := 0; i < 3; i++ {
		createTestSubmission(t, subs, model.FormSourceContactPage)
	}
	createTestSubmission(t, subs, model.FormSourceHeroConsultation)

	stats, err := subs.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	require.Len(t, stats.BySource, 2)
	assert.Equal(t, model.SourceCount{Source: model.FormSourceContactPage, Count: 3}, stats.BySource[0])
	assert.Equal(t, model.SourceCount{Source: model.FormSourceHeroConsultation, Count: 1}, stats.BySource[1])
}

func TestSubmissionStore_Stats_Empty(t *testing.T) {
	db := testDB(t)
	subs := NewSubmissionStore(db)

	stats, err := subs.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.BySource)
}
