// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"
)

const (
	keyNewsCategories = "news:categories"
	keyNewsTags       = "news:tags"
)

// Taxonomy caches the distinct news categories and tags, which change
// only on article writes but are requested on every taxonomy read.
type Taxonomy struct {
	cache *TypedCache[[]string]
}

// NewTaxonomy creates a taxonomy cache over the given backend.
func NewTaxonomy(backend Cacher, ttl time.Duration) *Taxonomy {
	return &Taxonomy{
		cache: NewTypedCache[[]string](backend, ttl),
	}
}

// Categories returns the cached category list, computing it with the
// loader on a miss.
func (t *Taxonomy) Categories(ctx context.Context, load func() ([]string, error)) ([]string, error) {
	return t.getOrLoad(ctx, keyNewsCategories, load)
}

// Tags returns the cached tag list, computing it with the loader on a miss.
func (t *Taxonomy) Tags(ctx context.Context, load func() ([]string, error)) ([]string, error) {
	return t.getOrLoad(ctx, keyNewsTags, load)
}

// Invalidate drops both taxonomy entries. Called after any article write.
func (t *Taxonomy) Invalidate(ctx context.Context) {
	_ = t.cache.Delete(ctx, keyNewsCategories)
	_ = t.cache.Delete(ctx, keyNewsTags)
}

func (t *Taxonomy) getOrLoad(ctx context.Context, key string, load func() ([]string, error)) ([]string, error) {
	value, err := t.cache.GetOrSet(ctx, key, func() (*[]string, error) {
		list, err := load()
		if err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil {
		return nil, err
	}
	return *value, nil
}
