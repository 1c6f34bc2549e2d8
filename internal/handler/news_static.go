// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"time"

	"github.com/halcyonsec/siteapi/internal/model"
)

// builtinArticles are the launch articles that shipped with the original
// static site. They are served as a fallback when a requested slug is not
// in the store, so old bookmarks and search results keep resolving.
var builtinArticles = []model.NewsArticle{
	{
		Title:       "Choosing the Right Security Partner for Your Business",
		Slug:        "choosing-the-right-security-partner",
		Category:    "industry",
		Excerpt:     "What to look for when evaluating a corporate security provider.",
		Content:     "<p>Selecting a security partner is a long-term decision. Look for licensing, vetted personnel, documented response procedures and references from businesses of a similar size.</p>",
		PostType:    model.PostTypeStandard,
		Author:      "Halcyon Security",
		PublishDate: time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC),
		Tags:        []string{"security", "business"},
		Status:      model.NewsStatusPublished,
	},
	{
		Title:       "Five Questions to Ask Before Your Next Risk Assessment",
		Slug:        "five-questions-before-your-risk-assessment",
		Category:    "guides",
		Excerpt:     "A short checklist to get more value out of a professional risk assessment.",
		Content:     "<p>A risk assessment is only as good as the questions behind it. Start with your critical assets, your access points, your staffing patterns, your incident history and your tolerance for disruption.</p>",
		PostType:    model.PostTypeStandard,
		Author:      "Halcyon Security",
		PublishDate: time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC),
		Tags:        []string{"guides", "risk-assessment"},
		Status:      model.NewsStatusPublished,
	},
}

// builtinArticle looks up a fallback article by slug.
func builtinArticle(slug string) (model.NewsArticle, bool) {
	for _, a := range builtinArticles {
		if a.Slug == slug {
			return a, true
		}
	}
	return model.NewsArticle{}, false
}
