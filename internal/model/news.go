// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// News article statuses
const (
	NewsStatusDraft     = "draft"
	NewsStatusPublished = "published"
)

// IsValidNewsStatus checks if a status value is one of the supported states.
func IsValidNewsStatus(status string) bool {
	return status == NewsStatusDraft || status == NewsStatusPublished
}

// News article post types
const (
	PostTypeStandard = "standard"
	PostTypeVideo    = "video"
	PostTypeAudio    = "audio"
	PostTypeGallery  = "gallery"
	PostTypeSlider   = "slider"
	PostTypeQuote    = "quote"
)

// ValidPostTypes returns all valid news post types.
func ValidPostTypes() []string {
	return []string{
		PostTypeStandard,
		PostTypeVideo,
		PostTypeAudio,
		PostTypeGallery,
		PostTypeSlider,
		PostTypeQuote,
	}
}

// IsValidPostType checks if a post type is valid.
func IsValidPostType(postType string) bool {
	for _, t := range ValidPostTypes() {
		if t == postType {
			return true
		}
	}
	return false
}

// NewsArticle represents a news/blog entry. Slug is unique across the
// collection and doubles as the public lookup key.
type NewsArticle struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Category      string    `json:"category"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	FeaturedImage string    `json:"featuredImage"`
	PostType      string    `json:"postType"`
	VideoURL      string    `json:"videoUrl,omitempty"`
	AudioURL      string    `json:"audioUrl,omitempty"`
	GalleryImages []string  `json:"galleryImages,omitempty"`
	SliderImages  []string  `json:"sliderImages,omitempty"`
	QuoteText     string    `json:"quoteText,omitempty"`
	QuoteAuthor   string    `json:"quoteAuthor,omitempty"`
	Author        string    `json:"author"`
	PublishDate   time.Time `json:"publishDate"`
	Tags          []string  `json:"tags"`
	IsFeatured    bool      `json:"isFeatured"`
	IsPopularFeed bool      `json:"isPopularFeed"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsPublished returns true if the article is publicly visible.
func (n *NewsArticle) IsPublished() bool {
	return n.Status == NewsStatusPublished
}
