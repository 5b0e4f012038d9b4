package service

import (
	"nostrsky/pkg/bluesky"
	"nostrsky/pkg/media"
)

// ComposedPost is the final outbound payload: text plus an ordered gallery
// of at most four uploaded images.
type ComposedPost struct {
	Text   string
	Images []bluesky.ImageEmbed
}

// ComposePost assembles the outbound post. Only URLs whose full
// fetch/validate/upload chain succeeded are stripped from the text; when
// nothing attached the text passes through untouched, even if unattachable
// image URLs remain visible.
func ComposePost(text string, attachedURLs []string, images []bluesky.ImageEmbed) ComposedPost {
	if len(images) == 0 {
		return ComposedPost{Text: text}
	}
	return ComposedPost{
		Text:   media.RemoveImageURLs(text, attachedURLs),
		Images: images,
	}
}
