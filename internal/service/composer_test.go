package service

import (
	"testing"

	"nostrsky/pkg/bluesky"

	"github.com/stretchr/testify/assert"
)

func TestComposePostWithoutImagesKeepsTextVerbatim(t *testing.T) {
	text := "look at https://ex.com/a.png it failed to attach"

	post := ComposePost(text, nil, nil)

	assert.Equal(t, text, post.Text)
	assert.Empty(t, post.Images)
}

func TestComposePostStripsAttachedURLs(t *testing.T) {
	text := "look at https://ex.com/a.png and https://ex.com/b.jpg"
	images := []bluesky.ImageEmbed{
		{Alt: "Image from Nostr", Image: &bluesky.BlobRef{}},
		{Alt: "Image from Nostr", Image: &bluesky.BlobRef{}},
	}

	post := ComposePost(text, []string{"https://ex.com/a.png", "https://ex.com/b.jpg"}, images)

	assert.Equal(t, "look at and", post.Text)
	assert.Len(t, post.Images, 2)
}

func TestComposePostStripsOnlyAttachedURLs(t *testing.T) {
	text := "good https://ex.com/a.png bad https://ex.com/b.jpg"
	images := []bluesky.ImageEmbed{{Alt: "Image from Nostr", Image: &bluesky.BlobRef{}}}

	post := ComposePost(text, []string{"https://ex.com/a.png"}, images)

	// The failed candidate's URL stays visible in the text.
	assert.Equal(t, "good bad https://ex.com/b.jpg", post.Text)
	assert.Len(t, post.Images, 1)
}
