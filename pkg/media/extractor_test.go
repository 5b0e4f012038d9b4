package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindImageURLs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "no urls",
			text:     "just a plain note",
			expected: nil,
		},
		{
			name:     "single url",
			text:     "look at https://ex.com/a.png",
			expected: []string{"https://ex.com/a.png"},
		},
		{
			name:     "trailing punctuation trimmed",
			text:     "look at https://ex.com/a.png!",
			expected: []string{"https://ex.com/a.png"},
		},
		{
			name:     "stacked punctuation trimmed",
			text:     "see (https://ex.com/a.jpg).",
			expected: []string{"https://ex.com/a.jpg"},
		},
		{
			name:     "uppercase extension",
			text:     "https://ex.com/photo.JPEG here",
			expected: []string{"https://ex.com/photo.JPEG"},
		},
		{
			name:     "multiple urls in order",
			text:     "a https://ex.com/1.png b https://ex.com/2.gif c https://ex.com/3.webp",
			expected: []string{"https://ex.com/1.png", "https://ex.com/2.gif", "https://ex.com/3.webp"},
		},
		{
			name:     "non-image url ignored",
			text:     "see https://ex.com/page.html and https://ex.com/doc.pdf",
			expected: nil,
		},
		{
			name:     "http scheme accepted",
			text:     "old http://ex.com/a.jpeg link",
			expected: []string{"http://ex.com/a.jpeg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindImageURLs(tt.text))
		})
	}
}

func TestRemoveImageURLs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		urls     []string
		expected string
	}{
		{
			name:     "empty url list leaves text unchanged",
			text:     "look at https://ex.com/a.png",
			urls:     nil,
			expected: "look at https://ex.com/a.png",
		},
		{
			name:     "url with trailing punctuation removed",
			text:     "look at https://ex.com/a.png!",
			urls:     []string{"https://ex.com/a.png"},
			expected: "look at",
		},
		{
			name:     "no doubled spaces after removal",
			text:     "before https://ex.com/a.png after",
			urls:     []string{"https://ex.com/a.png"},
			expected: "before after",
		},
		{
			name:     "newline runs collapse to two",
			text:     "first\n\nhttps://ex.com/a.png\n\nsecond",
			urls:     []string{"https://ex.com/a.png"},
			expected: "first\n\nsecond",
		},
		{
			name:     "only attached urls removed",
			text:     "a https://ex.com/keep.png b https://ex.com/gone.png",
			urls:     []string{"https://ex.com/gone.png"},
			expected: "a https://ex.com/keep.png b",
		},
		{
			name:     "url-only note becomes empty",
			text:     "https://ex.com/a.png",
			urls:     []string{"https://ex.com/a.png"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemoveImageURLs(tt.text, tt.urls))
		})
	}
}

func TestExtractRemoveRoundTrip(t *testing.T) {
	text := "look at https://ex.com/a.png!"

	urls := FindImageURLs(text)
	assert.Equal(t, []string{"https://ex.com/a.png"}, urls)

	stripped := RemoveImageURLs(text, urls)
	assert.Equal(t, "look at", stripped)
	assert.NotContains(t, stripped, "https://ex.com/a.png")
	assert.NotContains(t, stripped, "  ")
}
