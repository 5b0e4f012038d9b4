package media

import (
	"regexp"
	"strings"
)

// Image URLs are recognized by extension only; content-type and payload
// checks happen at fetch time.
var (
	imageURLPattern = regexp.MustCompile(`(?i)https?://[^\s]+\.(?:jpg|jpeg|png|gif|webp)`)
	trailingPunct   = regexp.MustCompile(`[.,;:!?)\]]+$`)
	multiSpace      = regexp.MustCompile(` +`)
	multiNewline    = regexp.MustCompile(`\n{3,}`)
)

// FindImageURLs returns the image URLs embedded in text, in appearance
// order, with trailing sentence punctuation trimmed so a URL at the end of
// a sentence is not corrupted.
func FindImageURLs(text string) []string {
	matches := imageURLPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, trailingPunct.ReplaceAllString(m, ""))
	}
	return urls
}

// RemoveImageURLs strips the given URLs (plus any trailing punctuation that
// followed them) from text and normalizes the leftover whitespace: runs of
// spaces collapse to one, runs of 3+ newlines to two, and the result is
// trimmed. Callers pass only URLs that were successfully attached.
func RemoveImageURLs(text string, urls []string) string {
	cleaned := text
	for _, u := range urls {
		pattern := regexp.MustCompile(regexp.QuoteMeta(u) + `[.,;:!?)\]]*`)
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	cleaned = multiNewline.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
