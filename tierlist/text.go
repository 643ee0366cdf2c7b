package tierlist

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text and collapses every run of characters outside [a-z0-9] into one dash.
func Slugify(text string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), "-")
	return strings.Trim(slug, "-")
}

// NormalizeReasoning turns a list of reasoning points into markdown bullets.
// Blank items are dropped.
func NormalizeReasoning(items []string) string {
	var lines []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
