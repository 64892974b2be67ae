package domain

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// Tweet is a short post authored by an account.
type Tweet struct {
	ID          string
	AuthorEmail string
	Content     string
	Hashtags    []string
	LikeCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExtractHashtags returns the distinct #tags in content, sorted, without the leading '#'.
func ExtractHashtags(content string) []string {
	seen := map[string]struct{}{}
	for _, word := range strings.Fields(content) {
		if len(word) < 2 || word[0] != '#' {
			continue
		}
		tag := word[1:]
		if !isHashtagBody(tag) {
			continue
		}
		seen[tag] = struct{}{}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func isHashtagBody(s string) bool {
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
