package source

import (
	"strings"
	"unicode"
)

const maxTags = 8

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "day": {}, "get": {}, "has": {}, "him": {},
	"his": {}, "how": {}, "its": {}, "may": {}, "new": {}, "now": {},
	"old": {}, "see": {}, "two": {}, "who": {}, "boy": {}, "did": {},
	"she": {}, "use": {}, "her": {}, "sit": {}, "set": {},
}

// DeriveTags builds a tag set from a template name: lowercase tokens
// with punctuation stripped, stopwords and short tokens dropped, the
// source channel and marker tags appended, capped to a small fixed
// count. First-appearance order is preserved.
func DeriveTags(name, channel string, markers ...string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, name)

	var tags []string
	seen := make(map[string]struct{})
	add := func(t string) {
		if t == "" || len(tags) >= maxTags {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}

	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		add(word)
	}

	add(strings.ToLower(channel))
	for _, m := range markers {
		add(m)
	}
	add("template")

	return tags
}
