package util

import "strings"

// MakeTextList joins items into a human-readable list with an Oxford comma,
// e.g. ["a"] -> "a", ["a","b"] -> "a and b", ["a","b","c"] -> "a, b, and c".
// Used by cmd/langfront's verbose "expected a/an X" diagnostic to join the
// terminals a failed parse would have accepted.
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}
	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 2 {
		return items[0] + " and " + items[1]
	}

	cp := make([]string, len(items))
	copy(cp, items)
	cp[len(cp)-1] = "and " + cp[len(cp)-1]
	return strings.Join(cp, ", ")
}

// ArticleFor returns "a" or "an" depending on the leading sound of s, and
// capitalizes it if capitalize is true. Used by cmd/langfront's verbose "expected
// a|an X" diagnostic, composed per-terminal before being joined by
// MakeTextList.
func ArticleFor(s string, capitalize bool) string {
	article := "a"
	if len(s) > 0 && strings.ContainsRune("aeiouAEIOU", rune(s[0])) {
		article = "an"
	}
	if capitalize {
		return strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}
