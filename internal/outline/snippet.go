// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import "strings"

// MaxSnippetLen is the maximum excerpt length in characters.
const MaxSnippetLen = 600

// SnippetAfter returns the paragraph that follows the first occurrence of
// heading in pageText. The search region ends at the next occurrence of
// heading, and the paragraph ends at the first blank line. The result is
// trimmed and at most MaxSnippetLen characters long.
//
// When heading does not occur literally in pageText, SnippetAfter returns "".
// Run text and flattened page text are produced independently, so a miss is
// expected now and then and is not an error.
func SnippetAfter(pageText, heading string) string {
	if heading == "" {
		return ""
	}
	_, rest, found := strings.Cut(pageText, heading)
	if !found {
		return ""
	}
	if i := strings.Index(rest, heading); i >= 0 {
		rest = rest[:i]
	}
	para, _, _ := strings.Cut(strings.TrimSpace(rest), "\n\n")
	return truncateRunes(strings.TrimSpace(para), MaxSnippetLen)
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
