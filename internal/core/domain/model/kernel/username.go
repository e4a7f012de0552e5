package kernel

import (
	"regexp"
	"strings"
)

var mentionPattern = regexp.MustCompile(`@([A-Za-z0-9_]{5,})`)

// NormalizeUsername trims, strips a leading '@' and lower-cases a transport username.
func NormalizeUsername(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "@")
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeUsernames applies NormalizeUsername to every name, dropping empty results.
func NormalizeUsernames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if v := NormalizeUsername(n); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ExtractMentions returns the @mentions found in text, without the '@',
// in order of appearance, de-duplicated case-insensitively.
func ExtractMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		key := NormalizeUsername(m[1])
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m[1])
	}
	return out
}
