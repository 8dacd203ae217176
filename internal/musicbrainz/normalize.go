package musicbrainz

import (
	"regexp"
	"strings"
)

// editionKeywords mark reissue qualifiers that do not denote a distinct
// release for lookup purposes.
const editionKeywords = `deluxe|expanded|extended|edition|version|remaster|remastered|anniversary|bonus|special|super`

var (
	bracketPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*\([^)]*(?:` + editionKeywords + `)[^)]*\)`),
		regexp.MustCompile(`(?i)\s*\[[^\]]*(?:` + editionKeywords + `)[^\]]*\]`),
		regexp.MustCompile(`(?i)\s*\{[^}]*(?:` + editionKeywords + `)[^}]*\}`),
	}
	suffixPattern = regexp.MustCompile(`(?i)\s*[-:–—]\s*[^-:–—]*(?:` + editionKeywords + `)[^-:–—]*$`)
	multiSpace    = regexp.MustCompile(`\s{2,}`)
)

// stripEditionQualifiers removes bracketed and trailing edition/quality
// qualifiers from an album title, repeating until the title stops changing.
func stripEditionQualifiers(title string) string {
	cleaned := title
	for changed := true; changed; {
		changed = false
		for _, pattern := range bracketPatterns {
			if updated := pattern.ReplaceAllString(cleaned, ""); updated != cleaned {
				cleaned = updated
				changed = true
			}
		}
		if updated := suffixPattern.ReplaceAllString(cleaned, ""); updated != cleaned {
			cleaned = updated
			changed = true
		}
	}
	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	return strings.Trim(cleaned, " -:–—")
}

// TitleVariants returns the distinct lookup candidates for an album title:
// the trimmed original first, then the cleaned form when it differs. If
// both collapse to empty the original is returned verbatim.
func TitleVariants(album string) []string {
	var variants []string
	seen := make(map[string]struct{}, 2)
	for _, candidate := range []string{strings.TrimSpace(album), stripEditionQualifiers(album)} {
		if candidate == "" {
			continue
		}
		lowered := strings.ToLower(candidate)
		if _, ok := seen[lowered]; ok {
			continue
		}
		seen[lowered] = struct{}{}
		variants = append(variants, candidate)
	}
	if len(variants) == 0 {
		return []string{album}
	}
	return variants
}
