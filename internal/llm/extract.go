package llm

import (
	"regexp"
	"strings"
)

var (
	fencedJSONRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")
	rawJSONRe    = regexp.MustCompile(`\{[\s\S]*\}`)
)

// ExtractJSON pulls a JSON object out of model output, tolerating markdown
// code fences and surrounding prose.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := rawJSONRe.FindString(text); m != "" {
		return m
	}
	return text
}
