package agents

import (
	"regexp"
	"strings"

	"github.com/pashaarshad/MultiAgent-MCP-System/internal/types"
)

// Fenced code block patterns, one per artifact kind. Tags are matched
// case-insensitively; the first block of each kind wins. The \b after the
// script tags keeps ```js from swallowing ```json blocks.
var (
	htmlFence = regexp.MustCompile("(?is)```html\\b\\s*(.*?)```")
	cssFence  = regexp.MustCompile("(?is)```css\\b\\s*(.*?)```")
	jsFence   = regexp.MustCompile("(?is)```(?:javascript|js)\\b\\s*(.*?)```")
)

// Extract parses a free-text model response into typed artifacts. It is a
// pure function: no network, no randomness, identical input yields
// identical output.
//
// When no fenced block of any kind is present but the text carries a
// document root marker, the whole response is treated as the HTML artifact.
func Extract(response string) types.Artifacts {
	var out types.Artifacts

	if m := htmlFence.FindStringSubmatch(response); m != nil {
		out.HTML = strings.TrimSpace(m[1])
	}
	if m := cssFence.FindStringSubmatch(response); m != nil {
		out.CSS = strings.TrimSpace(m[1])
	}
	if m := jsFence.FindStringSubmatch(response); m != nil {
		out.JS = strings.TrimSpace(m[1])
	}

	if out.Empty() && hasDocumentRoot(response) {
		out.HTML = strings.TrimSpace(response)
	}

	return out
}

func hasDocumentRoot(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype")
}

// stripCodeFence removes a surrounding markdown fence from a model reply
// that is supposed to be bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
