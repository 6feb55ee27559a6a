package telegram

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	mdRenderer goldmark.Markdown
	tagPolicy  *bluemonday.Policy
)

func init() {
	mdRenderer = goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough),
	)

	// Telegram's HTML parse mode accepts only this subset; anything else,
	// including the <p> wrappers goldmark emits, is stripped to its text.
	tagPolicy = bluemonday.NewPolicy()
	tagPolicy.AllowElements("b", "strong", "i", "em", "u", "ins", "s", "strike", "del", "code", "pre")
	tagPolicy.AllowAttrs("href").OnElements("a")
	tagPolicy.AllowURLSchemes("http", "https", "tg")
	tagPolicy.RequireParseableURLs(true)
}

// RenderHTML converts a markdown message into the HTML subset understood by
// the Bot API. Returns empty string for empty input.
func RenderHTML(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return html.EscapeString(src)
	}

	out := strings.TrimSpace(tagPolicy.Sanitize(buf.String()))
	if out == "" {
		return html.EscapeString(src)
	}
	return out
}
