package telegram

import (
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/hwnotify/internal/application"
)

func TestRenderHTML_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderHTML(""))
	assert.Equal(t, "", RenderHTML("  \n"))
}

func TestRenderHTML_PlainTextHasNoParagraphTags(t *testing.T) {
	result := RenderHTML("hello world")
	assert.Equal(t, "hello world", result)
}

func TestRenderHTML_Bold(t *testing.T) {
	result := RenderHTML(`Status of homework "hw1" changed to **reviewing**: taken for review.`)
	assert.Contains(t, result, "<strong>reviewing</strong>")
	assert.Contains(t, result, "hw1")
	assert.NotContains(t, result, "<p>")
}

func TestRenderHTML_InlineCode(t *testing.T) {
	result := RenderHTML("run `go test`")
	assert.Contains(t, result, "<code>go test</code>")
}

func TestRenderHTML_Link(t *testing.T) {
	result := RenderHTML("[review](https://example.com/r/1)")
	assert.Contains(t, result, `<a href="https://example.com/r/1"`)
	assert.Contains(t, result, "review</a>")
}

func TestRenderHTML_DropsUnsupportedTags(t *testing.T) {
	result := RenderHTML("# Title\n\n- one\n- two")
	assert.NotContains(t, result, "<h1>")
	assert.NotContains(t, result, "<li>")
	assert.Contains(t, result, "Title")
	assert.Contains(t, result, "two")
}

func TestRenderHTML_EscapesRawHTML(t *testing.T) {
	result := RenderHTML(`<script>alert("x")</script> a < b`)
	assert.NotContains(t, result, "<script>")
	assert.Contains(t, result, "&lt;")
}

func TestRenderHTML_IntrawordUnderscoresSurvive(t *testing.T) {
	result := RenderHTML("student__hw05_final.zip")
	assert.Equal(t, "student__hw05_final.zip", result)
}

func TestRenderHTML_VerdictKeepsHomeworkNameVerbatim(t *testing.T) {
	names := []string{
		"<v2> final",
		"*draft*",
		"_hw_",
		"hw [1](x)",
		"student__hw05_final.zip",
		"a & b `c` ~d~",
		`back\slash`,
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			verdict, err := application.InterpretStatus(map[string]any{"homework_name": name, "status": "approved"})
			require.NoError(t, err)

			result := RenderHTML(verdict.String())

			assert.Contains(t, result, "<strong>approved</strong>")
			assert.NotContains(t, result, "<em>")
			assert.NotContains(t, result, "<a ")
			assert.NotContains(t, result, "<code>")
			assert.NotContains(t, result, "<del>")
			assert.Contains(t, html.UnescapeString(result), `"`+name+`"`)
		})
	}
}
