package studio

import (
	"bytes"
	"html/template"
	"regexp"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// codeStyle is the chroma style for fenced code in descriptions.
const codeStyle = "github"

var (
	mdOnce   sync.Once
	md       goldmark.Markdown
	sanitize *bluemonday.Policy
	codeCSS  template.CSS
)

var chromaClass = regexp.MustCompile(`^[a-z][a-z0-9 -]*$`)

func initMarkdown() {
	mdOnce.Do(func() {
		md = goldmark.New(goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
			highlighting.NewHighlighting(
				highlighting.WithStyle(codeStyle),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		))

		sanitize = bluemonday.UGCPolicy()
		sanitize.AllowAttrs("class").Matching(chromaClass).OnElements("pre", "code", "span")

		var css bytes.Buffer
		if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&css, styles.Get(codeStyle)); err == nil {
			codeCSS = template.CSS(css.String())
		}
	})
}

// renderDescription turns a model-written Markdown description into HTML
// that is safe to embed in the studio page.
func renderDescription(src string) template.HTML {
	initMarkdown()

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(sanitize.SanitizeBytes(buf.Bytes()))
}

// descriptionCSS returns the stylesheet for highlighted code blocks.
func descriptionCSS() template.CSS {
	initMarkdown()
	return codeCSS
}
