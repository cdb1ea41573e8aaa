// Package export turns a design variant into downloadable files: the full
// HTML document and the design-system prompt embedded in it.
package export

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ziadkadry99/themegen/internal/theme"
)

// PromptPlaceholder is written when a document carries no prompt block.
const PromptPlaceholder = "prompt not found"

// Artifact is one file ready to be written or served.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Slugify lowercases s and replaces every rune outside [a-z0-9] with "_".
// Each multi-byte rune becomes a single underscore.
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// BaseName joins the creation and theme slugs. The separator is dropped when
// the creation slug already ends in "_".
func BaseName(creationName, themeName string) string {
	c, t := Slugify(creationName), Slugify(themeName)
	if c == "" {
		return t
	}
	if strings.HasSuffix(c, "_") {
		return c + t
	}
	return c + "_" + t
}

// Markup returns v's document, verbatim, as <base>.html.
func Markup(creationName string, v theme.Variant) Artifact {
	return Artifact{
		Filename:    BaseName(creationName, v.Name) + ".html",
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(v.Markup),
	}
}

// Prompt returns v's embedded design prompt as <theme>_prompt.txt. A missing
// prompt block yields PromptPlaceholder.
func Prompt(v theme.Variant) Artifact {
	text, ok := ExtractPrompt(v.Markup)
	if !ok {
		text = PromptPlaceholder
	}
	return Artifact{
		Filename:    Slugify(v.Name) + "_prompt.txt",
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(text),
	}
}

// Named returns v with a fallback name, design_<index>, when its name has
// no letters or digits to build a file name from.
func Named(v theme.Variant, index int) theme.Variant {
	if strings.Trim(Slugify(v.Name), "_") == "" {
		v.Name = fmt.Sprintf("design_%d", index)
	}
	return v
}

// All returns the markup and prompt artifacts for every variant in result.
func All(creationName string, result theme.Result) []Artifact {
	out := make([]Artifact, 0, result.Len()*2)
	for i, v := range result.Variants() {
		v = Named(v, i)
		out = append(out, Markup(creationName, v), Prompt(v))
	}
	return out
}

// WriteFile writes the artifact into dir, creating it if needed, and returns
// the path written.
func (a Artifact) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, a.Filename)
	if err := os.WriteFile(path, a.Body, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", a.Filename, err)
	}
	return path, nil
}

// Serve writes the artifact as a download.
func (a Artifact) Serve(w http.ResponseWriter) {
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(a.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Body)))
	_, _ = w.Write(a.Body)
}
