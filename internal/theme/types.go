// Package theme holds the generated design model and the client that asks a
// model for exactly three single-file website designs.
package theme

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// VariantCount is the number of designs every generation must return.
const VariantCount = 3

// Variant is one generated design: a complete, self-contained HTML document
// plus the name and description shown next to it.
type Variant struct {
	Name        string `json:"themeName"`
	Description string `json:"description"`
	Markup      string `json:"html"`
}

// PageIDs returns the ids of page sections (elements whose id starts with
// "page-") in document order. Malformed markup yields whatever was found
// before the tokenizer gave up.
func (v Variant) PageIDs() []string {
	var ids []string
	z := html.NewTokenizer(strings.NewReader(v.Markup))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return ids
		case html.StartTagToken, html.SelfClosingTagToken:
			for _, attr := range z.Token().Attr {
				if attr.Key == "id" && strings.HasPrefix(attr.Val, "page-") {
					ids = append(ids, attr.Val)
				}
			}
		}
	}
}

// HasPage reports whether the document contains a section with the given id.
func (v Variant) HasPage(id string) bool {
	for _, got := range v.PageIDs() {
		if got == id {
			return true
		}
	}
	return false
}

// Result is an ordered, immutable set of variants from one generation.
// Order is display order.
type Result struct {
	variants []Variant
}

// NewResult copies variants into a Result.
func NewResult(variants ...Variant) Result {
	cp := make([]Variant, len(variants))
	copy(cp, variants)
	return Result{variants: cp}
}

// Len returns the number of variants.
func (r Result) Len() int { return len(r.variants) }

// IsZero reports whether the result holds no variants.
func (r Result) IsZero() bool { return len(r.variants) == 0 }

// At returns the variant at index i.
func (r Result) At(i int) (Variant, error) {
	if i < 0 || i >= len(r.variants) {
		return Variant{}, fmt.Errorf("variant index %d out of range [0,%d)", i, len(r.variants))
	}
	return r.variants[i], nil
}

// Variants returns a copy of the variants in display order.
func (r Result) Variants() []Variant {
	cp := make([]Variant, len(r.variants))
	copy(cp, r.variants)
	return cp
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.variants == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.variants)
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var variants []Variant
	if err := json.Unmarshal(data, &variants); err != nil {
		return err
	}
	r.variants = variants
	return nil
}
