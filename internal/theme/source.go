package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SourceKind tells which ingestion shape a Source came from.
type SourceKind int

const (
	// SourceVersions is an ordered array of designs.
	SourceVersions SourceKind = iota
	// SourceLegacy is a single HTML document with no versions array.
	SourceLegacy
)

func (k SourceKind) String() string {
	switch k {
	case SourceVersions:
		return "versions"
	case SourceLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// LegacyVariantName names the single variant recovered from legacy input
// when the caller has no better name.
const LegacyVariantName = "Original"

// Source is either a versions array or a legacy single document. It is
// resolved once, at ingestion, into a Result.
type Source struct {
	Kind     SourceKind
	Versions []Variant
	HTML     string
}

// VersionsSource wraps an ordered set of variants.
func VersionsSource(variants ...Variant) Source {
	return Source{Kind: SourceVersions, Versions: variants}
}

// LegacySource wraps a single HTML document.
func LegacySource(markup string) Source {
	return Source{Kind: SourceLegacy, HTML: markup}
}

// DecodeSource accepts {"versions":[...]}, {"designs":[...]} or {"html":"..."}.
// A non-empty versions array wins over a legacy html field.
func DecodeSource(data []byte) (Source, error) {
	var wire struct {
		Versions []Variant `json:"versions"`
		Designs  []Variant `json:"designs"`
		HTML     *string   `json:"html"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return Source{}, fmt.Errorf("decoding design source: %w", err)
	}

	switch {
	case len(wire.Versions) > 0:
		return VersionsSource(wire.Versions...), nil
	case len(wire.Designs) > 0:
		return VersionsSource(wire.Designs...), nil
	case wire.HTML != nil && strings.TrimSpace(*wire.HTML) != "":
		return LegacySource(*wire.HTML), nil
	default:
		return Source{}, errors.New("design source has neither versions nor html")
	}
}

// Resolve produces the canonical Result. Legacy input becomes a one-element
// result whose variant is called name (or LegacyVariantName).
func (s Source) Resolve(name string) (Result, error) {
	switch s.Kind {
	case SourceVersions:
		if len(s.Versions) == 0 {
			return Result{}, errors.New("versions source is empty")
		}
		return NewResult(s.Versions...), nil
	case SourceLegacy:
		if strings.TrimSpace(s.HTML) == "" {
			return Result{}, errors.New("legacy source has no html")
		}
		if strings.TrimSpace(name) == "" {
			name = LegacyVariantName
		}
		return NewResult(Variant{Name: name, Markup: s.HTML}), nil
	default:
		return Result{}, fmt.Errorf("unknown source kind %s", s.Kind)
	}
}
