package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// designEnvelope is the wire shape the model is asked to return. Pointer
// fields let validation tell a missing key from an empty one.
type designEnvelope struct {
	Designs []designWire `json:"designs" validate:"len=3,dive"`
}

type designWire struct {
	ThemeName   *string `json:"themeName" validate:"required,min=1"`
	Description *string `json:"description" validate:"required"`
	HTML        *string `json:"html" validate:"required,min=1"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ParseResponse decodes a raw model response into a Result. Anything other
// than exactly three complete designs is a StructuralValidationError.
func ParseResponse(raw string) (Result, error) {
	raw = stripCodeFence(raw)
	if raw == "" {
		return Result{}, &StructuralValidationError{Reason: "empty response"}
	}

	var env designEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return Result{}, &StructuralValidationError{Reason: "malformed JSON", Err: err}
	}

	if err := validatorInstance().Struct(env); err != nil {
		return Result{}, &StructuralValidationError{Reason: describeValidation(err, len(env.Designs))}
	}

	variants := make([]Variant, 0, len(env.Designs))
	for _, d := range env.Designs {
		variants = append(variants, Variant{
			Name:        strings.TrimSpace(*d.ThemeName),
			Description: strings.TrimSpace(*d.Description),
			Markup:      *d.HTML,
		})
	}
	return NewResult(variants...), nil
}

func describeValidation(err error, count int) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch {
		case fe.Field() == "designs" && fe.Tag() == "len":
			msgs = append(msgs, fmt.Sprintf("expected exactly %d designs, got %d", VariantCount, count))
		case fe.Tag() == "required":
			msgs = append(msgs, fmt.Sprintf("%s is missing", trimNamespace(fe.Namespace())))
		case fe.Tag() == "min":
			msgs = append(msgs, fmt.Sprintf("%s is empty", trimNamespace(fe.Namespace())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", trimNamespace(fe.Namespace()), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// trimNamespace drops the struct name prefix, e.g.
// "designEnvelope.designs[1].html" -> "designs[1].html".
func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// stripCodeFence removes a surrounding Markdown code fence, which some
// models emit even in JSON mode.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	lines := strings.Split(raw, "\n")
	if len(lines) < 2 {
		return ""
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.TrimSpace(strings.Join(lines[1:end], "\n"))
}
