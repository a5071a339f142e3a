package domain

import "strings"

// Variant names a scoring rubric sharing the same 10-question shape.
type Variant string

const (
	VariantGeneral Variant = "general"
	VariantIELTS   Variant = "ielts"
	VariantTOEFL   Variant = "toefl"
)

// Variants lists the supported rubrics in display order.
var Variants = []Variant{VariantGeneral, VariantIELTS, VariantTOEFL}

// IsKnown reports whether v is one of the supported variants.
func (v Variant) IsKnown() bool {
	switch v {
	case VariantGeneral, VariantIELTS, VariantTOEFL:
		return true
	}
	return false
}

// NormalizeVariant maps free-form input onto a known variant, falling back to general.
func NormalizeVariant(raw string) Variant {
	v := Variant(strings.ToLower(strings.TrimSpace(raw)))
	if v.IsKnown() {
		return v
	}
	return VariantGeneral
}
