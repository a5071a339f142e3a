// Package scoring maps a correct-answer count onto a variant's level bands.
// Every question is worth one point; section labels carry no weight.
package scoring

import (
	"fmt"
	"math"

	"level-assessment-service/internal/domain"
)

type band struct {
	upper       int // inclusive percentage bound
	level       string
	description string
	numeric     float64
}

var generalBands = []band{
	{upper: 20, level: "A1", description: "Beginner"},
	{upper: 40, level: "A2", description: "Elementary"},
	{upper: 60, level: "B1", description: "Intermediate"},
	{upper: 80, level: "B2", description: "Upper Intermediate"},
	{upper: 100, level: "C1", description: "Advanced"},
}

var ieltsBands = []band{
	{upper: 20, level: "Band 4.0", description: "Limited User", numeric: 4.0},
	{upper: 30, level: "Band 4.5", description: "Limited User", numeric: 4.5},
	{upper: 40, level: "Band 5.0", description: "Modest User", numeric: 5.0},
	{upper: 50, level: "Band 5.5", description: "Modest User", numeric: 5.5},
	{upper: 60, level: "Band 6.0", description: "Competent User", numeric: 6.0},
	{upper: 70, level: "Band 6.5", description: "Competent User", numeric: 6.5},
	{upper: 80, level: "Band 7.0", description: "Good User", numeric: 7.0},
	{upper: 90, level: "Band 7.5", description: "Good User", numeric: 7.5},
	{upper: 100, level: "Band 8.0+", description: "Very Good User", numeric: 8.0},
}

var toeflBands = []band{
	{upper: 20, description: "Beginner (CEFR A1)"},
	{upper: 40, description: "Elementary (CEFR A2)"},
	{upper: 60, description: "Intermediate (CEFR B1)"},
	{upper: 80, description: "Upper Intermediate (CEFR B2)"},
	{upper: 100, description: "Advanced (CEFR C1)"},
}

// Percentage converts a correct count to a 0..100 percentage.
func Percentage(correct int) int {
	return clamp(correct) * 100 / domain.QuestionsPerTest
}

// Score returns the descriptor for correct answers under variant.
// Counts outside 0..10 are clamped; unknown variants score as general.
func Score(variant domain.Variant, correct int) domain.Descriptor {
	pct := Percentage(correct)
	switch variant {
	case domain.VariantIELTS:
		b := lookup(ieltsBands, pct)
		n := b.numeric
		return domain.Descriptor{Level: b.level, Description: b.description, NumericScore: &n}
	case domain.VariantTOEFL:
		b := lookup(toeflBands, pct)
		points := math.Round(float64(pct) / 100 * 120)
		return domain.Descriptor{
			Level:        fmt.Sprintf("%d/120", int(points)),
			Description:  b.description,
			NumericScore: &points,
		}
	default:
		b := lookup(generalBands, pct)
		return domain.Descriptor{Level: b.level, Description: b.description}
	}
}

// Rank returns the ordinal of the band a count falls in for variant, starting at 0.
func Rank(variant domain.Variant, correct int) int {
	pct := Percentage(correct)
	table := generalBands
	switch variant {
	case domain.VariantIELTS:
		table = ieltsBands
	case domain.VariantTOEFL:
		table = toeflBands
	}
	for i, b := range table {
		if pct <= b.upper {
			return i
		}
	}
	return len(table) - 1
}

func lookup(table []band, pct int) band {
	for _, b := range table {
		if pct <= b.upper {
			return b
		}
	}
	return table[len(table)-1]
}

func clamp(correct int) int {
	if correct < 0 {
		return 0
	}
	if correct > domain.QuestionsPerTest {
		return domain.QuestionsPerTest
	}
	return correct
}
