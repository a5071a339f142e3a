package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"level-assessment-service/internal/domain"
)

func TestScoreIsTotalAndMonotonic(t *testing.T) {
	for _, v := range domain.Variants {
		prev := -1
		for correct := 0; correct <= domain.QuestionsPerTest; correct++ {
			d := Score(v, correct)
			require.NotEmpty(t, d.Level, "%s/%d", v, correct)
			require.NotEmpty(t, d.Description, "%s/%d", v, correct)

			rank := Rank(v, correct)
			assert.GreaterOrEqual(t, rank, prev, "%s: rank dropped at %d", v, correct)
			prev = rank
		}
	}
}

func TestGeneralScenarios(t *testing.T) {
	tests := []struct {
		correct int
		level   string
		desc    string
	}{
		{0, "A1", "Beginner"},
		{2, "A1", "Beginner"},
		{3, "A2", "Elementary"},
		{6, "B1", "Intermediate"},
		{8, "B2", "Upper Intermediate"},
		{9, "C1", "Advanced"},
		{10, "C1", "Advanced"},
	}
	for _, tt := range tests {
		d := Score(domain.VariantGeneral, tt.correct)
		assert.Equal(t, tt.level, d.Level, "correct=%d", tt.correct)
		assert.Equal(t, tt.desc, d.Description, "correct=%d", tt.correct)
		assert.Nil(t, d.NumericScore)
	}
}

func TestIELTSBands(t *testing.T) {
	d := Score(domain.VariantIELTS, 10)
	assert.Equal(t, "Band 8.0+", d.Level)
	assert.Equal(t, "Very Good User", d.Description)
	require.NotNil(t, d.NumericScore)
	assert.InDelta(t, 8.0, *d.NumericScore, 0.001)

	d = Score(domain.VariantIELTS, 3)
	assert.Equal(t, "Band 4.5", d.Level)
	assert.Equal(t, "Limited User", d.Description)

	d = Score(domain.VariantIELTS, 7)
	assert.Equal(t, "Band 6.5", d.Level)
	assert.Equal(t, "Competent User", d.Description)
}

func TestTOEFLScore(t *testing.T) {
	d := Score(domain.VariantTOEFL, 5)
	assert.Equal(t, 50, Percentage(5))
	assert.Equal(t, "60/120", d.Level)
	assert.Equal(t, "Intermediate (CEFR B1)", d.Description)
	require.NotNil(t, d.NumericScore)
	assert.InDelta(t, 60.0, *d.NumericScore, 0.001)

	assert.Equal(t, "0/120", Score(domain.VariantTOEFL, 0).Level)
	assert.Equal(t, "120/120", Score(domain.VariantTOEFL, 10).Level)
}

func TestScoreClampsOutOfRange(t *testing.T) {
	assert.Equal(t, Score(domain.VariantGeneral, 0), Score(domain.VariantGeneral, -3))
	assert.Equal(t, "120/120", Score(domain.VariantTOEFL, 42).Level)
}
