package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeLadder_Order(t *testing.T) {
	grades := Grades()
	require.Len(t, grades, 5)
	for i := 1; i < len(grades); i++ {
		assert.True(t, grades[i].AtLeast(grades[i-1]))
		assert.False(t, grades[i-1].AtLeast(grades[i]))
	}

	next, ok := GradeExpert.Next()
	assert.True(t, ok)
	assert.Equal(t, GradeMasterArtisan, next)

	_, ok = GradeGrandMaster.Next()
	assert.False(t, ok)
}

func TestGradeLadder_Values(t *testing.T) {
	tests := []struct {
		grade      Grade
		multiplier float64
		threshold  int
	}{
		{GradeNovice, 0, 1},
		{GradeApprentice, 0.5, 2},
		{GradeExpert, 1, 10},
		{GradeMasterArtisan, 1.5, 50},
		{GradeGrandMaster, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.grade.String(), func(t *testing.T) {
			info := tt.grade.Info()
			assert.Equal(t, tt.multiplier, info.Multiplier)
			assert.Equal(t, tt.threshold, info.SuccessesToPromote)
		})
	}

	assert.Equal(t, 5, GradeNovice.Info().GoldGain)
	assert.Equal(t, 2, GradeNovice.Info().GoldCost)
}

func TestGrade_CanCraftRarity(t *testing.T) {
	assert.True(t, GradeNovice.CanCraftRarity(RarityCommon))
	assert.False(t, GradeNovice.CanCraftRarity(RarityUncommon))
	assert.True(t, GradeApprentice.CanCraftRarity(RarityUncommon))
	assert.False(t, GradeApprentice.CanCraftRarity(RarityRare))
	assert.True(t, GradeMasterArtisan.CanCraftRarity(RarityVeryRare))
	assert.False(t, GradeMasterArtisan.CanCraftRarity(RarityLegendary))

	for _, r := range Rarities() {
		assert.True(t, GradeGrandMaster.CanCraftRarity(r), r.String())
	}
}

func TestParseGrade(t *testing.T) {
	g, err := ParseGrade("master artisan")
	require.NoError(t, err)
	assert.Equal(t, GradeMasterArtisan, g)

	_, err = ParseGrade("Journeyman")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGrade_JSON(t *testing.T) {
	data, err := json.Marshal(GradeGrandMaster)
	require.NoError(t, err)
	assert.Equal(t, `"Grand Master"`, string(data))

	var g Grade
	require.NoError(t, json.Unmarshal([]byte(`"Apprentice"`), &g))
	assert.Equal(t, GradeApprentice, g)
}
