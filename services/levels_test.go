package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLevelFromPoints(t *testing.T) {
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{-10, 1},
		{1, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{899, 3},
		{900, 4},
		{1600, 5},
		{8100, 10},
	}
	for _, c := range cases {
		assert.Equal(t, c.level, GetLevelFromPoints(c.points), "points=%d", c.points)
	}
}

func TestGetLevelFromPointsHugeTotalsTerminate(t *testing.T) {
	// Saturated totals must not spin in the boundary-correction loops.
	level := GetLevelFromPoints(math.MaxInt)
	assert.Greater(t, level, 1000)
}

func TestLevelThresholdsRoundTrip(t *testing.T) {
	for level := 1; level <= 50; level++ {
		floor := PointsForLevel(level)
		assert.Equal(t, level, GetLevelFromPoints(floor), "floor of level %d", level)
		if floor > 0 {
			assert.Equal(t, level-1, GetLevelFromPoints(floor-1), "just below level %d", level)
		}
	}
}

func TestPointsRequiredForNextLevel(t *testing.T) {
	assert.Equal(t, 100, PointsRequiredForNextLevel(1))
	assert.Equal(t, 400, PointsRequiredForNextLevel(2))
	assert.Equal(t, 100, PointsRequiredForNextLevel(0))
}

func TestFeaturesForLevel(t *testing.T) {
	assert.Empty(t, FeaturesForLevel(4))
	assert.Contains(t, FeaturesForLevel(2), "custom_categories")
	assert.Contains(t, FeaturesForLevel(10), "premium_themes")
}
