// services/levels.go - Pure level math
package services

import "math"

// GetLevelFromPoints maps lifetime points to a level:
// level = floor(sqrt(points/100)) + 1, so level L starts at 100*(L-1)^2.
func GetLevelFromPoints(points int) int {
	if points <= 0 {
		return 1
	}
	level := int(math.Sqrt(float64(points)/100)) + 1
	// Guard against float rounding at exact boundaries. A non-positive
	// threshold means the next level's floor overflowed; stop there.
	for level > 1 && points < PointsForLevel(level) {
		level--
	}
	for {
		next := PointsRequiredForNextLevel(level)
		if next <= 0 || points < next {
			break
		}
		level++
	}
	return level
}

// PointsForLevel returns the lifetime points at which a level starts.
func PointsForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return 100 * (level - 1) * (level - 1)
}

// PointsRequiredForNextLevel returns the lifetime-point threshold for the
// level after the given one.
func PointsRequiredForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return 100 * level * level
}

// FeaturesForLevel returns the features unlocked on reaching a level. It
// may be empty.
func FeaturesForLevel(level int) []string {
	return levelFeatures[level]
}
