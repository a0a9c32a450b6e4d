package game

import "math"

// HP curve anchors: level 1 maps to 15 max HP, level 20 to 35, linear
// in between.
const (
	hpFloor  = 15.0
	hpCap    = 35.0
	levelMin = 1
	levelMax = 20
)

// MaxHP derives maximum hit points from a character level. Out-of-range
// levels are clamped to [1, 20] rather than rejected, so the function
// is total and monotonic non-decreasing.
func MaxHP(level int) int {
	if level < levelMin {
		level = levelMin
	}
	if level > levelMax {
		level = levelMax
	}
	perLevel := (hpCap - hpFloor) / float64(levelMax-levelMin)
	return int(math.Round(hpFloor + float64(level-levelMin)*perLevel))
}
