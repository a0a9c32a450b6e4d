package ui

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
)

// Dice the table knows, keyed by slash command.
var dieSides = map[string]int{
	"d4":  4,
	"d6":  6,
	"d8":  8,
	"d10": 10,
	"d12": 12,
	"d20": 20,
}

// parseDiceCommand reads inputs like "/d20", "/d8 +2" and
// "/d20 +3 picking the lock". The returned roll carries die type,
// modifier and skill check; Result and Total are left for the caller
// to fill once the die is actually rolled.
func parseDiceCommand(input string) (game.DiceRoll, int, bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return game.DiceRoll{}, 0, false
	}

	die := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	sides, ok := dieSides[die]
	if !ok {
		return game.DiceRoll{}, 0, false
	}

	roll := game.DiceRoll{Type: die}
	rest := fields[1:]
	if len(rest) > 0 && (strings.HasPrefix(rest[0], "+") || strings.HasPrefix(rest[0], "-")) {
		if modifier, err := strconv.Atoi(rest[0]); err == nil {
			roll.Modifier = modifier
			rest = rest[1:]
		}
	}
	roll.SkillCheck = strings.Join(rest, " ")
	return roll, sides, true
}

func rollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}
