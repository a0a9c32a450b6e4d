package actors

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/tables"
)

// ErrPairSpaceExhausted is returned when a batch asks for more
// companions than there are distinct (race, class) pairs in the tables.
var ErrPairSpaceExhausted = errors.New("companion count exceeds the race/class pair space")

type pair struct {
	race  string
	class string
}

// Generator produces companion NPCs from injected lookup tables. It
// holds no mutable state; every batch is independent.
type Generator struct {
	tables tables.Tables
}

func NewGenerator(t tables.Tables) *Generator {
	return &Generator{tables: t}
}

// Generate produces count companions for the given character. Each
// call draws from a fresh crypto-seeded source, so concurrent callers
// share no generator state and produce uncorrelated batches.
func (g *Generator) Generate(character game.Character, count int) ([]game.NPC, error) {
	seed, err := newSeed()
	if err != nil {
		return nil, err
	}
	return g.GenerateWithRng(rand.New(rand.NewSource(seed)), character, count)
}

// GenerateWithRng is Generate with a caller-controlled randomness
// source. Given the same source, tables, character, and count, the
// batch is reproducible.
//
// Batch invariants: every companion carries a distinct (race, class)
// pair and a distinct name. Pairs are drawn uniformly and redrawn on
// collision, so count may not exceed the pair space. Name collisions
// walk the suffix cycle and, past one full cycle, also append the
// attempt counter; disambiguation therefore terminates and stays
// unique even when every companion shares one base name.
func (g *Generator) GenerateWithRng(rng *rand.Rand, character game.Character, count int) ([]game.NPC, error) {
	if count <= 0 {
		return []game.NPC{}, nil
	}
	if space := g.tables.PairCount(); count > space {
		return nil, fmt.Errorf("%w: %d requested, %d possible", ErrPairSpaceExhausted, count, space)
	}

	level := character.Level
	if level < 1 {
		level = game.DefaultLevel
	}

	takenPairs := make(map[pair]bool, count)
	takenNames := make(map[string]bool, count)
	npcs := make([]game.NPC, 0, count)

	for len(npcs) < count {
		p := pair{
			race:  g.tables.Races[rng.Intn(len(g.tables.Races))],
			class: g.tables.Classes[rng.Intn(len(g.tables.Classes))],
		}
		if takenPairs[p] {
			continue
		}
		takenPairs[p] = true

		name := g.pickName(rng, p.race, takenNames)
		takenNames[name] = true

		npcs = append(npcs, game.NPC{
			Name:        name,
			Race:        p.race,
			Class:       p.class,
			Personality: g.pickTrait(rng, p.class),
			Level:       level,
		})
	}

	return npcs, nil
}

func (g *Generator) pickName(rng *rand.Rand, race string, taken map[string]bool) string {
	pool := g.tables.NamesFor(race)
	base := pool[rng.Intn(len(pool))]
	if !taken[base] {
		return base
	}

	for attempt := 0; ; attempt++ {
		candidate := base + " " + g.tables.Suffixes[attempt%len(g.tables.Suffixes)]
		if attempt >= len(g.tables.Suffixes) {
			candidate = fmt.Sprintf("%s %d", candidate, attempt+1)
		}
		if !taken[candidate] {
			return candidate
		}
	}
}

func (g *Generator) pickTrait(rng *rand.Rand, class string) string {
	pool := g.tables.TraitsFor(class)
	return pool[rng.Intn(len(pool))]
}

func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
