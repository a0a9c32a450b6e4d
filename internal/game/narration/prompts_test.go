package narration

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/actors"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/tables"
)

var testNPCs = []game.NPC{
	{Name: "Borin", Race: "Dwarf", Class: "Cleric", Personality: "serene and patient", Level: 10},
	{Name: "Lia", Race: "Elf", Class: "Mage", Personality: "endlessly curious", Level: 10},
}

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	tbl, err := tables.Load()
	if err != nil {
		t.Fatalf("tables.Load() error: %v", err)
	}
	return NewBuilder(tbl)
}

func TestBuildSystemPromptSectionOrder(t *testing.T) {
	b := testBuilder(t)
	prompt := b.BuildSystemPrompt(game.Character{Name: "Aria", Level: 10}, 4, "The Sunken Citadel", testNPCs)

	headers := []string{"SETTING:", "PLAYER CHARACTER:", "COMPANIONS:", "PARTY:", "RULES:", "STATE CHANGES:"}
	last := -1
	for _, header := range headers {
		idx := strings.Index(prompt, header)
		if idx < 0 {
			t.Fatalf("prompt is missing section %q", header)
		}
		if idx <= last {
			t.Errorf("section %q out of order (index %d, previous %d)", header, idx, last)
		}
		last = idx
	}
}

func TestBuildSystemPromptOmitsEmptyRoster(t *testing.T) {
	prompt := testBuilder(t).BuildSystemPrompt(game.Character{Name: "Aria"}, 1, "The Sunken Citadel", nil)
	if strings.Contains(prompt, "COMPANIONS") {
		t.Error("prompt contains a companion section for an empty roster")
	}
}

func TestBuildSystemPromptRosterLines(t *testing.T) {
	prompt := testBuilder(t).BuildSystemPrompt(game.Character{Name: "Aria", Level: 10}, 4, "The Sunken Citadel", testNPCs)

	for _, npc := range testNPCs {
		line := fmt.Sprintf("- %s, %s %s (level %d), %s", npc.Name, npc.Race, npc.Class, npc.Level, npc.Personality)
		if !strings.Contains(prompt, line) {
			t.Errorf("prompt is missing roster line %q", line)
		}
	}
}

func TestBuildSystemPromptDefaults(t *testing.T) {
	prompt := testBuilder(t).BuildSystemPrompt(game.Character{Name: "Aria"}, 1, "The Sunken Citadel", nil)

	for _, want := range []string{
		"- Race: Human",
		"- Class: Warrior",
		"- Level: 1",
		"- Maximum HP: 15",
		"Strength 10",
		"Charisma 10",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing default %q", want)
		}
	}
}

// The rules wording draws on whatever table set the Builder was
// constructed over, not on the built-in data.
func TestBuildSystemPromptWorldVocabulary(t *testing.T) {
	b := NewBuilder(tables.Tables{
		Races:   []string{"Human", "Merfolk"},
		Classes: []string{"Tidecaller", "Warrior"},
	})
	prompt := b.BuildSystemPrompt(game.Character{Name: "Aria"}, 1, "The Drowned Coast", nil)

	for _, want := range []string{
		"draw races from Human, Merfolk",
		"classes from Tidecaller, Warrior",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
}

func TestBuildSystemPromptProtocolBlock(t *testing.T) {
	prompt := testBuilder(t).BuildSystemPrompt(game.Character{Name: "Aria", Level: 10}, 4, "The Sunken Citadel", testNPCs)

	for _, want := range []string{
		`[HP_CHANGE] {"character": "<name>", "change": <integer>, "reason": "<short explanation>"}`,
		`[XP_GAIN] {"character": "<name>", "xp": <integer>, "reason": "<short explanation>"}`,
		`[HP_CHANGE] {"character": "Aria", "change": -5, "reason": "clipped by a goblin arrow"}`,
		`[XP_GAIN] {"character": "Aria", "xp": 50, "reason": "outwitted the toll bridge troll"}`,
		"question or a choice",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
}

func TestBuildSystemPromptDeterministic(t *testing.T) {
	b := testBuilder(t)
	character := game.Character{Name: "Aria", Race: "Elf", Class: "Rogue", Level: 7}
	first := b.BuildSystemPrompt(character, 3, "The Sunken Citadel", testNPCs)
	second := b.BuildSystemPrompt(character, 3, "The Sunken Citadel", testNPCs)
	if first != second {
		t.Error("identical inputs produced different prompts")
	}
}

// The session-start flow end to end: three generated companions with
// distinct pairs, and a system prompt carrying the character's name and
// derived maximum HP. Generator and Builder share one table set.
func TestAdventureSetupScenario(t *testing.T) {
	tbl, err := tables.Load()
	if err != nil {
		t.Fatalf("tables.Load() error: %v", err)
	}

	character := game.Character{Name: "Aria", Level: 10}
	npcs, err := actors.NewGenerator(tbl).GenerateWithRng(rand.New(rand.NewSource(21)), character, 3)
	if err != nil {
		t.Fatalf("GenerateWithRng error: %v", err)
	}
	if len(npcs) != 3 {
		t.Fatalf("got %d companions, want 3", len(npcs))
	}

	pairs := make(map[string]bool)
	for _, npc := range npcs {
		key := npc.Race + "/" + npc.Class
		if pairs[key] {
			t.Errorf("duplicate pair %s", key)
		}
		pairs[key] = true
	}

	prompt := NewBuilder(tbl).BuildSystemPrompt(character, 3, "The Sunken Citadel", npcs)
	if !strings.Contains(prompt, "Aria") {
		t.Error("prompt does not mention the character name")
	}
	if !strings.Contains(prompt, "- Maximum HP: 24") {
		t.Error("prompt does not carry the derived maximum HP for level 10")
	}
}

func TestBuildGameStartPrompt(t *testing.T) {
	b := testBuilder(t)
	prompt := b.BuildGameStartPrompt(testNPCs)
	for _, want := range []string{"2 companion(s)", "Borin", "Lia"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}

	solo := b.BuildGameStartPrompt(nil)
	if strings.Contains(solo, "companion") {
		t.Error("solo start prompt mentions companions")
	}
}

func TestBuildPlayerActionPrompt(t *testing.T) {
	b := testBuilder(t)
	character := game.Character{Name: "Aria", Level: 10}
	hp := 12

	tests := []struct {
		name        string
		turnCtx     game.TurnContext
		wantPresent []string
		wantAbsent  []string
	}{
		{
			name:        "without hp information",
			turnCtx:     game.TurnContext{},
			wantPresent: []string{"Aria attempts the following action: I pick the lock", "[HP_CHANGE]"},
			wantAbsent:  []string{"CURRENT CONDITION"},
		},
		{
			name: "with character and companion hp",
			turnCtx: game.TurnContext{
				CurrentHP: &hp,
				Companions: []game.CompanionStatus{
					{Name: "Borin", CurrentHP: 20, MaxHP: 24},
				},
			},
			wantPresent: []string{"CURRENT CONDITION:", "- Aria: 12/24 HP", "- Borin: 20/24 HP"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := b.BuildPlayerActionPrompt(character, "I pick the lock", tt.turnCtx)
			for _, want := range tt.wantPresent {
				if !strings.Contains(prompt, want) {
					t.Errorf("prompt is missing %q", want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(prompt, absent) {
					t.Errorf("prompt unexpectedly contains %q", absent)
				}
			}
		})
	}
}

func TestBuildDiceResultPrompt(t *testing.T) {
	character := game.Character{Name: "Aria", Level: 5}
	roll := game.DiceRoll{Type: "d20", Result: 14, Modifier: 3, Total: 17, SkillCheck: "stealth"}

	prompt := testBuilder(t).BuildDiceResultPrompt(character, roll, game.TurnContext{}, "slipping past the sleeping ogre")
	for _, want := range []string{
		"Aria rolls a d20",
		"for a stealth check",
		"rolled 14, modifier +3, total 17.",
		"WHAT THE ROLL IS FOR:",
		"slipping past the sleeping ogre",
		"[HP_CHANGE]",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
}

func TestBuildDiceResultPromptNegativeModifier(t *testing.T) {
	roll := game.DiceRoll{Type: "d6", Result: 2, Modifier: -1, Total: 1}
	prompt := testBuilder(t).BuildDiceResultPrompt(game.Character{Name: "Aria"}, roll, game.TurnContext{}, "")

	if !strings.Contains(prompt, "rolled 2, modifier -1, total 1.") {
		t.Errorf("prompt is missing the roll breakdown: %q", prompt)
	}
	if strings.Contains(prompt, "for a") {
		t.Error("prompt mentions a skill check that was not supplied")
	}
	if strings.Contains(prompt, "WHAT THE ROLL IS FOR") {
		t.Error("prompt carries an empty context section")
	}
}

func TestBuildNPCPrompts(t *testing.T) {
	b := testBuilder(t)
	npc := game.NPC{Name: "Borin", Race: "Dwarf", Class: "Cleric", Personality: "serene and patient", Level: 3}

	system := b.BuildNPCSystemPrompt(npc)
	for _, want := range []string{"Borin", "level 3 Dwarf Cleric", "serene and patient", "first person"} {
		if !strings.Contains(system, want) {
			t.Errorf("npc system prompt is missing %q", want)
		}
	}

	action := b.BuildNPCActionPrompt("a stranger draws a blade in the tavern")
	for _, want := range []string{"a stranger draws a blade in the tavern", "How do you react?"} {
		if !strings.Contains(action, want) {
			t.Errorf("npc action prompt is missing %q", want)
		}
	}
}
