// Package narration builds every prompt the game master sends to the
// language model: the session system prompt, the per-turn user prompts,
// and the short-form NPC persona prompts. A Builder is constructed over
// a table set; its methods are pure functions of their inputs, and
// identical arguments against the same tables produce byte-identical
// text.
package narration

import (
	"fmt"
	"strings"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/events"
	"github.com/MrPingoo/iut-jdr-api-2026/internal/game/tables"
)

// Builder renders prompts over one immutable table set, the same set
// the companion generator draws from.
type Builder struct {
	tables tables.Tables
}

// NewBuilder returns a Builder over t.
func NewBuilder(t tables.Tables) *Builder {
	return &Builder{tables: t}
}

// section is one titled block of the system prompt. The prompt is an
// ordered section list rendered by render, so the overall shape lives
// in exactly one place.
type section struct {
	title string
	body  string
}

func render(sections []section) string {
	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if s.title != "" {
			sb.WriteString(s.title)
			sb.WriteString(":\n")
		}
		sb.WriteString(s.body)
	}
	return sb.String()
}

const gmIntro = `You are the game master for a tabletop-style fantasy role-playing adventure. Run the world, voice every non-player character, and narrate the consequences of player choices.`

const gmRules = `- Narrate in second person, present tense, two to four paragraphs per turn.
- Stay in character as the narrator; never mention rules, prompts, or the system itself.
- Voice companions according to their listed personalities; they act on their own initiative but never overshadow the players.
- Player choices matter; failure is a story beat, not a dead end.
- Keep the world consistent with everything already established.
- Characters you improvise belong to this world; draw races from %s and classes from %s.
- ALWAYS end your response with a question or a choice addressed to the players.`

// BuildSystemPrompt assembles the session-defining instruction block:
// setting, character sheet, companion roster (omitted when there are no
// companions), player count, narration rules, and the state-change
// protocol. Absent character fields take the documented defaults.
func (b *Builder) BuildSystemPrompt(character game.Character, playerCount int, setting string, npcs []game.NPC) string {
	c := character.Normalized()

	sections := []section{
		{body: gmIntro},
		{title: "SETTING", body: setting},
		{title: "PLAYER CHARACTER", body: characterSheet(c)},
	}
	if len(npcs) > 0 {
		sections = append(sections, section{title: "COMPANIONS", body: companionRoster(npcs)})
	}
	sections = append(sections,
		section{title: "PARTY", body: fmt.Sprintf("This adventure has %d player(s) at the table.", playerCount)},
		section{title: "RULES", body: b.rules()},
		section{title: "STATE CHANGES", body: protocolSpec(c.Name)},
	)

	return render(sections)
}

func (b *Builder) rules() string {
	return fmt.Sprintf(gmRules,
		strings.Join(b.tables.Races, ", "),
		strings.Join(b.tables.Classes, ", "))
}

func characterSheet(c game.Character) string {
	return fmt.Sprintf(`- Name: %s
- Race: %s
- Class: %s
- Level: %d
- Maximum HP: %d
- Ability scores: Strength %d, Constitution %d, Intelligence %d, Wisdom %d, Dexterity %d, Charisma %d`,
		c.Name, c.Race, c.Class, c.Level, game.MaxHP(c.Level),
		c.Stats.Strength, c.Stats.Constitution, c.Stats.Intelligence,
		c.Stats.Wisdom, c.Stats.Dexterity, c.Stats.Charisma)
}

func companionRoster(npcs []game.NPC) string {
	lines := make([]string, len(npcs))
	for i, npc := range npcs {
		lines[i] = fmt.Sprintf("- %s, %s %s (level %d), %s", npc.Name, npc.Race, npc.Class, npc.Level, npc.Personality)
	}
	return strings.Join(lines, "\n")
}

// protocolSpec is the authoritative definition of the in-band
// state-change protocol. The tag tokens and field names come from the
// events package, which is also what parses them back out, so the
// instruction and the parser stay byte-for-byte in agreement. The
// worked examples use the actual character name.
func protocolSpec(characterName string) string {
	return fmt.Sprintf(`When the story changes hit points or awards experience, report it on its own line using exactly these formats:

%[1]s {"character": "<name>", "change": <integer>, "reason": "<short explanation>"}
%[2]s {"character": "<name>", "xp": <integer>, "reason": "<short explanation>"}

- "character" must be the exact name of the player character or a companion.
- Damage is negative, from -1 (a scratch) to -20 (devastating). Healing is positive, from +1 to +20.
- Experience awards scale with difficulty: 10-25 xp for minor obstacles, 25-50 xp for significant challenges, 50-100 xp for major victories.
- Each tag goes on its own line, outside any sentence. Several tags in one response are fine.

Examples:
%[1]s {"character": "%[3]s", "change": -5, "reason": "clipped by a goblin arrow"}
%[1]s {"character": "%[3]s", "change": 10, "reason": "drank a healing potion"}
%[2]s {"character": "%[3]s", "xp": 50, "reason": "outwitted the toll bridge troll"}`,
		events.TagHPChange, events.TagXPGain, characterName)
}

// BuildGameStartPrompt opens the session: first scene, stakes, and a
// short introduction for each companion travelling with the party.
func (b *Builder) BuildGameStartPrompt(npcs []game.NPC) string {
	var sb strings.Builder
	sb.WriteString("The adventure begins. Open the first scene: ground the party in the setting, set the stakes, and end on a hook.")
	if len(npcs) > 0 {
		names := make([]string, len(npcs))
		for i, npc := range npcs {
			names[i] = npc.Name
		}
		fmt.Fprintf(&sb, "\n\n%d companion(s) travel with the party: %s. Work a short introduction for each of them into the scene.", len(npcs), strings.Join(names, ", "))
	}
	return sb.String()
}

// BuildPlayerActionPrompt describes one player action for the narrator,
// with the party's current hit points when the caller knows them.
func (b *Builder) BuildPlayerActionPrompt(character game.Character, action string, turnCtx game.TurnContext) string {
	c := character.Normalized()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s attempts the following action: %s", c.Name, action)
	if status := partyStatus(c, turnCtx); status != "" {
		fmt.Fprintf(&sb, "\n\nCURRENT CONDITION:\n%s", status)
	}
	fmt.Fprintf(&sb, "\n\nNarrate what happens. Report any hit point changes with %s lines.", events.TagHPChange)
	return sb.String()
}

// BuildDiceResultPrompt reports a resolved die roll for the narrator to
// judge and narrate.
func (b *Builder) BuildDiceResultPrompt(character game.Character, roll game.DiceRoll, turnCtx game.TurnContext, gameContext string) string {
	c := character.Normalized()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s rolls a %s", c.Name, roll.Type)
	if roll.SkillCheck != "" {
		fmt.Fprintf(&sb, " for a %s check", roll.SkillCheck)
	}
	fmt.Fprintf(&sb, ": rolled %d, modifier %+d, total %d.", roll.Result, roll.Modifier, roll.Total)
	if gameContext != "" {
		fmt.Fprintf(&sb, "\n\nWHAT THE ROLL IS FOR:\n%s", gameContext)
	}
	if status := partyStatus(c, turnCtx); status != "" {
		fmt.Fprintf(&sb, "\n\nCURRENT CONDITION:\n%s", status)
	}
	fmt.Fprintf(&sb, "\n\nNarrate the outcome. Judge success against the difficulty the situation implies, and report any hit point changes with %s lines.", events.TagHPChange)
	return sb.String()
}

func partyStatus(c game.Character, turnCtx game.TurnContext) string {
	var lines []string
	if turnCtx.CurrentHP != nil {
		lines = append(lines, fmt.Sprintf("- %s: %d/%d HP", c.Name, *turnCtx.CurrentHP, game.MaxHP(c.Level)))
	}
	for _, companion := range turnCtx.Companions {
		lines = append(lines, fmt.Sprintf("- %s: %d/%d HP", companion.Name, companion.CurrentHP, companion.MaxHP))
	}
	return strings.Join(lines, "\n")
}

// BuildNPCSystemPrompt frames a single companion for a short in-character
// reaction, kept deliberately small so these side turns stay cheap.
func (b *Builder) BuildNPCSystemPrompt(npc game.NPC) string {
	return fmt.Sprintf(`You are %s, a level %d %s %s. Personality: %s.

Speak and act only as %s. Answer in first person. Do not narrate other characters and do not mention game mechanics.`,
		npc.Name, npc.Level, npc.Race, npc.Class, npc.Personality, npc.Name)
}

// BuildNPCActionPrompt presents the situation the companion reacts to.
func (b *Builder) BuildNPCActionPrompt(situation string) string {
	return fmt.Sprintf("The situation: %s\n\nHow do you react? Answer in character, in no more than three sentences.", situation)
}
