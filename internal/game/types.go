package game

// Role values carried on conversation messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Defaults substituted for absent Character fields.
const (
	DefaultRace  = "Human"
	DefaultClass = "Warrior"
	DefaultLevel = 1
	DefaultScore = 10
)

// Message is one role-tagged line of conversation. Ordering is
// significant and owned by the caller; nothing in this package
// reorders or deduplicates messages.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Stats holds the six ability scores. A zero value means the score was
// absent from the request and readers substitute DefaultScore.
type Stats struct {
	Strength     int `json:"strength"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Dexterity    int `json:"dexterity"`
	Charisma     int `json:"charisma"`
}

// Character is the player's avatar. It is treated as an immutable
// input on every request; persisting it is the caller's business.
type Character struct {
	Name  string `json:"name"`
	Race  string `json:"race"`
	Class string `json:"class"`
	Level int    `json:"level"`
	Stats Stats  `json:"stats"`
}

// Normalized returns a copy of c with the documented defaults filled
// in: race Human, class Warrior, level 1, ability scores 10. Values
// that are present pass through untouched.
func (c Character) Normalized() Character {
	if c.Race == "" {
		c.Race = DefaultRace
	}
	if c.Class == "" {
		c.Class = DefaultClass
	}
	if c.Level < 1 {
		c.Level = DefaultLevel
	}
	c.Stats = c.Stats.normalized()
	return c
}

func (s Stats) normalized() Stats {
	fill := func(v int) int {
		if v <= 0 {
			return DefaultScore
		}
		return v
	}
	return Stats{
		Strength:     fill(s.Strength),
		Constitution: fill(s.Constitution),
		Intelligence: fill(s.Intelligence),
		Wisdom:       fill(s.Wisdom),
		Dexterity:    fill(s.Dexterity),
		Charisma:     fill(s.Charisma),
	}
}

// NPC is a generated companion. Within one generation batch no two
// NPCs share a name or a (race, class) pair. After generation it is
// immutable reference data the caller re-supplies each turn.
type NPC struct {
	Name        string `json:"name"`
	Race        string `json:"race"`
	Class       string `json:"class"`
	Personality string `json:"personality"`
	Level       int    `json:"level"`
}

// DiceRoll is a die roll already resolved by the client.
type DiceRoll struct {
	Type       string `json:"type"`
	Result     int    `json:"result"`
	Modifier   int    `json:"modifier"`
	Total      int    `json:"total"`
	SkillCheck string `json:"skillCheck"`
}

// CompanionStatus reports a companion's current hit points for turn
// prompts.
type CompanionStatus struct {
	Name      string `json:"name"`
	CurrentHP int    `json:"currentHp"`
	MaxHP     int    `json:"maxHp"`
}

// TurnContext is the optional per-turn state the caller tracks and the
// narrator should see. CurrentHP is nil when the caller does not know
// the character's hit points.
type TurnContext struct {
	CurrentHP  *int              `json:"currentHp,omitempty"`
	Companions []CompanionStatus `json:"companions,omitempty"`
}
