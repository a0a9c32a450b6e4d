package events

import (
	"encoding/json"
	"strings"
)

// Tag tokens the narrator is instructed to emit. The prompt builder
// composes its protocol instructions from these constants, so the
// instruction text and this parser cannot drift apart.
const (
	TagHPChange = "[HP_CHANGE]"
	TagXPGain   = "[XP_GAIN]"
)

// Kind discriminates extracted events.
type Kind string

const (
	KindHPChange Kind = "HP_CHANGE"
	KindXPGain   Kind = "XP_GAIN"
)

// Event is one structured signal recovered from narrative text. Amount
// is the hit-point delta for HP_CHANGE (negative damage, positive
// healing) and the experience award for XP_GAIN.
type Event struct {
	Kind      Kind   `json:"kind"`
	Character string `json:"character"`
	Amount    int    `json:"amount"`
	Reason    string `json:"reason"`
}

type hpPayload struct {
	Character string `json:"character"`
	Change    *int   `json:"change"`
	Reason    string `json:"reason"`
}

type xpPayload struct {
	Character string `json:"character"`
	XP        *int   `json:"xp"`
	Reason    string `json:"reason"`
}

// Extract scans narrative text for protocol lines and returns their
// events in source order. A line whose payload fails to parse or lacks
// a required field is skipped as an event and left to stand as
// narrative; one bad line never invalidates the rest of the text.
func Extract(text string) []Event {
	var extracted []Event
	for _, line := range strings.Split(text, "\n") {
		if event, ok := parseLine(line); ok {
			extracted = append(extracted, event)
		}
	}
	return extracted
}

// Scrub returns the narrative with well-formed protocol lines removed,
// trimmed of leading and trailing whitespace. This is the text a
// client should display; malformed tag lines are ordinary narrative
// and stay put.
func Scrub(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := parseLine(line); !ok {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// parseLine recognizes a protocol line: optional indentation, a tag
// token, then a JSON object and nothing else.
func parseLine(line string) (Event, bool) {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, TagHPChange):
		return parseHP(strings.TrimPrefix(trimmed, TagHPChange))
	case strings.HasPrefix(trimmed, TagXPGain):
		return parseXP(strings.TrimPrefix(trimmed, TagXPGain))
	}
	return Event{}, false
}

func parseHP(payload string) (Event, bool) {
	var p hpPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &p); err != nil {
		return Event{}, false
	}
	if p.Character == "" || p.Change == nil {
		return Event{}, false
	}
	return Event{Kind: KindHPChange, Character: p.Character, Amount: *p.Change, Reason: p.Reason}, true
}

func parseXP(payload string) (Event, bool) {
	var p xpPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &p); err != nil {
		return Event{}, false
	}
	if p.Character == "" || p.XP == nil || *p.XP < 0 {
		return Event{}, false
	}
	return Event{Kind: KindXPGain, Character: p.Character, Amount: *p.XP, Reason: p.Reason}, true
}
