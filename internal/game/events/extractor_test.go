package events

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Event
	}{
		{
			name: "single hp change",
			text: `The blade bites deep.
[HP_CHANGE] {"character":"Aria","change":-5,"reason":"hit"}`,
			want: []Event{{Kind: KindHPChange, Character: "Aria", Amount: -5, Reason: "hit"}},
		},
		{
			name: "healing is positive",
			text: `[HP_CHANGE] {"character":"Borin","change":8,"reason":"healing draught"}`,
			want: []Event{{Kind: KindHPChange, Character: "Borin", Amount: 8, Reason: "healing draught"}},
		},
		{
			name: "xp gain",
			text: `The troll crashes down.
[XP_GAIN] {"character":"Aria","xp":50,"reason":"defeated the troll"}`,
			want: []Event{{Kind: KindXPGain, Character: "Aria", Amount: 50, Reason: "defeated the troll"}},
		},
		{
			name: "source order preserved across kinds",
			text: `[XP_GAIN] {"character":"Aria","xp":25,"reason":"clever plan"}
Some narration in between.
[HP_CHANGE] {"character":"Aria","change":-3,"reason":"trap"}
[HP_CHANGE] {"character":"Lidda","change":-1,"reason":"splinters"}`,
			want: []Event{
				{Kind: KindXPGain, Character: "Aria", Amount: 25, Reason: "clever plan"},
				{Kind: KindHPChange, Character: "Aria", Amount: -3, Reason: "trap"},
				{Kind: KindHPChange, Character: "Lidda", Amount: -1, Reason: "splinters"},
			},
		},
		{
			name: "malformed json dropped",
			text: `[HP_CHANGE] {"character":"Aria","change":-5,`,
			want: nil,
		},
		{
			name: "missing character dropped",
			text: `[HP_CHANGE] {"change":-5,"reason":"hit"}`,
			want: nil,
		},
		{
			name: "missing change dropped",
			text: `[HP_CHANGE] {"character":"Aria","reason":"hit"}`,
			want: nil,
		},
		{
			name: "negative xp dropped",
			text: `[XP_GAIN] {"character":"Aria","xp":-10,"reason":"penalty"}`,
			want: nil,
		},
		{
			name: "zero change is a valid event",
			text: `[HP_CHANGE] {"character":"Aria","change":0,"reason":"glancing blow"}`,
			want: []Event{{Kind: KindHPChange, Character: "Aria", Amount: 0, Reason: "glancing blow"}},
		},
		{
			name: "missing reason tolerated",
			text: `[HP_CHANGE] {"character":"Aria","change":-2}`,
			want: []Event{{Kind: KindHPChange, Character: "Aria", Amount: -2}},
		},
		{
			name: "indented tag line still parses",
			text: `  [HP_CHANGE] {"character":"Aria","change":-4,"reason":"fall"}`,
			want: []Event{{Kind: KindHPChange, Character: "Aria", Amount: -4, Reason: "fall"}},
		},
		{
			name: "tag mid-line is narrative",
			text: `The sign reads [HP_CHANGE] {"character":"Aria","change":-5,"reason":"hit"} in red paint.`,
			want: nil,
		},
		{
			name: "trailing prose after payload dropped",
			text: `[HP_CHANGE] {"character":"Aria","change":-5,"reason":"hit"} and she staggers.`,
			want: nil,
		},
		{
			name: "no events in plain narrative",
			text: "You walk into the tavern. The fire crackles.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Extract() returned %d events, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScrub(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "removes well-formed event lines",
			text: `The blade bites deep.
[HP_CHANGE] {"character":"Aria","change":-5,"reason":"hit"}
She staggers back.`,
			want: "The blade bites deep.\nShe staggers back.",
		},
		{
			name: "keeps malformed tag lines",
			text: `The inscription reads:
[HP_CHANGE] beware all who enter`,
			want: "The inscription reads:\n[HP_CHANGE] beware all who enter",
		},
		{
			name: "trims residue when event ends the text",
			text: `Victory at last.
[XP_GAIN] {"character":"Aria","xp":100,"reason":"quest complete"}`,
			want: "Victory at last.",
		},
		{
			name: "plain text unchanged",
			text: "Nothing structured here.",
			want: "Nothing structured here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scrub(tt.text); got != tt.want {
				t.Errorf("Scrub() = %q, want %q", got, tt.want)
			}
		})
	}
}
