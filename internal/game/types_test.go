package game

import "testing"

func allTens() Stats {
	return Stats{Strength: 10, Constitution: 10, Intelligence: 10, Wisdom: 10, Dexterity: 10, Charisma: 10}
}

func TestCharacterNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Character
		want Character
	}{
		{
			name: "empty character gets all defaults",
			in:   Character{Name: "Aria"},
			want: Character{Name: "Aria", Race: "Human", Class: "Warrior", Level: 1, Stats: allTens()},
		},
		{
			name: "present fields pass through",
			in:   Character{Name: "Borin", Race: "Dwarf", Class: "Cleric", Level: 7, Stats: Stats{Strength: 14, Constitution: 16, Intelligence: 8, Wisdom: 15, Dexterity: 9, Charisma: 11}},
			want: Character{Name: "Borin", Race: "Dwarf", Class: "Cleric", Level: 7, Stats: Stats{Strength: 14, Constitution: 16, Intelligence: 8, Wisdom: 15, Dexterity: 9, Charisma: 11}},
		},
		{
			name: "missing scores filled individually",
			in:   Character{Name: "Lia", Race: "Elf", Class: "Mage", Level: 3, Stats: Stats{Intelligence: 17}},
			want: Character{Name: "Lia", Race: "Elf", Class: "Mage", Level: 3, Stats: Stats{Strength: 10, Constitution: 10, Intelligence: 17, Wisdom: 10, Dexterity: 10, Charisma: 10}},
		},
		{
			name: "negative level treated as absent",
			in:   Character{Name: "Karg", Race: "Orc", Class: "Warrior", Level: -2},
			want: Character{Name: "Karg", Race: "Orc", Class: "Warrior", Level: 1, Stats: allTens()},
		},
		{
			name: "high level passes through verbatim",
			in:   Character{Name: "Ysolde", Race: "Human", Class: "Bard", Level: 25},
			want: Character{Name: "Ysolde", Race: "Human", Class: "Bard", Level: 25, Stats: allTens()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			if got != tt.want {
				t.Errorf("Normalized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizedDoesNotMutateReceiver(t *testing.T) {
	in := Character{Name: "Aria"}
	_ = in.Normalized()
	if in.Race != "" || in.Level != 0 {
		t.Errorf("Normalized mutated its receiver: %+v", in)
	}
}
