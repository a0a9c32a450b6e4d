package tables

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	tbl, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := len(tbl.Races); got != 6 {
		t.Errorf("len(Races) = %d, want 6", got)
	}
	if got := len(tbl.Classes); got != 8 {
		t.Errorf("len(Classes) = %d, want 8", got)
	}
	if got := tbl.PairCount(); got != 48 {
		t.Errorf("PairCount() = %d, want 48", got)
	}
	if got := len(tbl.Suffixes); got != 5 {
		t.Errorf("len(Suffixes) = %d, want 5", got)
	}
	for _, race := range tbl.Races {
		if len(tbl.Names[race]) == 0 {
			t.Errorf("race %q has an empty name pool", race)
		}
	}
	for _, class := range tbl.Classes {
		if len(tbl.Traits[class]) == 0 {
			t.Errorf("class %q has an empty trait pool", class)
		}
	}
}

func TestPoolFallbacks(t *testing.T) {
	tbl, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	names := tbl.NamesFor("Lizardfolk")
	if len(names) != 1 || names[0] != tbl.FallbackName {
		t.Errorf("NamesFor(unknown race) = %v, want [%s]", names, tbl.FallbackName)
	}

	traits := tbl.TraitsFor("Alchemist")
	if len(traits) != 1 || traits[0] != tbl.FallbackTrait {
		t.Errorf("TraitsFor(unknown class) = %v, want [%s]", traits, tbl.FallbackTrait)
	}

	if got := tbl.NamesFor("Dwarf"); len(got) == 1 && got[0] == tbl.FallbackName {
		t.Error("NamesFor(Dwarf) fell back to placeholder for a known race")
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name: "valid override",
			content: `
races = ["Human"]
classes = ["Warrior"]
suffixes = ["the Bold"]
fallback_name = "Wanderer"
fallback_trait = "steady"

[names]
Human = ["Aldric"]

[traits]
Warrior = ["stoic"]
`,
			wantErr: false,
		},
		{
			name: "race without name pool",
			content: `
races = ["Human", "Elf"]
classes = ["Warrior"]
suffixes = ["the Bold"]
fallback_name = "Wanderer"
fallback_trait = "steady"

[names]
Human = ["Aldric"]

[traits]
Warrior = ["stoic"]
`,
			wantErr: true,
		},
		{
			name:    "not toml",
			content: `{"races": []}`,
			wantErr: true,
		},
		{
			name: "empty suffixes",
			content: `
races = ["Human"]
classes = ["Warrior"]
suffixes = []
fallback_name = "Wanderer"
fallback_trait = "steady"

[names]
Human = ["Aldric"]

[traits]
Warrior = ["stoic"]
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tables.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("writing fixture: %v", err)
			}
			_, err := LoadFile(path)
			if tt.wantErr && err == nil {
				t.Error("LoadFile() returned nil error, want failure")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("LoadFile() error: %v", err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("LoadFile(missing path) returned nil error")
	}
}
