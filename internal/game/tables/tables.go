package tables

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed tables.toml
var builtin []byte

// Tables is the lookup data behind companion generation and prompt
// wording: the playable race and class sets, name pools per race,
// personality traits per class, and the name-disambiguation suffix
// cycle. Built once through Load or LoadFile and injected wherever the
// data is consumed; treated as read-only afterwards.
type Tables struct {
	Races         []string            `toml:"races"`
	Classes       []string            `toml:"classes"`
	Names         map[string][]string `toml:"names"`
	Traits        map[string][]string `toml:"traits"`
	Suffixes      []string            `toml:"suffixes"`
	FallbackName  string              `toml:"fallback_name"`
	FallbackTrait string              `toml:"fallback_trait"`
}

// Load returns the built-in table set.
func Load() (Tables, error) {
	return decode(builtin)
}

// LoadFile reads an operator-supplied table set, replacing the built-in
// data wholesale.
func LoadFile(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read tables file: %w", err)
	}
	return decode(data)
}

func decode(data []byte) (Tables, error) {
	var t Tables
	if err := toml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("failed to decode tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func (t Tables) validate() error {
	if len(t.Races) == 0 {
		return fmt.Errorf("tables: no races defined")
	}
	if len(t.Classes) == 0 {
		return fmt.Errorf("tables: no classes defined")
	}
	if len(t.Suffixes) == 0 {
		return fmt.Errorf("tables: no disambiguation suffixes defined")
	}
	if t.FallbackName == "" {
		return fmt.Errorf("tables: fallback_name is required")
	}
	if t.FallbackTrait == "" {
		return fmt.Errorf("tables: fallback_trait is required")
	}
	for _, race := range t.Races {
		if len(t.Names[race]) == 0 {
			return fmt.Errorf("tables: race %q has no name pool", race)
		}
	}
	for _, class := range t.Classes {
		if len(t.Traits[class]) == 0 {
			return fmt.Errorf("tables: class %q has no trait pool", class)
		}
	}
	return nil
}

// PairCount is the size of the race by class space, the hard ceiling
// on one batch of unique companions.
func (t Tables) PairCount() int {
	return len(t.Races) * len(t.Classes)
}

// NamesFor returns the name pool for a race. Unrecognized races get
// the generic placeholder pool.
func (t Tables) NamesFor(race string) []string {
	if names, ok := t.Names[race]; ok && len(names) > 0 {
		return names
	}
	return []string{t.FallbackName}
}

// TraitsFor returns the trait pool for a class. Unrecognized classes
// get the generic placeholder pool.
func (t Tables) TraitsFor(class string) []string {
	if traits, ok := t.Traits[class]; ok && len(traits) > 0 {
		return traits
	}
	return []string{t.FallbackTrait}
}
