// internal/words/words.go
//
// Bilingual word catalog for the spelling game.
//
// Responsibilities:
//   - Define Language and Word (English/Hmong spelling, per-language slot count).
//   - Load the catalog once from a YAML seed: an explicit file path if given,
//     otherwise the embedded default list.
//   - Supply ordered reads (All) and id lookups (Find).
//
// Slot counts:
//   - English: one slot per letter, derived from the id.
//   - Hmong: a linguistically meaningful unit count carried in the seed data;
//     it can differ from the glyph length and is fixed at load time, never
//     recomputed.
//
// The catalog is immutable after Load; lookups that miss report a boolean,
// never an error.

package words

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/hmongspell/go-server/assets"
)

// Language selects which spelling and slot count of a Word applies.
// The values double as the audio asset directory names on the UI side.
type Language string

const (
	English Language = "English"
	Hmong   Language = "Hmong"
)

// ParseLanguage maps a request string onto a Language.
func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case English:
		return English, true
	case Hmong:
		return Hmong, true
	}
	return "", false
}

// Word is one spellable catalog entry. The English spelling is the identity;
// picture and audio assets on the UI side are keyed by it.
type Word struct {
	ID         string // English spelling, unique across the catalog
	Hmong      string
	HmongSlots int
}

// Spelling returns the target spelling in the given language.
func (w Word) Spelling(lang Language) string {
	if lang == Hmong {
		return w.Hmong
	}
	return w.ID
}

// Slots returns the number of answer positions the word occupies.
func (w Word) Slots(lang Language) int {
	if lang == Hmong {
		return w.HmongSlots
	}
	return utf8.RuneCountInString(w.ID)
}

// Catalog is the read-only word list, populated once at startup.
type Catalog struct {
	words []Word
	byID  map[string]int
}

// seedFile matches the YAML seed layout.
type seedFile struct {
	Words []struct {
		ID    string `yaml:"id"`
		Hmong string `yaml:"hmong"`
		Slots int    `yaml:"slots"`
	} `yaml:"words"`
}

// Load builds the catalog from the YAML file at path, or from the embedded
// default seed when path is empty.
func Load(path string) (*Catalog, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read words file: %w", err)
		}
	} else {
		data, err = assets.DefaultWords()
		if err != nil {
			return nil, fmt.Errorf("embedded words seed: %w", err)
		}
	}
	return Parse(data)
}

// Parse validates and indexes a YAML catalog seed.
func Parse(data []byte) (*Catalog, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse words seed: %w", err)
	}
	if len(seed.Words) == 0 {
		return nil, errors.New("words: seed list is empty")
	}

	c := &Catalog{byID: make(map[string]int, len(seed.Words))}
	for _, e := range seed.Words {
		switch {
		case e.ID == "":
			return nil, errors.New("words: entry missing id")
		case e.Hmong == "":
			return nil, fmt.Errorf("words: %q missing hmong spelling", e.ID)
		case e.Slots <= 0:
			return nil, fmt.Errorf("words: %q has non-positive slot count", e.ID)
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("words: duplicate id %q", e.ID)
		}
		c.byID[e.ID] = len(c.words)
		c.words = append(c.words, Word{ID: e.ID, Hmong: e.Hmong, HmongSlots: e.Slots})
	}
	return c, nil
}

// All returns the catalog in load order. The slice is a copy; callers may
// shrink it freely (the session pool does).
func (c *Catalog) All() []Word {
	out := make([]Word, len(c.words))
	copy(out, c.words)
	return out
}

// Find looks up a word by id.
func (c *Catalog) Find(id string) (Word, bool) {
	if i, ok := c.byID[id]; ok {
		return c.words[i], true
	}
	return Word{}, false
}

// Len reports the catalog size.
func (c *Catalog) Len() int { return len(c.words) }
